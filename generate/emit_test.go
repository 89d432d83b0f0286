package generate

import (
	"go/ast"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhd2015/gemini/support/goparse"
	"github.com/xhd2015/gemini/transform"
)

// the blocking file must build on its own: every erased await leaves
// valid statements and no reference to the async package
func TestRenderBlockingTypeChecks(t *testing.T) {
	src := `package start

import "github.com/xhd2015/gemini/async"

type Context interface{ Err() error }

//gemini:maybe
func Start(ctx Context) async.Future[int] {
	return async.Block(func() int {
		f := async.Block(func() int { return 1 })
		async.Await(f)
		async.Ready(f + 1)
		(async.Await(f))
		n := 0
		for i := 0; i < 3; i++ {
			async.Await(async.Ready(i))
			n += async.Await(Load(i))
		}
		async.Await(Load(n))
		v, err := async.AwaitContext(ctx, Load(n))
		if err != nil {
			return 0
		}
		return n + v
	})
}

//gemini:maybe
func Load(i int) async.Future[int] {
	return async.Ready(i * 2)
}
`
	out, funcs, err := renderBlocking("start.go", []byte(src), transform.DefaultAsyncPkg, blockingConstraint(nil, DefaultTag))
	require.NoError(t, err)
	require.Len(t, funcs, 2)
	assert.NotContains(t, string(out), "async")

	file, fset, err := goparse.ParseFileCode("start_gemini_sync.go", out)
	require.NoError(t, err)
	conf := types.Config{}
	_, err = conf.Check("start", fset, []*ast.File{file}, nil)
	require.NoError(t, err, "%s", out)
}

func TestRenderBlockingKeepsTrailingComment(t *testing.T) {
	src := `package c

import "github.com/xhd2015/gemini/async"

//gemini:maybe
func One() async.Future[int] {
	return async.Block(func() int {
		return 1
	}) // one
}
`
	out, _, err := renderBlocking("c.go", []byte(src), transform.DefaultAsyncPkg, nil)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "\t}() // one\n"), "%s", out)
}
