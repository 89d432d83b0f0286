package explain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xhd2015/gemini/support/assert"
)

const fetchCode = `package fetch

import (
	"strings"

	"github.com/xhd2015/gemini/async"
)

//gemini:maybe
func Upper(key string) async.Future[string] {
	return async.Block(func() string {
		v := async.Await(Load(key))
		return strings.ToUpper(v)
	})
}

//gemini:maybe
func Load(key string) async.Future[string] {
	return async.Ready("value of " + key)
}

//gemini:maybe
func Bad() int { return 1 }

func plain() {}
`

func TestCode(t *testing.T) {
	expect := `fetch.go
├── Upper (awaits=1 blocks=1 readies=0)
│   └── [block]  fetch.go:11:9 func() string
│       └── [await]  fetch.go:12:8 Load(key)
├── Load (awaits=0 blocks=0 readies=1)
│   └── [ready]  fetch.go:19:9 "value of " + key
└── Bad
    └── [error]  gemini:maybe requires a suspending function: the only result must be async.Future[T]
`
	got, err := Code("fetch.go", []byte(fetchCode), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "\u00a0") {
		t.Errorf("tree should be padded with plain spaces: %q", got)
	}
	if diff := assert.Diff(expect, got); diff != "" {
		t.Errorf("explain: %s", diff)
	}
}

func TestCodeAwaitContextAndUnsupported(t *testing.T) {
	code := `package w

import "github.com/xhd2015/gemini/async"

//gemini:maybe
func Wait(ctx context.Context, f async.Future[int]) async.Future[int] {
	return async.Block(func() int {
		v, _ := async.AwaitContext(ctx, f)
		return v
	})
}

//gemini:maybe
func Spawn() async.Future[int] {
	return async.Ready(async.Spawn(1))
}
`
	expect := `w.go
├── Wait (awaits=1 blocks=1 readies=0)
│   └── [block]  w.go:7:9 func() int
│       └── [await-context]  w.go:8:11 f
└── Spawn
    └── [error]  gemini:maybe cannot erase this use of the async package: async.Spawn has no blocking form
`
	got, err := Code("w.go", []byte(code), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := assert.Diff(expect, got); diff != "" {
		t.Errorf("explain: %s", diff)
	}
}

func TestCodeFunc(t *testing.T) {
	tests := []struct {
		name   string
		fn     string
		expect string
		err    string
	}{
		{
			name: "func",
			fn:   "Load",
			expect: `fetch.go
└── Load (awaits=0 blocks=0 readies=1)
    └── [ready]  fetch.go:19:9 "value of " + key
`,
		},
		{
			name: "not annotated",
			fn:   "plain",
			err:  "fetch.go: no //gemini:maybe function plain",
		},
		{
			name: "missing method",
			fn:   "Server.Load",
			err:  "fetch.go: no //gemini:maybe function Server.Load",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := Code("fetch.go", []byte(fetchCode), Options{Func: tt.fn})
			if tt.err != "" {
				if err == nil || err.Error() != tt.err {
					t.Fatalf("expect err %q, actual: %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := assert.Diff(tt.expect, got); diff != "" {
				t.Errorf("explain: %s", diff)
			}
		})
	}
}

func TestNested(t *testing.T) {
	code := `package n

import rt "github.com/xhd2015/gemini/async"

type Pool[T any] struct{}

//gemini:maybe
func (p *Pool[T]) Take(f rt.Future[rt.Future[int]]) rt.Future[int] {
	return rt.Ready(rt.Await[int](rt.Await(f)))
}
`
	expect := `n.go
└── Pool.Take (awaits=2 blocks=0 readies=1)
    └── [ready]  n.go:9:9 rt.Await[int](rt.Await(f))
        └── [await]  n.go:9:18 rt.Await(f)
            └── [await]  n.go:9:32 f
`
	got, err := Code("n.go", []byte(code), Options{Func: "Pool.Take"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := assert.Diff(expect, got); diff != "" {
		t.Errorf("explain: %s", diff)
	}
}

func TestFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "fetch.go")
	if err := os.WriteFile(file, []byte(fetchCode), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := File(file, Options{Func: "Upper"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "fetch.go\n└── Upper ") {
		t.Errorf("unexpected tree:\n%s", got)
	}

	if _, err := File(filepath.Join(t.TempDir(), "missing.go"), Options{}); err == nil {
		t.Errorf("expect error for missing file")
	}
}
