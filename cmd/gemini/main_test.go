package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhd2015/gemini/generate"
)

const fetchSource = `package fetch

import "github.com/xhd2015/gemini/async"

//gemini:maybe
func Load(key string) async.Future[string] {
	return async.Ready("value of " + key)
}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeSource(t *testing.T) (dir string, src string) {
	t.Helper()
	dir = t.TempDir()
	src = filepath.Join(dir, "fetch.go")
	require.NoError(t, os.WriteFile(src, []byte(fetchSource), 0644))
	return dir, src
}

func TestGenAndCheck(t *testing.T) {
	dir, src := writeSource(t)
	out := filepath.Join(dir, "fetch_gemini_sync.go")

	_, err := run(t, "check", dir)
	assert.True(t, errors.Is(err, generate.ErrStale), "%v", err)

	stdout, err := run(t, "gen", "--dry-run", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "would write "+out)
	assert.Contains(t, stdout, "would update build constraint of "+src)
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	_, err = run(t, "gen", dir)
	require.NoError(t, err)
	generated, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(generated), "//go:build gemini_sync\n")
	assert.Contains(t, string(generated), "func Load(key string) string {")

	_, err = run(t, "check", dir)
	assert.NoError(t, err)
}

func TestGenTagPrecedence(t *testing.T) {
	dir, src := writeSource(t)
	conf := filepath.Join(dir, "gemini.toml")
	require.NoError(t, os.WriteFile(conf, []byte("tag = \"from_file\"\n"), 0644))

	_, err := run(t, "gen", "--config", conf, src)
	require.NoError(t, err)
	assertSourceTag(t, src, "from_file")

	t.Setenv("GEMINI_TAG", "from_env")
	_, err = run(t, "gen", "--config", conf, src)
	require.NoError(t, err)
	assertSourceTag(t, src, "from_env")

	_, err = run(t, "gen", "--config", conf, "--tag", "from_flag", src)
	require.NoError(t, err)
	assertSourceTag(t, src, "from_flag")
}

func assertSourceTag(t *testing.T, src string, tag string) {
	t.Helper()
	content, err := os.ReadFile(src)
	require.NoError(t, err)
	first := strings.SplitN(string(content), "\n", 2)[0]
	assert.True(t, strings.HasSuffix(first, "!"+tag), first)
}

func TestGenGOFILE(t *testing.T) {
	dir, src := writeSource(t)
	t.Setenv("GOFILE", src)
	_, err := run(t, "gen")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "fetch_gemini_sync.go"))
	assert.NoError(t, err)
}

func TestGenInvalidFlags(t *testing.T) {
	_, src := writeSource(t)
	_, err := run(t, "gen", "--tag", "a b", src)
	assert.Error(t, err)
	_, err = run(t, "gen", "--log-level", "loud", src)
	assert.Error(t, err)
}

func TestExplain(t *testing.T) {
	_, src := writeSource(t)
	stdout, err := run(t, "explain", src)
	require.NoError(t, err)
	assert.Equal(t, `fetch.go
└── Load (awaits=0 blocks=0 readies=1)
    └── [ready]  fetch.go:7:9 "value of " + key
`, stdout)

	_, err = run(t, "explain")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, VERSION+"\n", stdout)

	stdout, err = run(t, "version", "--revision")
	require.NoError(t, err)
	assert.Equal(t, getRevision()+"\n", stdout)
}
