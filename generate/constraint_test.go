package generate

import (
	"go/build/constraint"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhd2015/gemini/support/goparse"
)

func mustParseConstraint(t *testing.T, line string) constraint.Expr {
	t.Helper()
	expr, err := constraint.Parse("//go:build " + line)
	require.NoError(t, err)
	return expr
}

func TestBaseOf(t *testing.T) {
	tests := []struct {
		expr    string
		base    string
		notTag  bool
		async   string
		blocked string
	}{
		{"!gemini_sync", "", true, "!gemini_sync", "gemini_sync"},
		{"linux", "linux", false, "linux && !gemini_sync", "linux && gemini_sync"},
		{"linux && !gemini_sync", "linux", true, "linux && !gemini_sync", "linux && gemini_sync"},
		{"!gemini_sync && (linux || darwin)", "linux || darwin", true, "(linux || darwin) && !gemini_sync", "(linux || darwin) && gemini_sync"},
		{"!(gemini_sync || x)", "!(gemini_sync || x)", false, "!(gemini_sync || x) && !gemini_sync", "!(gemini_sync || x) && gemini_sync"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.expr, func(t *testing.T) {
			expr := mustParseConstraint(t, tt.expr)
			assert.Equal(t, tt.notTag, hasNotTag(expr, DefaultTag))
			base := baseOf(expr, DefaultTag)
			if tt.base == "" {
				assert.Nil(t, base)
			} else {
				require.NotNil(t, base)
				assert.Equal(t, tt.base, base.String())
			}
			assert.Equal(t, tt.async, asyncConstraint(base, DefaultTag).String())
			assert.Equal(t, tt.blocked, blockingConstraint(base, DefaultTag).String())
		})
	}
}

func TestRewriteConstraint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		expr string // empty removes the constraint
		want string
	}{
		{
			name: "insert",
			src:  "package a\n",
			expr: "!gemini_sync",
			want: "//go:build !gemini_sync\n\npackage a\n",
		},
		{
			name: "replace",
			src:  "// Copyright\n\n//go:build linux\n\npackage a\n",
			expr: "linux && !gemini_sync",
			want: "// Copyright\n\n//go:build linux && !gemini_sync\n\npackage a\n",
		},
		{
			name: "legacy plus build kept in sync",
			src:  "//go:build linux\n// +build linux\n\npackage a\n",
			expr: "linux && !gemini_sync",
			want: "//go:build linux && !gemini_sync\n// +build linux,!gemini_sync\n\npackage a\n",
		},
		{
			name: "legacy plus build only",
			src:  "// +build linux\n\npackage a\n",
			expr: "linux && !gemini_sync",
			want: "//go:build linux && !gemini_sync\n// +build linux,!gemini_sync\n\npackage a\n",
		},
		{
			name: "remove",
			src:  "//go:build !gemini_sync\n\npackage a\n",
			want: "\npackage a\n",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			file, fset, err := goparse.ParseFileCode("a.go", []byte(tt.src))
			require.NoError(t, err)
			bc, err := readConstraint(file)
			require.NoError(t, err)
			var expr constraint.Expr
			if tt.expr != "" {
				expr = mustParseConstraint(t, tt.expr)
			}
			got, err := rewriteConstraint(fset, []byte(tt.src), bc, expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReadConstraintMultiple(t *testing.T) {
	src := "//go:build a\n//go:build b\n\npackage a\n"
	file, _, err := goparse.ParseFileCode("a.go", []byte(src))
	require.NoError(t, err)
	_, err = readConstraint(file)
	require.Error(t, err)
}
