package edit

import (
	"testing"
)

func TestBuffer(t *testing.T) {
	tests := []struct {
		name  string
		old   string
		apply func(b *Buffer)
		want  string
	}{
		{
			name:  "no edits",
			old:   "hello",
			apply: func(b *Buffer) {},
			want:  "hello",
		},
		{
			name: "insert head and tail",
			old:  "package a\n",
			apply: func(b *Buffer) {
				b.Insert(0, "//go:build !x\n\n")
				b.Insert(10, "// end\n")
			},
			want: "//go:build !x\n\npackage a\n// end\n",
		},
		{
			name: "replace and delete",
			old:  "async.Await(x)",
			apply: func(b *Buffer) {
				b.Delete(0, 12)
				b.Replace(13, 14, "")
			},
			want: "x",
		},
		{
			name: "same offset keeps order",
			old:  "ab",
			apply: func(b *Buffer) {
				b.Insert(1, "1")
				b.Insert(1, "2")
			},
			want: "a12b",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer([]byte(tt.old))
			tt.apply(b)
			if got := b.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
