package astdiff

import (
	"testing"

	"github.com/xhd2015/gemini/support/goparse"
)

func TestNodeSame(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{
			name: "empty",
			want: true,
		},
		{
			name: "func with comment",
			a:    `func main(){}`,
			b:    "func     main(){ /**/}",
			want: true,
		},
		{
			name: "func with space",
			a:    `func main() string {}`,
			b: `func     main()    string { 
			}`,
			want: true,
		},
		{
			name: "func signature changed",
			a:    `func greet(s string){}`,
			b:    "func     greet(s string,version int)  { return \"\" }",
			want: false,
		},
		{
			name: "return statement",
			a:    `func greet(s string) string{ return "hello " + s }`,
			b: `func     greet(s string,)  string{ 
			return  "hello " + s
			}`,
			want: true,
		},
		{
			name: "generic result",
			a:    `func fetch() async.Future[int] { return async.Block(func() int { return 1 }) }`,
			b:    `func fetch() async.Future[int] { return async.Block(func() int {
				return 1
			}) }`,
			want: true,
		},
		{
			name: "immediate call differs from block",
			a:    `func fetch() int { return func() int { return 1 }() }`,
			b:    `func fetch() int { return func() int { return 1 } }`,
			want: false,
		},
		{
			name: "control flow",
			a: `func f(xs []int) { for i, x := range xs { if x > 0 { go g(i) } else { defer h() } } }`,
			b: `func f(xs []int) {
				for i, x := range xs {
					if x > 0 {
						go g(i)
					} else {
						defer h()
					}
				}
			}`,
			want: true,
		},
		{
			name: "switch case differs",
			a:    `func f(x int) { switch x { case 1: g() } }`,
			b:    `func f(x int) { switch x { case 2: g() } }`,
			want: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			testNodeSame(t, tt.a, tt.b, tt.want)
		})
	}
}

func testNodeSame(t *testing.T, a string, b string, want bool) {
	fileA, _, err := goparse.ParseFileCode("a.go", []byte(goparse.AddMissingPackage(a, "main")))
	if err != nil {
		t.Error(err)
		return
	}
	fileB, _, err := goparse.ParseFileCode("b.go", []byte(goparse.AddMissingPackage(b, "main")))
	if err != nil {
		t.Error(err)
		return
	}
	got := NodeSame(fileA, fileB)
	if got != want {
		t.Errorf("expect node same: %v, actual: %v", want, got)
	}
}
