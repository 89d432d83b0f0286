package goedit

import (
	"go/token"

	"github.com/xhd2015/gemini/support/edit"
	"github.com/xhd2015/gemini/support/goparse"
)

// Edit edits go source by token positions.
type Edit struct {
	buf  *edit.Buffer
	fset *token.FileSet
}

func New(fset *token.FileSet, content []byte) *Edit {
	return &Edit{
		fset: fset,
		buf:  edit.NewBuffer(content),
	}
}

func (c *Edit) Delete(start token.Pos, end token.Pos) {
	c.buf.Delete(c.offsetOf(start), c.offsetOf(end))
}

func (c *Edit) Insert(start token.Pos, content string) {
	c.buf.Insert(c.offsetOf(start), content)
}

// InsertAt inserts at a raw byte offset, e.g. before the first token.
func (c *Edit) InsertAt(offset int, content string) {
	c.buf.Insert(offset, content)
}

func (c *Edit) Replace(start token.Pos, end token.Pos, content string) {
	c.buf.Replace(c.offsetOf(start), c.offsetOf(end), content)
}

func (c *Edit) Buffer() *edit.Buffer {
	return c.buf
}

func (c *Edit) String() string {
	return c.buf.String()
}

func (c *Edit) offsetOf(pos token.Pos) int {
	return goparse.Offset(c.fset, pos)
}
