package edit

import (
	"sort"
	"strings"
)

// Buffer accumulates non-overlapping edits against an immutable
// original content. Offsets always refer to the original content.
type Buffer struct {
	old   []byte
	edits []*op
}

type op struct {
	start int
	end   int
	text  string
	seq   int
}

func NewBuffer(content []byte) *Buffer {
	return &Buffer{old: content}
}

func (c *Buffer) Insert(offset int, content string) {
	c.add(offset, offset, content)
}

func (c *Buffer) Delete(start int, end int) {
	c.add(start, end, "")
}

func (c *Buffer) Replace(start int, end int, content string) {
	c.add(start, end, content)
}

func (c *Buffer) HasEdits() bool {
	return len(c.edits) > 0
}

func (c *Buffer) add(start int, end int, text string) {
	if start < 0 || end < start || end > len(c.old) {
		panic("edit: invalid range")
	}
	c.edits = append(c.edits, &op{start: start, end: end, text: text, seq: len(c.edits)})
}

// Bytes applies all edits. Inserts at the same offset keep
// their insertion order.
func (c *Buffer) Bytes() []byte {
	return []byte(c.String())
}

func (c *Buffer) String() string {
	edits := make([]*op, len(c.edits))
	copy(edits, c.edits)
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].seq < edits[j].seq
	})
	var b strings.Builder
	cursor := 0
	for _, e := range edits {
		if e.start < cursor {
			panic("edit: overlapping edits")
		}
		b.Write(c.old[cursor:e.start])
		b.WriteString(e.text)
		cursor = e.end
	}
	b.Write(c.old[cursor:])
	return b.String()
}
