package memory

import (
	"strings"

	"github.com/funvibe/quandary/internal/value"
)

// Format renders v in textual form. Refs print as (L . R) using the
// current field values. A cell reached again while it is still being
// printed renders as "...".
func (h *Heap) Format(v value.Value) string {
	var b strings.Builder
	h.format(&b, v, make(map[uint64]bool))
	return b.String()
}

func (h *Heap) format(b *strings.Builder, v value.Value, onPath map[uint64]bool) {
	id, ok := v.AsRef()
	if !ok {
		b.WriteString(v.String())
		return
	}
	if onPath[id] {
		b.WriteString("...")
		return
	}
	c, err := h.Cell(v)
	if err != nil {
		b.WriteString(v.String())
		return
	}
	onPath[id] = true
	b.WriteByte('(')
	h.format(b, c.get(LeftField), onPath)
	b.WriteString(" . ")
	h.format(b, c.get(RightField), onPath)
	b.WriteByte(')')
	delete(onPath, id)
}
