package generate

import (
	"richdoc/doc"
)

// cursor points to the block sequence being filled.
type cursor struct {
	seq *[]*doc.Block
}

func newCursor(seq *[]*doc.Block) cursor {
	return cursor{seq: seq}
}

func (c cursor) last() *doc.Block {
	if len(*c.seq) == 0 {
		return nil
	}
	return (*c.seq)[len(*c.seq)-1]
}

func (c cursor) append(b *doc.Block) {
	if c.last() == b {
		return
	}
	*c.seq = append(*c.seq, b)
}

// textFlow returns text flow which is the most recent block of the
// sequence, appending new one when necessary.
func (c cursor) textFlow() *doc.Block {
	if b := c.last(); b != nil && b.Kind == doc.BlockTextFlow {
		return b
	}
	flow := doc.NewTextFlow()
	*c.seq = append(*c.seq, flow)
	return flow
}

// paragraph returns current text flow and its last paragraph, both are
// created when necessary.
func (c cursor) paragraph() (*doc.Block, *doc.Paragraph) {
	flow := c.textFlow()
	if p := flow.LastParagraph(); p != nil {
		return flow, p
	}
	return flow, flow.AppendParagraph(&doc.Paragraph{})
}
