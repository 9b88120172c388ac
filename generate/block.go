package generate

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"richdoc/doc"
	"richdoc/markup"
)

// blockHandler produces block for the node and reports whether the block
// was already placed into the cursor sequence.
type blockHandler func(g *Generator, n *html.Node, c cursor) (*doc.Block, bool)

var blockHandlers map[atom.Atom]blockHandler

var (
	headingMargin = doc.Thickness{Top: 19.5, Bottom: 3}
	headingLevels = map[atom.Atom]int{
		atom.H1: 1, atom.H2: 2, atom.H3: 3,
		atom.H4: 4, atom.H5: 5, atom.H6: 6,
	}
	headingSizes = [...]float64{32, 28, 24, 20, 18, 14}
)

const defaultHeadingSize = 14

func init() {
	blockHandlers = map[atom.Atom]blockHandler{
		atom.P:          resolveParagraph,
		atom.Li:         resolveParagraph,
		atom.Div:        resolveDivision,
		atom.Ul:         resolveUnorderedList,
		atom.Ol:         resolveOrderedList,
		atom.Pre:        resolvePreformatted,
		atom.Blockquote: resolveBlockquote,
		atom.Img:        resolveImage,
		atom.Iframe:     resolveFrame,
		atom.Hr:         resolveRule,
	}
	for a := range headingLevels {
		blockHandlers[a] = resolveHeading
	}
}

// emitChildren resolves children of n into the cursor sequence.
func (g *Generator) emitChildren(n *html.Node, c cursor) {
	if n == nil {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if b, inserted := g.resolveBlock(child, c); b != nil && !inserted {
			c.append(b)
		}
	}
}

func (g *Generator) resolveBlock(n *html.Node, c cursor) (*doc.Block, bool) {
	switch n.Type {
	case html.TextNode:
		if markup.IsBlank(n.Data) {
			return nil, false
		}
		return g.foldInline(g.resolveInline(n), c)
	case html.ElementNode:
	default:
		return nil, false
	}

	if in, ok := g.handleChain(n); ok {
		return g.foldInline(in, c)
	}
	if h, ok := blockHandlers[n.DataAtom]; ok {
		return h(g, n, c)
	}
	return g.foldInline(g.resolveInline(n), c)
}

// foldInline adds inline to the current paragraph of the current text flow.
func (g *Generator) foldInline(in *doc.Inline, c cursor) (*doc.Block, bool) {
	if in == nil {
		return nil, false
	}
	flow, p := c.paragraph()
	p.Append(in)
	return flow, true
}

func resolveParagraph(g *Generator, n *html.Node, c cursor) (*doc.Block, bool) {
	flow := c.textFlow()
	p := flow.AppendParagraph(&doc.Paragraph{})
	p.Append(g.inlineChildren(n)...)
	return flow, true
}

func resolveHeading(g *Generator, n *html.Node, c cursor) (*doc.Block, bool) {
	level := headingLevels[n.DataAtom]
	size := float64(defaultHeadingSize)
	if level > 0 && level <= len(headingSizes) {
		size = headingSizes[level-1]
	}

	flow := c.textFlow()
	p := flow.AppendParagraph(&doc.Paragraph{Margin: headingMargin})
	p.Append(&doc.Inline{
		Kind:  doc.InlineHeader,
		Level: level,
		Presentation: doc.Presentation{
			FontSize:   size,
			FontWeight: doc.WeightSemiBold,
		},
		Children: g.inlineChildren(n),
	})
	return flow, true
}

func resolveDivision(g *Generator, n *html.Node, _ cursor) (*doc.Block, bool) {
	return g.division(n), false
}

func (g *Generator) division(n *html.Node) *doc.Block {
	div := doc.NewContainer(doc.RoleDivision, doc.Vertical)
	g.emitChildren(n, newCursor(&div.Children))
	return div
}

func resolveBlockquote(g *Generator, n *html.Node, _ cursor) (*doc.Block, bool) {
	quote := doc.NewContainer(doc.RoleBlockquote, doc.Vertical)
	quote.Style = g.opts.blockquoteStyle
	quote.Append(g.division(n))
	return quote, false
}

func resolveImage(g *Generator, n *html.Node, _ cursor) (*doc.Block, bool) {
	return &doc.Block{Kind: doc.BlockImage, Image: g.source(n, "src")}, false
}

func resolveFrame(g *Generator, n *html.Node, _ cursor) (*doc.Block, bool) {
	frame := &doc.Frame{}
	if content, ok := markup.Attr(n, "srcdoc"); ok && content != "" {
		frame.Content = content
	} else if _, ok := markup.Attr(n, "src"); ok {
		frame.Source = g.source(n, "src")
	}
	return &doc.Block{Kind: doc.BlockFrame, Frame: frame}, false
}

func resolveRule(_ *Generator, _ *html.Node, _ cursor) (*doc.Block, bool) {
	return &doc.Block{Kind: doc.BlockRule}, false
}

// source parses reference from the node attribute. Unparsable references
// are kept raw.
func (g *Generator) source(n *html.Node, key string) *doc.Source {
	raw, _ := markup.Attr(n, key)
	src := markup.ParseSource(raw, g.opts.base)
	if raw != "" && !src.Resolved() {
		g.log.Debug("Unable to parse reference", zap.String("tag", n.Data), zap.String(key, raw))
	}
	return src
}
