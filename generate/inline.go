package generate

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"richdoc/doc"
	"richdoc/markup"
)

type inlineHandler func(g *Generator, n *html.Node) *doc.Inline

var inlineHandlers map[atom.Atom]inlineHandler

func init() {
	inlineHandlers = map[atom.Atom]inlineHandler{
		atom.S:      resolveStrike,
		atom.Strike: resolveStrike,
		atom.Del:    resolveStrike,
		atom.Img:    resolveInlineImage,
		atom.A:      resolveLink,
		atom.B:      wrapping(doc.InlineBold),
		atom.Strong: wrapping(doc.InlineBold),
		atom.I:      wrapping(doc.InlineItalic),
		atom.Em:     wrapping(doc.InlineItalic),
		atom.Cite:   wrapping(doc.InlineItalic),
		atom.U:      wrapping(doc.InlineUnderline),
		atom.Ins:    wrapping(doc.InlineUnderline),
		atom.Span:   wrapping(doc.InlineSpan),
		atom.Br:     resolveLineBreak,
		atom.Hr:     resolveInlineRule,
		atom.Code:   resolveCodeSpan,
		atom.Q:      resolveQuote,
		atom.Abbr:   resolveAbbreviation,
		atom.Mark:   resolveMark,
		atom.Small:  resolveSmall,
	}
}

// inlineChildren resolves children of n into inline content.
func (g *Generator) inlineChildren(n *html.Node) []*doc.Inline {
	var out []*doc.Inline
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if in := g.resolveInline(child); in != nil {
			out = append(out, in)
		}
	}
	return out
}

func (g *Generator) resolveInline(n *html.Node) *doc.Inline {
	switch n.Type {
	case html.TextNode:
		return textRun(n.Data)
	case html.ElementNode:
	default:
		return nil
	}

	if in, ok := g.handleChain(n); ok {
		return in
	}
	if h, ok := inlineHandlers[n.DataAtom]; ok {
		return h(g, n)
	}
	g.log.Debug("Unsupported tag, using text content", zap.String("tag", n.Data))
	return doc.Text(markup.CleanText(markup.TextContent(n)))
}

// textRun keeps single space for whitespace between inlines.
func textRun(s string) *doc.Inline {
	if s != "" && markup.IsBlank(s) {
		return doc.Text(" ")
	}
	return doc.Text(markup.CleanText(s))
}

func wrapping(kind doc.InlineKind) inlineHandler {
	return func(g *Generator, n *html.Node) *doc.Inline {
		return doc.Wrap(kind, g.inlineChildren(n)...)
	}
}

func resolveStrike(g *Generator, n *html.Node) *doc.Inline {
	in := doc.Wrap(doc.InlineStrike, g.inlineChildren(n)...)
	in.Presentation.Decoration = doc.DecorationStrikethrough
	return in
}

func resolveInlineImage(g *Generator, n *html.Node) *doc.Inline {
	return &doc.Inline{Kind: doc.InlineImage, Source: g.source(n, "src")}
}

func resolveLink(g *Generator, n *html.Node) *doc.Inline {
	link := doc.Wrap(doc.InlineLink, g.inlineChildren(n)...)
	if raw, ok := markup.Attr(n, "href"); ok {
		link.Target = markup.ParseTarget(raw, g.opts.base)
		if link.Target == "" && raw != "" {
			g.log.Debug("Unable to parse link target", zap.String("tag", n.Data), zap.String("href", raw))
		}
	}
	return link
}

func resolveLineBreak(_ *Generator, _ *html.Node) *doc.Inline {
	return &doc.Inline{Kind: doc.InlineLineBreak}
}

func resolveInlineRule(_ *Generator, _ *html.Node) *doc.Inline {
	return &doc.Inline{Kind: doc.InlineRule, Presentation: doc.Presentation{Foreground: "Gray"}}
}

func resolveCodeSpan(_ *Generator, n *html.Node) *doc.Inline {
	return &doc.Inline{
		Kind: doc.InlineCode,
		Text: markup.TextContent(n),
		Presentation: doc.Presentation{
			FontFamily: doc.MonospaceFont,
			Foreground: "Red",
		},
	}
}

func resolveQuote(_ *Generator, n *html.Node) *doc.Inline {
	return &doc.Inline{
		Kind:         doc.InlineQuote,
		Text:         "“" + markup.TextContent(n) + "”",
		Presentation: doc.Presentation{Italic: true},
	}
}

func resolveAbbreviation(g *Generator, n *html.Node) *doc.Inline {
	in := doc.Wrap(doc.InlineAbbreviation, g.inlineChildren(n)...)
	in.Presentation.Decoration = doc.DecorationUnderline
	in.Title, _ = markup.Attr(n, "title")
	return in
}

func resolveMark(g *Generator, n *html.Node) *doc.Inline {
	in := doc.Wrap(doc.InlineMark, g.inlineChildren(n)...)
	in.Presentation = doc.Presentation{
		FontWeight: doc.WeightSemiBold,
		Decoration: doc.DecorationUnderline,
		Foreground: "Goldenrod",
	}
	return in
}

func resolveSmall(g *Generator, n *html.Node) *doc.Inline {
	in := doc.Wrap(doc.InlineSmall, g.inlineChildren(n)...)
	in.Presentation.FontSize = 12
	return in
}
