package generate

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"richdoc/doc"
	"richdoc/highlight"
	"richdoc/markup"
)

func resolvePreformatted(g *Generator, n *html.Node, _ cursor) (*doc.Block, bool) {
	box := doc.NewContainer(doc.RolePreformatted, doc.Vertical)
	box.Style = g.opts.preformattedStyle

	if first := n.FirstChild; first != nil && first.Type == html.ElementNode && first.DataAtom == atom.Code {
		box.Append(g.codeListing(first))
		return box, false
	}

	flow := doc.NewTextFlow()
	span := doc.Wrap(doc.InlineSpan, doc.Text(markup.TextContent(n)))
	span.Presentation.FontFamily = doc.MonospaceFont
	flow.AppendParagraph(&doc.Paragraph{}).Append(span)
	box.Append(flow)
	return box, false
}

func (g *Generator) codeListing(n *html.Node) *doc.Block {
	class, _ := markup.Attr(n, "class")
	lang := highlight.LanguageFromClass(class)

	var code string
	if inner, err := markup.InnerHTML(n); err != nil {
		g.log.Warn("Unable to render code markup, using text content", zap.Error(err))
		code = markup.CleanText(markup.TextContent(n))
	} else {
		code = markup.DecodeText(inner)
	}

	runs, err := g.opts.tokenizer.Tokenize(code, lang)
	if err != nil {
		g.log.Warn("Unable to highlight code, using plain text", zap.String("language", string(lang)), zap.Error(err))
		runs, _ = highlight.Plain{}.Tokenize(code, lang)
	}

	listing := &doc.Code{
		Language:   string(lang),
		FontFamily: doc.MonospaceFont,
		Runs:       make([]doc.CodeRun, 0, len(runs)),
	}
	for _, r := range runs {
		listing.Runs = append(listing.Runs, doc.CodeRun{
			Text:       r.Text,
			Class:      string(r.Class),
			Foreground: g.opts.palette.Color(r.Class),
		})
	}
	return &doc.Block{Kind: doc.BlockCode, Code: listing}
}
