package generate

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"richdoc/doc"
	"richdoc/markup"
)

const bullet = "•"

var (
	rowMargin    = doc.Thickness{Top: 3, Bottom: 3}
	markerMargin = doc.Thickness{Left: 9.5, Right: 9.5}
)

func resolveUnorderedList(g *Generator, n *html.Node, _ cursor) (*doc.Block, bool) {
	return g.list(n, false), false
}

func resolveOrderedList(g *Generator, n *html.Node, _ cursor) (*doc.Block, bool) {
	return g.list(n, true), false
}

// list produces one row per non-blank item. Blank items do not consume
// numbers.
func (g *Generator) list(n *html.Node, ordered bool) *doc.Block {
	list := doc.NewContainer(doc.RoleList, doc.Vertical)

	number := 1
	if ordered {
		number = g.listStart(n)
	}

	for item := n.FirstChild; item != nil; item = item.NextSibling {
		if item.Type != html.ElementNode || item.DataAtom != atom.Li {
			if item.Type == html.ElementNode {
				g.log.Debug("Ignoring list child", zap.String("tag", item.Data))
			}
			continue
		}
		if markup.IsBlank(markup.TextContent(item)) {
			continue
		}

		marker := bullet
		if ordered {
			marker = strconv.Itoa(number) + "."
			number++
		}
		list.Append(g.listRow(item, marker))
	}
	return list
}

func (g *Generator) listStart(n *html.Node) int {
	v, ok := markup.Attr(n, "start")
	if !ok {
		return 1
	}
	start, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		g.log.Debug("Bad list start", zap.String("tag", n.Data), zap.String("start", v))
		return 1
	}
	return start
}

func (g *Generator) listRow(item *html.Node, marker string) *doc.Block {
	row := doc.NewContainer(doc.RoleListRow, doc.Horizontal)
	row.Margin = rowMargin

	mark := doc.NewTextFlow()
	mark.Margin = markerMargin
	mark.AppendParagraph(&doc.Paragraph{}).Append(doc.Text(marker))

	content := doc.NewTextFlow()
	content.AppendParagraph(&doc.Paragraph{}).Append(g.inlineChildren(item)...)

	row.Append(mark, content)
	return row
}
