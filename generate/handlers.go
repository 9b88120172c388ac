package generate

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"richdoc/doc"
)

// InlineHandler may claim element before built-in rules are applied. When
// claimed, returned inline replaces the element and its children are not
// visited. Nil inline drops the element.
type InlineHandler interface {
	HandleInline(n *html.Node) (*doc.Inline, bool)
}

// InlineHandlerFunc adapts function to InlineHandler.
type InlineHandlerFunc func(n *html.Node) (*doc.Inline, bool)

func (f InlineHandlerFunc) HandleInline(n *html.Node) (*doc.Inline, bool) {
	return f(n)
}

// ReplaceTag replaces every element with the given tag name with fixed text.
func ReplaceTag(tag, text string) InlineHandler {
	return InlineHandlerFunc(func(n *html.Node) (*doc.Inline, bool) {
		if !strings.EqualFold(n.Data, tag) {
			return nil, false
		}
		return doc.Text(text), true
	})
}

// ReplaceSelector replaces every element matching CSS selector with fixed
// text.
func ReplaceSelector(selector, text string) (InlineHandler, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("bad selector %q: %w", selector, err)
	}
	return InlineHandlerFunc(func(n *html.Node) (*doc.Inline, bool) {
		if !sel.Match(n) {
			return nil, false
		}
		return doc.Text(text), true
	}), nil
}

func (g *Generator) handleChain(n *html.Node) (*doc.Inline, bool) {
	for _, h := range g.opts.handlers {
		if in, ok := h.HandleInline(n); ok {
			return in, true
		}
	}
	return nil, false
}
