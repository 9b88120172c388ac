package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Parser turns markup into navigable node tree.
type Parser interface {
	Parse(r io.Reader) (*html.Node, error)
}

// HTMLParser parses markup with golang.org/x/net/html following HTML5
// rules, so fragments are always placed into html/body.
type HTMLParser struct{}

func (HTMLParser) Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ParseString is a convenience wrapper for parsing in-memory markup.
func ParseString(p Parser, s string) (*html.Node, error) {
	return p.Parse(strings.NewReader(s))
}

// FindBody returns body element of the parsed document. When there is none
// (tree was built by caller from a fragment) the node itself is returned.
func FindBody(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if b := findElement(n, atom.Body); b != nil {
		return b
	}
	return n
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// NewReader returns UTF-8 reader for markup. When enc is not nil it is used
// unconditionally, otherwise encoding is detected from BOM, meta tags and
// content type (may be empty). Empty input yields empty reader.
func NewReader(r io.Reader, contentType string, enc encoding.Encoding) (io.Reader, error) {
	if enc != nil {
		return transform.NewReader(r, enc.NewDecoder()), nil
	}
	cr, err := charset.NewReader(r, contentType)
	if errors.Is(err, io.EOF) {
		return strings.NewReader(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to detect markup encoding: %w", err)
	}
	return cr, nil
}
