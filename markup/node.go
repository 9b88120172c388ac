package markup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Attr returns value of the attribute (case insensitive name match).
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent returns concatenated text of the node and all its
// descendants, similar to DOM textContent.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode:
			collectText(c, sb)
		}
	}
}

// InnerHTML renders children of the node back to markup.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// IsBlank reports whether string has nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CleanText prepares text for the document: blank text becomes empty and a
// lone NUL character becomes new line.
func CleanText(s string) string {
	if IsBlank(s) {
		return ""
	}
	if s == "\x00" {
		return "\n"
	}
	return s
}

// DecodeText unescapes character references in s and cleans result. Used
// for markup obtained with InnerHTML, parsed text is already decoded.
func DecodeText(s string) string {
	if IsBlank(s) {
		return ""
	}
	return CleanText(html.UnescapeString(s))
}
