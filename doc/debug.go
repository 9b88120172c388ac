package doc

import (
	"fmt"
	"strconv"

	"richdoc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the document starting at this block. It
// is used for text output and for manual inspection while debugging.
func (b *Block) String() string {
	if b == nil {
		return "<nil Block>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.block(0, b)
	return tw.String()
}

// String returns a readable tree of the inline and its children.
func (in *Inline) String() string {
	if in == nil {
		return "<nil Inline>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.inline(0, in)
	return tw.String()
}

func (tw treeWriter) block(depth int, b *Block) {
	switch b.Kind {
	case BlockTextFlow:
		tw.Node(depth, "TextFlow", "margin", margin(b.Margin))
		for _, p := range b.Paragraphs {
			tw.Node(depth+1, "Paragraph", "margin", margin(p.Margin))
			for _, in := range p.Inlines {
				tw.inline(depth+2, in)
			}
		}
	case BlockContainer:
		tw.Node(depth, "Container",
			"role", string(b.Role),
			"orientation", string(b.Orientation),
			"style", style(b.Style),
			"margin", margin(b.Margin))
		for _, c := range b.Children {
			tw.block(depth+1, c)
		}
	case BlockImage:
		tw.source(depth, "Image", b.Image)
	case BlockRule:
		tw.Node(depth, "Rule")
	case BlockFrame:
		if b.Frame == nil {
			tw.Node(depth, "Frame")
			return
		}
		tw.source(depth, "Frame", b.Frame.Source)
		if b.Frame.Content != "" {
			tw.TextBlock(depth+1, "Content", b.Frame.Content)
		}
	case BlockCode:
		tw.Node(depth, "Code", "language", b.Code.Language, "font", b.Code.FontFamily)
		for _, r := range b.Code.Runs {
			tw.TextBlock(depth+1, fmt.Sprintf("Run[%s]", r.Class), r.Text)
		}
	default:
		tw.Line(depth, "Unknown block kind=%q", b.Kind)
	}
}

func (tw treeWriter) inline(depth int, in *Inline) {
	label := inlineLabel(in.Kind)
	attrs := []string{
		"level", level(in.Level),
		"target", in.Target,
		"title", in.Title,
	}
	attrs = append(attrs, presentation(in.Presentation)...)

	switch in.Kind {
	case InlineText, InlineCode, InlineQuote:
		if hasValues(attrs) {
			tw.Node(depth, label, attrs...)
			tw.TextBlock(depth+1, "Text", in.Text)
		} else {
			tw.TextBlock(depth, label, in.Text)
		}
	case InlineImage:
		tw.source(depth, label, in.Source)
	default:
		tw.Node(depth, label, attrs...)
	}
	for _, c := range in.Children {
		tw.inline(depth+1, c)
	}
}

func (tw treeWriter) source(depth int, label string, s *Source) {
	if s == nil {
		tw.Node(depth, label)
		return
	}
	tw.Node(depth, label, "raw", s.Raw, "uri", s.URI, "mime", s.MimeType)
}

var inlineLabels = map[InlineKind]string{
	InlineText:         "Text",
	InlineBold:         "Bold",
	InlineItalic:       "Italic",
	InlineUnderline:    "Underline",
	InlineStrike:       "Strike",
	InlineSpan:         "Span",
	InlineLink:         "Link",
	InlineImage:        "InlineImage",
	InlineLineBreak:    "LineBreak",
	InlineCode:         "CodeSpan",
	InlineQuote:        "Quote",
	InlineHeader:       "Header",
	InlineMark:         "Mark",
	InlineSmall:        "Small",
	InlineAbbreviation: "Abbreviation",
	InlineRule:         "Rule",
}

func inlineLabel(k InlineKind) string {
	if l, ok := inlineLabels[k]; ok {
		return l
	}
	return "Unknown(" + string(k) + ")"
}

func hasValues(attrs []string) bool {
	for i := 1; i < len(attrs); i += 2 {
		if attrs[i] != "" {
			return true
		}
	}
	return false
}

func presentation(p Presentation) []string {
	if p.IsZero() {
		return nil
	}
	var size, weight string
	if p.FontSize > 0 {
		size = strconv.FormatFloat(p.FontSize, 'g', -1, 64)
	}
	if p.FontWeight != 0 {
		weight = strconv.Itoa(int(p.FontWeight))
	}
	var italic string
	if p.Italic {
		italic = "true"
	}
	return []string{
		"font", p.FontFamily,
		"size", size,
		"weight", weight,
		"italic", italic,
		"decoration", p.Decoration.String(),
		"foreground", p.Foreground,
	}
}

func level(l int) string {
	if l == 0 {
		return ""
	}
	return strconv.Itoa(l)
}

func margin(t Thickness) string {
	if t.IsZero() {
		return ""
	}
	return t.String()
}

func style(s Style) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%v", s)
}
