package doc

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// ToXML builds markup document describing the tree in terms familiar to
// XAML based renderers: StackPanel, RichTextBlock, Paragraph, Run and so on.
func ToXML(root *Block) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	if root == nil {
		doc.CreateElement("StackPanel")
		return doc
	}
	writeBlock(&doc.Element, root)
	return doc
}

// MarshalXML returns indented XML representation of the tree.
func MarshalXML(root *Block) ([]byte, error) {
	doc := ToXML(root)
	doc.Indent(2)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("unable to serialize document tree: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBlock(parent *etree.Element, b *Block) {
	switch b.Kind {
	case BlockTextFlow:
		rtb := parent.CreateElement("RichTextBlock")
		setThickness(rtb, "Margin", b.Margin)
		for _, p := range b.Paragraphs {
			para := rtb.CreateElement("Paragraph")
			setThickness(para, "Margin", p.Margin)
			for _, in := range p.Inlines {
				writeInline(para, in)
			}
		}
	case BlockContainer:
		writeContainer(parent, b)
	case BlockImage:
		img := parent.CreateElement("Image")
		img.CreateAttr("Stretch", "UniformToFill")
		writeSource(img, "Source", b.Image)
	case BlockRule:
		line := parent.CreateElement("Line")
		line.CreateAttr("X2", "1000")
		line.CreateAttr("Stroke", "Gray")
		line.CreateAttr("StrokeThickness", "1")
	case BlockFrame:
		wv := parent.CreateElement("WebView")
		if b.Frame != nil {
			if b.Frame.Content != "" {
				wv.CreateAttr("ContentHtml", b.Frame.Content)
			}
			writeSource(wv, "Source", b.Frame.Source)
		}
	case BlockCode:
		code := parent.CreateElement("CodeHighlightedTextBlock")
		code.CreateAttr("HighlightLanguage", b.Code.Language)
		if b.Code.FontFamily != "" {
			code.CreateAttr("FontFamily", b.Code.FontFamily)
		}
		for _, r := range b.Code.Runs {
			run := code.CreateElement("Run")
			if r.Class != "" {
				run.CreateAttr("Class", r.Class)
			}
			if r.Foreground != "" {
				run.CreateAttr("Foreground", r.Foreground)
			}
			run.SetText(r.Text)
		}
	}
}

func writeContainer(parent *etree.Element, b *Block) {
	// styled containers are borders around their content
	if b.Style != nil {
		border := parent.CreateElement("Border")
		border.CreateAttr("Style", fmt.Sprintf("%v", b.Style))
		parent = border
	}
	panel := parent.CreateElement("StackPanel")
	if b.Role != "" {
		panel.CreateAttr("Tag", string(b.Role))
	}
	if b.Orientation == Horizontal {
		panel.CreateAttr("Orientation", "Horizontal")
	}
	setThickness(panel, "Margin", b.Margin)
	for _, c := range b.Children {
		writeBlock(panel, c)
	}
}

func writeInline(parent *etree.Element, in *Inline) {
	var el *etree.Element
	switch in.Kind {
	case InlineText, InlineCode, InlineQuote:
		el = parent.CreateElement("Run")
		el.SetText(in.Text)
	case InlineBold:
		el = parent.CreateElement("Bold")
	case InlineItalic:
		el = parent.CreateElement("Italic")
	case InlineUnderline:
		el = parent.CreateElement("Underline")
	case InlineLink:
		el = parent.CreateElement("Hyperlink")
		if in.Target != "" {
			el.CreateAttr("NavigateUri", in.Target)
		}
	case InlineLineBreak:
		el = parent.CreateElement("LineBreak")
	case InlineImage:
		el = parent.CreateElement("InlineUIContainer")
		img := el.CreateElement("Image")
		writeSource(img, "Source", in.Source)
	case InlineRule:
		el = parent.CreateElement("InlineUIContainer")
		line := el.CreateElement("Line")
		line.CreateAttr("X2", "1000")
		line.CreateAttr("Stroke", "Gray")
		line.CreateAttr("StrokeThickness", "1")
	case InlineAbbreviation:
		el = parent.CreateElement("Span")
		if in.Title != "" {
			el.CreateAttr("ToolTipService.ToolTip", in.Title)
		}
	default:
		// strike, span, header, mark, small
		el = parent.CreateElement("Span")
		if in.Kind != InlineSpan {
			el.CreateAttr("Tag", string(in.Kind))
		}
	}
	writePresentation(el, in.Presentation)
	for _, c := range in.Children {
		writeInline(el, c)
	}
}

func writePresentation(el *etree.Element, p Presentation) {
	if p.FontFamily != "" {
		el.CreateAttr("FontFamily", p.FontFamily)
	}
	if p.FontSize > 0 {
		el.CreateAttr("FontSize", strconv.FormatFloat(p.FontSize, 'g', -1, 64))
	}
	switch p.FontWeight {
	case 0:
	case WeightSemiBold:
		el.CreateAttr("FontWeight", "SemiBold")
	case WeightBold:
		el.CreateAttr("FontWeight", "Bold")
	default:
		el.CreateAttr("FontWeight", strconv.Itoa(int(p.FontWeight)))
	}
	if p.Italic {
		el.CreateAttr("FontStyle", "Italic")
	}
	if p.Decoration != 0 {
		el.CreateAttr("TextDecorations", decorationNames(p.Decoration))
	}
	if p.Foreground != "" {
		el.CreateAttr("Foreground", p.Foreground)
	}
}

func decorationNames(d Decoration) string {
	switch {
	case d.Has(DecorationUnderline) && d.Has(DecorationStrikethrough):
		return "Underline,Strikethrough"
	case d.Has(DecorationUnderline):
		return "Underline"
	default:
		return "Strikethrough"
	}
}

func writeSource(el *etree.Element, attr string, s *Source) {
	if s.Resolved() {
		el.CreateAttr(attr, s.URI)
	}
}

func setThickness(el *etree.Element, attr string, t Thickness) {
	if !t.IsZero() {
		el.CreateAttr(attr, t.String())
	}
}
