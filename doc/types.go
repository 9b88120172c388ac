// Package doc defines the styled document tree produced from markup.
package doc

import (
	"fmt"
	"strings"
)

// Style is an opaque caller supplied style reference. It is attached to
// containers as is and never inspected.
type Style any

// Thickness describes spacing around an element in left, top, right, bottom
// order.
type Thickness struct {
	Left   float64 `yaml:"left,omitempty"`
	Top    float64 `yaml:"top,omitempty"`
	Right  float64 `yaml:"right,omitempty"`
	Bottom float64 `yaml:"bottom,omitempty"`
}

func (t Thickness) IsZero() bool {
	return t == Thickness{}
}

func (t Thickness) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", t.Left, t.Top, t.Right, t.Bottom)
}

// FontWeight uses the usual numeric scale, 400 is normal.
type FontWeight int

const (
	WeightNormal   FontWeight = 400
	WeightSemiBold FontWeight = 600
	WeightBold     FontWeight = 700
)

// Decoration is a set of text decorations.
type Decoration uint8

const (
	DecorationUnderline Decoration = 1 << iota
	DecorationStrikethrough
)

func (d Decoration) Has(f Decoration) bool {
	return d&f != 0
}

func (d Decoration) String() string {
	var parts []string
	if d.Has(DecorationUnderline) {
		parts = append(parts, "underline")
	}
	if d.Has(DecorationStrikethrough) {
		parts = append(parts, "strikethrough")
	}
	return strings.Join(parts, "|")
}

// MonospaceFont is the font family used for code spans and preformatted text.
const MonospaceFont = "Consolas"

// Presentation carries visual attributes of an inline. Zero value means
// "inherit from parent".
type Presentation struct {
	FontFamily string     `yaml:"font_family,omitempty"`
	FontSize   float64    `yaml:"font_size,omitempty"`
	FontWeight FontWeight `yaml:"font_weight,omitempty"`
	Italic     bool       `yaml:"italic,omitempty"`
	Decoration Decoration `yaml:"decoration,omitempty"`
	Foreground string     `yaml:"foreground,omitempty"`
}

func (p Presentation) IsZero() bool {
	return p == Presentation{}
}

// Source is a reference to external content (image or embedded frame).
// URI is empty when the raw reference could not be parsed.
type Source struct {
	Raw      string `yaml:"raw,omitempty"`
	URI      string `yaml:"uri,omitempty"`
	MimeType string `yaml:"mime_type,omitempty"`
}

// Resolved reports whether source points anywhere.
func (s *Source) Resolved() bool {
	return s != nil && s.URI != ""
}

// InlineKind distinguishes different inline content types.
type InlineKind string

const (
	InlineText         InlineKind = "text"
	InlineBold         InlineKind = "bold"
	InlineItalic       InlineKind = "italic"
	InlineUnderline    InlineKind = "underline"
	InlineStrike       InlineKind = "strike"
	InlineSpan         InlineKind = "span"
	InlineLink         InlineKind = "link"
	InlineImage        InlineKind = "image"
	InlineLineBreak    InlineKind = "line-break"
	InlineCode         InlineKind = "code"
	InlineQuote        InlineKind = "quote"
	InlineHeader       InlineKind = "header"
	InlineMark         InlineKind = "mark"
	InlineSmall        InlineKind = "small"
	InlineAbbreviation InlineKind = "abbreviation"
	InlineRule         InlineKind = "rule"
)

// Inline stores text or styled inline content. Which fields are meaningful
// depends on Kind: Text for text, code and quote; Level for header; Target
// for link; Title for abbreviation; Source for image.
type Inline struct {
	Kind         InlineKind   `yaml:"kind"`
	Text         string       `yaml:"text,omitempty"`
	Level        int          `yaml:"level,omitempty"`
	Target       string       `yaml:"target,omitempty"`
	Title        string       `yaml:"title,omitempty"`
	Source       *Source      `yaml:"source,omitempty"`
	Presentation Presentation `yaml:"presentation,omitempty"`
	Children     []*Inline    `yaml:"children,omitempty"`
}

// Text returns new text run.
func Text(s string) *Inline {
	return &Inline{Kind: InlineText, Text: s}
}

// Wrap returns new inline of the requested kind with children.
func Wrap(kind InlineKind, children ...*Inline) *Inline {
	return &Inline{Kind: kind, Children: children}
}

// PlainText returns concatenated text of the inline and all its children.
func (in *Inline) PlainText() string {
	if in == nil {
		return ""
	}
	var sb strings.Builder
	in.writeText(&sb)
	return sb.String()
}

func (in *Inline) writeText(sb *strings.Builder) {
	switch in.Kind {
	case InlineText, InlineCode, InlineQuote:
		sb.WriteString(in.Text)
	case InlineLineBreak:
		sb.WriteByte('\n')
	}
	for _, c := range in.Children {
		c.writeText(sb)
	}
}

// Paragraph is an ordered sequence of inlines.
type Paragraph struct {
	Margin  Thickness `yaml:"margin,omitempty"`
	Inlines []*Inline `yaml:"inlines,omitempty"`
}

// Append adds inline content to the end of the paragraph.
func (p *Paragraph) Append(in ...*Inline) {
	p.Inlines = append(p.Inlines, in...)
}

// PlainText returns the plain text content of the paragraph.
func (p *Paragraph) PlainText() string {
	var sb strings.Builder
	for _, in := range p.Inlines {
		in.writeText(&sb)
	}
	return sb.String()
}

// BlockKind distinguishes the different kinds of block content.
type BlockKind string

const (
	BlockTextFlow  BlockKind = "text-flow"
	BlockContainer BlockKind = "container"
	BlockImage     BlockKind = "image"
	BlockRule      BlockKind = "rule"
	BlockFrame     BlockKind = "frame"
	BlockCode      BlockKind = "code"
)

// Role tells what a container was built for.
type Role string

const (
	RoleDocument     Role = "document"
	RoleDivision     Role = "division"
	RoleBlockquote   Role = "blockquote"
	RoleList         Role = "list"
	RoleListRow      Role = "list-row"
	RolePreformatted Role = "preformatted"
)

// Orientation of container children.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Frame is embedded external content: either literal markup or a source.
type Frame struct {
	Content string  `yaml:"content,omitempty"`
	Source  *Source `yaml:"source,omitempty"`
}

// CodeRun is a piece of highlighted code with its classification.
type CodeRun struct {
	Text       string `yaml:"text"`
	Class      string `yaml:"class,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// Code is a highlighted code listing.
type Code struct {
	Language   string    `yaml:"language"`
	FontFamily string    `yaml:"font_family,omitempty"`
	Runs       []CodeRun `yaml:"runs,omitempty"`
}

// Text returns code listing as it was before tokenization.
func (c *Code) Text() string {
	var sb strings.Builder
	for _, r := range c.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Block stores a single structural unit of the document. Which fields are
// meaningful depends on Kind: Paragraphs for text-flow; Role, Orientation,
// Style and Children for container; Image for image; Frame for frame; Code
// for code.
type Block struct {
	Kind        BlockKind    `yaml:"kind"`
	Role        Role         `yaml:"role,omitempty"`
	Orientation Orientation  `yaml:"orientation,omitempty"`
	Style       Style        `yaml:"style,omitempty"`
	Margin      Thickness    `yaml:"margin,omitempty"`
	Paragraphs  []*Paragraph `yaml:"paragraphs,omitempty"`
	Children    []*Block     `yaml:"children,omitempty"`
	Image       *Source      `yaml:"image,omitempty"`
	Frame       *Frame       `yaml:"frame,omitempty"`
	Code        *Code        `yaml:"code,omitempty"`
}

// NewTextFlow returns empty text flow block.
func NewTextFlow() *Block {
	return &Block{Kind: BlockTextFlow}
}

// NewContainer returns empty container block.
func NewContainer(role Role, orientation Orientation) *Block {
	return &Block{Kind: BlockContainer, Role: role, Orientation: orientation}
}

// AppendParagraph adds paragraph to the text flow and returns it.
func (b *Block) AppendParagraph(p *Paragraph) *Paragraph {
	b.Paragraphs = append(b.Paragraphs, p)
	return p
}

// LastParagraph returns last paragraph of the text flow or nil.
func (b *Block) LastParagraph() *Paragraph {
	if b == nil || len(b.Paragraphs) == 0 {
		return nil
	}
	return b.Paragraphs[len(b.Paragraphs)-1]
}

// Append adds blocks to the container.
func (b *Block) Append(children ...*Block) {
	b.Children = append(b.Children, children...)
}

// PlainText returns text of the block, paragraphs and rows are separated
// by new lines.
func (b *Block) PlainText() string {
	var lines []string
	b.collectText(&lines)
	return strings.Join(lines, "\n")
}

func (b *Block) collectText(lines *[]string) {
	switch b.Kind {
	case BlockTextFlow:
		for _, p := range b.Paragraphs {
			*lines = append(*lines, p.PlainText())
		}
	case BlockCode:
		*lines = append(*lines, b.Code.Text())
	case BlockFrame:
		if b.Frame.Content != "" {
			*lines = append(*lines, b.Frame.Content)
		}
	case BlockContainer:
		if b.Orientation == Horizontal {
			var parts []string
			for _, c := range b.Children {
				parts = append(parts, c.PlainText())
			}
			*lines = append(*lines, strings.Join(parts, " "))
			return
		}
		for _, c := range b.Children {
			c.collectText(lines)
		}
	}
}
