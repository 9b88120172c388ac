package generate

import (
	"net/url"

	"go.uber.org/zap"

	"richdoc/doc"
	"richdoc/highlight"
	"richdoc/markup"
)

type options struct {
	parser            markup.Parser
	blockquoteStyle   doc.Style
	preformattedStyle doc.Style
	handlers          []InlineHandler
	base              *url.URL
	tokenizer         highlight.Tokenizer
	palette           highlight.Palette
	log               *zap.Logger
}

func defaultOptions() options {
	return options{
		parser:    markup.HTMLParser{},
		tokenizer: highlight.Chroma{},
		palette:   highlight.DefaultPalette(),
	}
}

// Option configures Generator.
type Option func(*options)

// WithParser replaces markup parser. Nil parser leaves generator able to
// work only with pre-parsed trees.
func WithParser(p markup.Parser) Option {
	return func(o *options) {
		o.parser = p
	}
}

// WithStyles sets style handles attached to blockquote and preformatted
// containers.
func WithStyles(blockquote, preformatted doc.Style) Option {
	return func(o *options) {
		o.blockquoteStyle = blockquote
		o.preformattedStyle = preformatted
	}
}

// WithInlineHandlers sets ordered handler chain consulted before built-in
// inline rules.
func WithInlineHandlers(handlers ...InlineHandler) Option {
	return func(o *options) {
		o.handlers = append(o.handlers[:0:0], handlers...)
	}
}

// WithBaseURL sets base for relative link, image and frame references.
func WithBaseURL(base *url.URL) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithTokenizer sets code tokenizer, nil disables highlighting.
func WithTokenizer(t highlight.Tokenizer) Option {
	return func(o *options) {
		if t == nil {
			t = highlight.Plain{}
		}
		o.tokenizer = t
	}
}

func WithPalette(p highlight.Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}
