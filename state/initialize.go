package state

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"richdoc/config"
	"richdoc/generate"
	"richdoc/highlight"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// Prepare builds everything derived from loaded configuration: document
// generator and forced input charset. Cfg and Log must be set.
func (e *LocalEnv) Prepare() error {
	gen, err := NewGenerator(&e.Cfg.Document, e.Log)
	if err != nil {
		return err
	}
	e.Gen = gen

	if e.Charset, err = LookupCharset(e.Cfg.Document.Input.Charset); err != nil {
		return fmt.Errorf("bad input charset: %w", err)
	}
	e.Format = e.Cfg.Document.Output.Format
	return nil
}

// NewGenerator turns document configuration into generator options.
func NewGenerator(conf *config.DocumentConfig, log *zap.Logger) (*generate.Generator, error) {
	opts := []generate.Option{
		generate.WithLogger(log.Named("render")),
		generate.WithStyles(conf.Styles.Blockquote, conf.Styles.Preformatted),
		generate.WithPalette(conf.Highlight.Palette),
	}

	if conf.Highlight.Enable {
		opts = append(opts, generate.WithTokenizer(highlight.Chroma{}))
	} else {
		opts = append(opts, generate.WithTokenizer(nil))
	}

	if conf.BaseURL != "" {
		base, err := url.Parse(conf.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("bad base url %q: %w", conf.BaseURL, err)
		}
		opts = append(opts, generate.WithBaseURL(base))
	}

	handlers := make([]generate.InlineHandler, 0, len(conf.Replace))
	for _, rule := range conf.Replace {
		if rule.Tag != "" {
			handlers = append(handlers, generate.ReplaceTag(strings.ToLower(rule.Tag), rule.Text))
			continue
		}
		h, err := generate.ReplaceSelector(rule.Selector, rule.Text)
		if err != nil {
			return nil, fmt.Errorf("bad replace rule (%s): %w", rule, err)
		}
		handlers = append(handlers, h)
	}
	if len(handlers) > 0 {
		opts = append(opts, generate.WithInlineHandlers(handlers...))
	}

	log.Debug("Generator prepared", zap.Bool("highlight", conf.Highlight.Enable), zap.Int("replace", len(handlers)))
	return generate.New(opts...), nil
}

// LookupCharset returns encoding by its IANA name, empty name gives nil.
func LookupCharset(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}
	return enc, nil
}
