// Package generate builds styled document tree from HTML markup.
package generate

import (
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"richdoc/doc"
	"richdoc/markup"
)

// ErrNoParser is returned when generator has neither parser nor parsed tree
// to work with.
var ErrNoParser = errors.New("no markup parser configured")

// Generator converts markup into document trees. It holds only immutable
// options and could be shared between goroutines.
type Generator struct {
	opts options
	log  *zap.Logger
}

// New returns generator configured with opts.
func New(opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return &Generator{opts: o, log: o.log}
}

// Generate normalizes and parses markup and builds document tree from it.
// Empty or malformed markup is not an error.
func (g *Generator) Generate(raw string) (*doc.Block, error) {
	if g.opts.parser == nil {
		return nil, ErrNoParser
	}
	normalized := markup.Normalize(raw)
	if normalized == "" {
		return doc.NewContainer(doc.RoleDocument, doc.Vertical), nil
	}
	root, err := markup.ParseString(g.opts.parser, normalized)
	if err != nil {
		return nil, fmt.Errorf("unable to parse markup: %w", err)
	}
	return g.build(root)
}

// GenerateFrom builds document tree from already parsed markup. Nil root is
// treated as empty markup.
func (g *Generator) GenerateFrom(root *html.Node) (*doc.Block, error) {
	if root == nil {
		if g.opts.parser == nil {
			return nil, ErrNoParser
		}
		return doc.NewContainer(doc.RoleDocument, doc.Vertical), nil
	}
	return g.build(root)
}

func (g *Generator) build(root *html.Node) (tree *doc.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("Document generation panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			tree = nil
			if e, ok := r.(error); ok {
				err = fmt.Errorf("unable to generate document: %w", e)
			} else {
				err = fmt.Errorf("unable to generate document: %v", r)
			}
		}
	}()

	tree = doc.NewContainer(doc.RoleDocument, doc.Vertical)
	g.emitChildren(markup.FindBody(root), newCursor(&tree.Children))
	return tree, nil
}
