package convert

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"richdoc/config"
	"richdoc/markup"
)

type srcKind int

const (
	kindUnknown srcKind = iota
	kindHTML
	kindMarkdown
)

func (k srcKind) String() string {
	switch k {
	case kindHTML:
		return "html"
	case kindMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// filetype needs no more than that to recognize any of its types
const headerSize = 262

// isArchiveFile checks if file has zip extension and zip signature.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}

	kind, err := filetype.Match(header[:n])
	if err != nil {
		return false, nil
	}
	return kind == matchers.TypeZip, nil
}

// detectKind decides how input should be treated based on its name.
func detectKind(name string, conf *config.InputConfig) srcKind {
	if markup.IsMarkdownName(name, conf.MarkdownExtensions) {
		return kindMarkdown
	}
	ext := filepath.Ext(name)
	if ext != "" && slices.ContainsFunc(conf.Extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	}) {
		return kindHTML
	}
	return kindUnknown
}
