package convert

import (
	"fmt"

	"richdoc/common"
	"richdoc/doc"
)

// Encode serializes document tree in requested output format.
func Encode(tree *doc.Block, format common.OutputFmt) ([]byte, error) {
	switch format {
	case common.OutputFmtText:
		return []byte(tree.String()), nil
	case common.OutputFmtXml:
		return doc.MarshalXML(tree)
	case common.OutputFmtYaml:
		return doc.MarshalYAML(tree)
	default:
		return nil, fmt.Errorf("unable to encode document: %w", common.ErrInvalidOutputFmt)
	}
}

// title returns plain text of the first heading in the tree.
func title(b *doc.Block) string {
	if b == nil {
		return ""
	}
	for _, p := range b.Paragraphs {
		for _, in := range p.Inlines {
			if in.Kind == doc.InlineHeader {
				return in.PlainText()
			}
		}
	}
	for _, c := range b.Children {
		if t := title(c); t != "" {
			return t
		}
	}
	return ""
}
