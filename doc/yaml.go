package doc

import (
	"bytes"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// MarshalYAML returns YAML representation of the tree. Empty fields are
// omitted, style handles are written using their own YAML representation.
func MarshalYAML(root *Block) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("unable to serialize document tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("unable to serialize document tree: %w", err)
	}
	return buf.Bytes(), nil
}
