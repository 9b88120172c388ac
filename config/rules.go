package config

import (
	"fmt"
	"strings"
)

// LogLevel names accepted by logger configuration.
const (
	LogLevelNone   = "none"
	LogLevelDebug  = "debug"
	LogLevelNormal = "normal"
)

// ReplaceRule is a single entry of the document replacement list. Either tag
// or selector must be set.
type ReplaceRule struct {
	Tag      string `yaml:"tag,omitempty" validate:"required_without=Selector,excluded_with=Selector"`
	Selector string `yaml:"selector,omitempty" validate:"required_without=Tag"`
	Text     string `yaml:"text"`
}

func (r ReplaceRule) String() string {
	if r.Tag != "" {
		return fmt.Sprintf("tag %s -> %q", strings.ToLower(r.Tag), r.Text)
	}
	return fmt.Sprintf("selector %s -> %q", r.Selector, r.Text)
}
