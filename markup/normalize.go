// Package markup prepares raw markup for document generation: whitespace
// normalization, parsing, charset detection and helpers to query parsed
// nodes.
package markup

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// preformatted regions are kept intact by normalization, nesting is not
// supported.
var rePreformatted = regexp.MustCompile(`(?is)<pre(?:\s[^>]*)?>.*?</pre\s*>`)

// Normalize collapses insignificant whitespace in raw markup. Carriage
// returns are removed, every run of whitespace is reduced to its first
// character and result is trimmed. Content of preformatted regions is preserved
// byte for byte.
func Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	// each region is replaced by unique token, so collapsing could not touch it
	prefix := uuid.NewString()
	saved := make(map[string]string)
	idx := 0
	text := rePreformatted.ReplaceAllStringFunc(raw, func(m string) string {
		key := prefix + "_" + strconv.Itoa(idx) + "_"
		idx++
		saved[key] = m
		return key
	})

	// before collapsing, "\r\n" must end up as "\n"
	text = strings.ReplaceAll(text, "\r", "")
	text = collapseWhitespace(text)
	text = strings.TrimSpace(text)

	for key, original := range saved {
		text = strings.Replace(text, key, original, 1)
	}
	return text
}

// collapseWhitespace drops every whitespace character which follows another
// whitespace character.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	prevSpace := false
	for _, r := range s {
		space := unicode.IsSpace(r)
		if space && prevSpace {
			continue
		}
		prevSpace = space
		sb.WriteRune(r)
	}
	return sb.String()
}
