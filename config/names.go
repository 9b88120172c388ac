package config

import (
	"strings"
	"unicode"
)

const badFileName = "_bad_file_name_"

// CleanFileName removes characters not allowed in file names on this
// platform together with control characters. Leading dots are dropped so
// names made from document titles never become hidden files.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(reservedNameRunes, sym) {
			return -1
		}
		return sym
	}, in)
	out = trimNameSuffix(strings.TrimLeft(strings.TrimSpace(out), "."))
	if len(out) == 0 {
		return badFileName
	}
	return out
}
