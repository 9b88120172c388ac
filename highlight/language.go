// Package highlight classifies code listings for colorized presentation.
package highlight

import (
	"strings"
)

// Language of a code listing.
type Language string

const (
	PlainText  Language = "plaintext"
	Python     Language = "python"
	JavaScript Language = "javascript"
	JSON       Language = "json"
	CSharp     Language = "csharp"
	CPlusPlus  Language = "c++"
	CSS        Language = "css"
	PHP        Language = "php"
	Ruby       Language = "ruby"
	XML        Language = "xml"
	Java       Language = "java"
	SQL        Language = "sql"
)

var languages = map[string]Language{
	"python":     Python,
	"javascript": JavaScript,
	"js":         JavaScript,
	"jsx":        JavaScript,
	"json":       JSON,
	"csharp":     CSharp,
	"cs":         CSharp,
	"c":          CPlusPlus,
	"c++":        CPlusPlus,
	"cc":         CPlusPlus,
	"cpp":        CPlusPlus,
	"css":        CSS,
	"php":        PHP,
	"ruby":       Ruby,
	"rb":         Ruby,
	"html":       XML,
	"xml":        XML,
	"xhtml":      XML,
	"rss":        XML,
	"java":       Java,
	"jsp":        Java,
	"sql":        SQL,
}

// LookupLanguage maps single language identifier to Language, unknown or
// empty identifiers give PlainText.
func LookupLanguage(id string) Language {
	if l, ok := languages[id]; ok {
		return l
	}
	return PlainText
}

// LanguageFromClass finds language in a class attribute value. Classes are
// tried in order, "language-" and "lang-" prefixes are accepted.
func LanguageFromClass(class string) Language {
	for c := range strings.FieldsSeq(class) {
		c = strings.ToLower(c)
		if l, ok := strings.CutPrefix(c, "language-"); ok {
			c = l
		} else if l, ok := strings.CutPrefix(c, "lang-"); ok {
			c = l
		}
		if l, ok := languages[c]; ok {
			return l
		}
	}
	return PlainText
}
