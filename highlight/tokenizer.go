package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Class is a presentation classification of a code run.
type Class string

const (
	ClassPlain      Class = "plain"
	ClassComment    Class = "comment"
	ClassString     Class = "string"
	ClassNumber     Class = "number"
	ClassKeyword    Class = "keyword"
	ClassIdentifier Class = "identifier"
	ClassBuiltin    Class = "builtin"
)

// Run is a piece of code text with its classification.
type Run struct {
	Text  string
	Class Class
}

// Tokenizer splits code into classified runs. Concatenated runs text must be
// equal to the code.
type Tokenizer interface {
	Tokenize(code string, lang Language) ([]Run, error)
}

// Plain does not classify anything, whole code becomes single run.
type Plain struct{}

func (Plain) Tokenize(code string, _ Language) ([]Run, error) {
	if code == "" {
		return nil, nil
	}
	return []Run{{Text: code, Class: ClassPlain}}, nil
}

// Chroma tokenizes code with chroma lexers.
type Chroma struct{}

var lexerNames = map[Language]string{
	PlainText:  "plaintext",
	Python:     "python",
	JavaScript: "javascript",
	JSON:       "json",
	CSharp:     "csharp",
	CPlusPlus:  "cpp",
	CSS:        "css",
	PHP:        "php",
	Ruby:       "ruby",
	XML:        "xml",
	Java:       "java",
	SQL:        "sql",
}

func (Chroma) Tokenize(code string, lang Language) ([]Run, error) {
	if code == "" {
		return nil, nil
	}

	lexer := lexers.Get(lexerNames[lang])
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("unable to tokenize %s code: %w", lang, err)
	}

	var runs []Run
	for token := it(); token != chroma.EOF; token = it() {
		if token.Value == "" {
			continue
		}
		class := classify(token.Type)
		if n := len(runs); n > 0 && runs[n-1].Class == class {
			runs[n-1].Text += token.Value
			continue
		}
		runs = append(runs, Run{Text: token.Value, Class: class})
	}
	return trimAddedNewline(runs, code), nil
}

// trimAddedNewline removes trailing new line some lexers add to the input.
func trimAddedNewline(runs []Run, code string) []Run {
	n := len(runs)
	if n == 0 || strings.HasSuffix(code, "\n") {
		return runs
	}
	last := &runs[n-1]
	if text, ok := strings.CutSuffix(last.Text, "\n"); ok {
		if text == "" {
			return runs[:n-1]
		}
		last.Text = text
	}
	return runs
}

func classify(tt chroma.TokenType) Class {
	switch {
	case tt.InCategory(chroma.Comment):
		return ClassComment
	case tt.InCategory(chroma.Keyword):
		return ClassKeyword
	case tt.InSubCategory(chroma.NameBuiltin):
		return ClassBuiltin
	case tt.InCategory(chroma.Name):
		return ClassIdentifier
	case tt.InSubCategory(chroma.LiteralString):
		return ClassString
	case tt.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	default:
		return ClassPlain
	}
}
