package markup

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding/charmap"
)

func mustParse(t *testing.T, s string) *html.Node {
	t.Helper()
	n, err := ParseString(HTMLParser{}, s)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return n
}

func TestFindBody(t *testing.T) {
	root := mustParse(t, "<p>test</p>")
	body := FindBody(root)
	if body == nil || body.DataAtom != atom.Body {
		t.Fatalf("FindBody() = %v, want body element", body)
	}
	if body.FirstChild == nil || body.FirstChild.DataAtom != atom.P {
		t.Error("fragment content should be placed in body")
	}

	fragment := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	if got := FindBody(fragment); got != fragment {
		t.Error("FindBody() should return node itself when there is no body")
	}
	if FindBody(nil) != nil {
		t.Error("FindBody(nil) should be nil")
	}
}

func TestTextContent(t *testing.T) {
	body := FindBody(mustParse(t, "<ul><li>one <b>two</b></li><li>  </li></ul>"))
	ul := body.FirstChild

	if got := TextContent(ul); got != "one two  " {
		t.Errorf("TextContent() = %q", got)
	}
	if got := TextContent(ul.LastChild); !IsBlank(got) {
		t.Errorf("TextContent() of blank item = %q", got)
	}
	if got := TextContent(nil); got != "" {
		t.Errorf("TextContent(nil) = %q", got)
	}
}

func TestAttr(t *testing.T) {
	body := FindBody(mustParse(t, `<ol START="5" class="x"></ol>`))
	ol := body.FirstChild

	if v, ok := Attr(ol, "start"); !ok || v != "5" {
		t.Errorf("Attr(start) = %q, %v", v, ok)
	}
	if _, ok := Attr(ol, "reversed"); ok {
		t.Error("Attr() found missing attribute")
	}
	if _, ok := Attr(nil, "start"); ok {
		t.Error("Attr(nil) should not find anything")
	}
}

func TestInnerHTMLAndDecode(t *testing.T) {
	body := FindBody(mustParse(t, `<pre><code class="html">&lt;b&gt; &amp; <i>x</i></code></pre>`))
	code := body.FirstChild.FirstChild

	inner, err := InnerHTML(code)
	if err != nil {
		t.Fatalf("InnerHTML() error = %v", err)
	}
	if inner != "&lt;b&gt; &amp; <i>x</i>" {
		t.Errorf("InnerHTML() = %q", inner)
	}
	if got := DecodeText(inner); got != "<b> & <i>x</i>" {
		t.Errorf("DecodeText() = %q", got)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{" \n\t", ""},
		{"\x00", "\n"},
		{" keep spaces ", " keep spaces "},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := DecodeText("&#0;"); got != "\uFFFD" && got != "\n" {
		t.Errorf("DecodeText(NUL reference) = %q", got)
	}
}

func TestNewReader(t *testing.T) {
	src, err := charmap.Windows1251.NewEncoder().String("<p>Привет</p>")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	t.Run("forced encoding", func(t *testing.T) {
		r, err := NewReader(strings.NewReader(src), "", charmap.Windows1251)
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}
		data, _ := io.ReadAll(r)
		if string(data) != "<p>Привет</p>" {
			t.Errorf("decoded = %q", data)
		}
	})

	t.Run("content type", func(t *testing.T) {
		r, err := NewReader(strings.NewReader(src), "text/html; charset=windows-1251", nil)
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}
		data, _ := io.ReadAll(r)
		if string(data) != "<p>Привет</p>" {
			t.Errorf("decoded = %q", data)
		}
	})

	t.Run("utf-8 passthrough", func(t *testing.T) {
		in := []byte("<meta charset=\"utf-8\"><p>Привет</p>")
		r, err := NewReader(bytes.NewReader(in), "", nil)
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}
		data, _ := io.ReadAll(r)
		if !bytes.Equal(data, in) {
			t.Errorf("decoded = %q", data)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		for _, ct := range []string{"", "text/html; charset=windows-1251"} {
			r, err := NewReader(strings.NewReader(""), ct, nil)
			if err != nil {
				t.Fatalf("NewReader(%q) error = %v", ct, err)
			}
			data, err := io.ReadAll(r)
			if err != nil || len(data) != 0 {
				t.Errorf("NewReader(%q) read %q, %v", ct, data, err)
			}
		}
	})
}

func TestFromMarkdown(t *testing.T) {
	out, err := FromMarkdown([]byte("# Title\n\nSome *text* and ~~gone~~.\n\n```python\nprint(1)\n```\n"))
	if err != nil {
		t.Fatalf("FromMarkdown() error = %v", err)
	}
	for _, want := range []string{
		"<h1>Title</h1>",
		"<em>text</em>",
		"<del>gone</del>",
		`<pre><code class="language-python">print(1)`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FromMarkdown() output misses %q:\n%s", want, out)
		}
	}
}

func TestIsMarkdownName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"README.md", true},
		{"notes.MARKDOWN", true},
		{"page.html", false},
		{"md", false},
	}
	for _, tt := range tests {
		if got := IsMarkdownName(tt.name, DefaultMarkdownExtensions); got != tt.want {
			t.Errorf("IsMarkdownName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
