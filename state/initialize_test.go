package state

import (
	"context"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"richdoc/common"
	"richdoc/config"
	"richdoc/doc"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return cfg
}

func TestLocalEnv_Prepare(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = loadDefaults(t)
	env.Cfg.Document.Input.Charset = "windows-1251"
	env.Cfg.Document.Output.Format = common.OutputFmtXml
	env.Log = testLogger(t)

	if err := env.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if env.Gen == nil {
		t.Fatal("generator was not prepared")
	}
	if env.Charset != charmap.Windows1251 {
		t.Errorf("Charset = %v", env.Charset)
	}
	if env.Format != common.OutputFmtXml {
		t.Errorf("Format = %s", env.Format)
	}
}

func TestLocalEnv_PrepareBadCharset(t *testing.T) {
	env := &LocalEnv{Cfg: loadDefaults(t), Log: testLogger(t)}
	env.Cfg.Document.Input.Charset = "no-such-charset"
	if err := env.Prepare(); err == nil {
		t.Error("Prepare() accepted unknown charset")
	}
}

func TestNewGenerator(t *testing.T) {
	cfg := loadDefaults(t)
	conf := &cfg.Document
	conf.BaseURL = "https://example.com/docs/"
	conf.Replace = []config.ReplaceRule{
		{Tag: "SPOILER", Text: "[spoiler]"},
		{Selector: "span.hidden", Text: "***"},
	}

	gen, err := NewGenerator(conf, testLogger(t))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	tree, err := gen.Generate(`<blockquote><p><a href="a.html">link</a> <spoiler>x</spoiler> <span class="hidden">y</span></p></blockquote>`)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	quote := tree.Children[0]
	if quote.Role != doc.RoleBlockquote || quote.Style != conf.Styles.Blockquote {
		t.Fatalf("unexpected blockquote:\n%s", quote)
	}
	if got := tree.PlainText(); got != "link [spoiler] ***" {
		t.Errorf("PlainText() = %q", got)
	}
	link := quote.Children[0].Children[0].Paragraphs[0].Inlines[0]
	if link.Target != "https://example.com/docs/a.html" {
		t.Errorf("link target = %q", link.Target)
	}
}

func TestNewGenerator_Highlight(t *testing.T) {
	src := `<pre><code class="python">x = 1</code></pre>`
	for _, enable := range []bool{true, false} {
		cfg := loadDefaults(t)
		cfg.Document.Highlight.Enable = enable

		gen, err := NewGenerator(&cfg.Document, testLogger(t))
		if err != nil {
			t.Fatalf("NewGenerator() error = %v", err)
		}
		tree, err := gen.Generate(src)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		runs := tree.Children[0].Children[0].Code.Runs
		if enable && len(runs) < 2 {
			t.Errorf("expected highlighted runs, got %+v", runs)
		}
		if !enable && len(runs) != 1 {
			t.Errorf("expected single plain run, got %+v", runs)
		}
	}
}

func TestNewGenerator_BadSelector(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Document.Replace = []config.ReplaceRule{{Selector: "p[", Text: "x"}}
	if _, err := NewGenerator(&cfg.Document, testLogger(t)); err == nil {
		t.Error("NewGenerator() accepted bad selector")
	}
}

func TestLookupCharset(t *testing.T) {
	if enc, err := LookupCharset(""); enc != nil || err != nil {
		t.Errorf("LookupCharset(\"\") = %v, %v", enc, err)
	}
	if enc, err := LookupCharset("koi8-r"); err != nil || enc != charmap.KOI8R {
		t.Errorf("LookupCharset(koi8-r) = %v, %v", enc, err)
	}
	if _, err := LookupCharset("bogus"); err == nil {
		t.Error("LookupCharset() accepted unknown charset")
	}
}
