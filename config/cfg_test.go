package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rupor-github/gencfg"

	"richdoc/common"
	"richdoc/highlight"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	d := cfg.Document
	if d.Output.Format != common.OutputFmtText {
		t.Errorf("Format = %s, want text", d.Output.Format)
	}
	if len(d.Input.Extensions) == 0 || len(d.Input.MarkdownExtensions) == 0 {
		t.Errorf("input extensions are empty: %+v", d.Input)
	}
	if d.Styles.Blockquote == "" || d.Styles.Preformatted == "" {
		t.Errorf("styles are empty: %+v", d.Styles)
	}
	if !d.Highlight.Enable {
		t.Error("highlighting should be enabled by default")
	}
	if d.Highlight.Palette != highlight.DefaultPalette() {
		t.Errorf("Palette = %+v, want default", d.Highlight.Palette)
	}
	if len(d.Replace) != 0 {
		t.Errorf("Replace = %v, want empty", d.Replace)
	}

	if !strings.HasSuffix(cfg.Server.Listen, ":8080") {
		t.Errorf("Listen = %q", cfg.Server.Listen)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.MaxRequestSize <= 0 {
		t.Errorf("MaxRequestSize = %d", cfg.Server.MaxRequestSize)
	}
	if cfg.Server.ReportRequests != 64 {
		t.Errorf("ReportRequests = %d", cfg.Server.ReportRequests)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
document:
  input:
    charset: windows-1251
  output:
    format: yaml
    output_name_template: '{{ .Name }}-tree'
    file_name_transliterate: true
  base_url: https://example.com/docs/
  replace:
    - tag: spoiler
      text: "[spoiler]"
    - selector: "span.hidden"
      text: "***"
  highlight:
    enable: false
    palette:
      keyword: DarkBlue
server:
  listen: "localhost:9090"
  shutdown_timeout: 1s
logging:
  console:
    level: debug
reporting:
  destination: report.zip
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	d := cfg.Document
	if d.Input.Charset != "windows-1251" {
		t.Errorf("Charset = %q", d.Input.Charset)
	}
	if len(d.Input.Extensions) == 0 {
		t.Error("default extensions should be kept")
	}
	if d.Output.Format != common.OutputFmtYaml {
		t.Errorf("Format = %s, want yaml", d.Output.Format)
	}
	if d.Output.OutputNameTemplate != "{{ .Name }}-tree" {
		t.Errorf("OutputNameTemplate = %q, template should not be expanded", d.Output.OutputNameTemplate)
	}
	if !d.Output.FileNameTransliterate {
		t.Error("FileNameTransliterate should be true")
	}
	if d.BaseURL != "https://example.com/docs/" {
		t.Errorf("BaseURL = %q", d.BaseURL)
	}
	if len(d.Replace) != 2 || d.Replace[0].Tag != "spoiler" || d.Replace[1].Selector != "span.hidden" {
		t.Errorf("Replace = %v", d.Replace)
	}
	if d.Highlight.Enable {
		t.Error("highlighting should be disabled")
	}
	if d.Highlight.Palette.Keyword != "DarkBlue" || d.Highlight.Palette.Comment != "DarkGreen" {
		t.Errorf("Palette = %+v", d.Highlight.Palette)
	}
	if cfg.Server.Listen != "localhost:9090" || cfg.Server.ShutdownTimeout != time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Logging.ConsoleLogger.Level != LogLevelDebug {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ndocument:\n  input\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad format", "version: 1\ndocument:\n  output:\n    format: epub\n"},
		{"bad base url", "version: 1\ndocument:\n  base_url: not a url\n"},
		{"replace without target", "version: 1\ndocument:\n  replace:\n    - text: x\n"},
		{"replace with both targets", "version: 1\ndocument:\n  replace:\n    - tag: b\n      selector: b\n      text: x\n"},
		{"bad extension", "version: 1\ndocument:\n  input:\n    extensions: [html]\n"},
		{"bad listen", "version: 1\nserver:\n  listen: nowhere\n"},
		{"negative report limit", "version: 1\nserver:\n  report_requests: -1\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("LoadConfiguration() expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty data")
	}
	if strings.Contains(string(data), "{{ if .Containerized }}") {
		t.Error("Prepare() did not expand template fields")
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Document.Replace = []ReplaceRule{{Tag: "spoiler", Text: "[spoiler]"}}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	for _, want := range []string{"format: text", "shutdown_timeout: 5s", "tag: spoiler"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Dump() output misses %q:\n%s", want, data)
		}
	}

	// dumped configuration could be loaded back
	again, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("unable to load dumped configuration: %v", err)
	}
	if again.Document.Replace[0] != cfg.Document.Replace[0] {
		t.Errorf("Replace = %v", again.Document.Replace)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		result, err := unmarshalConfig([]byte(`version: 1`), &Config{}, false)
		if err != nil {
			t.Fatalf("unmarshalConfig() error = %v", err)
		}
		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := unmarshalConfig([]byte(`invalid: [yaml`), &Config{}, false); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}

func TestReplaceRule_String(t *testing.T) {
	if got := (ReplaceRule{Tag: "SPOILER", Text: "x"}).String(); got != `tag spoiler -> "x"` {
		t.Errorf("String() = %q", got)
	}
	if got := (ReplaceRule{Selector: "b.x", Text: "y"}).String(); got != `selector b.x -> "y"` {
		t.Errorf("String() = %q", got)
	}
}
