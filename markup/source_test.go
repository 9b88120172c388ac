package markup

import (
	"encoding/base64"
	"net/url"
	"testing"
)

func TestParseSource(t *testing.T) {
	base, err := url.Parse("https://example.com/docs/page.html")
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}

	tests := []struct {
		name    string
		raw     string
		base    *url.URL
		wantURI string
	}{
		{name: "absolute", raw: "https://golang.org/doc", wantURI: "https://golang.org/doc"},
		{name: "relative without base", raw: "images/a.png", wantURI: "images/a.png"},
		{name: "relative with base", raw: "images/a.png", base: base, wantURI: "https://example.com/docs/images/a.png"},
		{name: "rooted with base", raw: "/a.png", base: base, wantURI: "https://example.com/a.png"},
		{name: "absolute ignores base", raw: "http://other.org/x", base: base, wantURI: "http://other.org/x"},
		{name: "surrounding spaces", raw: "  a.png ", wantURI: "a.png"},
		{name: "empty", raw: "", wantURI: ""},
		{name: "unparsable", raw: "http://[::1", wantURI: ""},
		{name: "bad escape", raw: "a%zz.png", wantURI: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ParseSource(tt.raw, tt.base)
			if src == nil {
				t.Fatal("ParseSource() returned nil")
			}
			if src.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", src.Raw, tt.raw)
			}
			if src.URI != tt.wantURI {
				t.Errorf("URI = %q, want %q", src.URI, tt.wantURI)
			}
			if src.Resolved() != (tt.wantURI != "") {
				t.Errorf("Resolved() = %v", src.Resolved())
			}
		})
	}
}

func TestParseSource_DataURI(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")

	tests := []struct {
		name     string
		raw      string
		wantMime string
	}{
		{name: "sniffed png", raw: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), wantMime: "image/png"},
		{name: "mislabeled gif", raw: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(gif), wantMime: "image/gif"},
		{name: "declared when unknown", raw: "data:text/plain;charset=utf-8,hello%20world", wantMime: "text/plain"},
		{name: "broken base64", raw: "data:image/png;base64,@@@", wantMime: "image/png"},
		{name: "no payload separator", raw: "data:image/png", wantMime: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ParseSource(tt.raw, nil)
			if src.URI != tt.raw {
				t.Errorf("URI = %q, want raw value", src.URI)
			}
			if src.MimeType != tt.wantMime {
				t.Errorf("MimeType = %q, want %q", src.MimeType, tt.wantMime)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	if got := ParseTarget("http://[::1", nil); got != "" {
		t.Errorf("ParseTarget() = %q, want empty", got)
	}
	if got := ParseTarget("#anchor", nil); got != "#anchor" {
		t.Errorf("ParseTarget() = %q, want #anchor", got)
	}
}
