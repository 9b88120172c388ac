package convert

import (
	"path/filepath"
	"testing"

	"richdoc/common"
)

func TestBuildOutputPath(t *testing.T) {
	dst := filepath.Join("out", "dir")

	tests := []struct {
		name          string
		src           string
		title         string
		format        common.OutputFmt
		template      string
		transliterate bool
		noDirs        bool
		want          string
	}{
		{
			name: "default name",
			src:  "page.html",
			want: filepath.Join(dst, "page.txt"),
		},
		{
			name:   "keeps source directories",
			src:    filepath.Join("a", "b", "page.md"),
			format: common.OutputFmtYaml,
			want:   filepath.Join(dst, "a", "b", "page.yaml"),
		},
		{
			name:   "no dirs",
			src:    filepath.Join("a", "b", "page.md"),
			format: common.OutputFmtXml,
			noDirs: true,
			want:   filepath.Join(dst, "page.xml"),
		},
		{
			name:          "transliterated default name",
			src:           "Книга Глава.html",
			transliterate: true,
			want:          filepath.Join(dst, "kniga-glava.txt"),
		},
		{
			name:     "template with subdirectories",
			src:      "page.html",
			title:    "Getting Started",
			template: "{{ .Format }}/{{ .Title | lower }}",
			want:     filepath.Join(dst, "text", "getting started.txt"),
		},
		{
			name:          "template transliterated",
			src:           "page.html",
			title:         "Getting Started",
			template:      "docs/{{ .Title }}",
			transliterate: true,
			want:          filepath.Join(dst, "docs", "getting-started.txt"),
		},
		{
			name:     "template with extension",
			src:      "page.html",
			template: "{{ .Name }}-tree{{ .Ext }}",
			want:     filepath.Join(dst, "page-tree.txt"),
		},
		{
			name:     "template drops parent references",
			src:      "page.html",
			template: "../../{{ .Name }}",
			want:     filepath.Join(dst, "page.txt"),
		},
		{
			name:     "empty expansion falls back",
			src:      "page.html",
			template: "{{ .Title }}",
			want:     filepath.Join(dst, "page.txt"),
		},
		{
			name:     "broken template falls back",
			src:      "page.html",
			template: "{{ .Name ",
			want:     filepath.Join(dst, "page.txt"),
		},
		{
			name:     "unknown field falls back",
			src:      "page.html",
			template: "{{ .Author }}",
			want:     filepath.Join(dst, "page.txt"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := testEnv(t)
			env.Format = tt.format
			env.NoDirs = tt.noDirs
			env.Cfg.Document.Output.OutputNameTemplate = tt.template
			env.Cfg.Document.Output.FileNameTransliterate = tt.transliterate

			if got := buildOutputPath(tt.src, dst, tt.title, env); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a" + sep + "b" + sep + "c", 3},
		{sep + "a" + sep + sep + "b" + sep, 2},
		{".." + sep + "." + sep + "a", 1},
	}
	for _, tt := range tests {
		if got := splitPath(tt.in); len(got) != tt.want {
			t.Errorf("splitPath(%q) = %q, want %d segments", tt.in, got, tt.want)
		}
	}
}
