package common

import (
	"errors"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestParseOutputFmt(t *testing.T) {
	tests := []struct {
		name    string
		want    OutputFmt
		wantErr bool
	}{
		{"text", OutputFmtText, false},
		{"XML", OutputFmtXml, false},
		{"yaml", OutputFmtYaml, false},
		{"epub", OutputFmtText, true},
		{"", OutputFmtText, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFmt(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFmt(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidOutputFmt) {
				t.Errorf("error %v does not wrap ErrInvalidOutputFmt", err)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFmt(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestOutputFmt_Ext(t *testing.T) {
	for f, want := range map[OutputFmt]string{
		OutputFmtText: ".txt",
		OutputFmtXml:  ".xml",
		OutputFmtYaml: ".yaml",
	} {
		if got := f.Ext(); got != want {
			t.Errorf("%s.Ext() = %q, want %q", f, got, want)
		}
	}
}

func TestOutputFmt_Invalid(t *testing.T) {
	f := OutputFmt(42)
	if f.IsValid() {
		t.Error("OutputFmt(42) should not be valid")
	}
	if got := f.String(); got != "OutputFmt(42)" {
		t.Errorf("String() = %q", got)
	}
	if got, err := f.MarshalText(); err != nil || string(got) != "OutputFmt(42)" {
		t.Errorf("MarshalText() = %q, %v", got, err)
	}
}

func TestOutputFmt_YAML(t *testing.T) {
	var v struct {
		Format OutputFmt `yaml:"format"`
	}
	if err := yaml.Unmarshal([]byte("format: yaml\n"), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v.Format != OutputFmtYaml {
		t.Errorf("Format = %v", v.Format)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != "format: yaml\n" {
		t.Errorf("Marshal() = %q", out)
	}
	if err := yaml.Unmarshal([]byte("format: pdf\n"), &v); err == nil {
		t.Error("Unmarshal() accepted unknown format")
	}
}

func TestOutputFmtNames(t *testing.T) {
	names := OutputFmtNames()
	want := []string{"text", "xml", "yaml"}
	if len(names) != len(want) {
		t.Fatalf("OutputFmtNames() = %v", names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("OutputFmtNames()[%d] = %q, want %q", i, names[i], n)
		}
		if OutputFmt(i).String() != n {
			t.Errorf("OutputFmt(%d).String() = %q, want %q", i, OutputFmt(i), n)
		}
	}
	names[0] = "changed"
	if OutputFmtNames()[0] != "text" {
		t.Error("OutputFmtNames() exposes internal slice")
	}
}
