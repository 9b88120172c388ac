//go:build !windows

package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"page", "page"},
		{"a/b:c", "abc"},
		{"  .hidden", "hidden"},
		{"tab\there\x00", "tabhere"},
		{"Глава 1", "Глава 1"},
		{"...", badFileName},
		{"", badFileName},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
