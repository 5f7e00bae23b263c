package main

import (
	"strings"
	"testing"
)

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"release tag", "v1.2.3", "0123456789abcdef", "v1.2.3"},
		{"ref-qualified tag", "refs/tags/v0.4.0", "", "v0.4.0"},
		{"dev with commit", "dev", "0123456789abcdef", "dev-0123456"},
		{"dev with unknown commit", "dev", "unknown", "dev"},
		{"empty version", "", "abcdef1", "dev-abcdef1"},
		{"short commit kept whole", " dev ", "abc", "dev-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatVersion(tt.version, tt.commit); got != tt.want {
				t.Fatalf("formatVersion(%q, %q) = %q, want %q", tt.version, tt.commit, got, tt.want)
			}
		})
	}
}

func TestVersionStringNamesBinary(t *testing.T) {
	if got := versionString(); !strings.HasPrefix(got, "sql2lm ") {
		t.Fatalf("versionString() = %q, want sql2lm prefix", got)
	}
}
