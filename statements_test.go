package main

import (
	"reflect"
	"testing"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"block comment", "a /* x */ b", "a   b"},
		{"conditional comment", "/*!40101 SET NAMES utf8 */;", " ;"},
		{"dash comment keeps newline", "x -- c\ny", "x \ny"},
		{"dash comment at end", "x --", "x "},
		{"double dash without space", "a --b", "a --b"},
		{"hash comment", "# c\nx", "\nx"},
		{"markers in string", "'a -- b /* c */' x", "'a -- b /* c */' x"},
		{"markers in identifier", "`a#b`", "`a#b`"},
		{"doubled quote", "'it''s' -- x", "'it''s' "},
		{"backslash quote", `'it\'s # x' y`, `'it\'s # x' y`},
		{"unterminated block", "a /* b", "a "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripComments(tt.in); got != tt.want {
				t.Errorf("stripComments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "a; b;;c", []string{"a", "b", "c"}},
		{"delimiter in string", "'x;y'; z", []string{"'x;y'", "z"}},
		{"delimiter in identifier", "select `a;b`;", []string{"select `a;b`"}},
		{
			"delimiter directive",
			"DELIMITER ;;\nCREATE TRIGGER t BEGIN x; y; END;;\nDELIMITER ;\nSELECT 1;",
			[]string{"CREATE TRIGGER t BEGIN x; y; END", "SELECT 1"},
		},
		{"empty", "  ;\n; ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitStatements(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitStatements(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
