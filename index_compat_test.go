package main

import "testing"

func TestConstraintUnsupportedReason(t *testing.T) {
	tests := []struct {
		def  string
		want string
	}{
		{"UNIQUE KEY `u` (`a`)", "unique keys are not migrated"},
		{"unique index `u` (`a`)", "unique keys are not migrated"},
		{"KEY `k` (`a`)", "indexes are not migrated"},
		{"INDEX `k` (`a`)", "indexes are not migrated"},
		{"FULLTEXT KEY `f` (`a`)", "fulltext indexes are not migrated"},
		{"SPATIAL INDEX `s` (`g`)", "spatial indexes are not migrated"},
		{"CHECK (`a` > 0)", "check constraints are not migrated"},
		{"PRIMARY KEY", "primary key without a column list"},
		{"", "empty table definition"},
		{"`oops` int", "unrecognized table definition"},
	}
	for _, tt := range tests {
		if got := constraintUnsupportedReason(tokenize(tt.def)); got != tt.want {
			t.Errorf("constraintUnsupportedReason(%q) = %q, want %q", tt.def, got, tt.want)
		}
	}
}
