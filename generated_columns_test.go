package main

import (
	"strings"
	"testing"
)

func TestGeneratedColumnCall(t *testing.T) {
	if got := renderStatement(chain(generatedColumnCall(GeneratedAs{Expr: "`a` * 2"}))); got != "$table->virtualAs('`a` * 2');" {
		t.Errorf("virtual = %s", got)
	}
	if got := renderStatement(chain(generatedColumnCall(GeneratedAs{Expr: "`a` * 2", Stored: true}))); got != "$table->storedAs('`a` * 2');" {
		t.Errorf("stored = %s", got)
	}
}

func TestCollectGeneratedColumnWarnings(t *testing.T) {
	tables := []Table{{
		Name: "people",
		Columns: []ColumnDef{
			parseColumnDef("`first` varchar(20) NOT NULL"),
			parseColumnDef("`full` varchar(41) GENERATED ALWAYS AS (concat(`first`,' ',`last`)) STORED"),
			parseColumnDef("`initial` char(1) AS (left(`first`, 1)) VIRTUAL"),
		},
	}}

	warnings := collectGeneratedColumnWarnings(tables)
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %q", len(warnings), warnings)
	}
	if !strings.HasPrefix(warnings[0], "generated column people.full (stored)") {
		t.Errorf("warnings[0] = %q", warnings[0])
	}
	if !strings.HasPrefix(warnings[1], "generated column people.initial (virtual)") {
		t.Errorf("warnings[1] = %q", warnings[1])
	}
}
