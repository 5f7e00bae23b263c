package main

import "fmt"

func isGeneratedColumn(col ColumnDef) bool {
	return col.Generated != nil
}

// generatedColumnCall renders GENERATED ALWAYS AS (expr) as virtualAs/storedAs.
func generatedColumnCall(g GeneratedAs) Call {
	if g.Stored {
		return call("storedAs", strArg(g.Expr))
	}
	return call("virtualAs", strArg(g.Expr))
}

// collectGeneratedColumnWarnings lists generated columns, whose expressions
// are copied verbatim in MySQL syntax.
func collectGeneratedColumnWarnings(tables []Table) []string {
	var warnings []string
	for _, t := range tables {
		for _, col := range t.Columns {
			if !isGeneratedColumn(col) {
				continue
			}
			kind := "virtual"
			if col.Generated.Stored {
				kind = "stored"
			}
			warnings = append(warnings, fmt.Sprintf(
				"generated column %s.%s (%s) keeps its MySQL expression %q; check it against the target database",
				t.Name, col.Name, kind, col.Generated.Expr,
			))
		}
	}
	return warnings
}
