package main

import (
	"fmt"
	"sort"
	"strings"
)

// collationCalls returns charset()/collation() modifiers for a column when
// preserve_collations is enabled.
func collationCalls(col ColumnDef, typeMap TypeMappingConfig) []Call {
	if !typeMap.PreserveCollations {
		return nil
	}
	var calls []Call
	if col.Charset != "" {
		calls = append(calls, call("charset", strArg(col.Charset)))
	}
	if col.Collation != "" {
		calls = append(calls, call("collation", strArg(col.Collation)))
	}
	return calls
}

// collectCollationWarnings reports the charsets and collations declared on
// columns when they are not carried into the migrations, naming the columns
// that lose each collation. Case-insensitive (_ci) collations are flagged
// because comparisons then follow the connection default.
func collectCollationWarnings(tables []Table, typeMap TypeMappingConfig) []string {
	if typeMap.PreserveCollations {
		return nil
	}

	charsets := map[string]bool{}
	byCollation := map[string][]string{}
	for _, t := range tables {
		for _, col := range t.Columns {
			if col.Charset != "" {
				charsets[col.Charset] = true
			}
			if col.Collation != "" {
				byCollation[col.Collation] = append(byCollation[col.Collation], t.Name+"."+col.Name)
			}
		}
	}
	if len(charsets) == 0 && len(byCollation) == 0 {
		return nil
	}

	var out []string
	if len(charsets) > 0 {
		out = append(out, "column charsets dropped: "+strings.Join(sortedKeys(charsets), ", "))
	}
	for _, name := range sortedKeys(byCollation) {
		cols := byCollation[name]
		note := ""
		if strings.HasSuffix(strings.ToLower(name), "_ci") {
			note = " (case-insensitive)"
		}
		out = append(out, fmt.Sprintf("collation %s%s dropped from %d column(s): %s",
			name, note, len(cols), strings.Join(cols, ", ")))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
