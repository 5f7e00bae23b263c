package main

import "fmt"

// collectUnmappedTypeDiagnostics reports every column that mapColumn passes
// through as a comment instead of a Blueprint call.
func collectUnmappedTypeDiagnostics(t Table, typeMap TypeMappingConfig) []Diagnostic {
	var diags []Diagnostic
	for _, col := range t.Columns {
		if isMappedType(col, typeMap) {
			continue
		}
		detail := fmt.Sprintf("%s (%s): no Blueprint mapping; kept as a comment", col.Name, col.RawType)
		if !col.Parsed {
			detail = fmt.Sprintf("unparseable column definition kept as a comment: %s", col.Raw)
		}
		diags = append(diags, Diagnostic{Kind: UnmappedColumnType, Table: t.Name, Detail: detail})
	}
	return diags
}
