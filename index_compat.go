package main

// constraintUnsupportedReason explains why a table-level definition that is
// neither a primary nor a foreign key is left out of the migrations.
func constraintUnsupportedReason(toks []token) string {
	if len(toks) == 0 {
		return "empty table definition"
	}
	first := toks[0]
	switch {
	case first.is("unique"):
		return "unique keys are not migrated"
	case first.is("key") || first.is("index"):
		return "indexes are not migrated"
	case first.is("fulltext"):
		return "fulltext indexes are not migrated"
	case first.is("spatial"):
		return "spatial indexes are not migrated"
	case first.is("check"):
		return "check constraints are not migrated"
	case first.is("primary"):
		return "primary key without a column list"
	default:
		return "unrecognized table definition"
	}
}
