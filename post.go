package main

import "strings"

// collectForeignKeys moves the foreign keys of t into a copy of acc and
// returns it together with t stripped of those keys. Neither acc nor t is
// modified.
func collectForeignKeys(acc DeferredForeignKeys, t Table) (DeferredForeignKeys, Table) {
	var fks []ForeignKey
	kept := make([]ConstraintDef, 0, len(t.Constraints))
	for _, c := range t.Constraints {
		if fk, ok := c.(ForeignKey); ok {
			fks = append(fks, fk)
			continue
		}
		kept = append(kept, c)
	}
	t.Constraints = kept
	if len(fks) == 0 {
		return acc, t
	}

	out := DeferredForeignKeys{
		order: append([]string(nil), acc.order...),
		keys:  make(map[string][]ForeignKey, len(acc.keys)+1),
	}
	for table, existing := range acc.keys {
		out.keys[table] = existing
	}
	if _, seen := out.keys[t.Name]; !seen {
		out.order = append(out.order, t.Name)
	}
	merged := make([]ForeignKey, 0, len(out.keys[t.Name])+len(fks))
	merged = append(merged, out.keys[t.Name]...)
	out.keys[t.Name] = append(merged, fks...)
	return out, t
}

// dedupePrimaryKeys drops an explicit single-column primary key whose column
// already became an auto-incrementing primary key. Composite keys are kept.
// autoIncrement is keyed by lower-cased column name, as MySQL column names
// are case-insensitive.
func dedupePrimaryKeys(t Table, autoIncrement map[string]bool) Table {
	if len(autoIncrement) == 0 {
		return t
	}
	kept := make([]ConstraintDef, 0, len(t.Constraints))
	for _, c := range t.Constraints {
		if pk, ok := c.(PrimaryKey); ok && len(pk.Columns) == 1 && autoIncrement[strings.ToLower(pk.Columns[0])] {
			continue
		}
		kept = append(kept, c)
	}
	t.Constraints = kept
	return t
}
