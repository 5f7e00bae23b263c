package main

import "strings"

// UnrecognizedPolicy decides what happens to constraint lines that are
// neither primary nor foreign keys.
type UnrecognizedPolicy string

const (
	UnrecognizedDrop    UnrecognizedPolicy = "drop"
	UnrecognizedComment UnrecognizedPolicy = "comment"
)

// parseConstraint classifies one constraint line. A nil ConstraintDef with a
// MalformedForeignKey diagnostic means the line contributes nothing.
func parseConstraint(raw string) (ConstraintDef, *Diagnostic) {
	toks := tokenize(raw)

	i := 0
	name := ""
	if i < len(toks) && toks[i].is("constraint") {
		i++
		if i < len(toks) && toks[i].kind == tokIdent {
			name = toks[i].text
			i++
		}
	}
	rest := toks[i:]

	switch {
	case len(rest) >= 2 && rest[0].is("primary") && rest[1].is("key"):
		if cols := primaryKeyColumns(rest[2:]); len(cols) > 0 {
			return PrimaryKey{Columns: cols}, nil
		}
		return Unrecognized{Raw: raw}, &Diagnostic{
			Kind:   UnrecognizedConstraint,
			Detail: "primary key without a column list: " + raw,
		}
	case hasForeignKeyKeyword(rest):
		fk, ok := parseForeignKey(rest)
		if !ok {
			return nil, &Diagnostic{
				Kind:   MalformedForeignKey,
				Detail: "expected FOREIGN KEY (cols) REFERENCES table (cols): " + raw,
			}
		}
		fk.Name = name
		return fk, nil
	default:
		return Unrecognized{Raw: raw}, &Diagnostic{
			Kind:   UnrecognizedConstraint,
			Detail: constraintUnsupportedReason(rest) + ": " + raw,
		}
	}
}

func primaryKeyColumns(toks []token) []string {
	for i, t := range toks {
		if t.kind == tokLParen {
			cols, _ := parenIdents(toks, i)
			return cols
		}
	}
	return nil
}

func hasForeignKeyKeyword(toks []token) bool {
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].is("foreign") && toks[i+1].is("key") {
			return true
		}
	}
	return false
}

// parseForeignKey reads
// FOREIGN KEY [`idx`] (cols) REFERENCES [`db`.]`table` (cols) [ON DELETE act] [ON UPDATE act].
func parseForeignKey(toks []token) (ForeignKey, bool) {
	var fk ForeignKey
	if len(toks) < 2 || !toks[0].is("foreign") || !toks[1].is("key") {
		return fk, false
	}
	i := 2
	if i < len(toks) && toks[i].kind == tokIdent {
		i++ // index name
	}
	if i >= len(toks) || toks[i].kind != tokLParen {
		return fk, false
	}
	cols, closeIdx := parenIdents(toks, i)
	if closeIdx < 0 || len(cols) == 0 {
		return fk, false
	}
	fk.Columns = cols
	i = closeIdx + 1

	if i >= len(toks) || !toks[i].is("references") {
		return fk, false
	}
	i++
	if i >= len(toks) || (toks[i].kind != tokIdent && toks[i].kind != tokWord) {
		return fk, false
	}
	fk.RefTable = toks[i].text
	i++
	// schema-qualified `db`.`table`
	if i+1 < len(toks) && toks[i].kind != tokString && toks[i].text == "." && toks[i+1].kind == tokIdent {
		fk.RefTable = toks[i+1].text
		i += 2
	}
	if tt := toks[i-1]; tt.kind == tokWord && strings.Contains(tt.text, ".") {
		fk.RefTable = tt.text[strings.LastIndexByte(tt.text, '.')+1:]
	}

	if i >= len(toks) || toks[i].kind != tokLParen {
		return fk, false
	}
	refCols, closeIdx := parenIdents(toks, i)
	if closeIdx < 0 || len(refCols) != len(fk.Columns) {
		return fk, false
	}
	fk.RefColumns = refCols
	i = closeIdx + 1

	for i+2 < len(toks) {
		if !toks[i].is("on") {
			i++
			continue
		}
		action, next := referentialAction(toks, i+2)
		switch {
		case toks[i+1].is("delete"):
			fk.OnDelete = action
		case toks[i+1].is("update"):
			fk.OnUpdate = action
		}
		i = next
	}
	return fk, true
}

// referentialAction reads CASCADE, RESTRICT, SET NULL, SET DEFAULT or
// NO ACTION at toks[i] and returns it lower-cased with the next index.
func referentialAction(toks []token, i int) (string, int) {
	if i >= len(toks) {
		return "", i
	}
	if (toks[i].is("set") || toks[i].is("no")) && i+1 < len(toks) && toks[i+1].kind == tokWord {
		return strings.ToLower(toks[i].text + " " + toks[i+1].text), i + 2
	}
	return strings.ToLower(toks[i].text), i + 1
}

// primaryKeyStatement renders $table->primary('id') or $table->primary(['a', 'b']).
func primaryKeyStatement(pk PrimaryKey) Statement {
	return chain(call("primary", columnsArg(pk.Columns)))
}

// foreignKeyStatement renders the attach expression used in the aggregate
// migration's up().
func foreignKeyStatement(fk ForeignKey) Statement {
	st := chain(
		call("foreign", columnsArg(fk.Columns)),
		call("references", columnsArg(fk.RefColumns)),
		call("on", strArg(fk.RefTable)),
	)
	if fk.OnDelete != "" {
		st = st.with("onDelete", strArg(fk.OnDelete))
	}
	if fk.OnUpdate != "" {
		st = st.with("onUpdate", strArg(fk.OnUpdate))
	}
	return st
}

// dropForeignKeyStatement renders the down() mirror of foreignKeyStatement.
// The column-array form resolves to the same conventional constraint name
// that foreign() created.
func dropForeignKeyStatement(fk ForeignKey) Statement {
	return chain(call("dropForeign", listArg(fk.Columns)))
}
