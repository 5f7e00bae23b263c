package main

import (
	"strings"
	"unicode"
)

// toSnakeCase converts camelCase and PascalCase to snake_case. Runs of
// capitals are kept together: userID -> user_id, HTTPServer -> http_server.
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// snakeCaseTable rewrites every identifier of t (table, columns, key column
// lists and foreign-key targets) to snake_case.
func snakeCaseTable(t Table) Table {
	out := Table{Name: toSnakeCase(t.Name)}
	out.Columns = make([]ColumnDef, len(t.Columns))
	for i, col := range t.Columns {
		if col.Parsed {
			col.Name = toSnakeCase(col.Name)
		}
		out.Columns[i] = col
	}
	out.Constraints = make([]ConstraintDef, len(t.Constraints))
	for i, c := range t.Constraints {
		switch c := c.(type) {
		case PrimaryKey:
			out.Constraints[i] = PrimaryKey{Columns: snakeCaseAll(c.Columns)}
		case ForeignKey:
			c.Columns = snakeCaseAll(c.Columns)
			c.RefTable = toSnakeCase(c.RefTable)
			c.RefColumns = snakeCaseAll(c.RefColumns)
			out.Constraints[i] = c
		default:
			out.Constraints[i] = c
		}
	}
	return out
}

func snakeCaseAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = toSnakeCase(n)
	}
	return out
}
