package main

import "strings"

// classifyDefinitions splits a table body into its definitions and sorts them
// into column lines (starting with a backtick) and constraint lines
// (everything else). Source order is kept within each list.
func classifyDefinitions(body string) (columns, constraints []string) {
	for _, def := range splitDefinitions(body) {
		if strings.HasPrefix(def, "`") {
			columns = append(columns, def)
		} else {
			constraints = append(constraints, def)
		}
	}
	return columns, constraints
}

// splitDefinitions splits on commas outside parentheses and quotes. Entries
// are trimmed and empty ones dropped, so a definition spanning several
// physical lines (a long enum list, a multi-line comment) stays whole.
func splitDefinitions(body string) []string {
	var defs []string
	var quote byte
	depth := 0
	start := 0

	add := func(s string) {
		s = strings.TrimSpace(s)
		s = strings.TrimSpace(strings.TrimRight(s, ","))
		if s != "" {
			defs = append(defs, s)
		}
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		if quote != 0 {
			switch {
			case c == '\\' && quote != '`':
				i++
			case c == quote && i+1 < len(body) && body[i+1] == quote:
				i++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				add(body[start:i])
				start = i + 1
			}
		}
	}
	add(body[start:])
	return defs
}
