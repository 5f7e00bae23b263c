package main

import "strings"

// stripComments removes /* */ block comments, "-- " line comments and "#"
// line comments. Comment markers inside quoted strings or backtick
// identifiers are kept. Block comments become a single space so tokens on
// either side do not merge; line comments keep their terminating newline.
func stripComments(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))

	var quote byte
	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			b.WriteByte(c)
			switch {
			case c == '\\' && quote != '`' && i+1 < len(sql):
				i++
				b.WriteByte(sql[i])
			case c == quote && i+1 < len(sql) && sql[i+1] == quote:
				i++
				b.WriteByte(sql[i])
			case c == quote:
				quote = 0
			}
			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			b.WriteByte(c)
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				// Unterminated comment runs to the end of input.
				return b.String()
			}
			i += 2 + end + 1
			b.WriteByte(' ')
		case c == '#':
			i = skipToLineEnd(sql, i)
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-' && isDashCommentStart(sql, i+2):
			i = skipToLineEnd(sql, i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isDashCommentStart reports whether "--" ending just before pos starts a
// comment. MySQL requires whitespace (or end of input) after the dashes.
func isDashCommentStart(sql string, pos int) bool {
	if pos >= len(sql) {
		return true
	}
	switch sql[pos] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// skipToLineEnd returns the index just before the newline that ends the
// line containing i, so the caller's loop writes the newline itself.
func skipToLineEnd(sql string, i int) int {
	nl := strings.IndexByte(sql[i:], '\n')
	if nl < 0 {
		return len(sql) - 1
	}
	return i + nl - 1
}

// splitStatements splits SQL text on the active delimiter (";" unless a
// DELIMITER line changes it), ignoring empty entries and delimiters inside
// quoted strings or backtick identifiers.
func splitStatements(sql string) []string {
	var stmts []string
	var current strings.Builder
	delim := ";"
	var quote byte

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			stmts = append(stmts, s)
		}
		current.Reset()
	}

	for i := 0; i < len(sql); i++ {
		c := sql[i]

		if quote != 0 {
			current.WriteByte(c)
			switch {
			case c == '\\' && quote != '`' && i+1 < len(sql):
				i++
				current.WriteByte(sql[i])
			case c == quote && i+1 < len(sql) && sql[i+1] == quote:
				i++
				current.WriteByte(sql[i])
			case c == quote:
				quote = 0
			}
			continue
		}

		if atLineStart(sql, i) {
			if d, next, ok := delimiterDirective(sql, i); ok {
				flush()
				delim = d
				i = next - 1
				continue
			}
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
			current.WriteByte(c)
		case strings.HasPrefix(sql[i:], delim):
			flush()
			i += len(delim) - 1
		default:
			current.WriteByte(c)
		}
	}

	// Trailing statement without delimiter
	flush()
	return stmts
}

// atLineStart reports whether only horizontal whitespace precedes i on its line.
func atLineStart(sql string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch sql[j] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// delimiterDirective parses a client-side "DELIMITER xx" line starting at i.
// It returns the new delimiter and the index after the line.
func delimiterDirective(sql string, i int) (string, int, bool) {
	const kw = "DELIMITER"
	for i < len(sql) && (sql[i] == ' ' || sql[i] == '\t') {
		i++
	}
	if len(sql)-i <= len(kw) || !strings.EqualFold(sql[i:i+len(kw)], kw) {
		return "", 0, false
	}
	rest := sql[i+len(kw):]
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", 0, false
	}
	end := strings.IndexByte(rest, '\n')
	line := rest
	next := len(sql)
	if end >= 0 {
		line = rest[:end]
		next = i + len(kw) + end + 1
	}
	d := strings.TrimSpace(line)
	if d == "" {
		return "", 0, false
	}
	return d, next, true
}
