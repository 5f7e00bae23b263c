package main

import "strings"

type tokenKind int

const (
	tokIdent  tokenKind = iota + 1 // `quoted identifier`
	tokString                      // 'string' or "string"
	tokWord                        // bare keyword, type name or number
	tokLParen
	tokRParen
	tokComma
	tokPunct
)

type token struct {
	kind  tokenKind
	text  string // unquoted value for idents and strings, raw text otherwise
	start int    // byte offsets into the source definition
	end   int
}

// is reports whether t is a bare word equal to kw, ignoring case.
func (t token) is(kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

// tokenize splits one column or constraint definition into tokens.
// Unterminated quotes run to the end of input.
func tokenize(s string) []token {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '`':
			text, end := scanQuoted(s, i, '`')
			toks = append(toks, token{kind: tokIdent, text: text, start: i, end: end})
			i = end
		case c == '\'' || c == '"':
			text, end := scanQuoted(s, i, c)
			toks = append(toks, token{kind: tokString, text: text, start: i, end: end})
			i = end
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", start: i, end: i + 1})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", start: i, end: i + 1})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", start: i, end: i + 1})
			i++
		case isWordByte(c):
			j := i
			for j < len(s) && isWordByte(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: s[i:j], start: i, end: j})
			i = j
		default:
			toks = append(toks, token{kind: tokPunct, text: s[i : i+1], start: i, end: i + 1})
			i++
		}
	}
	return toks
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '$' || c == '.' || c == '-' || c == '+' || c >= 0x80
}

// scanQuoted reads a quoted token starting at s[start] == q. Doubled quote
// characters are an escaped quote; backslash escapes apply to strings only.
func scanQuoted(s string, start int, q byte) (string, int) {
	var b strings.Builder
	i := start + 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && q != '`' && i+1 < len(s):
			b.WriteByte(unescapeByte(s[i+1]))
			i += 2
		case c == q && i+1 < len(s) && s[i+1] == q:
			b.WriteByte(q)
			i += 2
		case c == q:
			return b.String(), i + 1
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), len(s)
}

// unescapeByte maps the character after a backslash in a MySQL string
// literal to the byte it stands for.
func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return c
	}
}

// matchParen returns the index of the token closing the paren opened at
// toks[open], or -1 when it is never closed.
func matchParen(toks []token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parenIdents returns the identifiers at depth one of the group opened at
// toks[open], skipping prefix lengths like `name`(10) and ASC/DESC markers.
// Bare words are accepted as identifiers too.
func parenIdents(toks []token, open int) ([]string, int) {
	closeIdx := matchParen(toks, open)
	if closeIdx < 0 {
		return nil, -1
	}
	var idents []string
	depth := 0
	expectName := true
	for i := open + 1; i < closeIdx; i++ {
		t := toks[i]
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
		case tokComma:
			if depth == 0 {
				expectName = true
			}
		case tokIdent, tokWord:
			if depth == 0 && expectName {
				idents = append(idents, t.text)
				expectName = false
			}
		}
	}
	return idents, closeIdx
}
