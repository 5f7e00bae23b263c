package main

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// createTableRe finds the start of every table declaration.
	createTableRe = regexp.MustCompile("(?i)CREATE\\s+(?:TEMPORARY\\s+)?TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?`([^`]*)`")

	// tableBlockRe captures name and body of one declaration. The body ends at
	// the first ")" followed by an ENGINE clause, so parentheses inside type
	// specifiers like decimal(10,2) do not end it early.
	tableBlockRe = regexp.MustCompile("(?is)^CREATE\\s+(?:TEMPORARY\\s+)?TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?`([^`]*)`\\s*\\((.*?)\\)\\s*ENGINE\\s*=")
)

// DuplicateTablePolicy decides what happens when a dump declares the same
// table name twice.
type DuplicateTablePolicy string

const (
	DuplicateLast  DuplicateTablePolicy = "last"
	DuplicateError DuplicateTablePolicy = "error"
)

// extractTableBlocks returns every CREATE TABLE declaration in sql (comments
// already stripped) in source order, skipping systemTable. Each declaration
// is matched only against the text up to the next unquoted declaration, so
// one missing ENGINE clause skips that table alone.
func extractTableBlocks(sql, systemTable string, dup DuplicateTablePolicy) ([]TableBlock, []Diagnostic, error) {
	starts := unquotedMatches(sql, createTableRe.FindAllStringSubmatchIndex(sql, -1))

	var blocks []TableBlock
	var diags []Diagnostic
	seen := make(map[string]int)

	for i, loc := range starts {
		end := len(sql)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		name := sql[loc[2]:loc[3]]

		m := tableBlockRe.FindStringSubmatch(sql[loc[0]:end])
		if m == nil {
			diags = append(diags, Diagnostic{
				Kind:   UnmatchedTableBlock,
				Table:  name,
				Detail: "no ENGINE clause follows the table body; table skipped",
			})
			continue
		}
		if systemTable != "" && strings.EqualFold(name, systemTable) {
			continue
		}

		block := TableBlock{Name: m[1], Body: m[2]}
		if idx, ok := seen[block.Name]; ok {
			if dup == DuplicateError {
				return nil, diags, fmt.Errorf("table %q is declared more than once", block.Name)
			}
			diags = append(diags, Diagnostic{
				Kind:   DuplicateTable,
				Table:  block.Name,
				Detail: "declared more than once; the last definition wins",
			})
			blocks[idx] = block
			continue
		}
		seen[block.Name] = len(blocks)
		blocks = append(blocks, block)
	}

	return blocks, diags, nil
}

// unquotedMatches drops the matches that start inside a quoted string or
// identifier, such as a column comment mentioning CREATE TABLE.
func unquotedMatches(sql string, locs [][]int) [][]int {
	var kept [][]int
	var quote byte
	i := 0
	for _, loc := range locs {
		for ; i < loc[0]; i++ {
			c := sql[i]
			switch {
			case quote == 0:
				if c == '\'' || c == '"' || c == '`' {
					quote = c
				}
			case c == '\\' && quote != '`':
				i++
			case c == quote && i+1 < len(sql) && sql[i+1] == quote:
				i++
			case c == quote:
				quote = 0
			}
		}
		if quote == 0 {
			kept = append(kept, loc)
		}
	}
	return kept
}
