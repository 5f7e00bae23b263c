package main

import (
	"fmt"
	"strings"
	"time"
)

// foreignKeysArtifactKey identifies the aggregate foreign-key migration. It
// cannot collide with a table name because table names never start with NUL.
const foreignKeysArtifactKey = "\x00foreign_keys"

// NamingOptions controls migration filenames.
type NamingOptions struct {
	TimestampPrefix bool
	BaseTime        time.Time
	Extension       string
}

func (n NamingOptions) ext() string {
	if n.Extension == "" {
		return "php"
	}
	return n.Extension
}

func (n NamingOptions) prefix(offset int) string {
	if !n.TimestampPrefix {
		return ""
	}
	return n.BaseTime.Add(time.Duration(offset)*time.Second).Format(timestampLayout) + "_"
}

// createFilename names the creation migration of the i-th table.
func createFilename(table string, i int, n NamingOptions) string {
	return fmt.Sprintf("%screate_%s_table.%s", n.prefix(i), filenamePart(table), n.ext())
}

// filenamePart makes an identifier safe to use inside one file name.
// Backtick identifiers may contain path separators and control bytes.
func filenamePart(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, name)
}

// foreignKeysFilename names the aggregate migration so it sorts after all
// tableCount creation migrations.
func foreignKeysFilename(tableCount int, n NamingOptions) string {
	if n.TimestampPrefix {
		return fmt.Sprintf("%sadd_foreign_keys_to_tables.%s", n.prefix(tableCount), n.ext())
	}
	return "z_add_foreign_keys_to_tables." + n.ext()
}

// mapColumns maps every column of t and returns the statements together with
// the lower-cased names of columns that became auto-incrementing primary
// keys.
func mapColumns(t Table, typeMap TypeMappingConfig) ([]Statement, map[string]bool) {
	stmts := make([]Statement, 0, len(t.Columns))
	autoIncrement := make(map[string]bool)
	for _, col := range t.Columns {
		st, autoInc := mapColumn(col, typeMap)
		if autoInc {
			autoIncrement[strings.ToLower(col.Name)] = true
		}
		stmts = append(stmts, st)
	}
	return stmts, autoIncrement
}

// emitCreateMigration builds the creation migration for one table from its
// mapped columns and remaining constraints. Foreign keys never appear here.
func emitCreateMigration(t Table, columns []Statement, policy UnrecognizedPolicy) Migration {
	stmts := append([]Statement(nil), columns...)
	for _, c := range t.Constraints {
		switch c := c.(type) {
		case PrimaryKey:
			stmts = append(stmts, primaryKeyStatement(c))
		case Unrecognized:
			if policy == UnrecognizedComment {
				stmts = append(stmts, commentStatement(c.Raw))
			}
		}
	}
	return Migration{
		Up:   []Block{{Kind: blockCreate, Table: t.Name, Statements: stmts}},
		Down: []Block{{Kind: blockDropIfExists, Table: t.Name}},
	}
}

// emitForeignKeyMigration builds the aggregate migration attaching every
// deferred foreign key. down() mirrors up() table for table. The bool is
// false when nothing was deferred.
func emitForeignKeyMigration(acc DeferredForeignKeys) (Migration, bool) {
	if acc.Len() == 0 {
		return Migration{}, false
	}
	var m Migration
	for _, table := range acc.Tables() {
		fks := acc.For(table)
		up := make([]Statement, len(fks))
		down := make([]Statement, len(fks))
		for i, fk := range fks {
			up[i] = foreignKeyStatement(fk)
			down[i] = dropForeignKeyStatement(fk)
		}
		m.Up = append(m.Up, Block{Kind: blockTable, Table: table, Statements: up})
		m.Down = append(m.Down, Block{Kind: blockTable, Table: table, Statements: down})
	}
	return m, true
}
