package main

// TableBlock is one CREATE TABLE declaration cut out of the dump.
type TableBlock struct {
	Name string
	Body string // text between the outer parentheses
}

// DefaultValue is the literal following DEFAULT in a column definition.
type DefaultValue struct {
	Text       string
	Quoted     bool // came from a string literal
	Expression bool // parenthesised expression, e.g. DEFAULT (uuid())
}

// GeneratedAs describes a GENERATED ALWAYS AS (...) column.
type GeneratedAs struct {
	Expr   string
	Stored bool
}

// ColumnDef represents a single column definition line.
type ColumnDef struct {
	Name            string
	Raw             string   // original definition text
	RawType         string   // type token as written, e.g. "bigint(20)", "enum('a','b')"
	TypeTag         string   // lower-cased base type, e.g. "bigint"
	TypeArgs        []string // parenthesised type arguments, unquoted
	IsUnsigned      bool
	IsAutoIncrement bool
	IsNotNull       bool
	Default         *DefaultValue
	Comment         *string
	OnUpdateCurrent bool
	Charset         string
	Collation       string
	Generated       *GeneratedAs
	InlinePrimary   bool
	Parsed          bool // false when the line lacks the `name` type shape
}

// ConstraintDef is one of PrimaryKey, ForeignKey or Unrecognized.
type ConstraintDef interface {
	constraint()
}

// PrimaryKey is an explicit PRIMARY KEY (...) definition.
type PrimaryKey struct {
	Columns []string
}

// ForeignKey represents a FOREIGN KEY ... REFERENCES ... definition.
type ForeignKey struct {
	Name       string
	Columns    []string // local columns
	RefTable   string
	RefColumns []string
	OnDelete   string // lower-cased action, e.g. "cascade", "set null"
	OnUpdate   string
}

// Unrecognized is any other table-level definition (indexes, unique keys,
// checks).
type Unrecognized struct {
	Raw string
}

func (PrimaryKey) constraint()   {}
func (ForeignKey) constraint()   {}
func (Unrecognized) constraint() {}

// Table holds the classified definition of one table.
type Table struct {
	Name        string
	Columns     []ColumnDef
	Constraints []ConstraintDef
}

// DeferredForeignKeys accumulates foreign keys per owning table in the order
// tables were first seen. It is passed and returned by value; see
// collectForeignKeys.
type DeferredForeignKeys struct {
	order []string
	keys  map[string][]ForeignKey
}

// Tables returns the owning tables in first-seen order.
func (d DeferredForeignKeys) Tables() []string {
	return append([]string(nil), d.order...)
}

// For returns the deferred foreign keys of a table.
func (d DeferredForeignKeys) For(table string) []ForeignKey {
	return append([]ForeignKey(nil), d.keys[table]...)
}

// Len returns the total number of deferred foreign keys.
func (d DeferredForeignKeys) Len() int {
	n := 0
	for _, fks := range d.keys {
		n += len(fks)
	}
	return n
}

// MigrationArtifact is one rendered migration file.
type MigrationArtifact struct {
	Key      string // table name, or foreignKeysArtifactKey for the aggregate
	Filename string
	Body     string
}
