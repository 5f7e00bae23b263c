package main

import (
	"strconv"
	"strings"
)

type argKind int

const (
	argString argKind = iota
	argNumber
	argBool
	argList
	argRaw
)

// Arg is one argument of a Blueprint call.
type Arg struct {
	kind argKind
	text string
	list []string
	b    bool
}

func strArg(s string) Arg        { return Arg{kind: argString, text: s} }
func numArg(n string) Arg        { return Arg{kind: argNumber, text: n} }
func boolArg(b bool) Arg         { return Arg{kind: argBool, b: b} }
func listArg(xs []string) Arg    { return Arg{kind: argList, list: xs} }
func rawExprArg(expr string) Arg { return Arg{kind: argRaw, text: expr} }

// columnsArg renders a single column as a plain string and several as an array.
func columnsArg(cols []string) Arg {
	if len(cols) == 1 {
		return strArg(cols[0])
	}
	return listArg(cols)
}

// Call is one method in a fluent chain.
type Call struct {
	Method string
	Args   []Arg
}

func call(method string, args ...Arg) Call {
	return Call{Method: method, Args: args}
}

// Statement is a `$table->a()->b();` chain, or a `//` comment line when
// Comment is set.
type Statement struct {
	Calls   []Call
	Comment string
}

func chain(calls ...Call) Statement {
	return Statement{Calls: calls}
}

func commentStatement(text string) Statement {
	return Statement{Comment: text}
}

// IsComment reports whether the statement renders as a comment line.
func (s Statement) IsComment() bool { return len(s.Calls) == 0 }

// with returns a copy of s with one more call appended.
func (s Statement) with(method string, args ...Arg) Statement {
	calls := make([]Call, len(s.Calls), len(s.Calls)+1)
	copy(calls, s.Calls)
	s.Calls = append(calls, call(method, args...))
	return s
}

// Method returns the first call's method name, or "" for comments.
func (s Statement) Method() string {
	if s.IsComment() {
		return ""
	}
	return s.Calls[0].Method
}

type blockKind int

const (
	blockCreate blockKind = iota
	blockTable
	blockDropIfExists
)

// Block is one Schema:: call inside up() or down().
type Block struct {
	Kind       blockKind
	Table      string
	Statements []Statement
}

// Migration is a migration class with its up() and down() bodies.
type Migration struct {
	Up   []Block
	Down []Block
}

const (
	indentMethod = "    "
	indentBody   = "        "
	indentStmt   = "            "
)

// renderMigration renders m as an anonymous-class Laravel migration.
func renderMigration(m Migration) string {
	var b strings.Builder
	b.WriteString("<?php\n\n")
	b.WriteString("use Illuminate\\Database\\Migrations\\Migration;\n")
	b.WriteString("use Illuminate\\Database\\Schema\\Blueprint;\n")
	if m.usesRaw() {
		b.WriteString("use Illuminate\\Support\\Facades\\DB;\n")
	}
	b.WriteString("use Illuminate\\Support\\Facades\\Schema;\n\n")
	b.WriteString("return new class extends Migration\n{\n")
	writeMethod(&b, "up", m.Up)
	b.WriteString("\n")
	writeMethod(&b, "down", m.Down)
	b.WriteString("};\n")
	return b.String()
}

func (m Migration) usesRaw() bool {
	for _, blocks := range [][]Block{m.Up, m.Down} {
		for _, bl := range blocks {
			for _, st := range bl.Statements {
				for _, c := range st.Calls {
					for _, a := range c.Args {
						if a.kind == argRaw {
							return true
						}
					}
				}
			}
		}
	}
	return false
}

func writeMethod(b *strings.Builder, name string, blocks []Block) {
	b.WriteString(indentMethod + "public function " + name + "(): void\n")
	b.WriteString(indentMethod + "{\n")
	if len(blocks) == 0 {
		b.WriteString(indentBody + "//\n")
	}
	for i, bl := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		writeBlock(b, bl)
	}
	b.WriteString(indentMethod + "}\n")
}

func writeBlock(b *strings.Builder, bl Block) {
	switch bl.Kind {
	case blockDropIfExists:
		b.WriteString(indentBody + "Schema::dropIfExists(" + phpString(bl.Table) + ");\n")
		return
	case blockCreate:
		b.WriteString(indentBody + "Schema::create(" + phpString(bl.Table) + ", function (Blueprint $table) {\n")
	case blockTable:
		b.WriteString(indentBody + "Schema::table(" + phpString(bl.Table) + ", function (Blueprint $table) {\n")
	}
	for _, st := range bl.Statements {
		b.WriteString(indentStmt + renderStatement(st) + "\n")
	}
	b.WriteString(indentBody + "});\n")
}

// renderStatement renders one statement without indentation.
func renderStatement(st Statement) string {
	if st.IsComment() {
		// PHP ends a line comment at "?>".
		text := strings.Join(strings.Fields(st.Comment), " ")
		return "// " + strings.ReplaceAll(text, "?>", "? >")
	}
	var b strings.Builder
	b.WriteString("$table")
	for _, c := range st.Calls {
		b.WriteString("->")
		b.WriteString(c.Method)
		b.WriteByte('(')
		for i, a := range c.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(renderArg(a))
		}
		b.WriteByte(')')
	}
	b.WriteByte(';')
	return b.String()
}

func renderArg(a Arg) string {
	switch a.kind {
	case argNumber:
		return a.text
	case argBool:
		return strconv.FormatBool(a.b)
	case argList:
		items := make([]string, len(a.list))
		for i, s := range a.list {
			items[i] = phpString(s)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case argRaw:
		return "DB::raw(" + phpString(a.text) + ")"
	default:
		return phpString(a.text)
	}
}

// phpString quotes s as a single-quoted PHP string literal. Inside single
// quotes PHP only interprets \' and \\.
func phpString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'', '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}
