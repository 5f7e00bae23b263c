package main

import "strings"

// parseColumnDef reads `name` type[(args)] modifiers... from one column line.
// Lines without that shape come back with Parsed=false.
func parseColumnDef(raw string) ColumnDef {
	col := ColumnDef{Raw: raw}
	toks := tokenize(raw)
	if len(toks) < 2 || toks[0].kind != tokIdent || toks[1].kind != tokWord {
		return col
	}

	col.Name = toks[0].text
	col.TypeTag = strings.ToLower(toks[1].text)
	typeEnd := toks[1].end
	i := 2
	if i < len(toks) && toks[i].kind == tokLParen {
		closeIdx := matchParen(toks, i)
		if closeIdx < 0 {
			return col
		}
		col.TypeArgs = typeArgs(toks[i+1 : closeIdx])
		typeEnd = toks[closeIdx].end
		i = closeIdx + 1
	}
	col.RawType = raw[toks[1].start:typeEnd]
	col.Parsed = true

	parseColumnModifiers(&col, raw, toks[i:])
	return col
}

// typeArgs returns the comma-separated arguments of a type specifier with
// string literals unquoted: decimal(10,2) -> [10 2], enum('a','b') -> [a b].
func typeArgs(toks []token) []string {
	var args []string
	var cur strings.Builder
	pending := false
	for _, t := range toks {
		if t.kind == tokComma {
			args = append(args, cur.String())
			cur.Reset()
			pending = false
			continue
		}
		cur.WriteString(t.text)
		pending = true
	}
	if pending || len(args) > 0 {
		args = append(args, cur.String())
	}
	return args
}

func parseColumnModifiers(col *ColumnDef, raw string, toks []token) {
	next := func(i int, kw string) bool {
		return i+1 < len(toks) && toks[i+1].is(kw)
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.is("unsigned"):
			col.IsUnsigned = true
		case t.is("auto_increment"):
			col.IsAutoIncrement = true
		case t.is("not") && next(i, "null"):
			col.IsNotNull = true
			i++
		case t.is("default") && i+1 < len(toks):
			i = parseDefault(col, raw, toks, i+1)
		case t.is("comment") && i+1 < len(toks) && toks[i+1].kind == tokString:
			c := toks[i+1].text
			col.Comment = &c
			i++
		case t.is("on") && next(i, "update") && i+2 < len(toks) && isCurrentTimestampWord(toks[i+2]):
			col.OnUpdateCurrent = true
			i += 2
			if i+1 < len(toks) && toks[i+1].kind == tokLParen {
				if closeIdx := matchParen(toks, i+1); closeIdx > 0 {
					i = closeIdx
				}
			}
		case t.is("character") && next(i, "set") && i+2 < len(toks):
			col.Charset = toks[i+2].text
			i += 2
		case t.is("charset") && i+1 < len(toks):
			col.Charset = toks[i+1].text
			i++
		case t.is("collate") && i+1 < len(toks):
			col.Collation = toks[i+1].text
			i++
		case t.is("as") && i+1 < len(toks) && toks[i+1].kind == tokLParen:
			closeIdx := matchParen(toks, i+1)
			if closeIdx < 0 {
				return
			}
			expr := strings.TrimSpace(raw[toks[i+1].end:toks[closeIdx].start])
			col.Generated = &GeneratedAs{Expr: expr}
			i = closeIdx
		case t.is("stored") || t.is("persistent"):
			if col.Generated != nil {
				col.Generated.Stored = true
			}
		case t.is("primary") && next(i, "key"):
			col.InlinePrimary = true
			i++
		}
	}
}

// parseDefault reads the value after DEFAULT starting at toks[j] and returns
// the index of the last token it consumed.
func parseDefault(col *ColumnDef, raw string, toks []token, j int) int {
	t := toks[j]
	switch t.kind {
	case tokString:
		col.Default = &DefaultValue{Text: t.text, Quoted: true}
		return j
	case tokLParen:
		closeIdx := matchParen(toks, j)
		if closeIdx < 0 {
			return len(toks) - 1
		}
		expr := strings.TrimSpace(raw[t.end:toks[closeIdx].start])
		col.Default = &DefaultValue{Text: expr, Expression: true}
		return closeIdx
	case tokWord:
		if j+1 < len(toks) && toks[j+1].kind == tokLParen {
			if closeIdx := matchParen(toks, j+1); closeIdx > 0 {
				col.Default = &DefaultValue{Text: raw[t.start:toks[closeIdx].end]}
				return closeIdx
			}
		}
		col.Default = &DefaultValue{Text: t.text}
		return j
	default:
		return j - 1
	}
}

func isCurrentTimestamp(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch lower {
	case "current_timestamp", "current_timestamp()", "now()", "localtimestamp", "localtimestamp()":
		return true
	}
	return strings.HasPrefix(lower, "current_timestamp(") && strings.HasSuffix(lower, ")")
}

// isCurrentTimestampWord matches the function name alone, as in
// ON UPDATE now() where the parentheses are separate tokens.
func isCurrentTimestampWord(t token) bool {
	return t.is("current_timestamp") || t.is("now") || t.is("localtimestamp")
}

// isNullDefault reports whether d is the bare NULL keyword.
func isNullDefault(d *DefaultValue) bool {
	return d != nil && !d.Quoted && !d.Expression && strings.EqualFold(d.Text, "null")
}

// typeRule maps a parsed column to its Blueprint column call. The bool
// reports whether the call creates an auto-incrementing primary key.
type typeRule func(col ColumnDef, typeMap TypeMappingConfig) (Call, bool)

type integerFamily struct {
	signed     string
	unsigned   string
	increments string
}

var (
	tinyInts   = integerFamily{"tinyInteger", "unsignedTinyInteger", "tinyIncrements"}
	smallInts  = integerFamily{"smallInteger", "unsignedSmallInteger", "smallIncrements"}
	mediumInts = integerFamily{"mediumInteger", "unsignedMediumInteger", "mediumIncrements"}
	ints       = integerFamily{"integer", "unsignedInteger", "increments"}
	bigInts    = integerFamily{"bigInteger", "unsignedBigInteger", "bigIncrements"}
)

// typeRules is keyed by the lower-cased base type name.
var typeRules = map[string]typeRule{
	"enum":       valueListColumn("enum"),
	"set":        valueListColumn("set"),
	"json":       jsonColumn,
	"double":     precisionColumn("double"),
	"real":       precisionColumn("double"),
	"float":      precisionColumn("float"),
	"decimal":    precisionColumn("decimal"),
	"numeric":    precisionColumn("decimal"),
	"bool":       plainColumn("boolean"),
	"boolean":    plainColumn("boolean"),
	"tinyint":    tinyIntColumn,
	"smallint":   integerColumn(smallInts),
	"mediumint":  integerColumn(mediumInts),
	"int":        integerColumn(ints),
	"integer":    integerColumn(ints),
	"bigint":     integerColumn(bigInts),
	"varchar":    lengthColumn("string"),
	"char":       lengthColumn("char"),
	"text":       plainColumn("text"),
	"tinytext":   plainColumn("tinyText"),
	"mediumtext": plainColumn("mediumText"),
	"longtext":   plainColumn("longText"),
	"datetime":   fractionalColumn("dateTime"),
	"timestamp":  fractionalColumn("timestamp"),
	"time":       fractionalColumn("time"),
	"date":       plainColumn("date"),
	"year":       plainColumn("year"),
	"binary":     plainColumn("binary"),
	"varbinary":  plainColumn("binary"),
	"blob":       plainColumn("binary"),
	"tinyblob":   plainColumn("binary"),
	"mediumblob": plainColumn("binary"),
	"longblob":   plainColumn("binary"),
}

// isMappedType reports whether mapColumn produces a Blueprint call (rather
// than a passthrough comment) for col.
func isMappedType(col ColumnDef, typeMap TypeMappingConfig) bool {
	if !col.Parsed {
		return false
	}
	_, ok := typeRules[col.TypeTag]
	return ok || typeMap.UnknownAsText
}

// mapColumn maps one column definition to a Blueprint statement. The bool
// reports whether the column became an auto-incrementing primary key.
// Unmapped types become a comment carrying the original line.
func mapColumn(col ColumnDef, typeMap TypeMappingConfig) (Statement, bool) {
	if !col.Parsed {
		return commentStatement(col.Raw), false
	}

	var base Call
	var autoIncrement bool
	if rule, ok := typeRules[col.TypeTag]; ok {
		base, autoIncrement = rule(col, typeMap)
	} else if typeMap.UnknownAsText {
		base = call("text", strArg(col.Name))
	} else {
		return commentStatement(col.Raw), false
	}

	return applyColumnModifiers(chain(base), col, autoIncrement, typeMap), autoIncrement
}

// applyColumnModifiers appends modifiers in a fixed order: nullable,
// default, on-update, comment, charset/collation, generated, primary.
func applyColumnModifiers(st Statement, col ColumnDef, autoIncrement bool, typeMap TypeMappingConfig) Statement {
	if !col.IsNotNull && !autoIncrement {
		st = st.with("nullable")
	}

	if d := col.Default; d != nil && !isNullDefault(d) {
		switch {
		case d.Expression:
			st = st.with("default", rawExprArg(d.Text))
		case !d.Quoted && isCurrentTimestamp(d.Text):
			st = st.with("useCurrent")
		default:
			st = st.with("default", strArg(d.Text))
		}
	}

	if col.OnUpdateCurrent {
		st = st.with("useCurrentOnUpdate")
	}

	if col.Comment != nil {
		st = st.with("comment", strArg(*col.Comment))
	}

	for _, c := range collationCalls(col, typeMap) {
		st = st.with(c.Method, c.Args...)
	}

	if col.Generated != nil {
		c := generatedColumnCall(*col.Generated)
		st = st.with(c.Method, c.Args...)
	}

	if col.InlinePrimary && !autoIncrement {
		st = st.with("primary")
	}
	return st
}

func plainColumn(method string) typeRule {
	return func(col ColumnDef, _ TypeMappingConfig) (Call, bool) {
		return call(method, strArg(col.Name)), false
	}
}

func jsonColumn(col ColumnDef, typeMap TypeMappingConfig) (Call, bool) {
	if typeMap.JSONAsJSONB {
		return call("jsonb", strArg(col.Name)), false
	}
	return call("json", strArg(col.Name)), false
}

func valueListColumn(method string) typeRule {
	return func(col ColumnDef, _ TypeMappingConfig) (Call, bool) {
		values := append([]string{}, col.TypeArgs...)
		return call(method, strArg(col.Name), listArg(values)), false
	}
}

// precisionColumn passes (precision[, scale]) through when present.
func precisionColumn(method string) typeRule {
	return func(col ColumnDef, _ TypeMappingConfig) (Call, bool) {
		args := []Arg{strArg(col.Name)}
		if n := len(col.TypeArgs); (n == 1 || n == 2) && allDigits(col.TypeArgs) {
			for _, a := range col.TypeArgs {
				args = append(args, numArg(a))
			}
		}
		return call(method, args...), false
	}
}

// lengthColumn passes the length through when present, e.g. varchar(20).
func lengthColumn(method string) typeRule {
	return func(col ColumnDef, _ TypeMappingConfig) (Call, bool) {
		if len(col.TypeArgs) == 1 && allDigits(col.TypeArgs) {
			return call(method, strArg(col.Name), numArg(col.TypeArgs[0])), false
		}
		return call(method, strArg(col.Name)), false
	}
}

// fractionalColumn passes fractional-seconds precision through when non-zero.
func fractionalColumn(method string) typeRule {
	return func(col ColumnDef, _ TypeMappingConfig) (Call, bool) {
		if len(col.TypeArgs) == 1 && allDigits(col.TypeArgs) && strings.TrimLeft(col.TypeArgs[0], "0") != "" {
			return call(method, strArg(col.Name), numArg(col.TypeArgs[0])), false
		}
		return call(method, strArg(col.Name)), false
	}
}

func tinyIntColumn(col ColumnDef, typeMap TypeMappingConfig) (Call, bool) {
	if typeMap.TinyInt1AsBoolean && len(col.TypeArgs) == 1 && col.TypeArgs[0] == "1" {
		return call("boolean", strArg(col.Name)), false
	}
	return integerColumn(tinyInts)(col, typeMap)
}

// integerColumn picks the signed, unsigned or increments variant. Signed
// auto-increment columns use the (name, true) form, which Laravel also makes
// the primary key.
func integerColumn(f integerFamily) typeRule {
	return func(col ColumnDef, _ TypeMappingConfig) (Call, bool) {
		name := strArg(col.Name)
		switch {
		case col.IsAutoIncrement && col.IsUnsigned:
			return call(f.increments, name), true
		case col.IsAutoIncrement:
			return call(f.signed, name, boolArg(true)), true
		case col.IsUnsigned:
			return call(f.unsigned, name), false
		default:
			return call(f.signed, name), false
		}
	}
}

func allDigits(xs []string) bool {
	for _, s := range xs {
		s = strings.TrimSpace(s)
		if s == "" {
			return false
		}
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
	}
	return true
}
