package main

import (
	"strings"
	"testing"
)

func TestPHPString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", `'it\'s'`},
		{`C:\tmp`, `'C:\\tmp'`},
		{`\'`, `'\\\''`},
		{"", "''"},
		{"$var {x}", "'$var {x}'"},
	}
	for _, tt := range tests {
		if got := phpString(tt.in); got != tt.want {
			t.Errorf("phpString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRenderStatement(t *testing.T) {
	st := chain(call("decimal", strArg("price"), numArg("10"), numArg("2"))).with("nullable")
	if got, want := renderStatement(st), "$table->decimal('price', 10, 2)->nullable();"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	c := commentStatement("`geo`  point\n   NOT NULL")
	if got, want := renderStatement(c), "// `geo` point NOT NULL"; got != want {
		t.Errorf("comment = %s, want %s", got, want)
	}
	if !c.IsComment() || c.Method() != "" {
		t.Error("comment statement misreported")
	}

	raw := chain(call("default", rawExprArg("uuid()")), call("index", boolArg(false)))
	if got, want := renderStatement(raw), "$table->default(DB::raw('uuid()'))->index(false);"; got != want {
		t.Errorf("raw = %s, want %s", got, want)
	}
}

func TestRenderStatement_CommentCannotClosePHP(t *testing.T) {
	tests := []struct {
		comment string
		want    string
	}{
		{"`geo` point NOT NULL COMMENT 'a ?> b'", "// `geo` point NOT NULL COMMENT 'a ? > b'"},
		{"KEY `k` (`a`) COMMENT '??>?>'", "// KEY `k` (`a`) COMMENT '?? >? >'"},
		{"no closing tag ? here >", "// no closing tag ? here >"},
	}
	for _, tt := range tests {
		got := renderStatement(commentStatement(tt.comment))
		if got != tt.want {
			t.Errorf("renderStatement(%q) = %s, want %s", tt.comment, got, tt.want)
		}
		if strings.Contains(got, "?>") {
			t.Errorf("rendered comment still closes PHP: %s", got)
		}
	}

	st, _ := mapColumn(parseColumnDef("`geo` point NOT NULL COMMENT 'a ?> b'"), defaultTypeMappingConfig())
	if got := renderStatement(st); strings.Contains(got, "?>") {
		t.Errorf("unmapped column passthrough = %s", got)
	}
}

func TestStatementWithCopies(t *testing.T) {
	base := chain(call("string", strArg("a")))
	x := base.with("nullable")
	y := base.with("unique")

	if got := renderStatement(x); got != "$table->string('a')->nullable();" {
		t.Errorf("x = %s", got)
	}
	if got := renderStatement(y); got != "$table->string('a')->unique();" {
		t.Errorf("y = %s", got)
	}
	if len(base.Calls) != 1 {
		t.Errorf("base modified: %d calls", len(base.Calls))
	}
}

func TestRenderMigration_Create(t *testing.T) {
	m := Migration{
		Up: []Block{{Kind: blockCreate, Table: "users", Statements: []Statement{
			chain(call("bigIncrements", strArg("id"))),
		}}},
		Down: []Block{{Kind: blockDropIfExists, Table: "users"}},
	}

	want := `<?php

use Illuminate\Database\Migrations\Migration;
use Illuminate\Database\Schema\Blueprint;
use Illuminate\Support\Facades\Schema;

return new class extends Migration
{
    public function up(): void
    {
        Schema::create('users', function (Blueprint $table) {
            $table->bigIncrements('id');
        });
    }

    public function down(): void
    {
        Schema::dropIfExists('users');
    }
};
`
	if got := renderMigration(m); got != want {
		t.Errorf("renderMigration() mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderMigration_Imports(t *testing.T) {
	withRaw := Migration{Up: []Block{{Kind: blockCreate, Table: "t", Statements: []Statement{
		chain(call("char", strArg("id"), numArg("36")), call("default", rawExprArg("uuid()"))),
	}}}}
	if got := renderMigration(withRaw); !strings.Contains(got, "use Illuminate\\Support\\Facades\\DB;\n") {
		t.Errorf("DB facade import missing:\n%s", got)
	}

	plain := Migration{Up: []Block{{Kind: blockTable, Table: "t", Statements: []Statement{
		chain(call("dropForeign", listArg([]string{"a"}))),
	}}}}
	got := renderMigration(plain)
	if strings.Contains(got, "Facades\\DB;") {
		t.Errorf("unexpected DB facade import:\n%s", got)
	}
	if !strings.Contains(got, "        Schema::table('t', function (Blueprint $table) {\n            $table->dropForeign(['a']);\n        });\n") {
		t.Errorf("Schema::table block missing:\n%s", got)
	}
	if !strings.Contains(got, "    public function down(): void\n    {\n        //\n    }\n") {
		t.Errorf("empty down() should hold a placeholder comment:\n%s", got)
	}
}
