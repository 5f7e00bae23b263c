package main

import (
	"reflect"
	"testing"
)

func renderColumn(line string, typeMap TypeMappingConfig) (string, bool) {
	st, autoInc := mapColumn(parseColumnDef(line), typeMap)
	return renderStatement(st), autoInc
}

func TestMapColumn(t *testing.T) {
	def := defaultTypeMappingConfig()
	tests := []struct {
		name    string
		line    string
		tm      TypeMappingConfig
		want    string
		autoInc bool
	}{
		{"unsigned bigint auto increment", "`id` bigint(20) unsigned NOT NULL AUTO_INCREMENT", def, "$table->bigIncrements('id');", true},
		{"varchar with default", "`status` varchar(20) NOT NULL DEFAULT 'pending'", def, "$table->string('status', 20)->default('pending');", false},
		{"tinyint(1) as boolean", "`is_active` tinyint(1) NOT NULL DEFAULT '1'", def, "$table->boolean('is_active')->default('1');", false},
		{"unknown type passthrough", "`geo` point NOT NULL", def, "// `geo` point NOT NULL", false},
		{"unknown type as text", "`geo` point", TypeMappingConfig{UnknownAsText: true}, "$table->text('geo')->nullable();", false},
		{"tinyint(1) kept as integer", "`flag` tinyint(1) NOT NULL", TypeMappingConfig{}, "$table->tinyInteger('flag');", false},
		{"tinyint(4)", "`flags` tinyint(4) NOT NULL DEFAULT '0'", def, "$table->tinyInteger('flags')->default('0');", false},
		{"signed int auto increment", "`n` int NOT NULL AUTO_INCREMENT", def, "$table->integer('n', true);", true},
		{"unsigned int auto increment", "`n` int(10) unsigned NOT NULL AUTO_INCREMENT", def, "$table->increments('n');", true},
		{"unsigned smallint", "`c` smallint unsigned NOT NULL", def, "$table->unsignedSmallInteger('c');", false},
		{"mediumint", "`c` mediumint(9) DEFAULT NULL", def, "$table->mediumInteger('c')->nullable();", false},
		{"decimal", "`price` decimal(10,2) DEFAULT NULL", def, "$table->decimal('price', 10, 2)->nullable();", false},
		{"bare decimal", "`price` decimal NOT NULL", def, "$table->decimal('price');", false},
		{"double", "`d` double(8,2) NOT NULL", def, "$table->double('d', 8, 2);", false},
		{"float", "`f` float NOT NULL", def, "$table->float('f');", false},
		{"enum", "`kind` enum('a','b') NOT NULL DEFAULT 'a'", def, "$table->enum('kind', ['a', 'b'])->default('a');", false},
		{"enum with quote", "`q` enum('it''s','x') NOT NULL", def, "$table->enum('q', ['it\\'s', 'x']);", false},
		{"set", "`s` set('r','w') DEFAULT NULL", def, "$table->set('s', ['r', 'w'])->nullable();", false},
		{"json", "`meta` json DEFAULT NULL", def, "$table->json('meta')->nullable();", false},
		{"json as jsonb", "`meta` json NOT NULL", TypeMappingConfig{JSONAsJSONB: true}, "$table->jsonb('meta');", false},
		{"char", "`uuid` char(36) NOT NULL DEFAULT (uuid())", def, "$table->char('uuid', 36)->default(DB::raw('uuid()'));", false},
		{"longtext", "`body` longtext NOT NULL", def, "$table->longText('body');", false},
		{"mediumtext", "`body` MEDIUMTEXT", def, "$table->mediumText('body')->nullable();", false},
		{"comment escaping", "`note` text COMMENT 'it''s'", def, "$table->text('note')->nullable()->comment('it\\'s');", false},
		{"backslash default", "`p` varchar(10) NOT NULL DEFAULT 'C:\\\\tmp'", def, "$table->string('p', 10)->default('C:\\\\tmp');", false},
		{"use current", "`created_at` timestamp NULL DEFAULT CURRENT_TIMESTAMP", def, "$table->timestamp('created_at')->nullable()->useCurrent();", false},
		{
			"use current on update",
			"`updated_at` timestamp(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6)",
			def,
			"$table->timestamp('updated_at', 6)->useCurrent()->useCurrentOnUpdate();",
			false,
		},
		{"on update now()", "`t` datetime NOT NULL ON UPDATE now()", def, "$table->dateTime('t')->useCurrentOnUpdate();", false},
		{"datetime(0)", "`d` datetime(0) DEFAULT NULL", def, "$table->dateTime('d')->nullable();", false},
		{"time(3)", "`t` time(3) NOT NULL", def, "$table->time('t', 3);", false},
		{"date", "`d` date NOT NULL", def, "$table->date('d');", false},
		{"year", "`y` year(4) DEFAULT NULL", def, "$table->year('y')->nullable();", false},
		{"blob", "`b` blob", def, "$table->binary('b')->nullable();", false},
		{"varbinary", "`b` varbinary(16) NOT NULL", def, "$table->binary('b');", false},
		{"quoted NULL default kept", "`s` varchar(4) DEFAULT 'NULL'", def, "$table->string('s', 4)->nullable()->default('NULL');", false},
		{"inline primary key", "`code` int NOT NULL PRIMARY KEY", def, "$table->integer('code')->primary();", false},
		{"inline primary on auto increment", "`id` int unsigned NOT NULL AUTO_INCREMENT PRIMARY KEY", def, "$table->increments('id');", true},
		{
			"generated virtual",
			"`full_name` varchar(255) GENERATED ALWAYS AS (concat(`first`,' ',`last`)) VIRTUAL",
			def,
			"$table->string('full_name', 255)->nullable()->virtualAs('concat(`first`,\\' \\',`last`)');",
			false,
		},
		{"generated stored", "`total` int AS (`a` + `b`) STORED NOT NULL", def, "$table->integer('total')->storedAs('`a` + `b`');", false},
		{"collation dropped", "`name` varchar(50) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL", def, "$table->string('name', 50);", false},
		{
			"collation preserved",
			"`name` varchar(50) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
			TypeMappingConfig{PreserveCollations: true},
			"$table->string('name', 50)->charset('utf8mb4')->collation('utf8mb4_bin');",
			false,
		},
		{"unparseable line", "`broken`", def, "// `broken`", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, autoInc := renderColumn(tt.line, tt.tm)
			if got != tt.want {
				t.Errorf("mapColumn(%q)\n got: %s\nwant: %s", tt.line, got, tt.want)
			}
			if autoInc != tt.autoInc {
				t.Errorf("mapColumn(%q) autoIncrement = %t, want %t", tt.line, autoInc, tt.autoInc)
			}
		})
	}
}

func TestMapColumn_Deterministic(t *testing.T) {
	line := "`status` varchar(20) NOT NULL DEFAULT 'pending' COMMENT 'state'"
	first, _ := renderColumn(line, defaultTypeMappingConfig())
	for i := 0; i < 5; i++ {
		if got, _ := renderColumn(line, defaultTypeMappingConfig()); got != first {
			t.Fatalf("run %d = %q, want %q", i, got, first)
		}
	}

	// Same line in different tables maps the same way.
	a, _ := mapColumns(Table{Name: "a", Columns: []ColumnDef{parseColumnDef(line)}}, defaultTypeMappingConfig())
	b, _ := mapColumns(Table{Name: "b", Columns: []ColumnDef{parseColumnDef(line)}}, defaultTypeMappingConfig())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("mapping depends on table context: %+v vs %+v", a, b)
	}
}

func TestParseColumnDef(t *testing.T) {
	col := parseColumnDef("`price` DECIMAL(10, 2) unsigned NOT NULL DEFAULT '0.00' COMMENT 'net'")
	if !col.Parsed {
		t.Fatal("Parsed = false")
	}
	if col.Name != "price" || col.TypeTag != "decimal" || col.RawType != "DECIMAL(10, 2)" {
		t.Errorf("name/tag/raw = %q/%q/%q", col.Name, col.TypeTag, col.RawType)
	}
	if !reflect.DeepEqual(col.TypeArgs, []string{"10", "2"}) {
		t.Errorf("TypeArgs = %q", col.TypeArgs)
	}
	if !col.IsUnsigned || !col.IsNotNull || col.IsAutoIncrement {
		t.Errorf("flags = unsigned:%t notnull:%t autoinc:%t", col.IsUnsigned, col.IsNotNull, col.IsAutoIncrement)
	}
	if col.Default == nil || col.Default.Text != "0.00" || !col.Default.Quoted {
		t.Errorf("Default = %+v", col.Default)
	}
	if col.Comment == nil || *col.Comment != "net" {
		t.Errorf("Comment = %v", col.Comment)
	}
}

func TestIsCurrentTimestamp(t *testing.T) {
	for _, s := range []string{"CURRENT_TIMESTAMP", "current_timestamp()", "CURRENT_TIMESTAMP(3)", "NOW()", "LOCALTIMESTAMP"} {
		if !isCurrentTimestamp(s) {
			t.Errorf("isCurrentTimestamp(%q) = false", s)
		}
	}
	for _, s := range []string{"0", "'CURRENT_TIMESTAMP'", "now", ""} {
		if isCurrentTimestamp(s) {
			t.Errorf("isCurrentTimestamp(%q) = true", s)
		}
	}
}
