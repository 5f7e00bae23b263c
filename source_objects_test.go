package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestFindSourceObjects(t *testing.T) {
	sql := strings.Join([]string{
		"CREATE TABLE `t` (`id` int) ENGINE=InnoDB;",
		"CREATE ALGORITHM=UNDEFINED DEFINER=`root`@`%` SQL SECURITY DEFINER VIEW `v_active` AS select 1;",
		"CREATE OR REPLACE VIEW shop.v2 AS select 2;",
		"CREATE DEFINER=`root`@`localhost` TRIGGER `trg_ins` BEFORE INSERT ON `t` FOR EACH ROW SET NEW.id = 1;",
		"DELIMITER ;;",
		"CREATE PROCEDURE `p_cleanup`(IN x INT) BEGIN DELETE FROM t WHERE id = x; END;;",
		"DELIMITER ;",
		"CREATE FUNCTION f() RETURNS INT RETURN 1;",
		"CREATE EVENT IF NOT EXISTS `e_nightly` ON SCHEDULE EVERY 1 DAY DO DELETE FROM t;",
	}, "\n")

	objs := findSourceObjects(sql)

	want := &SourceObjects{
		Views:    []string{"v_active", "shop.v2"},
		Routines: []string{"p_cleanup", "f"},
		Triggers: []string{"trg_ins"},
		Events:   []string{"e_nightly"},
	}
	if !reflect.DeepEqual(objs, want) {
		t.Errorf("findSourceObjects() = %+v, want %+v", objs, want)
	}

	diags := sourceObjectDiagnostics(objs)
	if len(diags) != 6 {
		t.Fatalf("got %d diagnostics, want 6", len(diags))
	}
	for _, d := range diags {
		if d.Kind != UnsupportedObject {
			t.Errorf("diagnostic kind = %v", d.Kind)
		}
	}
	if diags[0].Detail != "view v_active is not migrated" {
		t.Errorf("first detail = %q", diags[0].Detail)
	}
}

func TestSourceObjectWarnings(t *testing.T) {
	if got := sourceObjectWarnings(nil); got != nil {
		t.Errorf("nil objects = %q", got)
	}
	if got := sourceObjectWarnings(&SourceObjects{}); got != nil {
		t.Errorf("empty objects = %q", got)
	}

	got := sourceObjectWarnings(&SourceObjects{Views: []string{"v"}, Events: []string{"e"}})
	want := []string{
		"source contains non-table objects not migrated automatically (1 views, 0 routines, 0 triggers, 1 events)",
		"view: v",
		"event: e",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sourceObjectWarnings() = %q, want %q", got, want)
	}
}
