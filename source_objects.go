package main

import (
	"fmt"
	"regexp"
	"strings"
)

// SourceObjects holds non-table objects found in the dump. None of them are
// turned into migrations.
type SourceObjects struct {
	Views    []string
	Routines []string
	Triggers []string
	Events   []string
}

func (o *SourceObjects) count() int {
	if o == nil {
		return 0
	}
	return len(o.Views) + len(o.Routines) + len(o.Triggers) + len(o.Events)
}

var sourceObjectRe = regexp.MustCompile("(?is)^CREATE\\s+" +
	"(?:OR\\s+REPLACE\\s+)?" +
	"(?:ALGORITHM\\s*=\\s*\\w+\\s+)?" +
	"(?:DEFINER\\s*=\\s*\\S+\\s+)?" +
	"(?:SQL\\s+SECURITY\\s+\\w+\\s+)?" +
	"(VIEW|TRIGGER|PROCEDURE|FUNCTION|EVENT)\\s+" +
	"(?:IF\\s+NOT\\s+EXISTS\\s+)?" +
	"((?:`[^`]*`|[\\w$]+)(?:\\.(?:`[^`]*`|[\\w$]+))?)")

// findSourceObjects lists the views, routines, triggers and events declared
// in sql (comments already stripped), in source order.
func findSourceObjects(sql string) *SourceObjects {
	objs := &SourceObjects{}
	for _, stmt := range splitStatements(sql) {
		m := sourceObjectRe.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		name := strings.ReplaceAll(m[2], "`", "")
		switch strings.ToUpper(m[1]) {
		case "VIEW":
			objs.Views = append(objs.Views, name)
		case "PROCEDURE", "FUNCTION":
			objs.Routines = append(objs.Routines, name)
		case "TRIGGER":
			objs.Triggers = append(objs.Triggers, name)
		case "EVENT":
			objs.Events = append(objs.Events, name)
		}
	}
	return objs
}

// each calls fn for every object, grouped by kind in report order.
func (o *SourceObjects) each(fn func(kind, name string)) {
	groups := []struct {
		kind  string
		names []string
	}{
		{"view", o.Views},
		{"routine", o.Routines},
		{"trigger", o.Triggers},
		{"event", o.Events},
	}
	for _, g := range groups {
		for _, n := range g.names {
			fn(g.kind, n)
		}
	}
}

// sourceObjectDiagnostics reports one UnsupportedObject diagnostic per object.
func sourceObjectDiagnostics(objs *SourceObjects) []Diagnostic {
	if objs.count() == 0 {
		return nil
	}
	var diags []Diagnostic
	objs.each(func(kind, name string) {
		diags = append(diags, Diagnostic{
			Kind:   UnsupportedObject,
			Detail: fmt.Sprintf("%s %s is not migrated", kind, name),
		})
	})
	return diags
}

func sourceObjectWarnings(objs *SourceObjects) []string {
	if objs.count() == 0 {
		return nil
	}
	out := []string{fmt.Sprintf(
		"source contains non-table objects not migrated automatically (%d views, %d routines, %d triggers, %d events)",
		len(objs.Views), len(objs.Routines), len(objs.Triggers), len(objs.Events))}
	objs.each(func(kind, name string) {
		out = append(out, kind+": "+name)
	})
	return out
}
