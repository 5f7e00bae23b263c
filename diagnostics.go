package main

import "fmt"

// DiagnosticKind classifies a recoverable problem found while converting.
type DiagnosticKind int

const (
	UnmatchedTableBlock DiagnosticKind = iota + 1
	UnmappedColumnType
	UnrecognizedConstraint
	MalformedForeignKey
	DuplicateTable
	UnsupportedObject
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnmatchedTableBlock:
		return "unmatched table block"
	case UnmappedColumnType:
		return "unmapped column type"
	case UnrecognizedConstraint:
		return "unrecognized constraint"
	case MalformedForeignKey:
		return "malformed foreign key"
	case DuplicateTable:
		return "duplicate table"
	case UnsupportedObject:
		return "unsupported object"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Diagnostic is a local, best-effort recovery. None of them abort a run.
type Diagnostic struct {
	Kind   DiagnosticKind
	Table  string
	Detail string
}

func (d Diagnostic) String() string {
	if d.Table == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", d.Table, d.Kind, d.Detail)
}

// countDiagnostics returns how many diagnostics of each kind were reported.
func countDiagnostics(diags []Diagnostic) map[DiagnosticKind]int {
	counts := make(map[DiagnosticKind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	return counts
}
