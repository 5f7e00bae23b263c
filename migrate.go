package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ConvertOptions carries everything the pure conversion pipeline needs.
type ConvertOptions struct {
	SystemTable          string
	Unrecognized         UnrecognizedPolicy
	OnDuplicate          DuplicateTablePolicy
	SnakeCaseIdentifiers bool
	TypeMapping          TypeMappingConfig
	Naming               NamingOptions
}

// Conversion is the result of one pipeline run.
type Conversion struct {
	Tables      []Table // after foreign-key removal and primary-key dedupe
	Deferred    DeferredForeignKeys
	Artifacts   []MigrationArtifact
	Diagnostics []Diagnostic
	Objects     *SourceObjects
}

// convertSchema turns a schema dump into migration artifacts: one creation
// migration per table in source order, then the aggregate foreign-key
// migration when any key was deferred. Malformed input never fails the run;
// it is reported through Diagnostics. The only error is a duplicate table
// under the "error" policy.
func convertSchema(sql string, opts ConvertOptions) (*Conversion, error) {
	clean := stripComments(sql)

	blocks, diags, err := extractTableBlocks(clean, opts.SystemTable, opts.OnDuplicate)
	if err != nil {
		return nil, err
	}

	conv := &Conversion{Objects: findSourceObjects(clean)}
	var acc DeferredForeignKeys
	for i, block := range blocks {
		t, tableDiags := buildTable(block)
		diags = append(diags, tableDiags...)
		if opts.SnakeCaseIdentifiers {
			t = snakeCaseTable(t)
		}
		diags = append(diags, collectUnmappedTypeDiagnostics(t, opts.TypeMapping)...)

		columns, autoIncrement := mapColumns(t, opts.TypeMapping)
		acc, t = collectForeignKeys(acc, t)
		t = dedupePrimaryKeys(t, autoIncrement)
		conv.Tables = append(conv.Tables, t)

		conv.Artifacts = append(conv.Artifacts, MigrationArtifact{
			Key:      t.Name,
			Filename: createFilename(t.Name, i, opts.Naming),
			Body:     renderMigration(emitCreateMigration(t, columns, opts.Unrecognized)),
		})
	}

	if m, ok := emitForeignKeyMigration(acc); ok {
		conv.Artifacts = append(conv.Artifacts, MigrationArtifact{
			Key:      foreignKeysArtifactKey,
			Filename: foreignKeysFilename(len(blocks), opts.Naming),
			Body:     renderMigration(m),
		})
	}

	conv.Deferred = acc
	conv.Diagnostics = append(diags, sourceObjectDiagnostics(conv.Objects)...)
	return conv, nil
}

// buildTable classifies the definitions of one block and parses them.
func buildTable(block TableBlock) (Table, []Diagnostic) {
	t := Table{Name: block.Name}
	var diags []Diagnostic

	columnLines, constraintLines := classifyDefinitions(block.Body)
	for _, line := range columnLines {
		t.Columns = append(t.Columns, parseColumnDef(line))
	}
	for _, line := range constraintLines {
		def, d := parseConstraint(line)
		if d != nil {
			d.Table = block.Name
			diags = append(diags, *d)
		}
		if def != nil {
			t.Constraints = append(t.Constraints, def)
		}
	}
	return t, diags
}

// ArtifactWriter stores one named text artifact.
type ArtifactWriter interface {
	WriteArtifact(name, body string) error
	// Exists reports whether an artifact with this name is already stored.
	Exists(name string) bool
}

// dirWriter writes artifacts as files in one directory.
type dirWriter struct {
	dir string
}

func (w dirWriter) WriteArtifact(name, body string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("refusing to write %q: not a plain file name", name)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (w dirWriter) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(w.dir, name))
	return err == nil
}

// stdoutWriter prints artifacts for --dry-run.
type stdoutWriter struct {
	out io.Writer
}

func (w stdoutWriter) WriteArtifact(name, body string) error {
	if _, err := fmt.Fprintf(w.out, "// ==> %s\n%s\n", name, body); err != nil {
		return fmt.Errorf("print %s: %w", name, err)
	}
	return nil
}

func (stdoutWriter) Exists(string) bool { return false }

// generator runs one read-convert-write cycle. It is reused by watch mode.
type generator struct {
	cfg    *GeneratorConfig
	source SchemaSource
	writer ArtifactWriter
	state  *stateStore // nil when state_file is unset
	dryRun bool
	now    func() time.Time

	// last holds what the previous run produced when there is no state
	// store, so repeated runs in one process keep their filenames.
	last map[string]artifactRecord
}

// run reads the schema, converts it and writes every artifact that changed.
func (g *generator) run(ctx context.Context) (*Conversion, error) {
	start := g.now()

	log.Printf("reading schema from %s...", g.source.Describe())
	sql, err := g.source.ReadSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	conv, err := convertSchema(sql, g.cfg.convertOptions(start))
	if err != nil {
		return nil, fmt.Errorf("convert schema: %w", err)
	}
	reportConversion(conv, g.cfg)

	prev := g.last
	if g.state != nil {
		if prev, err = g.state.load(ctx); err != nil {
			return nil, err
		}
	}
	plan, warnings := planArtifacts(conv.Artifacts, prev, g.writer.Exists)
	for _, w := range warnings {
		log.Printf("  WARN: %s", w)
	}

	log.Printf("writing %d migration(s)...", len(plan))
	written := 0
	for _, p := range plan {
		if p.Unchanged {
			log.Printf("  unchanged %s", p.Artifact.Filename)
			continue
		}
		if err := g.writer.WriteArtifact(p.Artifact.Filename, p.Artifact.Body); err != nil {
			return nil, err
		}
		if !g.dryRun {
			log.Printf("  wrote %s", p.Artifact.Filename)
		}
		written++
	}

	switch {
	case g.state == nil:
		g.last = plannedRecords(plan, start)
	case !g.dryRun:
		if err := g.state.record(ctx, plan, start); err != nil {
			return nil, err
		}
	}

	for i := range plan {
		conv.Artifacts[i] = plan[i].Artifact
	}
	log.Printf("generated %d migration(s) (%d written) in %s", len(plan), written, g.now().Sub(start).Round(time.Millisecond))
	return conv, nil
}

// reportConversion logs the per-table summary and every compatibility report.
func reportConversion(conv *Conversion, cfg *GeneratorConfig) {
	log.Printf("found %d tables", len(conv.Tables))
	for _, t := range conv.Tables {
		log.Printf("  %s (%d cols, %d constraints, %d deferred fks)",
			t.Name, len(t.Columns), len(t.Constraints), len(conv.Deferred.For(t.Name)))
	}

	counts := countDiagnostics(conv.Diagnostics)
	for _, kind := range []DiagnosticKind{UnmatchedTableBlock, DuplicateTable, UnmappedColumnType, MalformedForeignKey, UnrecognizedConstraint} {
		if counts[kind] == 0 {
			continue
		}
		log.Printf("%s report: %d definition(s) need manual handling", kind, counts[kind])
		for _, d := range conv.Diagnostics {
			if d.Kind == kind {
				log.Printf("  WARN: %s", d)
			}
		}
	}

	if warnings := sourceObjectWarnings(conv.Objects); len(warnings) > 0 {
		log.Printf("source object report: %d object(s) require manual migration", conv.Objects.count())
		for _, w := range warnings {
			log.Printf("  WARN: %s", w)
		}
	}
	if warnings := collectGeneratedColumnWarnings(conv.Tables); len(warnings) > 0 {
		log.Printf("generated column report: %d column(s) keep MySQL expressions", len(warnings))
		for _, w := range warnings {
			log.Printf("  WARN: %s", w)
		}
	}
	if warnings := collectCollationWarnings(conv.Tables, cfg.TypeMapping); len(warnings) > 0 {
		log.Printf("collation report:")
		for _, w := range warnings {
			log.Printf("  WARN: %s", w)
		}
	}
}
