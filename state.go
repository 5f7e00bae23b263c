package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// stateStore remembers which file each artifact was written to, so re-runs
// keep their timestamps and leave unchanged files alone.
type stateStore struct {
	db   *sql.DB
	path string
}

// artifactRecord is one row of the artifacts table.
type artifactRecord struct {
	Key         string
	Filename    string
	Checksum    string
	GeneratedAt time.Time
}

// openStateStore opens or creates the state database at path.
func openStateStore(path string) (*stateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state db %s: %w", path, err)
	}

	s := &stateStore{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *stateStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *stateStore) initSchema() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS artifacts (
			artifact_key  TEXT PRIMARY KEY,
			filename      TEXT NOT NULL,
			checksum      TEXT NOT NULL,
			generated_at  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS state_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO state_meta (key, value) VALUES ('version', '1');
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init state schema: %w", err)
	}
	return nil
}

// load returns every recorded artifact keyed by artifact key.
func (s *stateStore) load(ctx context.Context) (map[string]artifactRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT artifact_key, filename, checksum, generated_at FROM artifacts`)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	defer rows.Close()

	records := make(map[string]artifactRecord)
	for rows.Next() {
		var r artifactRecord
		var generatedAt string
		if err := rows.Scan(&r.Key, &r.Filename, &r.Checksum, &generatedAt); err != nil {
			return nil, fmt.Errorf("scan state row: %w", err)
		}
		r.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		records[r.Key] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return records, nil
}

// record stores the planned artifacts in one transaction. Unchanged
// artifacts keep their original generated_at.
func (s *stateStore) record(ctx context.Context, plan []plannedArtifact, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO artifacts (artifact_key, filename, checksum, generated_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare state insert: %w", err)
	}
	defer stmt.Close()

	stamp := at.UTC().Format(time.RFC3339)
	for _, p := range plan {
		if p.Unchanged {
			continue
		}
		a := p.Artifact
		if _, err := stmt.ExecContext(ctx, a.Key, a.Filename, checksum(a.Body), stamp); err != nil {
			return fmt.Errorf("record %s: %w", a.Filename, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state: %w", err)
	}
	return nil
}

func checksum(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// plannedArtifact is an artifact with its final filename decided.
type plannedArtifact struct {
	Artifact  MigrationArtifact
	Unchanged bool // same content already stored under the same name
}

// plannedRecords turns a plan into the records a later run plans against.
func plannedRecords(plan []plannedArtifact, at time.Time) map[string]artifactRecord {
	records := make(map[string]artifactRecord, len(plan))
	for _, p := range plan {
		a := p.Artifact
		records[a.Key] = artifactRecord{Key: a.Key, Filename: a.Filename, Checksum: checksum(a.Body), GeneratedAt: at}
	}
	return records
}

// planArtifacts reuses filenames recorded by earlier runs. Creation
// migrations always keep their old name. The aggregate foreign-key migration
// keeps its old name only while that still sorts after every creation
// migration; otherwise it gets the freshly generated name and a warning names
// the file it supersedes. Recorded artifacts that are no longer generated are
// reported too.
func planArtifacts(artifacts []MigrationArtifact, prev map[string]artifactRecord, exists func(string) bool) ([]plannedArtifact, []string) {
	plan := make([]plannedArtifact, len(artifacts))
	var warnings []string
	lastCreate := ""
	current := make(map[string]bool, len(artifacts))

	for i, a := range artifacts {
		current[a.Key] = true
		if a.Key == foreignKeysArtifactKey {
			continue
		}
		if r, ok := prev[a.Key]; ok {
			a.Filename = r.Filename
		}
		if a.Filename > lastCreate {
			lastCreate = a.Filename
		}
		plan[i] = plannedArtifact{Artifact: a}
	}

	for i, a := range artifacts {
		if a.Key != foreignKeysArtifactKey {
			continue
		}
		if r, ok := prev[a.Key]; ok && r.Filename != a.Filename {
			if r.Filename > lastCreate {
				a.Filename = r.Filename
			} else {
				warnings = append(warnings, fmt.Sprintf(
					"foreign key migration %s no longer runs after every table; superseded by %s, delete the old file",
					r.Filename, a.Filename))
			}
		}
		plan[i] = plannedArtifact{Artifact: a}
	}

	for i, p := range plan {
		r, ok := prev[p.Artifact.Key]
		plan[i].Unchanged = ok && r.Filename == p.Artifact.Filename &&
			r.Checksum == checksum(p.Artifact.Body) && exists(p.Artifact.Filename)
	}

	var stale []string
	for key, r := range prev {
		if !current[key] {
			stale = append(stale, r.Filename)
		}
	}
	sort.Strings(stale)
	for _, f := range stale {
		warnings = append(warnings, fmt.Sprintf("%s is no longer generated from the schema", f))
	}
	return plan, warnings
}
