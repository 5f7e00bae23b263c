package main

import (
	"context"
	"fmt"
	"os"
)

// SchemaSource produces the whole schema dump as text.
type SchemaSource interface {
	// ReadSchema returns the CREATE statements of every table.
	ReadSchema(ctx context.Context) (string, error)

	// Describe returns a human-readable description of the source (for logging).
	Describe() string
}

// newSchemaSource returns a SchemaSource for the configured source type.
func newSchemaSource(cfg *GeneratorConfig) (SchemaSource, error) {
	switch cfg.Source.Type {
	case "file":
		return &fileSource{path: cfg.resolvePath(cfg.Source.Path)}, nil
	case "mysql":
		return &mysqlSource{dsn: cfg.Source.DSN, charset: cfg.Source.Charset}, nil
	default:
		return nil, fmt.Errorf("unsupported source type %q (must be file or mysql)", cfg.Source.Type)
	}
}

// fileSource reads a mysqldump-style file from disk.
type fileSource struct {
	path string
}

func (f *fileSource) ReadSchema(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read schema file: %w", err)
	}
	return string(data), nil
}

func (f *fileSource) Describe() string { return f.path }
