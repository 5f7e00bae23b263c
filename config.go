package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const timestampLayout = "2006_01_02_150405"

// GeneratorConfig holds the full TOML-driven generator configuration.
type GeneratorConfig struct {
	Source                  SourceConfig      `toml:"source"`
	Output                  OutputConfig      `toml:"output"`
	SystemTable             string            `toml:"system_table"`
	UnrecognizedConstraints string            `toml:"unrecognized_constraints"` // drop|comment
	OnDuplicateTable        string            `toml:"on_duplicate_table"`       // last|error
	SnakeCaseIdentifiers    bool              `toml:"snake_case_identifiers"`
	StateFile               string            `toml:"state_file"`
	TypeMapping             TypeMappingConfig `toml:"type_mapping"`

	// configDir is the directory containing the TOML file, used to resolve relative paths.
	configDir string
	// baseTime is the parsed output.timestamp; zero means "now".
	baseTime time.Time
}

// SourceConfig identifies where the schema dump comes from.
type SourceConfig struct {
	Type    string `toml:"type"` // "file" or "mysql"
	Path    string `toml:"path"`
	DSN     string `toml:"dsn"`
	Charset string `toml:"charset"` // character set for the MySQL connection (default: "utf8mb4")
}

type OutputConfig struct {
	Dir             string `toml:"dir"`
	TimestampPrefix bool   `toml:"timestamp_prefix"`
	Timestamp       string `toml:"timestamp"`
	Extension       string `toml:"extension"`
}

// TypeMappingConfig controls optional type coercions.
type TypeMappingConfig struct {
	TinyInt1AsBoolean  bool `toml:"tinyint1_as_boolean"`
	JSONAsJSONB        bool `toml:"json_as_jsonb"`
	UnknownAsText      bool `toml:"unknown_as_text"`
	PreserveCollations bool `toml:"preserve_collations"`
}

// loadConfig reads a TOML config file and returns a GeneratorConfig with defaults applied.
func loadConfig(path string) (*GeneratorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Source: SourceConfig{
			Type:    "file",
			Charset: "utf8mb4",
		},
		Output: OutputConfig{
			Dir:             "database/migrations",
			TimestampPrefix: true,
			Extension:       "php",
		},
		SystemTable:             "migrations",
		UnrecognizedConstraints: string(UnrecognizedDrop),
		OnDuplicateTable:        string(DuplicateLast),
		TypeMapping:             defaultTypeMappingConfig(),
	}
}

func defaultTypeMappingConfig() TypeMappingConfig {
	return TypeMappingConfig{
		TinyInt1AsBoolean:  true,
		JSONAsJSONB:        false,
		UnknownAsText:      false,
		PreserveCollations: false,
	}
}

func (c *GeneratorConfig) validate() error {
	c.SystemTable = strings.TrimSpace(c.SystemTable)

	switch UnrecognizedPolicy(c.UnrecognizedConstraints) {
	case UnrecognizedDrop, UnrecognizedComment:
	default:
		return fmt.Errorf("unrecognized_constraints must be one of: drop, comment")
	}
	switch DuplicateTablePolicy(c.OnDuplicateTable) {
	case DuplicateLast, DuplicateError:
	default:
		return fmt.Errorf("on_duplicate_table must be one of: last, error")
	}

	switch c.Source.Type {
	case "file":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for file sources")
		}
		if c.Source.DSN != "" {
			return fmt.Errorf("source.dsn is a mysql-only option")
		}
	case "mysql":
		if c.Source.DSN == "" {
			return fmt.Errorf("source.dsn is required for mysql sources")
		}
		if c.Source.Path != "" {
			return fmt.Errorf("source.path is a file-only option")
		}
	case "":
		return fmt.Errorf("source.type is required (must be file or mysql)")
	default:
		return fmt.Errorf("unsupported source type %q (must be file or mysql)", c.Source.Type)
	}
	if c.Source.Charset == "" {
		c.Source.Charset = "utf8mb4"
	}

	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	c.Output.Extension = strings.TrimPrefix(strings.TrimSpace(c.Output.Extension), ".")
	if c.Output.Extension == "" {
		return fmt.Errorf("output.extension must not be empty")
	}
	if ts := strings.TrimSpace(c.Output.Timestamp); ts != "" {
		t, err := time.Parse(timestampLayout, ts)
		if err != nil {
			return fmt.Errorf("output.timestamp must use the layout YYYY_MM_DD_HHMMSS: %w", err)
		}
		c.baseTime = t
	}
	return nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *GeneratorConfig) resolvePath(p string) string {
	if filepath.IsAbs(p) || c.configDir == "" {
		return p
	}
	return filepath.Join(c.configDir, p)
}

// convertOptions derives the pipeline options from the config. now is used
// when output.timestamp is unset.
func (c *GeneratorConfig) convertOptions(now time.Time) ConvertOptions {
	base := c.baseTime
	if base.IsZero() {
		base = now.UTC()
	}
	return ConvertOptions{
		SystemTable:          c.SystemTable,
		Unrecognized:         UnrecognizedPolicy(c.UnrecognizedConstraints),
		OnDuplicate:          DuplicateTablePolicy(c.OnDuplicateTable),
		SnakeCaseIdentifiers: c.SnakeCaseIdentifiers,
		TypeMapping:          c.TypeMapping,
		Naming: NamingOptions{
			TimestampPrefix: c.Output.TimestampPrefix,
			BaseTime:        base,
			Extension:       c.Output.Extension,
		},
	}
}
