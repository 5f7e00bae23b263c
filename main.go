package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	dryRun      bool
	watchMode   bool
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "sql2lm [config.toml]",
	Short: "MySQL schema dump to Laravel migrations generator",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to generator TOML config file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print migrations to stdout instead of writing files")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "regenerate whenever the schema file changes (file sources only)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return nil
	}

	// A positional path wins over --config.
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}
	if cfgPath == "" {
		return fmt.Errorf("config file required: sql2lm <config.toml> or sql2lm --config <config.toml>")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if watchMode && cfg.Source.Type != "file" {
		return fmt.Errorf("--watch requires a file source (source.type = \"file\")")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("sql2lm %s: MySQL schema -> Laravel migrations", formatVersion(buildVersion, buildCommit))
	log.Printf(
		"config: source=%s output=%s timestamp_prefix=%t unrecognized_constraints=%s on_duplicate_table=%s snake_case_identifiers=%t",
		cfg.Source.Type,
		cfg.resolvePath(cfg.Output.Dir),
		cfg.Output.TimestampPrefix,
		cfg.UnrecognizedConstraints,
		cfg.OnDuplicateTable,
		cfg.SnakeCaseIdentifiers,
	)

	gen, cleanup, err := newGenerator(cfg, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := gen.run(ctx); err != nil {
		if !watchMode {
			return err
		}
		log.Printf("  WARN: %v", err)
	}
	if !watchMode {
		return nil
	}

	return watchSchema(ctx, cfg.resolvePath(cfg.Source.Path), func(ctx context.Context) error {
		_, err := gen.run(ctx)
		return err
	})
}

// newGenerator wires source, writer and state store from the config.
func newGenerator(cfg *GeneratorConfig, cmd *cobra.Command) (*generator, func(), error) {
	src, err := newSchemaSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	var writer ArtifactWriter = dirWriter{dir: cfg.resolvePath(cfg.Output.Dir)}
	if dryRun {
		writer = stdoutWriter{out: cmd.OutOrStdout()}
	}

	gen := &generator{
		cfg:    cfg,
		source: src,
		writer: writer,
		dryRun: dryRun,
		now:    time.Now,
	}
	cleanup := func() {}

	if cfg.StateFile != "" {
		statePath := cfg.resolvePath(cfg.StateFile)
		log.Printf("opening generation state %s...", statePath)
		store, err := openStateStore(statePath)
		if err != nil {
			return nil, nil, err
		}
		gen.state = store
		cleanup = func() { store.Close() }
	}
	return gen, cleanup, nil
}
