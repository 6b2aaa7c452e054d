// Package main provides the semlink binary entry point.
// Semlink converts restaurant menu data to an RDF knowledge graph, linking
// entities to DBpedia, Wikidata and Google Knowledge Graph where confident.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/c360studio/semlink/config"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semlink"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string

	rotator *lumberjack.Logger
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Entity linking for restaurant knowledge graphs",
		Long: `Semlink converts a restaurant menu CSV into an RDF knowledge graph.

Countries, states, cities, currencies, menu items and ingredients are
linked to public knowledge graphs when a candidate is similar enough;
everything else gets a URI in the local namespace.

Commands:
- convert: CSV to Turtle, N-Triples or JSON-LD
- reason:  add the entailments of an ontology to a graph
- merge:   combine several graph files
- lookup:  query the entity search services directly`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var w io.Writer = cmd.ErrOrStderr()
			if flags.logFile != "" {
				flags.rotator = newRotator(flags.logFile)
				w = io.MultiWriter(w, flags.rotator)
			}
			slog.SetDefault(newLogger(flags.logLevel, w))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if flags.rotator != nil {
				_ = flags.rotator.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Also append logs to this file, rotated at 10 MB")

	cmd.AddCommand(
		convertCmd(flags),
		reasonCmd(),
		mergeCmd(),
		lookupCmd(flags),
		vocabCmd(flags),
		configCmd(flags),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

// newLogger builds the text handler used by every command.
func newLogger(logLevel string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRotator returns a size-rotated log file keeping three backups.
func newRotator(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// loadConfig applies the layered config files.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.NewLoader(slog.Default()).Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
