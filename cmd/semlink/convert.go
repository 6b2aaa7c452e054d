package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semlink/config"
	"github.com/c360studio/semlink/export"
	"github.com/c360studio/semlink/graph"
	"github.com/c360studio/semlink/reasoner"
	"github.com/spf13/cobra"
)

// convertOptions are the command-line overrides of convert.
type convertOptions struct {
	output   string
	format   string
	cache    string
	ontology string
	metrics  string
	offline  bool
	workers  int
	watch    bool
	debounce time.Duration
}

// apply copies the set flags over cfg.
func (o *convertOptions) apply(cfg *config.Config) {
	if o.output != "" {
		cfg.Output.Path = o.output
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.cache != "" {
		cfg.Cache.Path = o.cache
	}
	if o.metrics != "" {
		cfg.Metrics.Path = o.metrics
	}
	if o.offline {
		off := false
		cfg.Resolution.EnableExternal = &off
	}
	if o.workers > 0 {
		cfg.Lookup.Workers = o.workers
	}
}

func convertCmd(flags *globalFlags) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert INPUT...",
		Short: "Convert restaurant CSV files to an RDF graph",
		Long: `Convert reads one or more restaurant CSV files (glob patterns such as
"data/**/*.csv" are expanded) and writes a single graph.

Without -o the graph is written to stdout. The format is taken from
--format, then from the output file extension, then from the config.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), flags, opts, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output graph file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVar(&opts.cache, "cache", "", "Persistent URI cache file (bbolt)")
	cmd.Flags().StringVar(&opts.ontology, "ontology", "", "Ontology file whose entailments are added to the graph")
	cmd.Flags().StringVar(&opts.metrics, "metrics", "", "Write a Prometheus textfile snapshot to this path")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "Mint local URIs only, no external lookups")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent lookups per phase")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Reconvert whenever an input changes")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "Quiet period before reconverting in watch mode")

	return cmd
}

func runConvert(ctx context.Context, flags *globalFlags, opts *convertOptions, args []string, stdout io.Writer) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if opts.watch && cfg.Output.Path == "" {
		return fmt.Errorf("--watch requires an output file")
	}

	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}

	app, err := NewApp(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Warn("Failed to close URI cache", "error", err)
		}
	}()

	// Setup signal handling
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	run := func(ctx context.Context) error {
		return convertOnce(ctx, app, inputs, opts.ontology, opts.format != "", stdout)
	}

	if err := run(ctx); err != nil {
		if !opts.watch {
			return err
		}
		app.logger.Error("Conversion failed", "error", err)
	}
	if !opts.watch {
		return nil
	}

	w, err := newInputWatcher(inputs, opts.debounce, app.logger)
	if err != nil {
		return fmt.Errorf("watch inputs: %w", err)
	}
	defer w.Close()

	app.logger.Info("Watching inputs", "count", len(inputs))
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		app.logger.Info("Inputs changed, reconverting", "changed", changed)
		return run(ctx)
	})
}

// convertOnce converts the inputs into a fresh graph, optionally closes it
// over an ontology, and writes it out.
func convertOnce(ctx context.Context, app *App, inputs []string, ontology string, formatSet bool, stdout io.Writer) error {
	g := app.NewGraph()
	stats, err := app.Convert(ctx, g, inputs)
	if err != nil {
		return err
	}

	if ontology != "" {
		n, err := reasoner.LoadOntology(g, ontology)
		if err != nil {
			return err
		}
		added := reasoner.New(reasoner.WithLogger(app.logger)).Expand(g)
		app.logger.Info("Ontology applied", "ontology_triples", n, "entailed", added)
	}

	out := app.cfg.Output
	if err := writeGraph(g, out.Path, out.Format, formatSet, stdout); err != nil {
		return err
	}
	if err := app.WriteMetrics(); err != nil {
		return err
	}

	app.logger.Info("Graph written",
		"path", out.Path,
		"rows", stats.Rows,
		"triples", g.Len(),
		"cache_hits", stats.Resolver.Hits,
		"restored", stats.Resolver.Restored,
		"duration", stats.Duration)
	return nil
}

// writeGraph writes g to path, or to stdout when path is empty. An
// explicit format wins over the path extension.
func writeGraph(g *graph.Graph, path, format string, formatSet bool, stdout io.Writer) error {
	f, err := outputFormat(path, format, formatSet)
	if err != nil {
		return err
	}
	if path == "" {
		return export.Write(stdout, g, f)
	}
	return export.WriteFile(path, g, f)
}

func outputFormat(path, format string, formatSet bool) (export.Format, error) {
	if !formatSet && path != "" {
		if f, err := export.FormatFromPath(path); err == nil {
			return f, nil
		}
	}
	if format == "" {
		return export.FormatTurtle, nil
	}
	return export.ParseFormat(format)
}

// expandInputs expands glob patterns into a sorted, de-duplicated file list.
// Plain paths must exist; patterns must match at least one file.
func expandInputs(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(p); err != nil {
				return nil, fmt.Errorf("no input matches %q", p)
			}
			matches = []string{p}
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
