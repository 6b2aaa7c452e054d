package main

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/c360studio/semlink/config"
	"github.com/c360studio/semlink/export"
	"github.com/c360studio/semlink/lookup"
	"github.com/c360studio/semlink/reasoner"
	"github.com/c360studio/semlink/vocabulary/restaurant"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func reasonCmd() *cobra.Command {
	var (
		ontology string
		output   string
		format   string
		rounds   int
	)

	cmd := &cobra.Command{
		Use:   "reason GRAPH",
		Short: "Add the entailments of an ontology to a graph",
		Long: `Reason loads a Turtle or N-Triples graph and an ontology, computes the
RDFS / OWL-RL closure (class and property hierarchies, domains, ranges,
inverse, symmetric and transitive properties, equivalences, owl:sameAs)
and writes the expanded graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := export.LoadFile(args[0])
			if err != nil {
				return err
			}
			if ontology != "" {
				if _, err := reasoner.LoadOntology(g, ontology); err != nil {
					return err
				}
			}
			before := g.Len()
			added := reasoner.New(reasoner.WithMaxRounds(rounds)).Expand(g)
			slog.Info("Reasoning complete", "input_triples", before, "entailed", added)

			return writeGraph(g, output, format, format != "", cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&ontology, "ontology", "", "Ontology file (Turtle or N-Triples)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output graph file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().IntVar(&rounds, "max-rounds", reasoner.DefaultMaxRounds, "Upper bound on rule rounds")
	return cmd
}

func mergeCmd() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "merge GRAPH...",
		Short: "Combine graph files into one",
		Long: `Merge loads every Turtle or N-Triples file (glob patterns are expanded)
and writes their union. Prefixes declared by earlier files win.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			g, err := export.Merge(paths...)
			if err != nil {
				return err
			}
			slog.Info("Graphs merged", "files", len(paths), "triples", g.Len())
			return writeGraph(g, output, format, format != "", cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output graph file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	return cmd
}

func lookupCmd(flags *globalFlags) *cobra.Command {
	var (
		source   string
		limit    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "lookup QUERY",
		Short: "Search the entity lookup services",
		Long: `Lookup sends QUERY to DBpedia, Wikidata and (when enabled) Google
Knowledge Graph and prints each candidate with its similarity to the query.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			var src lookup.Source
			if source != "" {
				if src, err = lookup.ParseSource(source); err != nil {
					return err
				}
				if src == lookup.SourceGoogleKG && !cfg.Lookup.EnableGoogle {
					if cfg.Lookup.GoogleAPIKey == "" {
						return fmt.Errorf("google lookup needs lookup.google_api_key")
					}
					cfg.Lookup.EnableGoogle = true
				}
			}
			if limit <= 0 {
				limit = cfg.Lookup.Limit
			}

			app, err := NewApp(cfg, slog.Default())
			if err != nil {
				return err
			}
			defer app.Close()

			query := strings.Join(args, " ")
			candidates := app.Lookup(cmd.Context(), query, src, limit, category)
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No candidates")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tSOURCE\tLABEL\tURI\tTYPES")
			for _, c := range candidates {
				fmt.Fprintf(tw, "%.3f\t%s\t%s\t%s\t%s\n",
					c.Score, c.Source, c.Label, c.ID, strings.Join(c.Types, " "))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Only query one source (dbpedia, wikidata, google)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Candidates per source (default lookup.limit)")
	cmd.Flags().StringVar(&category, "category", "", "Category filter (DBpedia)")
	return cmd
}

func vocabCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the restaurant vocabulary predicates in the configured namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			terms := restaurant.NewTerms(cfg.Namespace.IRI)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PREDICATE\tIRI\tDESCRIPTION")
			for _, pred := range restaurant.AllPredicates {
				meta := vocabulary.GetPredicateMetadata(pred)
				if meta == nil {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", pred, terms.Predicate(pred), meta.Description)
			}
			return tw.Flush()
		},
	}
}

func configCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialise configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.NewLoader(slog.Default()).EnsureUserConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}
