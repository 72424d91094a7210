package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"autoviz/adapters/csvsource"
	"autoviz/adapters/excelsource"
	"autoviz/adapters/postgres"
	"autoviz/app"
	"autoviz/domain/table"
	"autoviz/internal/config"
	"autoviz/internal/report"
	"autoviz/internal/summary"
	"autoviz/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autoviz",
		Short: "Profile datasets and recommend visualizations",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newReportCmd(),
		newQueryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fileReport pairs one input file with its analysis output so concurrent
// runs can still print in argument order.
type fileReport struct {
	Name     string               `json:"name"`
	Analysis table.AnalysisResult `json:"analysis"`
	Profile  summary.Profile      `json:"profile"`
}

func newAnalyzeCmd() *cobra.Command {
	var target string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Classify columns and recommend charts for one or more files",
		Long: `Analyze CSV or Excel files and print the full analysis as JSON.

Example: autoviz analyze sales.csv inventory.xlsx --target region`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			analyzer := app.NewAnalyzerWith(cfg.Analysis.Heuristics)

			reports := make([]fileReport, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrency)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					snap, err := loadFile(ctx, path)
					if err != nil {
						return err
					}
					snap.TargetColumn = target
					reports[i] = fileReport{
						Name:     snap.Name,
						Analysis: analyzer.Analyze(snap),
						Profile:  analyzer.Profile(snap),
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target column for chart prioritization")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "max files analyzed in parallel")
	return cmd
}

func newReportCmd() *cobra.Command {
	var target string
	var format string

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Render a profiling report for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			analyzer := app.NewAnalyzerWith(cfg.Analysis.Heuristics)

			snap, err := loadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			snap.TargetColumn = target

			md := report.BuildMarkdown(snap, analyzer.Analyze(snap), analyzer.Profile(snap))
			switch format {
			case "markdown":
				fmt.Print(md)
			case "html":
				os.Stdout.Write(report.RenderHTML(md))
			default:
				return fmt.Errorf("unknown format %q (want markdown or html)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target column for chart prioritization")
	cmd.Flags().StringVar(&format, "format", "markdown", "output format: markdown or html")
	return cmd
}

func newQueryCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Analyze the result set of a SQL query against DATABASE_URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := cmd.Context()
			db, err := postgres.Connect(ctx, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			snap, err := postgres.NewQuerySource(db, "query", args[0]).LoadSnapshot(ctx)
			if err != nil {
				return err
			}
			snap.TargetColumn = target

			analyzer := app.NewAnalyzerWith(cfg.Analysis.Heuristics)
			result := analyzer.Analyze(snap)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target column for chart prioritization")
	return cmd
}

// loadFile picks a source adapter by extension.
func loadFile(ctx context.Context, path string) (*table.Snapshot, error) {
	var source ports.SnapshotSource
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		source = excelsource.NewFileSource(path)
	default:
		source = csvsource.NewFileSource(path)
	}
	return source.LoadSnapshot(ctx)
}
