package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dgallion1/casgest/internal/booklet"
	"github.com/dgallion1/casgest/internal/config"
	"github.com/dgallion1/casgest/internal/extract"
	"github.com/dgallion1/casgest/internal/fetch"
	"github.com/dgallion1/casgest/internal/report"
	"github.com/dgallion1/casgest/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var version = "0.1.0"

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "casgest",
		Short: "Cassation bulletin extractor",
		Long: `casgest downloads the cassation bulletins of the official gazette and
extracts their structure: booklet number, chambers and the case files
each chamber resolves, with the page each resolution starts on.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("data-dir", cfg.DataDir, "Directory holding downloaded bulletins")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log stage progress to stderr")

	rootCmd.AddCommand(fetchCmd(cfg))
	rootCmd.AddCommand(extractCmd(cfg))
	rootCmd.AddCommand(reportCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func fetchCmd(cfg config.Config) *cobra.Command {
	now := time.Now()
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a month of bulletins",
		Long: `Download every bulletin published in a month into the data directory
as CA<yyyymmdd>.pdf. Bulletins already present are skipped.

Example:
  casgest fetch --year 2023 --month 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			listingURL, _ := cmd.Flags().GetString("listing-url")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			dataDir, _ := cmd.Flags().GetString("data-dir")

			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			st, err := store.New(dataDir)
			if err != nil {
				return err
			}
			client := fetch.NewClient(listingURL, timeout, cfg.MaxFetchBytes, newLogger(cmd))
			defer client.Close()

			res, err := client.Sync(cmd.Context(), year, month, st)
			if err != nil {
				return fmt.Errorf("fetch %04d-%02d: %w", year, month, err)
			}

			fmt.Printf("Downloaded: %d\n", len(res.Downloaded))
			for _, name := range res.Downloaded {
				fmt.Printf("  + %s\n", name)
			}
			fmt.Printf("Skipped: %d\n", len(res.Skipped))
			if len(res.Failed) > 0 {
				fmt.Printf("Failed: %d\n", len(res.Failed))
				for name, reason := range res.Failed {
					fmt.Printf("  ! %s: %s\n", name, reason)
				}
				return fmt.Errorf("%d bulletins failed to download", len(res.Failed))
			}
			return nil
		},
	}
	cmd.Flags().Int("year", now.Year(), "Publication year")
	cmd.Flags().Int("month", int(now.Month()), "Publication month (1-12)")
	cmd.Flags().String("listing-url", cfg.ListingURL, "Month listing endpoint")
	cmd.Flags().Duration("timeout", cfg.FetchTimeout, "Per-request timeout")
	return cmd
}

func extractCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [bulletin.pdf ...]",
		Short: "Extract booklets and print a report per bulletin",
		Long: `Extract the booklet structure of each bulletin. Without arguments every
PDF in the data directory is processed.

Formats: md (default), html, csv, docx, json. DOCX output needs --output.

Example:
  casgest extract
  casgest extract CA20230512.pdf --format csv --output reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			outDir, _ := cmd.Flags().GetString("output")
			bodyStart, _ := cmd.Flags().GetFloat64("body-start")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			jobs, _ := cmd.Flags().GetInt("jobs")

			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if format == report.FormatDOCX && outDir == "" {
				return fmt.Errorf("docx output requires --output")
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}

			paths, err := bulletinPaths(dataDir, args)
			if err != nil {
				return err
			}
			builder := extract.NewBuilder(bodyStart, newLogger(cmd))

			failed := 0
			for _, res := range buildAll(builder, paths, jobs) {
				name := filepath.Base(res.path)
				if res.err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", name, res.err)
					failed++
					continue
				}

				var buf bytes.Buffer
				if err := report.Write(&buf, format, res.booklet); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				if outDir == "" {
					os.Stdout.Write(buf.Bytes())
					fmt.Println()
					continue
				}
				dest := filepath.Join(outDir, outputName(res.path, format))
				if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", dest, err)
				}
				fmt.Printf("%s -> %s (%d chambers, %d case files)\n",
					name, dest, len(res.booklet.Chambers), res.booklet.CaseFileCount())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d bulletins failed", failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "md", "Output format: md, html, csv, docx, json")
	cmd.Flags().StringP("output", "o", "", "Write one report file per bulletin into this directory")
	cmd.Flags().Float64("body-start", cfg.BodyStartLine, "Vertical bound below which page body text starts")
	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "Bulletins extracted in parallel")
	return cmd
}

func reportCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [bulletin.pdf ...]",
		Short: "Show what each extraction stage found",
		Long: `Run extraction and print the per-stage diagnostics (landmarks, chamber
band, title and case file phases, index association) of each bulletin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyStart, _ := cmd.Flags().GetFloat64("body-start")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			jobs, _ := cmd.Flags().GetInt("jobs")

			paths, err := bulletinPaths(dataDir, args)
			if err != nil {
				return err
			}
			builder := extract.NewBuilder(bodyStart, newLogger(cmd))

			failed := 0
			for i, res := range buildAll(builder, paths, jobs) {
				if i > 0 {
					fmt.Println()
				}
				if res.err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(res.path), res.err)
					failed++
					continue
				}
				if err := report.Stages(os.Stdout, res.report); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d bulletins failed", failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().Float64("body-start", cfg.BodyStartLine, "Vertical bound below which page body text starts")
	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "Bulletins extracted in parallel")
	return cmd
}

// bulletinPaths returns the explicit arguments, or every stored bulletin
// when there are none.
func bulletinPaths(dataDir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	st, err := store.New(dataDir)
	if err != nil {
		return nil, err
	}
	names, err := st.List()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no bulletins in %s; run casgest fetch first", st.Dir())
	}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = st.Path(name)
	}
	return paths, nil
}

type built struct {
	path    string
	booklet *booklet.Booklet
	report  *extract.Report
	err     error
}

// buildAll extracts every path with at most jobs documents in flight and
// returns the results in input order.
func buildAll(b *extract.Builder, paths []string, jobs int) []built {
	results := make([]built, len(paths))
	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			bk, rep, err := b.BuildFile(path)
			results[i] = built{path: path, booklet: bk, report: rep, err: err}
			return nil
		})
	}
	g.Wait()
	return results
}

func outputName(path string, f report.Format) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + f.Extension()
}
