package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/codec"
	"github.com/betterleaks/kwfsm/config"
	"github.com/betterleaks/kwfsm/fsm"
	"github.com/betterleaks/kwfsm/logging"
	"github.com/betterleaks/kwfsm/report"
	"github.com/betterleaks/kwfsm/scan"
	"github.com/betterleaks/kwfsm/sources"
	"github.com/spf13/cobra"
)

func init() {
	lookupCmd.Flags().String("infile", "", "table to load (default fsm.txt or fsm-alt.txt)")
	lookupCmd.Flags().StringArray("lookup", nil, "word to look up, may be repeated")
	lookupCmd.Flags().String("queries", "", "file with one query per line (\"-\" for stdin)")
	lookupCmd.Flags().Int("exit-code", 0, "exit code when any query is not a keyword")
	lookupCmd.Flags().Int("concurrency", 0, "number of lookup workers (default from config)")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [word...]",
	Short: "look words up in a transition table",
	Run:   runLookup,
}

func runLookup(cmd *cobra.Command, args []string) {
	cfg := initConfig(cmd)
	start := time.Now()

	path, tb := loadTable(cmd, cfg)

	queries := append(mustGetStringArrayFlag(cmd, "lookup"), args...)
	if qf := mustGetStringFlag(cmd, "queries"); qf != "" {
		src := &sources.Text{Path: qf}
		if qf == "-" {
			src.Content = os.Stdin
		}
		err := src.Lines(cmd.Context(), func(_ int, line string) error {
			if q := strings.TrimSpace(line); q != "" {
				queries = append(queries, q)
			}
			return nil
		})
		if err != nil {
			logging.Fatal().Err(err).Str("path", qf).Msg("failed to read queries")
		}
	}
	if len(queries) == 0 {
		logging.Fatal().Msg("nothing to look up, use --lookup, --queries or arguments")
	}

	concurrency := cfg.Lookup.Concurrency
	if c := mustGetIntFlag(cmd, "concurrency"); c > 0 {
		concurrency = c
	}
	results, err := scan.Batch(cmd.Context(), tb, queries, concurrency)
	if err != nil {
		logging.Fatal().Err(err).Msg("lookup interrupted")
	}

	missed := len(results) - countMatched(results)

	rep := report.Report{Variant: tb.Variant(), Table: path, Results: results}
	if !writeReport(cmd, rep) {
		noColor := mustGetBoolFlag(cmd, "no-color")
		for _, r := range results {
			scan.PrintResult(os.Stdout, r, noColor)
		}
	}

	logging.Debug().
		Int("queries", len(results)).
		Int("missed", missed).
		Msgf("lookups done in %s", FormatDuration(time.Since(start)))

	if missed > 0 {
		if code := mustGetIntFlag(cmd, "exit-code"); code != 0 {
			os.Exit(code)
		}
	}
}

// loadTable reads the table named by --infile, or the config's outfile.
func loadTable(cmd *cobra.Command, cfg config.Config) (string, *fsm.Table) {
	path := cfg.Table.Outfile
	if f := mustGetStringFlag(cmd, "infile"); f != "" {
		path = f
	}
	tb, err := codec.ReadFile(path, cfg.Variant)
	if err != nil {
		logging.Fatal().Err(err).Str("variant", cfg.Variant.String()).Msg("failed to load table")
	}
	logging.Debug().
		Str("path", path).
		Int("entries", tb.Len()).
		Msg("table loaded")
	return path, tb
}

func countMatched(results []kwfsm.Result) int {
	n := 0
	for _, r := range results {
		if r.Matched() {
			n++
		}
	}
	return n
}
