package cmd

import (
	"os"
	"time"

	"github.com/betterleaks/kwfsm/logging"
	"github.com/betterleaks/kwfsm/report"
	"github.com/betterleaks/kwfsm/scan"
	"github.com/betterleaks/kwfsm/sources"
	"github.com/spf13/cobra"
)

func init() {
	scanCmd.Flags().String("infile", "", "table to load (default fsm.txt or fsm-alt.txt)")
	scanCmd.Flags().Int("exit-code", 0, "exit code when keywords are found")
	scanCmd.Flags().Int("concurrency", 0, "number of files scanned at once (default from config)")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "report keyword occurrences in files or stdin",
	Run:   runScan,
}

func runScan(cmd *cobra.Command, args []string) {
	cfg := initConfig(cmd)
	start := time.Now()

	path, tb := loadTable(cmd, cfg)

	var srcs []*sources.Text
	if len(args) == 0 {
		srcs = append(srcs, &sources.Text{Path: "stdin", Content: os.Stdin})
	} else {
		files, err := sources.Files(cmd.Context(), args)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to list files")
		}
		for _, f := range files {
			srcs = append(srcs, &sources.Text{Path: f})
		}
	}

	concurrency := cfg.Lookup.Concurrency
	if c := mustGetIntFlag(cmd, "concurrency"); c > 0 {
		concurrency = c
	}
	p := &scan.Pipeline{Scanner: scan.Scanner{Table: tb}, Concurrency: concurrency}
	occs, err := p.Run(cmd.Context(), srcs)
	if err != nil {
		logging.Fatal().Err(err).Msg("scan interrupted")
	}

	rep := report.Report{Variant: tb.Variant(), Table: path, Occurrences: occs}
	if !writeReport(cmd, rep) {
		noColor := mustGetBoolFlag(cmd, "no-color")
		for _, o := range occs {
			scan.PrintOccurrence(os.Stdout, o, noColor)
		}
	}

	logging.Info().
		Int("sources", len(srcs)).
		Int("keywords", len(occs)).
		Msgf("scanned in %s", FormatDuration(time.Since(start)))

	if len(occs) > 0 {
		if code := mustGetIntFlag(cmd, "exit-code"); code != 0 {
			os.Exit(code)
		}
	}
}
