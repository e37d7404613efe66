package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/codec"
	"github.com/betterleaks/kwfsm/config"
	"github.com/betterleaks/kwfsm/fsm"
	"github.com/betterleaks/kwfsm/logging"
	"github.com/betterleaks/kwfsm/regexp"
	"github.com/betterleaks/kwfsm/sources"
	"github.com/betterleaks/kwfsm/trie"
	"github.com/spf13/cobra"
)

const dumpDefault = "default"

func init() {
	generateCmd.Flags().String("infile", "", "keyword list, one per line (\"-\" for stdin; default keywords.txt or keywords-alt.txt)")
	generateCmd.Flags().String("outfile", "", "table output (.kwf for binary, .zst to compress; default fsm.txt or fsm-alt.txt)")
	generateCmd.Flags().String("dump-trie", "", "also write the intermediate trie as JSON (default dict.json or dict-alt.json when given without a value)")
	generateCmd.Flag("dump-trie").NoOptDefVal = dumpDefault
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "compile a keyword list into a transition table",
	Args:  cobra.NoArgs,
	Run:   runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := initConfig(cmd)
	start := time.Now()

	infile := cfg.Keywords.Infile
	if f := mustGetStringFlag(cmd, "infile"); f != "" {
		infile = f
	}
	outfile := cfg.Table.Outfile
	if f := mustGetStringFlag(cmd, "outfile"); f != "" {
		outfile = f
	}
	dump := cfg.Table.DumpTrie
	if cmd.Flags().Changed("dump-trie") {
		dump = mustGetStringFlag(cmd, "dump-trie")
	}
	if dump == dumpDefault {
		dump = cfg.DefaultDump()
	}

	words := loadKeywords(cmd, cfg, infile)

	if cfg.Variant == kwfsm.Unterminated {
		if collisions := trie.PrefixCollisions(words); len(collisions) > 0 {
			for _, c := range collisions {
				logging.Error().
					Str("prefix", c.Prefix.Word).
					Int("prefixID", c.Prefix.ID).
					Str("keyword", c.Word.Word).
					Int("keywordID", c.Word.ID).
					Msg("keyword is a prefix of another keyword")
			}
			logging.Fatal().
				Int("collisions", len(collisions)).
				Msg("the unterminated variant cannot encode keywords that prefix other keywords, use --variant=terminated")
		}
	}

	t, err := trie.Build(cfg.Variant, words)
	if err != nil {
		logging.Fatal().Err(err).Str("path", infile).Msg("failed to build trie")
	}

	if dump != "" {
		if err := writeTrie(dump, t); err != nil {
			logging.Fatal().Err(err).Str("path", dump).Msg("failed to dump trie")
		}
		logging.Info().Str("path", dump).Msg("trie written")
	}

	tb := fsm.Flatten(t)
	if err := codec.WriteFile(outfile, tb); err != nil {
		logging.Fatal().Err(err).Str("path", outfile).Msg("failed to write table")
	}

	st := tb.Stats()
	logging.Info().
		Str("variant", st.Variant.String()).
		Int("keywords", st.Keywords).
		Int("blocks", st.Blocks).
		Int("entries", st.Entries).
		Str("fingerprint", st.Fingerprint).
		Str("path", outfile).
		Msgf("table generated in %s", FormatDuration(time.Since(start)))
}

func loadKeywords(cmd *cobra.Command, cfg config.Config, infile string) []string {
	exclude, err := regexp.CompileAll(cfg.Keywords.Exclude)
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid keywords.exclude pattern")
	}
	src := &sources.Keywords{Path: infile, Exclude: exclude}
	words, st, err := src.Load(cmd.Context())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to read keywords")
	}
	logging.Debug().
		Int("lines", st.Lines).
		Int("accepted", st.Accepted).
		Int("blank", st.SkippedBlank).
		Int("excluded", st.SkippedExcluded).
		Int("maxLength", st.MaxWordLen).
		Str("path", infile).
		Msg("keywords loaded")
	return words
}

func writeTrie(path string, t *trie.Trie) error {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
