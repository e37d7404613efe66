package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/betterleaks/kwfsm/logging"
	"github.com/spf13/cobra"
)

func init() {
	inspectCmd.Flags().String("infile", "", "table to load (default fsm.txt or fsm-alt.txt)")
	inspectCmd.Flags().Bool("keywords", false, "print the keywords recovered from the table")
	inspectCmd.Flags().Bool("json", false, "print stats as JSON")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "validate a transition table and print its stats",
	Args:  cobra.NoArgs,
	Run:   runInspect,
}

func runInspect(cmd *cobra.Command, args []string) {
	cfg := initConfig(cmd)
	path, tb := loadTable(cmd, cfg)

	st := tb.Stats()
	if mustGetBoolFlag(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", " ")
		if err := enc.Encode(st); err != nil {
			logging.Fatal().Err(err).Msg("failed to encode stats")
		}
	} else {
		fmt.Printf("table:       %s\n", path)
		fmt.Printf("variant:     %s (%d slots)\n", st.Variant, st.Variant.Slots())
		fmt.Printf("entries:     %d\n", st.Entries)
		fmt.Printf("blocks:      %d\n", st.Blocks)
		fmt.Printf("keywords:    %d\n", st.Keywords)
		fmt.Printf("transitions: %d\n", st.Transitions)
		fmt.Printf("max length:  %d\n", st.MaxDepth)
		fmt.Printf("fingerprint: %s\n", st.Fingerprint)
	}

	if mustGetBoolFlag(cmd, "keywords") {
		for _, kw := range tb.Keywords() {
			fmt.Printf("%d\t%s\n", kw.ID, kw.Word)
		}
	}
}
