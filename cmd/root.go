package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/config"
	"github.com/betterleaks/kwfsm/logging"
	"github.com/betterleaks/kwfsm/regexp"
	"github.com/betterleaks/kwfsm/report"
	"github.com/betterleaks/kwfsm/version"
	"github.com/spf13/cobra"
)

const banner = `
  ┌─┬─┬─┐
  ├─┼─┼─┤  kwfsm %s
  └─┴─┴─┘
`

const configDescription = `config file path
order of precedence:
1. --config/-c
2. env var KWFSM_CONFIG
3. env var KWFSM_CONFIG_TOML with the file content
4. ./.kwfsm.toml
If none of the four options are used, then kwfsm will use the default config`

const (
	envConfig     = "KWFSM_CONFIG"
	envConfigTOML = "KWFSM_CONFIG_TOML"
	localConfig   = ".kwfsm.toml"
)

var rootCmd = &cobra.Command{
	Use:     "kwfsm",
	Short:   "kwfsm compiles keyword lists into flat transition tables and looks words up in them",
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set the timeout for all the commands
		if timeout, err := cmd.Flags().GetInt("timeout"); err != nil {
			return err
		} else if timeout > 0 {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Second)
			cmd.SetContext(ctx)
			cobra.OnFinalize(cancel)
		}
		engine, err := cmd.Flags().GetString("regex-engine")
		if err != nil {
			return err
		}
		return regexp.SetEngine(engine)
	},
}

func init() {
	cobra.OnInitialize(initLog)
	rootCmd.PersistentFlags().StringP("config", "c", "", configDescription)
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().Bool("no-color", false, "turn off color for output")
	rootCmd.PersistentFlags().Bool("no-banner", false, "suppress banner")
	rootCmd.PersistentFlags().String("variant", "", "table encoding: terminated (27 slots, sub-keywords allowed) or unterminated (26 slots)")
	rootCmd.PersistentFlags().String("regex-engine", "stdlib", "regex engine for keyword exclude patterns (stdlib, re2)")
	rootCmd.PersistentFlags().Int("timeout", 0, "set a timeout for kwfsm commands in seconds (default \"0\", no timeout is set)")
	rootCmd.PersistentFlags().StringP("report-path", "r", "", "report file (use \"-\" for stdout)")
	rootCmd.PersistentFlags().StringP("report-format", "f", "", "output format (json, csv, template)")
	rootCmd.PersistentFlags().String("report-template", "", "template file used to generate the report (implies --report-format=template)")
}

func initLog() {
	ll, err := rootCmd.Flags().GetString("log-level")
	if err != nil {
		logging.Fatal().Msg(err.Error())
	}
	noColor, err := rootCmd.Flags().GetBool("no-color")
	if err != nil {
		logging.Fatal().Msg(err.Error())
	}

	level, ok := logging.ParseLevel(ll)
	logging.Configure(level, noColor)
	if !ok {
		logging.Warn().Msgf("unknown log level: %s", ll)
	}
}

// initConfig resolves the config file, applies flag overrides and fills in
// per-variant default paths.
func initConfig(cmd *cobra.Command) config.Config {
	if !mustGetBoolFlag(cmd, "no-banner") {
		_, _ = fmt.Fprintf(os.Stderr, banner, version.Version)
	}
	logging.Debug().Msgf("using %s regex engine", regexp.Version())

	var (
		content []byte
		source  string
		err     error
	)
	cfgPath := mustGetStringFlag(cmd, "config")
	switch {
	case cfgPath != "":
		source = cfgPath
		content, err = os.ReadFile(cfgPath)
		logging.Debug().Msgf("using kwfsm config %s from `--config`", cfgPath)
	case os.Getenv(envConfig) != "":
		source = os.Getenv(envConfig)
		content, err = os.ReadFile(source)
		logging.Debug().Msgf("using kwfsm config from %s env var: %s", envConfig, source)
	case os.Getenv(envConfigTOML) != "":
		content = []byte(os.Getenv(envConfigTOML))
		logging.Debug().Str("content", string(content)).Msgf("using kwfsm config from %s env var content", envConfigTOML)
	case fileExists(localConfig):
		source = localConfig
		content, err = os.ReadFile(localConfig)
		logging.Debug().Msgf("using existing kwfsm config %s", localConfig)
	default:
		logging.Debug().Msg("no kwfsm config found, using default config")
		content = []byte(config.DefaultConfig)
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("unable to read kwfsm config")
	}

	cfg, err := config.Load(content)
	if err != nil {
		logging.Fatal().Err(err).Str("path", source).Msg("unable to load kwfsm config")
	}
	cfg.Path = source
	cfg.CheckVersion(version.Version)

	if cmd.Flags().Changed("variant") {
		v, err := kwfsm.ParseVariant(mustGetStringFlag(cmd, "variant"))
		if err != nil {
			logging.Fatal().Err(err).Msg("invalid --variant")
		}
		cfg.Variant = v
	}
	cfg.ApplyDefaults()
	logging.Debug().Str("variant", cfg.Variant.String()).Msg("config loaded")
	return cfg
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if strings.Contains(err.Error(), "unknown flag") {
			// exit code 126: Command invoked cannot execute
			os.Exit(126)
		}
		logging.Fatal().Msg(err.Error())
	}
}

// writeReport writes rep when a report format or template was requested. It
// returns false if no report was requested.
func writeReport(cmd *cobra.Command, rep report.Report) bool {
	format := mustGetStringFlag(cmd, "report-format")
	tmpl := mustGetStringFlag(cmd, "report-template")
	path := mustGetStringFlag(cmd, "report-path")
	if tmpl != "" {
		format = report.FormatTemplate
	}
	if format == "" && path == "" {
		return false
	}
	if format == "" {
		format = report.FormatJSON
	}

	reporter, err := report.New(format, tmpl)
	if err != nil {
		logging.Fatal().Err(err).Msg("could not create reporter")
	}

	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			logging.Fatal().Err(err).Str("path", path).Msg("could not create report file")
		}
		defer f.Close()
		w = f
	}
	if err := reporter.Write(w, rep); err != nil {
		logging.Fatal().Err(err).Msg("could not write report")
	}
	if w != os.Stdout {
		logging.Info().Str("path", path).Str("format", format).Msg("report written")
	}
	return true
}

func fileExists(fileName string) bool {
	info, err := os.Stat(fileName)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// FormatDuration rounds d to a readable precision.
func FormatDuration(d time.Duration) string {
	scale := 100 * time.Second
	// look for the max scale that is smaller than d
	for scale > d {
		scale = scale / 10
	}
	return d.Round(scale / 100).String()
}

func mustGetBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetIntFlag(cmd *cobra.Command, name string) int {
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetStringArrayFlag(cmd *cobra.Command, name string) []string {
	value, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}
