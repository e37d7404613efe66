// Package config loads kwfsm settings from TOML.
package config

import (
	_ "embed"
	"fmt"
	"reflect"

	"github.com/betterleaks/kwfsm"
	"github.com/betterleaks/kwfsm/logging"
	"github.com/go-viper/mapstructure/v2"
	goversion "github.com/hashicorp/go-version"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed kwfsm.toml
var DefaultConfig string

// Config is the decoded configuration file.
type Config struct {
	// Variant applies to both generation and lookup.
	Variant kwfsm.Variant `koanf:"variant"`

	// MinVersion is the oldest kwfsm release that understands this file.
	MinVersion string `koanf:"minVersion"`

	Keywords KeywordsConfig `koanf:"keywords"`
	Table    TableConfig    `koanf:"table"`
	Lookup   LookupConfig   `koanf:"lookup"`

	// Path is the file the config was loaded from, empty for the default.
	Path string `koanf:"-"`
}

type KeywordsConfig struct {
	// Infile is the line-delimited keyword list.
	Infile string `koanf:"infile"`
	// Exclude lists patterns for lines that are skipped, e.g. comments.
	Exclude []string `koanf:"exclude"`
}

type TableConfig struct {
	// Outfile is where generate writes the table and lookup reads it.
	Outfile string `koanf:"outfile"`
	// DumpTrie, when set, is where generate writes the trie as JSON.
	DumpTrie string `koanf:"dumpTrie"`
}

type LookupConfig struct {
	Concurrency int `koanf:"concurrency"`
}

// Defaults for each variant when neither the config nor flags name files.
const (
	DefaultInfile     = "keywords.txt"
	DefaultOutfile    = "fsm.txt"
	DefaultDumpTrie   = "dict.json"
	DefaultAltInfile  = "keywords-alt.txt"
	DefaultAltOutfile = "fsm-alt.txt"
	DefaultAltDump    = "dict-alt.json"
)

// Load parses TOML content into a Config.
func Load(content []byte) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), toml.Parser()); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				variantHook,
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Lookup.Concurrency < 0 {
		return Config{}, fmt.Errorf("lookup.concurrency must be >= 0, got %d", cfg.Lookup.Concurrency)
	}
	return cfg, nil
}

// variantHook decodes "terminated"/"unterminated" (or 27/26) into a Variant.
func variantHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(kwfsm.Variant(0)) {
		return data, nil
	}
	switch from.Kind() {
	case reflect.String:
		return kwfsm.ParseVariant(data.(string))
	case reflect.Int, reflect.Int64:
		return kwfsm.VariantForSlots(int(reflect.ValueOf(data).Int()))
	default:
		return data, nil
	}
}

// Default returns the embedded default configuration.
func Default() Config {
	cfg, err := Load([]byte(DefaultConfig))
	if err != nil {
		panic("config: embedded default: " + err.Error())
	}
	return cfg
}

// ApplyDefaults fills empty file names with the variant's defaults.
func (c *Config) ApplyDefaults() {
	in, out := DefaultInfile, DefaultOutfile
	if c.Variant == kwfsm.Unterminated {
		in, out = DefaultAltInfile, DefaultAltOutfile
	}
	if c.Keywords.Infile == "" {
		c.Keywords.Infile = in
	}
	if c.Table.Outfile == "" {
		c.Table.Outfile = out
	}
}

// DefaultDump returns the default trie dump path for the variant.
func (c *Config) DefaultDump() string {
	if c.Variant == kwfsm.Unterminated {
		return DefaultAltDump
	}
	return DefaultDumpTrie
}

// CheckVersion warns when the config asks for a newer kwfsm than current.
// It returns false in that case.
func (c *Config) CheckVersion(current string) bool {
	if c.MinVersion == "" {
		return true
	}
	want, err := goversion.NewVersion(c.MinVersion)
	if err != nil {
		logging.Warn().Str("minVersion", c.MinVersion).Msg("ignoring unparseable minVersion")
		return true
	}
	have, err := goversion.NewVersion(current)
	if err != nil {
		logging.Debug().Str("version", current).Msg("skipping minVersion check for unversioned build")
		return true
	}
	if have.LessThan(want) {
		logging.Warn().
			Str("minVersion", c.MinVersion).
			Str("version", current).
			Msg("config requires a newer kwfsm; results may differ")
		return false
	}
	return true
}
