package config

import (
	"testing"

	"github.com/betterleaks/kwfsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, kwfsm.Terminated, cfg.Variant)
	assert.Equal(t, []string{`^\s*#`}, cfg.Keywords.Exclude)
	assert.Equal(t, 8, cfg.Lookup.Concurrency)
	assert.Empty(t, cfg.Keywords.Infile)

	cfg.ApplyDefaults()
	assert.Equal(t, "keywords.txt", cfg.Keywords.Infile)
	assert.Equal(t, "fsm.txt", cfg.Table.Outfile)
	assert.Equal(t, "dict.json", cfg.DefaultDump())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name: "unterminated with files",
			content: `
variant = "unterminated"
minVersion = "v1.0.0"

[keywords]
infile = "lang.txt"
exclude = ["^#", "^;"]

[table]
outfile = "lang.kwf.zst"
dumpTrie = "lang.json"

[lookup]
concurrency = 2
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, kwfsm.Unterminated, cfg.Variant)
				assert.Equal(t, "v1.0.0", cfg.MinVersion)
				assert.Equal(t, "lang.txt", cfg.Keywords.Infile)
				assert.Equal(t, []string{"^#", "^;"}, cfg.Keywords.Exclude)
				assert.Equal(t, "lang.kwf.zst", cfg.Table.Outfile)
				assert.Equal(t, "lang.json", cfg.Table.DumpTrie)
				assert.Equal(t, 2, cfg.Lookup.Concurrency)
			},
		},
		{
			name:    "variant by slot count",
			content: `variant = 26`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, kwfsm.Unterminated, cfg.Variant)
				cfg.ApplyDefaults()
				assert.Equal(t, "keywords-alt.txt", cfg.Keywords.Infile)
				assert.Equal(t, "fsm-alt.txt", cfg.Table.Outfile)
				assert.Equal(t, "dict-alt.json", cfg.DefaultDump())
			},
		},
		{
			name:    "empty file",
			content: ``,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, kwfsm.Terminated, cfg.Variant)
			},
		},
		{
			name:    "unknown variant",
			content: `variant = "sideways"`,
			wantErr: `unknown variant "sideways"`,
		},
		{
			name:    "bad slot count",
			content: `variant = 30`,
			wantErr: "30 slots",
		},
		{
			name:    "negative concurrency",
			content: "[lookup]\nconcurrency = -1",
			wantErr: "lookup.concurrency",
		},
		{
			name:    "not toml",
			content: `variant = `,
			wantErr: "parse config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load([]byte(tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		min, current string
		want         bool
	}{
		{"", "v1.0.0", true},
		{"v1.2.0", "v1.2.0", true},
		{"v1.2.0", "v1.10.0", true},
		{"v1.2.0", "v1.1.9", false},
		{"not-a-version", "v1.0.0", true},
		{"v1.2.0", "dev build", true},
	}
	for _, tt := range tests {
		cfg := Config{MinVersion: tt.min}
		assert.Equal(t, tt.want, cfg.CheckVersion(tt.current), "%s vs %s", tt.min, tt.current)
	}
}
