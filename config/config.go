package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/darianmavgo/mkfixture/converters"
	"github.com/darianmavgo/mkfixture/converters/common"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

const (
	DelimiterAuto = "auto"

	QuoteEscape = "escape"
	QuoteReject = "reject"

	RowReject = "reject"
	RowPad    = "pad"
)

// Config represents the application configuration.
type Config struct {
	StatementSuffix string        `hcl:"statement_suffix,optional" yaml:"statement_suffix"`
	CombinedName    string        `hcl:"combined_name,optional" yaml:"combined_name"`
	SortSources     bool          `hcl:"sort_sources,optional" yaml:"sort_sources"`
	Delimiter       string        `hcl:"delimiter,optional" yaml:"delimiter"`
	QuotePolicy     string        `hcl:"quote_policy,optional" yaml:"quote_policy"`
	RowPolicy       string        `hcl:"row_policy,optional" yaml:"row_policy"`
	EmptyTextLength int           `hcl:"empty_text_length,optional" yaml:"empty_text_length"`
	SanitizeNames   bool          `hcl:"sanitize_names,optional" yaml:"sanitize_names"`
	Verbose         bool          `hcl:"verbose,optional" yaml:"verbose"`
	Tables          []TableConfig `hcl:"table,block" yaml:"tables,omitempty"`
}

// TableConfig declares column types for one table. Columns it does not name
// are still inferred from the first data row.
type TableConfig struct {
	Name    string         `hcl:"name,label" yaml:"name"`
	Columns []ColumnConfig `hcl:"column,block" yaml:"columns"`
}

type ColumnConfig struct {
	Name string `hcl:"name,label" yaml:"name"`
	Type string `hcl:"type" yaml:"type"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		StatementSuffix: converters.DefaultStatementSuffix,
		CombinedName:    converters.DefaultCombinedName,
		Delimiter:       DelimiterAuto,
		QuotePolicy:     QuoteEscape,
		RowPolicy:       RowReject,
		EmptyTextLength: common.DefaultEmptyTextLength,
	}
}

// Load reads the configuration from the given file. Files ending in .yaml or
// .yml are read as YAML, everything else as HCL. Settings missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if isYAML(path) {
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(content, path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
		}

		diags = gohcl.DecodeBody(file.Body, nil, cfg)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Export writes the configuration to the specified file, as YAML for .yaml
// and .yml paths and as HCL otherwise.
func Export(path string, cfg *Config) error {
	var content []byte
	if isYAML(path) {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		content = b
	} else {
		content = encodeHCL(cfg)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	_, err = file.Write(content)
	if err != nil {
		return fmt.Errorf("failed to write config to file: %w", err)
	}

	return nil
}

func encodeHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("statement_suffix", cty.StringVal(cfg.StatementSuffix))
	root.SetAttributeValue("combined_name", cty.StringVal(cfg.CombinedName))
	root.SetAttributeValue("sort_sources", cty.BoolVal(cfg.SortSources))
	root.SetAttributeValue("delimiter", cty.StringVal(cfg.Delimiter))
	root.SetAttributeValue("quote_policy", cty.StringVal(cfg.QuotePolicy))
	root.SetAttributeValue("row_policy", cty.StringVal(cfg.RowPolicy))
	root.SetAttributeValue("empty_text_length", cty.NumberIntVal(int64(cfg.EmptyTextLength)))
	root.SetAttributeValue("sanitize_names", cty.BoolVal(cfg.SanitizeNames))
	root.SetAttributeValue("verbose", cty.BoolVal(cfg.Verbose))

	for _, table := range cfg.Tables {
		root.AppendNewline()
		tb := root.AppendNewBlock("table", []string{table.Name}).Body()
		for _, col := range table.Columns {
			cb := tb.AppendNewBlock("column", []string{col.Name}).Body()
			cb.SetAttributeValue("type", cty.StringVal(col.Type))
		}
	}
	return f.Bytes()
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks every setting without building Options.
func (c *Config) Validate() error {
	_, err := c.Options()
	return err
}

// Options translates the configuration into run options for converters.Run.
func (c *Config) Options() (*converters.Options, error) {
	if c.StatementSuffix == "" {
		return nil, fmt.Errorf("statement_suffix must not be empty")
	}
	if c.CombinedName == "" {
		return nil, fmt.Errorf("combined_name must not be empty")
	}
	if c.EmptyTextLength < 0 {
		return nil, fmt.Errorf("empty_text_length must not be negative, got %d", c.EmptyTextLength)
	}

	delim, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return nil, err
	}

	opts := &converters.Options{
		StatementSuffix: c.StatementSuffix,
		CombinedName:    c.CombinedName,
		SortSources:     c.SortSources,
		Verbose:         c.Verbose,
		Conversion: common.ConversionConfig{
			Delimiter:     delim,
			SanitizeNames: c.SanitizeNames,
			Verbose:       c.Verbose,
		},
	}

	switch strings.ToLower(c.QuotePolicy) {
	case "", QuoteEscape:
		opts.Conversion.Quotes = common.QuoteEscape
	case QuoteReject:
		opts.Conversion.Quotes = common.QuoteReject
	default:
		return nil, fmt.Errorf("unknown quote_policy %q (want %s or %s)", c.QuotePolicy, QuoteEscape, QuoteReject)
	}

	switch strings.ToLower(c.RowPolicy) {
	case "", RowReject:
		opts.Conversion.Rows = common.RowReject
	case RowPad:
		opts.Conversion.Rows = common.RowPad
	default:
		return nil, fmt.Errorf("unknown row_policy %q (want %s or %s)", c.RowPolicy, RowReject, RowPad)
	}

	firstRow := common.FirstRowStrategy{EmptyTextLength: c.EmptyTextLength}
	if len(c.Tables) == 0 {
		opts.Conversion.Strategy = firstRow
		return opts, nil
	}

	declared := make(map[string]map[string]common.ColumnType, len(c.Tables))
	for _, table := range c.Tables {
		if _, dup := declared[table.Name]; dup {
			return nil, fmt.Errorf("table %q is declared twice", table.Name)
		}
		cols := make(map[string]common.ColumnType, len(table.Columns))
		for _, col := range table.Columns {
			if _, dup := cols[col.Name]; dup {
				return nil, fmt.Errorf("column %q of table %q is declared twice", col.Name, table.Name)
			}
			ct, err := common.ParseColumnType(col.Type)
			if err != nil {
				return nil, fmt.Errorf("column %q of table %q: %w", col.Name, table.Name, err)
			}
			cols[col.Name] = ct
		}
		declared[table.Name] = cols
	}
	opts.Conversion.Strategy = common.ExplicitStrategy{Tables: declared, Fallback: firstRow}
	return opts, nil
}

// parseDelimiter accepts "auto" (or empty), "tab", or a single character.
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", DelimiterAuto:
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, %q or %q, got %q", DelimiterAuto, "tab", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '\n' || r == '\r' || r == '"' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
