// Package config provides configuration structures and loading for po-codec.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-l10n/po-codec/po"
	"github.com/git-l10n/po-codec/repository"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// UserConfigFileName is the per-user configuration file in $HOME.
const UserConfigFileName = ".po-codec.yaml"

// Config holds the complete po-codec configuration. Pointer fields are
// optional: nil means "not set here", so layered files can be merged.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Writer WriterConfig `yaml:"writer"`
	Check  CheckConfig  `yaml:"check"`
}

// ParserConfig maps to po.ParserOptions.
type ParserConfig struct {
	Strict           *bool `yaml:"strict"`
	PreserveObsolete *bool `yaml:"preserve_obsolete"`
	// InputCharset overrides the charset declared in the header.
	InputCharset string `yaml:"input_charset"`
}

// WriterConfig maps to po.WriterOptions.
type WriterConfig struct {
	MaxLineWidth  *int   `yaml:"max_line_width"`
	WrapStrings   *bool  `yaml:"wrap_strings"`
	LineSeparator string `yaml:"line_separator"` // "lf" or "crlf"
	WriteObsolete *bool  `yaml:"write_obsolete"`
	SortEntries   *bool  `yaml:"sort_entries"`
	// Charset converts the output from UTF-8 when set.
	Charset string `yaml:"charset"`
}

// CheckConfig tunes the "check" command.
type CheckConfig struct {
	RequireLanguage    *bool `yaml:"require_language"`
	RequirePluralForms *bool `yaml:"require_plural_forms"`
}

// LoadConfig reads ~/.po-codec.yaml, then po-codec.yaml at the root of the
// current worktree, then configFile if not empty. Later files override
// earlier ones field by field. Missing user and repository files are
// ignored; a missing configFile is an error.
func LoadConfig(configFile string) (*Config, error) {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, UserConfigFileName))
	}
	if repoConfig := repository.ConfigFile(); repoConfig != "" {
		paths = append(paths, repoConfig)
	}

	merged := &Config{}
	for _, path := range paths {
		cfg, err := loadConfigFromFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		log.Debugf("loaded configuration from %s", path)
		merged = mergeConfigs(merged, cfg)
	}

	if configFile != "" {
		cfg, err := loadConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded configuration from %s", configFile)
		merged = mergeConfigs(merged, cfg)
	}

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return merged, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs returns base with every field set in override applied on top.
func mergeConfigs(base, override *Config) *Config {
	merged := *base
	if override == nil {
		return &merged
	}

	p := override.Parser
	mergeBool(&merged.Parser.Strict, p.Strict)
	mergeBool(&merged.Parser.PreserveObsolete, p.PreserveObsolete)
	mergeString(&merged.Parser.InputCharset, p.InputCharset)

	w := override.Writer
	if w.MaxLineWidth != nil {
		v := *w.MaxLineWidth
		merged.Writer.MaxLineWidth = &v
	}
	mergeBool(&merged.Writer.WrapStrings, w.WrapStrings)
	mergeString(&merged.Writer.LineSeparator, w.LineSeparator)
	mergeBool(&merged.Writer.WriteObsolete, w.WriteObsolete)
	mergeBool(&merged.Writer.SortEntries, w.SortEntries)
	mergeString(&merged.Writer.Charset, w.Charset)

	c := override.Check
	mergeBool(&merged.Check.RequireLanguage, c.RequireLanguage)
	mergeBool(&merged.Check.RequirePluralForms, c.RequirePluralForms)
	return &merged
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Validate checks values that the po package would reject later.
func (c *Config) Validate() error {
	if c.Writer.MaxLineWidth != nil && *c.Writer.MaxLineWidth < po.MinLineWidth {
		return fmt.Errorf("writer.max_line_width must be at least %d", po.MinLineWidth)
	}
	switch strings.ToLower(c.Writer.LineSeparator) {
	case "", "lf", "crlf":
	default:
		return fmt.Errorf("writer.line_separator must be 'lf' or 'crlf', got '%s'", c.Writer.LineSeparator)
	}
	return nil
}

// ParserOptions returns po.DefaultParserOptions with the configured values
// applied.
func (c *Config) ParserOptions() po.ParserOptions {
	opts := po.DefaultParserOptions()
	if c.Parser.Strict != nil {
		opts.Strict = *c.Parser.Strict
	}
	if c.Parser.PreserveObsolete != nil {
		opts.PreserveObsolete = *c.Parser.PreserveObsolete
	}
	return opts
}

// WriterOptions returns po.DefaultWriterOptions with the configured values
// applied.
func (c *Config) WriterOptions() po.WriterOptions {
	opts := po.DefaultWriterOptions()
	if c.Writer.MaxLineWidth != nil {
		opts.MaxLineWidth = *c.Writer.MaxLineWidth
	}
	if c.Writer.WrapStrings != nil {
		opts.WrapStrings = *c.Writer.WrapStrings
	}
	if strings.EqualFold(c.Writer.LineSeparator, "crlf") {
		opts.LineSeparator = "\r\n"
	}
	if c.Writer.WriteObsolete != nil {
		opts.WriteObsolete = *c.Writer.WriteObsolete
	}
	if c.Writer.SortEntries != nil {
		opts.SortEntries = *c.Writer.SortEntries
	}
	return opts
}

// RequireLanguage reports whether "check" fails on a missing Language header.
func (c *Config) RequireLanguage() bool {
	return c.Check.RequireLanguage != nil && *c.Check.RequireLanguage
}

// RequirePluralForms reports whether "check" fails on a missing Plural-Forms
// header when the catalog has plural entries. Defaults to true.
func (c *Config) RequirePluralForms() bool {
	return c.Check.RequirePluralForms == nil || *c.Check.RequirePluralForms
}
