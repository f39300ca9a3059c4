package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Analyzers   map[string]AnalyzerCfg `yaml:"analyzers"`
	Markdown    *bool                  `yaml:"markdown,omitempty"`
	FrontMatter *bool                  `yaml:"front-matter,omitempty"`
	Include     []string               `yaml:"include,omitempty"`
	Ignore      []string               `yaml:"ignore,omitempty"`
	Overrides   []Override             `yaml:"overrides,omitempty"`
	Filter      *FilterCfg             `yaml:"filter,omitempty"`
}

// Override applies analyzer settings to files matching glob patterns.
type Override struct {
	Files     []string               `yaml:"files"`
	Analyzers map[string]AnalyzerCfg `yaml:"analyzers"`
}

// FilterCfg holds the quality thresholds used by the filter command.
type FilterCfg struct {
	Field    string `yaml:"field,omitempty"`
	MinWords *int   `yaml:"min-words,omitempty"`
	MaxWords *int   `yaml:"max-words,omitempty"`
}

// AnalyzerCfg is a YAML union: can be bool (enable/disable) or
// map[string]any (settings).
type AnalyzerCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for AnalyzerCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (a *AnalyzerCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			a.Enabled = b
			a.Settings = nil
			return nil
		}
	}

	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid analyzer config: %w", err)
		}
		a.Enabled = true
		a.Settings = m
		return nil
	}

	return fmt.Errorf("analyzer config must be a bool or a mapping, got %v", value.Kind)
}

// MarshalYAML writes the short bool form unless settings are present.
func (a AnalyzerCfg) MarshalYAML() (any, error) {
	if !a.Enabled {
		return false, nil
	}
	if len(a.Settings) == 0 {
		return true, nil
	}
	return a.Settings, nil
}

// MarkdownEnabled reports whether Markdown markup should be stripped.
func (c *Config) MarkdownEnabled() bool {
	return c.Markdown == nil || *c.Markdown
}

// FrontMatterEnabled reports whether YAML front matter should be stripped.
func (c *Config) FrontMatterEnabled() bool {
	return c.FrontMatter == nil || *c.FrontMatter
}
