package config

import (
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/jeduden/rumetrics/internal/preprocess"
)

// Merge merges a loaded config on top of defaults. The loaded config's
// analyzers override the defaults; any analyzer not mentioned in loaded
// keeps its default value. Ignore and Overrides come from the loaded
// config only.
func Merge(defaults, loaded *Config) *Config {
	analyzers := make(map[string]AnalyzerCfg, len(defaults.Analyzers))
	for k, v := range defaults.Analyzers {
		analyzers[k] = v
	}

	merged := &Config{
		Analyzers:   analyzers,
		Markdown:    defaults.Markdown,
		FrontMatter: defaults.FrontMatter,
		Include:     defaults.Include,
		Filter:      mergeFilter(defaults.Filter, nil),
	}
	if loaded == nil {
		return merged
	}

	for k, v := range loaded.Analyzers {
		analyzers[k] = v
	}
	if loaded.Markdown != nil {
		merged.Markdown = loaded.Markdown
	}
	if loaded.FrontMatter != nil {
		merged.FrontMatter = loaded.FrontMatter
	}
	if len(loaded.Include) > 0 {
		merged.Include = loaded.Include
	}
	merged.Ignore = loaded.Ignore
	merged.Overrides = loaded.Overrides
	merged.Filter = mergeFilter(defaults.Filter, loaded.Filter)
	return merged
}

func mergeFilter(base, top *FilterCfg) *FilterCfg {
	out := &FilterCfg{}
	for _, f := range []*FilterCfg{base, top} {
		if f == nil {
			continue
		}
		if f.Field != "" {
			out.Field = f.Field
		}
		if f.MinWords != nil {
			out.MinWords = f.MinWords
		}
		if f.MaxWords != nil {
			out.MaxWords = f.MaxWords
		}
	}
	return out
}

// FilterOptions converts the filter section into preprocessing options,
// falling back to the built-in limits for unset fields.
func (c *Config) FilterOptions() preprocess.Options {
	opts := preprocess.DefaultOptions()
	if c.Filter == nil {
		return opts
	}
	if c.Filter.Field != "" {
		opts.Field = c.Filter.Field
	}
	if c.Filter.MinWords != nil {
		opts.MinWords = *c.Filter.MinWords
	}
	if c.Filter.MaxWords != nil {
		opts.MaxWords = *c.Filter.MaxWords
	}
	return opts
}

// Effective returns the effective analyzer configuration for a given file
// path. It starts with the top-level analyzers and then applies each
// override whose file patterns match filePath, in order. Later overrides
// take precedence.
func Effective(cfg *Config, filePath string) map[string]AnalyzerCfg {
	result := make(map[string]AnalyzerCfg, len(cfg.Analyzers))
	for k, v := range cfg.Analyzers {
		result[k] = v
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, filePath) {
			for k, v := range o.Analyzers {
				result[k] = v
			}
		}
	}

	return result
}

// Ignored reports whether filePath matches any ignore pattern. Patterns
// are tried against the path as given, its cleaned form and its base name.
func Ignored(cfg *Config, filePath string) bool {
	clean := filepath.ToSlash(filepath.Clean(filePath))
	return matchesAny(cfg.Ignore, filePath, clean, filepath.Base(filePath))
}

// matchesAny returns true if any candidate matches any of the patterns.
func matchesAny(patterns []string, candidates ...string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			// Skip invalid patterns silently.
			continue
		}
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}
