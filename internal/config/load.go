package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/jeduden/rumetrics/internal/metrics"
	"github.com/jeduden/rumetrics/internal/preprocess"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up by Discover.
const FileName = ".rumetrics.yml"

//go:embed schema.cue
var schemaSource string

// DefaultInclude lists the patterns used to find files inside directories.
var DefaultInclude = []string{"**/*.txt", "**/*.md"}

// Load reads, validates and parses a config file at the given path.
// Analyzer keys may be names or IDs; they are normalized to names.
// A relative morphology dictionary path is resolved against the
// directory holding the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	resolveDictionaries(cfg, filepath.Dir(path))
	return cfg, nil
}

// Parse validates and decodes config YAML.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := canonicalizeRaw(raw); err != nil {
		return nil, err
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	var err error
	if cfg.Analyzers, err =canonicalize(cfg.Analyzers); err != nil {
		return nil, err
	}
	for i := range cfg.Overrides {
		if cfg.Overrides[i].Analyzers, err = canonicalize(cfg.Overrides[i].Analyzers); err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", i, err)
		}
	}

	if f := cfg.Filter; f != nil && f.MinWords != nil && f.MaxWords != nil && *f.MinWords > *f.MaxWords {
		return nil, fmt.Errorf("filter: min-words (%d) exceeds max-words (%d)", *f.MinWords, *f.MaxWords)
	}
	return &cfg, nil
}

// validate checks the decoded document against the embedded CUE schema.
func validate(raw map[string]any) error {
	for k, v := range raw {
		if v == nil {
			delete(raw, k)
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("invalid config schema: %w", err)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}

	dataVal := ctx.CompileBytes(data)
	if err := dataVal.Err(); err != nil {
		return fmt.Errorf("compile config: %w", err)
	}

	if err := schema.Unify(dataVal).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// canonicalizeRaw renames analyzer keys in the untyped document so that
// the schema sees registered names.
func canonicalizeRaw(raw map[string]any) error {
	if m, ok := raw["analyzers"].(map[string]any); ok {
		out, err := canonicalize(m)
		if err != nil {
			return err
		}
		raw["analyzers"] = out
	}

	overrides, _ := raw["overrides"].([]any)
	for i, o := range overrides {
		om, ok := o.(map[string]any)
		if !ok {
			continue
		}
		m, ok := om["analyzers"].(map[string]any)
		if !ok {
			continue
		}
		out, err := canonicalize(m)
		if err != nil {
			return fmt.Errorf("overrides[%d]: %w", i, err)
		}
		om["analyzers"] = out
	}
	return nil
}

// canonicalize maps analyzer IDs and names to registered names.
func canonicalize[V any](m map[string]V) (map[string]V, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]V, len(m))
	for key, v := range m {
		a, ok := metrics.Lookup(key)
		if !ok {
			_, err := metrics.Resolve([]string{key})
			if err == nil {
				err = fmt.Errorf("unknown analyzer %q", key)
			}
			return nil, fmt.Errorf("analyzers: %w", err)
		}
		if _, dup := out[a.Name()]; dup {
			return nil, fmt.Errorf("analyzers: %q configured twice (%s)", a.Name(), key)
		}
		out[a.Name()] = v
	}
	return out, nil
}

func resolveDictionaries(cfg *Config, dir string) {
	resolve := func(m map[string]AnalyzerCfg) {
		for _, ac := range m {
			p, ok := ac.Settings["dictionary"].(string)
			if ok && p != "" && !filepath.IsAbs(p) {
				ac.Settings["dictionary"] = filepath.Join(dir, p)
			}
		}
	}
	resolve(cfg.Analyzers)
	for _, o := range cfg.Overrides {
		resolve(o.Analyzers)
	}
}

// Discover walks up the directory tree from startDir looking for a
// .rumetrics.yml config file. It stops searching when it encounters a .git
// directory (the repository root) or reaches the filesystem root.
// Returns the path to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with all registered analyzers enabled with
// default settings (no custom settings).
func Defaults() *Config {
	all := metrics.All()
	analyzers := make(map[string]AnalyzerCfg, len(all))
	for _, a := range all {
		analyzers[a.Name()] = AnalyzerCfg{Enabled: true}
	}
	return &Config{
		Analyzers:   analyzers,
		Markdown:    boolPtr(true),
		FrontMatter: boolPtr(true),
		Include:     append([]string(nil), DefaultInclude...),
		Filter:      defaultFilter(),
	}
}

// DumpDefaults returns Defaults with the settings of every Configurable
// analyzer written out. This is consumed by `rumetrics init`.
func DumpDefaults() *Config {
	cfg := Defaults()
	for _, a := range metrics.All() {
		if c, ok := a.(metrics.Configurable); ok {
			cfg.Analyzers[a.Name()] = AnalyzerCfg{Enabled: true, Settings: c.DefaultSettings()}
		}
	}
	return cfg
}

func defaultFilter() *FilterCfg {
	opts := preprocess.DefaultOptions()
	return &FilterCfg{
		Field:    opts.Field,
		MinWords: intPtr(opts.MinWords),
		MaxWords: intPtr(opts.MaxWords),
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }
