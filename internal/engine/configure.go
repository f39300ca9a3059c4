package engine

import (
	"encoding/json"
	"fmt"

	"github.com/jeduden/rumetrics/internal/config"
	"github.com/jeduden/rumetrics/internal/metrics"
)

// ConfigureAnalyzer clones an analyzer and applies settings from cfg if
// the analyzer implements Configurable and cfg has settings. Returns the
// configured analyzer (or the original if no settings apply) and any
// error from ApplySettings.
func ConfigureAnalyzer(a metrics.Analyzer, cfg config.AnalyzerCfg) (metrics.Analyzer, error) {
	if cfg.Settings == nil {
		return a, nil
	}
	if _, ok := a.(metrics.Configurable); !ok {
		return nil, fmt.Errorf("analyzer %s has no settings", a.Name())
	}
	clone := metrics.Clone(a)
	if c, ok := clone.(metrics.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", a.Name(), err)
		}
	}
	return clone, nil
}

// configured memoizes ConfigureAnalyzer by analyzer and settings so that
// files sharing an override also share caches and loaded dictionaries.
type configured struct {
	byKey map[string]metrics.Analyzer
}

func (c *configured) get(a metrics.Analyzer, cfg config.AnalyzerCfg) (metrics.Analyzer, error) {
	if cfg.Settings == nil {
		return a, nil
	}
	raw, err := json.Marshal(cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("settings for %s: %w", a.Name(), err)
	}
	key := a.ID() + "\x00" + string(raw)
	if got, ok := c.byKey[key]; ok {
		return got, nil
	}

	out, err := ConfigureAnalyzer(a, cfg)
	if err != nil {
		return nil, err
	}
	if c.byKey == nil {
		c.byKey = make(map[string]metrics.Analyzer)
	}
	c.byKey[key] = out
	return out, nil
}
