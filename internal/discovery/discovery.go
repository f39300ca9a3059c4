// Package discovery turns command-line path arguments into the list of
// text files to analyze.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls how file discovery behaves.
type Options struct {
	// Patterns is the list of doublestar patterns matched against paths
	// relative to a walked directory. An empty list matches nothing.
	Patterns []string

	// Skip, when set, excludes walked files and whole directories.
	Skip func(path string) bool
}

// Resolve expands arguments into a deduplicated, sorted file list.
// Directories are walked using Patterns, arguments containing glob
// meta-characters are expanded with doublestar, and plain paths are
// taken as given. A missing plain path is an error.
func Resolve(args []string, opts Options) ([]string, error) {
	c := &collector{seen: make(map[string]bool)}

	for _, arg := range args {
		if err := c.resolveArg(arg, opts); err != nil {
			return nil, err
		}
	}

	sort.Strings(c.result)
	return c.result, nil
}

// Discover walks dir and returns files matching any of the configured
// patterns. Results are sorted.
func Discover(dir string, opts Options) ([]string, error) {
	c := &collector{seen: make(map[string]bool)}
	if err := c.walk(dir, opts); err != nil {
		return nil, err
	}
	sort.Strings(c.result)
	return c.result, nil
}

type collector struct {
	seen   map[string]bool
	result []string
}

func (c *collector) resolveArg(arg string, opts Options) error {
	if hasGlobChars(arg) {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if err := c.walk(m, opts); err != nil {
					return err
				}
				continue
			}
			c.add(m)
		}
		return nil
	}

	info, err := os.Stat(arg)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}
	if info.IsDir() {
		return c.walk(arg, opts)
	}
	c.add(arg)
	return nil
}

func (c *collector) walk(dir string, opts Options) error {
	patterns := validPatterns(opts.Patterns)
	if len(patterns) == 0 {
		return nil
	}

	return filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if opts.Skip != nil && opts.Skip(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if matchesAny(patterns, rel) {
			c.add(path)
		}
		return nil
	})
}

// add records a file once, keyed by its absolute path.
func (c *collector) add(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if !c.seen[abs] {
		c.seen[abs] = true
		c.result = append(c.result, path)
	}
}

// validPatterns returns patterns that are syntactically valid.
func validPatterns(patterns []string) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		}
	}
	return valid
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		matched, err := doublestar.Match(p, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
