package metrics

import (
	"path/filepath"
	"strings"

	"github.com/jeduden/rumetrics/internal/mdtext"
)

// Document is the shared analyzer input for a single source file.
// The analyzable text is derived lazily and cached.
type Document struct {
	Path   string
	Source []byte

	// Markdown strips Markdown markup from files with a Markdown
	// extension. Other paths, stdin included, are analyzed verbatim
	// unless AssumeMarkdown is set.
	Markdown bool
	// AssumeMarkdown treats the source as Markdown whatever its path.
	AssumeMarkdown bool
	// StripFrontMatter removes a leading YAML front matter block.
	StripFrontMatter bool

	text      string
	textReady bool
}

// NewDocument constructs a Document wrapper for metric computation.
func NewDocument(path string, source []byte) *Document {
	return &Document{
		Path:   path,
		Source: source,
	}
}

// Text returns the text handed to analyzers.
func (d *Document) Text() string {
	if d.textReady {
		return d.text
	}

	source := d.Source
	if d.StripFrontMatter {
		_, source = mdtext.StripFrontMatter(source)
	}
	if d.Markdown && (d.AssumeMarkdown || IsMarkdown(d.Path)) {
		d.text = mdtext.PlainText(source)
	} else {
		d.text = string(source)
	}
	d.textReady = true
	return d.text
}

// IsMarkdown reports whether path has a Markdown file extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown", ".mkd":
		return true
	}
	return false
}
