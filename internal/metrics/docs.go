package metrics

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jeduden/rumetrics/internal/mdtext"
	"gopkg.in/yaml.v3"
)

//go:embed RM*/README.md
var docsFS embed.FS

// DocInfo holds metadata extracted from an analyzer README's front matter.
type DocInfo struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Content     string `yaml:"-"`
}

// ListDocs returns all embedded analyzer docs sorted by ID.
func ListDocs() ([]DocInfo, error) {
	return listDocsFromFS(docsFS)
}

// LookupDoc finds an analyzer doc by ID (e.g. RM001) or name (e.g. surface).
func LookupDoc(query string) (string, error) {
	return lookupDocFromFS(docsFS, query)
}

func listDocsFromFS(fsys fs.FS) ([]DocInfo, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading analyzer docs: %w", err)
	}

	var docs []DocInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := entry.Name() + "/README.md"
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			continue
		}

		info, err := parseFrontMatter(data)
		if err != nil {
			continue
		}
		info.Content = string(data)
		docs = append(docs, info)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

func lookupDocFromFS(fsys fs.FS, query string) (string, error) {
	docs, err := listDocsFromFS(fsys)
	if err != nil {
		return "", err
	}

	q := strings.ToUpper(strings.TrimSpace(query))
	qName := strings.ToLower(strings.TrimSpace(query))
	for _, d := range docs {
		if strings.ToUpper(d.ID) == q || d.Name == qName {
			return d.Content, nil
		}
	}

	return "", fmt.Errorf("unknown analyzer %q", query)
}

// parseFrontMatter extracts id, name, and description from YAML front matter.
func parseFrontMatter(content []byte) (DocInfo, error) {
	prefix, _ := mdtext.StripFrontMatter(content)
	if prefix == nil {
		return DocInfo{}, fmt.Errorf("missing front matter")
	}
	body := bytes.TrimSuffix(bytes.TrimPrefix(prefix, []byte("---\n")), []byte("---\n"))

	var info DocInfo
	if err := yaml.Unmarshal(body, &info); err != nil {
		return DocInfo{}, fmt.Errorf("parsing front matter: %w", err)
	}
	if info.ID == "" {
		return DocInfo{}, fmt.Errorf("front matter missing id")
	}
	if info.Name == "" {
		return DocInfo{}, fmt.Errorf("front matter missing name")
	}
	return info, nil
}
