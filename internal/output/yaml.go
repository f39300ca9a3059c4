package output

import (
	"io"

	"github.com/jeduden/rumetrics/internal/metrics"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter outputs rows as a YAML sequence.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, rows []metrics.Row) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		results := &yaml.Node{Kind: yaml.MappingNode}
		for _, res := range row.Results {
			val := &yaml.Node{}
			if err := val.Encode(res); err != nil {
				return err
			}
			results.Content = append(results.Content, scalar(res.Analyzer), val)
		}
		seq.Content = append(seq.Content, &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{scalar("path"), scalar(row.Path), scalar("results"), results},
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
