package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Field is one named value of a Result.
type Field struct {
	Key   string
	Value Value
}

// Result is the flat metric mapping returned by an analyzer. Field order
// is the order in which values were set and is kept by every encoding.
type Result struct {
	Analyzer string
	Fields   []Field
}

// NewResult returns an empty result for the named analyzer.
func NewResult(analyzer string) Result {
	return Result{Analyzer: analyzer}
}

// Set stores v under key, replacing an existing value in place.
func (r *Result) Set(key string, v Value) {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Value = v
			return
		}
	}
	r.Fields = append(r.Fields, Field{Key: key, Value: v})
}

// Get returns the value stored under key.
func (r Result) Get(key string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Number returns the numeric value under key, or 0 when absent.
func (r Result) Number(key string) float64 {
	v, _ := r.Get(key)
	return v.Float64()
}

// Keys returns the field keys in order.
func (r Result) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Equal reports whether two results hold the same keys and values in the
// same order.
func (r Result) Equal(o Result) bool {
	if r.Analyzer != o.Analyzer || len(r.Fields) != len(o.Fields) {
		return false
	}
	for i := range r.Fields {
		a, b := r.Fields[i], o.Fields[i]
		if a.Key != b.Key || a.Value.Kind != b.Value.Kind || a.Value.String() != b.Value.String() {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the fields as a JSON object in field order.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, f.Value); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v Value) error {
	if v.Kind != KindDistribution {
		data, err := json.Marshal(v.Scalar())
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}

	buf.WriteByte('{')
	for i, k := range v.Buckets() {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, "%q:%d", strconv.Itoa(k), v.Dist[k])
	}
	buf.WriteByte('}')
	return nil
}

// MarshalYAML encodes the fields as a YAML mapping in field order.
func (r Result) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range r.Fields {
		val, err := yamlValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", f.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			val,
		)
	}
	return node, nil
}

func yamlValue(v Value) (*yaml.Node, error) {
	if v.Kind == KindDistribution {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range v.Buckets() {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(k)},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v.Dist[k])},
			)
		}
		return m, nil
	}

	n := &yaml.Node{}
	if err := n.Encode(v.Scalar()); err != nil {
		return nil, err
	}
	return n, nil
}
