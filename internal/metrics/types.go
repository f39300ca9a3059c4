package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// Order defines metric sort order.
type Order string

const (
	// OrderAsc sorts from smallest to largest.
	OrderAsc Order = "asc"
	// OrderDesc sorts from largest to smallest.
	OrderDesc Order = "desc"
)

// ParseOrder parses a user-provided sort order.
func ParseOrder(raw string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(OrderDesc):
		return OrderDesc, nil
	case string(OrderAsc):
		return OrderAsc, nil
	default:
		return "", fmt.Errorf("unknown order %q (supported: asc, desc)", raw)
	}
}

// ValueKind describes how a metric value is stored and rendered.
type ValueKind string

const (
	// KindInteger renders values as rounded integers.
	KindInteger ValueKind = "integer"
	// KindFloat renders values with fixed decimal precision.
	KindFloat ValueKind = "float"
	// KindBool holds a yes/no flag.
	KindBool ValueKind = "bool"
	// KindText holds a categorical label.
	KindText ValueKind = "text"
	// KindDistribution holds an integer histogram.
	KindDistribution ValueKind = "distribution"
)

// Value is a computed metric value.
type Value struct {
	Kind      ValueKind
	Number    float64
	Precision int
	Text      string
	Flag      bool
	Dist      map[int]int
}

// Int constructs an integer value.
func Int(n int) Value {
	return Value{Kind: KindInteger, Number: float64(n)}
}

// Float constructs a float value rounded to precision decimal places.
func Float(n float64, precision int) Value {
	return Value{Kind: KindFloat, Number: Round(n, precision), Precision: precision}
}

// Bool constructs a flag value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Flag: b}
}

// Text constructs a label value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Distribution constructs a histogram value. The map is copied.
func Distribution(d map[int]int) Value {
	cp := make(map[int]int, len(d))
	for k, v := range d {
		cp[k] = v
	}
	return Value{Kind: KindDistribution, Dist: cp}
}

// Numeric reports whether the value can be ranked.
func (v Value) Numeric() bool {
	return v.Kind == KindInteger || v.Kind == KindFloat || v.Kind == KindBool
}

// Float64 returns the value as a number. Flags map to 0 and 1; text and
// distributions map to 0.
func (v Value) Float64() float64 {
	switch v.Kind {
	case KindInteger, KindFloat:
		return v.Number
	case KindBool:
		if v.Flag {
			return 1
		}
	}
	return 0
}

// Scalar converts a value into a JSON/YAML-safe scalar. Distributions
// become maps keyed by the decimal bucket.
func (v Value) Scalar() any {
	switch v.Kind {
	case KindInteger:
		return int64(v.Number)
	case KindFloat:
		return v.Number
	case KindBool:
		return v.Flag
	case KindText:
		return v.Text
	case KindDistribution:
		out := make(map[string]int, len(v.Dist))
		for k, n := range v.Dist {
			out[fmt.Sprint(k)] = n
		}
		return out
	}
	return nil
}

// String renders the value for text output.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return fmt.Sprintf("%d", int64(v.Number))
	case KindFloat:
		return fmt.Sprintf("%.*f", v.Precision, v.Number)
	case KindBool:
		return fmt.Sprintf("%t", v.Flag)
	case KindText:
		return v.Text
	case KindDistribution:
		keys := v.Buckets()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%d:%d", k, v.Dist[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "-"
}

// Buckets returns the distribution keys in ascending order.
func (v Value) Buckets() []int {
	keys := make([]int, 0, len(v.Dist))
	for k := range v.Dist {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
