package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Row holds the analyzer results for a single document.
type Row struct {
	Path    string
	Results []Result
}

// Result returns the row's result for the named analyzer.
func (r Row) Result(analyzer string) (Result, bool) {
	for _, res := range r.Results {
		if res.Analyzer == analyzer {
			return res, true
		}
	}
	return Result{}, false
}

// Lookup resolves a field reference against the row.
func (r Row) Lookup(ref FieldRef) (Value, bool) {
	res, ok := r.Result(ref.Analyzer)
	if !ok {
		return Value{}, false
	}
	return res.Get(ref.Key)
}

// FieldRef names one field of one analyzer, written "analyzer.key".
type FieldRef struct {
	Analyzer string
	Key      string
}

// String implements fmt.Stringer.
func (f FieldRef) String() string {
	return f.Analyzer + "." + f.Key
}

// ParseFieldRef parses "analyzer.key". The analyzer part may be a name or
// an ID and is normalized to the registered name.
func ParseFieldRef(raw string) (FieldRef, error) {
	name, key, ok := strings.Cut(strings.TrimSpace(raw), ".")
	if !ok || name == "" || key == "" {
		return FieldRef{}, fmt.Errorf("invalid field %q (want analyzer.key)", raw)
	}
	a, found := Lookup(name)
	if !found {
		return FieldRef{}, unknownAnalyzerErr(name)
	}
	return FieldRef{Analyzer: a.Name(), Key: key}, nil
}

// Analyze runs each analyzer over the document text.
func Analyze(doc *Document, analyzers []Analyzer) Row {
	text := doc.Text()
	results := make([]Result, 0, len(analyzers))
	for _, a := range analyzers {
		results = append(results, a.Compute(text))
	}
	return Row{Path: doc.Path, Results: results}
}

// SortRows sorts rows deterministically by a field and path tiebreaker.
func SortRows(rows []Row, by FieldRef, order Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := rows[i].Lookup(by)
		b, bok := rows[j].Lookup(by)
		aok = aok && a.Numeric()
		bok = bok && b.Numeric()

		// Available values sort before unavailable values.
		if aok != bok {
			return aok
		}

		if aok && bok {
			diff := a.Float64() - b.Float64()
			if math.Abs(diff) > 1e-9 {
				if order == OrderAsc {
					return diff < 0
				}
				return diff > 0
			}
		}

		// Stable deterministic tie-break.
		return rows[i].Path < rows[j].Path
	})
}

// LimitRows returns at most top rows (if top > 0).
func LimitRows(rows []Row, top int) []Row {
	if top <= 0 || top >= len(rows) {
		return rows
	}
	return rows[:top]
}

// FormatValue renders a looked-up value for text output.
func FormatValue(v Value, ok bool) string {
	if !ok {
		return "-"
	}
	return v.String()
}
