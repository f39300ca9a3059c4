package metrics

import "testing"

func rowWith(path string, v Value) Row {
	r := NewResult("surface")
	r.Set("avg_sentence_length", v)
	return Row{Path: path, Results: []Result{r}}
}

func TestSortRows_DescendingWithPathTieBreak(t *testing.T) {
	by := FieldRef{Analyzer: "surface", Key: "avg_sentence_length"}
	rows := []Row{
		rowWith("b.md", Float(10, 2)),
		rowWith("a.md", Float(10, 2)),
		rowWith("c.md", Float(3, 2)),
	}

	SortRows(rows, by, OrderDesc)

	want := []string{"a.md", "b.md", "c.md"}
	for i, path := range want {
		if rows[i].Path != path {
			t.Fatalf("row %d path = %q, want %q", i, rows[i].Path, path)
		}
	}
}

func TestSortRows_Ascending(t *testing.T) {
	by := FieldRef{Analyzer: "surface", Key: "avg_sentence_length"}
	rows := []Row{
		rowWith("a.md", Int(9)),
		rowWith("b.md", Int(1)),
		rowWith("c.md", Int(5)),
	}

	SortRows(rows, by, OrderAsc)

	want := []string{"b.md", "c.md", "a.md"}
	for i, path := range want {
		if rows[i].Path != path {
			t.Fatalf("row %d path = %q, want %q", i, rows[i].Path, path)
		}
	}
}

func TestSortRows_AvailableBeforeUnavailable(t *testing.T) {
	by := FieldRef{Analyzer: "surface", Key: "avg_sentence_length"}
	rows := []Row{
		{Path: "a.md"},
		rowWith("b.md", Text("n/a")),
		rowWith("c.md", Float(40, 2)),
	}

	SortRows(rows, by, OrderAsc)
	if rows[0].Path != "c.md" {
		t.Fatalf("available row should sort first, got %q", rows[0].Path)
	}
	if rows[1].Path != "a.md" || rows[2].Path != "b.md" {
		t.Fatalf("unavailable rows should tie-break by path, got %q, %q", rows[1].Path, rows[2].Path)
	}
}

func TestLimitRows(t *testing.T) {
	rows := []Row{
		{Path: "a.md"},
		{Path: "b.md"},
		{Path: "c.md"},
	}
	if got := LimitRows(rows, 2); len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got := LimitRows(rows, 0); len(got) != 3 {
		t.Fatalf("top 0 should keep all rows, got %d", len(got))
	}
	if got := LimitRows(rows, 10); len(got) != 3 {
		t.Fatalf("top 10 should keep all rows, got %d", len(got))
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(Float(1.5, 2), true); got != "1.50" {
		t.Fatalf("float format = %q, want 1.50", got)
	}
	if got := FormatValue(Int(42), true); got != "42" {
		t.Fatalf("int format = %q, want 42", got)
	}
	if got := FormatValue(Value{}, false); got != "-" {
		t.Fatalf("unavailable format = %q, want -", got)
	}
}

func TestParseFieldRef(t *testing.T) {
	withRegistry(t, &stubAnalyzer{id: "RM004", name: "readability"})

	ref, err := ParseFieldRef("rm004.flesch_reading_ease")
	if err != nil {
		t.Fatalf("ParseFieldRef: %v", err)
	}
	if ref.Analyzer != "readability" || ref.Key != "flesch_reading_ease" {
		t.Fatalf("ref = %+v", ref)
	}
	if ref.String() != "readability.flesch_reading_ease" {
		t.Fatalf("String() = %q", ref.String())
	}

	for _, bad := range []string{"readability", ".key", "readability.", "bogus.key"} {
		if _, err := ParseFieldRef(bad); err == nil {
			t.Errorf("ParseFieldRef(%q) should fail", bad)
		}
	}
}

func TestAnalyze_RunsEachAnalyzer(t *testing.T) {
	doc := NewDocument("a.txt", []byte("абв"))
	row := Analyze(doc, []Analyzer{
		&stubAnalyzer{id: "RM001", name: "one"},
		&stubAnalyzer{id: "RM002", name: "two", n: 1},
	})

	if row.Path != "a.txt" || len(row.Results) != 2 {
		t.Fatalf("row = %+v", row)
	}
	v, ok := row.Lookup(FieldRef{Analyzer: "two", Key: "length"})
	if !ok || v.Float64() != 7 {
		t.Fatalf("two.length = %v (%v), want 7", v, ok)
	}
	if _, ok := row.Lookup(FieldRef{Analyzer: "three", Key: "length"}); ok {
		t.Fatal("lookup of missing analyzer should fail")
	}
}
