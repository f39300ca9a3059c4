package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeduden/rumetrics/internal/config"
)

// runApp runs the CLI in-process and returns stdout, stderr and the exit
// code. piped reports whether stdin counts as a pipe.
func runApp(t *testing.T, stdin string, piped bool, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	a := &app{
		stdin:      strings.NewReader(stdin),
		stdout:     &outBuf,
		stderr:     &errBuf,
		stdinPiped: func() bool { return piped },
	}
	exitCode = a.run(args)
	return outBuf.String(), errBuf.String(), exitCode
}

// writeFixture creates a file with the given content in the given directory.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// emptyConfig pins tests to built-in defaults regardless of the working
// directory.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFixture(t, t.TempDir(), config.FileName, "analyzers: {}\n")
}

type jsonRow struct {
	Path    string                    `json:"path"`
	Results map[string]map[string]any `json:"results"`
}

func decodeRows(t *testing.T, out string) []jsonRow {
	t.Helper()
	var rows []jsonRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	return rows
}

// --- Top-level behavior ---

func TestNoArgs_PrintsUsage(t *testing.T) {
	_, stderr, code := runApp(t, "", false)
	if code != exitOK {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stderr, "Usage:") || !strings.Contains(stderr, "analyze") {
		t.Errorf("expected usage text, got: %s", stderr)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, code := runApp(t, "", false, "frobnicate")
	if code != exitUsage {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr, `unknown command "frobnicate"`) {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, code := runApp(t, "", false, "version")
	if code != exitOK || !strings.HasPrefix(stdout, "rumetrics ") {
		t.Errorf("unexpected version output %q (exit %d)", stdout, code)
	}
}

// --- list / help ---

func TestList_Text(t *testing.T) {
	stdout, _, code := runApp(t, "", false, "list")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"RM001", "surface", "RM003", "cache-policy,cache-size,dictionary", "RM004"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestList_JSON(t *testing.T) {
	stdout, _, code := runApp(t, "", false, "list", "--format", "json")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	var items []map[string]any
	if err := json.Unmarshal([]byte(stdout), &items); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(items) != 4 || items[0]["id"] != "RM001" {
		t.Fatalf("unexpected items: %v", items)
	}
	fields, _ := items[0]["fields"].([]any)
	if len(fields) != 7 || fields[0] != "avg_sentence_length" {
		t.Errorf("unexpected surface fields: %v", fields)
	}
}

func TestHelpAnalyzer(t *testing.T) {
	stdout, _, code := runApp(t, "", false, "help", "analyzer")
	if code != exitOK || !strings.Contains(stdout, "RM002") {
		t.Fatalf("unexpected listing %q (exit %d)", stdout, code)
	}

	stdout, _, code = runApp(t, "", false, "help", "analyzer", "readability")
	if code != exitOK || !strings.Contains(stdout, "# RM004") {
		t.Fatalf("unexpected doc %q (exit %d)", stdout, code)
	}

	_, _, code = runApp(t, "", false, "help", "analyzer", "nope")
	if code != exitUsage {
		t.Errorf("expected exit code 2 for unknown analyzer, got %d", code)
	}
}

// --- analyze ---

func TestAnalyze_StdinJSON(t *testing.T) {
	stdout, stderr, code := runApp(t, "Кот спит. Собака бежит быстро!", true,
		"analyze", "-c", emptyConfig(t), "--format", "json")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr)
	}
	rows := decodeRows(t, stdout)
	if len(rows) != 1 || rows[0].Path != stdinPath {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if got := rows[0].Results["surface"]["word_count"]; got != float64(5) {
		t.Errorf("surface.word_count = %v, want 5", got)
	}
	if got := rows[0].Results["surface"]["sentence_count"]; got != float64(2) {
		t.Errorf("surface.sentence_count = %v, want 2", got)
	}
	for _, name := range []string{"lexical", "morphology", "readability"} {
		if _, ok := rows[0].Results[name]; !ok {
			t.Errorf("missing %s results", name)
		}
	}
}

func TestAnalyze_StdinDialogue(t *testing.T) {
	text := "Лиса подошла к норе.\n— Кто там? — спросил заяц.\n– Это я, — ответила лиса.\n"
	for _, args := range [][]string{
		{"analyze", "-c", emptyConfig(t), "-a", "morphology", "-f", "json"},
		{"analyze", "-c", emptyConfig(t), "-a", "morphology", "-f", "json", "--stdin-markdown"},
	} {
		stdout, stderr, code := runApp(t, text, true, args...)
		if code != exitOK {
			t.Fatalf("%v: expected exit code 0, got %d: %s", args, code, stderr)
		}
		rows := decodeRows(t, stdout)
		if got := rows[0].Results["morphology"]["dialogue_markers"]; got != float64(2) {
			t.Errorf("%v: morphology.dialogue_markers = %v, want 2", args, got)
		}
	}
}

func TestAnalyze_StdinMarkdownFlag(t *testing.T) {
	text := "# Заголовок\n\nКот **спит**."
	stdout, _, code := runApp(t, text, true, "analyze", "-c", emptyConfig(t), "-a", "surface", "-f", "json")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	plain := decodeRows(t, stdout)[0].Results["surface"]["char_count"]

	stdout, _, code = runApp(t, text, true, "analyze", "-c", emptyConfig(t), "-a", "surface", "-f", "json", "--stdin-markdown")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	stripped := decodeRows(t, stdout)[0].Results["surface"]["char_count"]
	if plain != float64(len([]rune(text))) {
		t.Errorf("plain char_count = %v, want %d", plain, len([]rune(text)))
	}
	if stripped != float64(len([]rune("Заголовок\nКот спит."))) {
		t.Errorf("markdown char_count = %v, want %d", stripped, len([]rune("Заголовок\nКот спит.")))
	}
}

func TestAnalyze_SelectedAnalyzersText(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "tale.txt", "Жили-были дед да баба. Была у них курочка Ряба.")

	stdout, _, code := runApp(t, "", false,
		"analyze", "-c", emptyConfig(t), "--analyzers", "RM002", "--lang", "en", path)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.HasPrefix(stdout, path+"\n  lexical\n") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Lexical diversity") {
		t.Errorf("expected English labels:\n%s", stdout)
	}
	if strings.Contains(stdout, "surface") {
		t.Errorf("unselected analyzer in output:\n%s", stdout)
	}
}

func TestAnalyze_DirectoryUsesIncludeAndIgnore(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.txt", "Кот спит.")
	writeFixture(t, dir, "b.md", "# Заголовок\n\nСобака бежит.")
	writeFixture(t, dir, "skip/c.txt", "Корова ест.")
	writeFixture(t, dir, "d.rst", "Ёж.")
	cfgPath := writeFixture(t, t.TempDir(), config.FileName, "ignore:\n  - \"**/skip/**\"\n")

	stdout, _, code := runApp(t, "", false, "analyze", "-c", cfgPath, "-a", "surface", "-f", "json", dir)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	rows := decodeRows(t, stdout)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if filepath.Base(rows[0].Path) != "a.txt" || filepath.Base(rows[1].Path) != "b.md" {
		t.Fatalf("unexpected paths: %s, %s", rows[0].Path, rows[1].Path)
	}
	if got := rows[1].Results["surface"]["word_count"]; got != float64(3) {
		t.Errorf("markdown word_count = %v, want 3", got)
	}
}

func TestAnalyze_OverrideDisablesAnalyzer(t *testing.T) {
	dir := t.TempDir()
	poem := writeFixture(t, dir, "poems/a.txt", "Мороз и солнце.")
	cfgPath := writeFixture(t, t.TempDir(), config.FileName,
		"overrides:\n  - files: [\"**/poems/**\"]\n    analyzers:\n      RM004: false\n")

	stdout, _, code := runApp(t, "", false, "analyze", "-c", cfgPath, "-f", "json", poem)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	rows := decodeRows(t, stdout)
	if _, ok := rows[0].Results["readability"]; ok {
		t.Error("readability should be disabled by the override")
	}
	if _, ok := rows[0].Results["surface"]; !ok {
		t.Error("surface should still run")
	}
}

func TestAnalyze_YAMLOutput(t *testing.T) {
	stdout, _, code := runApp(t, "Кот спит.", true, "analyze", "-c", emptyConfig(t), "-a", "surface", "-f", "yaml")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout, "path: ") || !strings.Contains(stdout, "<stdin>") || !strings.Contains(stdout, "word_count: 2") {
		t.Errorf("unexpected YAML:\n%s", stdout)
	}
}

func TestAnalyze_UsageErrors(t *testing.T) {
	cfg := emptyConfig(t)
	tests := []struct {
		name  string
		piped bool
		args  []string
		want  string
	}{
		{"no input", false, []string{"analyze", "-c", cfg}, "Usage: rumetrics analyze"},
		{"bad lang", true, []string{"analyze", "-c", cfg, "--lang", "fr"}, "unknown label language"},
		{"bad format", true, []string{"analyze", "-c", cfg, "--format", "xml"}, "unknown format"},
		{"bad analyzer", true, []string{"analyze", "-c", cfg, "-a", "sentiment"}, "unknown analyzer"},
		{"missing file", false, []string{"analyze", "-c", cfg, "/nonexistent/x.txt"}, "cannot access"},
		{"missing config", true, []string{"analyze", "-c", "/nonexistent/.rumetrics.yml"}, "reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runApp(t, "Кот.", tt.piped, tt.args...)
			if code != exitUsage {
				t.Errorf("expected exit code 2, got %d", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr %q missing %q", stderr, tt.want)
			}
		})
	}
}

func TestAnalyze_InvalidConfigSettings(t *testing.T) {
	cfgPath := writeFixture(t, t.TempDir(), config.FileName,
		"analyzers:\n  morphology:\n    cache-policy: random\n")
	_, stderr, code := runApp(t, "Кот.", true, "analyze", "-c", cfgPath)
	if code != exitUsage {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr, "invalid config") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestAnalyze_VerboseLogsConfigAndTimings(t *testing.T) {
	cfgPath := emptyConfig(t)
	_, stderr, code := runApp(t, "Кот спит.", true, "analyze", "-c", cfgPath, "-a", "surface", "-v")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"config: " + cfgPath, "file: <stdin>", "analyzer surface on <stdin>: ", "analyzed 1 files"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

// --- rank ---

func rankFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "a.txt", "Кот спит.")
	writeFixture(t, dir, "b.txt", "Кот спит. Собака бежит быстро!")
	writeFixture(t, dir, "c.txt", "Мама мыла раму.")
	return dir
}

func TestRank_ByWordCount(t *testing.T) {
	dir := rankFixtures(t)
	stdout, _, code := runApp(t, "", false,
		"rank", "-c", emptyConfig(t), "--by", "surface.word_count", "--format", "json", dir)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(stdout), &items); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	var order []string
	for _, item := range items {
		order = append(order, filepath.Base(item["path"].(string)))
	}
	if strings.Join(order, ",") != "b.txt,c.txt,a.txt" {
		t.Fatalf("unexpected order: %v", order)
	}
	if items[0]["surface.word_count"] != float64(5) {
		t.Errorf("unexpected value: %v", items[0])
	}
}

func TestRank_AscendingTopWithExtraFields(t *testing.T) {
	dir := rankFixtures(t)
	stdout, _, code := runApp(t, "", false,
		"rank", "-c", emptyConfig(t), "--by", "RM001.word_count", "--order", "asc", "--top", "1",
		"--fields", "lexical.unique_words", dir)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got:\n%s", stdout)
	}
	if !strings.HasPrefix(lines[0], "SURFACE.WORD_COUNT") || !strings.Contains(lines[0], "LEXICAL.UNIQUE_WORDS") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "a.txt") || !strings.HasPrefix(lines[1], "2 ") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestRank_UnknownField(t *testing.T) {
	_, stderr, code := runApp(t, "", false, "rank", "-c", emptyConfig(t), "--by", "surface.nope", t.TempDir())
	if code != exitUsage {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr, `unknown field "surface.nope"`) || !strings.Contains(stderr, "word_count") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

// --- filter ---

const filterInput = `{"id": 1, "text": "Мама мыла   раму, а папа читал газету."}
{"id": 2, "text": "Привет"}

{"id": 3, "body": "Нет текста"}
`

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid JSONL line %q: %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestFilter_AddsFeatures(t *testing.T) {
	stdout, _, code := runApp(t, filterInput, true, "filter", "-c", emptyConfig(t))
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	records := decodeLines(t, stdout)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	first := records[0]
	if first["text_clean"] != "Мама мыла раму, а папа читал газету." {
		t.Errorf("text_clean = %q", first["text_clean"])
	}
	if first["feat_word_count"] != float64(7) || first["is_valid_for_training"] != true {
		t.Errorf("unexpected features: %v", first)
	}
	if records[1]["is_valid_for_training"] != false || records[1]["confidence_hint"] != 0.3 {
		t.Errorf("short record should be invalid: %v", records[1])
	}
	if records[2]["text_clean"] != "" {
		t.Errorf("record without text field should clean to empty: %v", records[2])
	}
}

func TestFilter_ValidOnlyWithMetrics(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.jsonl")
	if err := os.WriteFile(input, []byte(filterInput), 0o644); err != nil {
		t.Fatal(err)
	}
	stdout, stderr, code := runApp(t, "", false,
		"filter", "-c", emptyConfig(t), "-i", input, "--valid-only", "-a", "surface", "-v")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr)
	}
	records := decodeLines(t, stdout)
	if len(records) != 1 || records[0]["id"] != float64(1) {
		t.Fatalf("unexpected records: %v", records)
	}
	m, _ := records[0]["metrics"].(map[string]any)
	surface, _ := m["surface"].(map[string]any)
	if surface["word_count"] != float64(7) {
		t.Errorf("unexpected metrics: %v", records[0]["metrics"])
	}
	if !strings.Contains(stderr, "records: 3, written: 1, dropped: 2") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestFilter_FieldAndThresholdFlags(t *testing.T) {
	stdout, _, code := runApp(t, filterInput, true,
		"filter", "-c", emptyConfig(t), "--field", "body", "--min-words", "2", "--valid-only")
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	records := decodeLines(t, stdout)
	if len(records) != 0 {
		t.Fatalf("two-word body is too short for training, got %v", records)
	}
}

func TestFilter_Errors(t *testing.T) {
	cfg := emptyConfig(t)
	_, stderr, code := runApp(t, "{not json}\n", true, "filter", "-c", cfg)
	if code != exitUsage || !strings.Contains(stderr, "line 1") {
		t.Errorf("expected line error, got %d: %s", code, stderr)
	}

	_, stderr, code = runApp(t, "", true, "filter", "-c", cfg, "--min-words", "10", "--max-words", "5")
	if code != exitUsage || !strings.Contains(stderr, "invalid filter options") {
		t.Errorf("expected option error, got %d: %s", code, stderr)
	}
}

// --- init ---

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	_, stderr, code := runApp(t, "", false, "init", "-o", path)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Analyzers["morphology"].Settings["cache-size"] != 100000 {
		t.Errorf("unexpected morphology settings: %v", cfg.Analyzers["morphology"].Settings)
	}

	_, stderr, code = runApp(t, "", false, "init", "-o", path)
	if code != exitUsage || !strings.Contains(stderr, "already exists") {
		t.Errorf("expected refusal to overwrite, got %d: %s", code, stderr)
	}
}
