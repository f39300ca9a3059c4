package mdtext_test

import (
	"testing"

	"github.com/jeduden/rumetrics/internal/mdtext"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// parseParagraph parses markdown and returns the first Paragraph node.
func parseParagraph(t *testing.T, src string) (ast.Node, []byte) {
	t.Helper()
	source := []byte(src)
	reader := text.NewReader(source)
	doc := goldmark.DefaultParser().Parse(reader)
	var para ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if _, ok := n.(*ast.Paragraph); ok {
				para = n
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	if para == nil {
		t.Fatal("no paragraph found")
	}
	return para, source
}

func TestExtractPlainText_PlainParagraph(t *testing.T) {
	para, src := parseParagraph(t, "Hello world.\n")
	got := mdtext.ExtractPlainText(para, src)
	if got != "Hello world." {
		t.Errorf("got %q, want %q", got, "Hello world.")
	}
}

func TestExtractPlainText_Link(t *testing.T) {
	para, src := parseParagraph(t, "Click [here](https://example.com) now.\n")
	got := mdtext.ExtractPlainText(para, src)
	if got != "Click here now." {
		t.Errorf("got %q, want %q", got, "Click here now.")
	}
}

func TestExtractPlainText_Emphasis(t *testing.T) {
	para, src := parseParagraph(t, "This is *important* text.\n")
	got := mdtext.ExtractPlainText(para, src)
	if got != "This is important text." {
		t.Errorf("got %q, want %q", got, "This is important text.")
	}
}

func TestExtractPlainText_Strong(t *testing.T) {
	para, src := parseParagraph(t, "This is **bold** text.\n")
	got := mdtext.ExtractPlainText(para, src)
	if got != "This is bold text." {
		t.Errorf("got %q, want %q", got, "This is bold text.")
	}
}

func TestExtractPlainText_CodeSpan(t *testing.T) {
	para, src := parseParagraph(t, "Use `fmt.Println` to print.\n")
	got := mdtext.ExtractPlainText(para, src)
	if got != "Use fmt.Println to print." {
		t.Errorf("got %q, want %q", got, "Use fmt.Println to print.")
	}
}

func TestExtractPlainText_Image(t *testing.T) {
	para, src := parseParagraph(t, "See ![alt text](image.png) here.\n")
	got := mdtext.ExtractPlainText(para, src)
	if got != "See alt text here." {
		t.Errorf("got %q, want %q", got, "See alt text here.")
	}
}

func TestExtractPlainText_NestedMarkup(t *testing.T) {
	para, src := parseParagraph(
		t,
		"Click [**bold link**](https://example.com) now.\n",
	)
	got := mdtext.ExtractPlainText(para, src)
	if got != "Click bold link now." {
		t.Errorf("got %q, want %q", got, "Click bold link now.")
	}
}

func TestExtractPlainText_SoftLineBreak(t *testing.T) {
	para, src := parseParagraph(t, "Hello\nworld.\n")
	got := mdtext.ExtractPlainText(para, src)
	if got != "Hello\nworld." {
		t.Errorf("got %q, want %q", got, "Hello\nworld.")
	}
}

func TestPlainText_DialogueLinesKept(t *testing.T) {
	src := []byte("Лиса подошла к норе.\n— Кто там? — спросил заяц.\n– Это я, — ответила лиса.\n")
	got := mdtext.PlainText(src)
	want := "Лиса подошла к норе.\n— Кто там? — спросил заяц.\n– Это я, — ответила лиса."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// --- PlainText tests ---

func TestPlainText_HeadingsListsAndParagraphs(t *testing.T) {
	src := []byte("# Базы данных\n\n" +
		"**База данных** — это совокупность данных.\n\n" +
		"- Надёжное хранение,\n" +
		"- Эффективный доступ.\n")
	got := mdtext.PlainText(src)
	want := "Базы данных\n" +
		"База данных — это совокупность данных.\n" +
		"Надёжное хранение,\n" +
		"Эффективный доступ."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlainText_SkipsCodeBlocks(t *testing.T) {
	src := []byte("Текст.\n\n```sql\nSELECT * FROM items;\n```\n\nЕщё текст.\n")
	got := mdtext.PlainText(src)
	if got != "Текст.\nЕщё текст." {
		t.Errorf("got %q", got)
	}
}

func TestPlainText_Empty(t *testing.T) {
	if got := mdtext.PlainText(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

// --- StripFrontMatter tests ---

func TestStripFrontMatter(t *testing.T) {
	src := []byte("---\ntitle: Сказка\n---\nЖили-были дед да баба.\n")
	prefix, content := mdtext.StripFrontMatter(src)
	if string(prefix) != "---\ntitle: Сказка\n---\n" {
		t.Errorf("prefix = %q", prefix)
	}
	if string(content) != "Жили-были дед да баба.\n" {
		t.Errorf("content = %q", content)
	}
}

func TestStripFrontMatter_Unterminated(t *testing.T) {
	src := []byte("---\ntitle: x\nbody\n")
	prefix, content := mdtext.StripFrontMatter(src)
	if prefix != nil {
		t.Errorf("expected nil prefix, got %q", prefix)
	}
	if string(content) != string(src) {
		t.Errorf("content changed: %q", content)
	}
}
