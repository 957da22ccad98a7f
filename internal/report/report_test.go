package report

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/symburst/internal/symbols"
	"github.com/ziadkadry99/symburst/internal/view"
)

func testController(t *testing.T) *view.Controller {
	t.Helper()
	doc := &symbols.Document{
		App: "blinky",
		Symbols: []symbols.Record{
			{Path: []string{"core"}, Obj: "a.o", Sym: "f1", Type: symbols.TypeText, Size: 10},
			{Path: []string{"core"}, Obj: "a.o", Sym: "f2", Type: symbols.TypeText, Size: 20},
			{Path: []string{"lib"}, Obj: "b|c.o", Sym: "g", Type: symbols.TypeText, Size: 30},
			{Path: []string{"lib"}, Obj: "b|c.o", Sym: "bad", Type: symbols.TypeText, Size: -4},
		},
	}
	c, err := view.New(doc)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	return c
}

func TestMarkdown(t *testing.T) {
	c := testController(t)
	md := Markdown(c.State(), 1)

	for _, want := range []string{
		"# blinky memory breakdown",
		"Total: 60 byte",
		"| 0 | blinky | 60 | 100% |",
		"| 1 | core | 30 | 50.0% |",
		"| 1 | lib | 30 | 50.0% |",
		"## Rejected records",
		`"sym": "bad"`,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "a.o") {
		t.Error("depth 1 report should not list objects")
	}
}

func TestMarkdownZoomed(t *testing.T) {
	c := testController(t)
	if _, err := c.OnNodeClick(5); err != nil { // lib
		t.Fatalf("OnNodeClick: %v", err)
	}
	md := Markdown(c.State(), 0)

	if !strings.Contains(md, "Zoomed into **lib**") {
		t.Errorf("expected zoom note:\n%s", md)
	}
	// Shares stay relative to the whole chart.
	if !strings.Contains(md, "| 0 | lib | 30 | 50.0% |") {
		t.Errorf("expected lib as root row:\n%s", md)
	}
	if !strings.Contains(md, `b\|c.o`) {
		t.Errorf("expected escaped pipe in object name:\n%s", md)
	}
}

func TestTable(t *testing.T) {
	c := testController(t)
	rows, err := c.Table(1)
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	got := Table(rows, c.State().Total())
	want := "| Layer | Name | Size | Share |\n" +
		"|---:|---|---:|---:|\n" +
		"| 1 | core | 30 | 50.0% |\n" +
		"| 2 | a.o | 30 | 50.0% |\n"
	if got != want {
		t.Errorf("Table() =\n%s\nwant\n%s", got, want)
	}
}

func TestHTML(t *testing.T) {
	c := testController(t)
	page, err := HTML("blinky <report>", Markdown(c.State(), 2))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	html := string(page)

	if !strings.Contains(html, "<title>blinky &lt;report&gt;</title>") {
		t.Error("expected escaped title")
	}
	if !strings.Contains(html, "<table>") {
		t.Error("expected rendered table")
	}
	if !strings.Contains(html, "<td>core</td>") {
		t.Error("expected core row")
	}
	if !strings.Contains(html, "<pre") {
		t.Error("expected highlighted code block for rejected records")
	}
}
