// Package report renders memory breakdowns as markdown tables and HTML pages.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ziadkadry99/symburst/internal/view"
)

// DefaultDepth is how many rings below the chart root a report lists.
const DefaultDepth = 2

// rejection is the JSON form of a rejected record in the report.
type rejection struct {
	Index int    `json:"index"`
	Sym   string `json:"sym"`
	Error string `json:"error"`
}

// Markdown renders the displayed chart of st as a markdown document: a
// heading, the filter and total, one table row per node down to depth rings
// below the chart root, and the rejected records as a JSON block.
func Markdown(st *view.State, depth int) string {
	if depth <= 0 {
		depth = DefaultDepth
	}
	total := st.Total()
	focus := st.Focus()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s memory breakdown\n\n", escape(st.App))
	fmt.Fprintf(&sb, "Types: %s  \nTotal: %d byte\n\n", st.Types.String(), total)
	if focus != st.Tree.Root() {
		fmt.Fprintf(&sb, "Zoomed into **%s**\n\n", escape(st.Tree.Name(focus)))
	}

	sb.WriteString("| Depth | Name | Size | Share |\n")
	sb.WriteString("|---:|---|---:|---:|\n")
	for _, n := range st.Display.Nodes() {
		if n.Depth > depth {
			continue
		}
		fmt.Fprintf(&sb, "| %d | %s | %d | %s |\n", n.Depth, escape(n.Name), n.Value, view.FormatPercentage(n.Value, total))
	}

	if len(st.Rejected) > 0 {
		list := make([]rejection, 0, len(st.Rejected))
		for _, r := range st.Rejected {
			list = append(list, rejection{Index: r.Index, Sym: r.Sym, Error: r.Err.Error()})
		}
		data, _ := json.MarshalIndent(list, "", "  ")
		fmt.Fprintf(&sb, "\n## Rejected records\n\n```json\n%s\n```\n", data)
	}
	return sb.String()
}

// Table renders breakdown rows as a markdown table. Shares are relative to
// total.
func Table(rows []view.Row, total int64) string {
	var sb strings.Builder
	sb.WriteString("| Layer | Name | Size | Share |\n")
	sb.WriteString("|---:|---|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %d | %s | %d | %s |\n", r.Layer, escape(r.Name), r.Value, view.FormatPercentage(r.Value, total))
	}
	return sb.String()
}

// escape keeps symbol names from breaking table cells.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
