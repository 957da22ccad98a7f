package viewer

import (
	"github.com/ziadkadry99/symburst/internal/symbols"
	"github.com/ziadkadry99/symburst/internal/tree"
	"github.com/ziadkadry99/symburst/internal/view"
)

// Snapshot is the JSON form of a view.State.
type Snapshot struct {
	Session     string           `json:"session"`
	Blank       bool             `json:"blank,omitempty"`
	App         string           `json:"app,omitempty"`
	Types       []symbols.Type   `json:"types,omitempty"`
	Mode        view.Mode        `json:"mode"`
	Focus       tree.NodeID      `json:"focus"`
	Total       int64            `json:"total"`
	Radius      float64          `json:"radius,omitempty"`
	Arcs        []Arc            `json:"arcs,omitempty"`
	Breadcrumbs []Crumb          `json:"breadcrumbs,omitempty"`
	Hover       *view.Hover      `json:"hover,omitempty"`
	Explanation view.Explanation `json:"explanation"`
	Rejected    []Rejection      `json:"rejected,omitempty"`
}

// Arc is one drawable segment of the chart.
type Arc struct {
	ID          tree.NodeID `json:"id"`
	Name        string      `json:"name"`
	Parent      tree.NodeID `json:"parent"`
	Leaf        bool        `json:"leaf"`
	Depth       int         `json:"depth"`
	Value       int64       `json:"value"`
	Percentage  string      `json:"percentage"`
	StartAngle  float64     `json:"start_angle"`
	EndAngle    float64     `json:"end_angle"`
	InnerRadius float64     `json:"inner_radius"`
	OuterRadius float64     `json:"outer_radius"`
	Emphasized  bool        `json:"emphasized"`
}

// Crumb names a node on a chain or zoom stack.
type Crumb struct {
	ID   tree.NodeID `json:"id"`
	Name string      `json:"name"`
}

// Rejection is a record the tree builder refused.
type Rejection struct {
	Index int    `json:"index"`
	Sym   string `json:"sym"`
	Error string `json:"error"`
}

func newSnapshot(session string, st *view.State, exp view.Explanation) Snapshot {
	total := st.Total()
	nodes := st.Display.Nodes()

	arcs := make([]Arc, 0, len(nodes))
	for _, n := range nodes {
		arcs = append(arcs, Arc{
			ID:          n.ID,
			Name:        n.Name,
			Parent:      n.Parent,
			Leaf:        n.Leaf,
			Depth:       n.Depth,
			Value:       n.Value,
			Percentage:  view.FormatPercentage(n.Value, total),
			StartAngle:  n.X,
			EndAngle:    n.X + n.DX,
			InnerRadius: n.InnerRadius(),
			OuterRadius: n.OuterRadius(),
			Emphasized:  st.Emphasized(n.ID),
		})
	}

	rejected := make([]Rejection, 0, len(st.Rejected))
	for _, r := range st.Rejected {
		rejected = append(rejected, Rejection{Index: r.Index, Sym: r.Sym, Error: r.Err.Error()})
	}

	return Snapshot{
		Session:     session,
		App:         st.App,
		Types:       st.Types.Slice(),
		Mode:        st.Mode,
		Focus:       st.Focus(),
		Total:       total,
		Radius:      st.Display.Radius(),
		Arcs:        arcs,
		Breadcrumbs: crumbs(st.Tree, st.Breadcrumbs),
		Hover:       st.Hover,
		Explanation: exp,
		Rejected:    rejected,
	}
}

func crumbs(t *tree.Tree, ids []tree.NodeID) []Crumb {
	out := make([]Crumb, 0, len(ids))
	for _, id := range ids {
		out = append(out, Crumb{ID: id, Name: t.Name(id)})
	}
	return out
}
