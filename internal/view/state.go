package view

import (
	"fmt"

	"github.com/ziadkadry99/symburst/internal/layout"
	"github.com/ziadkadry99/symburst/internal/symbols"
	"github.com/ziadkadry99/symburst/internal/tree"
)

// Mode is the controller's interaction state.
type Mode int

const (
	// Viewing shows the committed tree without zoom.
	Viewing Mode = iota
	// ZoomedIn shows a subtree chosen by clicking.
	ZoomedIn
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case ZoomedIn:
		return "zoomed_in"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a mode name written by MarshalText.
func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "viewing":
		*m = Viewing
	case "zoomed_in":
		*m = ZoomedIn
	default:
		return fmt.Errorf("view: unknown mode %q", text)
	}
	return nil
}

// Hover describes the node under the pointer.
type Hover struct {
	Node       tree.NodeID   `json:"node"`
	Chain      []tree.NodeID `json:"chain"`
	Percentage string        `json:"percentage"`
	Label      string        `json:"label"`
	Size       int64         `json:"size"`

	emphasized map[tree.NodeID]struct{}
}

// Emphasized reports whether id stays at full emphasis while hovering:
// only members of the ancestor chain do. Descendants of the hovered node
// and unrelated siblings are faded.
func (h *Hover) Emphasized(id tree.NodeID) bool {
	_, ok := h.emphasized[id]
	return ok
}

func newHover(t *tree.Tree, id tree.NodeID, total int64) *Hover {
	chain := t.AncestorChain(id)
	h := &Hover{
		Node:       id,
		Chain:      chain,
		Percentage: FormatPercentage(t.Value(id), total),
		Label:      t.Name(id),
		Size:       t.Value(id),
		emphasized: make(map[tree.NodeID]struct{}, len(chain)),
	}
	for _, c := range chain {
		h.emphasized[c] = struct{}{}
	}
	return h
}

// State is one complete, immutable view. Every transition builds a new State;
// consumers may keep a reference without locking.
type State struct {
	App         string
	Types       symbols.TypeSet
	Mode        Mode
	Tree        *tree.Tree
	Committed   *layout.Partition // layout of the tree root
	Display     *layout.Partition // layout of the current focus
	Breadcrumbs []tree.NodeID     // zoom stack, oldest first
	Hover       *Hover
	Report      *tree.Report
	Rejected    []*tree.ValidationError
}

// Total returns the committed root's value; percentages are relative to it.
func (s *State) Total() int64 { return s.Committed.Total() }

// Focus returns the node currently laid out as the chart root.
func (s *State) Focus() tree.NodeID { return s.Display.Root() }

// Emphasized reports whether id is drawn at full emphasis.
func (s *State) Emphasized(id tree.NodeID) bool {
	if s.Hover == nil {
		return true
	}
	return s.Hover.Emphasized(id)
}

// clone returns a shallow copy whose slices can be replaced freely.
func (s *State) clone() *State {
	next := *s
	next.Breadcrumbs = append([]tree.NodeID(nil), s.Breadcrumbs...)
	return &next
}

// Explanation is the text shown in the middle of the chart.
type Explanation struct {
	Percentage string `json:"percentage"`
	Label      string `json:"label"`
	Size       int64  `json:"size"`
	SizeText   string `json:"size_text"`
}

// Row is one line of the breakdown table.
type Row struct {
	ID    tree.NodeID `json:"id"`
	Name  string      `json:"name"`
	Value int64       `json:"value"`
	Layer int         `json:"layer"`
}
