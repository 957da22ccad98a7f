package layout

import (
	"errors"
	"math"

	"github.com/ziadkadry99/symburst/internal/tree"
)

// DefaultRadius is the outer chart radius in pixels.
const DefaultRadius = 450.0

// FullCircle is the angular span of the partition root.
const FullCircle = 2 * math.Pi

// ErrBadRadius is returned for a non-positive radius.
var ErrBadRadius = errors.New("layout: radius must be positive")

// Positioned is a tree node annotated with its place in the partition.
type Positioned struct {
	ID     tree.NodeID `json:"id"`
	Name   string      `json:"name"`
	Parent tree.NodeID `json:"parent"` // NoParent for the partition root
	Leaf   bool        `json:"leaf"`
	Depth  int         `json:"depth"` // relative to the partition root
	Value  int64       `json:"value"`
	X      float64     `json:"x"`
	DX     float64     `json:"dx"`
	Y      float64     `json:"y"`
	DY     float64     `json:"dy"`
}

// InnerRadius returns the inner display radius of the node's ring segment.
func (p Positioned) InnerRadius() float64 { return math.Sqrt(p.Y) }

// OuterRadius returns the outer display radius of the node's ring segment.
func (p Positioned) OuterRadius() float64 { return math.Sqrt(p.Y + p.DY) }

// Partition is the positioned form of one subtree.
type Partition struct {
	root   tree.NodeID
	radius float64
	height int
	nodes  []Positioned // pre-order
	pos    map[tree.NodeID]int
}

type config struct {
	radius float64
}

// Option configures Compute.
type Option func(*config)

// WithRadius sets the outer chart radius.
func WithRadius(r float64) Option {
	return func(c *config) { c.radius = r }
}

// Compute lays out the subtree of t rooted at root. The root gets the full
// circle and depth 0 whatever its position in t.
//
// Three passes run over the subtree: values bottom-up, angular spans and
// radial bands top-down. A negative value anywhere aborts the layout with a
// *tree.ValidationError wrapping tree.ErrNegativeValue.
// Complexity: O(n) in the subtree size.
func Compute(t *tree.Tree, root tree.NodeID, opts ...Option) (*Partition, error) {
	cfg := config{radius: DefaultRadius}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.radius <= 0 || math.IsNaN(cfg.radius) || math.IsInf(cfg.radius, 0) {
		return nil, ErrBadRadius
	}
	if t == nil || !t.Has(root) {
		return nil, tree.ErrNodeNotFound
	}

	p := &Partition{
		root:   root,
		radius: cfg.radius,
		pos:    make(map[tree.NodeID]int),
	}

	// 1) Flatten the subtree in pre-order; parents precede their children.
	parentPos := []int{}
	t.Walk(root, func(n tree.Node, depth int) bool {
		parent := tree.NoParent
		pp := -1
		if depth > 0 {
			parent = n.Parent
			pp = p.pos[parent]
		}
		p.pos[n.ID] = len(p.nodes)
		p.nodes = append(p.nodes, Positioned{
			ID:     n.ID,
			Name:   n.Name,
			Parent: parent,
			Leaf:   n.Leaf,
			Depth:  depth,
			Value:  n.Size,
		})
		parentPos = append(parentPos, pp)
		if depth > p.height {
			p.height = depth
		}
		return true
	})

	// 2) Values: reverse pre-order visits children before their parent.
	for i := range p.nodes {
		if !p.nodes[i].Leaf {
			p.nodes[i].Value = 0
		}
	}
	for i := len(p.nodes) - 1; i >= 0; i-- {
		n := &p.nodes[i]
		if n.Value < 0 {
			return nil, tree.NodeError(n.ID, n.Name, tree.ErrNegativeValue)
		}
		if parentPos[i] >= 0 {
			p.nodes[parentPos[i]].Value += n.Value
		}
	}

	// 3) Angular spans and radial bands, top-down.
	band := cfg.radius * cfg.radius / float64(p.height+1)
	p.nodes[0].X, p.nodes[0].DX = 0, FullCircle
	for i := range p.nodes {
		n := &p.nodes[i]
		n.Y = float64(n.Depth) * band
		n.DY = band
		p.spanChildren(t, *n)
	}

	return p, nil
}

// spanChildren splits parent's span among its children. Offsets come from
// integer prefix sums so the last child ends exactly where the parent ends.
// A zero-valued parent gives every child a zero-width span at its start.
func (p *Partition) spanChildren(t *tree.Tree, parent Positioned) {
	children := t.Children(parent.ID)
	if len(children) == 0 {
		return
	}

	total := float64(parent.Value)
	var cum int64
	for _, c := range children {
		child := &p.nodes[p.pos[c]]
		if parent.Value == 0 {
			child.X, child.DX = parent.X, 0
			continue
		}
		start := parent.X + parent.DX*float64(cum)/total
		cum += child.Value
		end := parent.X + parent.DX*float64(cum)/total
		child.X, child.DX = start, end-start
	}
}

// Root returns the ID of the node laid out as the partition root.
func (p *Partition) Root() tree.NodeID { return p.root }

// Total returns the partition root's value.
func (p *Partition) Total() int64 { return p.nodes[0].Value }

// Radius returns the outer chart radius.
func (p *Partition) Radius() float64 { return p.radius }

// Height returns the depth of the deepest node relative to the root.
func (p *Partition) Height() int { return p.height }

// Len returns the number of positioned nodes.
func (p *Partition) Len() int { return len(p.nodes) }

// Contains reports whether id is part of the partition.
func (p *Partition) Contains(id tree.NodeID) bool {
	_, ok := p.pos[id]
	return ok
}

// Get returns the positioned node for id.
func (p *Partition) Get(id tree.NodeID) (Positioned, bool) {
	i, ok := p.pos[id]
	if !ok {
		return Positioned{}, false
	}
	return p.nodes[i], true
}

// Nodes returns a copy of all positioned nodes in pre-order.
func (p *Partition) Nodes() []Positioned {
	out := make([]Positioned, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Hit returns the visible node drawn at the given polar coordinates, angle in
// radians clockwise from 12 o'clock and r in pixels. The root disc is not
// drawn and never hit.
func (p *Partition) Hit(angle, r float64) (tree.NodeID, bool) {
	angle = math.Mod(angle, FullCircle)
	if angle < 0 {
		angle += FullCircle
	}
	r2 := r * r
	for _, n := range p.nodes[1:] {
		if n.DX == 0 {
			continue
		}
		if angle >= n.X && angle < n.X+n.DX && r2 >= n.Y && r2 < n.Y+n.DY {
			return n.ID, true
		}
	}
	return 0, false
}
