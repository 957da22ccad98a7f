package tree

// NodeID indexes a node inside its Tree.
type NodeID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Node is a single element of the symbol hierarchy. Branch nodes are path
// segments and object files; leaves are symbols.
type Node struct {
	ID       NodeID   `json:"id"`
	Name     string   `json:"name"`
	Parent   NodeID   `json:"parent"`
	Children []NodeID `json:"children,omitempty"`
	Leaf     bool     `json:"leaf"`
	Size     int64    `json:"size,omitempty"` // leaves only
	Value    int64    `json:"value"`          // subtree total, set by Accumulate
}

// Tree owns every node in one flat slice. A node's parent always has a lower
// ID than the node itself, so reverse ID order is a valid post-order.
type Tree struct {
	nodes []Node
	// index[id] maps child name to the first child of that name.
	index []map[string]NodeID
}

// New creates a tree holding only a root branch with the given label.
func New(rootLabel string) *Tree {
	t := &Tree{}
	t.add(NoParent, rootLabel, false, 0)
	return t
}

// Root returns the root ID.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Has reports whether id refers to a node of t.
func (t *Tree) Has(id NodeID) bool { return id >= 0 && int(id) < len(t.nodes) }

// Node returns a copy of the node. The Children slice is shared and must not
// be modified. It panics if id is out of range; check with Has first.
func (t *Tree) Node(id NodeID) Node { return t.nodes[id] }

// Name returns the node's name.
func (t *Tree) Name(id NodeID) string { return t.nodes[id].Name }

// Value returns the node's accumulated value.
func (t *Tree) Value(id NodeID) int64 { return t.nodes[id].Value }

// Parent returns the parent ID, NoParent for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].Parent }

// Children returns the children of id in discovery order.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].Children }

// Child looks up the first child of parent with the given name.
func (t *Tree) Child(parent NodeID, name string) (NodeID, bool) {
	if !t.Has(parent) || t.index[parent] == nil {
		return 0, false
	}
	id, ok := t.index[parent][name]
	return id, ok
}

// AddBranch appends a new branch child to parent. It does not merge with an
// existing child of the same name; use Child for that.
func (t *Tree) AddBranch(parent NodeID, name string) (NodeID, error) {
	if err := t.checkParent(parent); err != nil {
		return 0, err
	}
	return t.add(parent, name, false, 0), nil
}

// AddLeaf appends a new leaf child to parent. Sizes are stored as given;
// Build is responsible for rejecting negative ones.
func (t *Tree) AddLeaf(parent NodeID, name string, size int64) (NodeID, error) {
	if err := t.checkParent(parent); err != nil {
		return 0, err
	}
	return t.add(parent, name, true, size), nil
}

func (t *Tree) checkParent(parent NodeID) error {
	if !t.Has(parent) {
		return ErrNodeNotFound
	}
	if t.nodes[parent].Leaf {
		return ErrLeafParent
	}
	return nil
}

func (t *Tree) add(parent NodeID, name string, leaf bool, size int64) NodeID {
	id := NodeID(len(t.nodes))
	n := Node{ID: id, Name: name, Parent: parent, Leaf: leaf}
	if leaf {
		n.Size = size
		n.Value = size
	}
	t.nodes = append(t.nodes, n)
	t.index = append(t.index, nil)

	if parent != NoParent {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
		if t.index[parent] == nil {
			t.index[parent] = make(map[string]NodeID)
		}
		if _, exists := t.index[parent][name]; !exists {
			t.index[parent][name] = id
		}
	}
	return id
}

// Accumulate sets every node's Value: leaves take their size, branches the
// sum of their children. It fails on the first negative value found.
// Complexity: O(n).
func (t *Tree) Accumulate() error {
	for i := range t.nodes {
		if !t.nodes[i].Leaf {
			t.nodes[i].Value = 0
		}
	}
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if n.Leaf {
			n.Value = n.Size
		}
		if n.Value < 0 {
			return NodeError(n.ID, n.Name, ErrNegativeValue)
		}
		if n.Parent != NoParent {
			t.nodes[n.Parent].Value += n.Value
		}
	}
	return nil
}

// Depth returns the number of edges between id and the root.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for cur := t.nodes[id].Parent; cur != NoParent; cur = t.nodes[cur].Parent {
		depth++
	}
	return depth
}

// AncestorChain returns the path from the root to id, excluding the root and
// ending at id itself. Its length equals Depth(id); the root yields an empty
// chain.
func (t *Tree) AncestorChain(id NodeID) []NodeID {
	chain := make([]NodeID, t.Depth(id))
	i := len(chain) - 1
	for cur := id; t.nodes[cur].Parent != NoParent; cur = t.nodes[cur].Parent {
		chain[i] = cur
		i--
	}
	return chain
}

// IsAncestor reports whether a is a proper ancestor of id.
func (t *Tree) IsAncestor(a, id NodeID) bool {
	for cur := t.nodes[id].Parent; cur != NoParent; cur = t.nodes[cur].Parent {
		if cur == a {
			return true
		}
	}
	return false
}

// Walk visits the subtree rooted at id in pre-order, children in discovery
// order. depth is relative to id. Returning false from fn skips the node's
// children. An explicit stack keeps deep hierarchies off the call stack.
func (t *Tree) Walk(id NodeID, fn func(n Node, depth int) bool) {
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[f.id]
		if !fn(n, f.depth) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: n.Children[i], depth: f.depth + 1})
		}
	}
}

// Height returns the depth of the deepest node below id, relative to id.
func (t *Tree) Height(id NodeID) int {
	height := 0
	t.Walk(id, func(_ Node, depth int) bool {
		if depth > height {
			height = depth
		}
		return true
	})
	return height
}
