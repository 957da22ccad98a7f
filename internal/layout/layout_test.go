package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/symburst/internal/symbols"
	"github.com/ziadkadry99/symburst/internal/tree"
)

const eps = 1e-9

func buildTree(t *testing.T, records []symbols.Record) *tree.Tree {
	t.Helper()
	tr, _, err := tree.Build(records, symbols.NewTypeSet(symbols.AllTypes()...))
	require.NoError(t, err)
	return tr
}

func sampleRecords() []symbols.Record {
	return []symbols.Record{
		{Path: []string{"core"}, Obj: "kernel.o", Sym: "sched", Type: symbols.TypeText, Size: 412},
		{Path: []string{"core"}, Obj: "kernel.o", Sym: "threads", Type: symbols.TypeBSS, Size: 64},
		{Path: []string{"core"}, Obj: "msg.o", Sym: "send", Type: symbols.TypeText, Size: 230},
		{Path: []string{"drivers", "periph"}, Obj: "uart.o", Sym: "init", Type: symbols.TypeText, Size: 156},
		{Path: []string{"drivers", "periph"}, Obj: "uart.o", Sym: "cfg", Type: symbols.TypeData, Size: 24},
		{Path: []string{"app"}, Obj: "main.o", Sym: "main", Type: symbols.TypeText, Size: 40},
		{Path: []string{"app"}, Obj: "main.o", Sym: "empty", Type: symbols.TypeText, Size: 0},
	}
}

// checkPartition asserts the angular invariants for every node with children.
func checkPartition(t *testing.T, tr *tree.Tree, p *Partition) {
	t.Helper()
	for _, n := range p.Nodes() {
		children := tr.Children(n.ID)
		if len(children) == 0 {
			continue
		}
		var sum, sumValue float64
		prevEnd := n.X
		for _, c := range children {
			cp, ok := p.Get(c)
			require.True(t, ok)
			assert.InDelta(t, prevEnd, cp.X, eps, "child %q starts after previous sibling", cp.Name)
			assert.LessOrEqual(t, cp.X+cp.DX, n.X+n.DX+eps, "child %q within parent", cp.Name)
			if n.Value > 0 {
				assert.InDelta(t, float64(cp.Value)/float64(n.Value), cp.DX/n.DX, eps, "child %q proportional", cp.Name)
			}
			prevEnd = cp.X + cp.DX
			sum += cp.DX
			sumValue += float64(cp.Value)
		}
		if n.Value > 0 {
			assert.InDelta(t, n.DX, sum, eps, "children of %q fill its span", n.Name)
		}
		assert.Equal(t, float64(n.Value), sumValue, "value conservation at %q", n.Name)
	}
}

func TestComputeFullTree(t *testing.T) {
	tr := buildTree(t, sampleRecords())
	p, err := Compute(tr, tr.Root())
	require.NoError(t, err)

	assert.Equal(t, tr.Len(), p.Len())
	assert.Equal(t, int64(926), p.Total())

	root, ok := p.Get(tr.Root())
	require.True(t, ok)
	assert.Equal(t, 0.0, root.X)
	assert.Equal(t, FullCircle, root.DX)
	assert.Equal(t, tree.NoParent, root.Parent)

	checkPartition(t, tr, p)
}

func TestComputeRadialBands(t *testing.T) {
	tr := buildTree(t, sampleRecords())
	p, err := Compute(tr, tr.Root(), WithRadius(100))
	require.NoError(t, err)

	h := p.Height()
	require.Equal(t, 4, h)
	band := 100.0 * 100.0 / float64(h+1)

	byDepth := map[int]Positioned{}
	for _, n := range p.Nodes() {
		assert.InDelta(t, float64(n.Depth)*band, n.Y, eps)
		assert.InDelta(t, band, n.DY, eps)
		if prev, ok := byDepth[n.Depth]; ok {
			assert.Equal(t, prev.Y, n.Y, "same depth, same band")
		}
		byDepth[n.Depth] = n
	}

	// Strictly increasing radii with depth, equal ring areas.
	for d := 1; d <= h; d++ {
		inner, outer := byDepth[d-1], byDepth[d]
		assert.Greater(t, outer.InnerRadius(), inner.InnerRadius())
		areaPrev := math.Pi * (inner.OuterRadius()*inner.OuterRadius() - inner.InnerRadius()*inner.InnerRadius())
		area := math.Pi * (outer.OuterRadius()*outer.OuterRadius() - outer.InnerRadius()*outer.InnerRadius())
		assert.InDelta(t, areaPrev, area, 1e-6)
	}
	assert.InDelta(t, 100.0, byDepth[h].OuterRadius(), 1e-9)
}

func TestComputeZeroValue(t *testing.T) {
	records := []symbols.Record{
		{Obj: "a.o", Sym: "x", Type: symbols.TypeText, Size: 0},
		{Obj: "a.o", Sym: "y", Type: symbols.TypeText, Size: 0},
	}
	tr := buildTree(t, records)
	p, err := Compute(tr, tr.Root())
	require.NoError(t, err)

	assert.Equal(t, int64(0), p.Total())
	for _, n := range p.Nodes()[1:] {
		assert.Equal(t, 0.0, n.DX, "node %q", n.Name)
		assert.False(t, math.IsNaN(n.X))
	}
}

func TestComputeEmptyTree(t *testing.T) {
	tr := tree.New("empty")
	require.NoError(t, tr.Accumulate())

	p, err := Compute(tr, tr.Root())
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, int64(0), p.Total())
	assert.Equal(t, 0, p.Height())
}

func TestComputeReRoot(t *testing.T) {
	tr := buildTree(t, sampleRecords())
	full, err := Compute(tr, tr.Root())
	require.NoError(t, err)

	core, ok := tr.Child(tr.Root(), "core")
	require.True(t, ok)
	before, _ := full.Get(core)
	assert.Less(t, before.DX, FullCircle)

	zoomed, err := Compute(tr, core)
	require.NoError(t, err)
	assert.Equal(t, core, zoomed.Root())
	assert.Equal(t, int64(706), zoomed.Total())

	r, ok := zoomed.Get(core)
	require.True(t, ok)
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, FullCircle, r.DX)
	assert.Equal(t, 0, r.Depth)
	assert.Equal(t, 2, zoomed.Height())

	// Nodes outside the zoomed subtree are not positioned.
	app, _ := tr.Child(tr.Root(), "app")
	assert.False(t, zoomed.Contains(app))
	assert.False(t, zoomed.Contains(tr.Root()))

	checkPartition(t, tr, zoomed)

	// The full partition is untouched by the zoomed computation.
	again, _ := full.Get(core)
	assert.Equal(t, before, again)
}

func TestComputeRejectsNegativeValue(t *testing.T) {
	tr := tree.New("r")
	obj, err := tr.AddBranch(tr.Root(), "a.o")
	require.NoError(t, err)
	_, err = tr.AddLeaf(obj, "ok", 10)
	require.NoError(t, err)
	_, err = tr.AddLeaf(obj, "bad", -20)
	require.NoError(t, err)

	p, err := Compute(tr, tr.Root())
	require.Error(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, tree.ErrNegativeValue)

	var verr *tree.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bad", verr.Sym)
}

func TestComputeBadInput(t *testing.T) {
	tr := buildTree(t, sampleRecords())

	_, err := Compute(tr, tree.NodeID(tr.Len()))
	assert.ErrorIs(t, err, tree.ErrNodeNotFound)

	_, err = Compute(tr, tr.Root(), WithRadius(0))
	assert.ErrorIs(t, err, ErrBadRadius)
}

func TestHit(t *testing.T) {
	records := []symbols.Record{
		{Obj: "a.o", Sym: "x", Type: symbols.TypeText, Size: 75},
		{Obj: "b.o", Sym: "y", Type: symbols.TypeText, Size: 25},
	}
	tr := buildTree(t, records)
	p, err := Compute(tr, tr.Root(), WithRadius(90))
	require.NoError(t, err)

	// Height 2: bands of 2700 px², radii sqrt(2700)≈52 and sqrt(5400)≈73.5.
	a, _ := tr.Child(tr.Root(), "a.o")
	b, _ := tr.Child(tr.Root(), "b.o")

	id, ok := p.Hit(0.1, 60)
	require.True(t, ok)
	assert.Equal(t, a, id)

	id, ok = p.Hit(FullCircle*0.9, 60)
	require.True(t, ok)
	assert.Equal(t, b, id)

	id, ok = p.Hit(-0.1, 60)
	require.True(t, ok)
	assert.Equal(t, b, id)

	_, ok = p.Hit(0.1, 10)
	assert.False(t, ok, "root disc is not hittable")
}
