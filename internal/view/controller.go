package view

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/symburst/internal/layout"
	"github.com/ziadkadry99/symburst/internal/symbols"
	"github.com/ziadkadry99/symburst/internal/tree"
)

var (
	// ErrNoDocument is returned when the controller is created without input.
	ErrNoDocument = errors.New("view: no symbol document")

	// ErrNodeNotVisible is returned for nodes outside the displayed chart.
	ErrNodeNotVisible = errors.New("view: node is not visible")
)

// Controller drives the filter/zoom/hover state machine. It is not safe for
// concurrent use: callers feed it one event at a time and each event runs to
// completion. The current State is replaced wholesale on every transition.
type Controller struct {
	records    []symbols.Record
	malformed  []*tree.ValidationError
	rootLabel  string
	layoutOpts []layout.Option
	logger     *zap.Logger

	state *State
}

type options struct {
	rootLabel  string
	types      symbols.TypeSet
	layoutOpts []layout.Option
	logger     *zap.Logger
}

// Option configures a Controller.
type Option func(*options)

// WithRootLabel overrides the root label, which defaults to the document's
// app name.
func WithRootLabel(label string) Option {
	return func(o *options) { o.rootLabel = label }
}

// WithTypes sets the initial type filter. The default shows text only.
func WithTypes(types symbols.TypeSet) Option {
	return func(o *options) { o.types = types }
}

// WithLayoutOptions passes options to every layout pass.
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(o *options) { o.layoutOpts = append(o.layoutOpts, opts...) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a controller over doc and commits the initial view.
func New(doc *symbols.Document, opts ...Option) (*Controller, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	o := options{
		types:  symbols.NewTypeSet(symbols.TypeText),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	label := o.rootLabel
	if label == "" {
		label = doc.App
	}
	if label == "" {
		label = tree.DefaultRootLabel
	}

	c := &Controller{
		records:    doc.Symbols,
		malformed:  tree.MalformedErrors(doc.Malformed),
		rootLabel:  label,
		layoutOpts: o.layoutOpts,
		logger:     o.logger,
	}
	if _, err := c.OnFilterChange(o.types); err != nil {
		return nil, err
	}
	return c, nil
}

// State returns the current view.
func (c *Controller) State() *State { return c.state }

// OnFilterChange rebuilds the tree from scratch with the given types, lays it
// out and commits it. Any zoom and hover are discarded. On failure the
// previous state is kept.
func (c *Controller) OnFilterChange(types symbols.TypeSet) (*State, error) {
	t, report, err := tree.Build(c.records, types, tree.WithRootLabel(c.rootLabel))
	if err != nil {
		return nil, fmt.Errorf("building tree: %w", err)
	}
	committed, err := layout.Compute(t, t.Root(), c.layoutOpts...)
	if err != nil {
		return nil, fmt.Errorf("laying out tree: %w", err)
	}

	rejected := make([]*tree.ValidationError, 0, len(c.malformed)+len(report.Rejected))
	rejected = append(rejected, c.malformed...)
	rejected = append(rejected, report.Rejected...)
	for _, r := range report.Rejected {
		c.logger.Warn("record rejected", zap.Int("index", r.Index), zap.String("sym", r.Sym), zap.Error(r.Err))
	}

	c.state = &State{
		App:       c.rootLabel,
		Types:     types,
		Mode:      Viewing,
		Tree:      t,
		Committed: committed,
		Display:   committed,
		Report:    report,
		Rejected:  rejected,
	}
	c.logger.Debug("view committed",
		zap.String("types", types.String()),
		zap.Int("nodes", t.Len()),
		zap.Int64("total", committed.Total()),
		zap.Int("rejected", len(rejected)),
	)
	return c.state, nil
}

// OnNodeClick zooms into id: the subtree is laid out with id as root and id
// is pushed onto the breadcrumb stack. Clicking the current chart root does
// nothing.
func (c *Controller) OnNodeClick(id tree.NodeID) (*State, error) {
	cur := c.state
	if !cur.Display.Contains(id) {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotVisible, id)
	}
	if id == cur.Focus() {
		return cur, nil
	}

	display, err := layout.Compute(cur.Tree, id, c.layoutOpts...)
	if err != nil {
		return nil, fmt.Errorf("laying out zoom: %w", err)
	}

	next := cur.clone()
	next.Display = display
	next.Breadcrumbs = append(next.Breadcrumbs, id)
	next.Mode = ZoomedIn
	next.Hover = nil
	c.state = next

	c.logger.Debug("zoom", zap.Int("node", int(id)), zap.String("name", cur.Tree.Name(id)), zap.Int("depth", len(next.Breadcrumbs)))
	return next, nil
}

// OnBackgroundReset drops the whole breadcrumb stack and returns to the
// committed view. It always goes back to the root, not one level up.
func (c *Controller) OnBackgroundReset() *State {
	next := c.state.clone()
	next.Display = next.Committed
	next.Breadcrumbs = nil
	next.Mode = Viewing
	next.Hover = nil
	c.state = next
	return next
}

// OnNodeHover records the hovered node, its ancestor chain and its share of
// the committed total.
func (c *Controller) OnNodeHover(id tree.NodeID) (*State, error) {
	cur := c.state
	if !cur.Display.Contains(id) {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotVisible, id)
	}

	next := cur.clone()
	next.Hover = newHover(cur.Tree, id, cur.Total())
	c.state = next
	return next, nil
}

// OnNodeHoverEnd clears the hover so every node is fully emphasized again.
func (c *Controller) OnNodeHoverEnd() *State {
	if c.state.Hover == nil {
		return c.state
	}
	next := c.state.clone()
	next.Hover = nil
	c.state = next
	return next
}

// AncestorChain returns the root-exclusive chain ending at id.
func (c *Controller) AncestorChain(id tree.NodeID) ([]tree.NodeID, error) {
	if !c.state.Tree.Has(id) {
		return nil, fmt.Errorf("%w: %d", tree.ErrNodeNotFound, id)
	}
	return c.state.Tree.AncestorChain(id), nil
}

// Explanation returns the centre text for the current state: the hovered
// node if any, otherwise the chart root.
func (c *Controller) Explanation() Explanation {
	s := c.state
	if s.Hover != nil {
		return Explanation{
			Percentage: s.Hover.Percentage,
			Label:      s.Hover.Label,
			Size:       s.Hover.Size,
			SizeText:   fmt.Sprintf("%d byte", s.Hover.Size),
		}
	}

	focus := s.Focus()
	value := s.Display.Total()
	pct := "100%"
	if focus != s.Tree.Root() {
		pct = FormatPercentage(value, s.Total())
	}
	return Explanation{
		Percentage: pct,
		Label:      s.Tree.Name(focus),
		Size:       value,
		SizeText:   fmt.Sprintf("%d byte", value),
	}
}

// Table returns the breakdown of id: the node itself on layer 1 followed by
// its children on layer 2.
func (c *Controller) Table(id tree.NodeID) ([]Row, error) {
	t := c.state.Tree
	if !t.Has(id) {
		return nil, fmt.Errorf("%w: %d", tree.ErrNodeNotFound, id)
	}

	rows := []Row{{ID: id, Name: t.Name(id), Value: t.Value(id), Layer: 1}}
	for _, child := range t.Children(id) {
		rows = append(rows, Row{ID: child, Name: t.Name(child), Value: t.Value(child), Layer: 2})
	}
	return rows, nil
}
