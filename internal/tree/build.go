package tree

import (
	"fmt"

	"github.com/ziadkadry99/symburst/internal/symbols"
)

// DefaultRootLabel names the root when neither an option nor the document
// provides one.
const DefaultRootLabel = "root"

// Report summarizes a Build run.
type Report struct {
	Kept     int                `json:"kept"`
	Skipped  int                `json:"skipped"` // type not selected
	Rejected []*ValidationError `json:"-"`
}

type buildConfig struct {
	rootLabel string
	strict    bool
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithRootLabel sets the root node's name.
func WithRootLabel(label string) BuildOption {
	return func(c *buildConfig) {
		if label != "" {
			c.rootLabel = label
		}
	}
}

// WithStrict makes Build fail on the first rejected record instead of
// reporting it and continuing.
func WithStrict() BuildOption {
	return func(c *buildConfig) { c.strict = true }
}

// Build turns the records whose type is in types into a hierarchy rooted at a
// synthetic root. For each kept record the path segments and object name are
// walked from the root, reusing same-named branches and creating missing
// ones, and a new leaf named after the symbol is appended. Leaves are never
// merged, so repeated symbol names under one object stay separate.
//
// Invalid records (negative size, branch/leaf name collision) are rejected
// one by one and listed in the report; the rest of the build proceeds.
// Complexity: O(total path segments).
func Build(records []symbols.Record, types symbols.TypeSet, opts ...BuildOption) (*Tree, *Report, error) {
	cfg := buildConfig{rootLabel: DefaultRootLabel}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := New(cfg.rootLabel)
	report := &Report{}

	for _, r := range records {
		if !types.Has(r.Type) {
			report.Skipped++
			continue
		}
		if err := t.insert(r.Index, r); err != nil {
			if cfg.strict {
				return nil, report, err
			}
			report.Rejected = append(report.Rejected, err)
			continue
		}
		report.Kept++
	}

	if err := t.Accumulate(); err != nil {
		return nil, report, fmt.Errorf("accumulating values: %w", err)
	}
	return t, report, nil
}

// insert validates r against the current tree and only then creates nodes,
// so a rejected record leaves the tree untouched.
func (t *Tree) insert(index int, r symbols.Record) *ValidationError {
	if r.Size < 0 {
		return recordError(index, r.Sym, ErrNegativeSize)
	}

	full := r.FullPath()

	// 1) Dry run over the existing prefix of the path.
	cur, depth := t.Root(), 0
	for _, seg := range full {
		id, ok := t.Child(cur, seg)
		if !ok {
			break
		}
		if t.nodes[id].Leaf {
			return recordError(index, r.Sym, fmt.Errorf("%w: %q is a symbol, not a container", ErrKindCollision, seg))
		}
		cur = id
		depth++
	}
	if depth == len(full) {
		if id, ok := t.Child(cur, r.Sym); ok && !t.nodes[id].Leaf {
			return recordError(index, r.Sym, fmt.Errorf("%w: %q is a container, not a symbol", ErrKindCollision, r.Sym))
		}
	}

	// 2) Create the missing branches and the leaf.
	for _, seg := range full[depth:] {
		cur = t.add(cur, seg, false, 0)
	}
	t.add(cur, r.Sym, true, r.Size)
	return nil
}

// MalformedErrors converts records the loader could not decode into
// validation errors so they can be reported next to builder rejections.
func MalformedErrors(malformed []symbols.Malformed) []*ValidationError {
	out := make([]*ValidationError, 0, len(malformed))
	for _, m := range malformed {
		out = append(out, recordError(m.Index, m.Sym, fmt.Errorf("%w: %s", ErrMalformedSize, m.Reason)))
	}
	return out
}
