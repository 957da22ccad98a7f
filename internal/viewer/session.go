// Package viewer exposes a view.Controller over HTTP and WebSocket. A Session
// serializes every event so each one runs to completion before the next.
package viewer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/symburst/internal/symbols"
	"github.com/ziadkadry99/symburst/internal/tree"
	"github.com/ziadkadry99/symburst/internal/view"
)

// ErrNoData is returned for events on a session without a symbol document.
var ErrNoData = errors.New("viewer: no symbol data loaded")

// Session owns one controller and fans its states out to subscribers.
type Session struct {
	id     string
	logger *zap.Logger
	opts   []view.Option

	mu     sync.Mutex
	ctrl   *view.Controller
	nextID int
	subs   map[int]chan Snapshot
}

// NewSession creates a session over doc. A nil doc yields a blank session
// that reports ErrNoData until Load is called.
func NewSession(doc *symbols.Document, logger *zap.Logger, opts ...view.Option) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		id:     uuid.New().String(),
		logger: logger.With(zap.String("component", "viewer")),
		opts:   opts,
		subs:   make(map[int]chan Snapshot),
	}
	if doc != nil {
		if err := s.Load(doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Load replaces the session's document and starts from its initial view.
func (s *Session) Load(doc *symbols.Document) error {
	opts := append([]view.Option{view.WithLogger(s.logger)}, s.opts...)
	ctrl, err := view.New(doc, opts...)
	if err != nil {
		return fmt.Errorf("opening view: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl = ctrl
	s.logger.Info("symbol data loaded",
		zap.String("app", doc.App),
		zap.Int("records", len(doc.Symbols)),
		zap.Int("malformed", len(doc.Malformed)),
	)
	s.publish()
	return nil
}

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Filter rebuilds the chart with the given type codes.
func (s *Session) Filter(types []string) (Snapshot, error) {
	return s.apply(func(c *view.Controller) error {
		_, err := c.OnFilterChange(symbols.ParseTypeSet(types...))
		return err
	})
}

// Click zooms into id.
func (s *Session) Click(id tree.NodeID) (Snapshot, error) {
	return s.apply(func(c *view.Controller) error {
		_, err := c.OnNodeClick(id)
		return err
	})
}

// Hover highlights the ancestor chain of id.
func (s *Session) Hover(id tree.NodeID) (Snapshot, error) {
	return s.apply(func(c *view.Controller) error {
		_, err := c.OnNodeHover(id)
		return err
	})
}

// HoverEnd clears the highlight.
func (s *Session) HoverEnd() (Snapshot, error) {
	return s.apply(func(c *view.Controller) error {
		c.OnNodeHoverEnd()
		return nil
	})
}

// Reset leaves any zoom and shows the committed chart.
func (s *Session) Reset() (Snapshot, error) {
	return s.apply(func(c *view.Controller) error {
		c.OnBackgroundReset()
		return nil
	})
}

// Table returns the two-layer breakdown of id.
func (s *Session) Table(id tree.NodeID) ([]view.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return nil, ErrNoData
	}
	return s.ctrl.Table(id)
}

// AncestorChain returns the named chain from below the root down to id.
func (s *Session) AncestorChain(id tree.NodeID) ([]Crumb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return nil, ErrNoData
	}
	chain, err := s.ctrl.AncestorChain(id)
	if err != nil {
		return nil, err
	}
	return crumbs(s.ctrl.State().Tree, chain), nil
}

// Subscribe returns a channel receiving the latest snapshot after every
// change. Slow subscribers only see the most recent one. Call cancel to stop.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) apply(event func(*view.Controller) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return s.snapshot(), ErrNoData
	}
	if err := event(s.ctrl); err != nil {
		return s.snapshot(), err
	}
	s.publish()
	return s.snapshot(), nil
}

// snapshot must be called with mu held.
func (s *Session) snapshot() Snapshot {
	if s.ctrl == nil {
		return Snapshot{Session: s.id, Blank: true}
	}
	return newSnapshot(s.id, s.ctrl.State(), s.ctrl.Explanation())
}

// publish must be called with mu held.
func (s *Session) publish() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshot()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
