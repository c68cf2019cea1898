package bubbles

import (
	"context"
	"math"
	"sync"
	"time"
)

// DrawCard is one card in a frame's draw list, in paint order.
type DrawCard struct {
	Card     Card
	Selected bool
	// Scale is the hover/pulse factor applied to the selected card; 1.0
	// for everything else.
	Scale float64
}

// Frame is the full draw list for one redraw: grid first, then cards in
// order with the selected card last so it layers on top.
type Frame struct {
	Width    int
	Height   int
	Elapsed  time.Duration
	GridStep int
	Cards    []DrawCard
}

const (
	defaultGridStep = 40
	pulsePeriod     = 1200 * time.Millisecond
	pulseAmplitude  = 0.05
)

// Scene owns the laid-out cards, the current selection and the redraw task.
// The redraw loop is an explicit start/stop scheduled job: Start begins
// emitting frames on an interval, Stop (or context cancellation, or the card
// set becoming empty) tears it down.
type Scene struct {
	mu       sync.Mutex
	width    int
	height   int
	cards    []Card
	selected string
	started  time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScene creates a scene for the given canvas size.
func NewScene(width, height int) *Scene {
	return &Scene{width: width, height: height, started: time.Now()}
}

// SetItems lays out a fresh item sequence. A selection pointing at a vanished
// card is cleared. If the set becomes empty while running, the loop stops.
func (s *Scene) SetItems(items []Item) {
	s.mu.Lock()
	s.cards = Layout(s.width, s.height, items)
	if s.selected != "" && s.findLocked(s.selected) == nil {
		s.selected = ""
	}
	empty := len(s.cards) == 0
	s.mu.Unlock()

	if empty {
		s.Stop()
	}
}

// Resize recomputes the layout for a new canvas size.
func (s *Scene) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
	items := make([]Item, len(s.cards))
	for i, c := range s.cards {
		items[i] = c.Item
	}
	s.cards = Layout(width, height, items)
}

// Select marks a card as selected by item ID; empty clears.
func (s *Scene) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// Selected returns the selected card, or nil.
func (s *Scene) Selected() *Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(s.selected)
}

func (s *Scene) findLocked(id string) *Card {
	if id == "" {
		return nil
	}
	for i := range s.cards {
		if s.cards[i].Item.ID == id {
			c := s.cards[i]
			return &c
		}
	}
	return nil
}

// Click hit-tests a point against the cards in draw order and updates the
// selection: the first containing card wins, a miss clears the selection.
// Returns the newly selected card, or nil on a miss.
func (s *Scene) Click(x, y float64) *Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, dc := range s.drawOrderLocked() {
		if dc.Card.Contains(x, y) {
			s.selected = dc.Card.Item.ID
			c := dc.Card
			return &c
		}
	}
	s.selected = ""
	return nil
}

// drawOrderLocked returns cards in paint order: unselected in input order,
// the selected card last.
func (s *Scene) drawOrderLocked() []DrawCard {
	out := make([]DrawCard, 0, len(s.cards))
	var sel *Card
	for i := range s.cards {
		if s.cards[i].Item.ID == s.selected && s.selected != "" {
			c := s.cards[i]
			sel = &c
			continue
		}
		out = append(out, DrawCard{Card: s.cards[i], Scale: 1.0})
	}
	if sel != nil {
		out = append(out, DrawCard{Card: *sel, Selected: true, Scale: 1.0})
	}
	return out
}

// FrameAt builds the draw list for a given elapsed time. The pulse animation
// is a pure function of elapsed time, applied to the selected card only.
func (s *Scene) FrameAt(elapsed time.Duration) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.drawOrderLocked()
	for i := range cards {
		if cards[i].Selected {
			phase := 2 * math.Pi * float64(elapsed%pulsePeriod) / float64(pulsePeriod)
			cards[i].Scale = 1.0 + pulseAmplitude*math.Sin(phase)
		}
	}
	return Frame{
		Width:    s.width,
		Height:   s.height,
		Elapsed:  elapsed,
		GridStep: defaultGridStep,
		Cards:    cards,
	}
}

// Start launches the redraw loop, invoking render with a fresh frame on every
// tick until Stop is called, ctx is canceled, or the card set becomes empty.
// Starting an already-running scene is a no-op.
func (s *Scene) Start(ctx context.Context, interval time.Duration, render func(Frame)) {
	s.mu.Lock()
	if s.cancel != nil || len(s.cards) == 0 {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = time.Now()
	done := s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.mu.Lock()
				empty := len(s.cards) == 0
				started := s.started
				s.mu.Unlock()
				if empty {
					return
				}
				render(s.FrameAt(now.Sub(started)))
			}
		}
	}()
}

// Stop tears the redraw loop down and waits for the last frame to finish.
func (s *Scene) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
