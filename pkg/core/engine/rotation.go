package engine

import "fmt"

// CursorPosition is the end of the candidate list the cursor draws from
type CursorPosition int

const (
	Front CursorPosition = iota
	Back
)

// Cursor is the two-state fairness pointer. It alternates between the
// front and the back of the scored candidate list once per mission
// processed, spreading selection bias across a run.
type Cursor struct {
	pos CursorPosition
}

// NewCursor returns a cursor at the front position
func NewCursor() *Cursor {
	return &Cursor{pos: Front}
}

// Position returns the current cursor position
func (c *Cursor) Position() CursorPosition {
	return c.pos
}

// Advance toggles the cursor between front and back. Called exactly
// once per mission fully processed, not per date.
func (c *Cursor) Advance() {
	switch c.pos {
	case Front:
		c.pos = Back
	case Back:
		c.pos = Front
	}
}

// Draw removes and returns the first (front) or last (back) pool entry
// matching the filter. The second return is false when no entry
// matches. An unrecognized cursor position is a fatal configuration
// error, not a recoverable condition.
func (c *Cursor) Draw(pool *Pool, match func(Scorecard) bool) (Scorecard, bool, error) {
	switch c.pos {
	case Front:
		for i := 0; i < pool.Len(); i++ {
			if match(pool.cards[i]) {
				return pool.removeAt(i), true, nil
			}
		}
	case Back:
		for i := pool.Len() - 1; i >= 0; i-- {
			if match(pool.cards[i]) {
				return pool.removeAt(i), true, nil
			}
		}
	default:
		return Scorecard{}, false, &InvalidStateError{
			Detail: fmt.Sprintf("unknown cursor position %d", c.pos),
		}
	}
	return Scorecard{}, false, nil
}

// Pool is an ordered list of scored candidates awaiting allocation.
// Entries are removed as they are drawn, whether or not the draw leads
// to a commit.
type Pool struct {
	cards []Scorecard
}

// NewPool builds a pool preserving the given order
func NewPool(cards []Scorecard) *Pool {
	return &Pool{cards: append([]Scorecard(nil), cards...)}
}

// Len returns the number of candidates left in the pool
func (p *Pool) Len() int {
	return len(p.cards)
}

func (p *Pool) removeAt(i int) Scorecard {
	card := p.cards[i]
	p.cards = append(p.cards[:i], p.cards[i+1:]...)
	return card
}
