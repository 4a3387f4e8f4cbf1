package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedCard(id string) Scorecard {
	return Scorecard{Candidate: Candidate{PersonnelID: id}, Strong: true}
}

func TestCursor_StartsAtFront(t *testing.T) {
	c := NewCursor()
	assert.Equal(t, Front, c.Position())
}

func TestCursor_AdvanceToggles(t *testing.T) {
	c := NewCursor()
	c.Advance()
	assert.Equal(t, Back, c.Position())
	c.Advance()
	assert.Equal(t, Front, c.Position())
}

func TestCursor_DrawFromFront(t *testing.T) {
	pool := NewPool([]Scorecard{namedCard("a"), namedCard("b"), namedCard("c")})
	c := NewCursor()

	card, ok, err := c.Draw(pool, func(Scorecard) bool { return true })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", card.Candidate.PersonnelID)
	assert.Equal(t, 2, pool.Len())
}

func TestCursor_DrawFromBack(t *testing.T) {
	pool := NewPool([]Scorecard{namedCard("a"), namedCard("b"), namedCard("c")})
	c := NewCursor()
	c.Advance()

	card, ok, err := c.Draw(pool, func(Scorecard) bool { return true })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c", card.Candidate.PersonnelID)
	assert.Equal(t, 2, pool.Len())
}

func TestCursor_DrawRespectsFilter(t *testing.T) {
	pool := NewPool([]Scorecard{namedCard("a"), namedCard("b"), namedCard("c")})
	c := NewCursor()

	card, ok, err := c.Draw(pool, func(sc Scorecard) bool {
		return sc.Candidate.PersonnelID == "b"
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", card.Candidate.PersonnelID)
}

func TestCursor_DrawEmptyPool(t *testing.T) {
	pool := NewPool(nil)
	c := NewCursor()

	_, ok, err := c.Draw(pool, func(Scorecard) bool { return true })
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCursor_DrawNoMatch(t *testing.T) {
	pool := NewPool([]Scorecard{namedCard("a")})
	c := NewCursor()

	_, ok, err := c.Draw(pool, func(Scorecard) bool { return false })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, pool.Len())
}

func TestCursor_InvalidPositionIsFatal(t *testing.T) {
	c := &Cursor{pos: CursorPosition(7)}
	pool := NewPool([]Scorecard{namedCard("a")})

	_, _, err := c.Draw(pool, func(Scorecard) bool { return true })
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
}
