package pane

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireValid(t *testing.T, s *Selection) {
	t.Helper()
	if s.Count() == 0 {
		require.Equal(t, -1, s.Cursor())
		require.Empty(t, s.Selected())
		_, ok := s.Anchor()
		require.False(t, ok)
		return
	}
	require.GreaterOrEqual(t, s.Cursor(), 0)
	require.Less(t, s.Cursor(), s.Count())
	for _, i := range s.Selected() {
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, s.Count())
	}
	if a, ok := s.Anchor(); ok {
		require.GreaterOrEqual(t, a, 0)
		require.Less(t, a, s.Count())
	}
}

func TestSelectionRandomSequencesStayValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	directions := []Direction{DirectionNone, DirectionUp, DirectionDown}

	for round := 0; round < 200; round++ {
		count := 1 + rng.Intn(20)
		s := NewSelection(count)
		for step := 0; step < 50; step++ {
			switch rng.Intn(10) {
			case 0:
				s.Reset(count)
			case 1:
				s.SelectSingle(rng.Intn(count+4) - 2)
			case 2:
				count = rng.Intn(20)
				s.Resize(count)
			default:
				s.Apply(Move{
					Index:     rng.Intn(count+4) - 2,
					Extend:    rng.Intn(2) == 0,
					Additive:  rng.Intn(2) == 0,
					Direction: directions[rng.Intn(len(directions))],
				})
			}
			requireValid(t, s)
		}
	}
}

func TestSelectionSelectSingle(t *testing.T) {
	s := NewSelection(10)
	for _, i := range []int{0, 3, 9} {
		s.Apply(Move{Index: 7, Extend: true, Additive: true, Direction: DirectionDown})
		s.SelectSingle(i)
		require.Equal(t, []int{i}, s.Selected())
		require.Equal(t, i, s.Cursor())
		a, ok := s.Anchor()
		require.True(t, ok)
		require.Equal(t, i, a)
		require.Equal(t, DirectionNone, s.LastDirection())
	}
}

func TestSelectionRangeIsSymmetric(t *testing.T) {
	for a := 0; a < 6; a++ {
		for b := 0; b < 6; b++ {
			s := NewSelection(6)
			s.SelectSingle(a)
			s.Apply(Move{Index: b, Extend: true, Direction: DirectionDown})

			lo, hi := min(a, b), max(a, b)
			var want []int
			for i := lo; i <= hi; i++ {
				want = append(want, i)
			}
			require.Equal(t, want, s.Selected(), "anchor %d target %d", a, b)
			require.Equal(t, b, s.Cursor())
			anchor, _ := s.Anchor()
			require.Equal(t, a, anchor)
		}
	}
}

func TestSelectionExtendReplacesPreviousRange(t *testing.T) {
	s := NewSelection(8)
	s.SelectSingle(4)
	s.Apply(Move{Index: 7, Extend: true, Direction: DirectionDown})
	s.Apply(Move{Index: 2, Extend: true, Direction: DirectionUp})
	require.Equal(t, []int{2, 3, 4}, s.Selected())
}

func TestSelectionAdditiveReversalResetsAnchorToCursor(t *testing.T) {
	s := NewSelection(10)
	s.SelectSingle(5)

	s.Apply(Move{Index: 6, Extend: true, Additive: true, Direction: DirectionDown})
	require.Equal(t, []int{5, 6}, s.Selected())

	s.Apply(Move{Index: 4, Extend: true, Additive: true, Direction: DirectionUp})
	anchor, _ := s.Anchor()
	require.Equal(t, 6, anchor)
	require.Equal(t, 4, s.Cursor())
	require.Equal(t, []int{4, 5, 6}, s.Selected())
	require.Equal(t, DirectionUp, s.LastDirection())
}

func TestSelectionAdditiveJumpFillsFromCursor(t *testing.T) {
	s := NewSelection(10)
	s.SelectSingle(1)
	s.Apply(Move{Index: 2, Extend: true, Additive: true, Direction: DirectionDown})

	// A direction change re-anchors at the cursor, so the jump fills 2..6.
	s.Apply(Move{Index: 6, Extend: true, Additive: true, Direction: DirectionNone})
	s.Apply(Move{Index: 7, Extend: true, Additive: true, Direction: DirectionDown})

	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, s.Selected())
}

func TestSelectionAdditiveSameDirectionKeepsAnchor(t *testing.T) {
	s := NewSelection(10)
	s.SelectSingle(2)
	s.Apply(Move{Index: 3, Extend: true, Additive: true, Direction: DirectionDown})
	s.Apply(Move{Index: 4, Extend: true, Additive: true, Direction: DirectionDown})

	anchor, _ := s.Anchor()
	require.Equal(t, 2, anchor)
	require.Equal(t, []int{2, 3, 4}, s.Selected())
}

func TestSelectionClampsOutOfRange(t *testing.T) {
	s := NewSelection(3)
	s.Apply(Move{Index: 10})
	require.Equal(t, 2, s.Cursor())
	s.Apply(Move{Index: -4, Extend: true, Direction: DirectionUp})
	require.Equal(t, 0, s.Cursor())
	require.Equal(t, []int{0, 1, 2}, s.Selected())
}

func TestSelectionEmptyIgnoresMoves(t *testing.T) {
	s := NewSelection(0)
	s.Apply(Move{Index: 0})
	s.SelectSingle(3)
	requireValid(t, s)
	require.Equal(t, -1, s.Cursor())
}

func TestSelectionReset(t *testing.T) {
	s := NewSelection(5)
	s.Apply(Move{Index: 3, Extend: true, Direction: DirectionDown})
	s.Reset(5)
	require.Empty(t, s.Selected())
	require.Equal(t, 0, s.Cursor())
	anchor, ok := s.Anchor()
	require.True(t, ok)
	require.Equal(t, 0, anchor)

	s.Reset(0)
	requireValid(t, s)
}

func TestSelectionResizeDropsStaleIndices(t *testing.T) {
	s := NewSelection(6)
	s.SelectSingle(1)
	s.Apply(Move{Index: 5, Extend: true, Direction: DirectionDown})
	s.Resize(3)
	require.Equal(t, []int{1, 2}, s.Selected())
	require.Equal(t, 2, s.Cursor())
	requireValid(t, s)
}
