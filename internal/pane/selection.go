package pane

import "sort"

// Move is the single selection mutator driven by navigation keys.
type Move struct {
	Index     int
	Extend    bool
	Additive  bool
	Direction Direction
}

// Selection tracks the cursor, the range anchor and the selected set of one
// pane. Every index it holds is valid for the item count it was last given;
// with zero items it holds nothing.
type Selection struct {
	count         int
	cursor        int
	anchor        int
	hasAnchor     bool
	selected      map[int]struct{}
	lastDirection Direction
}

// NewSelection returns a selection over count items, reset to the first one.
func NewSelection(count int) *Selection {
	s := &Selection{selected: make(map[int]struct{})}
	s.Reset(count)
	return s
}

// Reset clears the selected set and puts cursor and anchor on index 0 when
// there are items.
func (s *Selection) Reset(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	clear(s.selected)
	s.lastDirection = DirectionNone
	if count == 0 {
		s.cursor = 0
		s.hasAnchor = false
		return
	}
	s.cursor = 0
	s.anchor = 0
	s.hasAnchor = true
}

// SelectSingle selects exactly index and moves cursor and anchor there.
func (s *Selection) SelectSingle(index int) {
	s.Apply(Move{Index: index})
}

// Apply moves the cursor to m.Index and updates the selected set:
//   - plain move: selected = {index}, anchor = index
//   - extend: selected = [anchor..index], anchor unchanged
//   - extend+additive: when the direction differs from the previous move the
//     anchor is first reset to the cursor, then [anchor..index] is added
//
// Out-of-range indices are clamped; with no items Apply does nothing.
func (s *Selection) Apply(m Move) {
	if s.count == 0 {
		return
	}
	index := clampIndex(m.Index, s.count)
	prevDirection := s.lastDirection
	s.lastDirection = m.Direction

	if !m.Extend {
		clear(s.selected)
		s.selected[index] = struct{}{}
		s.cursor = index
		s.anchor = index
		s.hasAnchor = true
		return
	}

	if m.Additive && m.Direction != prevDirection {
		s.anchor = s.cursor
		s.hasAnchor = true
	}

	anchor := s.cursor
	if s.hasAnchor {
		anchor = s.anchor
	}
	lo, hi := anchor, index
	if lo > hi {
		lo, hi = hi, lo
	}

	if !m.Additive {
		clear(s.selected)
	}
	for i := lo; i <= hi; i++ {
		s.selected[i] = struct{}{}
	}
	s.cursor = index
	s.anchor = anchor
	s.hasAnchor = true
}

// Clear drops everything; used when the listing becomes empty.
func (s *Selection) Clear() {
	s.Reset(0)
}

// Resize adapts the selection to a new item count, dropping indices that no
// longer exist and clamping cursor and anchor.
func (s *Selection) Resize(count int) {
	if count <= 0 {
		s.Reset(0)
		return
	}
	s.count = count
	for i := range s.selected {
		if i >= count {
			delete(s.selected, i)
		}
	}
	s.cursor = clampIndex(s.cursor, count)
	if s.hasAnchor {
		s.anchor = clampIndex(s.anchor, count)
	}
}

// Count returns the number of items the selection spans.
func (s *Selection) Count() int {
	return s.count
}

// Cursor returns the cursor index, or -1 when there are no items.
func (s *Selection) Cursor() int {
	if s.count == 0 {
		return -1
	}
	return s.cursor
}

// Anchor returns the anchor index and whether one is set.
func (s *Selection) Anchor() (int, bool) {
	if s.count == 0 || !s.hasAnchor {
		return 0, false
	}
	return s.anchor, true
}

// LastDirection returns the direction of the most recent move.
func (s *Selection) LastDirection() Direction {
	return s.lastDirection
}

// Selected returns the selected indices in ascending order.
func (s *Selection) Selected() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// IsSelected reports whether index is selected.
func (s *Selection) IsSelected(index int) bool {
	_, ok := s.selected[index]
	return ok
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
