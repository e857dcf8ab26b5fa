// Package selection tracks which table rows are selected and implements the
// click, shift-click, and selection-mode semantics of the table view.
package selection

import "sort"

// State is the selection over a table's row indices. The anchor is the last
// index acted upon and serves as one endpoint of a shift-click range.
type State struct {
	selected   map[int]bool
	allowMulti bool
	anchor     int
}

// New returns an empty selection with no anchor.
func New() *State {
	return &State{
		selected: make(map[int]bool),
		anchor:   -1,
	}
}

// AllowMulti reports whether multi-select mode is active.
func (s *State) AllowMulti() bool {
	return s.allowMulti
}

// SetAllowMulti switches selection mode. Leaving multi-select collapses the
// selection to a single element: the anchor if it is currently selected,
// otherwise the smallest selected index. An empty selection stays empty.
func (s *State) SetAllowMulti(allow bool) {
	s.allowMulti = allow
	if allow || len(s.selected) <= 1 {
		return
	}

	keep := s.anchor
	if !s.selected[keep] {
		keep = s.Indices()[0]
	}
	s.selected = map[int]bool{keep: true}
}

// Click toggles row i. In single-select mode all other rows are unchecked
// first, so at most one index is ever selected. Updates the anchor.
func (s *State) Click(i int) {
	if !s.allowMulti {
		was := s.selected[i]
		s.selected = make(map[int]bool)
		if !was {
			s.selected[i] = true
		}
	} else if s.selected[i] {
		delete(s.selected, i)
	} else {
		s.selected[i] = true
	}
	s.anchor = i
}

// ShiftClick selects the inclusive range between the anchor and row i when
// multi-select is active and an anchor exists; rows outside the range keep
// their state. Without an anchor (or in single-select mode) it behaves like
// a plain click. Updates the anchor.
func (s *State) ShiftClick(i int) {
	if !s.allowMulti || s.anchor < 0 {
		s.Click(i)
		return
	}

	lo, hi := s.anchor, i
	if lo > hi {
		lo, hi = hi, lo
	}
	for j := lo; j <= hi; j++ {
		s.selected[j] = true
	}
	s.anchor = i
}

// IsSelected reports whether row i is selected.
func (s *State) IsSelected(i int) bool {
	return s.selected[i]
}

// Count returns the number of selected rows.
func (s *State) Count() int {
	return len(s.selected)
}

// Indices returns the selected row indices in ascending order.
func (s *State) Indices() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Anchor returns the last index acted upon, or -1 if none.
func (s *State) Anchor() int {
	return s.anchor
}

// Clear empties the selection and resets the anchor.
func (s *State) Clear() {
	s.selected = make(map[int]bool)
	s.anchor = -1
}
