package tui

import "strings"

// Selector maintains the filter and cursor state for one fuzzy-filtered
// list: an ordered source sequence, the current filter text, the derived
// filtered view, and a bounded cursor. It performs no I/O and is only
// touched from the bubbletea update loop.
type Selector struct {
	items    []string
	filter   string
	filtered []string
	cursor   int
}

// ViewportRow is one renderable row of the visible window.
type ViewportRow struct {
	Index    int
	Item     string
	Selected bool
}

// NewSelector creates a selector over items with an empty filter.
func NewSelector(items []string) *Selector {
	s := &Selector{}
	s.SetSource(items)
	return s
}

// matchFilter returns the subsequence of items that contain every
// whitespace-separated token of filter as a case-insensitive substring.
// A blank filter matches everything in original order.
func matchFilter(filter string, items []string) []string {
	tokens := strings.Fields(strings.ToLower(filter))
	if len(tokens) == 0 {
		return append([]string(nil), items...)
	}

	var out []string
	for _, item := range items {
		lower := strings.ToLower(item)
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(lower, tok) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, item)
		}
	}
	return out
}

// SetFilter recomputes the filtered view and resets the cursor.
func (s *Selector) SetFilter(text string) {
	s.filter = text
	s.filtered = matchFilter(text, s.items)
	s.cursor = 0
}

// Filter returns the current filter text.
func (s *Selector) Filter() string {
	return s.filter
}

// SetSource replaces the source sequence, re-applies the current filter,
// and resets the cursor.
func (s *Selector) SetSource(items []string) {
	s.items = append([]string(nil), items...)
	s.filtered = matchFilter(s.filter, s.items)
	s.cursor = 0
}

// MoveUp moves the cursor one row toward the top; no-op at the boundary.
func (s *Selector) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves the cursor one row toward the bottom; no-op at the
// boundary.
func (s *Selector) MoveDown() {
	if s.cursor < len(s.filtered)-1 {
		s.cursor++
	}
}

// Selected returns the item under the cursor, or false when the filtered
// view is empty.
func (s *Selector) Selected() (string, bool) {
	if len(s.filtered) == 0 {
		return "", false
	}
	return s.filtered[s.cursor], true
}

// Cursor returns the cursor position within the filtered view.
func (s *Selector) Cursor() int {
	return s.cursor
}

// Len returns the size of the filtered view.
func (s *Selector) Len() int {
	return len(s.filtered)
}

// Total returns the size of the unfiltered source.
func (s *Selector) Total() int {
	return len(s.items)
}

// Viewport computes the contiguous window of the filtered view to render
// for the given row count, keeping the cursor vertically centered where
// possible and clamping at both ends. The result never exceeds height
// rows and all indices are valid positions in the filtered view.
func (s *Selector) Viewport(height int) []ViewportRow {
	if height <= 0 || len(s.filtered) == 0 {
		return nil
	}

	start := s.cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(s.filtered) {
		end = len(s.filtered)
		if start = end - height; start < 0 {
			start = 0
		}
	}

	rows := make([]ViewportRow, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, ViewportRow{
			Index:    i,
			Item:     s.filtered[i],
			Selected: i == s.cursor,
		})
	}
	return rows
}
