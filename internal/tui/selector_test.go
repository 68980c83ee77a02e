package tui

import (
	"reflect"
	"testing"
)

func filteredItems(s *Selector) []string {
	rows := s.Viewport(s.Len())
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Item)
	}
	return out
}

func TestSetFilterSubstringAnd(t *testing.T) {
	s := NewSelector([]string{"alpha_target", "beta_target", "alpha_other"})

	s.SetFilter("alpha")
	if got := filteredItems(s); !reflect.DeepEqual(got, []string{"alpha_target", "alpha_other"}) {
		t.Fatalf("expected alpha matches, got %v", got)
	}
	if s.Cursor() != 0 {
		t.Errorf("expected cursor reset to 0, got %d", s.Cursor())
	}

	s.MoveDown()
	if s.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", s.Cursor())
	}
	s.MoveDown()
	if s.Cursor() != 1 {
		t.Errorf("cursor must clamp at the end, got %d", s.Cursor())
	}
}

func TestSetFilterMultipleTokens(t *testing.T) {
	s := NewSelector([]string{"gen_swagger_client", "gen_proto", "swagger_docs"})

	// AND semantics: every token must match.
	s.SetFilter("gen swagger")
	if got := filteredItems(s); !reflect.DeepEqual(got, []string{"gen_swagger_client"}) {
		t.Fatalf("expected AND match, got %v", got)
	}
}

func TestSetFilterCaseInsensitive(t *testing.T) {
	s := NewSelector([]string{"Alpha", "BETA"})
	s.SetFilter("alpha")
	if got := filteredItems(s); !reflect.DeepEqual(got, []string{"Alpha"}) {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
	s.SetFilter("beta")
	if got := filteredItems(s); !reflect.DeepEqual(got, []string{"BETA"}) {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
}

func TestSetFilterBlankMatchesAll(t *testing.T) {
	items := []string{"c", "a", "b"}
	s := NewSelector(items)

	for _, filter := range []string{"", "   "} {
		s.SetFilter(filter)
		if got := filteredItems(s); !reflect.DeepEqual(got, items) {
			t.Fatalf("filter %q: expected original order %v, got %v", filter, items, got)
		}
	}
}

func TestMoveClampsAtBoundaries(t *testing.T) {
	s := NewSelector([]string{"a", "b"})
	s.MoveUp()
	if s.Cursor() != 0 {
		t.Errorf("expected no-op MoveUp at top, got %d", s.Cursor())
	}
	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	if s.Cursor() != 1 {
		t.Errorf("expected cursor clamped to 1, got %d", s.Cursor())
	}
}

func TestSelectedEmpty(t *testing.T) {
	s := NewSelector(nil)
	if _, ok := s.Selected(); ok {
		t.Error("expected no selection on empty source")
	}
	s = NewSelector([]string{"x"})
	s.SetFilter("zzz")
	if _, ok := s.Selected(); ok {
		t.Error("expected no selection when filter matches nothing")
	}
}

func TestSetSourceReappliesFilter(t *testing.T) {
	s := NewSelector([]string{"alpha", "beta"})
	s.SetFilter("al")
	s.SetSource([]string{"algol", "basic", "altair"})

	if got := filteredItems(s); !reflect.DeepEqual(got, []string{"algol", "altair"}) {
		t.Fatalf("expected filter re-applied to new source, got %v", got)
	}
	if s.Cursor() != 0 {
		t.Errorf("expected cursor reset on new source, got %d", s.Cursor())
	}
	if s.Total() != 3 {
		t.Errorf("expected total 3, got %d", s.Total())
	}
}

func TestViewportFitsEntireList(t *testing.T) {
	s := NewSelector([]string{"a", "b", "c"})
	rows := s.Viewport(10)
	if len(rows) != 3 {
		t.Fatalf("expected whole list, got %d rows", len(rows))
	}
	if !rows[0].Selected || rows[1].Selected {
		t.Error("expected only the cursor row selected")
	}
}

func TestViewportCentersCursor(t *testing.T) {
	items := make([]string, 100)
	for i := range items {
		items[i] = string(rune('a'+i%26)) + "_item"
	}
	s := NewSelector(items)
	for i := 0; i < 50; i++ {
		s.MoveDown()
	}

	rows := s.Viewport(11)
	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}
	if rows[0].Index != 45 {
		t.Errorf("expected window starting at 45, got %d", rows[0].Index)
	}
	mid := rows[len(rows)/2]
	if mid.Index != 50 || !mid.Selected {
		t.Errorf("expected cursor centered at row 50, got %d", mid.Index)
	}
}

func TestViewportClampsAtEnds(t *testing.T) {
	items := make([]string, 20)
	for i := range items {
		items[i] = "item"
	}
	s := NewSelector(items)

	// Top: window pinned to the start.
	rows := s.Viewport(7)
	if rows[0].Index != 0 || rows[len(rows)-1].Index != 6 {
		t.Fatalf("expected window [0,6], got [%d,%d]", rows[0].Index, rows[len(rows)-1].Index)
	}

	// Bottom: window pinned to the end, still full height.
	for i := 0; i < 19; i++ {
		s.MoveDown()
	}
	rows = s.Viewport(7)
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}
	if rows[0].Index != 13 || rows[len(rows)-1].Index != 19 {
		t.Fatalf("expected window [13,19], got [%d,%d]", rows[0].Index, rows[len(rows)-1].Index)
	}
}

func TestViewportStable(t *testing.T) {
	items := make([]string, 40)
	for i := range items {
		items[i] = "row"
	}
	s := NewSelector(items)
	for i := 0; i < 17; i++ {
		s.MoveDown()
	}

	first := s.Viewport(9)
	second := s.Viewport(9)
	if !reflect.DeepEqual(first, second) {
		t.Error("same cursor and height must yield the same window")
	}
}

func TestViewportNeverOutOfRange(t *testing.T) {
	s := NewSelector([]string{"a", "b", "c"})
	for _, height := range []int{0, 1, 2, 3, 50} {
		for _, r := range s.Viewport(height) {
			if r.Index < 0 || r.Index >= s.Len() {
				t.Fatalf("height %d: index %d out of range", height, r.Index)
			}
		}
	}
	if s.Viewport(0) != nil {
		t.Error("expected nil viewport for zero height")
	}
}
