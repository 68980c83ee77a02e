package tui

import (
	"sort"

	"bzl/internal/bazel"
)

// verbs the user can cycle through with ctrl+v.
var verbs = []string{"build", "run", "test"}

// Session holds the state shared by every screen: the active verb, the
// selected rule kinds, and the current target index. Kind changes are
// reported through an explicit callback so the CLI can persist them.
type Session struct {
	Scope string
	Verb  string
	Kinds []string
	Index bazel.Index

	onKindsChange func([]string)
}

// NewSession builds the shared session state. onKindsChange may be nil.
func NewSession(scope, verb string, kinds []string, idx bazel.Index, onKindsChange func([]string)) *Session {
	if verb == "" {
		verb = "build"
	}
	if len(kinds) == 0 {
		kinds = []string{"genrule"}
	}
	return &Session{
		Scope:         scope,
		Verb:          verb,
		Kinds:         kinds,
		Index:         idx,
		onKindsChange: onKindsChange,
	}
}

// CycleVerb advances build → run → test → build.
func (s *Session) CycleVerb() {
	for i, v := range verbs {
		if v == s.Verb {
			s.Verb = verbs[(i+1)%len(verbs)]
			return
		}
	}
	s.Verb = verbs[0]
}

// SetIndex swaps in a freshly discovered index. The old index is
// replaced wholesale, never mutated.
func (s *Session) SetIndex(idx bazel.Index) {
	s.Index = idx
}

// SetKinds replaces the selected kinds and reports whether the set
// actually changed; the change callback fires only on a real change.
func (s *Session) SetKinds(kinds []string) bool {
	if sameKindSet(s.Kinds, kinds) {
		return false
	}
	s.Kinds = kinds
	if s.onKindsChange != nil {
		s.onKindsChange(kinds)
	}
	return true
}

func sameKindSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
