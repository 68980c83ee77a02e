package tui

import "bzl/internal/bazel"

// refreshDoneMsg delivers the result of a background re-query back to
// the update loop.
type refreshDoneMsg struct {
	index bazel.Index
	err   error
}

// kindsLoadedMsg delivers the enumerated rule kinds for the kind-select
// screen.
type kindsLoadedMsg struct {
	kinds []string
	err   error
}
