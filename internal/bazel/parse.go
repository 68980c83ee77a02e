package bazel

import (
	"sort"
	"strings"
)

// Index maps a Bazel package path to the sorted names of the rules
// discovered inside it. An Index is built once per query and replaced
// wholesale on refresh, never mutated in place.
type Index map[string][]string

// ParseQueryOutput converts raw bazel query output into an Index. Each
// significant line looks like //services/alerts:generate_swagger_client.
// Lines that are empty after trimming, do not start with //, or carry no
// colon are dropped silently; bazel mixes warnings into stdout and this
// is best-effort text parsing. The split happens on the last colon so
// the target name never contains one.
func ParseQueryOutput(raw string) Index {
	targets := map[string]map[string]struct{}{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "//") {
			continue
		}
		sep := strings.LastIndex(line, ":")
		if sep < 0 {
			continue
		}
		pkg, name := line[:sep], line[sep+1:]
		if pkg == "" || name == "" {
			continue
		}
		if targets[pkg] == nil {
			targets[pkg] = map[string]struct{}{}
		}
		targets[pkg][name] = struct{}{}
	}

	idx := make(Index, len(targets))
	for pkg, names := range targets {
		sorted := make([]string, 0, len(names))
		for name := range names {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)
		idx[pkg] = sorted
	}
	return idx
}

// ParseKindsOutput extracts the set of rule kinds from label_kind query
// output. Each line is "<kind> rule <label>"; the first whitespace token
// is the kind and lines without whitespace are skipped.
func ParseKindsOutput(raw string) []string {
	seen := map[string]struct{}{}
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		seen[fields[0]] = struct{}{}
	}

	kinds := make([]string, 0, len(seen))
	for kind := range seen {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Packages returns the package paths in lexical order.
func (idx Index) Packages() []string {
	pkgs := make([]string, 0, len(idx))
	for pkg := range idx {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	return pkgs
}

// Targets returns the rule names for a package, nil when the package is
// unknown.
func (idx Index) Targets(pkg string) []string {
	return idx[pkg]
}

// Len returns the total number of targets across all packages.
func (idx Index) Len() int {
	n := 0
	for _, names := range idx {
		n += len(names)
	}
	return n
}

// Empty reports whether the index holds no targets at all.
func (idx Index) Empty() bool {
	return len(idx) == 0
}
