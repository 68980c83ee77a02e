package bazel

import (
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Endpoint identifies a remote build host and the workspace directory on
// it. A nil or zero Endpoint means bazel runs in the local working
// directory.
type Endpoint struct {
	Host string
	Dir  string
}

// NewEndpoint builds an Endpoint for the given ssh host. When dir is
// empty the remote directory mirrors the local working directory, which
// is the common layout for synced checkouts.
func NewEndpoint(host, dir string) Endpoint {
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		}
	}
	return Endpoint{Host: host, Dir: dir}
}

// Label returns the short badge text shown for this endpoint.
func (e Endpoint) Label() string {
	return "ssh: " + e.Host
}

// kindExpr joins rule kinds with | for bazel's kind() filter. A single
// kind is used bare.
func kindExpr(kinds []string) string {
	if len(kinds) == 1 {
		return kinds[0]
	}
	return strings.Join(kinds, "|")
}

// queryExpr is the kind-filtered query handed to bazel query.
func queryExpr(scope string, kinds []string) string {
	return fmt.Sprintf("kind('%s', %s)", kindExpr(kinds), scope)
}

// quoteDir shell-quotes the remote directory so paths with spaces or
// metacharacters survive the remote shell.
func quoteDir(dir string) string {
	quoted, err := syntax.Quote(dir, syntax.LangPOSIX)
	if err != nil {
		// Only reachable for strings a shell cannot represent at all
		// (embedded NUL); pass through and let ssh report it.
		return dir
	}
	return quoted
}

// QueryArgs returns the argv for a local target discovery query.
func QueryArgs(scope string, kinds []string) []string {
	return []string{"bazel", "query", queryExpr(scope, kinds)}
}

// QueryArgs returns the argv for a remote target discovery query.
func (e Endpoint) QueryArgs(scope string, kinds []string) []string {
	remote := fmt.Sprintf("cd %s && bazel query \"%s\"", quoteDir(e.Dir), queryExpr(scope, kinds))
	return []string{"ssh", e.Host, remote}
}

// KindsArgs returns the argv for enumerating every rule kind in scope,
// using bazel's label_kind output mode.
func KindsArgs(scope string) []string {
	return []string{"bazel", "query", scope, "--output", "label_kind"}
}

// KindsArgs returns the remote variant of the kind enumeration query.
func (e Endpoint) KindsArgs(scope string) []string {
	remote := fmt.Sprintf("cd %s && bazel query '%s' --output label_kind", quoteDir(e.Dir), scope)
	return []string{"ssh", e.Host, remote}
}

// ExecArgs returns the argv that hands control to bazel for the final
// build/run/test invocation. The verb may carry flags ("clean
// --expunge"); an empty target runs the bare verb.
func ExecArgs(verb, target string) []string {
	args := append([]string{"bazel"}, strings.Fields(verb)...)
	if target != "" {
		args = append(args, target)
	}
	return args
}

// ExecArgs returns the remote hand-off argv. The -t flag forces a tty so
// bazel's own interactive output stays visible.
func (e Endpoint) ExecArgs(verb, target string) []string {
	remote := fmt.Sprintf("cd %s && bazel %s", quoteDir(e.Dir), verb)
	if target != "" {
		remote += " " + target
	}
	return []string{"ssh", "-t", e.Host, remote}
}
