package bazel

import (
	"context"
	"strings"
)

// QueryError reports a bazel query invocation that exited non-zero.
type QueryError struct {
	Remote bool
	Stderr string
}

func (e *QueryError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Remote {
		return "remote bazel query failed"
	}
	return "bazel query failed"
}

// MissingRemoteDir reports whether the failure output suggests the
// configured remote directory does not exist on the host, so the caller
// can print a recovery hint.
func (e *QueryError) MissingRemoteDir() bool {
	return e.Remote && strings.Contains(e.Stderr, "No such file or directory")
}

// Client runs discovery queries locally or against a remote endpoint.
type Client struct {
	Runner   Runner
	Endpoint *Endpoint
}

func (c *Client) runner() Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return CmdRunner{}
}

func (c *Client) run(ctx context.Context, argv []string) (RunResult, error) {
	res, err := c.runner().Run(ctx, argv[0], argv[1:], RunOptions{})
	if err != nil {
		return res, &QueryError{
			Remote: c.Endpoint != nil,
			Stderr: strings.TrimSpace(string(res.Stderr)),
		}
	}
	return res, nil
}

// Query discovers the targets matching scope and kinds and returns the
// parsed index. The error, when non-nil, is a *QueryError carrying the
// tool's trimmed stderr.
func (c *Client) Query(ctx context.Context, scope string, kinds []string) (Index, error) {
	var argv []string
	if c.Endpoint != nil {
		argv = c.Endpoint.QueryArgs(scope, kinds)
	} else {
		argv = QueryArgs(scope, kinds)
	}

	res, err := c.run(ctx, argv)
	if err != nil {
		return nil, err
	}
	return ParseQueryOutput(string(res.Stdout)), nil
}

// Kinds enumerates every rule kind present in scope.
func (c *Client) Kinds(ctx context.Context, scope string) ([]string, error) {
	var argv []string
	if c.Endpoint != nil {
		argv = c.Endpoint.KindsArgs(scope)
	} else {
		argv = KindsArgs(scope)
	}

	res, err := c.run(ctx, argv)
	if err != nil {
		return nil, err
	}
	return ParseKindsOutput(string(res.Stdout)), nil
}

// ExecArgs builds the final hand-off argv for this client's endpoint.
func (c *Client) ExecArgs(verb, target string) []string {
	if c.Endpoint != nil {
		return c.Endpoint.ExecArgs(verb, target)
	}
	return ExecArgs(verb, target)
}
