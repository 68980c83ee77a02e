package tools

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Status captures the resolved state for one external executable bzl
// depends on.
type Status struct {
	Tool      string   `json:"tool"`
	Path      string   `json:"path,omitempty"`
	Satisfied bool     `json:"satisfied"`
	Error     string   `json:"error,omitempty"`
	Hints     []string `json:"hints,omitempty"`
}

// Required returns the executables a given mode needs on the local PATH:
// bazel for local queries, the ssh client for remote ones. The remote
// bazel cannot be checked from here.
func Required(remote bool) []string {
	if remote {
		return []string{"ssh"}
	}
	return []string{"bazel"}
}

// Detect resolves each required executable against PATH.
func Detect(remote bool) []Status {
	var statuses []Status
	for _, name := range Required(remote) {
		st := Status{Tool: name}
		path, err := exec.LookPath(name)
		if err != nil {
			st.Error = fmt.Sprintf("%s not found in PATH", name)
			st.Hints = installHints(name)
		} else {
			st.Path = path
			st.Satisfied = true
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Missing returns the first unsatisfied status, if any.
func Missing(statuses []Status) (Status, bool) {
	for _, st := range statuses {
		if !st.Satisfied {
			return st, true
		}
	}
	return Status{}, false
}

func installHints(tool string) []string {
	switch tool {
	case "bazel":
		switch runtime.GOOS {
		case "darwin":
			return []string{"Install bazelisk via Homebrew: brew install bazelisk"}
		case "linux":
			return []string{
				"Install bazelisk: go install github.com/bazelbuild/bazelisk@latest",
				"or grab a release from https://github.com/bazelbuild/bazelisk/releases",
			}
		default:
			return []string{"Install bazel or bazelisk using your platform's package manager"}
		}
	case "ssh":
		switch runtime.GOOS {
		case "linux":
			return []string{"Install the OpenSSH client, e.g. sudo apt install openssh-client"}
		default:
			return []string{"Install an OpenSSH client for your platform"}
		}
	}
	return nil
}
