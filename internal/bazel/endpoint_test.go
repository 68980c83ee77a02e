package bazel

import (
	"reflect"
	"strings"
	"testing"
)

func TestQueryArgsSingleKind(t *testing.T) {
	args := QueryArgs("//...", []string{"genrule"})
	want := []string{"bazel", "query", "kind('genrule', //...)"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("expected %v, got %v", want, args)
	}
	if strings.Contains(args[2], "|") {
		t.Error("single kind must not be joined with |")
	}
}

func TestQueryArgsMultipleKinds(t *testing.T) {
	args := QueryArgs("//services/...", []string{"genrule", "py_binary", "sh_test"})
	expr := args[2]
	for _, kind := range []string{"genrule", "py_binary", "sh_test"} {
		if !strings.Contains(expr, kind) {
			t.Errorf("expected %q in query expression %q", kind, expr)
		}
	}
	if expr != "kind('genrule|py_binary|sh_test', //services/...)" {
		t.Errorf("unexpected query expression %q", expr)
	}
}

func TestEndpointQueryArgs(t *testing.T) {
	ep := Endpoint{Host: "user@build-host", Dir: "/home/user/repo"}
	args := ep.QueryArgs("//...", []string{"genrule"})

	if args[0] != "ssh" || args[1] != "user@build-host" {
		t.Fatalf("expected ssh argv, got %v", args)
	}
	remote := args[2]
	if !strings.HasPrefix(remote, "cd /home/user/repo && ") {
		t.Errorf("expected cd prefix, got %q", remote)
	}
	if !strings.Contains(remote, `bazel query "kind('genrule', //...)"`) {
		t.Errorf("expected quoted query, got %q", remote)
	}
}

func TestEndpointQueryArgsQuotesDir(t *testing.T) {
	ep := Endpoint{Host: "h", Dir: "/home/user/my repo"}
	remote := ep.QueryArgs("//...", []string{"genrule"})[2]
	if strings.Contains(remote, "cd /home/user/my repo &&") {
		t.Fatalf("directory with spaces must be quoted: %q", remote)
	}
	if !strings.Contains(remote, "my repo") {
		t.Fatalf("directory content lost: %q", remote)
	}
}

func TestEndpointKindsArgs(t *testing.T) {
	ep := Endpoint{Host: "h", Dir: "/repo"}
	args := ep.KindsArgs("//...")
	if args[0] != "ssh" || args[1] != "h" {
		t.Fatalf("expected ssh argv, got %v", args)
	}
	if !strings.Contains(args[2], "--output label_kind") {
		t.Errorf("expected label_kind output mode, got %q", args[2])
	}
}

func TestKindsArgs(t *testing.T) {
	want := []string{"bazel", "query", "//...", "--output", "label_kind"}
	if args := KindsArgs("//..."); !reflect.DeepEqual(args, want) {
		t.Fatalf("expected %v, got %v", want, args)
	}
}

func TestExecArgs(t *testing.T) {
	tests := []struct {
		verb, target string
		want         []string
	}{
		{"build", "//a:b", []string{"bazel", "build", "//a:b"}},
		{"test", "", []string{"bazel", "test"}},
		{"clean --expunge", "", []string{"bazel", "clean", "--expunge"}},
	}
	for _, tt := range tests {
		if got := ExecArgs(tt.verb, tt.target); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExecArgs(%q, %q) = %v, want %v", tt.verb, tt.target, got, tt.want)
		}
	}
}

func TestEndpointExecArgsForcesTTY(t *testing.T) {
	ep := Endpoint{Host: "h", Dir: "/repo"}
	args := ep.ExecArgs("run", "//a:b")
	want := []string{"ssh", "-t", "h", "cd /repo && bazel run //a:b"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("expected %v, got %v", want, args)
	}
}

func TestEndpointExecArgsBareVerb(t *testing.T) {
	ep := Endpoint{Host: "h", Dir: "/repo"}
	args := ep.ExecArgs("clean", "")
	if args[3] != "cd /repo && bazel clean" {
		t.Fatalf("unexpected remote command %q", args[3])
	}
}

func TestNewEndpointDefaultsDirToCwd(t *testing.T) {
	ep := NewEndpoint("user@host", "")
	if ep.Dir == "" {
		t.Fatal("expected Dir to default to the working directory")
	}
	ep = NewEndpoint("user@host", "/explicit")
	if ep.Dir != "/explicit" {
		t.Fatalf("expected explicit dir to win, got %q", ep.Dir)
	}
}
