package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bzl/internal/bazel"
	"bzl/internal/cache"
	"bzl/internal/config"
	"bzl/internal/logx"
	"bzl/internal/paths"
	"bzl/internal/tools"
	"bzl/internal/tui"
)

// settings is the fully resolved invocation state: rc file defaults with
// flag overrides applied.
type settings struct {
	ap       paths.AppPaths
	scope    string
	kinds    []string
	ttl      time.Duration
	endpoint *bazel.Endpoint

	// warnRemoteDir is set when ssh mode is active but no remote dir was
	// given anywhere, so the local cwd is being assumed.
	warnRemoteDir bool
}

// identityHost returns the cache identity key for an endpoint, "" for
// local.
func identityHost(ep *bazel.Endpoint) string {
	if ep == nil {
		return ""
	}
	return ep.Host
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	ap, err := paths.Resolve()
	if err != nil {
		return settings{}, err
	}
	cfg, err := config.Load(ap)
	if err != nil {
		return settings{}, err
	}

	flags := cmd.Flags()

	scope := cfg.Scope
	if flags.Changed("scope") {
		scope = scopeFlag
	}

	ttlMinutes := cfg.CacheTTLMinutes
	if flags.Changed("cache-ttl") {
		ttlMinutes = ttlFlag
	}
	ttl := time.Duration(ttlMinutes) * time.Minute
	if noCache {
		ttl = 0
	}

	host := cfg.SSH
	if flags.Changed("ssh") {
		host = sshHost
	}
	dir := cfg.SSHDir
	if flags.Changed("ssh-dir") {
		dir = sshDir
	}

	st := settings{ap: ap, scope: scope, kinds: cfg.Kinds, ttl: ttl}
	if host != "" {
		ep := bazel.NewEndpoint(host, dir)
		st.endpoint = &ep
		st.warnRemoteDir = dir == ""
	}
	return st, nil
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if missing, ok := tools.Missing(tools.Detect(st.endpoint != nil)); ok {
		for _, hint := range missing.Hints {
			fmt.Fprintln(cmd.ErrOrStderr(), "hint: "+hint)
		}
		return errors.New(missing.Error)
	}

	if st.warnRemoteDir {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"warning: no --ssh-dir set, assuming remote dir = %s\n"+
				"         pass --ssh-dir /path/on/remote or add ssh_dir to .bzlrc.yaml if wrong\n",
			st.endpoint.Dir)
	}

	// Diagnostics go to a log file; logging failures are not fatal.
	logger := tui.Logger(logx.Discard())
	if l, closer, err := logx.New(st.ap); err == nil {
		defer closer.Close()
		logger = l
	}

	store := cache.Store{Dir: st.ap.CacheDir, Logger: logger}
	client := &bazel.Client{Endpoint: st.endpoint}
	host := identityHost(st.endpoint)

	var index bazel.Index
	cacheAge := ""
	if entry := store.Load(host, st.scope, st.kinds, st.ttl); entry != nil {
		index = entry.Targets
		cacheAge = entry.AgeString()
		logger.Printf("cache hit for scope %s (%s)", st.scope, cacheAge)
		fmt.Fprintf(cmd.OutOrStdout(), "Using cached results (%s), press ctrl+f inside bzl to refresh\n", cacheAge)
	} else {
		where := "local"
		if st.endpoint != nil {
			where = "ssh " + st.endpoint.Host
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Querying bazel (%s, scope: %s)…\n", where, st.scope)
		logger.Printf("querying %s scope=%s kinds=%v", where, st.scope, st.kinds)

		index, err = client.Query(cmd.Context(), st.scope, st.kinds)
		if err != nil {
			var qe *bazel.QueryError
			if errors.As(err, &qe) && qe.MissingRemoteDir() {
				fmt.Fprint(cmd.ErrOrStderr(), remoteDirHint(*st.endpoint))
			}
			return fmt.Errorf("bazel query failed: %w", err)
		}
		if index.Empty() {
			return errors.New("no targets found")
		}
		store.Save(host, st.scope, st.kinds, index)
	}

	result, err := tui.Run(tui.Options{
		Index:    index,
		Scope:    st.scope,
		Kinds:    st.kinds,
		Client:   client,
		Store:    store,
		CacheAge: cacheAge,
		Logger:   logger,
		OnKindsChange: func(kinds []string) {
			if err := config.SaveKinds(st.ap, kinds); err != nil {
				logger.Printf("persist kinds: %v", err)
			}
		},
	})
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	argv := client.ExecArgs(result.Verb, result.Target)
	fmt.Fprintf(cmd.OutOrStdout(), "\n$ %s\n%s\n", strings.Join(argv, " "), strings.Repeat("─", 60))
	return handOff(argv)
}

// handOff runs the final bazel invocation in the foreground with the
// user's terminal attached, propagating its exit code.
func handOff(argv []string) error {
	c := exec.Command(argv[0], argv[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	err := c.Run()
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		os.Exit(ee.ExitCode())
	}
	return err
}

// remoteDirHint explains how to recover when the configured remote
// directory does not exist on the host.
func remoteDirHint(ep bazel.Endpoint) string {
	return fmt.Sprintf(`
hint: the remote dir %q doesn't exist on %s.
      Find the right path with:
        ssh %s "find ~ -maxdepth 4 -name WORKSPACE -o -name MODULE.bazel 2>/dev/null"
      Then re-run:
        bzl --ssh %s --ssh-dir /path/on/remote
      Or set it permanently in .bzlrc.yaml:
        ssh: %s
        ssh_dir: /path/on/remote
`, ep.Dir, ep.Host, ep.Host, ep.Host, ep.Host)
}
