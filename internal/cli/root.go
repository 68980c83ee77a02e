package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	sshHost   string
	sshDir    string
	scopeFlag string
	ttlFlag   int
	noCache   bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bzl",
		Short: "Terminal UI for browsing and executing Bazel targets",
		Long: `bzl discovers Bazel targets with bazel query, caches the result, and
lets you fuzzy-filter and execute them interactively, locally or on a
remote host over SSH.

Defaults come from .bzlrc.yaml in your home directory or workspace root:

  ssh: user@build-server
  ssh_dir: /home/user/my-repo
  scope: //modules/...
  cache_ttl: 20160
  kinds: [genrule]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBrowse,
	}

	cmd.PersistentFlags().StringVarP(&sshHost, "ssh", "s", "", "Run query and build on a remote host over SSH (user@host)")
	cmd.PersistentFlags().StringVarP(&sshDir, "ssh-dir", "d", "", "Working directory on the remote host (default: mirrors local cwd)")
	cmd.PersistentFlags().StringVarP(&scopeFlag, "scope", "S", "", "Bazel query scope (default: //...)")
	cmd.PersistentFlags().IntVarP(&ttlFlag, "cache-ttl", "c", 0, "Cache TTL in minutes (0 disables the cache)")
	cmd.PersistentFlags().BoolVarP(&noCache, "no-cache", "n", false, "Bypass cache and force a fresh bazel query")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newCacheCmd())

	return cmd
}
