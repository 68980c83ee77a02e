package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bzl/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the discovery cache",
	}

	cmd.AddCommand(newCacheStatusCmd())
	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cached record for the current scope and kinds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			store := cache.Store{Dir: st.ap.CacheDir}
			host := identityHost(st.endpoint)
			key := cache.Key(host, st.scope, st.kinds)
			cmd.Printf("record: %s\n", filepath.Join(st.ap.CacheDir, key+".json"))

			entry := store.Stat(host, st.scope, st.kinds)
			if entry == nil {
				cmd.Println("no cached record")
				return nil
			}
			cmd.Printf("captured: %s (%s)\n", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.AgeString())
			cmd.Printf("packages: %d, targets: %d\n", len(entry.Targets), entry.Targets.Len())
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the cached record for the current scope and kinds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			store := cache.Store{Dir: st.ap.CacheDir}
			store.Bust(identityHost(st.endpoint), st.scope, st.kinds)
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}
