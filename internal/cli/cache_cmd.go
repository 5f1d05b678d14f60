package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api/cache"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
)

const bytesPerKiB = 1024

// newCacheCmd creates the cache command group for inspecting and clearing
// the local response cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local response cache",
	}

	cmd.AddCommand(newCacheStatusCmd(), newCacheClearCmd())
	return cmd
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cache location, entry count, and size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := buildCacheStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !store.IsEnabled() {
				fmt.Fprintln(out, "Cache: disabled")
				return nil
			}

			count, err := store.Count()
			if err != nil {
				return err
			}
			size, err := store.Size()
			if err != nil {
				return err
			}

			cfg := config.GetGlobalConfig()
			fmt.Fprintf(out, "Cache:     enabled\n")
			fmt.Fprintf(out, "Directory: %s\n", store.Directory())
			fmt.Fprintf(out, "TTL:       %s\n", cache.FormatDuration(cfg.Cache.TTL()))
			fmt.Fprintf(out, "Entries:   %d\n", count)
			fmt.Fprintf(out, "Size:      %.1f KiB\n", float64(size)/bytesPerKiB)
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached responses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := buildCacheStore()
			if err != nil {
				return err
			}
			if !store.IsEnabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled, nothing to clear.")
				return nil
			}

			if expiredOnly {
				if cleanupErr := store.CleanupExpired(); cleanupErr != nil {
					return cleanupErr
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Expired entries removed.")
				return nil
			}

			if clearErr := store.Clear(); clearErr != nil {
				return clearErr
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "remove only expired entries")
	return cmd
}
