package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api/cache"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui"
)

// newAuditCmd creates the audit command: free-text search over the audit
// log, interactive by default.
func newAuditCmd() *cobra.Command {
	var (
		output  string
		limit   int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "audit [query]",
		Short: "Search the audit log",
		Long: `Searches the server's audit log with a free-text query. The server
interprets the query, so natural phrasings like "price changed last week"
work. Without a query, opens the interactive search screen.`,
		Example: `  # Interactive audit search
  pfadmin audit

  # One-shot search, printed as a table
  pfadmin audit "webhooks changed by kim" --output table

  # JSON for scripting
  pfadmin audit "deleted records" --output json --limit 50`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")

			if output == "" && tui.IsTTY() {
				return auditInteractive(cmd.Context(), client, noCache)
			}
			if query == "" {
				return fmt.Errorf("a query is required in non-interactive mode")
			}
			if output == "" {
				output = config.GetDefaultOutputFormat()
			}
			return auditPrint(cmd, client, query, output, limit, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (disables the interactive view)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to request (0 = server default)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")

	return cmd
}

// auditInteractive runs the audit search TUI.
func auditInteractive(ctx context.Context, client *api.Client, noCache bool) error {
	searcher := func(ctx context.Context, query api.AuditQuery) ([]api.AuditEntry, error) {
		return searchAuditCached(ctx, client, query, noCache)
	}

	p := tea.NewProgram(tui.NewAuditViewModel(ctx, searcher))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run audit view: %w", err)
	}
	return nil
}

// auditPrint runs one search and prints the entries.
func auditPrint(cmd *cobra.Command, client *api.Client, query, output string, limit int, noCache bool) error {
	entries, err := searchAuditCached(cmd.Context(), client, api.AuditQuery{Query: query, Limit: limit}, noCache)
	if err != nil {
		return err
	}

	switch output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "table":
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-16s %-10s %-14s %s\n",
				entry.Timestamp.Format(time.RFC3339),
				entry.Actor, entry.Action, entry.Entity, entry.Summary)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s entries\n", tui.FormatCount(len(entries)))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

// searchAuditCached serves an audit search from the response cache when
// fresh. Identical queries repeat often while an operator refines wording.
func searchAuditCached(
	ctx context.Context,
	client *api.Client,
	query api.AuditQuery,
	noCache bool,
) ([]api.AuditEntry, error) {
	cfg := config.GetGlobalConfig()

	store, err := buildCacheStore()
	if err != nil {
		logger.Warn().Err(err).Msg("cache unavailable, searching directly")
		return client.SearchAudit(ctx, query)
	}

	key := cache.Key("audit", cfg.Server.URL, cfg.Server.Organization,
		query.Query,
		query.From.Format(time.RFC3339), query.To.Format(time.RFC3339),
		fmt.Sprintf("%d", query.Limit))
	if !noCache {
		if entries, hit := cache.Lookup[[]api.AuditEntry](store, key); hit {
			logger.Debug().Str("query", query.Query).Msg("serving audit search from cache")
			return entries, nil
		}
	}

	entries, err := client.SearchAudit(ctx, query)
	if err != nil {
		return nil, err
	}

	if storeErr := cache.Store(store, key, entries); storeErr != nil {
		logger.Warn().Err(storeErr).Msg("failed to cache audit search")
	}
	return entries, nil
}
