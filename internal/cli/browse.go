package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api/cache"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/cli/pagination"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/config"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui"
)

// maxConcurrentEntityFetches bounds the parallel record fetches used by
// browse --all so a server with many entities is not hammered.
const maxConcurrentEntityFetches = 4

// newBrowseCmd creates the browse command: the interactive master-detail
// record browser, with table/json output for scripts and pipes.
func newBrowseCmd() *cobra.Command {
	var (
		output   string
		all      bool
		limit    int
		sortExpr string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "browse [entity]",
		Short: "Browse records of an entity",
		Long: `Opens an interactive, filterable view of an entity's records.

When stdout is not a terminal (or --output is given), prints the records
as a table or JSON instead. With --all, prints a record-count summary of
every entity the server exposes.`,
		Example: `  # Browse project records interactively
  pfadmin browse projects

  # Dump as JSON, sorted by name
  pfadmin browse projects --output json --sort name

  # Summarize all entities
  pfadmin browse --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			if all {
				return browseAll(cmd, client)
			}

			if len(args) == 0 {
				return fmt.Errorf("an entity name is required (or use --all)")
			}
			entity := args[0]

			params := pagination.Params{Limit: limit, SortOrder: pagination.SortOrderAsc}
			if sortExpr != "" {
				field, order, parseErr := pagination.ParseSortExpression(sortExpr)
				if parseErr != nil {
					return parseErr
				}
				params.SortField = field
				params.SortOrder = order
			}
			if validateErr := params.Validate(); validateErr != nil {
				return validateErr
			}

			if output == "" && tui.IsTTY() {
				return browseInteractive(cmd.Context(), client, entity)
			}
			if output == "" {
				output = config.GetDefaultOutputFormat()
			}
			return browsePrint(cmd, client, entity, output, params, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (disables the interactive view)")
	cmd.Flags().BoolVar(&all, "all", false, "summarize record counts across all entities")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to print (0 = all)")
	cmd.Flags().StringVar(&sortExpr, "sort", "", "sort printed rows, e.g. 'name' or 'name:desc'")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")

	return cmd
}

// browseInteractive runs the master-detail TUI for one entity.
func browseInteractive(ctx context.Context, client *api.Client, entity string) error {
	descriptor := entityDescriptor(entity)

	fetcher := func(ctx context.Context) ([]api.Record, error) {
		return client.ListRecords(ctx, entity)
	}

	p := tea.NewProgram(tui.NewMasterViewModelWithLoading(ctx, descriptor, fetcher))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive view: %w", err)
	}
	return nil
}

// browsePrint fetches records (through the cache) and prints them.
func browsePrint(
	cmd *cobra.Command,
	client *api.Client,
	entity, output string,
	params pagination.Params,
	noCache bool,
) error {
	records, err := fetchRecordsCached(cmd.Context(), client, entity, noCache)
	if err != nil {
		return err
	}

	records = pagination.SortRecords(records, params.SortField, params.SortOrder)
	records = pagination.ApplyLimit(records, params.Limit)

	switch output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "table":
		descriptor := entityDescriptor(entity)
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderRecordsTable(descriptor.Columns, records))
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s records\n", tui.FormatCount(len(records)))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

// fetchRecordsCached serves a record listing from the response cache when
// fresh, falling back to the server and repopulating on a miss.
func fetchRecordsCached(
	ctx context.Context,
	client *api.Client,
	entity string,
	noCache bool,
) ([]api.Record, error) {
	cfg := config.GetGlobalConfig()

	store, err := buildCacheStore()
	if err != nil {
		logger.Warn().Err(err).Msg("cache unavailable, fetching directly")
		return client.ListRecords(ctx, entity)
	}

	key := cache.Key("records", cfg.Server.URL, cfg.Server.Organization, entity)
	if !noCache {
		if records, hit := cache.Lookup[[]api.Record](store, key); hit {
			logger.Debug().Str("entity", entity).Msg("serving records from cache")
			return records, nil
		}
	}

	records, err := client.ListRecords(ctx, entity)
	if err != nil {
		return nil, err
	}

	if storeErr := cache.Store(store, key, records); storeErr != nil {
		logger.Warn().Err(storeErr).Msg("failed to cache records")
	}
	return records, nil
}

// entityCount pairs an entity with its record count for the --all summary.
type entityCount struct {
	Entity string `json:"entity"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Err    string `json:"error,omitempty"`
}

// browseAll prints a record-count summary of every entity, fetching the
// listings concurrently.
func browseAll(cmd *cobra.Command, client *api.Client) error {
	ctx := cmd.Context()

	entities, err := client.ListEntities(ctx)
	if err != nil {
		return err
	}

	counts := make([]entityCount, len(entities))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentEntityFetches)

	for i, info := range entities {
		group.Go(func() error {
			records, fetchErr := client.ListRecords(groupCtx, info.Name)
			counts[i] = entityCount{Entity: info.Name, Label: info.Label, Count: len(records)}
			if fetchErr != nil {
				// One unreadable entity should not sink the summary.
				counts[i].Err = fetchErr.Error()
			}
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return waitErr
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].Entity < counts[j].Entity })

	for _, c := range counts {
		if c.Err != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s error: %s\n", c.Entity, c.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s records\n", c.Entity, tui.FormatCount(c.Count))
	}
	return nil
}

// entityDescriptor builds the display descriptor for an entity from
// configuration, falling back to generic id/name columns.
func entityDescriptor(entity string) tui.EntityDescriptor {
	entityCfg := config.GetGlobalConfig().EntityFor(entity)

	columns := make([]tui.Column, 0, len(entityCfg.Columns))
	for _, field := range entityCfg.Columns {
		columns = append(columns, tui.Column{Field: field, Title: field, Width: defaultColumnWidth})
	}

	return tui.EntityDescriptor{
		Name:         entity,
		Label:        entityCfg.Label,
		Columns:      columns,
		SearchFields: entityCfg.SearchFields,
	}
}

// defaultColumnWidth is used when the config does not size columns.
const defaultColumnWidth = 20
