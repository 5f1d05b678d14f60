package cli

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui"
)

// newWebhookCmd creates the webhook command group: an interactive
// configuration screen plus list/enable/disable for scripts.
func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage webhook subscriptions",
		Long: `Opens an interactive view of the organization's webhook subscriptions
where endpoints can be toggled and URLs edited in place. Changes are
saved to the server immediately.`,
		Example: `  # Interactive webhook configuration
  pfadmin webhook

  # List webhooks as JSON
  pfadmin webhook list --output json

  # Disable a webhook from a script
  pfadmin webhook disable wh-2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			hooks, err := client.ListWebhooks(cmd.Context())
			if err != nil {
				return err
			}

			if !tui.IsTTY() {
				return printWebhooks(cmd, hooks, "table")
			}

			saver := func(ctx context.Context, hook api.Webhook) (*api.Webhook, error) {
				return client.UpdateWebhook(ctx, hook)
			}
			p := tea.NewProgram(tui.NewWebhookViewModel(cmd.Context(), hooks, saver))
			if _, runErr := p.Run(); runErr != nil {
				return fmt.Errorf("failed to run webhook view: %w", runErr)
			}
			return nil
		},
	}

	cmd.AddCommand(newWebhookListCmd(), newWebhookSetEnabledCmd(true), newWebhookSetEnabledCmd(false))

	return cmd
}

func newWebhookListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List webhook subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			hooks, err := client.ListWebhooks(cmd.Context())
			if err != nil {
				return err
			}
			return printWebhooks(cmd, hooks, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	return cmd
}

// newWebhookSetEnabledCmd creates the enable or disable subcommand.
func newWebhookSetEnabledCmd(enable bool) *cobra.Command {
	use, short := "enable <webhook-id>", "Enable a webhook subscription"
	if !enable {
		use, short = "disable <webhook-id>", "Disable a webhook subscription"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			hooks, err := client.ListWebhooks(cmd.Context())
			if err != nil {
				return err
			}

			for _, hook := range hooks {
				if hook.ID != args[0] {
					continue
				}
				hook.Enabled = enable
				updated, updateErr := client.UpdateWebhook(cmd.Context(), hook)
				if updateErr != nil {
					return updateErr
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s enabled=%t\n", updated.ID, updated.Enabled)
				return nil
			}
			return fmt.Errorf("webhook %q not found", args[0])
		},
	}
}

func printWebhooks(cmd *cobra.Command, hooks []api.Webhook, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(hooks)
	case "table":
		for _, hook := range hooks {
			state := "disabled"
			if hook.Enabled {
				state = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-50s %-9s %d\n",
				hook.ID, hook.URL, state, hook.LastStatus)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}
