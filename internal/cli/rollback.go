package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRollbackCmd creates the rollback command: restore a record to an
// earlier version after explicit confirmation.
func newRollbackCmd() *cobra.Command {
	var (
		toVersion int
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "rollback <entity> <record-id>",
		Short: "Restore a record to an earlier version",
		Long: `Restores a record to the state it had at the given version. The server
creates a new version with the old content, so the rollback itself is
auditable and reversible.`,
		Example: `  # Roll a project record back to version 3
  pfadmin rollback projects p-1042 --to-version 3

  # Skip the confirmation prompt (for scripts)
  pfadmin rollback projects p-1042 --to-version 3 --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, recordID := args[0], args[1]

			if toVersion < 1 {
				return fmt.Errorf("--to-version must be >= 1, got %d", toVersion)
			}

			if !yes {
				result := ConfirmRollback(cmd.OutOrStdout(), cmd.InOrStdin(), entity, recordID, toVersion)
				if result.Cancelled {
					return fmt.Errorf("rollback cancelled")
				}
				if !result.Accepted {
					fmt.Fprintln(cmd.OutOrStdout(), "Rollback declined. Nothing changed.")
					return nil
				}
			}

			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			result, err := client.Rollback(cmd.Context(), entity, recordID, toVersion)
			if err != nil {
				return err
			}

			logger.Info().
				Str("entity", result.Entity).
				Str("record_id", result.RecordID).
				Int("restored_version", result.RestoredVersion).
				Msg("rollback complete")
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s/%s to version %d.\n",
				result.Entity, result.RecordID, result.RestoredVersion)
			return nil
		},
	}

	cmd.Flags().IntVar(&toVersion, "to-version", 0, "version to restore (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	_ = cmd.MarkFlagRequired("to-version")

	return cmd
}
