package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/api"
	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui"
)

// newImportCmd creates the import command: validate a CSV file against an
// entity and commit it after explicit confirmation.
func newImportCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <entity> <file.csv>",
		Short: "Import records from a CSV file",
		Long: `Uploads a CSV file for server-side validation, shows the validation
verdict with any rejected rows, and commits the import only after
confirmation. Nothing is persisted until the commit step.`,
		Example: `  # Interactive validate-preview-commit wizard
  pfadmin import projects ./projects.csv

  # Non-interactive: commit when validation passes cleanly
  pfadmin import projects ./projects.csv --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, file := args[0], args[1]

			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			client, err := buildClient(cmd)
			if err != nil {
				return err
			}

			validator := func(ctx context.Context) (*api.ImportValidation, error) {
				return client.ValidateImport(ctx, entity, content)
			}
			committer := func(ctx context.Context, jobID string) (*api.ImportResult, error) {
				return client.CommitImport(ctx, jobID)
			}

			if yes || !tui.IsTTY() {
				return importHeadless(cmd, entity, validator, committer, yes)
			}

			model := tui.NewImportViewModel(cmd.Context(), entity, validator, committer)
			p := tea.NewProgram(model)
			if _, runErr := p.Run(); runErr != nil {
				return fmt.Errorf("failed to run import wizard: %w", runErr)
			}

			if model.Step() == tui.StepError {
				return model.Err()
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "commit without prompting when validation passes")

	return cmd
}

// importHeadless validates and optionally commits without the wizard.
// Without --yes it stops after printing the validation verdict, so a
// non-interactive call can never commit by accident.
func importHeadless(
	cmd *cobra.Command,
	entity string,
	validator tui.ImportValidator,
	committer tui.ImportCommitter,
	commit bool,
) error {
	ctx := cmd.Context()

	validation, err := validator(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s rows, %s valid, %s rejected\n",
		entity,
		tui.FormatCount(validation.TotalRows),
		tui.FormatCount(validation.ValidRows),
		tui.FormatCount(len(validation.Errors)))

	for _, rowErr := range validation.Errors {
		fmt.Fprintf(out, "  row %d, %s: %s\n", rowErr.Row, rowErr.Field, rowErr.Message)
	}

	if !validation.Valid() {
		return fmt.Errorf("validation failed, nothing committed")
	}
	if !commit {
		fmt.Fprintln(out, "Validation passed. Re-run with --yes to commit.")
		return nil
	}

	result, err := committer(ctx, validation.JobID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Committed: %s created, %s updated, %s skipped\n",
		tui.FormatCount(result.Created),
		tui.FormatCount(result.Updated),
		tui.FormatCount(result.Skipped))
	return nil
}
