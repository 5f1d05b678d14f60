package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/tui"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "Y")
	Accepted bool
	// Cancelled is true if the user explicitly cancelled (e.g., Ctrl+C)
	Cancelled bool
}

// ConfirmRollback prompts the user to confirm rolling a record back to an
// earlier version. It returns immediately with Accepted=false in
// non-interactive (non-TTY) environments.
//
// The prompt defaults to "No" when the user presses Enter without input.
// Valid inputs: "y", "Y", "yes", "Yes", "YES" for acceptance; anything
// else declines.
func ConfirmRollback(
	writer io.Writer,
	reader io.Reader,
	entity string,
	recordID string,
	version int,
) PromptResult {
	// In non-TTY environments, return immediately without prompting
	if !tui.IsTTY() {
		return PromptResult{Accepted: false}
	}

	fmt.Fprintf(writer, "\nThis restores %s/%s to version %d and supersedes every later change.\n",
		entity, recordID, version)
	fmt.Fprint(writer, "? Proceed with the rollback? [y/N] ")

	return readConfirmation(reader)
}

// readConfirmation reads one line and interprets it as a yes/no answer.
func readConfirmation(reader io.Reader) PromptResult {
	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{Accepted: false}
	}

	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}

// ConfirmRollbackWithStdin is a convenience wrapper that uses os.Stdin as the reader.
func ConfirmRollbackWithStdin(writer io.Writer, entity, recordID string, version int) PromptResult {
	return ConfirmRollback(writer, os.Stdin, entity, recordID, version)
}
