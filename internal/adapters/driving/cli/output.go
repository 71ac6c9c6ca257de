package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printOutcome(cmd *cobra.Command, o domain.PublishOutcome) {
	title := o.Title
	if title == "" {
		title = "(untitled)"
	}
	cmd.Printf("  Row %-4d %-8s %s\n", o.Row, styles.Status(o.Status), title)
	if o.URL != "" {
		cmd.Printf("           %s\n", styles.Muted.Render(o.URL))
	}
	if o.Message != "" {
		cmd.Printf("           %s\n", styles.Muted.Render(o.Message))
	}
}

func printOutcomes(cmd *cobra.Command, outcomes []domain.PublishOutcome) {
	for i := range outcomes {
		printOutcome(cmd, outcomes[i])
	}
	cmd.Println()
	cmd.Printf("Published: %d  Failed: %d  Skipped: %d\n",
		domain.CountStatus(outcomes, domain.OutcomeSuccess),
		domain.CountStatus(outcomes, domain.OutcomeError),
		domain.CountStatus(outcomes, domain.OutcomeSkipped))
}

// truncate shortens s to maxLen characters.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
