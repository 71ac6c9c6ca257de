package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List rows scheduled for a future publish date",
	RunE:  runPending,
}

var publishCmd = &cobra.Command{
	Use:   "publish [row]",
	Short: "Publish one sheet row now",
	Long: `Publishes a single sheet row to Blogger immediately, ignoring its
publish date. Rows are numbered as in the spreadsheet, so the first data
row below the header is row 2.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Publish every row whose publish date has passed",
	Long: `Reads the sheet, publishes every row whose publish date is due and
reports rows still pending and rows with a date that could not be parsed.

Rows are not marked as published in the sheet, so a row that is due will
be published again by the next sweep. Run sweep from a scheduler after
the rows you want have become due, or clear published rows.`,
	RunE: runSweep,
}

var publishSheetCmd = &cobra.Command{
	Use:   "publish-sheet",
	Short: "Publish every row except those dated in the future",
	Long: `Publishes every row of the sheet now. Rows without a publish date are
published, rows dated in the future are skipped, and only Title and
Content are required.`,
	RunE: runPublishSheet,
}

func init() {
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(publishSheetCmd)
}

func runPending(cmd *cobra.Command, _ []string) error {
	if scheduleService == nil {
		return errors.New("schedule service not configured")
	}
	t, err := resolveTarget(true, false)
	if err != nil {
		return err
	}

	pending, err := scheduleService.ListPending(cmd.Context(), t.userID, t.sheetID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to list pending posts: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, pending)
	}

	if len(pending) == 0 {
		cmd.Println("No pending posts.")
		return nil
	}

	cmd.Println(styles.Title.Render(fmt.Sprintf("Pending posts (%d)", len(pending))))
	cmd.Println()
	for i := range pending {
		cmd.Printf("  Row %-4d %s  %s\n", pending[i].Row, pending[i].FormattedDate, pending[i].Title)
	}
	return nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	if scheduleService == nil {
		return errors.New("schedule service not configured")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid row number: %s", args[0])
	}
	t, err := resolveTarget(true, true)
	if err != nil {
		return err
	}

	outcome, err := scheduleService.PublishRowNow(cmd.Context(), t.userID, t.sheetID, t.blogID, row)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, outcome)
	}
	printOutcome(cmd, outcome)
	if !outcome.Succeeded() {
		return fmt.Errorf("row %d was not published", row)
	}
	return nil
}

func runSweep(cmd *cobra.Command, _ []string) error {
	if scheduleService == nil {
		return errors.New("schedule service not configured")
	}
	t, err := resolveTarget(true, true)
	if err != nil {
		return err
	}

	result, err := scheduleService.SweepDue(cmd.Context(), t.userID, t.sheetID, t.blogID, time.Now())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, result)
	}

	if len(result.Outcomes) == 0 {
		cmd.Println("No posts are due.")
	} else {
		cmd.Println(styles.Title.Render("Due posts"))
		cmd.Println()
		printOutcomes(cmd, result.Outcomes)
	}
	cmd.Printf("Pending: %d\n", result.PendingCount)

	if len(result.Invalid) > 0 {
		cmd.Println()
		cmd.Println(styles.Warning.Render("Rows with an invalid publish date:"))
		for _, inv := range result.Invalid {
			cmd.Printf("  Row %-4d %s (%s)\n", inv.Row, inv.Title, inv.Reason)
		}
	}
	return nil
}

func runPublishSheet(cmd *cobra.Command, _ []string) error {
	if scheduleService == nil {
		return errors.New("schedule service not configured")
	}
	t, err := resolveTarget(true, true)
	if err != nil {
		return err
	}

	outcomes, err := scheduleService.PublishSheet(cmd.Context(), t.userID, t.sheetID, t.blogID, time.Now())
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, outcomes)
	}
	if len(outcomes) == 0 {
		cmd.Println("The sheet has no rows.")
		return nil
	}
	printOutcomes(cmd, outcomes)
	return nil
}
