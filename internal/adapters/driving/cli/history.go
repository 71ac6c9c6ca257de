package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent publish runs",
	Long: `Lists recent publish runs with their outcome counts. Pass a run ID to
show the outcome of every row in that run.

History is kept only when storage.history is enabled in the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old publish runs",
	Long: `Deletes all but the newest runs. Without --keep the storage.history_keep
setting is used.`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

var (
	historyLimit int
	historyKeep  int
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 0, "number of runs to keep")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryPrune(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	keep := historyKeep
	if !cmd.Flags().Changed("keep") {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		keep = settings.Storage.HistoryKeep
	}

	if err := historyService.Prune(cmd.Context(), keep); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	cmd.Printf("Kept the newest %d runs.\n", keep)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if len(args) == 1 {
		run, err := historyService.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get run: %w", err)
		}
		if outputJSON {
			return printJSON(cmd, run)
		}
		printRunHeader(cmd, run)
		cmd.Println()
		printOutcomes(cmd, run.Outcomes)
		return nil
	}

	runs, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, runs)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}
	for i := range runs {
		printRunHeader(cmd, &runs[i])
	}
	return nil
}

func printRunHeader(cmd *cobra.Command, run *domain.Run) {
	cmd.Printf("%s  %-13s %s  %s %d  %s %d  %s %d\n",
		run.ID,
		run.Kind,
		run.StartedAt.Local().Format(time.DateTime),
		styles.Success.Render("ok"), domain.CountStatus(run.Outcomes, domain.OutcomeSuccess),
		styles.Error.Render("failed"), domain.CountStatus(run.Outcomes, domain.OutcomeError),
		styles.Warning.Render("skipped"), domain.CountStatus(run.Outcomes, domain.OutcomeSkipped))
}
