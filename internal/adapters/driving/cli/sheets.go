package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Inspect Google spreadsheets",
}

var sheetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List spreadsheets in your Drive",
	RunE:  runSheetsList,
}

var sheetsMetaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Show the title and tabs of a spreadsheet",
	RunE:  runSheetsMeta,
}

var sheetsDataCmd = &cobra.Command{
	Use:   "data",
	Short: "Show spreadsheet rows keyed by header",
	RunE:  runSheetsData,
}

var sheetsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a spreadsheet has the post columns",
	Long: `Checks the header row for the Title, Content, Labels and Publish Date
columns. Header names are case-sensitive; extra columns are ignored.`,
	RunE: runSheetsValidate,
}

var sheetsRange string

func init() {
	sheetsDataCmd.Flags().StringVarP(&sheetsRange, "range", "r", "", "A1 range to read (default A1:Z1000)")

	sheetsCmd.AddCommand(sheetsListCmd)
	sheetsCmd.AddCommand(sheetsMetaCmd)
	sheetsCmd.AddCommand(sheetsDataCmd)
	sheetsCmd.AddCommand(sheetsValidateCmd)
	rootCmd.AddCommand(sheetsCmd)
}

func runSheetsList(cmd *cobra.Command, _ []string) error {
	if sheetService == nil {
		return errors.New("sheet service not configured")
	}
	t, err := resolveTarget(false, false)
	if err != nil {
		return err
	}

	sheets, err := sheetService.ListSpreadsheets(cmd.Context(), t.userID)
	if err != nil {
		return fmt.Errorf("failed to list spreadsheets: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, sheets)
	}
	if len(sheets) == 0 {
		cmd.Println("No spreadsheets found.")
		return nil
	}
	for i := range sheets {
		marker := " "
		if sheets[i].ID == t.sheetID {
			marker = "*"
		}
		cmd.Printf("%s %s  %s\n", marker, sheets[i].ID, sheets[i].Name)
	}
	return nil
}

func runSheetsMeta(cmd *cobra.Command, _ []string) error {
	if sheetService == nil {
		return errors.New("sheet service not configured")
	}
	t, err := resolveTarget(true, false)
	if err != nil {
		return err
	}

	meta, err := sheetService.Metadata(cmd.Context(), t.userID, t.sheetID)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, meta)
	}
	cmd.Println(styles.Title.Render(meta.Title))
	cmd.Printf("  ID: %s\n", meta.SpreadsheetID)
	cmd.Println("  Tabs:")
	for _, tab := range meta.Sheets {
		cmd.Printf("    %d  %s\n", tab.SheetID, tab.Title)
	}
	return nil
}

func runSheetsData(cmd *cobra.Command, _ []string) error {
	if sheetService == nil {
		return errors.New("sheet service not configured")
	}
	t, err := resolveTarget(true, false)
	if err != nil {
		return err
	}

	data, err := sheetService.Data(cmd.Context(), t.userID, t.sheetID, sheetsRange)
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, data)
	}
	if len(data.Headers) == 0 {
		cmd.Println("The range is empty.")
		return nil
	}

	cmd.Println(styles.Title.Render(strings.Join(data.Headers, " | ")))
	for _, row := range data.Data {
		cells := make([]string, len(data.Headers))
		for i, h := range data.Headers {
			cells[i] = truncate(row[h], 30)
		}
		cmd.Println(strings.Join(cells, " | "))
	}
	return nil
}

func runSheetsValidate(cmd *cobra.Command, _ []string) error {
	if sheetService == nil {
		return errors.New("sheet service not configured")
	}
	t, err := resolveTarget(true, false)
	if err != nil {
		return err
	}

	result, err := sheetService.Validate(cmd.Context(), t.userID, t.sheetID)
	if err != nil {
		return fmt.Errorf("failed to validate spreadsheet: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, result)
	}
	if result.Valid {
		cmd.Println(styles.Success.Render("OK") + " " + result.Message)
		return nil
	}
	cmd.Println(styles.Error.Render("INVALID") + " " + result.Message)
	return fmt.Errorf("missing columns: %s", strings.Join(result.Missing, ", "))
}
