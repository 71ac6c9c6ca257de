package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "List your Blogger blogs",
	RunE:  runBlogs,
}

func init() {
	rootCmd.AddCommand(blogsCmd)
}

func runBlogs(cmd *cobra.Command, _ []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}
	t, err := resolveTarget(false, false)
	if err != nil {
		return err
	}

	blogs, err := blogService.ListBlogs(cmd.Context(), t.userID)
	if err != nil {
		return fmt.Errorf("failed to list blogs: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, blogs)
	}
	if len(blogs) == 0 {
		cmd.Println("No blogs found for this account.")
		return nil
	}

	for i := range blogs {
		marker := " "
		if blogs[i].ID == t.blogID {
			marker = "*"
		}
		cmd.Printf("%s %s  %s (%d posts)\n", marker, blogs[i].ID, blogs[i].Name, blogs[i].PostCount)
		if blogs[i].URL != "" {
			cmd.Printf("    %s\n", styles.Muted.Render(blogs[i].URL))
		}
	}
	return nil
}
