package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
	"github.com/custodia-labs/sheetpost/internal/normalisers/html"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage Blogger posts",
	Long:  `Create, view, edit and delete individual posts on the selected blog.`,
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent posts",
	RunE:  runPostList,
}

var postGetCmd = &cobra.Command{
	Use:   "get [post-id]",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostGet,
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	Long: `Create a post directly, without a spreadsheet row.

Examples:
  sheetpost post create --title "Hello" --content "<p>Hi</p>" --labels "news, go"
  sheetpost post create --title "Later" --content-file body.html --publish-date 2030-01-02T09:00:00Z`,
	RunE: runPostCreate,
}

var postUpdateCmd = &cobra.Command{
	Use:   "update [post-id]",
	Short: "Update a post",
	Long:  `Update the title, content or labels of a post. Fields not given keep their value.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPostUpdate,
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete [post-id]",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostDelete,
}

// Flags for post commands.
var (
	postLimit       int64
	postTitle       string
	postContent     string
	postContentFile string
	postLabels      string
	postPublishDate string
	postDraft       bool
)

func init() {
	postListCmd.Flags().Int64VarP(&postLimit, "limit", "n", 10, "maximum number of posts")

	for _, c := range []*cobra.Command{postCreateCmd, postUpdateCmd} {
		c.Flags().StringVar(&postTitle, "title", "", "post title")
		c.Flags().StringVar(&postContent, "content", "", "post body as HTML")
		c.Flags().StringVar(&postContentFile, "content-file", "", "read the post body from a file")
		c.Flags().StringVar(&postLabels, "labels", "", "comma-separated labels")
	}
	postCreateCmd.Flags().StringVar(&postPublishDate, "publish-date", "", "publish date; a future date schedules the post")
	postCreateCmd.Flags().BoolVar(&postDraft, "draft", false, "create the post as a draft")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postGetCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postUpdateCmd)
	postCmd.AddCommand(postDeleteCmd)
	rootCmd.AddCommand(postCmd)
}

func runPostList(cmd *cobra.Command, _ []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}
	t, err := resolveTarget(false, true)
	if err != nil {
		return err
	}

	posts, err := blogService.ListPosts(cmd.Context(), t.userID, t.blogID, postLimit)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, posts)
	}
	if len(posts) == 0 {
		cmd.Println("No posts found.")
		return nil
	}

	for i := range posts {
		published := ""
		if posts[i].Published != nil {
			published = posts[i].Published.Format(time.DateOnly)
		}
		cmd.Printf("  %-22s %-10s %s\n", posts[i].ID, published, truncate(posts[i].Title, 60))
		if excerpt := html.Excerpt(posts[i].Content, 72); excerpt != "" {
			cmd.Println(styles.Muted.Render("  " + excerpt))
		}
	}
	return nil
}

func runPostGet(cmd *cobra.Command, args []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}
	t, err := resolveTarget(false, true)
	if err != nil {
		return err
	}

	post, err := blogService.GetPost(cmd.Context(), t.userID, t.blogID, args[0])
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, post)
	}
	printPost(cmd, post)
	return nil
}

func runPostCreate(cmd *cobra.Command, _ []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}
	t, err := resolveTarget(false, true)
	if err != nil {
		return err
	}

	content, err := postBody()
	if err != nil {
		return err
	}

	created, err := blogService.CreatePost(cmd.Context(), t.userID, t.blogID, domain.PostInput{
		Title:       postTitle,
		Content:     content,
		Labels:      domain.ParseLabels(postLabels),
		PublishDate: postPublishDate,
		IsDraft:     postDraft,
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, created)
	}
	cmd.Printf("Created post %s\n", created.ID)
	if created.URL != "" {
		cmd.Printf("  %s\n", created.URL)
	}
	return nil
}

func runPostUpdate(cmd *cobra.Command, args []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}
	t, err := resolveTarget(false, true)
	if err != nil {
		return err
	}

	var patch domain.PostPatch
	if cmd.Flags().Changed("title") {
		title := postTitle
		patch.Title = &title
	}
	if cmd.Flags().Changed("content") || cmd.Flags().Changed("content-file") {
		content, err := postBody()
		if err != nil {
			return err
		}
		patch.Content = &content
	}
	if cmd.Flags().Changed("labels") {
		labels := domain.ParseLabels(postLabels)
		patch.Labels = &labels
	}

	updated, err := blogService.UpdatePost(cmd.Context(), t.userID, t.blogID, args[0], patch)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, updated)
	}
	cmd.Printf("Updated post %s\n", updated.ID)
	return nil
}

func runPostDelete(cmd *cobra.Command, args []string) error {
	if blogService == nil {
		return errors.New("blog service not configured")
	}
	t, err := resolveTarget(false, true)
	if err != nil {
		return err
	}

	if err := blogService.DeletePost(cmd.Context(), t.userID, t.blogID, args[0]); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	cmd.Printf("Deleted post %s\n", args[0])
	return nil
}

// postBody returns --content, or the contents of --content-file.
func postBody() (string, error) {
	if postContentFile == "" {
		return postContent, nil
	}
	data, err := os.ReadFile(postContentFile)
	if err != nil {
		return "", fmt.Errorf("failed to read content file: %w", err)
	}
	return string(data), nil
}

func printPost(cmd *cobra.Command, post *domain.Post) {
	cmd.Println(styles.Title.Render(post.Title))
	cmd.Printf("  ID: %s\n", post.ID)
	if post.Status != "" {
		cmd.Printf("  Status: %s\n", post.Status)
	}
	if post.URL != "" {
		cmd.Printf("  URL: %s\n", post.URL)
	}
	if len(post.Labels) > 0 {
		cmd.Printf("  Labels: %v\n", post.Labels)
	}
	if post.Published != nil {
		cmd.Printf("  Published: %s\n", post.Published.Format(time.RFC3339))
	}
	if post.Updated != nil {
		cmd.Printf("  Updated: %s\n", post.Updated.Format(time.RFC3339))
	}
	cmd.Println()
	cmd.Println(post.Content)
}
