package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"resumatch/internal/client/workflow"
	"resumatch/internal/shared/models"
)

type resumesClient struct {
	serverURL *string
}

func newResumesCmd(serverURL *string) *cobra.Command {
	r := &resumesClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "resumes", Short: "Manage uploaded resumes"}
	cmd.AddCommand(&cobra.Command{Use: "list", Short: "List resumes", RunE: r.list})
	cmd.AddCommand(&cobra.Command{Use: "upload <file>", Short: "Upload a resume (PDF or DOCX)", Args: cobra.ExactArgs(1), RunE: r.upload})

	del := &cobra.Command{Use: "delete <id>", Short: "Delete a resume by id", Args: cobra.ExactArgs(1), RunE: r.delete}
	del.Flags().Bool("yes", false, "Skip the confirmation prompt")
	cmd.AddCommand(del)
	return cmd
}

func (r *resumesClient) collection(cmd *cobra.Command) (*workflow.Collection[models.Resume], error) {
	mgr, client := newSession(cmd.Context(), *r.serverURL)
	if err := requireAuth(mgr); err != nil {
		return nil, err
	}
	return workflow.NewCollection[models.Resume](client, "/api/resumes/"), nil
}

func (r *resumesClient) list(cmd *cobra.Command, args []string) error {
	col, err := r.collection(cmd)
	if err != nil {
		return err
	}
	if err := col.List(cmd.Context()); err != nil {
		return err
	}
	if len(col.Items()) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No resumes uploaded yet")
		return nil
	}
	for _, item := range col.Items() {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
			item.ID, item.OriginalFilename, item.FileType, item.UploadedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (r *resumesClient) upload(cmd *cobra.Command, args []string) error {
	col, err := r.collection(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := col.Upload(cmd.Context(), filepath.Base(path), data); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Resume uploaded")
	return nil
}

func (r *resumesClient) delete(cmd *cobra.Command, args []string) error {
	col, err := r.collection(cmd)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		confirmed = confirm(cmd, fmt.Sprintf("Delete resume %d? [y/N]: ", id))
	}
	if err := col.Delete(cmd.Context(), id, confirmed); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
	return nil
}

// confirm collects the explicit yes that delete operations require.
func confirm(cmd *cobra.Command, prompt string) bool {
	answer := strings.ToLower(promptLine(cmd, prompt))
	return answer == "y" || answer == "yes"
}
