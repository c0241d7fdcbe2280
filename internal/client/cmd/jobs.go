package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"resumatch/internal/client/workflow"
	"resumatch/internal/shared/models"
)

type jobsClient struct {
	serverURL *string
}

func newJobsCmd(serverURL *string) *cobra.Command {
	j := &jobsClient{serverURL: serverURL}
	cmd := &cobra.Command{Use: "jobs", Short: "Manage saved job descriptions"}
	cmd.AddCommand(&cobra.Command{Use: "list", Short: "List job descriptions", RunE: j.list})

	add := &cobra.Command{Use: "add", Short: "Save a job description", RunE: j.add}
	add.Flags().String("title", "", "Job title")
	add.Flags().String("company", "", "Company name (optional)")
	add.Flags().String("description", "", "Full job description text")
	cmd.AddCommand(add)

	del := &cobra.Command{Use: "delete <id>", Short: "Delete a job description by id", Args: cobra.ExactArgs(1), RunE: j.delete}
	del.Flags().Bool("yes", false, "Skip the confirmation prompt")
	cmd.AddCommand(del)
	return cmd
}

func (j *jobsClient) collection(cmd *cobra.Command) (*workflow.Collection[models.JobDescription], error) {
	mgr, client := newSession(cmd.Context(), *j.serverURL)
	if err := requireAuth(mgr); err != nil {
		return nil, err
	}
	return workflow.NewCollection[models.JobDescription](client, "/api/job-descriptions/"), nil
}

func (j *jobsClient) list(cmd *cobra.Command, args []string) error {
	col, err := j.collection(cmd)
	if err != nil {
		return err
	}
	if err := col.List(cmd.Context()); err != nil {
		return err
	}
	if len(col.Items()) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No job descriptions saved yet")
		return nil
	}
	for _, item := range col.Items() {
		company := item.Company
		if company == "" {
			company = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
			item.ID, item.Title, company, item.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (j *jobsClient) add(cmd *cobra.Command, args []string) error {
	col, err := j.collection(cmd)
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")
	company, _ := cmd.Flags().GetString("company")
	description, _ := cmd.Flags().GetString("description")
	if title == "" {
		title = promptLine(cmd, "Title: ")
	}
	if description == "" {
		description = promptLine(cmd, "Description: ")
	}
	payload := models.JobDescriptionCreate{Title: title, Company: company, Description: description}
	if err := col.Create(cmd.Context(), payload); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Job description saved")
	return nil
}

func (j *jobsClient) delete(cmd *cobra.Command, args []string) error {
	col, err := j.collection(cmd)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		confirmed = confirm(cmd, fmt.Sprintf("Delete job description %d? [y/N]: ", id))
	}
	if err := col.Delete(cmd.Context(), id, confirmed); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
	return nil
}
