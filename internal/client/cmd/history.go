package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"resumatch/internal/client/workflow"
	"resumatch/internal/shared/models"
)

func newHistoryCmd(serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, client := newSession(cmd.Context(), *serverURL)
			if err := requireAuth(mgr); err != nil {
				return err
			}
			col := workflow.NewCollection[models.Analysis](client, "/api/analyses/")
			if err := col.List(cmd.Context()); err != nil {
				return err
			}
			if len(col.Items()) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses yet")
				return nil
			}
			for _, a := range col.Items() {
				title := "?"
				if a.JobDescription != nil {
					title = a.JobDescription.Title
				}
				filename := "?"
				if a.Resume != nil {
					filename = a.Resume.OriginalFilename
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d%%\t%s vs %s\t%s\n",
					a.ID, a.ATSScore, filename, title, a.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
