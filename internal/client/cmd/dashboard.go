package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"resumatch/internal/shared/models"
)

func newDashboardCmd(serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show account statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, client := newSession(cmd.Context(), *serverURL)
			if err := requireAuth(mgr); err != nil {
				return err
			}
			var stats models.DashboardStats
			if err := client.GetJSON(cmd.Context(), "/api/dashboard/stats/", &stats); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Resumes:          %d\n", stats.TotalResumes)
			fmt.Fprintf(out, "Job descriptions: %d\n", stats.TotalJobs)
			fmt.Fprintf(out, "Analyses:         %d\n", stats.TotalAnalyses)
			fmt.Fprintf(out, "Average score:    %.1f%%\n", stats.AverageATSScore)
			for _, a := range stats.RecentAnalyses {
				title := "?"
				if a.JobDescription != nil {
					title = a.JobDescription.Title
				}
				fmt.Fprintf(out, "  recent: %d%% against %s\n", a.ATSScore, title)
			}
			return nil
		},
	}
}
