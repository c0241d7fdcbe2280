package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version, buildDate string) *cobra.Command {
	var serverURL string
	root := &cobra.Command{
		Use:   "resumatch",
		Short: "Resume and job matching CLI",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server base URL")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newAuthCmd(&serverURL))
	root.AddCommand(newResumesCmd(&serverURL))
	root.AddCommand(newJobsCmd(&serverURL))
	root.AddCommand(newAnalyzeCmd(&serverURL))
	root.AddCommand(newHistoryCmd(&serverURL))
	root.AddCommand(newDashboardCmd(&serverURL))
	return root
}
