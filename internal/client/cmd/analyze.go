package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resumatch/internal/client/workflow"
)

type analyzeClient struct {
	serverURL *string
}

func newAnalyzeCmd(serverURL *string) *cobra.Command {
	a := &analyzeClient{serverURL: serverURL}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description",
		RunE:  a.run,
	}
	cmd.Flags().String("resume", "", "Resume id")
	cmd.Flags().String("job", "", "Job description id")
	return cmd
}

func (a *analyzeClient) run(cmd *cobra.Command, args []string) error {
	mgr, client := newSession(cmd.Context(), *a.serverURL)
	if err := requireAuth(mgr); err != nil {
		return err
	}

	flow := workflow.NewAnalysis(client)
	flow.Start(cmd.Context())

	resumeID, _ := cmd.Flags().GetString("resume")
	jobID, _ := cmd.Flags().GetString("job")

	if resumeID == "" {
		if len(flow.Resumes.Items()) == 0 {
			return fmt.Errorf("no resumes uploaded, run 'resumatch resumes upload' first")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Resumes:")
		for _, r := range flow.Resumes.Items() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d\t%s\n", r.ID, r.OriginalFilename)
		}
		resumeID = promptLine(cmd, "Resume id: ")
	}
	if jobID == "" {
		if len(flow.Jobs.Items()) == 0 {
			return fmt.Errorf("no job descriptions saved, run 'resumatch jobs add' first")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Job descriptions:")
		for _, j := range flow.Jobs.Items() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d\t%s\n", j.ID, j.Title)
		}
		jobID = promptLine(cmd, "Job description id: ")
	}

	if err := flow.Submit(cmd.Context(), resumeID, jobID); err != nil {
		return err
	}

	result := flow.Result()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ATS score: %d%%\n", result.ATSScore)
	fmt.Fprintf(out, "Extracted skills: %s\n", joinOrDash(result.ExtractedSkills))
	fmt.Fprintf(out, "Matched skills:   %s\n", joinOrDash(result.MatchedSkills))
	fmt.Fprintf(out, "Missing keywords: %s\n", joinOrDash(result.MissingKeywords))
	if result.Recommendations != "" {
		fmt.Fprintf(out, "Recommendations:\n%s\n", result.Recommendations)
	}
	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
