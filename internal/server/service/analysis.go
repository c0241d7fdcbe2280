package service

import (
	"context"
	"errors"

	"resumatch/internal/server/analyzer"
	"resumatch/internal/server/models"
	"resumatch/internal/server/repository"
)

var (
	ErrResumeNotFound = errors.New("Resume not found")
	ErrJobNotFound    = errors.New("Job description not found")
)

// AnalysisService pairs a stored resume with a job description, scores
// the pair and records the result with frozen snapshots of both sides.
type AnalysisService struct {
	repo Repository
}

func (s *AnalysisService) Analyze(ctx context.Context, userID string, resumeID, jobID int) (models.Analysis, error) {
	resume, err := s.repo.GetResume(ctx, userID, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Analysis{}, ErrResumeNotFound
		}
		return models.Analysis{}, err
	}
	job, err := s.repo.GetJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Analysis{}, ErrJobNotFound
		}
		return models.Analysis{}, err
	}

	scored := analyzer.Score(resume.ExtractedText, job.Title+" "+job.Description)

	resumeSnapshot := resume.Resume
	jobSnapshot := job
	result := models.Analysis{
		Resume:          &resumeSnapshot,
		JobDescription:  &jobSnapshot,
		ATSScore:        scored.Score,
		ExtractedSkills: scored.ExtractedSkills,
		MatchedSkills:   scored.MatchedSkills,
		MissingKeywords: scored.MissingKeywords,
		Recommendations: scored.Recommendations,
	}
	return s.repo.CreateAnalysis(ctx, userID, result)
}

func (s *AnalysisService) History(ctx context.Context, userID string) ([]models.Analysis, error) {
	return s.repo.ListAnalyses(ctx, userID, 0)
}

// Stats aggregates the dashboard numbers plus the five most recent
// analyses.
func (s *AnalysisService) Stats(ctx context.Context, userID string) (models.DashboardStats, error) {
	resumes, jobs, analyses, avg, err := s.repo.CountStats(ctx, userID)
	if err != nil {
		return models.DashboardStats{}, err
	}
	recent, err := s.repo.ListAnalyses(ctx, userID, 5)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return models.DashboardStats{
		TotalResumes:    resumes,
		TotalJobs:       jobs,
		TotalAnalyses:   analyses,
		AverageATSScore: avg,
		RecentAnalyses:  recent,
	}, nil
}
