package service

import (
	"context"
	"time"

	"resumatch/internal/server/analyzer"
	"resumatch/internal/server/config"
	"resumatch/internal/server/models"
)

type Repository interface {
	CreateUser(ctx context.Context, email, username string, passwordHash []byte) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, []byte, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)

	CreateRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (string, time.Time, error)
	DeleteRefreshToken(ctx context.Context, token string) error

	CreateResume(ctx context.Context, rec models.StoredResume) (models.Resume, error)
	ListResumes(ctx context.Context, userID string) ([]models.Resume, error)
	GetResume(ctx context.Context, userID string, id int) (models.StoredResume, error)
	DeleteResume(ctx context.Context, userID string, id int) error

	CreateJob(ctx context.Context, userID string, job models.JobDescription) (models.JobDescription, error)
	ListJobs(ctx context.Context, userID string) ([]models.JobDescription, error)
	GetJob(ctx context.Context, userID string, id int) (models.JobDescription, error)
	DeleteJob(ctx context.Context, userID string, id int) error

	CreateAnalysis(ctx context.Context, userID string, a models.Analysis) (models.Analysis, error)
	ListAnalyses(ctx context.Context, userID string, limit int) ([]models.Analysis, error)
	CountStats(ctx context.Context, userID string) (resumes, jobs, analyses int, avgScore float64, err error)
}

type Services struct {
	Auth     *AuthService
	Resumes  *ResumeService
	Jobs     *JobService
	Analyses *AnalysisService
}

func NewServices(repo Repository, cfg config.Config, extractor analyzer.Extractor) *Services {
	return &Services{
		Auth:     &AuthService{repo: repo, jwtSecret: []byte(cfg.JWTSecret)},
		Resumes:  &ResumeService{repo: repo, extractor: extractor, uploadDir: cfg.UploadDir},
		Jobs:     &JobService{repo: repo},
		Analyses: &AnalysisService{repo: repo},
	}
}
