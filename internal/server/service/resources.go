package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"resumatch/internal/server/analyzer"
	"resumatch/internal/server/models"
)

// ErrUnsupportedFileType rejects resume uploads that are neither PDF nor
// DOCX.
var ErrUnsupportedFileType = errors.New("only PDF and DOCX files are allowed")

// ResumeService stores uploaded resumes on disk and extracts their text
// for later scoring.
type ResumeService struct {
	repo      Repository
	extractor analyzer.Extractor
	uploadDir string
}

func (s *ResumeService) Upload(ctx context.Context, userID, filename string, data []byte) (models.Resume, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" && ext != ".docx" {
		return models.Resume{}, ErrUnsupportedFileType
	}

	if err := os.MkdirAll(s.uploadDir, 0750); err != nil {
		return models.Resume{}, fmt.Errorf("create upload dir: %w", err)
	}
	storedPath := filepath.Join(s.uploadDir, uuid.NewString()+ext)
	if err := os.WriteFile(storedPath, data, 0640); err != nil {
		return models.Resume{}, fmt.Errorf("store upload: %w", err)
	}

	// Extraction failures are tolerated: the resume is kept with empty
	// text and simply scores poorly until re-uploaded.
	text, err := s.extractor.ExtractText(filename, data)
	if err != nil {
		text = ""
	}

	rec := models.StoredResume{
		UserID:        userID,
		StoredPath:    storedPath,
		ExtractedText: text,
	}
	rec.OriginalFilename = filename
	rec.FileType = strings.ToUpper(strings.TrimPrefix(ext, "."))
	return s.repo.CreateResume(ctx, rec)
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]models.Resume, error) {
	return s.repo.ListResumes(ctx, userID)
}

func (s *ResumeService) Delete(ctx context.Context, userID string, id int) error {
	rec, err := s.repo.GetResume(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteResume(ctx, userID, id); err != nil {
		return err
	}
	// Stored file removal is best effort; the row is already gone.
	_ = os.Remove(rec.StoredPath)
	return nil
}

type JobService struct {
	repo Repository
}

func (s *JobService) Create(ctx context.Context, userID, title, company, description string) (models.JobDescription, error) {
	job := models.JobDescription{Title: title, Company: company, Description: description}
	return s.repo.CreateJob(ctx, userID, job)
}

func (s *JobService) List(ctx context.Context, userID string) ([]models.JobDescription, error) {
	return s.repo.ListJobs(ctx, userID)
}

func (s *JobService) Delete(ctx context.Context, userID string, id int) error {
	return s.repo.DeleteJob(ctx, userID, id)
}
