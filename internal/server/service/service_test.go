package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"resumatch/internal/server/config"
	"resumatch/internal/server/repository/sqlite"
)

type textExtractor struct{}

func (textExtractor) ExtractText(_ string, data []byte) (string, error) {
	return string(data), nil
}

func newTestServices(t *testing.T) (*Services, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := sqlite.New("file:" + filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	cfg := config.Config{JWTSecret: "test-secret", UploadDir: filepath.Join(dir, "uploads")}
	return NewServices(repo, cfg, textExtractor{}), dir
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	user, err := svcs.Auth.Register(ctx, "a@b.c", "alice", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svcs.Auth.Authenticate(ctx, "a@b.c", "password123")
	if err != nil || got.ID != user.ID {
		t.Fatalf("Authenticate = %+v %v", got, err)
	}

	if _, err := svcs.Auth.Authenticate(ctx, "a@b.c", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svcs.Auth.Authenticate(ctx, "nobody@b.c", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	user, err := svcs.Auth.Register(ctx, "a@b.c", "alice", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	pair, err := svcs.Auth.IssueTokens(ctx, user.ID)
	if err != nil {
		t.Fatalf("IssueTokens: %v", err)
	}
	sub, err := svcs.Auth.ParseToken(ctx, pair.Access)
	if err != nil || sub != user.ID {
		t.Fatalf("ParseToken = %q %v", sub, err)
	}

	if _, err := svcs.Auth.ParseToken(ctx, pair.Access+"x"); err == nil {
		t.Fatal("tampered token accepted")
	}
	if _, err := svcs.Auth.ParseToken(ctx, "garbage"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestRefreshRotation(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	user, err := svcs.Auth.Register(ctx, "a@b.c", "alice", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	pair, err := svcs.Auth.IssueTokens(ctx, user.ID)
	if err != nil {
		t.Fatalf("IssueTokens: %v", err)
	}

	next, err := svcs.Auth.Refresh(ctx, pair.Refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.Refresh == pair.Refresh {
		t.Fatal("refresh token was not rotated")
	}
	if _, err := svcs.Auth.Refresh(ctx, pair.Refresh); err == nil {
		t.Fatal("replayed refresh token accepted")
	}
}

func TestUploadRejectsUnsupportedTypes(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	user, _ := svcs.Auth.Register(ctx, "a@b.c", "alice", "password123")

	if _, err := svcs.Resumes.Upload(ctx, user.ID, "notes.txt", []byte("x")); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("txt upload: %v", err)
	}
}

func TestUploadStoresFileAndText(t *testing.T) {
	svcs, dir := newTestServices(t)
	ctx := context.Background()
	user, _ := svcs.Auth.Register(ctx, "a@b.c", "alice", "password123")

	resume, err := svcs.Resumes.Upload(ctx, user.ID, "cv.pdf", []byte("python and react"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if resume.FileType != "PDF" || resume.OriginalFilename != "cv.pdf" {
		t.Fatalf("resume = %+v", resume)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "uploads"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("uploads dir: %v %v", entries, err)
	}

	if err := svcs.Resumes.Delete(ctx, user.ID, resume.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	entries, _ = os.ReadDir(filepath.Join(dir, "uploads"))
	if len(entries) != 0 {
		t.Fatalf("stored file not removed: %v", entries)
	}
}

func TestAnalyzeUnknownIDs(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	user, _ := svcs.Auth.Register(ctx, "a@b.c", "alice", "password123")

	job, err := svcs.Jobs.Create(ctx, user.ID, "Backend", "", "python")
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}

	if _, err := svcs.Analyses.Analyze(ctx, user.ID, 999, job.ID); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("missing resume: %v", err)
	}

	resume, err := svcs.Resumes.Upload(ctx, user.ID, "cv.pdf", []byte("python"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := svcs.Analyses.Analyze(ctx, user.ID, resume.ID, 999); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("missing job: %v", err)
	}

	result, err := svcs.Analyses.Analyze(ctx, user.ID, resume.ID, job.ID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.ATSScore != 100 {
		t.Fatalf("score = %d", result.ATSScore)
	}
	if result.Resume == nil || result.Resume.ID != resume.ID {
		t.Fatalf("snapshot = %+v", result.Resume)
	}
}

func TestRefreshTokenExpiry(t *testing.T) {
	dir := t.TempDir()
	repo, err := sqlite.New("file:" + filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	svcs := NewServices(repo, config.Config{JWTSecret: "test"}, textExtractor{})
	ctx := context.Background()

	user, _ := svcs.Auth.Register(ctx, "a@b.c", "alice", "password123")
	if err := repo.CreateRefreshToken(ctx, user.ID, "stale", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CreateRefreshToken: %v", err)
	}

	if _, err := svcs.Auth.Refresh(ctx, "stale"); err == nil {
		t.Fatal("expired refresh token accepted")
	}
	if _, _, err := repo.GetRefreshToken(ctx, "stale"); err == nil {
		t.Fatal("expired token should be purged on use")
	}
}
