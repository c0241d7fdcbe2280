package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"resumatch/internal/server/models"
	"resumatch/internal/server/repository"
)

type Repository struct {
	db *sql.DB
}

func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			username TEXT NOT NULL,
			password_hash BLOB NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS refresh_tokens (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);
		CREATE TABLE IF NOT EXISTS resumes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			original_filename TEXT NOT NULL,
			file_type TEXT NOT NULL,
			stored_path TEXT NOT NULL,
			extracted_text TEXT NOT NULL DEFAULT '',
			uploaded_at TIMESTAMP NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);
		CREATE TABLE IF NOT EXISTS job_descriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);
		CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			resume_json BLOB NOT NULL,
			job_json BLOB NOT NULL,
			ats_score INTEGER NOT NULL,
			extracted_skills BLOB NOT NULL,
			matched_skills BLOB NOT NULL,
			missing_keywords BLOB NOT NULL,
			recommendations TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY(user_id) REFERENCES users(id)
		);
	`); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// Users

func (r *Repository) CreateUser(ctx context.Context, email, username string, passwordHash []byte) (models.User, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(id,email,username,password_hash,created_at) VALUES(?,?,?,?,?)`,
		id, email, username, passwordHash, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return models.User{}, repository.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return models.User{ID: id, Email: email, Username: username}, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (models.User, []byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id,email,username,password_hash FROM users WHERE email = ?`, email)
	var u models.User
	var hash []byte
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, nil, repository.ErrNotFound
		}
		return models.User{}, nil, err
	}
	return u, hash, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id,email,username FROM users WHERE id = ?`, id)
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, repository.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// Refresh tokens

func (r *Repository) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens(token,user_id,expires_at,created_at) VALUES(?,?,?,?)`,
		token, userID, expiresAt, time.Now().UTC())
	return err
}

func (r *Repository) GetRefreshToken(ctx context.Context, token string) (string, time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id,expires_at FROM refresh_tokens WHERE token = ?`, token)
	var userID string
	var expiresAt time.Time
	if err := row.Scan(&userID, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, repository.ErrNotFound
		}
		return "", time.Time{}, err
	}
	return userID, expiresAt, nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = ?`, token)
	return err
}

// Resumes

func (r *Repository) CreateResume(ctx context.Context, rec models.StoredResume) (models.Resume, error) {
	rec.UploadedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO resumes(user_id,original_filename,file_type,stored_path,extracted_text,uploaded_at) VALUES(?,?,?,?,?,?)`,
		rec.UserID, rec.OriginalFilename, rec.FileType, rec.StoredPath, rec.ExtractedText, rec.UploadedAt)
	if err != nil {
		return models.Resume{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Resume{}, err
	}
	rec.ID = int(id)
	return rec.Resume, nil
}

func (r *Repository) ListResumes(ctx context.Context, userID string) ([]models.Resume, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,original_filename,file_type,uploaded_at FROM resumes WHERE user_id = ? ORDER BY uploaded_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Resume{}
	for rows.Next() {
		var m models.Resume
		if err := rows.Scan(&m.ID, &m.OriginalFilename, &m.FileType, &m.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) GetResume(ctx context.Context, userID string, id int) (models.StoredResume, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,original_filename,file_type,stored_path,extracted_text,uploaded_at FROM resumes WHERE id = ? AND user_id = ?`,
		id, userID)
	var m models.StoredResume
	m.UserID = userID
	if err := row.Scan(&m.ID, &m.OriginalFilename, &m.FileType, &m.StoredPath, &m.ExtractedText, &m.UploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoredResume{}, repository.ErrNotFound
		}
		return models.StoredResume{}, err
	}
	return m, nil
}

func (r *Repository) DeleteResume(ctx context.Context, userID string, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Job descriptions

func (r *Repository) CreateJob(ctx context.Context, userID string, job models.JobDescription) (models.JobDescription, error) {
	job.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO job_descriptions(user_id,title,company,description,created_at) VALUES(?,?,?,?,?)`,
		userID, job.Title, job.Company, job.Description, job.CreatedAt)
	if err != nil {
		return models.JobDescription{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.JobDescription{}, err
	}
	job.ID = int(id)
	return job, nil
}

func (r *Repository) ListJobs(ctx context.Context, userID string) ([]models.JobDescription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,title,company,description,created_at FROM job_descriptions WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.JobDescription{}
	for rows.Next() {
		var m models.JobDescription
		if err := rows.Scan(&m.ID, &m.Title, &m.Company, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) GetJob(ctx context.Context, userID string, id int) (models.JobDescription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id,title,company,description,created_at FROM job_descriptions WHERE id = ? AND user_id = ?`,
		id, userID)
	var m models.JobDescription
	if err := row.Scan(&m.ID, &m.Title, &m.Company, &m.Description, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JobDescription{}, repository.ErrNotFound
		}
		return models.JobDescription{}, err
	}
	return m, nil
}

func (r *Repository) DeleteJob(ctx context.Context, userID string, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_descriptions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Analyses. The resume and job description are stored as JSON snapshots so
// history records survive deletion of either side.

func (r *Repository) CreateAnalysis(ctx context.Context, userID string, a models.Analysis) (models.Analysis, error) {
	a.CreatedAt = time.Now().UTC()
	resumeJSON, _ := json.Marshal(a.Resume)
	jobJSON, _ := json.Marshal(a.JobDescription)
	extracted, _ := json.Marshal(a.ExtractedSkills)
	matched, _ := json.Marshal(a.MatchedSkills)
	missing, _ := json.Marshal(a.MissingKeywords)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO analyses(user_id,resume_json,job_json,ats_score,extracted_skills,matched_skills,missing_keywords,recommendations,created_at)
		VALUES(?,?,?,?,?,?,?,?,?)`,
		userID, resumeJSON, jobJSON, a.ATSScore, extracted, matched, missing, a.Recommendations, a.CreatedAt)
	if err != nil {
		return models.Analysis{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Analysis{}, err
	}
	a.ID = int(id)
	return a, nil
}

func (r *Repository) ListAnalyses(ctx context.Context, userID string, limit int) ([]models.Analysis, error) {
	query := `SELECT id,resume_json,job_json,ats_score,extracted_skills,matched_skills,missing_keywords,recommendations,created_at
		FROM analyses WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Analysis{}
	for rows.Next() {
		var a models.Analysis
		var resumeJSON, jobJSON, extracted, matched, missing []byte
		if err := rows.Scan(&a.ID, &resumeJSON, &jobJSON, &a.ATSScore, &extracted, &matched, &missing, &a.Recommendations, &a.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(resumeJSON, &a.Resume)
		_ = json.Unmarshal(jobJSON, &a.JobDescription)
		_ = json.Unmarshal(extracted, &a.ExtractedSkills)
		_ = json.Unmarshal(matched, &a.MatchedSkills)
		_ = json.Unmarshal(missing, &a.MissingKeywords)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats

func (r *Repository) CountStats(ctx context.Context, userID string) (resumes, jobs, analyses int, avgScore float64, err error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM resumes WHERE user_id = ?),
			(SELECT COUNT(*) FROM job_descriptions WHERE user_id = ?),
			(SELECT COUNT(*) FROM analyses WHERE user_id = ?),
			(SELECT COALESCE(AVG(ats_score), 0) FROM analyses WHERE user_id = ?)`,
		userID, userID, userID, userID)
	err = row.Scan(&resumes, &jobs, &analyses, &avgScore)
	return
}
