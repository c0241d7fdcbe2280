package models

import "time"

// User is the authenticated account as the profile endpoint returns it.
// It is never mutated locally; each profile fetch replaces it wholesale.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenPair is the access/refresh credential pair issued on login and register.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthResponse is the success shape of the login and register endpoints.
type AuthResponse struct {
	Tokens TokenPair `json:"tokens"`
	User   User      `json:"user"`
}

type Resume struct {
	ID               int       `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	FileType         string    `json:"file_type"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

type JobDescription struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Analysis is one scoring of a (resume, job description) pair. History
// entries embed snapshots of both sides frozen at submission time, so
// deleting the underlying resume later does not retract the record.
type Analysis struct {
	ID              int             `json:"id,omitempty"`
	Resume          *Resume         `json:"resume,omitempty"`
	JobDescription  *JobDescription `json:"job_description,omitempty"`
	ATSScore        int             `json:"ats_score"`
	ExtractedSkills []string        `json:"extracted_skills"`
	MatchedSkills   []string        `json:"matched_skills"`
	MissingKeywords []string        `json:"missing_keywords"`
	Recommendations string          `json:"recommendations"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
}

type DashboardStats struct {
	TotalResumes    int        `json:"total_resumes"`
	TotalJobs       int        `json:"total_jobs"`
	TotalAnalyses   int        `json:"total_analyses"`
	AverageATSScore float64    `json:"average_ats_score"`
	RecentAnalyses  []Analysis `json:"recent_analyses"`
}

// RegisterRequest is the registration payload. Both password fields are
// submitted; the server re-checks the match.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type JobDescriptionCreate struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company"`
	Description string `json:"description" validate:"required"`
}

// AnalyzeRequest pairs a resume with a job description by their server ids.
type AnalyzeRequest struct {
	ResumeID         int `json:"resume_id" validate:"required"`
	JobDescriptionID int `json:"job_description_id" validate:"required"`
}
