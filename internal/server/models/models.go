package models

import sm "resumatch/internal/shared/models"

type (
	User           = sm.User
	TokenPair      = sm.TokenPair
	AuthResponse   = sm.AuthResponse
	Resume         = sm.Resume
	JobDescription = sm.JobDescription
	Analysis       = sm.Analysis
	DashboardStats = sm.DashboardStats
)

// StoredResume adds the server-side fields that never go over the wire.
type StoredResume struct {
	Resume
	UserID        string
	StoredPath    string
	ExtractedText string
}
