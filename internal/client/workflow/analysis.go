package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"resumatch/internal/client/api"
	"resumatch/internal/shared/models"
)

// Phase of the analysis submission state machine.
type Phase int

const (
	Idle Phase = iota
	Submitting
	Done
	Failed
)

var (
	// ErrSelectionRequired is the local validation error for an empty
	// resume or job selection. It never reaches the network.
	ErrSelectionRequired = errors.New("select both a resume and a job description")
	// ErrSubmitPending rejects a submission while one is already in
	// flight; resubmission does not supersede the outstanding request.
	ErrSubmitPending = errors.New("analysis already in progress")
)

// Analysis drives the select-and-submit flow: it loads the two candidate
// lists, validates the selection locally and freezes the returned result.
// Presenting a result never refetches the underlying lists.
type Analysis struct {
	Resumes *Collection[models.Resume]
	Jobs    *Collection[models.JobDescription]

	client    *api.Client
	phase     Phase
	selResume string
	selJob    string
	result    *models.Analysis
	errMsg    string
}

func NewAnalysis(client *api.Client) *Analysis {
	return &Analysis{
		client:  client,
		Resumes: NewCollection[models.Resume](client, "/api/resumes/"),
		Jobs:    NewCollection[models.JobDescription](client, "/api/job-descriptions/"),
	}
}

// Start fetches both candidate lists concurrently. Either fetch may fail
// without blocking the other; each collection keeps its own error.
func (a *Analysis) Start(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _ = a.Resumes.List(ctx) }()
	go func() { defer wg.Done(); _ = a.Jobs.List(ctx) }()
	wg.Wait()
}

func (a *Analysis) Phase() Phase             { return a.phase }
func (a *Analysis) Result() *models.Analysis { return a.result }
func (a *Analysis) ErrorMessage() string     { return a.errMsg }

// Selection returns the currently selected (resume, job) id pair.
func (a *Analysis) Selection() (string, string) { return a.selResume, a.selJob }

// Submit scores the selected pair. Both ids must be non-empty; a violated
// precondition fails locally before any request. Ids are coerced to the
// server's integer form. On success the returned result is stored as an
// immutable snapshot; on failure the server's detail message (or a generic
// one) becomes the error state. A previous Failed phase does not block the
// next valid attempt.
func (a *Analysis) Submit(ctx context.Context, resumeID, jobID string) error {
	if a.phase == Submitting {
		return ErrSubmitPending
	}
	resumeID, jobID = strings.TrimSpace(resumeID), strings.TrimSpace(jobID)
	if resumeID == "" || jobID == "" {
		return ErrSelectionRequired
	}
	rid, err := strconv.Atoi(resumeID)
	if err != nil {
		return fmt.Errorf("invalid resume id %q", resumeID)
	}
	jid, err := strconv.Atoi(jobID)
	if err != nil {
		return fmt.Errorf("invalid job description id %q", jobID)
	}

	a.phase = Submitting
	a.selResume, a.selJob = resumeID, jobID
	a.result, a.errMsg = nil, ""

	var out models.Analysis
	req := models.AnalyzeRequest{ResumeID: rid, JobDescriptionID: jid}
	if err := a.client.PostJSON(ctx, "/api/analyze/", req, &out); err != nil {
		a.phase = Failed
		a.errMsg = submitErrorMessage(err)
		return errors.New(a.errMsg)
	}
	a.phase = Done
	a.result = &out
	return nil
}

// Reset returns to a fresh Idle, clearing the selection along with any
// result or error.
func (a *Analysis) Reset() {
	a.phase = Idle
	a.selResume, a.selJob = "", ""
	a.result = nil
	a.errMsg = ""
}

func submitErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return "Failed to analyze resume"
}
