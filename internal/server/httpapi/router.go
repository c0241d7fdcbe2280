package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"resumatch/internal/server/service"
)

type Router struct {
	services        *service.Services
	logger          *log.Logger
	maxRequestBytes int64
	validate        *validator.Validate
}

func NewRouter(services *service.Services, logger *log.Logger, maxRequestBytes int64) http.Handler {
	validate := validator.New()
	// Report errors under the wire field names, not the Go ones.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	r := &Router{services: services, logger: logger, maxRequestBytes: maxRequestBytes, validate: validate}
	mux := chi.NewRouter()

	mux.Get("/health", r.handleHealth)
	mux.Post("/api/auth/register/", r.handleRegister)
	mux.Post("/api/auth/login/", r.handleLogin)
	mux.Post("/api/auth/refresh/", r.handleRefresh)

	mux.Group(func(pr chi.Router) {
		pr.Use(r.authMiddleware)
		pr.Get("/api/auth/profile/", r.handleProfile)
		pr.Get("/api/resumes/", r.handleListResumes)
		pr.Post("/api/resumes/", r.handleUploadResume)
		pr.Delete("/api/resumes/{id}/", r.handleDeleteResume)
		pr.Get("/api/job-descriptions/", r.handleListJobs)
		pr.Post("/api/job-descriptions/", r.handleCreateJob)
		pr.Delete("/api/job-descriptions/{id}/", r.handleDeleteJob)
		pr.Post("/api/analyze/", r.handleAnalyze)
		pr.Get("/api/analyses/", r.handleListAnalyses)
		pr.Get("/api/dashboard/stats/", r.handleDashboardStats)
	})

	return mux
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail emits the {"detail": "..."} error shape.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeFieldErrors emits the {"field": ["msg", ...]} error shape.
func writeFieldErrors(w http.ResponseWriter, status int, fields map[string][]string) {
	writeJSON(w, status, fields)
}

// validationErrors converts validator failures into a field-error map.
func (r *Router) validationErrors(err error) map[string][]string {
	fields := map[string][]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["non_field_errors"] = []string{"Invalid request"}
		return fields
	}
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = "non_field_errors"
		}
		fields[name] = append(fields[name], validationMessage(fe))
	}
	return fields
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Ensure this field has at least " + fe.Param() + " characters."
	default:
		return "This field is invalid."
	}
}
