package httpapi

import (
	"errors"
	"net/http"

	"resumatch/internal/server/service"
	"resumatch/internal/shared/models"
)

func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	var in models.AnalyzeRequest
	if !r.decodeBody(w, req, &in) {
		return
	}
	if err := r.validate.Struct(in); err != nil {
		writeFieldErrors(w, http.StatusBadRequest, r.validationErrors(err))
		return
	}

	result, err := r.services.Analyses.Analyze(req.Context(), getUserID(req.Context()), in.ResumeID, in.JobDescriptionID)
	if err != nil {
		if errors.Is(err, service.ErrResumeNotFound) || errors.Is(err, service.ErrJobNotFound) {
			writeDetail(w, http.StatusNotFound, err.Error())
			return
		}
		r.logger.Printf("analyze: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to analyze resume")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (r *Router) handleListAnalyses(w http.ResponseWriter, req *http.Request) {
	analyses, err := r.services.Analyses.History(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.logger.Printf("list analyses: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}

func (r *Router) handleDashboardStats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.services.Analyses.Stats(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.logger.Printf("dashboard stats: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
