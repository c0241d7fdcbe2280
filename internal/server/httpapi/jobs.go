package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"resumatch/internal/server/repository"
	"resumatch/internal/shared/models"
)

func (r *Router) handleListJobs(w http.ResponseWriter, req *http.Request) {
	jobs, err := r.services.Jobs.List(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.logger.Printf("list jobs: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list job descriptions")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (r *Router) handleCreateJob(w http.ResponseWriter, req *http.Request) {
	var in models.JobDescriptionCreate
	if !r.decodeBody(w, req, &in) {
		return
	}
	if err := r.validate.Struct(in); err != nil {
		writeFieldErrors(w, http.StatusBadRequest, r.validationErrors(err))
		return
	}

	job, err := r.services.Jobs.Create(req.Context(), getUserID(req.Context()), in.Title, in.Company, in.Description)
	if err != nil {
		r.logger.Printf("create job: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create job description")
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (r *Router) handleDeleteJob(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err := r.services.Jobs.Delete(req.Context(), getUserID(req.Context()), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		r.logger.Printf("delete job: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to delete job description")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
