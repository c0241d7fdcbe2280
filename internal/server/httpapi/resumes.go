package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"resumatch/internal/server/repository"
	"resumatch/internal/server/service"
)

func (r *Router) handleListResumes(w http.ResponseWriter, req *http.Request) {
	resumes, err := r.services.Resumes.List(req.Context(), getUserID(req.Context()))
	if err != nil {
		r.logger.Printf("list resumes: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list resumes")
		return
	}
	writeJSON(w, http.StatusOK, resumes)
}

func (r *Router) handleUploadResume(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxRequestBytes)
	if err := req.ParseMultipartForm(r.maxRequestBytes); err != nil {
		writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"file": {"File is required"},
		})
		return
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"file": {"File is required"},
		})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	resume, err := r.services.Resumes.Upload(req.Context(), getUserID(req.Context()), header.Filename, data)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
				"file": {"Only PDF and DOCX files are allowed"},
			})
			return
		}
		r.logger.Printf("upload resume: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to store resume")
		return
	}
	writeJSON(w, http.StatusCreated, resume)
}

func (r *Router) handleDeleteResume(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if err := r.services.Resumes.Delete(req.Context(), getUserID(req.Context()), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		r.logger.Printf("delete resume: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to delete resume")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
