package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/reviewflash/internal/auth"
	"github.com/vytor/reviewflash/internal/errors"
	"github.com/vytor/reviewflash/internal/models"
)

func (s *Server) handleGetModule(w http.ResponseWriter, r *http.Request) {
	module, err := s.ModuleService.GetModule(r.Context(), chi.URLParam(r, "moduleID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, module)
}

func (s *Server) handleSaveModule(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")

	var module models.Module
	if err := decodeJSON(w, r, &module); err != nil {
		handleError(w, r, err)
		return
	}
	if module.ID != "" && module.ID != moduleID {
		handleError(w, r, errors.NewBadRequestError("module id in body does not match path"))
		return
	}
	module.ID = moduleID

	saved, err := s.ModuleService.SaveModule(r.Context(), module)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, saved)
}

func (s *Server) handleDeleteModule(w http.ResponseWriter, r *http.Request) {
	if err := s.ModuleService.DeleteModule(r.Context(), chi.URLParam(r, "moduleID")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGenerateForModule schedules review items for everything reviewable in
// the module, typically when the student completes it.
func (s *Server) handleGenerateForModule(w http.ResponseWriter, r *http.Request) {
	created, err := s.ReviewService.GenerateForModule(r.Context(), auth.StudentID(r.Context()), chi.URLParam(r, "moduleID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, itemsResponse{Items: created, Count: len(created)})
}
