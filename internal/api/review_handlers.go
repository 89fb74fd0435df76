package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/reviewflash/internal/auth"
	"github.com/vytor/reviewflash/internal/models"
)

type itemsResponse struct {
	Items []models.ReviewItem `json:"items"`
	Count int                 `json:"count"`
}

type generateRequest struct {
	Candidates []models.ReviewCandidate `json:"candidates"`
}

type reviewRequest struct {
	Quality          *int    `json:"quality" validate:"required,min=0,max=5"`
	TimeSpentSeconds float64 `json:"timeSpentSeconds" validate:"min=0"`
}

type historyResponse struct {
	Items []models.ReviewHistory `json:"items"`
}

func (s *Server) handleGenerateReviewItems(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.ReviewService.GenerateReviewItems(r.Context(),
		auth.StudentID(r.Context()), chi.URLParam(r, "courseID"), chi.URLParam(r, "moduleID"), req.Candidates)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, itemsResponse{Items: created, Count: len(created)})
}

func (s *Server) handleDueItems(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}

	items, err := s.ReviewService.GetDueItems(r.Context(), auth.StudentID(r.Context()), r.URL.Query().Get("courseId"), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, itemsResponse{Items: items, Count: len(items)})
}

func (s *Server) handleReviewItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		handleError(w, r, err)
		return
	}

	item, err := s.ReviewService.UpdateReviewItem(r.Context(), auth.StudentID(r.Context()), itemID, *req.Quality, req.TimeSpentSeconds)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleReviewHistory(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	history, err := s.ReviewService.GetReviewHistory(r.Context(), auth.StudentID(r.Context()), itemID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, historyResponse{Items: history})
}

func (s *Server) handleReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ReviewService.GetReviewStats(r.Context(), auth.StudentID(r.Context()), r.URL.Query().Get("courseId"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
