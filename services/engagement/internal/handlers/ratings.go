// Package handlers exposes the engagement operations over HTTP. The
// handlers are thin: request parsing and status mapping only, with
// every rule living in the service and store layers.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/studyshare/internal/platform/api"
	"github.com/example/studyshare/internal/platform/auth"
	"github.com/example/studyshare/internal/platform/httpserver"
	"github.com/example/studyshare/services/engagement/internal/service"
)

type submitRatingRequest struct {
	Difficulty int `json:"difficulty"`
	Quality    int `json:"quality"`
	Detail     int `json:"detail"`
}

// SubmitRating handles POST /v1/resources/{resource_id}/rate
func SubmitRating(svc *service.Ratings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		user, ok := auth.CurrentUserFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
			return
		}
		resourceID := strings.TrimSpace(chi.URLParam(r, "resource_id"))
		if resourceID == "" {
			api.BadRequest(w, "MISSING_ID", "resource_id is required", rid, nil)
			return
		}

		var req submitRatingRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", rid, nil)
			return
		}

		rating, err := svc.Submit(r.Context(), resourceID, user.ID, req.Difficulty, req.Quality, req.Detail)
		if err != nil {
			if errors.Is(err, service.ErrOutOfRange) {
				api.BadRequest(w, "SCORE_OUT_OF_RANGE", err.Error(), rid, nil)
				return
			}
			api.Internal(w, rid)
			return
		}
		api.WriteJSON(w, http.StatusOK, rating)
	}
}

// GetMyRating handles GET /v1/resources/{resource_id}/rate
// Responds 200 with a JSON null body when the user has not rated yet.
func GetMyRating(svc *service.Ratings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		user, ok := auth.CurrentUserFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
			return
		}
		resourceID := strings.TrimSpace(chi.URLParam(r, "resource_id"))
		if resourceID == "" {
			api.BadRequest(w, "MISSING_ID", "resource_id is required", rid, nil)
			return
		}

		rating, found, err := svc.Get(r.Context(), resourceID, user.ID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		if !found {
			api.WriteJSON(w, http.StatusOK, nil)
			return
		}
		api.WriteJSON(w, http.StatusOK, rating)
	}
}

// DeleteRating handles DELETE /v1/resources/{resource_id}/rate
func DeleteRating(svc *service.Ratings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		user, ok := auth.CurrentUserFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
			return
		}
		resourceID := strings.TrimSpace(chi.URLParam(r, "resource_id"))
		if resourceID == "" {
			api.BadRequest(w, "MISSING_ID", "resource_id is required", rid, nil)
			return
		}

		if err := svc.Delete(r.Context(), resourceID, user.ID); err != nil {
			api.Internal(w, rid)
			return
		}
		api.NoContent(w)
	}
}

// GetRatingSummary handles GET /v1/resources/{resource_id}/rating-summary
func GetRatingSummary(svc *service.Ratings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		resourceID := strings.TrimSpace(chi.URLParam(r, "resource_id"))
		if resourceID == "" {
			api.BadRequest(w, "MISSING_ID", "resource_id is required", rid, nil)
			return
		}

		stats, err := svc.Summary(r.Context(), resourceID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.WriteJSON(w, http.StatusOK, stats)
	}
}
