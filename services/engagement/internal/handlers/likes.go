package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/studyshare/internal/platform/api"
	"github.com/example/studyshare/internal/platform/auth"
	"github.com/example/studyshare/internal/platform/httpserver"
	"github.com/example/studyshare/services/engagement/internal/service"
)

// ToggleLike handles POST /v1/resources/{resource_id}/like
func ToggleLike(svc *service.Likes) http.HandlerFunc {
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

		status, err := svc.Toggle(r.Context(), resourceID, user.ID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.WriteJSON(w, http.StatusOK, status)
	}
}

// GetLikeStatus handles GET /v1/resources/{resource_id}/like
// Anonymous callers get isLiked=false with the real count.
func GetLikeStatus(svc *service.Likes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		resourceID := strings.TrimSpace(chi.URLParam(r, "resource_id"))
		if resourceID == "" {
			api.BadRequest(w, "MISSING_ID", "resource_id is required", rid, nil)
			return
		}

		var userID string
		if user, ok := auth.CurrentUserFromContext(r.Context()); ok {
			userID = user.ID
		}

		status, err := svc.Status(r.Context(), resourceID, userID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.WriteJSON(w, http.StatusOK, status)
	}
}
