package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/studyshare/internal/platform/api"
	"github.com/example/studyshare/internal/platform/auth"
	"github.com/example/studyshare/internal/platform/httpserver"
	"github.com/example/studyshare/services/engagement/internal/service"
	"github.com/example/studyshare/services/engagement/internal/store"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

type commentListResponse struct {
	Comments []store.Comment `json:"comments"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PerPage  int             `json:"perPage"`
}

// CreateComment handles POST /v1/resources/{resource_id}/comments
func CreateComment(svc *service.Comments) http.HandlerFunc {
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

		var req createCommentRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", rid, nil)
			return
		}

		comment, err := svc.Create(r.Context(), resourceID, user.ID, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyContent):
				api.BadRequest(w, "EMPTY_CONTENT", "comment content is required", rid, nil)
			case errors.Is(err, service.ErrContentTooLong):
				api.BadRequest(w, "CONTENT_TOO_LONG", "comment content is too long", rid, nil)
			default:
				api.Internal(w, rid)
			}
			return
		}
		api.WriteJSON(w, http.StatusCreated, comment)
	}
}

// ListComments handles GET /v1/resources/{resource_id}/comments?page=&per_page=
func ListComments(svc *service.Comments) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		resourceID := strings.TrimSpace(chi.URLParam(r, "resource_id"))
		if resourceID == "" {
			api.BadRequest(w, "MISSING_ID", "resource_id is required", rid, nil)
			return
		}

		page := queryInt(r, "page", 1)
		perPage := queryInt(r, "per_page", 20)

		comments, total, err := svc.List(r.Context(), resourceID, page, perPage)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		if comments == nil {
			comments = []store.Comment{}
		}
		api.WriteJSON(w, http.StatusOK, commentListResponse{
			Comments: comments,
			Total:    total,
			Page:     page,
			PerPage:  perPage,
		})
	}
}

// DeleteComment handles DELETE /v1/comments/{comment_id}
// 204 when deleted, 403 when the caller is neither author nor admin,
// 404 when the comment does not exist.
func DeleteComment(svc *service.Comments) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		user, ok := auth.CurrentUserFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", rid)
			return
		}
		commentID := strings.TrimSpace(chi.URLParam(r, "comment_id"))
		if commentID == "" {
			api.BadRequest(w, "MISSING_ID", "comment_id is required", rid, nil)
			return
		}

		outcome, err := svc.Delete(r.Context(), commentID, user.ID, user.IsAdmin())
		if err != nil {
			api.Internal(w, rid)
			return
		}
		switch outcome {
		case store.OutcomeDeleted:
			api.NoContent(w)
		case store.OutcomeForbidden:
			api.Forbidden(w, "FORBIDDEN", "only the author or an administrator may delete a comment", rid)
		default:
			api.NotFound(w, "NOT_FOUND", "comment not found", rid)
		}
	}
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
