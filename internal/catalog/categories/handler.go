package categories

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/balu-pos/balu-pos/internal/auth"
	"github.com/balu-pos/balu-pos/internal/catalog/shared"
	"github.com/balu-pos/balu-pos/internal/platform/httpx"
)

// Outcome codes emitted by the category endpoints.
const (
	CodeCategoriesFetched = "CATEGORIES_FETCHED"
	CodeCategorySaved     = "CATEGORY_SAVED"
	CodeCategoryUpdated   = "CATEGORY_UPDATED"
	CodeStatusChanged     = "STATUS_CHANGED"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeDuplicatedName    = "DUPLICATED_NAME"
	CodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
)

// Handler wires HTTP endpoints for the categories module.
type Handler struct {
	logger  *slog.Logger
	service *Service
	auth    auth.Middleware
}

// NewHandler constructs categories handler.
func NewHandler(logger *slog.Logger, service *Service, authMW auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, auth: authMW}
}

// MountRoutes registers categories routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Group(func(r chi.Router) {
		r.Use(h.auth.Require(auth.RoleAdmin))
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleRename)
		r.Patch("/{id}/status", h.handleSetStatus)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var status *shared.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Outcome(w, http.StatusBadRequest, CodeInvalidStatus)
			return
		}
		parsed, err := shared.ParseStatus(value)
		if err != nil {
			httpx.Outcome(w, http.StatusBadRequest, CodeInvalidStatus)
			return
		}
		status = &parsed
	}

	list, err := h.service.List(r.Context(), status)
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
		return
	}
	if list == nil {
		list = []Category{}
	}
	httpx.OutcomeWith(w, http.StatusOK, CodeCategoriesFetched, map[string]any{
		"categories": list,
	})
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}

	category, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OutcomeWith(w, http.StatusCreated, CodeCategorySaved, map[string]any{
		"category": category,
	})
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req renameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}

	if err := h.service.Rename(r.Context(), id, req.Name); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.Outcome(w, http.StatusOK, CodeCategoryUpdated)
}

type statusRequest struct {
	Status *int `json:"status"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}
	if req.Status == nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeMissingFields)
		return
	}

	if err := h.service.SetStatus(r.Context(), id, *req.Status); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.Outcome(w, http.StatusOK, CodeStatusChanged)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeMissingFields)
	case errors.Is(err, ErrInvalidCharacters):
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidCharacters)
	case errors.Is(err, ErrDuplicateName):
		httpx.Outcome(w, http.StatusBadRequest, CodeDuplicatedName)
	case errors.Is(err, shared.ErrInvalidStatus):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidStatus)
	case errors.Is(err, ErrNotFound):
		httpx.Outcome(w, http.StatusNotFound, CodeCategoryNotFound)
	default:
		h.logger.Error("categories request", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
	}
}
