package products

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

// Outcome codes emitted by the product endpoints.
const (
	CodeProductAdded       = "PRODUCT_ADDED"
	CodeProductUpdated     = "PRODUCT_UPDATED"
	CodeProductFetched     = "PRODUCT_FETCHED"
	CodeStatusChanged      = "STATUS_CHANGED"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidName        = "INVALID_NAME"
	CodeInvalidStock       = "INVALID_STOCK"
	CodeInvalidPrice       = "INVALID_PRICE"
	CodeInvalidCategoryID  = "INVALID_CATEGORY_ID"
	CodeInvalidImage       = "INVALID_IMAGE"
	CodeInvalidProductID   = "INVALID_PRODUCT_ID"
	CodeDescriptionTooLong = "DESCRIPTION_TOO_LONG"
	CodeProductExists      = "PRODUCT_EXISTS"
	CodeProductNotFound    = "PRODUCT_NOT_FOUND"
	CodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
)

// Handler wires HTTP endpoints for the products module.
type Handler struct {
	logger  *slog.Logger
	service *Service
	auth    auth.Middleware
}

// NewHandler constructs products handler.
func NewHandler(logger *slog.Logger, service *Service, authMW auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, auth: authMW}
}

// MountRoutes registers products routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/low-stock", h.handleLowStock)
	r.Get("/{id}", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(h.auth.Require(auth.RoleAdmin))
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
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
		h.logger.Error("list products", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
		return
	}
	if list == nil {
		list = []WithCategory{}
	}
	httpx.OutcomeWith(w, http.StatusOK, httpx.CodeSuccessfulFetch, map[string]any{
		"products": list,
	})
}

func (h *Handler) handleLowStock(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.LowStock(r.Context())
	if err != nil {
		h.logger.Error("low stock products", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
		return
	}
	if list == nil {
		list = []Product{}
	}
	httpx.OutcomeWith(w, http.StatusOK, httpx.CodeSuccessfulFetch, map[string]any{
		"products": list,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidProductID)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Outcome(w, http.StatusNotFound, CodeProductNotFound)
			return
		}
		h.logger.Error("get product", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
		return
	}
	httpx.OutcomeWith(w, http.StatusOK, CodeProductFetched, map[string]any{
		"product": product,
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}

	if _, err := h.service.Create(r.Context(), in); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.Outcome(w, http.StatusCreated, CodeProductAdded)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}

	if err := h.service.Update(r.Context(), in); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.Outcome(w, http.StatusOK, CodeProductUpdated)
}

type statusRequest struct {
	Status *int `json:"status"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidProductID)
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

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var missing *MissingFieldsError
	switch {
	case errors.As(err, &missing):
		httpx.OutcomeWith(w, http.StatusBadRequest, httpx.CodeMissingFields, map[string]any{
			"missing_fields": missing.Fields,
		})
	case errors.Is(err, ErrDescriptionTooLong):
		httpx.Outcome(w, http.StatusRequestEntityTooLarge, CodeDescriptionTooLong)
	case errors.Is(err, ErrInvalidName):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidName)
	case errors.Is(err, ErrInvalidStock):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidStock)
	case errors.Is(err, ErrInvalidPrice):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidPrice)
	case errors.Is(err, ErrInvalidCategoryID):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidCategoryID)
	case errors.Is(err, ErrInvalidImage):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidImage)
	case errors.Is(err, shared.ErrInvalidStatus):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidStatus)
	case errors.Is(err, ErrCategoryNotFound):
		httpx.Outcome(w, http.StatusBadRequest, CodeCategoryNotFound)
	case errors.Is(err, ErrProductExists):
		httpx.Outcome(w, http.StatusBadRequest, CodeProductExists)
	case errors.Is(err, ErrNotFound):
		httpx.Outcome(w, http.StatusNotFound, CodeProductNotFound)
	default:
		h.logger.Error("products request", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
	}
}
