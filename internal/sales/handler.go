package sales

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/balu-pos/balu-pos/internal/auth"
	"github.com/balu-pos/balu-pos/internal/platform/httpx"
)

// Outcome codes emitted by the sales endpoints.
const (
	CodeSaleSaved         = "SALE_SAVED"
	CodeCancelled         = "SUCCESSFUL_CANCELLATION"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeProductNotFound   = "PRODUCT_NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
)

// Path parameter ids must not carry characters usable for injection probing.
var unsafeIDChars = regexp.MustCompile("[<>?#`]")

// SaleCounter records sale attempts by outcome code.
type SaleCounter interface {
	CountSale(outcome string)
}

// Handler wires HTTP endpoints for the sales module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	auth     auth.Middleware
	counter  SaleCounter
	validate *validator.Validate
}

// NewHandler constructs sales handler. counter may be nil.
func NewHandler(logger *slog.Logger, service *Service, authMW auth.Middleware, counter SaleCounter) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		auth:     authMW,
		counter:  counter,
		validate: validator.New(),
	}
}

func (h *Handler) countSale(outcome string) {
	if h.counter != nil {
		h.counter.CountSale(outcome)
	}
}

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.auth.Require(auth.RoleAdmin, auth.RoleSales))
		r.Post("/", h.handleCreate)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.auth.Require(auth.RoleAdmin))
		r.Patch("/{id}/cancel", h.handleCancel)
	})
}

type createSaleRequest struct {
	Products []LineInput `json:"products" validate:"required,min=1,dive"`
	Total    *float64    `json:"total" validate:"required"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeMissingFields)
		return
	}

	saleID, err := h.service.CreateSale(r.Context(), CreateSaleInput{
		Items: req.Products,
		Total: req.Total,
	})
	if err != nil {
		h.respondCreateError(w, err)
		return
	}
	h.countSale(CodeSaleSaved)
	httpx.OutcomeWith(w, http.StatusCreated, CodeSaleSaved, map[string]any{
		"sale_id": saleID,
	})
}

func (h *Handler) respondCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		h.countSale(httpx.CodeMissingFields)
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeMissingFields)
	case errors.Is(err, ErrInvalidQuantity):
		h.countSale(CodeInvalidQuantity)
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidQuantity)
	case errors.Is(err, ErrProductNotFound):
		h.countSale(CodeProductNotFound)
		httpx.Outcome(w, http.StatusNotFound, CodeProductNotFound)
	case errors.Is(err, ErrInsufficientStock):
		h.countSale(CodeInsufficientStock)
		httpx.Outcome(w, http.StatusConflict, CodeInsufficientStock)
	default:
		h.countSale(httpx.CodeDatabaseError)
		h.logger.Error("create sale", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
	}
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeMissingFields)
		return
	}
	if unsafeIDChars.MatchString(idStr) {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidCharacters)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidID)
		return
	}

	if err := h.service.CancelSale(r.Context(), id); err != nil {
		if errors.Is(err, ErrSaleNotFound) {
			httpx.Outcome(w, http.StatusNotFound, httpx.CodeIDNotFound)
			return
		}
		h.logger.Error("cancel sale", slog.Any("error", err))
		httpx.Outcome(w, http.StatusInternalServerError, httpx.CodeDatabaseError)
		return
	}
	httpx.Outcome(w, http.StatusOK, CodeCancelled)
}
