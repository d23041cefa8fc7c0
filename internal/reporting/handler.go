package reporting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/balu-pos/balu-pos/internal/auth"
	"github.com/balu-pos/balu-pos/internal/platform/httpx"
)

// Outcome codes emitted by the reporting endpoints.
const (
	CodeBalanceFetched   = "END_OF_DAY_BALANCE_FETCHED"
	CodeSalesFetched     = "SALES_FETCHED"
	CodeInvalidDate      = "INVALID_DATE_FORMAT_OR_FUTURE_DATE"
	CodeEndBeforeStart   = "END_DATE_BEFORE_START_DATE"
	CodeCategoryNotFound = "CATEGORY_NOT_FOUND"
)

// Handler wires HTTP endpoints for the reporting module.
type Handler struct {
	logger  *slog.Logger
	service *Service
	auth    auth.Middleware
}

// NewHandler constructs reporting handler.
func NewHandler(logger *slog.Logger, service *Service, authMW auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, auth: authMW}
}

// MountRoutes registers reporting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.auth.Require(auth.RoleAdmin, auth.RoleSales))
		r.Post("/end-of-day", h.handleEndOfDay)
		r.Post("/history", h.handleHistory)
		r.Post("/top-products", h.handleTopProducts)
	})
}

type endOfDayRequest struct {
	Date string `json:"date"`
}

func (h *Handler) handleEndOfDay(w http.ResponseWriter, r *http.Request) {
	var req endOfDayRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}

	balance, err := h.service.EndOfDayBalance(r.Context(), req.Date)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OutcomeWith(w, http.StatusOK, CodeBalanceFetched, map[string]any{
		"balance": balance,
	})
}

type historyRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}

	sales, err := h.service.SalesHistory(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if sales == nil {
		sales = []HistorySale{}
	}
	httpx.OutcomeWith(w, http.StatusOK, CodeSalesFetched, map[string]any{
		"sales": sales,
	})
}

type topProductsRequest struct {
	Category *int64 `json:"category"`
}

func (h *Handler) handleTopProducts(w http.ResponseWriter, r *http.Request) {
	var req topProductsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeInvalidJSON)
		return
	}

	products, err := h.service.TopSoldProducts(r.Context(), req.Category)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if products == nil {
		products = []TopProduct{}
	}
	httpx.OutcomeWith(w, http.StatusOK, httpx.CodeSuccessfulFetch, map[string]any{
		"product": products,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		httpx.Outcome(w, http.StatusBadRequest, httpx.CodeMissingFields)
	case errors.Is(err, ErrInvalidDate):
		httpx.Outcome(w, http.StatusBadRequest, CodeInvalidDate)
	case errors.Is(err, ErrInvalidDateRange):
		httpx.Outcome(w, http.StatusBadRequest, CodeEndBeforeStart)
	case errors.Is(err, ErrCategoryNotFound):
		httpx.Outcome(w, http.StatusNotFound, CodeCategoryNotFound)
	default:
		h.logger.Error("reporting query", slog.Any("error", err))
		httpx.Internal(w)
	}
}
