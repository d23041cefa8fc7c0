package sales

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balu-pos/balu-pos/internal/auth"
)

func newTestRouter(repo *memRepo) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, _ := newTestService(repo, ServiceConfig{})
	authMW := auth.Middleware{Logger: logger}
	handler := NewHandler(logger, svc, authMW, nil)

	r := chi.NewRouter()
	r.Use(authMW.Extract)
	r.Route("/sales", handler.MountRoutes)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, roles string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if roles != "" {
		req.Header.Set(auth.HeaderSubject, "tester")
		req.Header.Set(auth.HeaderRoles, roles)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleCreateSale(t *testing.T) {
	repo := newMemRepo(ProductRow{ID: 1, Name: "Cafe", Price: 100, Stock: 5})
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/sales", "sales", map[string]any{
		"products": []map[string]any{{"id": 1, "quantity": 2}},
		"total":    200,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, CodeSaleSaved, body["message"])
	assert.Equal(t, float64(1), body["sale_id"])
	assert.Equal(t, 3, repo.stock(1))
}

func TestHandleCreateSaleOutcomes(t *testing.T) {
	cases := []struct {
		name       string
		payload    map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			"missing total",
			map[string]any{"products": []map[string]any{{"id": 1, "quantity": 1}}},
			http.StatusBadRequest, "MISSING_FIELDS",
		},
		{
			"empty products",
			map[string]any{"products": []map[string]any{}, "total": 10},
			http.StatusBadRequest, "MISSING_FIELDS",
		},
		{
			"invalid quantity",
			map[string]any{"products": []map[string]any{{"id": 1, "quantity": 0}}, "total": 10},
			http.StatusBadRequest, CodeInvalidQuantity,
		},
		{
			"unknown product",
			map[string]any{"products": []map[string]any{{"id": 77, "quantity": 1}}, "total": 10},
			http.StatusNotFound, CodeProductNotFound,
		},
		{
			"insufficient stock",
			map[string]any{"products": []map[string]any{{"id": 1, "quantity": 9}}, "total": 900},
			http.StatusConflict, CodeInsufficientStock,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemRepo(ProductRow{ID: 1, Name: "Cafe", Price: 100, Stock: 5})
			router := newTestRouter(repo)

			rec := doRequest(t, router, http.MethodPost, "/sales", "admin", tc.payload)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCode, decodeEnvelope(t, rec)["message"])
		})
	}
}

func TestHandleCreateSaleMalformedJSON(t *testing.T) {
	router := newTestRouter(newMemRepo())

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBufferString("{not json"))
	req.Header.Set(auth.HeaderSubject, "tester")
	req.Header.Set(auth.HeaderRoles, "sales")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON_FORMAT", decodeEnvelope(t, rec)["message"])
}

func TestHandleCreateSaleForbidden(t *testing.T) {
	router := newTestRouter(newMemRepo())

	rec := doRequest(t, router, http.MethodPost, "/sales", "", map[string]any{
		"products": []map[string]any{{"id": 1, "quantity": 1}},
		"total":    10,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeEnvelope(t, rec)["message"])
}

func TestHandleCancelSale(t *testing.T) {
	repo := newMemRepo(ProductRow{ID: 1, Name: "Cafe", Price: 100, Stock: 5})
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/sales", "admin", map[string]any{
		"products": []map[string]any{{"id": 1, "quantity": 1}},
		"total":    100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	saleID := decodeEnvelope(t, rec)["sale_id"].(float64)

	rec = doRequest(t, router, http.MethodPatch, fmt.Sprintf("/sales/%.0f/cancel", saleID), "admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, CodeCancelled, decodeEnvelope(t, rec)["message"])
}

func TestHandleCancelSaleValidation(t *testing.T) {
	cases := []struct {
		name       string
		id         string
		roles      string
		wantStatus int
		wantCode   string
	}{
		{"unsafe characters", "7<", "admin", http.StatusBadRequest, "INVALID_CHARACTERS"},
		{"not a number", "abc", "admin", http.StatusBadRequest, "INVALID_ID"},
		{"zero id", "0", "admin", http.StatusBadRequest, "INVALID_ID"},
		{"negative id", "-3", "admin", http.StatusBadRequest, "INVALID_ID"},
		{"unknown id", "999", "admin", http.StatusNotFound, "ID_NOT_FOUND"},
		{"sales role rejected", "1", "sales", http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(newMemRepo())
			rec := doRequest(t, router, http.MethodPatch, "/sales/"+tc.id+"/cancel", tc.roles, nil)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantCode, decodeEnvelope(t, rec)["message"])
		})
	}
}
