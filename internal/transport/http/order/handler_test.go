package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/figureworks/backoffice/internal/config"
	"github.com/figureworks/backoffice/internal/dto"
	"github.com/figureworks/backoffice/internal/entity"
	repo "github.com/figureworks/backoffice/internal/repository/order"
	service "github.com/figureworks/backoffice/internal/service/order"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store := repo.NewMemory()
	orders := []entity.Order{
		{
			OrderNo:      "ORD-001",
			CustomerName: "Alice Chen",
			Phone:        "13800000001",
			Status:       entity.StatusPaid,
			PayMethod:    entity.PayAlipay,
			CreatedAt:    "2025-06-01 10:00:00",
			Items: []entity.OrderItem{
				{ID: "a1", ProductName: "Figure A", IP: "Starlight Saga", Price: 100, Quantity: 2},
			},
		},
		{
			OrderNo:      "ORD-002",
			CustomerName: "Bruno Marques",
			Phone:        "13900000002",
			Status:       entity.StatusPending,
			PayMethod:    entity.PayCash,
			CreatedAt:    "2025-06-05 09:00:00",
			Items: []entity.OrderItem{
				{ID: "b1", ProductName: "Figure B", IP: "Moon Prism", Price: 50, Quantity: 1},
			},
		},
	}
	for i := range orders {
		orders[i].RecomputeTotals()
	}
	require.NoError(t, store.Insert(context.Background(), orders))

	svc := service.NewService(service.Params{
		Store:  store,
		Config: config.Config{},
		Logger: zap.NewNop(),
	})

	e := echo.New()
	Register(e, NewHandler(svc))
	return e
}

type listEnvelope struct {
	Code int                   `json:"code"`
	Data dto.OrderListResponse `json:"data"`
}

type detailEnvelope struct {
	Code    int               `json:"code"`
	Data    dto.OrderResponse `json:"data"`
	Message string            `json:"message"`
}

func TestListOrders(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name      string
		target    string
		wantTotal int
		wantLen   int
	}{
		{name: "no filters", target: "/api/orders", wantTotal: 2, wantLen: 2},
		{name: "status filter", target: "/api/orders?status=paid", wantTotal: 1, wantLen: 1},
		{name: "keyword filter", target: "/api/orders?keyword=Bruno", wantTotal: 1, wantLen: 1},
		{name: "date range", target: "/api/orders?startDate=2025-06-02&endDate=2025-06-10", wantTotal: 1, wantLen: 1},
		{name: "one-sided range ignored", target: "/api/orders?startDate=2025-06-02", wantTotal: 2, wantLen: 2},
		{name: "no match", target: "/api/orders?keyword=zzz", wantTotal: 0, wantLen: 0},
		{name: "page past end", target: "/api/orders?page=5", wantTotal: 2, wantLen: 0},
		{name: "non-numeric paging falls back", target: "/api/orders?page=abc&pageSize=xyz", wantTotal: 2, wantLen: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var body listEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, 200, body.Code)
			assert.Equal(t, tt.wantTotal, body.Data.Total)
			assert.Len(t, body.Data.List, tt.wantLen)
		})
	}
}

func TestOrderDetail(t *testing.T) {
	e := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/detail?id=1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body detailEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 200, body.Code)
		assert.Equal(t, "ORD-001", body.Data.OrderNo)
		assert.Equal(t, 200.0, body.Data.TotalAmount)
		require.Len(t, body.Data.Items, 1)
		assert.Equal(t, 200.0, body.Data.Items[0].Subtotal)
	})

	notFound := []struct {
		name   string
		target string
	}{
		{name: "unknown id", target: "/api/orders/detail?id=99"},
		{name: "non-numeric id", target: "/api/orders/detail?id=abc"},
		{name: "missing id", target: "/api/orders/detail"},
	}
	for _, tt := range notFound {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, http.StatusNotFound, rec.Code)
			var body detailEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, 404, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	e := newTestServer(t)

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/orders/updateStatus", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("updates status only", func(t *testing.T) {
		rec := post(`{"id":1,"status":"shipped"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body detailEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 200, body.Code)
		assert.Equal(t, "shipped", body.Data.Status)
		assert.Equal(t, 200.0, body.Data.TotalAmount)
		assert.NotEmpty(t, body.Message)
	})

	t.Run("idempotent", func(t *testing.T) {
		first := post(`{"id":1,"status":"completed"}`)
		second := post(`{"id":1,"status":"completed"}`)
		require.Equal(t, http.StatusOK, first.Code)
		require.Equal(t, http.StatusOK, second.Code)

		var body detailEnvelope
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
		assert.Equal(t, "completed", body.Data.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := post(`{"id":99,"status":"paid"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body detailEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 404, body.Code)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		rec := post(`{"id":1,"status":"teleported"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
