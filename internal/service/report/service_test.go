package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/figureworks/backoffice/internal/cache"
	"github.com/figureworks/backoffice/internal/config"
	"github.com/figureworks/backoffice/internal/entity"
	"github.com/figureworks/backoffice/internal/report"
	repo "github.com/figureworks/backoffice/internal/repository/order"
)

type midpointSampler struct{}

func (midpointSampler) IntBetween(min, max int) int { return (min + max) / 2 }

type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func newTestService(t *testing.T, store repo.Store, c cache.Store) *Service {
	t.Helper()

	cfg := config.Config{}
	cfg.Report.DefaultYear = 2025

	return NewService(Params{
		Store:      store,
		Aggregator: report.New(report.WithSampler(midpointSampler{})),
		Cache:      c,
		Config:     cfg,
		Logger:     zap.NewNop(),
	})
}

func seedOrder(t *testing.T, store repo.Store, createdAt string, amount float64) {
	t.Helper()

	o := entity.Order{
		OrderNo:      "ORD-" + createdAt,
		CustomerName: "Test Customer",
		Status:       entity.StatusPaid,
		PayMethod:    entity.PayAlipay,
		CreatedAt:    createdAt,
		Items: []entity.OrderItem{
			{ID: "i1", ProductName: "Figure", IP: "Starlight Saga", Price: amount, Quantity: 1},
		},
	}
	o.RecomputeTotals()
	require.NoError(t, store.Insert(context.Background(), []entity.Order{o}))
}

func TestMonthlyAppliesDefaults(t *testing.T) {
	svc := newTestService(t, repo.NewMemory(), nil)
	ctx := context.Background()

	// The resolved (year, month) pair is observable through the number of
	// calendar days the report covers.
	tests := []struct {
		name     string
		year     int
		month    int
		wantDays int
	}{
		{name: "explicit leap february", year: 2024, month: 2, wantDays: 29},
		{name: "zero year falls back to default", year: 0, month: 2, wantDays: 28},
		{name: "zero month becomes december", year: 2024, month: 0, wantDays: 31},
		{name: "month overflow becomes december", year: 2024, month: 13, wantDays: 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Monthly(ctx, tt.year, tt.month)
			assert.Len(t, got.Days, tt.wantDays)
			assert.Len(t, got.Orders, tt.wantDays)
			assert.Len(t, got.Revenues, tt.wantDays)
		})
	}
}

func TestQuarterlyAndAnnualShape(t *testing.T) {
	svc := newTestService(t, repo.NewMemory(), nil)
	ctx := context.Background()

	quarterly := svc.Quarterly(ctx, 0)
	require.Len(t, quarterly.Quarters, 4)
	for i, q := range quarterly.Quarters {
		assert.Equal(t, i+1, q.Quarter)
	}

	annual := svc.Annual(ctx, -1)
	assert.Len(t, annual.Months, 12)
	assert.Len(t, annual.Orders, 12)
	assert.Len(t, annual.Revenues, 12)
}

func TestDailyAggregatesStore(t *testing.T) {
	store := repo.NewMemory()
	seedOrder(t, store, "2025-06-01 10:00:00", 150)
	seedOrder(t, store, "2025-06-02 11:00:00", 250)

	svc := newTestService(t, store, nil)

	daily, err := svc.Daily(context.Background(), "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2, daily.Summary.OrderCount)
	assert.Equal(t, 400.0, daily.Summary.Revenue)
}

func TestOverviewCachesSnapshot(t *testing.T) {
	store := repo.NewMemory()
	seedOrder(t, store, "2025-06-01 10:00:00", 100)

	c := newMapCache()
	svc := newTestService(t, store, c)
	ctx := context.Background()

	first, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TotalOrders)
	assert.Contains(t, c.data, DashboardCacheKey)

	// The snapshot is served until the key is dropped; new orders do not
	// show up before invalidation.
	seedOrder(t, store, "2025-06-02 10:00:00", 200)

	cached, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.TotalOrders)

	require.NoError(t, c.Delete(ctx, DashboardCacheKey))

	fresh, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalOrders)
	assert.Equal(t, 300.0, fresh.TotalRevenue)
}
