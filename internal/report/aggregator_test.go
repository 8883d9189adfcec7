package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figureworks/backoffice/internal/entity"
)

// fixedSampler always returns the midpoint, making synthetic series
// predictable under test.
type fixedSampler struct{}

func (fixedSampler) IntBetween(min, max int) int { return (min + max) / 2 }

func testClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.June, 7, 12, 0, 0, 0, time.UTC)
	}
}

func newTestAggregator() *Aggregator {
	return New(WithSampler(fixedSampler{}), WithClock(testClock()))
}

func makeOrder(id int64, createdAt string, items ...entity.OrderItem) entity.Order {
	o := entity.Order{
		ID:        id,
		OrderNo:   "ORD",
		Status:    entity.StatusPaid,
		CreatedAt: createdAt,
		Items:     items,
	}
	o.RecomputeTotals()
	return o
}

func item(product, ip string, price float64, qty int) entity.OrderItem {
	return entity.OrderItem{
		ID:          "i",
		ProductName: product,
		IP:          ip,
		Category:    "PVC Figure",
		Scale:       "1/7",
		Price:       price,
		Quantity:    qty,
	}
}

func TestDailySummary(t *testing.T) {
	agg := newTestAggregator()
	orders := []entity.Order{
		makeOrder(1, "2025-06-01 10:00:00", item("Figure A", "Starlight Saga", 100, 2)),
		makeOrder(2, "2025-06-05 09:00:00", item("Figure B", "Moon Prism", 50, 1)),
	}

	daily := agg.Daily(orders, "2025-06-01")

	assert.Equal(t, 2, daily.Summary.OrderCount)
	assert.Equal(t, 250.0, daily.Summary.Revenue)
	assert.Equal(t, 125.0, daily.Summary.AvgOrderValue)
}

func TestDailyIgnoresDateParameter(t *testing.T) {
	agg := newTestAggregator()
	orders := []entity.Order{
		makeOrder(1, "2025-06-01 10:00:00", item("Figure A", "Starlight Saga", 100, 2)),
		makeOrder(2, "2025-07-05 09:00:00", item("Figure B", "Moon Prism", 50, 1)),
	}

	// The date parameter is part of the contract but the summary always
	// covers the full collection.
	withDate := agg.Daily(orders, "2025-06-01")
	withoutDate := agg.Daily(orders, "")
	assert.Equal(t, withoutDate.Summary, withDate.Summary)
	assert.Equal(t, 2, withDate.Summary.OrderCount)
}

func TestDailyProductBreakdown(t *testing.T) {
	agg := newTestAggregator()
	orders := []entity.Order{
		makeOrder(1, "2025-06-01 10:00:00",
			item("Figure A", "Starlight Saga", 100, 2),
			item("Figure B", "Moon Prism", 10, 1),
		),
		makeOrder(2, "2025-06-02 10:00:00", item("Figure A", "Starlight Saga", 50, 2)),
	}

	daily := agg.Daily(orders, "")
	require.Len(t, daily.Products, 2)

	top := daily.Products[0]
	assert.Equal(t, "Figure A", top.ProductName)
	assert.Equal(t, 4, top.Quantity)
	assert.Equal(t, 300.0, top.Revenue)
	assert.Equal(t, 75.0, top.AvgPrice)

	assert.Equal(t, "Figure B", daily.Products[1].ProductName)
	assert.GreaterOrEqual(t, daily.Products[0].Revenue, daily.Products[1].Revenue)
}

func TestDailyTrendSevenPoints(t *testing.T) {
	agg := newTestAggregator()

	daily := agg.Daily(nil, "")
	require.Len(t, daily.Trend7D.Dates, 7)
	require.Len(t, daily.Trend7D.Orders, 7)
	require.Len(t, daily.Trend7D.Revenues, 7)
	assert.Equal(t, "6-01", daily.Trend7D.Dates[0])
	assert.Equal(t, "6-07", daily.Trend7D.Dates[6])
}

func TestDailyEmptyCollection(t *testing.T) {
	agg := newTestAggregator()

	daily := agg.Daily(nil, "")
	assert.Equal(t, 0, daily.Summary.OrderCount)
	assert.Equal(t, 0.0, daily.Summary.Revenue)
	assert.Equal(t, 0.0, daily.Summary.AvgOrderValue)
	assert.Empty(t, daily.Products)
}

func TestMonthlyDaysInMonth(t *testing.T) {
	agg := newTestAggregator()

	tests := []struct {
		year, month, days int
	}{
		{2025, 12, 31},
		{2025, 11, 30},
		{2025, 2, 28},
		{2024, 2, 29},
	}
	for _, tt := range tests {
		m := agg.Monthly(tt.year, tt.month)
		assert.Len(t, m.Days, tt.days)
		assert.Len(t, m.Orders, tt.days)
		assert.Len(t, m.Revenues, tt.days)
		assert.Equal(t, 1, m.Days[0])
		assert.Equal(t, tt.days, m.Days[len(m.Days)-1])
	}
}

func TestMonthlySummaryAverages(t *testing.T) {
	agg := newTestAggregator()

	m := agg.Monthly(2025, 6)
	var orders int
	var revenue float64
	for i := range m.Orders {
		orders += m.Orders[i]
		revenue += m.Revenues[i]
	}
	assert.Equal(t, orders, m.Summary.OrderCount)
	assert.Equal(t, revenue, m.Summary.Revenue)
	assert.InDelta(t, revenue/30, m.Summary.AvgDailyRevenue, 1e-9)
}

func TestQuarterlyFourBuckets(t *testing.T) {
	agg := newTestAggregator()

	q := agg.Quarterly(2025)
	require.Len(t, q.Quarters, 4)
	for i, stat := range q.Quarters {
		assert.Equal(t, i+1, stat.Quarter)
		assert.Positive(t, stat.OrderCount)
		assert.Positive(t, stat.Revenue)
	}
}

func TestAnnualTwelveBuckets(t *testing.T) {
	agg := newTestAggregator()

	an := agg.Annual(2025)
	require.Len(t, an.Months, 12)
	var revenue float64
	for i := range an.Revenues {
		assert.Equal(t, i+1, an.Months[i])
		revenue += an.Revenues[i]
	}
	assert.Equal(t, revenue, an.Summary.Revenue)
	assert.InDelta(t, revenue/12, an.Summary.AvgMonthlyRevenue, 1e-9)
}

func TestOverviewTotals(t *testing.T) {
	agg := newTestAggregator()
	orders := []entity.Order{
		makeOrder(1, "2025-06-01 10:00:00", item("Figure A", "Starlight Saga", 100, 2)),
		makeOrder(2, "2025-06-05 09:00:00", item("Figure B", "Moon Prism", 50, 1)),
	}

	ov := agg.Overview(orders)
	assert.Equal(t, 250.0, ov.TotalRevenue)
	assert.Equal(t, 3, ov.TotalQuantity)
	assert.Equal(t, 2, ov.TotalOrders)
}

func TestOverviewTrendBucketsLastSevenDays(t *testing.T) {
	agg := newTestAggregator()
	orders := []entity.Order{
		// Inside the window ending 2025-06-07.
		makeOrder(1, "2025-06-01 10:00:00", item("Figure A", "Starlight Saga", 100, 2)),
		makeOrder(2, "2025-06-07 09:00:00", item("Figure B", "Moon Prism", 50, 1)),
		// Outside the window.
		makeOrder(3, "2025-05-20 09:00:00", item("Figure C", "Moon Prism", 10, 1)),
	}

	ov := agg.Overview(orders)
	require.Len(t, ov.TrendData.Dates, 7)
	require.Len(t, ov.TrendData.Values, 7)

	assert.Equal(t, "06-01", ov.TrendData.Dates[0])
	assert.Equal(t, "06-07", ov.TrendData.Dates[6])
	assert.Equal(t, 200.0, ov.TrendData.Values[0])
	assert.Equal(t, 50.0, ov.TrendData.Values[6])
	// Days without orders keep a zero bucket.
	assert.Equal(t, 0.0, ov.TrendData.Values[3])
}

func TestOverviewRevenueByIP(t *testing.T) {
	agg := newTestAggregator()
	orders := []entity.Order{
		makeOrder(1, "2025-06-01 10:00:00",
			item("Figure A", "Starlight Saga", 100, 2),
			item("Figure B", "Moon Prism", 50, 1),
		),
		makeOrder(2, "2025-06-02 10:00:00", item("Figure C", "Moon Prism", 300, 1)),
	}

	ov := agg.Overview(orders)
	require.Len(t, ov.RevenueByIP, 2)
	assert.Equal(t, "Moon Prism", ov.RevenueByIP[0].Name)
	assert.Equal(t, 350.0, ov.RevenueByIP[0].Value)
	assert.Equal(t, "Starlight Saga", ov.RevenueByIP[1].Name)

	// Conservation: group revenues sum to the total.
	var sum float64
	for _, g := range ov.RevenueByIP {
		sum += g.Value
	}
	assert.InDelta(t, ov.TotalRevenue, sum, 1e-9)
}

func TestOverviewUnknownIPBucket(t *testing.T) {
	agg := newTestAggregator()
	orders := []entity.Order{
		makeOrder(1, "2025-06-01 10:00:00", item("Figure A", "", 100, 1)),
	}

	ov := agg.Overview(orders)
	require.Len(t, ov.RevenueByIP, 1)
	assert.Equal(t, UnknownGroup, ov.RevenueByIP[0].Name)
	assert.Equal(t, 100.0, ov.RevenueByIP[0].Value)
}

func TestOverviewOrderRows(t *testing.T) {
	agg := newTestAggregator()

	t.Run("sorted by date descending", func(t *testing.T) {
		orders := []entity.Order{
			makeOrder(1, "2025-06-01 10:00:00", item("Figure A", "Starlight Saga", 100, 2)),
			makeOrder(2, "2025-06-05 09:00:00", item("Figure B", "Moon Prism", 50, 1)),
		}
		ov := agg.Overview(orders)
		require.Len(t, ov.OrderList, 2)
		assert.Equal(t, "2025-06-05", ov.OrderList[0].Date)
		assert.Equal(t, "2025-06-01", ov.OrderList[1].Date)
		assert.Equal(t, "Figure B", ov.OrderList[0].ProductName)
		assert.Equal(t, 50.0, ov.OrderList[0].Revenue)
	})

	t.Run("capped at fifty rows", func(t *testing.T) {
		orders := make([]entity.Order, 0, 30)
		for i := 0; i < 30; i++ {
			orders = append(orders, makeOrder(int64(i+1), "2025-06-01 10:00:00",
				item("Figure A", "Starlight Saga", 10, 1),
				item("Figure B", "Moon Prism", 20, 1),
			))
		}
		ov := agg.Overview(orders)
		assert.Len(t, ov.OrderList, 50)
	})
}

func TestOverviewEmptyCollection(t *testing.T) {
	agg := newTestAggregator()

	ov := agg.Overview(nil)
	assert.Equal(t, 0.0, ov.TotalRevenue)
	assert.Equal(t, 0, ov.TotalQuantity)
	assert.Equal(t, 0, ov.TotalOrders)
	assert.Len(t, ov.TrendData.Dates, 7)
	assert.Empty(t, ov.RevenueByIP)
	assert.Empty(t, ov.OrderList)
}
