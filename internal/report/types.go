package report

// Summary condenses an order set into count, revenue and average order value.
type Summary struct {
	OrderCount    int     `json:"orderCount"`
	Revenue       float64 `json:"revenue"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// ProductStatsRow aggregates line items sharing a product name.
type ProductStatsRow struct {
	ProductName string  `json:"productName"`
	IP          string  `json:"ip"`
	Category    string  `json:"category"`
	Scale       string  `json:"scale"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
	AvgPrice    float64 `json:"avgPrice"`
}

// Trend is a short order-count/revenue series keyed by date labels.
type Trend struct {
	Dates    []string  `json:"dates"`
	Orders   []int     `json:"orders"`
	Revenues []float64 `json:"revenues"`
}

// Daily is the daily report payload.
type Daily struct {
	Summary  Summary           `json:"summary"`
	Products []ProductStatsRow `json:"products"`
	Trend7D  Trend             `json:"trend7d"`
}

// MonthlySummary totals a month with its per-day average.
type MonthlySummary struct {
	OrderCount      int     `json:"orderCount"`
	Revenue         float64 `json:"revenue"`
	AvgDailyRevenue float64 `json:"avgDailyRevenue"`
}

// Monthly is the monthly report payload: one entry per calendar day.
type Monthly struct {
	Summary  MonthlySummary `json:"summary"`
	Days     []int          `json:"days"`
	Orders   []int          `json:"orders"`
	Revenues []float64      `json:"revenues"`
}

// QuarterStat is one of the four fixed quarterly buckets.
type QuarterStat struct {
	Quarter    int     `json:"quarter"`
	OrderCount int     `json:"orderCount"`
	Revenue    float64 `json:"revenue"`
}

// Quarterly is the quarterly report payload.
type Quarterly struct {
	Quarters []QuarterStat `json:"quarters"`
}

// AnnualSummary totals a year with its per-month average.
type AnnualSummary struct {
	OrderCount        int     `json:"orderCount"`
	Revenue           float64 `json:"revenue"`
	AvgMonthlyRevenue float64 `json:"avgMonthlyRevenue"`
}

// Annual is the annual report payload: twelve monthly buckets.
type Annual struct {
	Summary  AnnualSummary `json:"summary"`
	Months   []int         `json:"months"`
	Orders   []int         `json:"orders"`
	Revenues []float64     `json:"revenues"`
}

// TrendData is the dashboard revenue series over the last seven days.
type TrendData struct {
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
}

// RevenueByGroup maps one grouping value to its aggregate revenue.
type RevenueByGroup struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// OverviewRow is one flattened (order, item) pair in the dashboard table.
type OverviewRow struct {
	Date        string  `json:"date"`
	ProductName string  `json:"productName"`
	IP          string  `json:"ip"`
	Category    string  `json:"category"`
	Scale       string  `json:"scale"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// Overview is the dashboard payload, fully derived from the order set.
type Overview struct {
	TotalRevenue  float64          `json:"totalRevenue"`
	TotalQuantity int              `json:"totalQuantity"`
	TotalOrders   int              `json:"totalOrders"`
	TrendData     TrendData        `json:"trendData"`
	RevenueByIP   []RevenueByGroup `json:"revenueByIp"`
	OrderList     []OverviewRow    `json:"orderList"`
}
