// Package report computes the revenue and volume reports derived from the
// order collection, bucketed by day, month, quarter and year.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/figureworks/backoffice/internal/entity"
)

// UnknownGroup buckets line items whose grouping value is missing, so they
// still contribute to revenue-by-group totals instead of being dropped.
const UnknownGroup = "unknown"

// overviewRowLimit caps the dashboard recent-orders table.
const overviewRowLimit = 50

// Aggregator holds the strategies the reports depend on: a sampler for the
// synthetic period series and a clock for the rolling seven-day windows.
type Aggregator struct {
	sampler Sampler
	now     func() time.Time
}

// Option customises an Aggregator.
type Option func(*Aggregator)

// WithSampler swaps the synthetic data source.
func WithSampler(s Sampler) Option {
	return func(a *Aggregator) {
		if s != nil {
			a.sampler = s
		}
	}
}

// WithClock swaps the time source for the seven-day windows.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// New builds an Aggregator with a rand-backed sampler and the wall clock.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		sampler: randSampler{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Daily summarises the whole order set: totals, a per-product breakdown and
// a synthetic seven-point trend. The date parameter is accepted for
// interface compatibility but not applied; the report always covers the
// entire collection.
func (a *Aggregator) Daily(orders []entity.Order, date string) Daily {
	_ = date
	return Daily{
		Summary:  buildSummary(orders),
		Products: buildProductStats(orders),
		Trend7D:  a.trend7D(),
	}
}

// Monthly produces one synthetic entry per calendar day of the given month.
func (a *Aggregator) Monthly(year, month int) Monthly {
	days := daysInMonth(year, month)

	m := Monthly{
		Days:     make([]int, 0, days),
		Orders:   make([]int, 0, days),
		Revenues: make([]float64, 0, days),
	}
	for d := 1; d <= days; d++ {
		m.Days = append(m.Days, d)
		m.Orders = append(m.Orders, a.sampler.IntBetween(5, 100))
		m.Revenues = append(m.Revenues, float64(a.sampler.IntBetween(2000, 50000)))
	}

	for i := range m.Orders {
		m.Summary.OrderCount += m.Orders[i]
		m.Summary.Revenue += m.Revenues[i]
	}
	if days > 0 {
		m.Summary.AvgDailyRevenue = m.Summary.Revenue / float64(days)
	}
	return m
}

// Quarterly produces the four fixed synthetic quarter buckets.
func (a *Aggregator) Quarterly(year int) Quarterly {
	_ = year
	q := Quarterly{Quarters: make([]QuarterStat, 0, 4)}
	for i := 1; i <= 4; i++ {
		q.Quarters = append(q.Quarters, QuarterStat{
			Quarter:    i,
			OrderCount: a.sampler.IntBetween(80, 500),
			Revenue:    float64(a.sampler.IntBetween(50000, 300000)),
		})
	}
	return q
}

// Annual produces twelve synthetic monthly buckets with the yearly totals.
func (a *Aggregator) Annual(year int) Annual {
	_ = year
	an := Annual{
		Months:   make([]int, 0, 12),
		Orders:   make([]int, 0, 12),
		Revenues: make([]float64, 0, 12),
	}
	for m := 1; m <= 12; m++ {
		an.Months = append(an.Months, m)
		an.Orders = append(an.Orders, a.sampler.IntBetween(80, 500))
		an.Revenues = append(an.Revenues, float64(a.sampler.IntBetween(50000, 300000)))
	}
	for i := range an.Orders {
		an.Summary.OrderCount += an.Orders[i]
		an.Summary.Revenue += an.Revenues[i]
	}
	an.Summary.AvgMonthlyRevenue = an.Summary.Revenue / 12
	return an
}

// Overview derives the dashboard payload entirely from the order set.
func (a *Aggregator) Overview(orders []entity.Order) Overview {
	ov := Overview{
		TotalOrders: len(orders),
		TrendData:   a.weeklyRevenue(orders),
		RevenueByIP: revenueByIP(orders),
		OrderList:   overviewRows(orders),
	}
	for i := range orders {
		ov.TotalRevenue += orders[i].TotalAmount
		for _, item := range orders[i].Items {
			ov.TotalQuantity += item.Quantity
		}
	}
	return ov
}

func buildSummary(orders []entity.Order) Summary {
	s := Summary{OrderCount: len(orders)}
	for i := range orders {
		s.Revenue += orders[i].TotalAmount
	}
	if s.OrderCount > 0 {
		s.AvgOrderValue = s.Revenue / float64(s.OrderCount)
	}
	return s
}

func buildProductStats(orders []entity.Order) []ProductStatsRow {
	index := make(map[string]*ProductStatsRow)
	names := make([]string, 0)

	for i := range orders {
		for _, item := range orders[i].Items {
			row, ok := index[item.ProductName]
			if !ok {
				row = &ProductStatsRow{
					ProductName: item.ProductName,
					IP:          item.IP,
					Category:    item.Category,
					Scale:       item.Scale,
				}
				index[item.ProductName] = row
				names = append(names, item.ProductName)
			}
			row.Quantity += item.Quantity
			row.Revenue += item.Subtotal
		}
	}

	rows := make([]ProductStatsRow, 0, len(names))
	for _, name := range names {
		row := index[name]
		if row.Quantity > 0 {
			row.AvgPrice = row.Revenue / float64(row.Quantity)
		}
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue > rows[j].Revenue
	})
	return rows
}

// trend7D synthesises the daily report trend: the last seven calendar days
// including today, oldest first, labelled M-DD.
func (a *Aggregator) trend7D() Trend {
	t := Trend{
		Dates:    make([]string, 0, 7),
		Orders:   make([]int, 0, 7),
		Revenues: make([]float64, 0, 7),
	}
	today := a.now()
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		t.Dates = append(t.Dates, fmt.Sprintf("%d-%02d", int(d.Month()), d.Day()))
		t.Orders = append(t.Orders, a.sampler.IntBetween(10, 120))
		t.Revenues = append(t.Revenues, float64(a.sampler.IntBetween(3000, 30000)))
	}
	return t
}

// weeklyRevenue buckets order totals into the last seven calendar days.
// Days without orders keep a zero bucket; labels are MM-DD, oldest first.
func (a *Aggregator) weeklyRevenue(orders []entity.Order) TrendData {
	today := a.now()
	dates := make([]string, 0, 7)
	totals := make(map[string]float64, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		dates = append(dates, day)
		totals[day] = 0
	}

	for i := range orders {
		day := orders[i].Date()
		if _, ok := totals[day]; ok {
			totals[day] += orders[i].TotalAmount
		}
	}

	td := TrendData{
		Dates:  make([]string, 0, 7),
		Values: make([]float64, 0, 7),
	}
	for _, day := range dates {
		td.Dates = append(td.Dates, day[5:])
		td.Values = append(td.Values, totals[day])
	}
	return td
}

func revenueByIP(orders []entity.Order) []RevenueByGroup {
	totals := make(map[string]float64)
	names := make([]string, 0)

	for i := range orders {
		for _, item := range orders[i].Items {
			name := item.IP
			if name == "" {
				name = UnknownGroup
			}
			if _, ok := totals[name]; !ok {
				names = append(names, name)
			}
			totals[name] += item.Subtotal
		}
	}

	groups := make([]RevenueByGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, RevenueByGroup{Name: name, Value: totals[name]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})
	return groups
}

// overviewRows flattens (order, item) pairs, newest date first, capped at
// fifty rows. Same-date rows keep their original iteration order.
func overviewRows(orders []entity.Order) []OverviewRow {
	rows := make([]OverviewRow, 0, len(orders)*2)
	for i := range orders {
		date := orders[i].Date()
		for _, item := range orders[i].Items {
			rows = append(rows, OverviewRow{
				Date:        date,
				ProductName: item.ProductName,
				IP:          item.IP,
				Category:    item.Category,
				Scale:       item.Scale,
				Quantity:    item.Quantity,
				Revenue:     item.Subtotal,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})
	if len(rows) > overviewRowLimit {
		rows = rows[:overviewRowLimit]
	}
	return rows
}

// daysInMonth resolves the calendar length of a month, leap years included.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
