// Package query implements stateless filtering and pagination over a
// snapshot of the order collection.
package query

import (
	"strings"

	"github.com/figureworks/backoffice/internal/entity"
)

const (
	// DefaultPage is used when the caller gives no page or a non-positive one.
	DefaultPage = 1
	// DefaultPageSize is used when the caller gives no page size or a
	// non-positive one.
	DefaultPageSize = 10
)

// DateRange restricts orders to a span of calendar days. The zero value
// means no date constraint; a range only takes effect when both bounds are
// present, so a one-sided range is indistinguishable from none. Bounds are
// YYYY-MM-DD strings compared lexicographically against the date portion of
// createdAt, inclusive on both ends.
type DateRange struct {
	Start string
	End   string
}

// Bounded reports whether both ends of the range are set.
func (r DateRange) Bounded() bool {
	return r.Start != "" && r.End != ""
}

// Contains reports whether date falls inside the range. An unbounded range
// contains everything.
func (r DateRange) Contains(date string) bool {
	if !r.Bounded() {
		return true
	}
	return date >= r.Start && date <= r.End
}

// Filter is the typed query parameter set. Zero-valued fields impose no
// constraint. Predicates compose with logical AND.
type Filter struct {
	// Keyword is a case-sensitive substring matched against orderNo,
	// customerName and phone; an order matches when any field contains it.
	Keyword string
	// Status requires exact status equality when non-empty.
	Status entity.OrderStatus
	// Dates restricts the createdAt date when bounded.
	Dates DateRange
	// Page is 1-based.
	Page     int
	PageSize int
}

func (f Filter) page() int {
	if f.Page <= 0 {
		return DefaultPage
	}
	return f.Page
}

func (f Filter) pageSize() int {
	if f.PageSize <= 0 {
		return DefaultPageSize
	}
	return f.PageSize
}

func (f Filter) matches(o *entity.Order) bool {
	if f.Keyword != "" {
		if !strings.Contains(o.OrderNo, f.Keyword) &&
			!strings.Contains(o.CustomerName, f.Keyword) &&
			!strings.Contains(o.Phone, f.Keyword) {
			return false
		}
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	return f.Dates.Contains(o.Date())
}

// Result is one page of matching orders plus the post-filter total.
type Result struct {
	List  []entity.Order
	Total int
}

// Apply filters orders and slices out the requested page. Total reports the
// match count before pagination; a page past the end yields an empty list.
func Apply(orders []entity.Order, f Filter) Result {
	filtered := make([]entity.Order, 0, len(orders))
	for i := range orders {
		if f.matches(&orders[i]) {
			filtered = append(filtered, orders[i])
		}
	}

	total := len(filtered)
	start := (f.page() - 1) * f.pageSize()
	if start >= total {
		return Result{List: []entity.Order{}, Total: total}
	}
	end := start + f.pageSize()
	if end > total {
		end = total
	}
	return Result{List: filtered[start:end], Total: total}
}
