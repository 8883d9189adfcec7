package entity

import "github.com/uptrace/bun"

// OrderStatus is the fulfillment state of an order. It is the only field
// that ever changes after an order is created.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Statuses lists every valid order status.
var Statuses = []OrderStatus{StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the declared statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PayMethod identifies the payment channel used for an order.
type PayMethod string

const (
	PayAlipay PayMethod = "alipay"
	PayWechat PayMethod = "wechat"
	PayCard   PayMethod = "card"
	PayCash   PayMethod = "cash"
	PayBank   PayMethod = "bank"
)

// PayMethods lists every valid payment method.
var PayMethods = []PayMethod{PayAlipay, PayWechat, PayCard, PayCash, PayBank}

// CreatedAtLayout is the canonical order timestamp format. Date-range
// filtering compares the leading YYYY-MM-DD portion lexicographically, which
// for this fixed layout is equivalent to chronological order.
const CreatedAtLayout = "2006-01-02 15:04:05"

// OrderItem is a single product line within an order. Its fields are fixed
// at order creation; Subtotal is derived once from Price and Quantity.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items" json:"-"`

	ID          string  `bun:"id,pk" json:"id"`
	OrderID     int64   `bun:"order_id,pk" json:"-"`
	ProductName string  `bun:"product_name" json:"productName"`
	IP          string  `bun:"ip" json:"ip"`
	Category    string  `bun:"category" json:"category"`
	Scale       string  `bun:"scale" json:"scale"`
	Price       float64 `bun:"price" json:"price"`
	Quantity    int     `bun:"quantity" json:"quantity"`
	Subtotal    float64 `bun:"subtotal" json:"subtotal"`
}

// Order is one customer transaction with fixed line items and a mutable
// fulfillment status.
type Order struct {
	bun.BaseModel `bun:"table:orders" json:"-"`

	ID           int64       `bun:"id,pk,autoincrement" json:"id"`
	OrderNo      string      `bun:"order_no" json:"orderNo"`
	CustomerName string      `bun:"customer_name" json:"customerName"`
	Phone        string      `bun:"phone" json:"phone"`
	Address      string      `bun:"address" json:"address"`
	Status       OrderStatus `bun:"status" json:"status"`
	PayMethod    PayMethod   `bun:"pay_method" json:"payMethod"`
	CreatedAt    string      `bun:"created_at" json:"createdAt"`
	Remark       string      `bun:"remark" json:"remark"`
	TotalAmount  float64     `bun:"total_amount" json:"totalAmount"`
	Items        []OrderItem `bun:"rel:has-many,join:id=order_id" json:"items"`
}

// Date returns the YYYY-MM-DD portion of CreatedAt.
func (o *Order) Date() string {
	if len(o.CreatedAt) < 10 {
		return o.CreatedAt
	}
	return o.CreatedAt[:10]
}

// RecomputeTotals derives each item subtotal and the order total. Called
// exactly once, when the order is assembled; amounts are frozen afterwards.
func (o *Order) RecomputeTotals() {
	var total float64
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].Price * float64(o.Items[i].Quantity)
		total += o.Items[i].Subtotal
	}
	o.TotalAmount = total
}
