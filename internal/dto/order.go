package dto

import "github.com/figureworks/backoffice/internal/entity"

// OrderItemResponse represents one order line as exposed via transport.
type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	IP          string  `json:"ip"`
	Category    string  `json:"category"`
	Scale       string  `json:"scale"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderResponse represents an order as exposed via transport.
type OrderResponse struct {
	ID           int64               `json:"id"`
	OrderNo      string              `json:"orderNo"`
	CustomerName string              `json:"customerName"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Status       string              `json:"status"`
	PayMethod    string              `json:"payMethod"`
	CreatedAt    string              `json:"createdAt"`
	Remark       string              `json:"remark"`
	TotalAmount  float64             `json:"totalAmount"`
	Items        []OrderItemResponse `json:"items"`
}

// OrderListResponse is the paginated order listing payload.
type OrderListResponse struct {
	List  []OrderResponse `json:"list"`
	Total int             `json:"total"`
}

// UpdateStatusRequest is the status-update body.
type UpdateStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// FromOrder maps an order entity onto its transport shape.
func FromOrder(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			IP:          item.IP,
			Category:    item.Category,
			Scale:       item.Scale,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	return OrderResponse{
		ID:           o.ID,
		OrderNo:      o.OrderNo,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Status:       string(o.Status),
		PayMethod:    string(o.PayMethod),
		CreatedAt:    o.CreatedAt,
		Remark:       o.Remark,
		TotalAmount:  o.TotalAmount,
		Items:        items,
	}
}

// FromOrders maps a slice of order entities.
func FromOrders(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, FromOrder(&orders[i]))
	}
	return out
}
