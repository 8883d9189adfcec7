package order

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/figureworks/backoffice/internal/dto"
	"github.com/figureworks/backoffice/internal/entity"
	"github.com/figureworks/backoffice/internal/presentation/http/response"
	"github.com/figureworks/backoffice/internal/query"
	service "github.com/figureworks/backoffice/internal/service/order"
	"github.com/figureworks/backoffice/pkg/errorbank"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var httpTracer = otel.Tracer("github.com/figureworks/backoffice/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/orders")
	g.GET("", h.list)
	g.GET("/detail", h.detail)
	g.POST("/updateStatus", h.updateStatus)
}

// list maps the free-form query string onto a typed filter once, at the
// boundary. Non-numeric page/pageSize fall back to defaults; a missing
// query string means no filters.
func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	filter := query.Filter{
		Keyword: strings.TrimSpace(c.QueryParam("keyword")),
		Status:  entity.OrderStatus(strings.TrimSpace(c.QueryParam("status"))),
		Dates: query.DateRange{
			Start: c.QueryParam("startDate"),
			End:   c.QueryParam("endDate"),
		},
		Page:     intParam(c, "page", query.DefaultPage),
		PageSize: intParam(c, "pageSize", query.DefaultPageSize),
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list", trace.WithAttributes(
		attribute.Int("query.page", filter.Page),
		attribute.Int("query.pageSize", filter.PageSize),
	))
	defer span.End()

	result, err := h.svc.List(ctx, filter)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.OrderListResponse{
		List:  dto.FromOrders(result.List),
		Total: result.Total,
	}).Build()
}

// detail treats an absent or unparsable id as not found: an id that cannot
// be parsed cannot match any record.
func (h *Handler) detail(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.NotFound("order not found")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.detail", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.FromOrder(order)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	var payload dto.UpdateStatusRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	status := entity.OrderStatus(payload.Status)
	if !status.Valid() {
		return b.WithError(errorbank.BadRequest("invalid order status")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.updateStatus", trace.WithAttributes(
		attribute.Int64("order.id", payload.ID),
		attribute.String("order.status", payload.Status),
	))
	defer span.End()

	order, err := h.svc.UpdateStatus(ctx, payload.ID, status)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.FromOrder(order)).WithMessage("order status updated").Build()
}

func intParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
