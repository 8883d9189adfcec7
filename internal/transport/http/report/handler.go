package report

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/figureworks/backoffice/internal/presentation/http/response"
	service "github.com/figureworks/backoffice/internal/service/report"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var httpTracer = otel.Tracer("github.com/figureworks/backoffice/transport/http/report")

// Handler exposes report and dashboard endpoints over HTTP. Report
// endpoints never fail on missing or malformed parameters; defaults are
// substituted at this boundary.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a report Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/report")
	g.GET("/daily", h.daily)
	g.GET("/monthly", h.monthly)
	g.GET("/quarterly", h.quarterly)
	g.GET("/annual", h.annual)

	e.GET("/api/dashboard/overview", h.overview)
}

func (h *Handler) daily(c echo.Context) error {
	b := response.New(c)

	date := c.QueryParam("date")
	ctx, span := httpTracer.Start(c.Request().Context(), "report.daily", trace.WithAttributes(attribute.String("report.date", date)))
	defer span.End()

	daily, err := h.svc.Daily(ctx, date)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(daily).Build()
}

func (h *Handler) monthly(c echo.Context) error {
	b := response.New(c)

	year := intParam(c, "year")
	month := intParam(c, "month")
	ctx, span := httpTracer.Start(c.Request().Context(), "report.monthly", trace.WithAttributes(
		attribute.Int("report.year", year),
		attribute.Int("report.month", month),
	))
	defer span.End()

	return b.WithData(h.svc.Monthly(ctx, year, month)).Build()
}

func (h *Handler) quarterly(c echo.Context) error {
	b := response.New(c)

	year := intParam(c, "year")
	ctx, span := httpTracer.Start(c.Request().Context(), "report.quarterly", trace.WithAttributes(attribute.Int("report.year", year)))
	defer span.End()

	return b.WithData(h.svc.Quarterly(ctx, year)).Build()
}

func (h *Handler) annual(c echo.Context) error {
	b := response.New(c)

	year := intParam(c, "year")
	ctx, span := httpTracer.Start(c.Request().Context(), "report.annual", trace.WithAttributes(attribute.Int("report.year", year)))
	defer span.End()

	return b.WithData(h.svc.Annual(ctx, year)).Build()
}

func (h *Handler) overview(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "dashboard.overview")
	defer span.End()

	overview, err := h.svc.Overview(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(overview).Build()
}

// intParam returns 0 for absent or malformed values; the service layer
// substitutes its defaults.
func intParam(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
