package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/figureworks/backoffice/pkg/errorbank"
)

// Envelope is the wire format every endpoint speaks: a numeric code (200 on
// success, the HTTP status on failure), the payload under data, and an
// optional human-readable message. Failure responses carry only code and
// message.
type Envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Builder helps construct consistent HTTP responses.
type Builder struct {
	ctx     echo.Context
	data    any
	message string
	err     error
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx}
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithMessage attaches a human-readable message to a success response.
func (b *Builder) WithMessage(message string) *Builder {
	b.message = message
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.ctx.JSON(http.StatusOK, Envelope{
		Code:    http.StatusOK,
		Data:    b.data,
		Message: b.message,
	})
}

func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := appErr.StatusCode()
	return b.ctx.JSON(status, Envelope{
		Code:    status,
		Message: appErr.Message(),
	})
}
