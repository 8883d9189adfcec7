package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/figureworks/backoffice/internal/config"
	"github.com/figureworks/backoffice/internal/database"
	"github.com/figureworks/backoffice/internal/entity"
)

// ErrNotFound is returned when an order id matches no record.
var ErrNotFound = errors.New("order not found")

// Store is the order collection contract. List returns a read-consistent
// snapshot in ascending id order, UpdateStatus is the only mutator and
// changes nothing but the status field of the addressed record.
type Store interface {
	List(ctx context.Context) ([]entity.Order, error)
	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.Order, error)
	Insert(ctx context.Context, orders []entity.Order) error
}

// NewStore builds the configured store implementation. The memory driver
// owns the collection in process; the sql driver is the swappable
// persistent strategy backed by Bun.
func NewStore(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case "memory":
		if logger != nil {
			logger.Info("order store using in-memory driver")
		}
		return NewMemory(), nil
	case "sql":
		conns, err := database.Connect(lc, cfg, logger)
		if err != nil {
			return nil, err
		}
		return NewSQL(conns), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
