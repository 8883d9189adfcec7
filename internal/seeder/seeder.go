// Package seeder is the sample data provider: it synthesizes a batch of
// orders at process start so the analytics surface always has a collection
// to work with.
package seeder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/figureworks/backoffice/internal/config"
	"github.com/figureworks/backoffice/internal/entity"
	repo "github.com/figureworks/backoffice/internal/repository/order"
)

// productIdentity is a fixed catalog entry; prices vary per order line.
type productIdentity struct {
	name     string
	ip       string
	category string
	scale    string
}

var (
	ipList       = []string{"Starlight Saga", "Moon Prism", "Hachiware Club", "Original Character"}
	categoryList = []string{"PVC Figure", "Resin GK", "Blind Box", "Desk Ornament", "Accessory"}
	scaleList    = []string{"1/7", "1/6", "1/4", "Chibi", "Non-scale"}

	figureNames = []string{
		"Starlight Saga Operetta Ver. 1/7 PVC Figure",
		"Starlight Saga Chibi Prize Figure",
		"Starlight Saga Stage Ver. GK Statue",
		"Moon Prism Round Head Desk Ornament",
		"Moon Prism Mung Bean Duo Scene Figure",
		"Moon Prism Sofa Lounging Ver. 1/4 Figure",
		"Hachiware Club Honey Water Limited GK Statue",
		"Hachiware Club City Nightscape Diorama",
		"Hachiware Club Duo Blind Box Set",
		"Starlight x Hachiware Desktop Pet Collab",
		"Starlight x Moon Prism Scene Figure Collab",
		"Original Character AI Desk Pet Plush",
	}
)

// catalog pairs each figure name with its grouping dimensions, assigned
// round-robin the way the product roster is laid out.
var catalog = func() []productIdentity {
	out := make([]productIdentity, 0, len(figureNames))
	for i, name := range figureNames {
		out = append(out, productIdentity{
			name:     name,
			ip:       ipList[i%len(ipList)],
			category: categoryList[i%len(categoryList)],
			scale:    scaleList[i%len(scaleList)],
		})
	}
	return out
}()

// Seeder generates sample orders into the configured store.
type Seeder struct {
	store  repo.Store
	logger *zap.Logger
	cfg    config.Seed
}

// New constructs a Seeder backed by the order store.
func New(store repo.Store, cfg config.Config, logger *zap.Logger) *Seeder {
	return &Seeder{store: store, logger: logger, cfg: cfg.Seed}
}

// Orders generates a random batch of orders and bulk-inserts them. The
// count lands between the configured min and max; every order carries two
// line items with subtotal and totalAmount derived before insertion.
func (s *Seeder) Orders(ctx context.Context) (int, error) {
	count := s.cfg.MinOrders
	if s.cfg.MaxOrders > s.cfg.MinOrders {
		count += rand.IntN(s.cfg.MaxOrders - s.cfg.MinOrders + 1)
	}

	orders := make([]entity.Order, 0, count)
	for i := 0; i < count; i++ {
		orders = append(orders, s.randomOrder())
	}

	if err := s.store.Insert(ctx, orders); err != nil {
		return 0, err
	}

	if s.logger != nil {
		s.logger.Info("seeded orders", zap.Int("count", count))
	}
	return count, nil
}

func (s *Seeder) randomOrder() entity.Order {
	order := entity.Order{
		OrderNo:      uuid.NewString(),
		CustomerName: customerNames[rand.IntN(len(customerNames))],
		Phone:        randomPhone(),
		Address:      randomAddress(),
		Status:       entity.Statuses[rand.IntN(len(entity.Statuses))],
		PayMethod:    entity.PayMethods[rand.IntN(len(entity.PayMethods))],
		CreatedAt:    s.randomCreatedAt(),
		Remark:       remarks[rand.IntN(len(remarks))],
		Items: []entity.OrderItem{
			randomItem(),
			randomItem(),
		},
	}
	order.RecomputeTotals()
	return order
}

func randomItem() entity.OrderItem {
	p := catalog[rand.IntN(len(catalog))]
	return entity.OrderItem{
		ID:          fmt.Sprintf("%012d", rand.Int64N(1e12)),
		ProductName: p.name,
		IP:          p.ip,
		Category:    p.category,
		Scale:       p.scale,
		Price:       float64(99 + rand.IntN(1901)),
		Quantity:    1 + rand.IntN(3),
	}
}

// randomCreatedAt spreads order timestamps over the configured year so the
// date-bucketed reports have material in every month.
func (s *Seeder) randomCreatedAt() string {
	start := time.Date(s.cfg.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	span := int64(end.Sub(start) / time.Second)
	at := start.Add(time.Duration(rand.Int64N(span)) * time.Second)
	return at.Format(entity.CreatedAtLayout)
}

func randomPhone() string {
	return fmt.Sprintf("1%d%08d", 3+rand.IntN(7), rand.IntN(1e8))
}

func randomAddress() string {
	return fmt.Sprintf("%s, Unit %d", addresses[rand.IntN(len(addresses))], 1+rand.IntN(200))
}

var customerNames = []string{
	"Alice Chen", "Bruno Marques", "Chris Tanaka", "Dana Whitfield",
	"Elif Demir", "Felix Wagner", "Grace Liu", "Hiro Yamada",
	"Ines Rodriguez", "Jonas Berg", "Katya Ivanova", "Liam O'Connor",
}

var addresses = []string{
	"12 Sakura Lane, Harbor City", "88 Meridian Ave, Northgate",
	"5 Clockwork St, Old Quarter", "301 Lotus Blvd, Riverside",
	"47 Pine Hollow Rd, Westbrook", "9 Crescent Way, Lakeview",
}

var remarks = []string{
	"Please ship with extra padding.",
	"Gift wrap if possible.",
	"Leave at the front desk.",
	"Preorder bonus requested.",
	"No rush on delivery.",
	"",
}
