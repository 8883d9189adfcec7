package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/figureworks/backoffice/internal/entity"
)

func seedMemory(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory()

	orders := []entity.Order{
		{
			OrderNo:      "ORD-001",
			CustomerName: "Alice Chen",
			Status:       entity.StatusPending,
			CreatedAt:    "2025-06-01 10:00:00",
			Items: []entity.OrderItem{
				{ID: "a1", ProductName: "Figure A", Price: 100, Quantity: 2},
			},
		},
		{
			OrderNo:      "ORD-002",
			CustomerName: "Bruno Marques",
			Status:       entity.StatusPaid,
			CreatedAt:    "2025-06-02 11:00:00",
			Items: []entity.OrderItem{
				{ID: "b1", ProductName: "Figure B", Price: 50, Quantity: 1},
			},
		},
	}
	for i := range orders {
		orders[i].RecomputeTotals()
	}
	require.NoError(t, m.Insert(context.Background(), orders))
	return m
}

func TestMemoryListPreservesInsertionOrder(t *testing.T) {
	m := seedMemory(t)

	orders, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(1), orders[0].ID)
	assert.Equal(t, int64(2), orders[1].ID)
	assert.Equal(t, "ORD-001", orders[0].OrderNo)
}

func TestMemoryFindByID(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	order, err := m.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "ORD-002", order.OrderNo)

	_, err = m.FindByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateStatus(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	updated, err := m.UpdateStatus(ctx, 1, entity.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShipped, updated.Status)

	// Visible to subsequent reads.
	fetched, err := m.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShipped, fetched.Status)

	listed, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShipped, listed[0].Status)

	_, err = m.UpdateStatus(ctx, 99, entity.StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateStatusIdempotent(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	first, err := m.UpdateStatus(ctx, 1, entity.StatusCompleted)
	require.NoError(t, err)
	second, err := m.UpdateStatus(ctx, 1, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)

	third, err := m.UpdateStatus(ctx, 1, entity.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, third.Status)
}

func TestMemoryUpdateStatusTouchesOnlyStatus(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	before, err := m.FindByID(ctx, 1)
	require.NoError(t, err)

	after, err := m.UpdateStatus(ctx, 1, entity.StatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.OrderNo, after.OrderNo)
	assert.Equal(t, before.CustomerName, after.CustomerName)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.TotalAmount, after.TotalAmount)
	assert.Equal(t, before.Items, after.Items)

	// Amount invariants hold after mutation.
	var sum float64
	for _, item := range after.Items {
		assert.Equal(t, item.Price*float64(item.Quantity), item.Subtotal)
		sum += item.Subtotal
	}
	assert.Equal(t, sum, after.TotalAmount)
}

func TestMemoryInsertAssignsMonotonicIDs(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	require.NoError(t, m.Insert(ctx, []entity.Order{{OrderNo: "ORD-003", CreatedAt: "2025-06-03 08:00:00"}}))

	orders, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(3), orders[2].ID)
}

func TestMemoryListReturnsSnapshot(t *testing.T) {
	m := seedMemory(t)
	ctx := context.Background()

	snapshot, err := m.List(ctx)
	require.NoError(t, err)

	_, err = m.UpdateStatus(ctx, 1, entity.StatusCancelled)
	require.NoError(t, err)

	// The earlier snapshot is unaffected by the mutation.
	assert.Equal(t, entity.StatusPending, snapshot[0].Status)
}
