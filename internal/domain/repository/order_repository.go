package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de órdenes de compra.
type OrderRepository interface {
	// FindMatching busca una orden del producto con la misma cantidad creada antes de before.
	// Prefiere órdenes pendientes, luego la más antigua y luego el menor ID. Devuelve nil si no hay.
	FindMatching(ctx context.Context, productID int64, amount int, before time.Time) (*entity.Order, error)
	// MarkFulfilled fija fulfilled_at solo si la orden sigue pendiente.
	// Devuelve domain.ErrOrderAlreadyFulfilled si otra transacción la cumplió antes.
	MarkFulfilled(ctx context.Context, orderID int64, at time.Time) error
}
