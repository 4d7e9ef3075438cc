package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// FindMatching devuelve la orden candidata: pendientes primero (false < true),
// luego la más antigua y por último el menor ID.
func (r *OrderRepo) FindMatching(ctx context.Context, productID int64, amount int, before time.Time) (*entity.Order, error) {
	query := `
		SELECT id_order, id_product, amount, created_at, fulfilled_at
		FROM "order"
		WHERE id_product = $1 AND amount = $2 AND created_at < $3
		ORDER BY (fulfilled_at IS NOT NULL), created_at, id_order
		LIMIT 1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, productID, amount, before).Scan(
		&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Internal("find matching order", err)
	}
	return &o, nil
}

// MarkFulfilled fija fulfilled_at solo si sigue en NULL. Si otra transacción la marcó
// primero, el UPDATE espera su Commit, no afecta filas y se devuelve conflicto.
func (r *OrderRepo) MarkFulfilled(ctx context.Context, orderID int64, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE "order" SET fulfilled_at = $2 WHERE id_order = $1 AND fulfilled_at IS NULL`,
		orderID, at,
	)
	if err != nil {
		return domain.Internal("mark order fulfilled", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %d", domain.ErrOrderAlreadyFulfilled, orderID)
	}
	return nil
}
