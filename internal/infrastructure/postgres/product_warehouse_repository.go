package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

var _ repository.ProductWarehouseRepository = (*ProductWarehouseRepo)(nil)

// ProductWarehouseRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductWarehouseRepo struct {
	q Querier
}

// NewProductWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductWarehouseRepository(q Querier) *ProductWarehouseRepo {
	return &ProductWarehouseRepo{q: q}
}

// ExistsForOrder indica si la orden ya tiene registro de entrada a bodega.
func (r *ProductWarehouseRepo) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM product_warehouse WHERE id_order = $1)`, orderID).Scan(&ok)
	if err != nil {
		return false, domain.Internal("exists product_warehouse", err)
	}
	return ok, nil
}

// Create persiste el registro y devuelve el ID generado. La restricción UNIQUE(id_order)
// convierte un segundo registro para la misma orden en ErrOrderAlreadyFulfilled.
func (r *ProductWarehouseRepo) Create(ctx context.Context, pw *entity.ProductWarehouse) (int64, error) {
	query := `
		INSERT INTO product_warehouse (id_warehouse, id_product, id_order, amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_product_warehouse`
	var id int64
	err := r.q.QueryRow(ctx, query,
		pw.WarehouseID, pw.ProductID, pw.OrderID, pw.Amount, pw.Price, pw.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: orden %d", domain.ErrOrderAlreadyFulfilled, pw.OrderID)
		}
		return 0, domain.Internal("insert product_warehouse", err)
	}
	pw.ID = id
	return id, nil
}
