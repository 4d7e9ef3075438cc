package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

var _ repository.FulfillmentProcedure = (*FulfillmentProcedure)(nil)

// FulfillmentProcedure invoca la función almacenada que cumple la orden de forma atómica.
type FulfillmentProcedure struct {
	q     Querier
	query string
}

// NewFulfillmentProcedure construye el adaptador. name admite esquema ("public.add_product_to_warehouse")
// y se escapa como identificador.
func NewFulfillmentProcedure(q Querier, name string) *FulfillmentProcedure {
	ident := pgx.Identifier(strings.Split(name, ".")).Sanitize()
	return &FulfillmentProcedure{
		q:     q,
		query: fmt.Sprintf("SELECT %s($1, $2, $3, $4)", ident),
	}
}

// AddProductToWarehouse ejecuta la rutina y devuelve el ID del registro creado.
func (p *FulfillmentProcedure) AddProductToWarehouse(ctx context.Context, productID, warehouseID int64, amount int, createdAt time.Time) (int64, error) {
	var id int64
	if err := p.q.QueryRow(ctx, p.query, productID, warehouseID, amount, createdAt).Scan(&id); err != nil {
		return 0, classifyProcedureError(err)
	}
	return id, nil
}
