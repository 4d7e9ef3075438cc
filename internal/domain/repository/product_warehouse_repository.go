package repository

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// ProductWarehouseRepository define el puerto de persistencia de entradas a bodega.
type ProductWarehouseRepository interface {
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)
	// Create inserta el registro y devuelve el ID asignado por la base de datos.
	Create(ctx context.Context, pw *entity.ProductWarehouse) (int64, error)
}
