package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de lectura de productos (DIP).
type ProductRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
	// GetPrice devuelve el precio unitario o nil si el producto no existe.
	GetPrice(ctx context.Context, id int64) (*decimal.Decimal, error)
}
