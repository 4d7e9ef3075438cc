package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductWarehouse registra la entrada de mercancía a una bodega que cumple una orden.
// Existe como máximo un registro por OrderID.
type ProductWarehouse struct {
	ID          int64
	WarehouseID int64
	ProductID   int64
	OrderID     int64
	Amount      int
	Price       decimal.Decimal // precio total: precio unitario * cantidad
	CreatedAt   time.Time
}
