package fulfillment

import "github.com/shopspring/decimal"

// TotalPrice calcula el valor cobrado por una entrada a bodega (servicio de dominio).
// PrecioTotal = PrecioUnitario * Cantidad
func TotalPrice(unitPrice decimal.Decimal, amount int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(amount)))
}
