package entity

import "time"

// Order es una orden de compra de un producto. FulfilledAt nil indica que la orden
// sigue pendiente; una vez asignada no vuelve a cambiar.
type Order struct {
	ID          int64
	ProductID   int64
	Amount      int
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// IsFulfilled indica si la orden ya fue cumplida.
func (o *Order) IsFulfilled() bool {
	return o.FulfilledAt != nil
}
