package fulfillment

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/dto"
)

// AddProductToWarehouseWithProcedure delega todo el cumplimiento a la rutina almacenada,
// que lo ejecuta de forma atómica en el servidor. Aquí solo se validan las precondiciones;
// el adaptador traduce los errores de la rutina a las clases de dominio.
func (uc *UseCase) AddProductToWarehouseWithProcedure(ctx context.Context, req *dto.FulfillmentRequest) (id int64, err error) {
	began := time.Now()
	ctx, span := uc.start(ctx, StrategyProcedure, req)
	defer func() { uc.finish(ctx, span, StrategyProcedure, began, id, err) }()

	if err = validate(req); err != nil {
		return 0, err
	}

	id, err = uc.procedure.AddProductToWarehouse(ctx, req.ProductID, req.WarehouseID, req.Amount, req.CreatedAt)
	if err != nil {
		return 0, err
	}
	return id, nil
}
