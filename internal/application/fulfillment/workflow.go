package fulfillment

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/dto"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/fulfillment"
)

// AddProductToWarehouse cumple una orden paso a paso desde la aplicación:
// existencia de producto y bodega, búsqueda de la orden, control de duplicados,
// marca de cumplida, cálculo de precio e inserción del registro en product_warehouse.
//
// Todos los pasos corren en una sola transacción (UnitOfWork). Si falla la inserción
// la marca de cumplida se revierte con el Rollback; la marca usa compare-and-swap sobre
// fulfilled_at y product_warehouse tiene UNIQUE(id_order), así dos llamadas concurrentes
// sobre la misma orden terminan en una inserción y un ErrOrderAlreadyFulfilled.
func (uc *UseCase) AddProductToWarehouse(ctx context.Context, req *dto.FulfillmentRequest) (id int64, err error) {
	began := time.Now()
	ctx, span := uc.start(ctx, StrategyWorkflow, req)
	defer func() { uc.finish(ctx, span, StrategyWorkflow, began, id, err) }()

	if err = validate(req); err != nil {
		return 0, err
	}

	err = uc.uow.Run(ctx, func(repos Repositories) error {
		var runErr error
		id, runErr = uc.fulfill(ctx, repos, req)
		return runErr
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (uc *UseCase) fulfill(ctx context.Context, repos Repositories, req *dto.FulfillmentRequest) (int64, error) {
	log := uc.log.With().
		Int64("product_id", req.ProductID).
		Int64("warehouse_id", req.WarehouseID).
		Int("amount", req.Amount).
		Logger()

	ok, err := repos.Products.Exists(ctx, req.ProductID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, req.ProductID)
	}

	ok, err = repos.Warehouses.Exists(ctx, req.WarehouseID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: id %d", domain.ErrWarehouseNotFound, req.WarehouseID)
	}

	order, err := repos.Orders.FindMatching(ctx, req.ProductID, req.Amount, req.CreatedAt)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, fmt.Errorf("%w: producto %d, cantidad %d, antes de %s",
			domain.ErrOrderNotFound, req.ProductID, req.Amount, req.CreatedAt.Format(time.RFC3339))
	}
	log.Debug().Int64("order_id", order.ID).Msg("orden encontrada")
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("order_id", order.ID))

	if err := uc.ensureNotFulfilled(ctx, repos, order); err != nil {
		return 0, err
	}

	now := uc.now()
	if err := repos.Orders.MarkFulfilled(ctx, order.ID, now); err != nil {
		return 0, err
	}

	unitPrice, err := repos.Products.GetPrice(ctx, req.ProductID)
	if err != nil {
		return 0, err
	}
	if unitPrice == nil {
		return 0, fmt.Errorf("%w: producto %d", domain.ErrPriceUnavailable, req.ProductID)
	}

	movement := &entity.ProductWarehouse{
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		OrderID:     order.ID,
		Amount:      req.Amount,
		Price:       fulfillment.TotalPrice(*unitPrice, req.Amount),
		CreatedAt:   now,
	}
	id, err := repos.Movements.Create(ctx, movement)
	if err != nil {
		return 0, err
	}
	log.Debug().Int64("order_id", order.ID).Int64("id", id).Str("price", movement.Price.String()).Msg("registro creado")
	return id, nil
}

// ensureNotFulfilled rechaza órdenes ya marcadas o con registro en product_warehouse.
func (uc *UseCase) ensureNotFulfilled(ctx context.Context, repos Repositories, order *entity.Order) error {
	if order.IsFulfilled() {
		return fmt.Errorf("%w: orden %d", domain.ErrOrderAlreadyFulfilled, order.ID)
	}
	exists, err := repos.Movements.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: orden %d", domain.ErrOrderAlreadyFulfilled, order.ID)
	}
	return nil
}
