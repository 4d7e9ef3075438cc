package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/dto"
	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

// FulfillmentHandler maneja las peticiones HTTP de cumplimiento de órdenes.
type FulfillmentHandler struct {
	svc fulfillment.Service
}

// NewFulfillmentHandler construye el handler.
func NewFulfillmentHandler(svc fulfillment.Service) *FulfillmentHandler {
	return &FulfillmentHandler{svc: svc}
}

// AddProduct godoc
// @Summary      Registrar entrada de producto a bodega (flujo de la aplicación)
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FulfillmentRequest  true  "product_id, warehouse_id, amount, created_at"
// @Success      201   {object}  dto.FulfillmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse [post]
func (h *FulfillmentHandler) AddProduct(c *fiber.Ctx) error {
	return h.handle(c, h.svc.AddProductToWarehouse)
}

// AddProductWithProcedure godoc
// @Summary      Registrar entrada de producto a bodega (procedimiento almacenado)
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FulfillmentRequest  true  "product_id, warehouse_id, amount, created_at"
// @Success      201   {object}  dto.FulfillmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse/procedure [post]
func (h *FulfillmentHandler) AddProductWithProcedure(c *fiber.Ctx) error {
	return h.handle(c, h.svc.AddProductToWarehouseWithProcedure)
}

func (h *FulfillmentHandler) handle(c *fiber.Ctx, fn func(context.Context, *dto.FulfillmentRequest) (int64, error)) error {
	var in dto.FulfillmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctx := logger.ContextWithRequestID(c.UserContext(), GetRequestID(c))
	id, err := fn(ctx, &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FulfillmentResponse{ID: id})
}

// writeError responde con el status de la clase de error y su mensaje.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.Kind(err)
	return c.Status(statusFor(kind)).JSON(dto.ErrorResponse{Code: kind, Message: err.Error()})
}

func statusFor(kind string) int {
	switch kind {
	case domain.KindInvalidArgument:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
