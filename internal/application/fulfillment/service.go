package fulfillment

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/dto"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

// Estrategias de cumplimiento (etiqueta de métricas y logs).
const (
	StrategyWorkflow  = "workflow"
	StrategyProcedure = "procedure"
)

const outcomeSuccess = "success"

// Service es el contrato expuesto a la capa HTTP: las dos variantes de
// AddProductToWarehouse reciben la misma entrada y devuelven el ID del registro creado.
type Service interface {
	AddProductToWarehouse(ctx context.Context, req *dto.FulfillmentRequest) (int64, error)
	AddProductToWarehouseWithProcedure(ctx context.Context, req *dto.FulfillmentRequest) (int64, error)
}

var _ Service = (*UseCase)(nil)

// UseCase implementa Service: el flujo imperativo sobre UnitOfWork y la delegación
// al procedimiento almacenado.
type UseCase struct {
	uow       UnitOfWork
	procedure repository.FulfillmentProcedure
	observer  Observer
	log       *logger.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// Option ajusta un UseCase en su construcción.
type Option func(*UseCase)

// WithTracerProvider usa tp en lugar del TracerProvider global de otel.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(uc *UseCase) { uc.tracer = tp.Tracer(tracerName) }
}

const tracerName = "github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"

// NewUseCase construye el caso de uso. log y observer pueden ser nil.
func NewUseCase(uow UnitOfWork, procedure repository.FulfillmentProcedure, log *logger.Logger, observer Observer, opts ...Option) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	uc := &UseCase{
		uow:       uow,
		procedure: procedure,
		observer:  observer,
		log:       log.Child("fulfillment"),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// validate aplica las precondiciones comunes a ambas estrategias.
func validate(req *dto.FulfillmentRequest) error {
	if req == nil {
		return domain.ErrNilRequest
	}
	if req.Amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func (uc *UseCase) start(ctx context.Context, strategy string, req *dto.FulfillmentRequest) (context.Context, trace.Span) {
	ctx, span := uc.tracer.Start(ctx, "fulfillment."+strategy)
	span.SetAttributes(attribute.String("strategy", strategy))
	if id := logger.RequestID(ctx); id != "" {
		span.SetAttributes(attribute.String("request_id", id))
	}
	if req != nil {
		span.SetAttributes(
			attribute.Int64("product_id", req.ProductID),
			attribute.Int64("warehouse_id", req.WarehouseID),
			attribute.Int("amount", req.Amount),
		)
	}
	return ctx, span
}

// finish cierra el span, registra la métrica y deja traza en el log.
func (uc *UseCase) finish(ctx context.Context, span trace.Span, strategy string, began time.Time, id int64, err error) {
	defer span.End()
	elapsed := time.Since(began)
	requestID := logger.RequestID(ctx)

	if err == nil {
		span.SetAttributes(attribute.Int64("product_warehouse_id", id))
		uc.observer.Observe(strategy, outcomeSuccess, elapsed)
		uc.log.Info().Str("request_id", requestID).Str("strategy", strategy).Int64("id", id).Dur("elapsed", elapsed).Msg("orden cumplida")
		return
	}

	kind := domain.Kind(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	uc.observer.Observe(strategy, strings.ToLower(kind), elapsed)

	ev := uc.log.Warn()
	if kind == domain.KindInternal {
		ev = uc.log.Error()
	}
	ev.Err(err).Str("request_id", requestID).Str("strategy", strategy).Str("kind", kind).Dur("elapsed", elapsed).Msg("cumplimiento rechazado")
}
