package fulfillment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/dto"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	t0      = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t1      = t0.Add(24 * time.Hour)
	fixedAt = time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
)

// seededStore: Product{1, 10.00}, Warehouse{1}, Order{5, producto 1, cantidad 3, T0, pendiente}.
func seededStore() *memStore {
	s := newMemStore()
	s.addProduct(1, "10.00")
	s.warehouses[1] = true
	s.addOrder(entity.Order{ID: 5, ProductID: 1, Amount: 3, CreatedAt: t0})
	return s
}

func newTestUseCase(s *memStore, obs Observer) *UseCase {
	uc := NewUseCase(s, &fakeProcedure{}, nil, obs)
	uc.now = func() time.Time { return fixedAt }
	return uc
}

func validRequest() *dto.FulfillmentRequest {
	return &dto.FulfillmentRequest{ProductID: 1, WarehouseID: 1, Amount: 3, CreatedAt: t1}
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_CantidadNoPositiva(t *testing.T) {
	for _, amount := range []int{0, -1, -100} {
		s := seededStore()
		uc := newTestUseCase(s, nil)

		req := validRequest()
		req.Amount = amount
		_, err := uc.AddProductToWarehouse(context.Background(), req)

		require.ErrorIs(t, err, domain.ErrInvalidInput, "amount=%d", amount)
		assert.Equal(t, 0, s.runs, "no debe abrirse la transacción")
		assert.Nil(t, s.order(5).FulfilledAt)
	}
}

func TestWorkflow_SolicitudNil(t *testing.T) {
	s := seededStore()
	uc := newTestUseCase(s, nil)

	_, err := uc.AddProductToWarehouse(context.Background(), nil)

	require.ErrorIs(t, err, domain.ErrNilRequest)
	assert.Equal(t, domain.KindInvalidArgument, domain.Kind(err))
	assert.Equal(t, 0, s.runs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Existencia y búsqueda de orden
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_NoEncontrado(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.FulfillmentRequest)
		want   error
	}{
		{"producto inexistente", func(r *dto.FulfillmentRequest) { r.ProductID = 99 }, domain.ErrProductNotFound},
		{"bodega inexistente", func(r *dto.FulfillmentRequest) { r.WarehouseID = 99 }, domain.ErrWarehouseNotFound},
		{"cantidad distinta", func(r *dto.FulfillmentRequest) { r.Amount = 4 }, domain.ErrOrderNotFound},
		{"fecha igual a la de la orden", func(r *dto.FulfillmentRequest) { r.CreatedAt = t0 }, domain.ErrOrderNotFound},
		{"fecha anterior a la orden", func(r *dto.FulfillmentRequest) { r.CreatedAt = t0.Add(-time.Minute) }, domain.ErrOrderNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := seededStore()
			uc := newTestUseCase(s, nil)
			req := validRequest()
			tc.mutate(req)

			_, err := uc.AddProductToWarehouse(context.Background(), req)

			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, domain.KindNotFound, domain.Kind(err))
			assert.Nil(t, s.order(5).FulfilledAt, "no debe haber mutación")
			assert.Empty(t, s.movementsFor(5))
		})
	}
}

func TestWorkflow_ProductoSinBodegaReportaProductoPrimero(t *testing.T) {
	s := seededStore()
	uc := newTestUseCase(s, nil)

	_, err := uc.AddProductToWarehouse(context.Background(), &dto.FulfillmentRequest{
		ProductID: 99, WarehouseID: 99, Amount: 3, CreatedAt: t1,
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz y duplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_Exito(t *testing.T) {
	s := seededStore()
	uc := newTestUseCase(s, nil)

	id, err := uc.AddProductToWarehouse(context.Background(), validRequest())
	require.NoError(t, err)

	order := s.order(5)
	require.NotNil(t, order.FulfilledAt)
	assert.Equal(t, fixedAt, *order.FulfilledAt)

	movs := s.movementsFor(5)
	require.Len(t, movs, 1)
	m := movs[0]
	assert.Equal(t, id, m.ID)
	assert.Equal(t, int64(1), m.WarehouseID)
	assert.Equal(t, int64(1), m.ProductID)
	assert.Equal(t, 3, m.Amount)
	assert.True(t, m.Price.Equal(decimal.RequireFromString("30.00")), "precio %s", m.Price)
	assert.Equal(t, fixedAt, m.CreatedAt)
}

func TestWorkflow_SegundaLlamadaEsConflicto(t *testing.T) {
	s := seededStore()
	uc := newTestUseCase(s, nil)

	_, err := uc.AddProductToWarehouse(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.AddProductToWarehouse(context.Background(), validRequest())
	require.ErrorIs(t, err, domain.ErrOrderAlreadyFulfilled)
	assert.Equal(t, domain.KindConflict, domain.Kind(err))
	assert.Len(t, s.movementsFor(5), 1, "no debe crearse un segundo registro")
}

func TestWorkflow_RegistroExistenteSinMarcaEsConflicto(t *testing.T) {
	s := seededStore()
	s.movements = append(s.movements, &entity.ProductWarehouse{ID: 40, OrderID: 5, ProductID: 1, WarehouseID: 1, Amount: 3})
	uc := newTestUseCase(s, nil)

	_, err := uc.AddProductToWarehouse(context.Background(), validRequest())

	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, s.order(5).FulfilledAt)
	assert.Len(t, s.movementsFor(5), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Desempate entre órdenes candidatas
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_DesempatePrefierePendienteMasAntigua(t *testing.T) {
	s := newMemStore()
	s.addProduct(1, "2.50")
	s.warehouses[1] = true
	done := t0.Add(time.Hour)
	s.addOrder(entity.Order{ID: 10, ProductID: 1, Amount: 3, CreatedAt: t0, FulfilledAt: &done})
	s.addOrder(entity.Order{ID: 12, ProductID: 1, Amount: 3, CreatedAt: t0.Add(2 * time.Hour)})
	s.addOrder(entity.Order{ID: 11, ProductID: 1, Amount: 3, CreatedAt: t0.Add(2 * time.Hour)})
	s.addOrder(entity.Order{ID: 13, ProductID: 1, Amount: 3, CreatedAt: t0.Add(3 * time.Hour)})
	uc := newTestUseCase(s, nil)

	var order []int64
	for i := 0; i < 3; i++ {
		_, err := uc.AddProductToWarehouse(context.Background(), validRequest())
		require.NoError(t, err)
		order = append(order, s.movements[len(s.movements)-1].OrderID)
	}
	assert.Equal(t, []int64{11, 12, 13}, order, "pendientes primero, luego created_at y luego ID")

	// Todas cumplidas: la candidata es la más antigua y ya está cumplida.
	_, err := uc.AddProductToWarehouse(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyFulfilled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallas después de marcar la orden: Rollback
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_PrecioAusenteRevierteMarca(t *testing.T) {
	s := seededStore()
	delete(s.prices, 1)
	uc := newTestUseCase(s, nil)

	_, err := uc.AddProductToWarehouse(context.Background(), validRequest())

	require.ErrorIs(t, err, domain.ErrPriceUnavailable)
	assert.Equal(t, domain.KindInternal, domain.Kind(err))
	assert.Nil(t, s.order(5).FulfilledAt, "la marca de cumplida debe revertirse")
	assert.Empty(t, s.movementsFor(5))
}

func TestWorkflow_FallaAlInsertarRevierteMarca(t *testing.T) {
	s := seededStore()
	s.createErr = domain.Internal("insertar product_warehouse", errBoom)
	uc := newTestUseCase(s, nil)

	_, err := uc.AddProductToWarehouse(context.Background(), validRequest())

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, domain.KindInternal, domain.Kind(err))
	assert.Nil(t, s.order(5).FulfilledAt)

	// Tras reparar la falla la orden se puede cumplir.
	s.createErr = nil
	_, err = uc.AddProductToWarehouse(context.Background(), validRequest())
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_ConcurrenciaSoloUnoGana(t *testing.T) {
	s := seededStore()
	uc := newTestUseCase(s, nil)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.AddProductToWarehouse(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case domain.Kind(err) == domain.KindConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, callers-1, conflicts)
	assert.Len(t, s.movementsFor(5), 1)
}

// staleOrders devuelve la orden como estaba antes de que otra transacción la marcara.
type staleOrders struct{ memOrders }

func (r staleOrders) FindMatching(ctx context.Context, productID int64, amount int, before time.Time) (*entity.Order, error) {
	o, err := r.memOrders.FindMatching(ctx, productID, amount, before)
	if o != nil {
		o.FulfilledAt = nil
	}
	return o, err
}

func TestWorkflow_MarcaConcurrenteEsConflicto(t *testing.T) {
	s := seededStore()
	uc := newTestUseCase(s, nil)
	// Otra transacción marcó la orden 5 entre la lectura y el UPDATE; su registro aún no es visible.
	other := t0.Add(time.Hour)
	s.orders[5].FulfilledAt = &other

	repos := Repositories{
		Products:   memProducts{s},
		Warehouses: memWarehouses{s},
		Orders:     staleOrders{memOrders{s}},
		Movements:  memMovements{s},
	}
	_, err := uc.fulfill(context.Background(), repos, validRequest())

	require.ErrorIs(t, err, domain.ErrOrderAlreadyFulfilled)
	assert.Equal(t, domain.KindConflict, domain.Kind(err))
	assert.Equal(t, other, *s.order(5).FulfilledAt, "la marca previa no se sobrescribe")
	assert.Empty(t, s.movementsFor(5), "no se inserta registro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Observabilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_ObservaResultados(t *testing.T) {
	s := seededStore()
	obs := &recordingObserver{}
	uc := newTestUseCase(s, obs)

	_, _ = uc.AddProductToWarehouse(context.Background(), validRequest())
	_, _ = uc.AddProductToWarehouse(context.Background(), validRequest())
	_, _ = uc.AddProductToWarehouse(context.Background(), nil)

	assert.Equal(t, []observation{
		{StrategyWorkflow, "success"},
		{StrategyWorkflow, "conflict"},
		{StrategyWorkflow, "invalid_argument"},
	}, obs.got)
}
