package fulfillment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// memStore simula la BD: Run serializa las transacciones y restaura el estado si fn falla.
type memStore struct {
	mu         sync.Mutex
	products   map[int64]bool
	prices     map[int64]decimal.Decimal
	warehouses map[int64]bool
	orders     map[int64]*entity.Order
	movements  []*entity.ProductWarehouse
	nextID     int64
	runs       int
	createErr  error
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[int64]bool{},
		prices:     map[int64]decimal.Decimal{},
		warehouses: map[int64]bool{},
		orders:     map[int64]*entity.Order{},
		nextID:     1,
	}
}

func (s *memStore) addProduct(id int64, price string) {
	s.products[id] = true
	s.prices[id] = decimal.RequireFromString(price)
}

func (s *memStore) addOrder(o entity.Order) {
	s.orders[o.ID] = &o
}

func (s *memStore) order(id int64) entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.orders[id]
}

func (s *memStore) movementsFor(orderID int64) []entity.ProductWarehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.ProductWarehouse
	for _, m := range s.movements {
		if m.OrderID == orderID {
			out = append(out, *m)
		}
	}
	return out
}

func (s *memStore) Run(ctx context.Context, fn func(repos Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++

	orders := make(map[int64]entity.Order, len(s.orders))
	for id, o := range s.orders {
		orders[id] = *o
	}
	movements := append([]*entity.ProductWarehouse(nil), s.movements...)
	nextID := s.nextID

	repos := Repositories{
		Products:   memProducts{s},
		Warehouses: memWarehouses{s},
		Orders:     memOrders{s},
		Movements:  memMovements{s},
	}
	if err := fn(repos); err != nil {
		for id, o := range orders {
			o := o
			s.orders[id] = &o
		}
		s.movements = movements
		s.nextID = nextID
		return err
	}
	return nil
}

type memProducts struct{ s *memStore }

func (r memProducts) Exists(_ context.Context, id int64) (bool, error) {
	return r.s.products[id], nil
}

func (r memProducts) GetPrice(_ context.Context, id int64) (*decimal.Decimal, error) {
	p, ok := r.s.prices[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type memWarehouses struct{ s *memStore }

func (r memWarehouses) Exists(_ context.Context, id int64) (bool, error) {
	return r.s.warehouses[id], nil
}

type memOrders struct{ s *memStore }

func (r memOrders) FindMatching(_ context.Context, productID int64, amount int, before time.Time) (*entity.Order, error) {
	var matches []*entity.Order
	for _, o := range r.s.orders {
		if o.ProductID == productID && o.Amount == amount && o.CreatedAt.Before(before) {
			matches = append(matches, o)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.IsFulfilled() != b.IsFulfilled() {
			return !a.IsFulfilled()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	o := *matches[0]
	return &o, nil
}

func (r memOrders) MarkFulfilled(_ context.Context, orderID int64, at time.Time) error {
	o := r.s.orders[orderID]
	if o.FulfilledAt != nil {
		return domain.ErrOrderAlreadyFulfilled
	}
	o.FulfilledAt = &at
	return nil
}

type memMovements struct{ s *memStore }

func (r memMovements) ExistsForOrder(_ context.Context, orderID int64) (bool, error) {
	for _, m := range r.s.movements {
		if m.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r memMovements) Create(_ context.Context, pw *entity.ProductWarehouse) (int64, error) {
	if r.s.createErr != nil {
		return 0, r.s.createErr
	}
	for _, m := range r.s.movements {
		if m.OrderID == pw.OrderID {
			return 0, domain.ErrOrderAlreadyFulfilled
		}
	}
	cp := *pw
	cp.ID = r.s.nextID
	r.s.nextID++
	r.s.movements = append(r.s.movements, &cp)
	return cp.ID, nil
}

// fakeProcedure registra la llamada y devuelve la respuesta configurada.
type fakeProcedure struct {
	calls int
	args  []any
	id    int64
	err   error
}

func (p *fakeProcedure) AddProductToWarehouse(_ context.Context, productID, warehouseID int64, amount int, createdAt time.Time) (int64, error) {
	p.calls++
	p.args = []any{productID, warehouseID, amount, createdAt}
	return p.id, p.err
}

type observation struct {
	strategy, outcome string
}

type recordingObserver struct {
	mu  sync.Mutex
	got []observation
}

func (o *recordingObserver) Observe(strategy, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, observation{strategy, outcome})
}

var errBoom = errors.New("conexión perdida")
