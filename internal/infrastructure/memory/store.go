package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// Topic colección observable por el feed de cambios.
type Topic string

const (
	TopicLots        Topic = "lots"
	TopicOrders      Topic = "orders"
	TopicSales       Topic = "sales"
	TopicCommissions Topic = "commissions"
)

type data struct {
	lots        map[string]*entity.Lot
	orders      map[string]*entity.Order
	agents      map[string]*entity.Agent
	sales       []*entity.Sale
	commissions []*entity.CommissionRecord
	touched     map[Topic]bool
}

func newData() *data {
	return &data{
		lots:    map[string]*entity.Lot{},
		orders:  map[string]*entity.Order{},
		agents:  map[string]*entity.Agent{},
		touched: map[Topic]bool{},
	}
}

// clone copia profunda: las transacciones trabajan sobre la copia y solo se publica al confirmar.
func (d *data) clone() *data {
	c := newData()
	for k, v := range d.lots {
		l := *v
		c.lots[k] = &l
	}
	for k, v := range d.orders {
		o := *v
		c.orders[k] = &o
	}
	for k, v := range d.agents {
		a := *v
		c.agents[k] = &a
	}
	c.sales = append(c.sales, d.sales...)
	c.commissions = append(c.commissions, d.commissions...)
	return c
}

// Store backend en memoria para desarrollo y pruebas. Las escrituras (sueltas o en transacción)
// se serializan con txMu; las lecturas ven siempre el último estado confirmado.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *data

	failMu   sync.Mutex
	failures map[string]error

	feeds *feeds
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		data:     newData(),
		failures: map[string]error{},
		feeds:    newFeeds(),
	}
}

// FailOn hace que la operación op (p. ej. "orders.delete") devuelva err hasta ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures[op] = err
}

// ClearFailures elimina los fallos inyectados.
func (s *Store) ClearFailures() {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures = map[string]error{}
}

func (s *Store) injected(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

func (s *Store) read(fn func(d *data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write aplica fn sobre una copia y la publica solo si no hubo error.
func (s *Store) write(fn func(d *data) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.commit(fn)
}

func (s *Store) commit(fn func(d *data) error) error {
	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}

	touched := work.touched
	work.touched = map[Topic]bool{}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()

	for t := range touched {
		s.feeds.publish(t)
	}
	return nil
}

// transaction ejecuta fn con exclusión total de otros escritores.
func (s *Store) transaction(ctx context.Context, fn func(tx *data) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.commit(fn)
}

// Run transacción de consumo de stock (lotes + libro de ventas).
func (s *Store) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.transaction(ctx, func(tx *data) error {
		return fn(&LotRepository{s: s, tx: tx}, &SaleRepository{s: s, tx: tx})
	})
}

// RunPurchase transacción de compra (pedidos + lotes).
func (s *Store) RunPurchase(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	lotRepo repository.LotRepository,
) error) error {
	return s.transaction(ctx, func(tx *data) error {
		return fn(&OrderRepository{s: s, tx: tx}, &LotRepository{s: s, tx: tx})
	})
}

// Lots repositorio de lotes fuera de transacción.
func (s *Store) Lots() *LotRepository { return &LotRepository{s: s} }

// Orders repositorio de pedidos fuera de transacción.
func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }

// Sales libro de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepository { return &SaleRepository{s: s} }

// Commissions registros de comisión.
func (s *Store) Commissions() *CommissionRepository { return &CommissionRepository{s: s} }

// Agents vendedores.
func (s *Store) Agents() *AgentRepository { return &AgentRepository{s: s} }

// Feed fuente de cambios de una colección.
func (s *Store) Feed(topic Topic) *Feed { return &Feed{feeds: s.feeds, topic: topic} }

// view despacha la operación al estado de la tx o al store compartido.
type view struct {
	s  *Store
	tx *data
}

func (v view) get(op string, fn func(d *data) error) error {
	if err := v.s.injected(op); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}
	return v.s.read(fn)
}

func (v view) set(op string, topic Topic, fn func(d *data) error) error {
	if err := v.s.injected(op); err != nil {
		return err
	}
	apply := func(d *data) error {
		if err := fn(d); err != nil {
			return err
		}
		d.touched[topic] = true
		return nil
	}
	if v.tx != nil {
		return apply(v.tx)
	}
	return v.s.write(apply)
}
