package stock_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso del motor de stock. Implementan los
// puertos de repositorio sobre mapas; la atomicidad de la "transacción" se
// simula con snapshot y restauración en fakeTxRunner.

type fakeStore struct {
	mu          sync.Mutex
	coordenadas map[string]*entity.Coordenada
	movimientos []*entity.StockMovement
	ordenes     map[string]*entity.PurchaseOrder
	solicitudes map[string]*entity.TransferRequest
	productos   map[string]*entity.Product
	bodegas     map[string]*entity.Warehouse
	reglas      map[string]*entity.BusinessRule

	// conflictosPendientes > 0 hace que el próximo GetByIDForUpdate de
	// coordenada devuelva ErrConflicto, simulando un NOWAIT perdido.
	conflictosPendientes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		coordenadas: make(map[string]*entity.Coordenada),
		ordenes:     make(map[string]*entity.PurchaseOrder),
		solicitudes: make(map[string]*entity.TransferRequest),
		productos:   make(map[string]*entity.Product),
		bodegas:     make(map[string]*entity.Warehouse),
		reglas:      make(map[string]*entity.BusinessRule),
	}
}

func (s *fakeStore) addProduct(id, sku, brand string) *entity.Product {
	p := &entity.Product{ID: id, SKU: sku, Brand: brand, Name: sku, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.productos[id] = p
	return p
}

func (s *fakeStore) addWarehouse(id, name string) *entity.Warehouse {
	w := &entity.Warehouse{ID: id, Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.bodegas[id] = w
	return w
}

func (s *fakeStore) addCoordenada(id, warehouseID, productID string, cantidad int64) *entity.Coordenada {
	c := &entity.Coordenada{ID: id, WarehouseID: warehouseID, ProductID: productID, Cantidad: cantidad, UpdatedAt: time.Now()}
	s.coordenadas[id] = c
	return c
}

func copyCoordenada(c *entity.Coordenada) *entity.Coordenada {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeCoordRepo struct{ s *fakeStore }

func (r *fakeCoordRepo) Create(c *entity.Coordenada) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.coordenadas[c.ID] = copyCoordenada(c)
	return nil
}

func (r *fakeCoordRepo) GetByID(id string) (*entity.Coordenada, error) {
	return copyCoordenada(r.s.coordenadas[id]), nil
}

func (r *fakeCoordRepo) GetByIDForUpdate(id string) (*entity.Coordenada, error) {
	if r.s.conflictosPendientes > 0 {
		r.s.conflictosPendientes--
		return nil, domain.ErrConflicto
	}
	return copyCoordenada(r.s.coordenadas[id]), nil
}

func (r *fakeCoordRepo) GetByProductAndWarehouseForUpdate(productID, warehouseID string) (*entity.Coordenada, error) {
	for _, c := range r.s.coordenadas {
		if c.ProductID == productID && c.WarehouseID == warehouseID {
			return copyCoordenada(c), nil
		}
	}
	return nil, nil
}

func (r *fakeCoordRepo) UpdateCantidad(id string, cantidad int64) error {
	c, ok := r.s.coordenadas[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Cantidad = cantidad
	c.UpdatedAt = time.Now()
	return nil
}

func (r *fakeCoordRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Coordenada, error) {
	var out []*entity.Coordenada
	for _, c := range r.s.coordenadas {
		if c.WarehouseID == warehouseID {
			out = append(out, copyCoordenada(c))
		}
	}
	return out, nil
}

func (r *fakeCoordRepo) ListByProduct(productID string) ([]*entity.Coordenada, error) {
	var out []*entity.Coordenada
	for _, c := range r.s.coordenadas {
		if c.ProductID == productID {
			out = append(out, copyCoordenada(c))
		}
	}
	return out, nil
}

func (r *fakeCoordRepo) SumByProduct(productID, warehouseID string) (int64, error) {
	var total int64
	for _, c := range r.s.coordenadas {
		if c.ProductID != productID {
			continue
		}
		if warehouseID != "" && c.WarehouseID != warehouseID {
			continue
		}
		total += c.Cantidad
	}
	return total, nil
}

func (r *fakeCoordRepo) SumByBrand(brand string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, c := range r.s.coordenadas {
		p, ok := r.s.productos[c.ProductID]
		if !ok || p.Brand != brand {
			continue
		}
		out[c.ProductID] += c.Cantidad
	}
	return out, nil
}

type fakeMovRepo struct{ s *fakeStore }

func (r *fakeMovRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.s.movimientos = append(r.s.movimientos, &cp)
	return nil
}

func (r *fakeMovRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movimientos {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovRepo) ListByProduct(productID, coordenadaID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movimientos {
		if m.ProductID != productID {
			continue
		}
		if coordenadaID != "" {
			toca := (m.FromCoordenadaID != nil && *m.FromCoordenadaID == coordenadaID) ||
				(m.ToCoordenadaID != nil && *m.ToCoordenadaID == coordenadaID)
			if !toca {
				continue
			}
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeOrderRepo struct{ s *fakeStore }

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	return &cp
}

func (r *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	r.s.ordenes[o.ID] = copyOrder(o)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return copyOrder(r.s.ordenes[id]), nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return copyOrder(r.s.ordenes[id]), nil
}

func (r *fakeOrderRepo) UpdateStatus(o *entity.PurchaseOrder) error {
	stored, ok := r.s.ordenes[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = o.Status
	stored.UpdatedAt = o.UpdatedAt
	stored.ReceivedAt = o.ReceivedAt
	return nil
}

func (r *fakeOrderRepo) UpdateLineReceived(lineID string, receivedQuantity int64) error {
	for _, o := range r.s.ordenes {
		for i := range o.Lines {
			if o.Lines[i].ID == lineID {
				o.Lines[i].ReceivedQuantity = receivedQuantity
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.ordenes {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, copyOrder(o))
	}
	return out, nil
}

type fakeRequestRepo struct{ s *fakeStore }

func copyRequest(req *entity.TransferRequest) *entity.TransferRequest {
	if req == nil {
		return nil
	}
	cp := *req
	return &cp
}

func (r *fakeRequestRepo) Create(req *entity.TransferRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	r.s.solicitudes[req.ID] = copyRequest(req)
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*entity.TransferRequest, error) {
	return copyRequest(r.s.solicitudes[id]), nil
}

func (r *fakeRequestRepo) GetByIDForUpdate(id string) (*entity.TransferRequest, error) {
	return copyRequest(r.s.solicitudes[id]), nil
}

func (r *fakeRequestRepo) Update(req *entity.TransferRequest) error {
	if _, ok := r.s.solicitudes[req.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.solicitudes[req.ID] = copyRequest(req)
	return nil
}

func (r *fakeRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.TransferRequest, error) {
	var out []*entity.TransferRequest
	for _, req := range r.s.solicitudes {
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, copyRequest(req))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.productos[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.productos[id], nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.productos {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.productos[p.ID] = p
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.productos {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListByBrand(brand string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.productos {
		if p.Brand == brand {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeWarehouseRepo struct{ s *fakeStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r.s.bodegas[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.s.bodegas[id], nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	r.s.bodegas[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.bodegas {
		out = append(out, w)
	}
	return out, nil
}

type fakeRuleRepo struct{ s *fakeStore }

func (r *fakeRuleRepo) Create(rule *entity.BusinessRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	r.s.reglas[rule.ID] = rule
	return nil
}

func (r *fakeRuleRepo) GetByID(id string) (*entity.BusinessRule, error) {
	return r.s.reglas[id], nil
}

func (r *fakeRuleRepo) List(limit, offset int) ([]*entity.BusinessRule, error) {
	var out []*entity.BusinessRule
	for _, rule := range r.s.reglas {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRuleRepo) Delete(id string) error {
	if _, ok := r.s.reglas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.reglas, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake: snapshot + restauración simulan el rollback
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *fakeStore }

func (tr *fakeTxRunner) snapshot() *fakeStore {
	snap := newFakeStore()
	for k, v := range tr.s.coordenadas {
		snap.coordenadas[k] = copyCoordenada(v)
	}
	for _, m := range tr.s.movimientos {
		cp := *m
		snap.movimientos = append(snap.movimientos, &cp)
	}
	for k, v := range tr.s.ordenes {
		snap.ordenes[k] = copyOrder(v)
	}
	for k, v := range tr.s.solicitudes {
		snap.solicitudes[k] = copyRequest(v)
	}
	return snap
}

func (tr *fakeTxRunner) restore(snap *fakeStore) {
	tr.s.coordenadas = snap.coordenadas
	tr.s.movimientos = snap.movimientos
	tr.s.ordenes = snap.ordenes
	tr.s.solicitudes = snap.solicitudes
}

func (tr *fakeTxRunner) run(fn func() error) error {
	tr.s.mu.Lock()
	defer tr.s.mu.Unlock()
	snap := tr.snapshot()
	if err := fn(); err != nil {
		tr.restore(snap)
		return err
	}
	return nil
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	coordRepo repository.CoordenadaRepository,
) error) error {
	return tr.run(func() error {
		return fn(&fakeMovRepo{s: tr.s}, &fakeCoordRepo{s: tr.s})
	})
}

func (tr *fakeTxRunner) RunReceiving(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	coordRepo repository.CoordenadaRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return tr.run(func() error {
		return fn(&fakeMovRepo{s: tr.s}, &fakeCoordRepo{s: tr.s}, &fakeOrderRepo{s: tr.s})
	})
}

func (tr *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	coordRepo repository.CoordenadaRepository,
	requestRepo repository.TransferRequestRepository,
) error) error {
	return tr.run(func() error {
		return fn(&fakeMovRepo{s: tr.s}, &fakeCoordRepo{s: tr.s}, &fakeRequestRepo{s: tr.s})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Sink de auditoría que graba en memoria
// ──────────────────────────────────────────────────────────────────────────────

type recordingSink struct {
	mu     sync.Mutex
	events []stock.AuditEvent
}

func (s *recordingSink) Report(_ context.Context, ev stock.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) last() *stock.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[len(s.events)-1]
	return &ev
}

// fixture arma el conjunto estándar de fakes para los tests del motor.
type fixture struct {
	store    *fakeStore
	txRunner *fakeTxRunner
	sink     *recordingSink

	coordRepo     *fakeCoordRepo
	movRepo       *fakeMovRepo
	orderRepo     *fakeOrderRepo
	requestRepo   *fakeRequestRepo
	productRepo   *fakeProductRepo
	warehouseRepo *fakeWarehouseRepo
	ruleRepo      *fakeRuleRepo
}

func newFixture() *fixture {
	s := newFakeStore()
	return &fixture{
		store:         s,
		txRunner:      &fakeTxRunner{s: s},
		sink:          &recordingSink{},
		coordRepo:     &fakeCoordRepo{s: s},
		movRepo:       &fakeMovRepo{s: s},
		orderRepo:     &fakeOrderRepo{s: s},
		requestRepo:   &fakeRequestRepo{s: s},
		productRepo:   &fakeProductRepo{s: s},
		warehouseRepo: &fakeWarehouseRepo{s: s},
		ruleRepo:      &fakeRuleRepo{s: s},
	}
}
