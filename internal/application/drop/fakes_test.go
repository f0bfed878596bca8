package drop

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/ports"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria. Devuelve copias para que los casos de uso no compartan punteros
// con el "disco", igual que un repositorio real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu           sync.Mutex
	drops        map[string]entity.Drop
	lists        map[string]entity.SupplierList
	items        map[string]entity.SupplierListItem
	reservations map[string]entity.Reservation
	points       map[string]entity.PickupPoint
	products     map[string]entity.Product
	suppliers    map[string]entity.Supplier
	users        map[string]entity.User

	// txMu serializa RunDrop como lo haría el FOR UPDATE sobre la fila del drop.
	txMu sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		drops:        map[string]entity.Drop{},
		lists:        map[string]entity.SupplierList{},
		items:        map[string]entity.SupplierListItem{},
		reservations: map[string]entity.Reservation{},
		points:       map[string]entity.PickupPoint{},
		products:     map[string]entity.Product{},
		suppliers:    map[string]entity.Supplier{},
		users:        map[string]entity.User{},
	}
}

type memDropRepo struct{ s *memStore }

var _ repository.DropRepository = (*memDropRepo)(nil)

func (r *memDropRepo) Create(_ context.Context, d *entity.Drop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.drops[d.ID] = *d
	return nil
}

func (r *memDropRepo) GetByID(_ context.Context, id string) (*entity.Drop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.drops[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *memDropRepo) GetForUpdate(ctx context.Context, id string) (*entity.Drop, error) {
	return r.GetByID(ctx, id)
}

func (r *memDropRepo) Update(_ context.Context, d *entity.Drop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.drops[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.drops[d.ID] = *d
	return nil
}

func (r *memDropRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Drop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Drop
	for _, d := range r.s.drops {
		if status != "" && d.Status != status {
			continue
		}
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memDropRepo) ListExpiredOpen(_ context.Context, now time.Time) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for _, d := range r.s.drops {
		if d.Status == entity.DropStatusOpen && !d.EndsAt.After(now) {
			ids = append(ids, d.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type memListRepo struct{ s *memStore }

var _ repository.SupplierListRepository = (*memListRepo)(nil)

func (r *memListRepo) Create(_ context.Context, l *entity.SupplierList) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lists[l.ID] = *l
	return nil
}

func (r *memListRepo) GetByID(_ context.Context, id string) (*entity.SupplierList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lists[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *memListRepo) ListBySupplier(_ context.Context, supplierID string) ([]*entity.SupplierList, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SupplierList
	for _, l := range r.s.lists {
		if l.SupplierID == supplierID {
			l := l
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r *memListRepo) AddItem(_ context.Context, it *entity.SupplierListItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[it.ID] = *it
	return nil
}

func (r *memListRepo) GetItem(_ context.Context, id string) (*entity.SupplierListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *memListRepo) ListItems(_ context.Context, listID string) ([]*entity.SupplierListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SupplierListItem
	for _, it := range r.s.items {
		if it.ListID == listID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memReservationRepo struct{ s *memStore }

var _ repository.ReservationRepository = (*memReservationRepo)(nil)

func (r *memReservationRepo) Create(_ context.Context, res *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reservations[res.ID] = *res
	return nil
}

func (r *memReservationRepo) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *memReservationRepo) Update(_ context.Context, res *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reservations[res.ID] = *res
	return nil
}

func (r *memReservationRepo) ListByDrop(_ context.Context, dropID string) ([]*entity.Reservation, error) {
	return r.filter(func(res entity.Reservation) bool { return res.DropID == dropID }), nil
}

func (r *memReservationRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Reservation, error) {
	out := r.filter(func(res entity.Reservation) bool { return res.UserID == userID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memReservationRepo) filter(keep func(entity.Reservation) bool) []*entity.Reservation {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range r.s.reservations {
		if keep(res) {
			res := res
			out = append(out, &res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memPointRepo struct{ s *memStore }

func (r *memPointRepo) Create(_ context.Context, p *entity.PickupPoint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.points[p.ID] = *p
	return nil
}

func (r *memPointRepo) GetByID(_ context.Context, id string) (*entity.PickupPoint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.points[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPointRepo) Update(ctx context.Context, p *entity.PickupPoint) error {
	return r.Create(ctx, p)
}

func (r *memPointRepo) List(_ context.Context, onlyActive bool) ([]*entity.PickupPoint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PickupPoint
	for _, p := range r.s.points {
		if onlyActive && !p.Active {
			continue
		}
		p := p
		out = append(out, &p)
	}
	return out, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) GetBySupplierAndSKU(_ context.Context, supplierID, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SupplierID == supplierID && p.SKU == sku {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.Create(ctx, p)
}

func (r *memProductRepo) ListBySupplier(_ context.Context, supplierID string, _, _ int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.SupplierID == supplierID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r *memSupplierRepo) Update(ctx context.Context, sp *entity.Supplier) error {
	return r.Create(ctx, sp)
}

func (r *memSupplierRepo) List(context.Context, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }

func (r *memUserRepo) Update(ctx context.Context, u *entity.User) error { return r.Create(ctx, u) }

// memTxRunner emula la transacción: serializa y, si fn falla, restaura drops y reservas.
type memTxRunner struct {
	s *memStore
	// failAfter fuerza un error tras ejecutar fn (simula fallo en Commit).
	failAfter error
}

func (t *memTxRunner) RunDrop(ctx context.Context, fn func(repository.DropRepository, repository.ReservationRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.mu.Lock()
	drops := make(map[string]entity.Drop, len(t.s.drops))
	for k, v := range t.s.drops {
		drops[k] = v
	}
	reservations := make(map[string]entity.Reservation, len(t.s.reservations))
	for k, v := range t.s.reservations {
		reservations[k] = v
	}
	t.s.mu.Unlock()

	err := fn(&memDropRepo{s: t.s}, &memReservationRepo{s: t.s})
	if err == nil {
		err = t.failAfter
	}
	if err != nil {
		t.s.mu.Lock()
		t.s.drops = drops
		t.s.reservations = reservations
		t.s.mu.Unlock()
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Pasarela de pagos falsa
// ──────────────────────────────────────────────────────────────────────────────

type fakeHold struct {
	amount   decimal.Decimal
	captured decimal.NullDecimal
	captures int
	voided   bool
}

type fakePayments struct {
	mu            sync.Mutex
	seq           int
	holds         map[string]*fakeHold
	declineAuth   bool
	failCaptureOf map[string]bool // holdID → falla
}

var _ ports.PaymentGateway = (*fakePayments)(nil)

func newFakePayments() *fakePayments {
	return &fakePayments{holds: map[string]*fakeHold{}, failCaptureOf: map[string]bool{}}
}

func (p *fakePayments) Authorize(_ context.Context, _ string, amount decimal.Decimal, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.declineAuth {
		return "", errors.New("tarjeta rechazada")
	}
	p.seq++
	id := fmt.Sprintf("hold-%04d", p.seq)
	p.holds[id] = &fakeHold{amount: amount}
	return id, nil
}

func (p *fakePayments) Capture(_ context.Context, holdID string, amount decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.holds[holdID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.failCaptureOf[holdID] {
		return errors.New("captura rechazada")
	}
	if amount.GreaterThan(h.amount) {
		return fmt.Errorf("captura %s excede retención %s", amount, h.amount)
	}
	h.captured = decimal.NewNullDecimal(amount)
	h.captures++
	return nil
}

func (p *fakePayments) Void(_ context.Context, holdID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.holds[holdID]
	if !ok {
		return domain.ErrNotFound
	}
	h.voided = true
	return nil
}

func (p *fakePayments) hold(id string) fakeHold {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.holds[id]
}

type fakeReceiptGenerator struct {
	last ports.ReceiptData
}

func (g *fakeReceiptGenerator) GenerateReceiptPDF(_ context.Context, data ports.ReceiptData) ([]byte, error) {
	g.last = data
	return []byte("%PDF-fake"), nil
}
