package service

// In-memory repository fakes shared by the service tests. They mirror the
// contract of the real GORM repositories, including the (nil, nil) "not found"
// convention where the interface documents it.

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/model"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/repository"
)

// ── CashierRepository ────────────────────────────────────────────────────────

type fakeCashierRepo struct {
	sessions   map[uuid.UUID]*model.CashierSession
	operations []model.CashierOperation
}

func newFakeCashierRepo() *fakeCashierRepo {
	return &fakeCashierRepo{sessions: make(map[uuid.UUID]*model.CashierSession)}
}

func (r *fakeCashierRepo) CreateSession(_ context.Context, s *model.CashierSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeCashierRepo) FindOpenByTerminal(_ context.Context, terminalID string) (*model.CashierSession, error) {
	for _, s := range r.sessions {
		if s.TerminalID == terminalID && s.Status == model.CashierOpen {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeCashierRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.CashierSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	s.Operations = r.opsFor(id)
	return s, nil
}

func (r *fakeCashierRepo) UpdateSession(_ context.Context, s *model.CashierSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeCashierRepo) UpdateSessionTx(_ *gorm.DB, s *model.CashierSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeCashierRepo) CreateOperation(_ context.Context, op *model.CashierOperation) error {
	return r.appendOp(op)
}

func (r *fakeCashierRepo) CreateOperationTx(_ *gorm.DB, op *model.CashierOperation) error {
	return r.appendOp(op)
}

func (r *fakeCashierRepo) appendOp(op *model.CashierOperation) error {
	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	r.operations = append(r.operations, *op)
	return nil
}

func (r *fakeCashierRepo) ListOperations(_ context.Context, sessionID uuid.UUID) ([]model.CashierOperation, error) {
	return r.opsFor(sessionID), nil
}

func (r *fakeCashierRepo) ListByBusinessDay(_ context.Context, businessDayID uuid.UUID) ([]model.CashierSession, error) {
	var out []model.CashierSession
	for _, s := range r.sessions {
		if s.BusinessDayID == businessDayID {
			copied := *s
			copied.Operations = r.opsFor(s.ID)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (r *fakeCashierRepo) CountOpenByBusinessDay(_ context.Context, businessDayID uuid.UUID) (int64, error) {
	var n int64
	for _, s := range r.sessions {
		if s.BusinessDayID == businessDayID && s.Status == model.CashierOpen {
			n++
		}
	}
	return n, nil
}

func (r *fakeCashierRepo) ListClosed(_ context.Context, page, limit int) ([]model.CashierSession, int64, error) {
	var all []model.CashierSession
	for _, s := range r.sessions {
		if s.Status == model.CashierClosed {
			all = append(all, *s)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeCashierRepo) opsFor(sessionID uuid.UUID) []model.CashierOperation {
	var out []model.CashierOperation
	for _, op := range r.operations {
		if op.CashierSessionID == sessionID {
			out = append(out, op)
		}
	}
	return out
}

var _ repository.CashierRepository = (*fakeCashierRepo)(nil)

// ── BusinessDayRepository ────────────────────────────────────────────────────

type fakeDayRepo struct {
	days map[uuid.UUID]*model.BusinessDay
}

func newFakeDayRepo() *fakeDayRepo {
	return &fakeDayRepo{days: make(map[uuid.UUID]*model.BusinessDay)}
}

func (r *fakeDayRepo) Create(_ context.Context, d *model.BusinessDay) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.days[d.ID] = d
	return nil
}

func (r *fakeDayRepo) FindOpenByStore(_ context.Context, storeID string) (*model.BusinessDay, error) {
	for _, d := range r.days {
		if d.StoreID == storeID && d.Status == model.DayOpen {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDayRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BusinessDay, error) {
	d, ok := r.days[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func (r *fakeDayRepo) Update(_ context.Context, d *model.BusinessDay) error {
	r.days[d.ID] = d
	return nil
}

func (r *fakeDayRepo) List(_ context.Context, storeID string, f repository.BusinessDayFilter) ([]model.BusinessDay, error) {
	var out []model.BusinessDay
	for _, d := range r.days {
		if d.StoreID != storeID {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

var _ repository.BusinessDayRepository = (*fakeDayRepo)(nil)

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products   map[uuid.UUID]*model.Product
	categories map[uuid.UUID]*model.Category
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:   make(map[uuid.UUID]*model.Product),
		categories: make(map[uuid.UUID]*model.Category),
	}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakeProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *fakeProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeProductRepo) List(_ context.Context, includeInactive bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if !includeInactive && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	if p.Stock < qty {
		return repository.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) CreateCategory(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeProductRepo) ListCategories(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

// ── CustomerRepository ───────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
	entries   []model.LoyaltyEntry
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) CreateEntry(_ context.Context, e *model.LoyaltyEntry) error {
	return r.appendEntry(e)
}

func (r *fakeCustomerRepo) CreateEntryTx(_ *gorm.DB, e *model.LoyaltyEntry) error {
	return r.appendEntry(e)
}

func (r *fakeCustomerRepo) appendEntry(e *model.LoyaltyEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeCustomerRepo) Balance(_ context.Context, customerID uuid.UUID) (int64, error) {
	var sum int64
	for _, e := range r.entries {
		if e.CustomerID == customerID {
			sum += e.Points
		}
	}
	return sum, nil
}

func (r *fakeCustomerRepo) ListEntries(_ context.Context, customerID uuid.UUID) ([]model.LoyaltyEntry, error) {
	var out []model.LoyaltyEntry
	for _, e := range r.entries {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

// ── OrderRepository ──────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders     map[uuid.UUID]*model.Order
	nextTicket int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

// DB returns nil so runTx executes the transaction body directly.
func (r *fakeOrderRepo) DB() *gorm.DB { return nil }

func (r *fakeOrderRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.nextTicket++
	return r.nextTicket, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	for i := range o.Payments {
		if o.Payments[i].ID == uuid.Nil {
			o.Payments[i].ID = uuid.New()
		}
		o.Payments[i].OrderID = o.ID
	}
	o.CreatedAt = time.Now()
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if f.SessionID != nil && o.CashierSessionID != *f.SessionID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) SetPixStatusByCharge(_ context.Context, chargeID, status string) error {
	for _, o := range r.orders {
		for i := range o.Payments {
			p := &o.Payments[i]
			if p.PixChargeID != nil && *p.PixChargeID == chargeID {
				s := status
				p.PixStatus = &s
			}
		}
	}
	return nil
}

func (r *fakeOrderRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.Status == model.OrderCompleted && !o.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) SalesByMethodSince(_ context.Context, _ time.Time) ([]repository.SalesAgg, error) {
	return nil, nil
}

func (r *fakeOrderRepo) TopProductsSince(_ context.Context, _ time.Time, _ int) ([]repository.TopProductAgg, error) {
	return nil, nil
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

// ── PayableRepository ────────────────────────────────────────────────────────

type fakePayableRepo struct {
	payables map[uuid.UUID]*model.Payable
}

func newFakePayableRepo() *fakePayableRepo {
	return &fakePayableRepo{payables: make(map[uuid.UUID]*model.Payable)}
}

func (r *fakePayableRepo) Create(_ context.Context, p *model.Payable) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payables[p.ID] = p
	return nil
}

func (r *fakePayableRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payable, error) {
	p, ok := r.payables[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakePayableRepo) Update(_ context.Context, p *model.Payable) error {
	r.payables[p.ID] = p
	return nil
}

func (r *fakePayableRepo) List(_ context.Context, f repository.PayableFilter) ([]model.Payable, error) {
	var out []model.Payable
	for _, p := range r.payables {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePayableRepo) CountPending(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.payables {
		if p.Status == model.PayablePending {
			n++
		}
	}
	return n, nil
}

var _ repository.PayableRepository = (*fakePayableRepo)(nil)
