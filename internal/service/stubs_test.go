package service

// Stub repositories for unit tests. They keep everything in maps and ignore
// the transaction handle (runTx passes nil when the repo reports a nil DB).

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NicolasGomez268/PuntoTecno/internal/dto"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("invalid uuid %q: %v", s, err)
	}
	return id
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ── users ───────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo(users ...*model.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(context.Context) ([]model.User, error) { return nil, nil }

func (r *stubUserRepo) ListAll(context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}

// ── products ────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{products: map[uuid.UUID]*model.Product{}}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku && p.Active {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(context.Context, dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) ListLowStock(context.Context) ([]model.Product, error) { return nil, nil }

func (r *stubProductRepo) Stats(context.Context) (int64, int64, decimal.Decimal, error) {
	return 0, 0, decimal.Zero, nil
}

func (r *stubProductRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) UpdateQuantityTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantity = quantity
	return nil
}

// ── stock movements ─────────────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []*model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(context.Context, dto.MovementFilter) ([]model.StockMovement, int64, error) {
	out := make([]model.StockMovement, 0, len(r.movements))
	for _, m := range r.movements {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

// ── customers ───────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
	orders    map[uuid.UUID]int64
}

func newStubCustomerRepo(customers ...*model.Customer) *stubCustomerRepo {
	r := &stubCustomerRepo{customers: map[uuid.UUID]*model.Customer{}, orders: map[uuid.UUID]int64{}}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		r.customers[c.ID] = c
	}
	return r
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByDNI(_ context.Context, dni string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.DNI == dni {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, f dto.CustomerFilter) ([]model.Customer, int64, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) CountOrders(_ context.Context, id uuid.UUID) (int64, error) {
	return r.orders[id], nil
}

// ── repair orders ───────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders     map[uuid.UUID]*model.RepairOrder
	histories  []*model.OrderStatusHistory
	nextNumber int64
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[uuid.UUID]*model.RepairOrder{}}
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.RepairOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.ReceivedDate.IsZero() {
		o.ReceivedDate = time.Now()
	}
	// Mirror the BeforeSave hook gorm would fire.
	if err := o.BeforeSave(nil); err != nil {
		return err
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) NextOrderNumber(*gorm.DB) (string, error) {
	r.nextNumber++
	return fmt.Sprintf("ORD-%06d", r.nextNumber), nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RepairOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Attach this order's history the way the preload would.
	o.StatusHistory = nil
	for _, h := range r.histories {
		if h.OrderID == id {
			o.StatusHistory = append(o.StatusHistory, *h)
		}
	}
	return o, nil
}

func (r *stubOrderRepo) List(context.Context, dto.OrderFilter) ([]model.RepairOrder, int64, error) {
	return nil, 0, nil
}

func (r *stubOrderRepo) Save(_ context.Context, o *model.RepairOrder) error {
	if err := o.BeforeSave(nil); err != nil {
		return err
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) SaveTx(_ *gorm.DB, o *model.RepairOrder) error {
	if err := o.BeforeSave(nil); err != nil {
		return err
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) CreateHistoryTx(_ *gorm.DB, h *model.OrderStatusHistory) error {
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	r.histories = append(r.histories, h)
	return nil
}

func (r *stubOrderRepo) ListByAssignee(context.Context, uuid.UUID) ([]model.RepairOrder, error) {
	return nil, nil
}

func (r *stubOrderRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.RepairOrder, error) {
	var out []model.RepairOrder
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListReceivedOn(context.Context, time.Time) ([]model.RepairOrder, error) {
	return nil, nil
}

func (r *stubOrderRepo) CountByStatus(context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *stubOrderRepo) CountReceivedSince(context.Context, time.Time) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) RevenueDeliveredSince(context.Context, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// ── sales ───────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	nextNumber int64
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: map[uuid.UUID]*model.Sale{}}
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Date.IsZero() {
		s.Date = time.Now()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) NextSaleNumber(*gorm.DB) (string, error) {
	r.nextNumber++
	return fmt.Sprintf("VTA-%06d", r.nextNumber), nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(context.Context, dto.SaleFilter) ([]model.Sale, int64, error) {
	return nil, 0, nil
}

func (r *stubSaleRepo) ListForDay(context.Context, time.Time) ([]model.Sale, error) {
	return nil, nil
}

func (r *stubSaleRepo) TotalsForRange(context.Context, time.Time, time.Time) (int64, decimal.Decimal, error) {
	return 0, decimal.Zero, nil
}

func (r *stubSaleRepo) TopProducts(context.Context, time.Time, int) ([]dto.TopProductStat, error) {
	return nil, nil
}

func (r *stubSaleRepo) TotalsByPaymentMethod(context.Context, time.Time, time.Time) ([]dto.PaymentMethodStat, error) {
	return nil, nil
}
