package shipment

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"cargo-dispatch/internal/dispatch"
	domainCustomer "cargo-dispatch/internal/domain/customer"
	domainDriver "cargo-dispatch/internal/domain/driver"
	domainProduct "cargo-dispatch/internal/domain/product"
	domainShipment "cargo-dispatch/internal/domain/shipment"
	"cargo-dispatch/internal/events"
	"cargo-dispatch/internal/logger"
	"cargo-dispatch/internal/stock"
	appErrors "cargo-dispatch/pkg/errors"

	"github.com/google/uuid"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// memStore is a shared in-memory backing store for all fake repositories,
// with snapshot/restore so the fake transaction runner can roll back
// exactly like the database would.
type memStore struct {
	mu        sync.Mutex
	products  map[uuid.UUID]*domainProduct.Product
	drivers   map[uuid.UUID]*domainDriver.Driver
	customers map[uuid.UUID]*domainCustomer.Customer
	shipments map[uuid.UUID]*domainShipment.Shipment
	updates   []*domainShipment.StatusUpdate
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[uuid.UUID]*domainProduct.Product),
		drivers:   make(map[uuid.UUID]*domainDriver.Driver),
		customers: make(map[uuid.UUID]*domainCustomer.Customer),
		shipments: make(map[uuid.UUID]*domainShipment.Shipment),
	}
}

type memSnapshot struct {
	products  map[uuid.UUID]domainProduct.Product
	drivers   map[uuid.UUID]domainDriver.Driver
	customers map[uuid.UUID]domainCustomer.Customer
	shipments map[uuid.UUID]domainShipment.Shipment
	updates   []domainShipment.StatusUpdate
}

func (m *memStore) snapshot() *memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := &memSnapshot{
		products:  make(map[uuid.UUID]domainProduct.Product, len(m.products)),
		drivers:   make(map[uuid.UUID]domainDriver.Driver, len(m.drivers)),
		customers: make(map[uuid.UUID]domainCustomer.Customer, len(m.customers)),
		shipments: make(map[uuid.UUID]domainShipment.Shipment, len(m.shipments)),
	}
	for id, p := range m.products {
		snap.products[id] = *p
	}
	for id, d := range m.drivers {
		snap.drivers[id] = *d
	}
	for id, c := range m.customers {
		snap.customers[id] = *c
	}
	for id, s := range m.shipments {
		snap.shipments[id] = *s
	}
	for _, su := range m.updates {
		snap.updates = append(snap.updates, *su)
	}
	return snap
}

func (m *memStore) restore(snap *memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make(map[uuid.UUID]*domainProduct.Product, len(snap.products))
	m.drivers = make(map[uuid.UUID]*domainDriver.Driver, len(snap.drivers))
	m.customers = make(map[uuid.UUID]*domainCustomer.Customer, len(snap.customers))
	m.shipments = make(map[uuid.UUID]*domainShipment.Shipment, len(snap.shipments))
	for id, p := range snap.products {
		cp := p
		m.products[id] = &cp
	}
	for id, d := range snap.drivers {
		cp := d
		m.drivers[id] = &cp
	}
	for id, c := range snap.customers {
		cp := c
		m.customers[id] = &cp
	}
	for id, s := range snap.shipments {
		cp := s
		m.shipments[id] = &cp
	}
	m.updates = nil
	for _, su := range snap.updates {
		cp := su
		m.updates = append(m.updates, &cp)
	}
}

// fakeAtomic snapshots the store before running fn and restores it when fn
// fails, mirroring the all-or-nothing transaction contract.
type fakeAtomic struct {
	store *memStore
}

func (f *fakeAtomic) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := f.store.snapshot()
	if err := fn(ctx); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

type fakeProductRepo struct{ store *memStore }

func (r *fakeProductRepo) Create(ctx context.Context, p *domainProduct.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainProduct.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domainProduct.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]*domainProduct.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *domainProduct.Product) error { return nil }

func (r *fakeProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return domainProduct.ErrProductNotFound
	}
	if p.StockQty < qty {
		return domainProduct.ErrInsufficientStock
	}
	p.StockQty -= qty
	return nil
}

func (r *fakeProductRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return domainProduct.ErrProductNotFound
	}
	p.StockQty += qty
	return nil
}

type fakeDriverRepo struct{ store *memStore }

func (r *fakeDriverRepo) Create(ctx context.Context, d *domainDriver.Driver) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.drivers[d.ID] = d
	return nil
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainDriver.Driver, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.drivers[id]
	if !ok {
		return nil, domainDriver.ErrDriverNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDriverRepo) List(ctx context.Context) ([]*domainDriver.Driver, error) { return nil, nil }

func (r *fakeDriverRepo) Update(ctx context.Context, d *domainDriver.Driver) error { return nil }

func (r *fakeDriverRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeDriverRepo) SetBusyIfAvailable(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.drivers[id]
	if !ok {
		return domainDriver.ErrDriverNotFound
	}
	if !d.IsActive {
		return domainDriver.ErrDriverUnavailable
	}
	d.IsActive = false
	return nil
}

func (r *fakeDriverRepo) SetAvailable(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.drivers[id]
	if !ok {
		return domainDriver.ErrDriverNotFound
	}
	d.IsActive = true
	return nil
}

type fakeCustomerRepo struct{ store *memStore }

func (r *fakeCustomerRepo) Create(ctx context.Context, c *domainCustomer.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainCustomer.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.customers[id]
	if !ok {
		return nil, domainCustomer.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context) ([]*domainCustomer.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) Search(ctx context.Context, q string, limit int) ([]*domainCustomer.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *domainCustomer.Customer) error { return nil }

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeShipmentRepo struct{ store *memStore }

func (r *fakeShipmentRepo) Create(ctx context.Context, s *domainShipment.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	cp := *s
	r.store.shipments[s.ID] = &cp
	return nil
}

func (r *fakeShipmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shipments[id]
	if !ok {
		return nil, domainShipment.ErrShipmentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeShipmentRepo) Update(ctx context.Context, s *domainShipment.Shipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.shipments[s.ID]; !ok {
		return domainShipment.ErrShipmentNotFound
	}
	s.UpdatedAt = time.Now()
	cp := *s
	r.store.shipments[s.ID] = &cp
	return nil
}

func (r *fakeShipmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.shipments[id]; !ok {
		return domainShipment.ErrShipmentNotFound
	}
	delete(r.store.shipments, id)
	return nil
}

func (r *fakeShipmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domainShipment.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.shipments[id]
	if !ok {
		return domainShipment.ErrShipmentNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

func (r *fakeShipmentRepo) List(ctx context.Context, filter *domainShipment.Filter) ([]*domainShipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domainShipment.Shipment
	for _, s := range r.store.shipments {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeShipmentRepo) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*domainShipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domainShipment.Shipment
	for _, s := range r.store.shipments {
		if s.DriverID != nil && *s.DriverID == driverID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeShipmentRepo) ListActiveByDriver(ctx context.Context, driverID uuid.UUID) ([]*domainShipment.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domainShipment.Shipment
	for _, s := range r.store.shipments {
		if s.DriverID != nil && *s.DriverID == driverID && s.Status != domainShipment.StatusDelivered {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeShipmentRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, s := range r.store.shipments {
		if s.ProductID != nil && *s.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *fakeShipmentRepo) AppendStatusUpdate(ctx context.Context, su *domainShipment.StatusUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	su.ID = uuid.New()
	cp := *su
	r.store.updates = append(r.store.updates, &cp)
	return nil
}

func (r *fakeShipmentRepo) ListStatusUpdates(ctx context.Context, shipmentID uuid.UUID) ([]*domainShipment.StatusUpdate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domainShipment.StatusUpdate
	for _, su := range r.store.updates {
		if su.ShipmentID == shipmentID {
			cp := *su
			out = append(out, &cp)
		}
	}
	return out, nil
}

type capturePublisher struct {
	events []events.StatusChanged
}

func (c *capturePublisher) PublishStatusChanged(ctx context.Context, evt events.StatusChanged) error {
	c.events = append(c.events, evt)
	return nil
}

type fixture struct {
	store     *memStore
	service   *Service
	publisher *capturePublisher
}

func newFixture() *fixture {
	store := newMemStore()
	productRepo := &fakeProductRepo{store: store}
	driverRepo := &fakeDriverRepo{store: store}
	customerRepo := &fakeCustomerRepo{store: store}
	shipmentRepo := &fakeShipmentRepo{store: store}
	publisher := &capturePublisher{}

	service := NewService(
		shipmentRepo,
		customerRepo,
		productRepo,
		driverRepo,
		stock.NewLedger(productRepo),
		dispatch.NewGate(driverRepo),
		&fakeAtomic{store: store},
		publisher,
	)
	return &fixture{store: store, service: service, publisher: publisher}
}

func (f *fixture) addProduct(qty int) uuid.UUID {
	id := uuid.New()
	f.store.products[id] = &domainProduct.Product{ID: id, Name: "widget", StockQty: qty, IsActive: true}
	return id
}

func (f *fixture) addDriver() uuid.UUID {
	id := uuid.New()
	f.store.drivers[id] = &domainDriver.Driver{ID: id, Name: "driver", IsActive: true}
	return id
}

func (f *fixture) addCustomer(addresses ...string) uuid.UUID {
	id := uuid.New()
	c := &domainCustomer.Customer{ID: id, Name: "customer", Phone: "555-0100"}
	if len(addresses) > 0 {
		c.Address = addresses[0]
	}
	if len(addresses) > 1 {
		c.Address2 = addresses[1]
	}
	if len(addresses) > 2 {
		c.Address3 = addresses[2]
	}
	f.store.customers[id] = c
	return id
}

func (f *fixture) stock(id uuid.UUID) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.products[id].StockQty
}

func (f *fixture) driverAvailable(id uuid.UUID) bool {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.drivers[id].IsActive
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestCreateShipmentExactStockThenInsufficient(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	d1 := f.addDriver()
	d2 := f.addDriver()

	_, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &d1,
		Quantity:    intPtr(10),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := f.stock(productID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}

	_, err = f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &d2,
		Quantity:    intPtr(1),
	})
	if !errors.Is(err, appErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := f.stock(productID); got != 0 {
		t.Fatalf("losing create must not change stock, got %d", got)
	}
	// The rejected creation must leave nothing behind, including the
	// claimed driver.
	if !f.driverAvailable(d2) {
		t.Fatal("expected the second driver to stay available after rollback")
	}
	if len(f.store.shipments) != 1 {
		t.Fatalf("expected 1 shipment, got %d", len(f.store.shipments))
	}
}

func TestQuantityGrowShrinkAndDelete(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(100)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &driverID,
		Quantity:    intPtr(5),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := f.stock(productID); got != 95 {
		t.Fatalf("expected stock 95, got %d", got)
	}
	if f.driverAvailable(driverID) {
		t.Fatal("expected driver to be busy after assignment")
	}

	if _, err := f.service.UpdateShipment(context.Background(), resp.ID, &UpdateShipmentRequest{
		Quantity: intPtr(8),
	}); err != nil {
		t.Fatalf("quantity grow failed: %v", err)
	}
	if got := f.stock(productID); got != 92 {
		t.Fatalf("expected stock 92, got %d", got)
	}

	if err := f.service.DeleteShipment(context.Background(), resp.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := f.stock(productID); got != 100 {
		t.Fatalf("expected stock restored to 100, got %d", got)
	}
	if !f.driverAvailable(driverID) {
		t.Fatal("expected driver to be available after delete")
	}
}

func TestBusyDriverRejected(t *testing.T) {
	f := newFixture()
	p1 := f.addProduct(50)
	p2 := f.addProduct(50)
	driverID := f.addDriver()

	if _, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &p1,
		DriverID:    &driverID,
		Quantity:    intPtr(1),
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &p2,
		DriverID:    &driverID,
		Quantity:    intPtr(1),
	})
	if !errors.Is(err, appErrors.ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable, got %v", err)
	}
	if f.driverAvailable(driverID) {
		t.Fatal("driver flag must remain busy throughout")
	}
	// Gate check precedes any ledger mutation: the second product must be
	// untouched.
	if got := f.stock(p2); got != 50 {
		t.Fatalf("expected second product stock 50, got %d", got)
	}
}

func TestDeliveredIsFinal(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &driverID,
		Quantity:    intPtr(4),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, status := range []string{"ASSIGNED", "IN_TRANSIT", "DELIVERED"} {
		if _, err := f.service.PostStatusUpdate(context.Background(), driverID, resp.ID, &PostStatusUpdateRequest{
			Status: status,
		}); err != nil {
			t.Fatalf("status update to %s failed: %v", status, err)
		}
	}

	// Delivery frees the driver and keeps the stock consumed.
	if !f.driverAvailable(driverID) {
		t.Fatal("expected driver to be available after delivery")
	}
	if got := f.stock(productID); got != 6 {
		t.Fatalf("expected stock to remain 6, got %d", got)
	}

	_, err = f.service.UpdateShipment(context.Background(), resp.ID, &UpdateShipmentRequest{
		Quantity: intPtr(9),
	})
	if !errors.Is(err, domainShipment.ErrShipmentDelivered) {
		t.Fatalf("expected ErrShipmentDelivered, got %v", err)
	}

	_, err = f.service.PostStatusUpdate(context.Background(), driverID, resp.ID, &PostStatusUpdateRequest{
		Status: "IN_TRANSIT",
	})
	if !appErrors.IsTransitionError(err) {
		t.Fatalf("expected a transition error, got %v", err)
	}

	if got := f.stock(productID); got != 6 {
		t.Fatalf("stock must stay 6 after rejected mutations, got %d", got)
	}
}

func TestProductSwapRollsBackOnInsufficientStock(t *testing.T) {
	f := newFixture()
	p1 := f.addProduct(20)
	p2 := f.addProduct(3)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &p1,
		DriverID:    &driverID,
		Quantity:    intPtr(5),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.service.UpdateShipment(context.Background(), resp.ID, &UpdateShipmentRequest{
		ProductID: &p2,
	})
	if !errors.Is(err, appErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// Net zero on failure: the release of p1 was rolled back and p2 was
	// never touched.
	if got := f.stock(p1); got != 15 {
		t.Fatalf("expected p1 stock 15, got %d", got)
	}
	if got := f.stock(p2); got != 3 {
		t.Fatalf("expected p2 stock 3, got %d", got)
	}

	current, err := f.service.GetShipment(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if current.ProductID == nil || *current.ProductID != p1 {
		t.Fatal("expected shipment to still reference the original product")
	}
}

func TestProductSwapMovesReservation(t *testing.T) {
	f := newFixture()
	p1 := f.addProduct(20)
	p2 := f.addProduct(10)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &p1,
		DriverID:    &driverID,
		Quantity:    intPtr(5),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.service.UpdateShipment(context.Background(), resp.ID, &UpdateShipmentRequest{
		ProductID: &p2,
	}); err != nil {
		t.Fatalf("product swap failed: %v", err)
	}

	if got := f.stock(p1); got != 20 {
		t.Fatalf("expected p1 stock back to 20, got %d", got)
	}
	if got := f.stock(p2); got != 5 {
		t.Fatalf("expected p2 stock 5, got %d", got)
	}
}

func TestDriverSwapFreesOldClaimsNew(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	d1 := f.addDriver()
	d2 := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &d1,
		Quantity:    intPtr(2),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.service.UpdateShipment(context.Background(), resp.ID, &UpdateShipmentRequest{
		DriverID: &d2,
	}); err != nil {
		t.Fatalf("driver swap failed: %v", err)
	}

	if !f.driverAvailable(d1) {
		t.Fatal("expected old driver to be freed")
	}
	if f.driverAvailable(d2) {
		t.Fatal("expected new driver to be busy")
	}
	// The reservation itself is unchanged by a driver swap.
	if got := f.stock(productID); got != 8 {
		t.Fatalf("expected stock 8, got %d", got)
	}
}

func TestRemoveDriverReleasesReservation(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &driverID,
		Quantity:    intPtr(3),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.service.UpdateShipment(context.Background(), resp.ID, &UpdateShipmentRequest{
		RemoveDriver: true,
	}); err != nil {
		t.Fatalf("driver removal failed: %v", err)
	}

	if got := f.stock(productID); got != 10 {
		t.Fatalf("expected stock restored to 10, got %d", got)
	}
	if !f.driverAvailable(driverID) {
		t.Fatal("expected driver to be available")
	}
}

func TestCustomerAddressValidation(t *testing.T) {
	f := newFixture()
	customerID := f.addCustomer("1 Main St", "2 Side St")
	emptyCustomerID := f.addCustomer()

	cases := []struct {
		name       string
		customerID uuid.UUID
		address    *string
	}{
		{"unknown address", customerID, strPtr("9 Nowhere Rd")},
		{"missing address", customerID, nil},
		{"customer without addresses", emptyCustomerID, strPtr("1 Main St")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
				WarehouseID:     uuid.New(),
				CustomerID:      &tc.customerID,
				CustomerAddress: tc.address,
			})
			if !errors.Is(err, appErrors.ErrInvalidAddress) {
				t.Fatalf("expected ErrInvalidAddress, got %v", err)
			}
		})
	}

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID:     uuid.New(),
		CustomerID:      &customerID,
		CustomerAddress: strPtr("  2 Side St  "),
	})
	if err != nil {
		t.Fatalf("create with saved address failed: %v", err)
	}
	if resp.CustomerAddress == nil || *resp.CustomerAddress != "2 Side St" {
		t.Fatalf("expected trimmed saved address, got %v", resp.CustomerAddress)
	}
}

func TestAssignedAtMustNotBeFuture(t *testing.T) {
	f := newFixture()
	future := time.Now().Add(time.Hour)

	_, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		AssignedAt:  &future,
	})
	if !errors.Is(err, domainShipment.ErrAssignedAtInFuture) {
		t.Fatalf("expected ErrAssignedAtInFuture, got %v", err)
	}
}

func TestQuantityDefaultsToOne(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &driverID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", resp.Quantity)
	}
	if got := f.stock(productID); got != 9 {
		t.Fatalf("expected stock 9, got %d", got)
	}

	for _, qty := range []int{0, -2} {
		if _, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
			WarehouseID: uuid.New(),
			ProductID:   &productID,
			Quantity:    intPtr(qty),
		}); !errors.Is(err, appErrors.ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestPostStatusUpdateRejectsForeignDriver(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	owner := f.addDriver()
	other := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &owner,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.service.PostStatusUpdate(context.Background(), other, resp.ID, &PostStatusUpdateRequest{
		Status: "ASSIGNED",
	})
	if !errors.Is(err, domainShipment.ErrNotShipmentDriver) {
		t.Fatalf("expected ErrNotShipmentDriver, got %v", err)
	}
}

func TestPostStatusUpdateGPSValidation(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &driverID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	lat := 24.7136
	badAccuracy := 45
	_, err = f.service.PostStatusUpdate(context.Background(), driverID, resp.ID, &PostStatusUpdateRequest{
		Status:    "ASSIGNED",
		AccuracyM: &badAccuracy,
	})
	if !errors.Is(err, domainShipment.ErrInvalidGPSAccuracy) {
		t.Fatalf("expected ErrInvalidGPSAccuracy, got %v", err)
	}

	_, err = f.service.PostStatusUpdate(context.Background(), driverID, resp.ID, &PostStatusUpdateRequest{
		Status:   "ASSIGNED",
		Latitude: &lat,
	})
	if !errors.Is(err, domainShipment.ErrPartialCoordinates) {
		t.Fatalf("expected ErrPartialCoordinates, got %v", err)
	}
}

func TestReversalIsStatusOnly(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &driverID,
		Quantity:    intPtr(3),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := f.service.PostStatusUpdate(context.Background(), driverID, resp.ID, &PostStatusUpdateRequest{
		Status: "ASSIGNED",
	}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := f.service.PostStatusUpdate(context.Background(), driverID, resp.ID, &PostStatusUpdateRequest{
		Status: "NEW",
	}); err != nil {
		t.Fatalf("reversal failed: %v", err)
	}

	// Reversal does not touch the ledger or the gate: the driver is still
	// bound and the reservation still held.
	if got := f.stock(productID); got != 7 {
		t.Fatalf("expected stock to stay 7, got %d", got)
	}
	if f.driverAvailable(driverID) {
		t.Fatal("expected driver to stay busy across a reversal")
	}
}

func TestStatusUpdatesAreAppended(t *testing.T) {
	f := newFixture()
	productID := f.addProduct(10)
	driverID := f.addDriver()

	resp, err := f.service.CreateShipment(context.Background(), &CreateShipmentRequest{
		WarehouseID: uuid.New(),
		ProductID:   &productID,
		DriverID:    &driverID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, status := range []string{"ASSIGNED", "IN_TRANSIT"} {
		if _, err := f.service.PostStatusUpdate(context.Background(), driverID, resp.ID, &PostStatusUpdateRequest{
			Status: status,
			Note:   "checkpoint",
		}); err != nil {
			t.Fatalf("status update to %s failed: %v", status, err)
		}
	}

	updates, err := f.service.ListStatusUpdates(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("list updates failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(updates))
	}

	if len(f.publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(f.publisher.events))
	}
	last := f.publisher.events[1]
	if last.From != "ASSIGNED" || last.To != "IN_TRANSIT" {
		t.Fatalf("unexpected event payload: %+v", last)
	}
}
