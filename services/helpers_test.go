package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Hemachand25/FreshGrocery/configs"
	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/clock"
	"github.com/Hemachand25/FreshGrocery/pkg/logger"
	"github.com/Hemachand25/FreshGrocery/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection serializes writers and keeps the memory database alive
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

type sentEvent struct {
	Key     string
	Event   string
	Payload any
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *recordingNotifier) Publish(key, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{Key: key, Event: event, Payload: payload})
}

func (n *recordingNotifier) PublishToMany(keys []string, event string, payload any) {
	for _, k := range keys {
		n.Publish(k, event, payload)
	}
}

func (n *recordingNotifier) to(key string) []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentEvent
	for _, e := range n.sent {
		if e.Key == key {
			out = append(out, e)
		}
	}
	return out
}

func (n *recordingNotifier) named(event string) []sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentEvent
	for _, e := range n.sent {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	n.sent = nil
	n.mu.Unlock()
}

type fixture struct {
	db    *gorm.DB
	notes *recordingNotifier

	carts        *CartService
	checkout     *CheckoutService
	vendorOrders *VendorOrderService
	orders       *OrderService
	aggregator   *Aggregator

	orderRepo *repository.OrderRepository
	voRepo    *repository.VendorOrderRepository

	customer entity.Principal
	admin    entity.Principal
}

func newFixture(t *testing.T, policy TransitionPolicy) *fixture {
	t.Helper()
	db := newTestDB(t)
	notes := &recordingNotifier{}
	log := logger.Discard()
	clk := clock.NewFixed(testNow)

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	voRepo := repository.NewVendorOrderRepository(db)
	agg := NewAggregator(db, orderRepo, voRepo, notes, clk, log)

	f := &fixture{
		db:           db,
		notes:        notes,
		carts:        NewCartService(db, cartRepo, productRepo),
		checkout:     NewCheckoutService(db, cartRepo, productRepo, orderRepo, voRepo, notes, clk, log),
		vendorOrders: NewVendorOrderService(db, voRepo, orderRepo, agg, notes, clk, policy, log),
		orders:       NewOrderService(db, orderRepo, voRepo, notes, clk, log),
		aggregator:   agg,
		orderRepo:    orderRepo,
		voRepo:       voRepo,
	}
	f.customer = f.addUser(t, 1, entity.RoleCustomer)
	f.admin = f.addUser(t, 2, entity.RoleAdmin)
	return f
}

func (f *fixture) addUser(t *testing.T, id uint, role entity.Role) entity.Principal {
	t.Helper()
	u := entity.User{
		Model: gorm.Model{ID: id},
		Email: uuid.NewString() + "@example.com",
		Role:  role,
	}
	require.NoError(t, f.db.Create(&u).Error)
	return u.Principal()
}

func (f *fixture) addVendor(t *testing.T, id uint) entity.Principal {
	return f.addUser(t, id, entity.RoleVendor)
}

// addProduct creates a product; vendorID 0 makes a platform product.
func (f *fixture) addProduct(t *testing.T, vendorID uint, price int64) entity.Product {
	t.Helper()
	p := entity.Product{Name: "item-" + uuid.NewString()[:8], Price: price, Stock: 100}
	if vendorID != 0 {
		p.VendorID = &vendorID
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) addToCart(t *testing.T, userID, productID uint, qty int) {
	t.Helper()
	_, err := f.carts.Add(context.Background(), userID, &AddToCartIn{ProductID: productID, Qty: qty})
	require.NoError(t, err)
}

// placeOrder checks out one item from each vendor and returns the order with
// its vendor orders resolved, sorted by vendor.
func (f *fixture) placeOrder(t *testing.T, vendorIDs ...uint) *entity.Order {
	t.Helper()
	for _, v := range vendorIDs {
		p := f.addProduct(t, v, 100)
		f.addToCart(t, f.customer.ID, p.ID, 1)
	}
	o, err := f.checkout.Checkout(context.Background(), f.customer)
	require.NoError(t, err)
	require.Len(t, o.VendorOrders, len(vendorIDs))
	return o
}

func (f *fixture) orderStatus(t *testing.T, orderID uint) entity.OrderStatus {
	t.Helper()
	o, err := f.orderRepo.FindByID(f.db, orderID)
	require.NoError(t, err)
	return o.Status
}
