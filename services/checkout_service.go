package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/clock"
	"github.com/Hemachand25/FreshGrocery/repository"

	"gorm.io/gorm"
)

type CheckoutService struct {
	DB           *gorm.DB
	Carts        *repository.CartRepository
	Products     *repository.ProductRepository
	Orders       *repository.OrderRepository
	VendorOrders *repository.VendorOrderRepository
	Notifier     Notifier
	Clock        clock.Clock
	Log          *slog.Logger
}

func NewCheckoutService(
	db *gorm.DB,
	carts *repository.CartRepository,
	products *repository.ProductRepository,
	orders *repository.OrderRepository,
	vendorOrders *repository.VendorOrderRepository,
	n Notifier,
	clk clock.Clock,
	log *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		DB: db, Carts: carts, Products: products, Orders: orders, VendorOrders: vendorOrders,
		Notifier: n, Clock: clk, Log: log,
	}
}

// Checkout turns the customer's cart into one order split into per-vendor
// orders. Everything up to clearing the cart happens in one transaction;
// vendors are notified only after it commits.
func (s *CheckoutService) Checkout(ctx context.Context, p entity.Principal) (*entity.Order, error) {
	if err := Authorize(p, ActionCheckout, nil); err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	var order *entity.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// a second checkout of the same cart waits here, then sees it empty
		if err := s.Carts.LockCart(tx, p.ID); err != nil {
			return err
		}
		cart, err := s.Carts.GetCartWithItems(tx, p.ID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		o := &entity.Order{UserID: p.ID, Status: entity.OrderActive}
		o.CreatedAt, o.UpdatedAt = now, now
		for _, line := range cart.Items {
			if line.Qty <= 0 {
				return fmt.Errorf("cart line %d has quantity %d: %w", line.ID, line.Qty, ErrInvalidInput)
			}
			// live price, not whatever was shown when the line was added
			product, err := s.Products.FindByID(tx, line.ProductID)
			if err != nil {
				return notFound(err, "product %d", line.ProductID)
			}
			o.Items = append(o.Items, entity.OrderItem{
				ProductID:       product.ID,
				Product:         *product,
				Qty:             line.Qty,
				PriceAtPurchase: product.Price,
			})
		}
		o.Total = o.ItemsTotal()

		if err := s.Orders.CreateOrder(tx, o); err != nil {
			return err
		}

		drafts := Split(o)
		if err := CheckPartition(o, drafts); err != nil {
			return err
		}

		owner := make(map[uint]uint, len(o.Items)) // item id -> vendor order id
		for _, key := range SortedKeys(drafts) {
			vo := drafts[key]
			vo.CreatedAt, vo.UpdatedAt = now, now
			if err := s.VendorOrders.Create(tx, vo); err != nil {
				return err
			}

			ids := make([]uint, 0, len(vo.Items))
			for i := range vo.Items {
				ids = append(ids, vo.Items[i].ID)
				vo.Items[i].VendorOrderID = &vo.ID
				owner[vo.Items[i].ID] = vo.ID
			}
			n, err := s.Orders.AssignItems(tx, vo.ID, ids)
			if err != nil {
				return err
			}
			if n != int64(len(ids)) {
				return fmt.Errorf("vendor order %d claimed %d of %d items: %w", vo.ID, n, len(ids), ErrInconsistentPartition)
			}
			o.VendorOrders = append(o.VendorOrders, *vo)
		}

		left, err := s.Orders.CountUnassignedItems(tx, o.ID)
		if err != nil {
			return err
		}
		if left != 0 {
			return fmt.Errorf("order %d has %d unassigned items: %w", o.ID, left, ErrInconsistentPartition)
		}
		for i := range o.Items {
			voID := owner[o.Items[i].ID]
			o.Items[i].VendorOrderID = &voID
		}

		cleared, err := s.Carts.ClearCart(tx, p.ID)
		if err != nil {
			return err
		}
		if cleared != int64(len(cart.Items)) {
			return fmt.Errorf("cart of user %d changed during checkout (%d of %d lines cleared): %w",
				p.ID, cleared, len(cart.Items), ErrConflict)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range order.VendorOrders {
		vo := &order.VendorOrders[i]
		if vo.VendorID == nil {
			continue
		}
		s.Notifier.Publish(VendorChannel(*vo.VendorID), EventOrderNew, vo)
	}

	s.Log.Info("checkout completed",
		slog.Uint64("order_id", uint64(order.ID)),
		slog.Uint64("user_id", uint64(p.ID)),
		slog.Int64("total", order.Total),
		slog.Int("vendor_orders", len(order.VendorOrders)))
	return order, nil
}
