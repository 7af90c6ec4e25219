package services

import (
	"context"
	"log/slog"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/clock"
	"github.com/Hemachand25/FreshGrocery/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB           *gorm.DB
	Orders       *repository.OrderRepository
	VendorOrders *repository.VendorOrderRepository
	Notifier     Notifier
	Clock        clock.Clock
	Log          *slog.Logger
}

func NewOrderService(db *gorm.DB, orders *repository.OrderRepository, vendorOrders *repository.VendorOrderRepository, n Notifier, clk clock.Clock, log *slog.Logger) *OrderService {
	return &OrderService{DB: db, Orders: orders, VendorOrders: vendorOrders, Notifier: n, Clock: clk, Log: log}
}

// ----- Customer -----

func (s *OrderService) ListMine(ctx context.Context, p entity.Principal, limit int) ([]entity.Order, error) {
	if p.ID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.Orders.ListForUser(ctx, p.ID, limit)
}

// Detail returns the order with its vendor orders resolved.
func (s *OrderService) Detail(ctx context.Context, p entity.Principal, orderID uint) (*entity.Order, error) {
	db := s.DB.WithContext(ctx)
	o, err := s.Orders.FindByID(db, orderID)
	if err != nil {
		return nil, notFound(err, "order %d", orderID)
	}
	if err := Authorize(p, ActionViewOrder, &o.UserID); err != nil {
		return nil, err
	}
	o.VendorOrders, err = s.VendorOrders.FindByOrderID(db, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ----- Admin -----

type OrderPage struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (s *OrderService) ListAll(ctx context.Context, p entity.Principal, status entity.OrderStatus, page, limit int) (*OrderPage, error) {
	if err := Authorize(p, ActionListAllOrders, nil); err != nil {
		return nil, err
	}
	items, total, err := s.Orders.ListAll(ctx, status, page, limit)
	if err != nil {
		return nil, err
	}
	page, limit = repository.NormalizePage(page, limit)
	return &OrderPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) ListForUser(ctx context.Context, p entity.Principal, userID uint) ([]entity.Order, error) {
	if err := Authorize(p, ActionListAllOrders, nil); err != nil {
		return nil, err
	}
	return s.Orders.ListForUser(ctx, userID, 0)
}

// OverrideStatus lets an admin force the parent order status. Forcing
// COMPLETED or CANCELLED notifies the customer and the admin channel.
func (s *OrderService) OverrideStatus(ctx context.Context, p entity.Principal, orderID uint, status entity.OrderStatus) (*entity.Order, error) {
	if err := Authorize(p, ActionOverrideOrderStatus, nil); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var (
		o       *entity.Order
		changed bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Orders.CustomerOf(tx, orderID); err != nil {
			return notFound(err, "order %d", orderID)
		}
		n, err := s.Orders.UpdateStatusUnless(tx, orderID, status, s.Clock.Now())
		if err != nil {
			return err
		}
		changed = n > 0
		o, err = s.Orders.FindByID(tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.Log.Info("order status overridden",
			slog.Uint64("order_id", uint64(orderID)), slog.String("status", string(status)), slog.Uint64("admin_id", uint64(p.ID)))
		switch status {
		case entity.OrderCompleted:
			s.Notifier.PublishToMany([]string{UserChannel(o.UserID), AdminChannel}, EventOrderCompleted, o)
		case entity.OrderCancelled:
			s.Notifier.PublishToMany([]string{UserChannel(o.UserID), AdminChannel}, EventOrderCancelled, o)
		}
	}
	return o, nil
}
