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

// Aggregate derives a parent order status from its vendor orders. ok is false
// when the statuses do not force one; an order without vendor orders never does.
func Aggregate(statuses []entity.VendorOrderStatus) (entity.OrderStatus, bool) {
	if len(statuses) == 0 {
		return "", false
	}
	allDelivered, allCancelled := true, true
	for _, s := range statuses {
		if s != entity.VendorOrderDelivered {
			allDelivered = false
		}
		if s != entity.VendorOrderCancelled {
			allCancelled = false
		}
	}
	switch {
	case allDelivered:
		return entity.OrderCompleted, true
	case allCancelled:
		return entity.OrderCancelled, true
	}
	return "", false
}

type Aggregator struct {
	DB           *gorm.DB
	Orders       *repository.OrderRepository
	VendorOrders *repository.VendorOrderRepository
	Notifier     Notifier
	Clock        clock.Clock
	Log          *slog.Logger
}

func NewAggregator(db *gorm.DB, orders *repository.OrderRepository, vendorOrders *repository.VendorOrderRepository, n Notifier, clk clock.Clock, log *slog.Logger) *Aggregator {
	return &Aggregator{DB: db, Orders: orders, VendorOrders: vendorOrders, Notifier: n, Clock: clk, Log: log}
}

// Recompute re-derives the order's status from its vendor orders and reports
// whether it changed. Repeated calls over the same sibling statuses are no-ops.
func (a *Aggregator) Recompute(ctx context.Context, orderID uint) (bool, error) {
	var parent *entity.Order
	err := a.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statuses, err := a.VendorOrders.StatusesByOrderID(tx, orderID)
		if err != nil {
			return err
		}
		target, ok := Aggregate(statuses)
		if !ok {
			return nil
		}

		n, err := a.Orders.UpdateStatusUnless(tx, orderID, target, a.Clock.Now())
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		parent, err = a.Orders.FindByID(tx, orderID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("recompute order %d: %w", orderID, err)
	}
	if parent == nil {
		return false, nil
	}

	event := EventOrderCompleted
	if parent.Status == entity.OrderCancelled {
		event = EventOrderCancelled
	}
	a.Notifier.PublishToMany([]string{UserChannel(parent.UserID), AdminChannel}, event, parent)
	a.Log.Info("order status aggregated",
		slog.Uint64("order_id", uint64(orderID)), slog.String("status", string(parent.Status)))
	return true, nil
}
