package services

import (
	"context"
	"log/slog"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/clock"
	"github.com/Hemachand25/FreshGrocery/repository"

	"gorm.io/gorm"
)

type VendorOrderService struct {
	DB           *gorm.DB
	VendorOrders *repository.VendorOrderRepository
	Orders       *repository.OrderRepository
	Aggregator   *Aggregator
	Notifier     Notifier
	Clock        clock.Clock
	Policy       TransitionPolicy
	Log          *slog.Logger
}

func NewVendorOrderService(
	db *gorm.DB,
	vendorOrders *repository.VendorOrderRepository,
	orders *repository.OrderRepository,
	agg *Aggregator,
	n Notifier,
	clk clock.Clock,
	policy TransitionPolicy,
	log *slog.Logger,
) *VendorOrderService {
	return &VendorOrderService{
		DB: db, VendorOrders: vendorOrders, Orders: orders, Aggregator: agg,
		Notifier: n, Clock: clk, Policy: policy, Log: log,
	}
}

// UpdateStatus moves one vendor order to newStatus on behalf of its vendor or
// an admin, notifies the vendor and the customer, and re-aggregates the parent
// order. A failed aggregation is logged; the vendor order change stands.
func (s *VendorOrderService) UpdateStatus(ctx context.Context, id uint, newStatus entity.VendorOrderStatus, p entity.Principal) (*entity.VendorOrder, error) {
	var (
		vo         *entity.VendorOrder
		customerID uint
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := s.VendorOrders.FindByID(tx, id)
		if err != nil {
			return notFound(err, "vendor order %d", id)
		}
		if err := Authorize(p, ActionUpdateVendorOrder, cur.VendorID); err != nil {
			return err
		}
		if err := s.Policy.Check(cur.Status, newStatus); err != nil {
			return err
		}

		customerID, err = s.Orders.CustomerOf(tx, cur.OrderID)
		if err != nil {
			return notFound(err, "order %d", cur.OrderID)
		}

		now := s.Clock.Now()
		n, err := s.VendorOrders.UpdateStatusGuard(tx, cur.ID, cur.Status, newStatus, now)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrConflict
		}
		cur.Status, cur.UpdatedAt = newStatus, now
		vo = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, 2)
	if vo.VendorID != nil {
		keys = append(keys, VendorChannel(*vo.VendorID))
	}
	keys = append(keys, UserChannel(customerID))
	s.Notifier.PublishToMany(keys, EventOrderUpdate, vo)

	s.Log.Info("vendor order status updated",
		slog.Uint64("vendor_order_id", uint64(vo.ID)),
		slog.Uint64("order_id", uint64(vo.OrderID)),
		slog.String("status", string(vo.Status)),
		slog.Uint64("actor_id", uint64(p.ID)))

	if _, err := s.Aggregator.Recompute(ctx, vo.OrderID); err != nil {
		s.Log.Error("aggregate parent order", slog.Uint64("order_id", uint64(vo.OrderID)), slog.Any("err", err))
	}
	return vo, nil
}

func (s *VendorOrderService) Get(ctx context.Context, id uint, p entity.Principal) (*entity.VendorOrder, error) {
	vo, err := s.VendorOrders.FindByID(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "vendor order %d", id)
	}
	if err := Authorize(p, ActionViewVendorOrder, vo.VendorID); err != nil {
		return nil, err
	}
	return vo, nil
}

// ListMine returns the caller's vendor orders, newest activity first.
func (s *VendorOrderService) ListMine(ctx context.Context, p entity.Principal, status entity.VendorOrderStatus) ([]entity.VendorOrder, error) {
	if err := Authorize(p, ActionListVendorOrders, nil); err != nil {
		return nil, err
	}
	return s.VendorOrders.ListForVendor(ctx, p.ID, status)
}

// ListForOrder returns every vendor order of one order, for admins and the ordering customer.
func (s *VendorOrderService) ListForOrder(ctx context.Context, orderID uint, p entity.Principal) ([]entity.VendorOrder, error) {
	db := s.DB.WithContext(ctx)
	customerID, err := s.Orders.CustomerOf(db, orderID)
	if err != nil {
		return nil, notFound(err, "order %d", orderID)
	}
	if err := Authorize(p, ActionViewOrder, &customerID); err != nil {
		return nil, err
	}
	return s.VendorOrders.FindByOrderID(db, orderID)
}
