package repository

import (
	"context"
	"time"

	"github.com/Hemachand25/FreshGrocery/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the order row and its line items.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return nil
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	return tx.Omit("Product").Create(&o.Items).Error
}

func (r *OrderRepository) FindByID(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}

// ListAll pages over every order, newest first; status narrows when non-empty.
func (r *OrderRepository) ListAll(ctx context.Context, status entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	page, limit = NormalizePage(page, limit)

	base := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&entity.Order{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Order
	err := base().Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// UpdateStatusUnless writes the status only when it differs, so repeats are no-ops.
func (r *OrderRepository) UpdateStatusUnless(tx *gorm.DB, orderID uint, to entity.OrderStatus, at time.Time) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status <> ?", orderID, to).
		Updates(map[string]any{"status": to, "updated_at": at})
	return res.RowsAffected, res.Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) AssignItems(tx *gorm.DB, vendorOrderID uint, itemIDs []uint) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	res := tx.Model(&entity.OrderItem{}).
		Where("id IN ? AND vendor_order_id IS NULL", itemIDs).
		Update("vendor_order_id", vendorOrderID)
	return res.RowsAffected, res.Error
}

// CountUnassignedItems reports line items of the order not owned by any vendor order.
func (r *OrderRepository) CountUnassignedItems(tx *gorm.DB, orderID uint) (int64, error) {
	var n int64
	err := tx.Model(&entity.OrderItem{}).
		Where("order_id = ? AND vendor_order_id IS NULL", orderID).
		Count(&n).Error
	return n, err
}

func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return page, limit
}

// CustomerOf reads only the owning customer of an order.
func (r *OrderRepository) CustomerOf(tx *gorm.DB, orderID uint) (uint, error) {
	var row struct{ UserID uint }
	err := tx.Model(&entity.Order{}).Select("user_id").Where("id = ?", orderID).Take(&row).Error
	return row.UserID, err
}
