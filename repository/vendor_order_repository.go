package repository

import (
	"context"
	"time"

	"github.com/Hemachand25/FreshGrocery/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VendorOrderRepository struct {
	DB *gorm.DB
}

func NewVendorOrderRepository(db *gorm.DB) *VendorOrderRepository {
	return &VendorOrderRepository{DB: db}
}

// Create inserts the vendor order row only; items are linked with OrderRepository.AssignItems.
func (r *VendorOrderRepository) Create(tx *gorm.DB, vo *entity.VendorOrder) error {
	return tx.Omit(clause.Associations).Create(vo).Error
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product")
}

func (r *VendorOrderRepository) FindByID(tx *gorm.DB, id uint) (*entity.VendorOrder, error) {
	var vo entity.VendorOrder
	if err := withItems(tx).First(&vo, id).Error; err != nil {
		return nil, err
	}
	return &vo, nil
}

// FindByOrderID returns every sibling of one order; this is the only Order -> VendorOrder edge.
func (r *VendorOrderRepository) FindByOrderID(tx *gorm.DB, orderID uint) ([]entity.VendorOrder, error) {
	var out []entity.VendorOrder
	err := withItems(tx).Where("order_id = ?", orderID).Order("id ASC").Find(&out).Error
	return out, err
}

// StatusesByOrderID reads only the sibling statuses, for aggregation.
func (r *VendorOrderRepository) StatusesByOrderID(tx *gorm.DB, orderID uint) ([]entity.VendorOrderStatus, error) {
	var out []entity.VendorOrderStatus
	err := tx.Model(&entity.VendorOrder{}).Where("order_id = ?", orderID).Pluck("status", &out).Error
	return out, err
}

func (r *VendorOrderRepository) ListForVendor(ctx context.Context, vendorID uint, status entity.VendorOrderStatus) ([]entity.VendorOrder, error) {
	q := withItems(r.DB.WithContext(ctx)).Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []entity.VendorOrder
	err := q.Order("updated_at DESC, id DESC").Find(&out).Error
	return out, err
}

// UpdateStatusGuard sets the status only if the row is still in fromStatus.
func (r *VendorOrderRepository) UpdateStatusGuard(tx *gorm.DB, id uint, from, to entity.VendorOrderStatus, at time.Time) (int64, error) {
	res := tx.Model(&entity.VendorOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": at})
	return res.RowsAffected, res.Error
}
