package entity

import (
	"gorm.io/gorm"
)

type VendorOrder struct {
	gorm.Model
	OrderID uint `gorm:"index;not null" json:"orderId"`

	// nil for the platform group (products without a vendor)
	VendorID *uint `gorm:"index" json:"vendorId,omitempty"`

	Status VendorOrderStatus `gorm:"type:varchar(24);not null;default:PLACED;index" json:"status"`

	Items []OrderItem `gorm:"foreignKey:VendorOrderID" json:"items"`
}

// VendorKey is the grouping key used by the splitter; 0 is the platform group.
func (vo VendorOrder) VendorKey() uint {
	if vo.VendorID == nil {
		return 0
	}
	return *vo.VendorID
}

func (vo VendorOrder) Subtotal() int64 {
	var total int64
	for _, it := range vo.Items {
		total += it.Subtotal()
	}
	return total
}
