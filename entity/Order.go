package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	Total  int64       `json:"total"`
	Status OrderStatus `gorm:"type:varchar(16);not null;default:ACTIVE;index" json:"status"`

	Items []OrderItem `json:"items,omitempty"`

	// resolved with a query on vendor_orders.order_id, never stored as an edge
	VendorOrders []VendorOrder `gorm:"-" json:"vendorOrders,omitempty"`
}

// ItemsTotal recomputes Σ qty × priceAtPurchase over the loaded items.
func (o *Order) ItemsTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}
