package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID       uint  `gorm:"index;not null" json:"orderId"`
	VendorOrderID *uint `gorm:"index" json:"vendorOrderId,omitempty"`

	ProductID uint    `json:"productId"`
	Product   Product `json:"product"`

	Qty             int   `json:"qty"`
	PriceAtPurchase int64 `json:"priceAtPurchase"`
}

func (it OrderItem) Subtotal() int64 {
	return int64(it.Qty) * it.PriceAtPurchase
}
