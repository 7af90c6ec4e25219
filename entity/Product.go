package entity

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	Price       int64  `json:"price"` // minor units
	Stock       int    `json:"stock"`

	CategoryID *uint     `json:"categoryId,omitempty"`
	Category   *Category `json:"category,omitempty"`

	// nil means a platform product without a vendor
	VendorID *uint `gorm:"index" json:"vendorId,omitempty"`
	Vendor   *User `gorm:"foreignKey:VendorID" json:"-"`
}
