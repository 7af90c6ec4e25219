package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        Role   `gorm:"type:varchar(16);not null;default:customer" json:"role"`

	// blocked accounts keep their history but cannot log in
	Blocked bool `gorm:"not null;default:false;index" json:"blocked"`

	// only meaningful for vendors
	StoreName string `json:"storeName,omitempty"`

	Products []Product `gorm:"foreignKey:VendorID" json:"-"`
	Orders   []Order   `json:"-"`
}

func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}
