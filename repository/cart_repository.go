package repository

import (
	"errors"

	"github.com/Hemachand25/FreshGrocery/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the user's cart, or an empty one without error.
func (r *CartRepository) GetCartWithItems(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if err := tx.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// UpsertItem merges qty into an existing line of the same product.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID, productID uint, qty int) (*entity.CartItem, error) {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&exist).Error
	if err == nil {
		exist.Qty += qty
		if err := tx.Save(&exist).Error; err != nil {
			return nil, err
		}
		return &exist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := &entity.CartItem{CartID: cartID, ProductID: productID, Qty: qty}
	if err := tx.Omit("Product", "Cart").Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateQty only touches lines of the user's own cart; qty <= 0 removes the line.
func (r *CartRepository) UpdateQty(tx *gorm.DB, userID, itemID uint, qty int) (int64, error) {
	if qty <= 0 {
		return r.RemoveItem(tx, userID, itemID)
	}
	res := tx.Model(&entity.CartItem{}).
		Where("id = ? AND cart_id IN (?)", itemID, tx.Model(&entity.Cart{}).Select("id").Where("user_id = ?", userID)).
		Update("qty", qty)
	return res.RowsAffected, res.Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) (int64, error) {
	res := tx.Unscoped().
		Where("id = ? AND cart_id IN (?)", itemID, tx.Model(&entity.Cart{}).Select("id").Where("user_id = ?", userID)).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

// LockCart takes a row lock on the user's cart until tx ends. A missing cart
// is not an error. SQLite has no FOR UPDATE and relies on its writer lock.
func (r *CartRepository) LockCart(tx *gorm.DB, userID uint) error {
	var c entity.Cart
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// ClearCart returns how many lines were removed.
func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) (int64, error) {
	var c entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	res := tx.Unscoped().Where("cart_id = ?", c.ID).Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}
