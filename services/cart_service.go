package services

import (
	"context"
	"fmt"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/repository"

	"gorm.io/gorm"
)

// CartService keeps the pre-checkout cart. Lines from different vendors may
// share one cart; checkout splits them.
type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	Products *repository.ProductRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, Products: pr}
}

type AddToCartIn struct {
	ProductID uint `json:"productId" binding:"required"`
	Qty       int  `json:"qty"`
}

type CartView struct {
	Cart     *entity.Cart `json:"cart"`
	Subtotal int64        `json:"subtotal"` // at current prices
}

func (s *CartService) Get(ctx context.Context, userID uint) (*CartView, error) {
	c, err := s.CartRepo.GetCartWithItems(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	var subtotal int64
	for _, it := range c.Items {
		subtotal += it.Product.Price * int64(it.Qty)
	}
	return &CartView{Cart: c, Subtotal: subtotal}, nil
}

func (s *CartService) Add(ctx context.Context, userID uint, in *AddToCartIn) (*entity.CartItem, error) {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	var line *entity.CartItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Products.FindListedByID(tx, in.ProductID); err != nil {
			return notFound(err, "product %d", in.ProductID)
		}
		c, err := s.CartRepo.GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		line, err = s.CartRepo.UpsertItem(tx, c.ID, in.ProductID, in.Qty)
		return err
	})
	return line, err
}

func (s *CartService) UpdateQty(ctx context.Context, userID, itemID uint, qty int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.CartRepo.UpdateQty(tx, userID, itemID, qty)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.CartRepo.RemoveItem(tx, userID, itemID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.CartRepo.ClearCart(tx, userID)
		return err
	})
}
