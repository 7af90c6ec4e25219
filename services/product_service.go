package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/repository"

	"gorm.io/gorm"
)

type ProductService struct {
	DB   *gorm.DB
	Repo *repository.ProductRepository
}

func NewProductService(db *gorm.DB, repo *repository.ProductRepository) *ProductService {
	return &ProductService{DB: db, Repo: repo}
}

type ProductIn struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Stock       *int    `json:"stock"`
	CategoryID  *uint   `json:"categoryId"`
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	return s.Repo.List(ctx, f)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*entity.Product, error) {
	p, err := s.Repo.FindByID(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "product %d", id)
	}
	return p, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]entity.Category, error) {
	return s.Repo.ListCategories(ctx)
}

// Create adds a product owned by the calling vendor.
func (s *ProductService) Create(ctx context.Context, p entity.Principal, in ProductIn) (*entity.Product, error) {
	if err := Authorize(p, ActionManageProduct, &p.ID); err != nil {
		return nil, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Price == nil || *in.Price < 0 {
		return nil, fmt.Errorf("name and a non-negative price are required: %w", ErrInvalidInput)
	}

	prod := &entity.Product{
		Name:       strings.TrimSpace(*in.Name),
		Price:      *in.Price,
		CategoryID: in.CategoryID,
	}
	if in.Description != nil {
		prod.Description = *in.Description
	}
	if in.Stock != nil {
		prod.Stock = *in.Stock
	}
	if p.IsVendor() {
		vendorID := p.ID
		prod.VendorID = &vendorID
	}
	if err := s.Repo.Create(s.DB.WithContext(ctx), prod); err != nil {
		return nil, err
	}
	return prod, nil
}

// Update changes a product. Price changes never affect placed orders, which
// keep their own price snapshot.
func (s *ProductService) Update(ctx context.Context, p entity.Principal, id uint, in ProductIn) (*entity.Product, error) {
	db := s.DB.WithContext(ctx)
	cur, err := s.Repo.FindByID(db, id)
	if err != nil {
		return nil, notFound(err, "product %d", id)
	}
	if err := Authorize(p, ActionManageProduct, cur.VendorID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("negative price: %w", ErrInvalidInput)
		}
		updates["price"] = *in.Price
	}
	if in.Stock != nil {
		updates["stock"] = *in.Stock
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(db, id, updates); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(db, id)
}
