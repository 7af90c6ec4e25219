package repository

import (
	"context"
	"strings"

	"github.com/Hemachand25/FreshGrocery/entity"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

type ProductFilter struct {
	CategoryID *uint
	VendorID   *uint
	Query      string
}

// listed drops products whose vendor is blocked.
func listed(db *gorm.DB) *gorm.DB {
	blocked := db.Session(&gorm.Session{NewDB: true}).Model(&entity.User{}).Select("id").Where("blocked = ?", true)
	return db.Where("vendor_id IS NULL OR vendor_id NOT IN (?)", blocked)
}

func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]entity.Product, error) {
	q := r.DB.WithContext(ctx).Preload("Category").Scopes(listed)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.VendorID != nil {
		q = q.Where("vendor_id = ?", *f.VendorID)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	var out []entity.Product
	err := q.Order("id ASC").Find(&out).Error
	return out, err
}

// FindByID reads the live product row (current price and vendor).
func (r *ProductRepository) FindByID(tx *gorm.DB, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := tx.Preload("Category").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindListedByID is FindByID restricted to products still on sale.
func (r *ProductRepository) FindListedByID(tx *gorm.DB, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := tx.Scopes(listed).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(tx *gorm.DB, p *entity.Product) error {
	return tx.Create(p).Error
}

func (r *ProductRepository) Update(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.Product{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ProductRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}
