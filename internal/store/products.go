package store

import (
	"context"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/util"
)

// ProductFilter narrows the public listing. The zero value lists every
// active product.
type ProductFilter struct {
	CategoryID uint
	BrandID    uint
	Featured   bool
	Thrift     bool
	Query      string
	Page       int
	Size       int
}

// ListProducts returns active products only; soft-deleted rows never reach
// public listings.
func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.BrandID != 0 {
		q = q.Where("brand_id = ?", f.BrandID)
	}
	if f.Featured {
		q = q.Where("is_featured = ?", true)
	}
	if f.Thrift {
		q = q.Where("is_thrift = ?", true)
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := util.Paginate(f.Page, f.Size)
	var items []models.Product
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAllProducts includes inactive rows, for the admin console.
func (s *Store) ListAllProducts(ctx context.Context, page, size int) ([]models.Product, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := util.Paginate(page, size)
	var items []models.Product
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// AllProducts returns the entire catalog, for exports and seeding checks.
func (s *Store) AllProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetProduct resolves inactive products too; order history and the admin
// console still need them.
func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	return s.DB.WithContext(ctx).Save(p).Error
}

// DeactivateProduct is the soft delete used by the admin console.
func (s *Store) DeactivateProduct(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
