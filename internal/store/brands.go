package store

import (
	"context"

	"github.com/reweara/api/internal/models"
)

func (s *Store) ListBrands(ctx context.Context, includeInactive bool) ([]models.Brand, error) {
	q := s.DB.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var brands []models.Brand
	if err := q.Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (s *Store) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	var b models.Brand
	if err := s.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Store) CreateBrand(ctx context.Context, b *models.Brand) error {
	return s.DB.WithContext(ctx).Create(b).Error
}

func (s *Store) UpdateBrand(ctx context.Context, b *models.Brand) error {
	return s.DB.WithContext(ctx).Save(b).Error
}

func (s *Store) DeactivateBrand(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Model(&models.Brand{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
