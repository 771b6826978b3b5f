package store

import (
	"context"

	"github.com/reweara/api/internal/models"
)

func (s *Store) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	q := s.DB.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var cats []models.Category
	if err := q.Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *Store) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	return s.DB.WithContext(ctx).Save(c).Error
}

// DeleteCategory hard-deletes, but only when no active product still points
// at the category.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ? AND is_active = ?", id, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrHasDependents
	}
	res := s.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
