package store

import (
	"context"
	"time"

	"github.com/reweara/api/internal/models"
)

func (s *Store) ListBanners(ctx context.Context, includeInactive bool) ([]models.Banner, error) {
	q := s.DB.WithContext(ctx).Order("position ASC, id ASC")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var banners []models.Banner
	if err := q.Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (s *Store) GetBanner(ctx context.Context, id uint) (*models.Banner, error) {
	var b models.Banner
	if err := s.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Store) CreateBanner(ctx context.Context, b *models.Banner) error {
	return s.DB.WithContext(ctx).Create(b).Error
}

func (s *Store) UpdateBanner(ctx context.Context, b *models.Banner) error {
	return s.DB.WithContext(ctx).Save(b).Error
}

// Banners hard-delete; nothing references them.
func (s *Store) DeleteBanner(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Banner{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActivePopups returns popups inside their display window.
func (s *Store) ListActivePopups(ctx context.Context) ([]models.Popup, error) {
	now := time.Now()
	var popups []models.Popup
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("id DESC").Find(&popups).Error
	if err != nil {
		return nil, err
	}
	return popups, nil
}

func (s *Store) ListPopups(ctx context.Context) ([]models.Popup, error) {
	var popups []models.Popup
	if err := s.DB.WithContext(ctx).Order("id DESC").Find(&popups).Error; err != nil {
		return nil, err
	}
	return popups, nil
}

func (s *Store) GetPopup(ctx context.Context, id uint) (*models.Popup, error) {
	var p models.Popup
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreatePopup(ctx context.Context, p *models.Popup) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Store) UpdatePopup(ctx context.Context, p *models.Popup) error {
	return s.DB.WithContext(ctx).Save(p).Error
}

func (s *Store) DeletePopup(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Popup{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
