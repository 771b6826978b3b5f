package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/reweara/api/internal/models"
)

// Settings rows are singletons created on first read so admin screens always
// have something to render.

func (s *Store) GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error) {
	var ps models.PaymentSettings
	err := s.DB.WithContext(ctx).First(&ps).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ps = models.PaymentSettings{CODEnabled: true}
		if err := s.DB.WithContext(ctx).Create(&ps).Error; err != nil {
			return nil, err
		}
		return &ps, nil
	}
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func (s *Store) UpdatePaymentSettings(ctx context.Context, ps *models.PaymentSettings) error {
	return s.DB.WithContext(ctx).Save(ps).Error
}

func (s *Store) GetIntegrationSettings(ctx context.Context) (*models.IntegrationSettings, error) {
	var is models.IntegrationSettings
	err := s.DB.WithContext(ctx).First(&is).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		is = models.IntegrationSettings{}
		if err := s.DB.WithContext(ctx).Create(&is).Error; err != nil {
			return nil, err
		}
		return &is, nil
	}
	if err != nil {
		return nil, err
	}
	return &is, nil
}

func (s *Store) UpdateIntegrationSettings(ctx context.Context, is *models.IntegrationSettings) error {
	return s.DB.WithContext(ctx).Save(is).Error
}

func (s *Store) GetAnalyticsSettings(ctx context.Context) (*models.AnalyticsSettings, error) {
	var as models.AnalyticsSettings
	err := s.DB.WithContext(ctx).First(&as).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		as = models.AnalyticsSettings{}
		if err := s.DB.WithContext(ctx).Create(&as).Error; err != nil {
			return nil, err
		}
		return &as, nil
	}
	if err != nil {
		return nil, err
	}
	return &as, nil
}

func (s *Store) UpdateAnalyticsSettings(ctx context.Context, as *models.AnalyticsSettings) error {
	return s.DB.WithContext(ctx).Save(as).Error
}
