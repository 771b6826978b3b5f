package store

import (
	"context"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/util"
)

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var a models.AdminUser
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) GetAdmin(ctx context.Context, id uint) (*models.AdminUser, error) {
	var a models.AdminUser
	if err := s.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) CreateAdmin(ctx context.Context, a *models.AdminUser) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

func (s *Store) UpdateAdmin(ctx context.Context, a *models.AdminUser) error {
	return s.DB.WithContext(ctx).Save(a).Error
}

func (s *Store) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

func (s *Store) ListAuditLogs(ctx context.Context, page, size int) ([]models.AuditLog, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.AuditLog{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := util.Paginate(page, size)
	var logs []models.AuditLog
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
