package store

import (
	"context"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/util"
)

func (s *Store) CreateContactMessage(ctx context.Context, m *models.ContactMessage) error {
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *Store) ListContactMessages(ctx context.Context, page, size int) ([]models.ContactMessage, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.ContactMessage{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := util.Paginate(page, size)
	var msgs []models.ContactMessage
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&msgs).Error; err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}
