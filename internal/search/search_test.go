package search

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return &Service{Store: store.New(db)}
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Store.DB.Create(&models.Product{
		Name: "linen shirt", Slug: "linen-shirt", Description: "breezy", Price: 200, Stock: 5, IsActive: true,
	}).Error)
	require.NoError(t, s.Store.DB.Create(&models.Product{
		Name: "hidden linen", Slug: "hidden-linen", Price: 100, Stock: 5, IsActive: false,
	}).Error)

	total, products, err := s.Search(ctx, "linen", 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	require.Equal(t, "linen shirt", products[0].Name)
}

func TestIndexAndDeleteNoopWithoutCluster(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.IndexProduct(ctx, &models.Product{ID: 1, Name: "x"}))
	require.NoError(t, s.DeleteProduct(ctx, 1))
}

func TestNewClientWithoutURL(t *testing.T) {
	client, err := NewClient("", "", "")
	require.NoError(t, err)
	require.Nil(t, client)
}
