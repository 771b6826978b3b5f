package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweara/api/internal/models"
)

func TestListProductsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedProduct(t, s, models.Product{Name: "linen shirt", Description: "breezy linen", Price: 200, Stock: 5, CategoryID: 1, IsActive: true})
	seedProduct(t, s, models.Product{Name: "denim jacket", Price: 300, Stock: 2, CategoryID: 2, IsThrift: true, IsFeatured: true, IsActive: true})
	seedProduct(t, s, models.Product{Name: "hidden", Price: 50, Stock: 1, CategoryID: 1, IsActive: false})

	all, total, err := s.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, all, 2)

	thrift, _, err := s.ListProducts(ctx, ProductFilter{Thrift: true})
	require.NoError(t, err)
	require.Len(t, thrift, 1)
	require.Equal(t, "denim jacket", thrift[0].Name)

	byCat, _, err := s.ListProducts(ctx, ProductFilter{CategoryID: 1})
	require.NoError(t, err)
	require.Len(t, byCat, 1)

	byQuery, _, err := s.ListProducts(ctx, ProductFilter{Query: "linen"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	require.Equal(t, "linen shirt", byQuery[0].Name)
}

func TestDeactivateProductKeepsItResolvable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "vest", Slug: "vest", Price: 120, Stock: 3, IsActive: true})
	require.NoError(t, s.DeactivateProduct(ctx, p.ID))

	// gone from public listings and slug lookups
	listed, _, err := s.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Empty(t, listed)
	_, err = s.GetProductBySlug(ctx, "vest")
	require.ErrorIs(t, err, ErrNotFound)

	// still reachable by ID for order history and the admin console
	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	admin, total, err := s.ListAllProducts(ctx, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, admin, 1)
}

func TestDeactivateProductMissing(t *testing.T) {
	s := newTestStore(t)
	require.ErrorIs(t, s.DeactivateProduct(context.Background(), 42), ErrNotFound)
}

func TestDeleteCategoryWithActiveProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := models.Category{Name: "Outerwear", Slug: "outerwear", IsActive: true}
	require.NoError(t, s.DB.Create(&cat).Error)
	seedProduct(t, s, models.Product{Name: "parka", Price: 900, Stock: 1, CategoryID: cat.ID, IsActive: true})

	require.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), ErrHasDependents)

	// retiring the product unblocks the delete
	require.NoError(t, s.DB.Model(&models.Product{}).Where("category_id = ?", cat.ID).Update("is_active", false).Error)
	require.NoError(t, s.DeleteCategory(ctx, cat.ID))

	var count int64
	s.DB.Model(&models.Category{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "beanie", Price: 80, Stock: 7, IsActive: true})
	_, err := s.AddToWishlist(ctx, 1, p.ID)
	require.NoError(t, err)
	_, err = s.AddToWishlist(ctx, 1, p.ID)
	require.NoError(t, err)

	var count int64
	s.DB.Model(&models.WishlistItem{}).Where("user_id = ?", 1).Count(&count)
	require.EqualValues(t, 1, count)
}
