// Package search fronts the Elasticsearch product index. Every call degrades
// to a DB LIKE query when the cluster is unavailable, so search never takes
// the storefront down with it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

const Index = "products"

type Service struct {
	ES    *elasticsearch.Client
	Store *store.Store
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	if url == "" {
		return nil, nil
	}
	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("search: create client: %w", err)
	}
	return client, nil
}

// IndexProduct upserts one product document. Called after admin writes;
// failures are logged by the caller, never fatal.
func (s *Service) IndexProduct(ctx context.Context, p *models.Product) error {
	if s.ES == nil {
		return nil
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := s.ES.Index(
		Index,
		bytes.NewReader(doc),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(fmt.Sprint(p.ID)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if s.ES == nil {
		return nil
	}
	res, err := s.ES.Delete(Index, fmt.Sprint(id), s.ES.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return nil
}

// Search runs a fuzzy multi-match over name and description. Inactive
// products are filtered in the query itself.
func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if s.ES == nil {
		return s.dbFallback(ctx, query, from, size)
	}

	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"name^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"is_active": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		logging.FromContext(ctx).Warn("search_fallback", "error", err)
		return s.dbFallback(ctx, query, from, size)
	}
	defer res.Body.Close()
	if res.IsError() {
		logging.FromContext(ctx).Warn("search_fallback", "status", res.Status())
		return s.dbFallback(ctx, query, from, size)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

func (s *Service) dbFallback(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	page := from/max(size, 1) + 1
	items, total, err := s.Store.ListProducts(ctx, store.ProductFilter{
		Query: strings.TrimSpace(query),
		Page:  page,
		Size:  size,
	})
	return total, items, err
}
