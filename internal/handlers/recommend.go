package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/gemini"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

// RecommendHandler asks Gemini for styling suggestions over the active
// catalog. Without an API key it degrades to the featured listing, so the
// page never breaks.
type RecommendHandler struct {
	Store  *store.Store
	Gemini *gemini.Client
}

func (h *RecommendHandler) Recommend(c echo.Context) error {
	ctx := c.Request().Context()

	products, _, err := h.Store.ListProducts(ctx, store.ProductFilter{Page: 1, Size: 30})
	if err != nil {
		return storeError(err)
	}

	query := c.QueryParam("style")
	prompt := buildPrompt(query, products)

	text, err := h.Gemini.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, gemini.ErrNotConfigured) {
			logging.FromContext(ctx).Warn("gemini_failed", "error", err)
		}
		featured, _, ferr := h.Store.ListProducts(ctx, store.ProductFilter{Featured: true, Page: 1, Size: 6})
		if ferr != nil {
			return storeError(ferr)
		}
		return c.JSON(http.StatusOK, echo.Map{"source": "featured", "products": featured})
	}

	return c.JSON(http.StatusOK, echo.Map{"source": "ai", "text": text})
}

func buildPrompt(style string, products []models.Product) string {
	var b strings.Builder
	b.WriteString("You are a sustainable-fashion stylist for a thrift store. ")
	if style != "" {
		fmt.Fprintf(&b, "The shopper is looking for: %s. ", style)
	}
	b.WriteString("Recommend up to five items from this catalog, with one sentence each:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%.2f): %s\n", p.Name, p.Price, p.Description)
	}
	return b.String()
}
