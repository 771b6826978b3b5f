package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reweara/api/internal/events"
	"github.com/reweara/api/internal/mailer"
	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/service/checkout"
	"github.com/reweara/api/internal/store"
	"github.com/reweara/api/internal/validation"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	Store    *store.Store
	Sessions *middleware.Sessions
	Checkout *checkout.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	st := store.New(db)
	e := echo.New()
	e.Validator = validation.New()

	return &testEnv{
		T:        t,
		E:        e,
		Store:    st,
		Sessions: middleware.NewSessions("test-secret", false),
		Checkout: &checkout.Service{
			Store:    st,
			Mailer:   &mailer.Mailer{Store: st, FromEmail: "test@reweara.example", FromName: "ReWeara"},
			Producer: events.NewProducer(""),
			Pricing:  store.Pricing{TaxRate: 0.05, ShippingFee: 49, FreeShippingAbove: 999},
		},
	}
}

func (env *testEnv) doJSON(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func asUser(c echo.Context, userID uint) {
	c.Set("current_user_id", userID)
}

func (env *testEnv) seedProduct(p models.Product) models.Product {
	env.T.Helper()
	if p.Slug == "" {
		p.Slug = p.Name
	}
	require.NoError(env.T, env.Store.DB.Create(&p).Error)
	return p
}

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Store: env.Store, Sessions: env.Sessions}

	rec, c := env.doJSON(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "eco@reweara.example", "password": "longenough", "first_name": "Eco",
	})
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotContains(t, rec.Body.String(), "password")

	rec, c = env.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "eco@reweara.example", "password": "longenough",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, c = env.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "eco@reweara.example", "password": "wrongwrong",
	})
	err := h.Login(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)

	rec, c = env.doJSON(http.MethodGet, "/api/auth/me", nil)
	asUser(c, 1)
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{Store: env.Store, Sessions: env.Sessions}

	body := map[string]string{"email": "eco@reweara.example", "password": "longenough", "first_name": "Eco"}
	_, c := env.doJSON(http.MethodPost, "/api/auth/register", body)
	require.NoError(t, h.Register(c))

	_, c = env.doJSON(http.MethodPost, "/api/auth/register", body)
	err := h.Register(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusConflict, he.Code)
}

func TestProductListHidesInactive(t *testing.T) {
	env := newTestEnv(t)
	h := &ProductHandler{Store: env.Store}

	env.seedProduct(models.Product{Name: "visible", Price: 100, Stock: 5, IsActive: true})
	env.seedProduct(models.Product{Name: "retired", Price: 100, Stock: 5, IsActive: false})

	rec, c := env.doJSON(http.MethodGet, "/api/products", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp.Meta.Total)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "visible", resp.Data[0].Name)
}

func TestProductGetBySlugAndID(t *testing.T) {
	env := newTestEnv(t)
	h := &ProductHandler{Store: env.Store}

	p := env.seedProduct(models.Product{Name: "numbered", Slug: "numbered-slug", Price: 100, Stock: 5, IsActive: false})

	// inactive products stay reachable by numeric id
	rec, c := env.doJSON(http.MethodGet, "/api/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// but not by slug
	_, c = env.doJSON(http.MethodGet, "/api/products/numbered-slug", nil)
	c.SetParamNames("id")
	c.SetParamValues(p.Slug)
	err := h.Get(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{Store: env.Store}
	p := env.seedProduct(models.Product{Name: "tote", Price: 349, Stock: 10, IsActive: true})

	rec, c := env.doJSON(http.MethodPost, "/api/cart", map[string]uint{"product_id": p.ID, "quantity": 2})
	asUser(c, 1)
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSON(http.MethodGet, "/api/cart", nil)
	asUser(c, 1)
	require.NoError(t, h.Get(c))
	var lines []store.CartLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	require.Equal(t, uint(2), lines[0].Quantity)

	rec, c = env.doJSON(http.MethodPatch, "/api/cart/1", map[string]uint{"quantity": 0})
	asUser(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSON(http.MethodGet, "/api/cart", nil)
	asUser(c, 1)
	require.NoError(t, h.Get(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	require.Empty(t, lines)
}

func TestCheckoutHandlerCreatesOrder(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.Store, Checkout: env.Checkout}

	require.NoError(t, env.Store.DB.Create(&models.User{Email: "eco@reweara.example", PasswordHash: "x"}).Error)
	p := env.seedProduct(models.Product{Name: "jacket", Price: 300, Stock: 5, IsActive: true})
	require.NoError(t, env.Store.DB.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1}).Error)

	rec, c := env.doJSON(http.MethodPost, "/api/orders", map[string]string{
		"shipping_address": "12 Green Lane", "payment_method": "cod",
	})
	asUser(c, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var res checkout.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 364.0, res.Order.Total) // 300 + 15 tax + 49 shipping
	require.Nil(t, res.Intent)
}

func TestCheckoutHandlerRejectsBadPaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.Store, Checkout: env.Checkout}

	_, c := env.doJSON(http.MethodPost, "/api/orders", map[string]string{
		"shipping_address": "12 Green Lane", "payment_method": "barter",
	})
	asUser(c, 1)
	err := h.Create(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestValidateCoupon(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.Store, Checkout: env.Checkout}

	p := env.seedProduct(models.Product{Name: "dress", Price: 400, Stock: 3, IsActive: true})
	require.NoError(t, env.Store.DB.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1}).Error)
	require.NoError(t, env.Store.DB.Create(&models.Coupon{
		Code: "SAVE10", Type: models.CouponTypePercent, Value: 10, IsActive: true,
	}).Error)

	rec, c := env.doJSON(http.MethodPost, "/api/coupons/validate", map[string]string{"code": "save10"})
	asUser(c, 1)
	require.NoError(t, h.ValidateCoupon(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "SAVE10", resp["code"])
	require.Equal(t, 40.0, resp["discount"])
}

func TestInvoicePDFOwnership(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.Store, Checkout: env.Checkout}

	require.NoError(t, env.Store.DB.Create(&models.User{Email: "eco@reweara.example", PasswordHash: "x"}).Error)
	p := env.seedProduct(models.Product{Name: "jacket", Price: 300, Stock: 5, IsActive: true})
	require.NoError(t, env.Store.DB.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1}).Error)

	rec, c := env.doJSON(http.MethodPost, "/api/orders", map[string]string{
		"shipping_address": "12 Green Lane", "payment_method": "cod",
	})
	asUser(c, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSON(http.MethodGet, "/api/orders/1/pdf", nil)
	asUser(c, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.InvoicePDF(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "invoice-")

	// another user cannot pull it
	_, c = env.doJSON(http.MethodGet, "/api/orders/1/pdf", nil)
	asUser(c, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.InvoicePDF(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusNotFound, he.Code)
}
