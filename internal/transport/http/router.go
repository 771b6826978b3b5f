package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/handlers"
	"github.com/reweara/api/internal/handlers/admin"
	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/service/adminauth"
)

type Deps struct {
	Sessions  *middleware.Sessions
	AdminAuth *adminauth.Service

	Auth      *handlers.AuthHandler
	Products  *handlers.ProductHandler
	Catalog   *handlers.CatalogHandler
	Cart      *handlers.CartHandler
	Wishlist  *handlers.WishlistHandler
	Orders    *handlers.OrderHandler
	Contact   *handlers.ContactHandler
	Recommend *handlers.RecommendHandler

	AdminAuthH     *admin.AuthHandler
	AdminProducts  *admin.ProductHandler
	AdminCatalog   *admin.CatalogHandler
	AdminCoupons   *admin.CouponHandler
	AdminContent   *admin.ContentHandler
	AdminOrders    *admin.OrderHandler
	AdminSettings  *admin.SettingsHandler
	AdminDashboard *admin.DashboardHandler

	// Ready reports whether the database is reachable; when false every
	// /api route answers 503 while health/live stays 200.
	Ready func() bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil && !d.Ready() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/api", degradedGuard(d))

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/logout", d.Auth.Logout)
	api.GET("/auth/me", d.Auth.Me, d.Sessions.RequireUser)

	api.GET("/products", d.Products.List)
	api.GET("/products/search", d.Products.SearchProducts)
	api.GET("/products/:id", d.Products.Get)
	api.GET("/categories", d.Catalog.ListCategories)
	api.GET("/brands", d.Catalog.ListBrands)
	api.GET("/banners", d.Catalog.ListBanners)
	api.GET("/popups", d.Catalog.ListPopups)
	api.GET("/recommendations", d.Recommend.Recommend)
	api.POST("/contact", d.Contact.Submit)

	cart := api.Group("/cart", d.Sessions.RequireUser)
	cart.GET("", d.Cart.Get)
	cart.POST("", d.Cart.Add)
	cart.PATCH("/:id", d.Cart.Update)
	cart.DELETE("/:id", d.Cart.Remove)
	cart.DELETE("", d.Cart.Clear)

	wishlist := api.Group("/wishlist", d.Sessions.RequireUser)
	wishlist.GET("", d.Wishlist.Get)
	wishlist.POST("", d.Wishlist.Add)
	wishlist.DELETE("/:id", d.Wishlist.Remove)

	orders := api.Group("/orders", d.Sessions.RequireUser)
	orders.POST("", d.Orders.Create)
	orders.GET("", d.Orders.List)
	orders.GET("/:id", d.Orders.Get)
	orders.GET("/:id/pdf", d.Orders.InvoicePDF)
	api.POST("/coupons/validate", d.Orders.ValidateCoupon, d.Sessions.RequireUser)

	adm := api.Group("/admin")
	adm.POST("/auth/login", d.AdminAuthH.Login)

	protected := adm.Group("", middleware.RequireAdmin(d.AdminAuth))
	protected.GET("/auth/me", d.AdminAuthH.Me)
	protected.POST("/auth/2fa/setup", d.AdminAuthH.SetupTOTP)
	protected.POST("/auth/2fa/enable", d.AdminAuthH.EnableTOTP)
	protected.POST("/auth/2fa/disable", d.AdminAuthH.DisableTOTP)

	protected.GET("/dashboard", d.AdminDashboard.Stats)
	protected.GET("/audit-logs", d.AdminDashboard.AuditLogs)
	protected.GET("/contact-messages", d.AdminDashboard.ContactMessages)

	protected.GET("/products", d.AdminProducts.List)
	protected.GET("/products/export", d.AdminProducts.ExportXLSX)
	protected.GET("/products/:id", d.AdminProducts.Get)
	protected.POST("/products", d.AdminProducts.Create)
	protected.PUT("/products/:id", d.AdminProducts.Update)
	protected.DELETE("/products/:id", d.AdminProducts.Delete)

	protected.GET("/categories", d.AdminCatalog.ListCategories)
	protected.POST("/categories", d.AdminCatalog.CreateCategory)
	protected.PUT("/categories/:id", d.AdminCatalog.UpdateCategory)
	protected.DELETE("/categories/:id", d.AdminCatalog.DeleteCategory)

	protected.GET("/brands", d.AdminCatalog.ListBrands)
	protected.POST("/brands", d.AdminCatalog.CreateBrand)
	protected.PUT("/brands/:id", d.AdminCatalog.UpdateBrand)
	protected.DELETE("/brands/:id", d.AdminCatalog.DeleteBrand)

	protected.GET("/coupons", d.AdminCoupons.List)
	protected.POST("/coupons", d.AdminCoupons.Create)
	protected.PUT("/coupons/:id", d.AdminCoupons.Update)
	protected.DELETE("/coupons/:id", d.AdminCoupons.Delete)

	protected.GET("/banners", d.AdminContent.ListBanners)
	protected.POST("/banners", d.AdminContent.CreateBanner)
	protected.PUT("/banners/:id", d.AdminContent.UpdateBanner)
	protected.DELETE("/banners/:id", d.AdminContent.DeleteBanner)

	protected.GET("/popups", d.AdminContent.ListPopups)
	protected.POST("/popups", d.AdminContent.CreatePopup)
	protected.PUT("/popups/:id", d.AdminContent.UpdatePopup)
	protected.DELETE("/popups/:id", d.AdminContent.DeletePopup)

	protected.GET("/orders", d.AdminOrders.List)
	protected.GET("/orders/:id", d.AdminOrders.Get)
	protected.PATCH("/orders/:id/status", d.AdminOrders.UpdateStatus)
	protected.GET("/orders/:id/pdf", d.AdminOrders.InvoicePDF)

	protected.GET("/settings/payment", d.AdminSettings.GetPayment)
	protected.PUT("/settings/payment", d.AdminSettings.UpdatePayment)
	protected.GET("/settings/integrations", d.AdminSettings.GetIntegration)
	protected.PUT("/settings/integrations", d.AdminSettings.UpdateIntegration)
	protected.GET("/settings/analytics", d.AdminSettings.GetAnalytics)
	protected.PUT("/settings/analytics", d.AdminSettings.UpdateAnalytics)
}

func degradedGuard(d *Deps) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d.Ready != nil && !d.Ready() {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "service is starting or degraded")
			}
			return next(c)
		}
	}
}
