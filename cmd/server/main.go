package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/reweara/api/internal/config"
	"github.com/reweara/api/internal/events"
	"github.com/reweara/api/internal/gemini"
	"github.com/reweara/api/internal/handlers"
	"github.com/reweara/api/internal/handlers/admin"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/mailer"
	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/payments"
	"github.com/reweara/api/internal/search"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/service/checkout"
	"github.com/reweara/api/internal/store"
	httpserver "github.com/reweara/api/internal/transport/http"
	"github.com/reweara/api/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	// A misconfigured process keeps serving the health endpoints so an
	// operator can see what is wrong instead of watching a crash loop.
	var db *gorm.DB
	if verr := cfg.Validate(); verr != nil {
		logger.Error("configuration invalid, starting degraded", "error", verr)
	} else {
		db, err = config.OpenDB(cfg)
		if err != nil {
			logger.Error("database unavailable, starting degraded", "error", err)
		}
	}

	producer := events.NewProducer(cfg.KafkaAddress)
	defer producer.Close()

	esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search falls back to database", "error", err)
		esClient = nil
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Validator = validation.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(cfg.IsProduction())

	deps := buildDeps(cfg, db, producer, esClient)
	httpserver.Register(e, deps)

	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.Port, "env", cfg.Env)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func buildDeps(cfg *config.Config, db *gorm.DB, producer *events.Producer, esClient *elasticsearch.Client) *httpserver.Deps {
	if db == nil {
		return &httpserver.Deps{Ready: func() bool { return false }}
	}

	st := store.New(db)
	sessions := middleware.NewSessions(cfg.SessionSecret, cfg.IsProduction())
	searchSvc := &search.Service{ES: esClient, Store: st}

	mail := &mailer.Mailer{
		Store:     st,
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.FromEmail,
		FromName:  "ReWeara",
	}
	pay := &payments.Service{Store: st, EnvKey: cfg.StripeSecretKey}
	gem := &gemini.Client{Store: st, EnvKey: cfg.GeminiAPIKey}

	authSvc := &adminauth.Service{
		Store:     st,
		JWTSecret: []byte(cfg.JWTSecret),
		Producer:  producer,
	}
	checkoutSvc := &checkout.Service{
		Store:    st,
		Payments: pay,
		Mailer:   mail,
		Producer: producer,
		Pricing: store.Pricing{
			TaxRate:           cfg.TaxRate,
			ShippingFee:       cfg.ShippingFee,
			FreeShippingAbove: cfg.FreeShippingAbove,
		},
	}

	return &httpserver.Deps{
		Sessions:  sessions,
		AdminAuth: authSvc,

		Auth:      &handlers.AuthHandler{Store: st, Sessions: sessions},
		Products:  &handlers.ProductHandler{Store: st, Search: searchSvc},
		Catalog:   &handlers.CatalogHandler{Store: st},
		Cart:      &handlers.CartHandler{Store: st},
		Wishlist:  &handlers.WishlistHandler{Store: st},
		Orders:    &handlers.OrderHandler{Store: st, Checkout: checkoutSvc},
		Contact:   &handlers.ContactHandler{Store: st, Mailer: mail},
		Recommend: &handlers.RecommendHandler{Store: st, Gemini: gem},

		AdminAuthH:     &admin.AuthHandler{Svc: authSvc, Store: st},
		AdminProducts:  &admin.ProductHandler{Store: st, Search: searchSvc, Auth: authSvc, Producer: producer},
		AdminCatalog:   &admin.CatalogHandler{Store: st, Auth: authSvc},
		AdminCoupons:   &admin.CouponHandler{Store: st, Auth: authSvc},
		AdminContent:   &admin.ContentHandler{Store: st, Auth: authSvc},
		AdminOrders:    &admin.OrderHandler{Store: st, Auth: authSvc},
		AdminSettings:  &admin.SettingsHandler{Store: st, Auth: authSvc},
		AdminDashboard: &admin.DashboardHandler{Store: st},

		Ready: func() bool { return true },
	}
}
