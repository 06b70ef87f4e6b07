package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgeprints/storefront/internal/alerts"
	"github.com/forgeprints/storefront/internal/api/handlers"
	"github.com/forgeprints/storefront/internal/api/middleware"
	"github.com/forgeprints/storefront/internal/cache"
	"github.com/forgeprints/storefront/internal/config"
	"github.com/forgeprints/storefront/internal/health"
	"github.com/forgeprints/storefront/internal/metrics"
	repository "github.com/forgeprints/storefront/internal/repositories"
	service "github.com/forgeprints/storefront/internal/services"
	"github.com/forgeprints/storefront/internal/telemetry"
	"github.com/forgeprints/storefront/pkg/sendgrid"
	"github.com/forgeprints/storefront/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	if cfg.Telemetry.Enabled {
		shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
		if err != nil {
			slog.Error("❌ Error setting up tracing", "error", err.Error())
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				slog.Error("⚠️ Error shutting down tracing", slog.String("error", err.Error()))
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	cacheClient := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer func() {
		if err := cacheClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	sendGridClient := sendgrid.NewClient(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Ops alerting
	var throttleStore alerts.ThrottleStore
	if cfg.Alerts.UseRedisStore {
		throttleStore = alerts.NewRedisStore(redisClient)
	} else {
		memStore := alerts.NewMemoryStore(time.Minute, cfg.Alerts.ThrottleWindow)
		defer memStore.Stop()
		throttleStore = memStore
	}
	alerter := alerts.NewNotifier(throttleStore, sendGridClient, cfg.SendGrid.OpsEmail, cfg.Alerts.ThrottleWindow)

	// Services
	notificationService := service.NewNotificationService(repos.Notifications, sendGridClient, cfg.SendGrid.OpsEmail)
	couponService := service.NewCouponService(repos.Coupons, cacheClient)
	orderService := service.NewOrderService(repos.Orders, stripeClient, notificationService, alerter)
	productService := service.NewProductService(repos.Products, cacheClient, cfg.Cache.ProductTTL)
	checkoutService := service.NewCheckoutService(repos.Products, couponService, orderService, stripeClient, cfg)
	reviewService := service.NewReviewService(repos.Reviews, repos.Products)
	newsletterService := service.NewNewsletterService(repos.Newsletter, notificationService)
	blogService := service.NewBlogService(repos.Blog)

	// Handlers
	couponHandler := handlers.NewCouponHandler(couponService)
	orderHandler := handlers.NewOrderHandler(orderService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	paymentHandler := handlers.NewPaymentHandler(orderService)
	productHandler := handlers.NewProductHandler(productService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	blogHandler := handlers.NewBlogHandler(blogService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:           repos.DB,
		RedisClient:  redisClient,
		StripeClient: stripeClient,
	})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Storefront
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews", reviewHandler.ListReviews())
	routerMux.HandleFunc("POST /api/v1/products/{id}/reviews", reviewHandler.CreateReview())
	routerMux.HandleFunc("POST /api/v1/coupons/validate", couponHandler.Validate())
	routerMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())
	// Order IDs are unguessable UUIDs, which is what the confirmation page keys on.
	routerMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder())
	routerMux.HandleFunc("POST /api/v1/newsletter/subscribe", newsletterHandler.Subscribe())
	routerMux.HandleFunc("POST /api/v1/newsletter/unsubscribe", newsletterHandler.Unsubscribe())
	routerMux.HandleFunc("GET /api/v1/blog", blogHandler.ListPosts())
	routerMux.HandleFunc("GET /api/v1/blog/{slug}", blogHandler.GetPost())

	// Admin
	routerMux.HandleFunc("GET /api/v1/admin/products", authMiddleware.RequireAdmin(productHandler.ListAllProducts()))
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.RequireAdmin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", authMiddleware.RequireAdmin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", authMiddleware.RequireAdmin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/admin/products/{id}/reviews", authMiddleware.RequireAdmin(reviewHandler.ListPendingReviews()))
	routerMux.HandleFunc("POST /api/v1/admin/reviews/{id}/approve", authMiddleware.RequireAdmin(reviewHandler.ApproveReview()))
	routerMux.HandleFunc("DELETE /api/v1/admin/reviews/{id}", authMiddleware.RequireAdmin(reviewHandler.DeleteReview()))
	routerMux.HandleFunc("GET /api/v1/admin/coupons", authMiddleware.RequireAdmin(couponHandler.ListCoupons()))
	routerMux.HandleFunc("POST /api/v1/admin/coupons", authMiddleware.RequireAdmin(couponHandler.CreateCoupon()))
	routerMux.HandleFunc("PUT /api/v1/admin/coupons/{id}", authMiddleware.RequireAdmin(couponHandler.UpdateCoupon()))
	routerMux.HandleFunc("DELETE /api/v1/admin/coupons/{id}", authMiddleware.RequireAdmin(couponHandler.DeleteCoupon()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", authMiddleware.RequireAdmin(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}", authMiddleware.RequireAdmin(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", authMiddleware.RequireAdmin(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("GET /api/v1/admin/blog", authMiddleware.RequireAdmin(blogHandler.ListAllPosts()))
	routerMux.HandleFunc("POST /api/v1/admin/blog", authMiddleware.RequireAdmin(blogHandler.CreatePost()))
	routerMux.HandleFunc("PUT /api/v1/admin/blog/{slug}", authMiddleware.RequireAdmin(blogHandler.UpdatePost()))
	routerMux.HandleFunc("GET /api/v1/admin/notifications", authMiddleware.RequireAdmin(notificationHandler.ListNotifications()))

	// Ops
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, "storefront")
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
