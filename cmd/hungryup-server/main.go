package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hungryup/hungryup-backend/internal/api/handlers"
	"github.com/hungryup/hungryup-backend/internal/api/middleware"
	"github.com/hungryup/hungryup-backend/internal/config"
	"github.com/hungryup/hungryup-backend/internal/health"
	"github.com/hungryup/hungryup-backend/internal/metrics"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	service "github.com/hungryup/hungryup-backend/internal/services"
	"github.com/hungryup/hungryup-backend/internal/telemetry"
	"github.com/hungryup/hungryup-backend/pkg/sendGrid"
	"github.com/hungryup/hungryup-backend/pkg/stripe"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("error accessing the database", slog.Any("error", err))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("error closing database connection", slog.Any("error", err))
		}
	}()

	if err := repos.EnsureSchema(context.Background()); err != nil {
		slog.Error("error applying database schema", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("error accessing the redis instance", slog.Any("error", err))
		os.Exit(1)
	}

	stripeClient := stripe.NewStripeClient(stripe.Config{
		APIKey:        cfg.Stripe.APIKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Currency:      cfg.Stripe.Currency,
		SuccessURL:    cfg.Stripe.SuccessURL,
		CancelURLBase: cfg.Stripe.CancelURLBase,
		ShipCountry:   cfg.Stripe.ShipCountry,
		ExpressFee:    cfg.Stripe.ExpressFee,
	})

	sendGridClient := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	userService := service.NewUserService(repos.User, repos.Cart, rateLimitRepo, &cfg.Security)
	userHandler := handlers.NewUserHandler(userService)
	catalogService := service.NewCatalogService(repos.Product)
	productHandler := handlers.NewProductHandler(catalogService)
	cartService := service.NewCartService(repos.Cart)
	cartHandler := handlers.NewCartHandler(cartService)
	notificationService := service.NewNotificationService(repos.Notification, sendGridClient)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.User, stripeClient, notificationService)
	orderHandler := handlers.NewOrderHandler(orderService, stripeClient)
	reviewService := service.NewReviewService(repos.Review)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("error building health checks", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/users/{id}", userHandler.GetUser())
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpsertItem()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{id}", authMiddleware.Authenticate(cartHandler.DeleteItem()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", orderHandler.Webhook())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/best-rated", productHandler.BestRated())
	routerMux.HandleFunc("GET /api/v1/products/{slug}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews", productHandler.ProductReviews())
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/tags", productHandler.ListTags())
	routerMux.HandleFunc("POST /api/v1/reviews", authMiddleware.Authenticate(reviewHandler.CreateReview()))
	routerMux.HandleFunc("PUT /api/v1/reviews", authMiddleware.Authenticate(reviewHandler.UpdateReview()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/like", authMiddleware.Authenticate(reviewHandler.LikeProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}/like", authMiddleware.Authenticate(reviewHandler.UnlikeProduct()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "http.server")

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("failed to start server", slog.Any("error", err))
		}
	}()

	<-done

	slog.Warn("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown encountered an issue", slog.Any("error", err))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracer shutdown encountered an issue", slog.Any("error", err))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("error closing redis connection", slog.Any("error", err))
	}
}
