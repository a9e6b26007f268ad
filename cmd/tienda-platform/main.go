package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joaquinrv/tienda-platform/internal/api/handlers"
	"github.com/joaquinrv/tienda-platform/internal/api/middleware"
	"github.com/joaquinrv/tienda-platform/internal/cache"
	"github.com/joaquinrv/tienda-platform/internal/config"
	"github.com/joaquinrv/tienda-platform/internal/health"
	"github.com/joaquinrv/tienda-platform/internal/metrics"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	service "github.com/joaquinrv/tienda-platform/internal/services"
	"github.com/joaquinrv/tienda-platform/internal/telemetry"
	"github.com/joaquinrv/tienda-platform/pkg/email"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup (runs migrations when configured)
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
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	catalogCache := cache.NewRedisCache(redisClient)

	var emailService email.Service
	if cfg.SendGrid.APIKey != "" {
		emailService = email.NewSendGridService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, catalogCache, cfg.Cache.CatalogTTL)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	checkoutService := service.NewCheckoutService(repos.Sale, repos.User, emailService, cfg.Checkout.RemoveSoldOut)
	cartHandler := handlers.NewCartHandler(cartService, checkoutService)
	saleService := service.NewSaleService(repos.Sale)
	saleHandler := handlers.NewSaleHandler(saleService)
	branchService := service.NewBranchService(repos.Branch)
	branchHandler := handlers.NewBranchHandler(branchService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	admin := func(next http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, next))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/users/funds", authMiddleware.Authenticate(userHandler.TopUpFunds()))
	routerMux.HandleFunc("GET /api/v1/admin/users", admin(userHandler.ListUsers()))
	routerMux.HandleFunc("GET /api/v1/admin/users/{id}", admin(userHandler.GetUser()))
	routerMux.HandleFunc("PUT /api/v1/admin/users/{id}", admin(userHandler.UpdateUser()))
	routerMux.HandleFunc("DELETE /api/v1/admin/users/{id}", admin(userHandler.DeleteUser()))
	routerMux.HandleFunc("PUT /api/v1/admin/users/{id}/funds", admin(userHandler.SetFunds()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/add", cartHandler.AddItem())
	routerMux.HandleFunc("POST /api/v1/cart/remove", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/checkout", authMiddleware.Authenticate(cartHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/sales", admin(saleHandler.ListSales()))
	routerMux.HandleFunc("GET /api/v1/sales/{id}", admin(saleHandler.GetSale()))
	routerMux.HandleFunc("GET /api/v1/my-sales", authMiddleware.Authenticate(saleHandler.ListMySales()))
	routerMux.HandleFunc("GET /api/v1/my-sales/{id}", authMiddleware.Authenticate(saleHandler.GetSale()))
	routerMux.HandleFunc("GET /api/v1/stats/sales-by-product", admin(saleHandler.SalesByProduct()))
	routerMux.HandleFunc("GET /api/v1/branches", branchHandler.ListBranches())
	routerMux.HandleFunc("POST /api/v1/branches", admin(branchHandler.CreateBranch()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /healthz", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.CartSession(handler)
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "tienda-platform")

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

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

}
