package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/afos-pos/docs"
	"github.com/aaravmahajanofficial/afos-pos/internal/api/handlers"
	"github.com/aaravmahajanofficial/afos-pos/internal/api/middleware"
	"github.com/aaravmahajanofficial/afos-pos/internal/assistant"
	"github.com/aaravmahajanofficial/afos-pos/internal/cache"
	"github.com/aaravmahajanofficial/afos-pos/internal/catalog"
	"github.com/aaravmahajanofficial/afos-pos/internal/checkout"
	"github.com/aaravmahajanofficial/afos-pos/internal/config"
	"github.com/aaravmahajanofficial/afos-pos/internal/health"
	"github.com/aaravmahajanofficial/afos-pos/internal/metrics"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/receipt"
	repository "github.com/aaravmahajanofficial/afos-pos/internal/repositories"
	service "github.com/aaravmahajanofficial/afos-pos/internal/services"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
	"github.com/aaravmahajanofficial/afos-pos/internal/telemetry"
	"github.com/aaravmahajanofficial/afos-pos/pkg/sendGrid"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const sessionSweepInterval = time.Minute

//	@title						AFOS POS API
//	@version					1.0
//	@description				Self-service storefront for the Armed Forces Shop: quota-gated cart and a simulated payment flow ending in a printed receipt.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Tracing
	shutdownTracer, err := telemetry.InitTracer(ctx, &cfg.Otel, health.Version)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup: login throttling and the receipt cache
	var (
		redisClient *redis.Client
		limiter     = repository.NewAllowAllRateLimiter(cfg.RateConfig.MaxAttempts)
		receipts    cache.Cache = cache.Noop{}
	)

	if cfg.RedisConnect.Enabled() {
		redisClient, err = repository.NewRedisClient(&cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		limiter = repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)
		receipts = cache.NewRedisCache(redisClient, &cfg.Cache)
	} else {
		slog.Warn("⚠️ Redis not configured: login throttling and receipt cache disabled")
	}

	// Receipt outputs: the till spool always, then the archive and e-mail copies when configured
	if err := os.MkdirAll(cfg.Receipts.SpoolDir, 0o755); err != nil {
		slog.Error("❌ Error creating receipt spool", slog.String("dir", cfg.Receipts.SpoolDir), slog.String("error", err.Error()))
		os.Exit(1)
	}

	printers := []receipt.Printer{receipt.NewSpoolPrinter(cfg.Receipts.SpoolDir)}

	var repos *repository.Repository
	var archive repository.ReceiptRepository

	if cfg.Database.Enabled() {
		repos, err = repository.New(&cfg.Database)
		if err != nil {
			slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		if err := repos.RunMigrations(); err != nil {
			slog.Error("❌ Error running migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		archive = repos.Receipts
		printers = append(printers, repository.NewArchivePrinter(repos.Receipts))
	} else {
		slog.Warn("⚠️ Database not configured: receipts are not archived")
	}

	if cfg.SendGrid.Enabled() {
		mailer := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		printers = append(printers, receipt.NewEmailPrinter(mailer, cfg.SendGrid.ReceiptTo))
	}

	// Catalog
	products := catalog.Default()
	if cfg.Catalog.Path != "" {
		products, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			slog.Error("❌ Error loading catalog", slog.String("path", cfg.Catalog.Path), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	slog.Info("Catalog loaded", slog.Int("products", products.Len()))

	// Sessions and the checkout machine
	if cfg.Auth.SessionTTL >= checkout.TransactionIDWindow {
		slog.Warn("Session TTL outlasts transaction id uniqueness",
			slog.Duration("sessionTTL", cfg.Auth.SessionTTL),
			slog.Duration("window", checkout.TransactionIDWindow))
	}

	store := session.NewMemoryStore(cfg.Auth.SessionTTL, nil)
	go store.Run(ctx, sessionSweepInterval)

	machine := checkout.NewMachine(
		checkout.Config{
			ProcessingDwell: cfg.Checkout.ProcessingDwell,
			SuccessDwell:    cfg.Checkout.SuccessDwell,
		},
		checkout.WithTransitionHook(func(a *checkout.Attempt, from, to models.CheckoutState) {
			metrics.ObserveTransition(to)
			slog.Info("Checkout transition",
				slog.String("receiptId", a.Snapshot().ReceiptID),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		}),
	)

	// Services
	sessionService, err := service.NewSessionService(store, limiter, &cfg.Auth)
	if err != nil {
		slog.Error("❌ Error configuring sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalogService := service.NewCatalogService(products)
	cartService := service.NewCartService(products)
	scanService := service.NewScanService(products, cartService, nil)
	checkoutService := service.NewCheckoutService(service.CheckoutDependencies{
		Machine:  machine,
		Printer:  receipt.NewDispatcher(printers...),
		Cache:    receipts,
		Archive:  archive,
		Sessions: store,
		Store: receipt.StoreInfo{
			Name:    cfg.Store.Name,
			Tagline: cfg.Store.Tagline,
			Website: cfg.Store.Website,
			Support: cfg.Store.Support,
		},
		ReceiptTTL: cfg.Receipts.CacheTTL,
	})
	assistantService := service.NewAssistantService(assistant.NewGeminiClient(cfg.Assistant, products.Describe()))

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessionService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	scanHandler := handlers.NewScanHandler(scanService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	authMiddleware := middleware.NewAuthMiddleware(sessionService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error configuring health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", health.Version))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/sessions", sessionHandler.Login())
	routerMux.HandleFunc("GET /api/v1/sessions/me", authMiddleware.Authenticate(sessionHandler.Summary()))
	routerMux.HandleFunc("DELETE /api/v1/sessions/me", authMiddleware.Authenticate(sessionHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/products", authMiddleware.Authenticate(catalogHandler.ListProducts()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", authMiddleware.Authenticate(catalogHandler.GetProduct()))
	routerMux.HandleFunc("GET /api/v1/discounts", authMiddleware.Authenticate(catalogHandler.Discounts()))
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.Categories())
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{lineId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{lineId}", authMiddleware.Authenticate(cartHandler.RemoveLine()))
	routerMux.HandleFunc("POST /api/v1/scan", authMiddleware.Authenticate(scanHandler.Scan()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Start()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Current()))
	routerMux.HandleFunc("POST /api/v1/checkout/cancel", authMiddleware.Authenticate(checkoutHandler.Cancel()))
	routerMux.HandleFunc("POST /api/v1/checkout/finalize", authMiddleware.Authenticate(checkoutHandler.Finalize()))
	routerMux.HandleFunc("GET /api/v1/receipts/{id}", checkoutHandler.Receipt())
	routerMux.HandleFunc("POST /api/v1/assistant/messages", authMiddleware.Authenticate(assistantHandler.Ask()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "afos-pos")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
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

	stop()
	store.Close()

	if err := receipts.Close(); err != nil {
		slog.Error("⚠️ Error closing receipt cache", slog.String("error", err.Error()))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}

	if repos != nil {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}
}
