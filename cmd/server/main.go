package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/config"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/api"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/api/handler"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/gateway"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/repository"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/service"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/database"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/logger"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/tracing"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
    cfg := must(config.Load())
    if err := logger.Init(cfg.LogLevel); err != nil {
        panic(err)
    }
    defer logger.Sync()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        } else {
            defer sentry.Flush(2 * time.Second)
        }
    }

    ctx := context.Background()
    shutdownTracing := must(tracing.Init(ctx, "aristaya-backend", cfg.Otel.Endpoint))
    defer func() { _ = shutdownTracing(ctx) }()

    db := must(database.InitDB(cfg))

    var rdb *redis.Client
    if cfg.Redis.Addr != "" {
        rdb = redis.NewClient(&redis.Options{
            Addr:     cfg.Redis.Addr,
            Password: cfg.Redis.Password,
            DB:       cfg.Redis.DB,
        })
    }

    // repositories & services
    orderRepo := repository.NewOrderRepository(db)
    productRepo := repository.NewProductRepository(db)
    cartRepo := repository.NewCartRepository(db)
    detailsCache := repository.NewDetailsCache(rdb, 10*time.Minute)

    gwClient := gateway.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
    mailer := service.NewMailer(cfg.SMTP)
    pipeline := service.NewSideEffectPipeline(productRepo, cartRepo, mailer, service.NewPDFRenderer(), cfg.Checkout.ShippingCharge)

    checkoutSvc := service.NewCheckoutService(orderRepo, productRepo, gwClient, cfg.Checkout.ShippingCharge, cfg.Checkout.Currency)
    settlementSvc := service.NewSettlementService(orderRepo, pipeline, detailsCache)
    detailsSvc := service.NewDetailsService(orderRepo, productRepo, detailsCache, cfg.Checkout.ShippingCharge)

    h := handler.New(checkoutSvc, settlementSvc, detailsSvc, handler.Options{
        KeyID:         cfg.Razorpay.KeyID,
        KeySecret:     cfg.Razorpay.KeySecret,
        WebhookSecret: cfg.Razorpay.WebhookSecret,
        SuccessURL:    cfg.Frontend.PaymentSuccessURL,
        FailURL:       cfg.Frontend.PaymentFailURL,
        Currency:      cfg.Checkout.Currency,
    })

    srv := &http.Server{
        Addr:    cfg.Server.Addr,
        Handler: api.NewRouter(cfg, h),
    }

    go func() {
        logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Error("server exited", zap.Error(err))
        }
    }()

    quit := make(chan os.Signal, 1)
    signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
    <-quit

    logger.Info("shutting down")
    shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error("graceful shutdown failed", zap.Error(err))
    }
}
