package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/catalog"
	"github.com/ariefcatur/go-restaurant-orders/internal/config"
	"github.com/ariefcatur/go-restaurant-orders/internal/events"
	"github.com/ariefcatur/go-restaurant-orders/internal/gateway"
	"github.com/ariefcatur/go-restaurant-orders/internal/httpx"
	"github.com/ariefcatur/go-restaurant-orders/internal/images"
	"github.com/ariefcatur/go-restaurant-orders/internal/inventory"
	kafkax "github.com/ariefcatur/go-restaurant-orders/internal/kafka"
	"github.com/ariefcatur/go-restaurant-orders/internal/logger"
	"github.com/ariefcatur/go-restaurant-orders/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders/internal/payment"
	"github.com/ariefcatur/go-restaurant-orders/internal/postgres"
	"github.com/ariefcatur/go-restaurant-orders/internal/redisx"
	"github.com/ariefcatur/go-restaurant-orders/internal/tracing"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	shutdownTracing := tracing.Setup(cfg.ServiceName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	if cfg.RunMigrations {
		if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	stockEvents := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicStockChanged, 1024, log)
	stockEvents.Start(ctx)
	paymentEvents := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicPaymentRequested, 1024, log)
	paymentEvents.Start(ctx)

	// Services & handlers
	dishes := &catalog.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	views := orders.NewCachedReader(orderRepo, redisx.NewJSONCache(rdb, redisx.TTLOrderView), log)
	img := images.NewResolver(cfg.ImageBaseURL)

	stockSvc := &inventory.Service{
		Store:       dishes,
		Dedup:       redisx.NewDedup(rdb, redisx.TTLIdempotency),
		Events:      stockEvents,
		ServiceName: cfg.ServiceName,
		Log:         log.Named("inventory"),
	}
	flow := payment.NewFlow(
		gateway.New(cfg.PaymentGatewayURL, cfg.PaymentGatewayTimeout),
		log.Named("payment"),
		payment.WithPublisher(paymentEvents, cfg.ServiceName),
	)

	router := httpx.NewRouter(log)
	(&httpx.DishesHandler{Catalog: dishes, Stock: stockSvc, Images: img, Log: log}).Register(router)
	(&httpx.OrdersHandler{Store: orderRepo, Views: views, Payments: flow, Images: img, Log: log}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	stockEvents.Close()
	paymentEvents.Close()
	stockEvents.WaitClosed()
	paymentEvents.WaitClosed()
}
