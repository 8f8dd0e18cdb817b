package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/anlev/shopfront/internal/cart"
	"github.com/anlev/shopfront/internal/catalog"
	"github.com/anlev/shopfront/internal/checkout"
	"github.com/anlev/shopfront/internal/config"
	"github.com/anlev/shopfront/internal/httpapi"
	"github.com/anlev/shopfront/internal/orders"
	"github.com/anlev/shopfront/internal/referral"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := cart.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	cartRepo := cart.NewMongoRepository(mongoDB)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Shared outbound HTTP client; otelhttp traces every upstream call.
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.RequestTimeout,
	}

	catalogClient := catalog.NewHTTPClient(cfg.CatalogURL, httpClient)
	orderClient := orders.NewClient(cfg.OrderServiceURL, httpClient)
	clickRecorder := referral.NewClickRecorder(cfg.APIBase, httpClient)

	cartCache := cart.NewRedisCache(redisClient)
	cartService := cart.NewService(cartRepo, cartCache, catalogClient)

	referralStore := referral.NewRedisStore(redisClient)
	lastOrders := orders.NewRedisLastOrderStore(redisClient)

	checkoutService := checkout.NewService(cartService, catalogClient, referralStore, orderClient, lastOrders)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Carts:          cartService,
		Catalog:        catalogClient,
		Checkout:       checkoutService,
		Referrals:      referralStore,
		Clicks:         clickRecorder,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Shopfront gateway starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}

	log.Println("server exited")
}
