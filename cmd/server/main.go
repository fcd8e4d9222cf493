package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ktmart/marketplace-api/internal/config"
	"github.com/ktmart/marketplace-api/internal/database"
	"github.com/ktmart/marketplace-api/internal/handler"
	"github.com/ktmart/marketplace-api/internal/payments"
	"github.com/ktmart/marketplace-api/internal/queue"
	"github.com/ktmart/marketplace-api/internal/repository"
	"github.com/ktmart/marketplace-api/internal/router"
	"github.com/ktmart/marketplace-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	cfg := config.Load()

	// One Mongo client for the whole process; repositories share its pool.
	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	db := client.Database(cfg.MongoDB)

	brands := repository.NewBrandRepo(db)
	products := repository.NewProductRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	paymentsRepo := repository.NewPaymentRepo(db)

	recorder := &service.PaymentRecorder{
		Payments: paymentsRepo,
		Products: products,
		Bookings: bookings,
		Publish:  service.PublishPaymentRecorded,
	}

	h := router.Handlers{
		Catalog:  handler.NewCatalogHandler(brands, products),
		Bookings: handler.NewBookingHandler(bookings),
		Users:    handler.NewUserHandler(cfg, users),
		Payments: handler.NewPaymentHandler(payments.NewStripeIntents(cfg.StripeSecret), recorder),
	}

	// Redis is optional: a nil client disables the catalog cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, catalog cache disabled")
	}

	// Background consumer appending recorded payments to logs/payment.log.
	go func() {
		if err := queue.StartPaymentConsumer(); err != nil {
			log.Printf("payment consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, config.LoadCacheConfig(), rdb, h)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("http server: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting requests, then close the store pool.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if err := database.Disconnect(client); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
}
