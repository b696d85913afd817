package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vyaparkendra/database"
	"vyaparkendra/jobs"
	"vyaparkendra/routes"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := database.SeedCatalog(db); err != nil {
		log.Fatalf("❌ Failed to seed catalog: %v", err)
	}

	// Redis is optional; without it the balance and dashboard caches are
	// simply disabled.
	var cache *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		log.Println("✅ Connected to Redis")
	}

	ledger := services.NewLedgerStore(db)
	wallets := services.NewWalletService(db, ledger, cache)
	commissions := services.NewCommissionEngine(ledger, services.DefaultCommissionRate)
	fulfillment := services.NewFulfillmentService(db, wallets, commissions)
	dashboards := services.NewDashboardService(db, ledger, cache)
	loans := services.NewLoanService(db)
	audit := services.NewAuditTrail(db)

	app := fiber.New()
	routes.Setup(app, routes.Deps{
		DB:          db,
		Ledger:      ledger,
		Wallets:     wallets,
		Fulfillment: fulfillment,
		Dashboards:  dashboards,
		Loans:       loans,
		Audit:       audit,
	})
	jobs.StartMaintenance(db, wallets, loans)

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3000"
	}
	addr := fmt.Sprintf("%s:%s", host, port)
	log.Println("Server running at", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Panicf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Gracefully shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited cleanly")
}
