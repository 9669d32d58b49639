package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitgear/ymmgo/internal/config"
	"github.com/fitgear/ymmgo/internal/database"
	"github.com/fitgear/ymmgo/internal/fitment"
	"github.com/fitgear/ymmgo/internal/handlers"
	"github.com/fitgear/ymmgo/internal/models"
	"github.com/fitgear/ymmgo/internal/services/catalog"
	"github.com/fitgear/ymmgo/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Synchronize schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.VehicleRange{},
		&models.ProductVehicleLink{},
		&models.ScopeSettings{},
		&models.AdminUser{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Wire the engine: catalog gateway client + fitment service
	gateway := catalog.NewClient(cfg.Gateway)
	if cfg.Gateway.BaseURL == "" {
		log.Println("⚠️ CATALOG_API_URL not set; product searches will fail until configured")
	}
	svc := fitment.NewService(db, gateway)

	// 5. Admin event hub
	hub := websocket.NewHub()
	go hub.Run()

	// 6. HTTP router
	router := handlers.NewRouter(db, cfg, svc, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 7. Start server with graceful shutdown
	go func() {
		log.Printf("🌐 YMM fitment service listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Server shutdown error: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("⚠️ Database close error: %v", err)
	}
	log.Println("✅ Shutdown complete")
}
