package main

import (
	"log"
	"os"

	"msgtiers/internal/api"
	"msgtiers/internal/config"
	"msgtiers/internal/service/messaging"
	"msgtiers/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("MSGTIERS_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dbType := os.Getenv("MSGTIERS_DB")
	if dbType == "" {
		dbType = "sqlite3"
	}
	log.Printf("dbType: %s\n", dbType)
	db, err := storage.Open(dbType, cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Create necessary tables: messages, users
	if err := storage.Migrate(db, dbType); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	service := messaging.NewService(db, dbType)
	handlers := api.NewHandler(service)

	router := gin.Default()
	if origins := cfg.DataService.AllowedOrigins; len(origins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = origins
		router.Use(cors.New(corsCfg))
	}
	handlers.RegisterRoutes(router)

	addr := cfg.DataService.ListenAddress
	if addr == "" {
		addr = ":5002"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
