package main

import (
	"log"
	"os"
	"time"

	"msgtiers/internal/config"
	"msgtiers/internal/gateway"

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

	dataURL := cfg.Gateway.DataServiceURL
	if dataURL == "" {
		dataURL = "http://localhost:5002"
	}
	timeout := time.Duration(cfg.Gateway.RequestTimeoutSeconds) * time.Second
	client := gateway.NewClient(dataURL, timeout)
	handlers := gateway.NewHandler(client)

	router := gin.Default()
	if origins := cfg.Gateway.AllowedOrigins; len(origins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = origins
		router.Use(cors.New(corsCfg))
	}
	handlers.RegisterRoutes(router)

	addr := cfg.Gateway.ListenAddress
	if addr == "" {
		addr = ":5001"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
