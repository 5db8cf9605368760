package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/cache"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/config"
	dbpkg "github.com/Guustavoou/barbearia-dash-insights-sub004/internal/db"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/middleware"
	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := cache.NewRedis(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
