package main

import (
	"context"
	"log"
	"time"

	"reunion-shop/internal/config"
	"reunion-shop/internal/controllers/http"
	"reunion-shop/internal/infra/cache"
	"reunion-shop/internal/infra/database"
	"reunion-shop/internal/infra/rabbitmq"
	"reunion-shop/internal/repository/gormrepo"
	"reunion-shop/internal/services"
	"reunion-shop/internal/task"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	orderRepo := gormrepo.NewOrderRepository(db)
	catalogRepo := gormrepo.NewCatalogRepository(db)

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.OrderExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Println("RABBITMQ_URL not set, order events are disabled")
	}

	codes := services.NewCodeGenerator(cfg.OrderCodeMaxAttempts)
	orderService := services.NewOrderService(orderRepo, codes, publisher)
	catalogService := services.NewCatalogService(catalogRepo)
	orderService.SetCatalogInvalidator(catalogService)

	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err := cache.Connect(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisCache.Close()
		catalogService.SetCache(redisCache, time.Duration(cfg.CatalogCacheTTL)*time.Second)

		refresh := task.NewCatalogRefreshTask(catalogService, cfg.CatalogRefreshSpec)
		if err := refresh.Start(); err != nil {
			log.Fatalf("catalog refresh: %v", err)
		}
		defer refresh.Stop()
	} else {
		log.Println("REDIS_URL not set, catalog is served straight from the database")
	}

	auth, err := services.NewAuthService(cfg.AdminPassword, cfg.AdminSecret)
	if err != nil {
		log.Fatalf("admin auth: %v", err)
	}
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, admin console is locked")
	}

	handler := http.NewHandler(orderService, catalogService, auth, cfg.SecureCookies())

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	handler.RegisterRoutes(r)

	log.Printf("Starting reunion shop on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
