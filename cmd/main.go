package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"shop-service/internal/api"
	"shop-service/internal/cache"
	"shop-service/internal/config"
	"shop-service/internal/consumer"
	"shop-service/internal/repository"
	"shop-service/internal/service"
	"shop-service/migrations"
)

func connectDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				return db, nil
			}
		}
		log.Printf("Retry %d: failed to connect to DB: %v", i+1, err)
		time.Sleep(3 * time.Second)
	}
	return nil, err
}

func main() {
	cfg := config.New()

	db, err := connectDB(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if err := migrations.AutoMigrateUsers(db, 3); err != nil {
		log.Fatalf("Failed to migrate users table: %v", err)
	}
	if err := migrations.AutoMigrateProducts(db, 3); err != nil {
		log.Fatalf("Failed to migrate products table: %v", err)
	}
	if err := migrations.AutoMigrateOrders(db, 3); err != nil {
		log.Fatalf("Failed to migrate orders table: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaTopic)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, cache.NewProductCache(rdb))
	orderService := service.NewOrderService(orderRepo, kafkaWriter)

	userHandler := api.NewUserHandler(userService)
	productHandler := api.NewProductHandler(productService)
	orderHandler := api.NewOrderHandler(orderService)
	ragHandler := api.NewRAGHandler()
	appHandler := api.NewAppHandler(db, userService.CountUsers, productService.CountProducts, orderService.CountOrders)

	stockConsumer := consumer.New(productService, config.NewKafkaReader(cfg.KafkaTopic, "shop-service-stock"))
	go stockConsumer.Run(context.Background())

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.GET("/", appHandler.Root)
	e.GET("/health", appHandler.Health)
	e.GET("/stats", appHandler.Stats)

	users := e.Group("/users")
	users.GET("/", userHandler.GetUsers)
	users.POST("/", userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUserByID)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	products := e.Group("/products")
	products.GET("/", productHandler.GetProducts)
	products.POST("/", productHandler.CreateProduct)
	products.GET("/:id", productHandler.GetProductByID)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	orders := e.Group("/orders")
	orders.GET("/", orderHandler.GetOrders)
	orders.POST("/", orderHandler.CreateOrder)
	orders.GET("/:id", orderHandler.GetOrderByID)
	orders.PUT("/:id", orderHandler.UpdateOrder)
	orders.DELETE("/:id", orderHandler.DeleteOrder)

	rag := e.Group("/rag")
	rag.POST("/query", ragHandler.Query)
	rag.POST("/vector-search", ragHandler.VectorSearch)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
