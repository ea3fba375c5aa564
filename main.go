package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	config "github.com/fadyamr909/EcommApp/configs"
	"github.com/fadyamr909/EcommApp/internal/auth"
	"github.com/fadyamr909/EcommApp/internal/db"
	"github.com/fadyamr909/EcommApp/internal/handlers"
	"github.com/fadyamr909/EcommApp/pkg/logger"
	"github.com/fadyamr909/EcommApp/pkg/shutdown"
)

func main() {
	appCfg := config.LoadAppConfig()
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     appCfg.Env,
		Level:   appCfg.LogLevel,
	})

	if err := db.Init(config.LoadDBConfig()); err != nil {
		log.Error("database init failed", slog.Any("err", err))
		os.Exit(1)
	}
	auth.Init(config.LoadJWTConfig())

	r := gin.Default()

	store := cookie.NewStore([]byte(appCfg.SessionSecret))
	r.Use(sessions.Sessions("storesess", store))

	registerRoutes(r)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	addr := fmt.Sprintf(":%d", appCfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}
}

func registerRoutes(r *gin.Engine) {

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ── public endpoints ──
	r.GET("/api/products", handlers.ListProducts)
	r.GET("/api/products/:id", handlers.GetProduct)

	r.POST("/api/auth/register", handlers.RegisterAPI)
	r.POST("/api/auth/login", handlers.LoginAPI)

	r.POST("/auth/register", handlers.Register)
	r.POST("/auth/login", handlers.Login)
	r.POST("/auth/logout", handlers.Logout)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(auth.Required())
	{
		api.POST("/products", handlers.CreateProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)

		api.GET("/cart", handlers.GetCart)
		api.POST("/cart/add", handlers.AddToCart)
		api.PUT("/cart/update", handlers.UpdateCartItem)
		api.DELETE("/cart/remove/:productId", handlers.RemoveFromCart)
		api.POST("/cart/clear", handlers.ClearCart)

		api.POST("/orders/place", handlers.PlaceOrder)
		api.GET("/orders", handlers.ListOrders)
		api.GET("/orders/:id", handlers.GetOrder)
	}
}
