package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sebiten/padel-app/config"
	"github.com/sebiten/padel-app/config/db"
	redisclient "github.com/sebiten/padel-app/config/redis"
	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/middlewares/cors"
	"github.com/sebiten/padel-app/routes"
	"github.com/sebiten/padel-app/utils/seed"
)

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	config.CheckRequiredEnv()

	db.Connect()
	defer db.Close()
	defer redisclient.CloseRedis()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.EnsureReferenceData(seedCtx, db.DB); err != nil {
		logger.ErrorLogger.Errorf("Reference data seeding failed: %v", err)
	}
	seedCancel()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	routes.RegisterCourtRoutes(r)
	routes.RegisterBookingRoutes(r)
	routes.RegisterPaymentRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok from padel booking service"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		fmt.Printf("Go Server listening on :%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server failed to listen: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down Go server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Go Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Go Server exited gracefully.")
}
