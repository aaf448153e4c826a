package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jobboard-api/internal/config"
	"github.com/jobboard-api/internal/infrastructure/cache"
	jwtinfra "github.com/jobboard-api/internal/infrastructure/jwt"
	"github.com/jobboard-api/internal/infrastructure/postgres"
	s3infra "github.com/jobboard-api/internal/infrastructure/s3"
	"github.com/jobboard-api/internal/infrastructure/smtp"
	transporthttp "github.com/jobboard-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(cfg.DatabaseURL, "up"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	redisClient, err := cache.NewClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	s3Client, err := s3infra.NewClient(cfg)
	if err != nil {
		log.Fatalf("s3: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:        postgres.NewUserRepo(db),
		JobRepo:         postgres.NewJobRepo(db),
		ApplicationRepo: postgres.NewApplicationRepo(db),
		FileRepo:        postgres.NewFileRepo(db),
		Cache:           cache.NewRedis(redisClient),
		Mailer:          smtp.NewMailer(cfg),
		ObjectStore:     s3infra.NewStore(s3Client, cfg.S3BucketName),
		JWTProvider:     jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
