package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/nkoreli/museum-reservations/internal/booking"
	"github.com/nkoreli/museum-reservations/internal/config"
	"github.com/nkoreli/museum-reservations/internal/database"
	"github.com/nkoreli/museum-reservations/internal/handler"
	"github.com/nkoreli/museum-reservations/internal/queue"
	"github.com/nkoreli/museum-reservations/internal/repository"
	"github.com/nkoreli/museum-reservations/internal/router"
	queue_publisher "github.com/nkoreli/museum-reservations/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Nil when Redis is unreachable; cache and rate limiting degrade to no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, caching and rate limiting disabled")
	}

	eventRepo := repository.NewEventRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	svc := booking.NewService(reservationRepo, eventRepo, queue_publisher.Notifier{})

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicEventHandler(eventRepo), config.LoadCacheConfig(), rdb)
	router.RegisterReservations(e, handler.NewReservationHandler(svc), cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)
	router.RegisterAdmin(e, handler.NewAdminEventHandler(eventRepo), cfg.JWTSecret)

	// Background consumer: confirmation log lines and visitor emails.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
