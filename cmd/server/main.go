package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/activity-ticketing/internal/config"
	"github.com/iliyamo/activity-ticketing/internal/database"
	"github.com/iliyamo/activity-ticketing/internal/handler"
	"github.com/iliyamo/activity-ticketing/internal/middleware"
	"github.com/iliyamo/activity-ticketing/internal/queue"
	"github.com/iliyamo/activity-ticketing/internal/repository"
	"github.com/iliyamo/activity-ticketing/internal/router"
	"github.com/iliyamo/activity-ticketing/internal/service"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it, rate limiting and response caching
	// are skipped and the API still serves traffic.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	activities := repository.NewActivityRepo(db)
	presenters := repository.NewPresenterRepo(db)
	tickets := repository.NewTicketRepo(db)

	reservations := service.NewReservationService(tickets, activities)

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(users, tokens, cfg),
		Users:        handler.NewUserHandler(users, tokens, cfg),
		Activities:   handler.NewActivityHandler(activities),
		Presenters:   handler.NewPresenterHandler(presenters, activities),
		Tickets:      handler.NewTicketHandler(tickets, activities),
		Reservations: handler.NewReservationHandler(reservations),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	var cacheMW, limitMW echo.MiddlewareFunc
	if rdb != nil {
		limitMW = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e, h, cfg.JWTSecret, cacheMW, limitMW)

	// Broker consumer runs for the life of the process and reconnects
	// on its own; a missing broker must not keep the API down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
