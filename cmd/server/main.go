package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-assignment/internal/config"
	"github.com/iliyamo/room-assignment/internal/database"
	"github.com/iliyamo/room-assignment/internal/handler"
	"github.com/iliyamo/room-assignment/internal/queue"
	"github.com/iliyamo/room-assignment/internal/repository"
	"github.com/iliyamo/room-assignment/internal/router"
	"github.com/iliyamo/room-assignment/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	assignments := repository.NewAssignmentRepo(db)

	board := service.NewBoardService(db, users, rooms, assignments)
	api := handler.NewAPI(
		service.NewUserService(db, users, assignments),
		service.NewRoomService(db, rooms, assignments),
		service.NewAssignmentService(db, users, rooms, assignments, board),
		board,
	)

	// Redis is optional; without it caching and rate limiting are disabled.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	// Background consumer that records assignment.changed events.
	go func() {
		if err := queue.StartAssignmentConsumer(); err != nil {
			log.Printf("assignment consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, api, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
