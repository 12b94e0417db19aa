package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/train-station-booking/internal/booking"
    "github.com/iliyamo/train-station-booking/internal/config"
    "github.com/iliyamo/train-station-booking/internal/database"
    "github.com/iliyamo/train-station-booking/internal/handler"
    "github.com/iliyamo/train-station-booking/internal/middleware"
    "github.com/iliyamo/train-station-booking/internal/queue"
    "github.com/iliyamo/train-station-booking/internal/repository"
    "github.com/iliyamo/train-station-booking/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(database.Config{
        User:     cfg.DBUser,
        Pass:     cfg.DBPass,
        Host:     cfg.DBHost,
        Port:     cfg.DBPort,
        Name:     cfg.DBName,
        MaxConns: cfg.DBMaxConns,
    })
    if err != nil {
        log.Fatalf("database connect failed: %v", err)
    }
    defer db.Close()

    stations := repository.NewStationRepo(db)
    routes := repository.NewRouteRepo(db)
    trains := repository.NewTrainRepo(db)
    crews := repository.NewCrewRepo(db)
    journeys := repository.NewJourneyRepo(db)
    orders := repository.NewOrderRepo(db)
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)

    bookingSvc := booking.NewService(db, journeys, orders)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    publicH := handler.NewPublicHandler(stations, routes, trains, crews, journeys)
    adminH := handler.NewAdminHandler(stations, routes, trains, crews, journeys)
    orderH := handler.NewOrderHandler(bookingSvc, orders, journeys)

    e := echo.New()
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())

    // Redis backs the rate limiter and the browse cache.  A nil client
    // disables both and the API keeps working.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and caching disabled")
    }
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)
    router.RegisterCustomer(e, orderH, cfg.JWTSecret)

    // Consume order.confirmed events in the background; the consumer
    // reconnects on broker failures and never stops the server.
    go func() {
        if err := queue.StartOrderConsumer(); err != nil {
            log.Printf("order consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
