package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusevents/config"
	"campusevents/db"
	"campusevents/ledger"
	"campusevents/middlewares"
	"campusevents/models"
	"campusevents/routes"
	"campusevents/utils"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	// Postgres
	sqldb, err := db.Open(cfg.PGDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer sqldb.Close()

	// Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mg, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	if err := mg.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("ping mongo")
	}
	defer func() { _ = mg.Disconnect(context.Background()) }()

	eventsCol := mg.Database(cfg.MongoDB).Collection("events")
	annsCol := mg.Database(cfg.MongoDB).Collection("announcements")

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)

	// Repositories + ledger
	events := models.NewMongoEventRepository(eventsCol)
	regs := models.NewSQLRegistrationRepository(sqldb)

	// Gin + middlewares
	gin.SetMode(gin.ReleaseMode)
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middlewares.RequestLog(log))
	server.Use(middlewares.ResponseCache(rdb, cfg.CacheTTL))

	routes.RegisterRoutes(server, routes.Deps{
		Users:         models.NewSQLUserRepository(sqldb),
		Clubs:         models.NewSQLClubRepository(sqldb),
		Events:        events,
		Announcements: models.NewMongoAnnouncementRepository(annsCol),
		Registrations: regs,
		Ledger:        ledger.New(events, regs),
		RDB:           rdb,
		Inv:           inv,
		CheckoutURL:   cfg.CheckoutURL,
	})

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := server.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
