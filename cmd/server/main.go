package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/harborlight/carecal/internal/db"
	"github.com/harborlight/carecal/internal/mqtt"
	"github.com/harborlight/carecal/internal/redis"
	"github.com/harborlight/carecal/internal/schedule"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	database, err := db.Open(env.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.RunMigrations(database, env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	// nil notifier disables board refresh signalling
	var boards *mqtt.Notifier
	if env.MQTTBrokerURL != "" {
		boards, err = mqtt.NewNotifier(env.MQTTBrokerURL, env.MQTTClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		defer boards.Close()
	}

	store := db.NewStore(database)
	engine := schedule.NewEngine(store)

	if env.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	RegisterRoutes(router, env, store, engine, boards)

	log.Info().Str("address", env.ServerAddress).Msg("starting server")
	if err := router.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
