package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/deducto/backend/internal/controllers"
	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/registry"
	"github.com/deducto/backend/internal/router"
	"github.com/deducto/backend/internal/snapshot"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, configuration works without one
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		// Create data directory for the default database location
		dataDir := filepath.Join(".", "data")
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			log.Fatal().Msg(err.Error())
		}

		dsn = filepath.Join(dataDir, "deducto.db")
	}

	// Connect to the database and migrate the schema
	db, err := models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Seed the default categories on a fresh registry
	if _, err := registry.New(db).InitializeDefaults(); err != nil {
		log.Fatal().Msg(err.Error())
	}

	installID, err := snapshot.EnsureInstallID(db)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	log.Info().Str("install-id", installID).Msg("Store ready")

	r, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(controllers.New(db), r.Group("/"))

	// Listens on :8080, the PORT environment variable overrides this
	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
