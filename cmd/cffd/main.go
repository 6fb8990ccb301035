// Command cffd serves citation metadata over HTTP: validation and
// conversion endpoints plus a REST and GraphQL read API over the
// catalog produced by cff index build.
package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cffkit/cffkit/internal/server"
)

func main() {
	_ = godotenv.Load()

	log := server.InitLogger()

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatal("loading configuration", zap.Error(err))
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal("building server", zap.Error(err))
	}

	log.Info("starting cffd",
		zap.String("port", cfg.Port),
		zap.String("index_dir", cfg.IndexDir))

	app := srv.App()
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
