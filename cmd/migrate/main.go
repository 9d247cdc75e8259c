// migrate aplica las migraciones SQL embebidas (goose) sobre la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|status|reset]
// Por defecto ejecuta "up". Lee la misma configuración que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Arriendos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Arriendos-api/pkg/config"
	"github.com/jhoicas/Arriendos-api/pkg/logger"
)

func main() {
	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), action); err != nil {
		log.Error().Err(err).Str("action", action).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("action", action).Dur("elapsed", time.Since(start)).Msg("migración terminada")
}
