// seed_defaults reinicia el catálogo de productos con el surtido por defecto.
//
// Uso: go run ./cmd/seed_defaults
// Lee la misma configuración que la API (DATABASE_URL, DB_HOST, ...). Falla si algún producto
// ya tiene lotes registrados.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Carnes-api/internal/application/usecase"
	"github.com/jhoicas/Carnes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Carnes-api/pkg/config"
	"github.com/jhoicas/Carnes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}

	repos := postgres.NewRepos(pool)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Lots, postgres.NewTxRunner(pool), log)
	products, err := productUC.InitDefaultProducts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reiniciar catálogo")
	}
	for _, p := range products {
		fmt.Printf("%-30s %s\n", p.Name, p.Price.StringFixed(2))
	}
	log.Info().Int("productos", len(products)).Msg("catálogo por defecto cargado")
}
