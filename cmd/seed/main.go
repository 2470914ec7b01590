// seed crea los usuarios iniciales (admin/vendedor) y un producto de demostración con dos lotes.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (.env / variables de entorno) y aplica las migraciones antes de sembrar.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/PharmGest-api/internal/application/auth"
	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/application/seed"
	"github.com/jhoicas/PharmGest-api/internal/application/usecase"
	"github.com/jhoicas/PharmGest-api/internal/infrastructure/postgres"
	"github.com/jhoicas/PharmGest-api/pkg/config"
	"github.com/jhoicas/PharmGest-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		fmt.Fprintln(os.Stderr, "seed sólo aplica a DB_DRIVER=postgres (en memoria la API siembra sola)")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	zl := log.Zerolog()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	tx := postgres.NewTxRunner(pool)
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	})

	res, err := seed.Run(ctx, seed.Deps{
		Auth:        authUC,
		Products:    usecase.NewProductUseCase(productRepo, postgres.NewCategoryRepository(pool), tx, usecase.DefaultStockSettings),
		Batches:     inventory.NewBatchUseCase(tx, productRepo, batchRepo, cfg.Pharmacy.ExpiryWarningDays, zl),
		ProductRepo: productRepo,
	}, time.Now(), zl)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int("users", res.Users).Int("products", res.Products).Int("batches", res.Batches).Msg("seed completado")
}
