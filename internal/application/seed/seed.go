// Package seed carga los datos iniciales de una farmacia: usuarios y un producto de demostración con lotes.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PharmGest-api/internal/application/auth"
	"github.com/jhoicas/PharmGest-api/internal/application/dto"
	"github.com/jhoicas/PharmGest-api/internal/application/inventory"
	"github.com/jhoicas/PharmGest-api/internal/application/usecase"
	"github.com/jhoicas/PharmGest-api/internal/domain"
	"github.com/jhoicas/PharmGest-api/internal/domain/entity"
	"github.com/jhoicas/PharmGest-api/internal/domain/repository"
)

// DemoSKU producto de demostración.
const DemoSKU = "IBU-600"

// Deps casos de uso que usa el seed.
type Deps struct {
	Auth        *auth.AuthUseCase
	Products    *usecase.ProductUseCase
	Batches     *inventory.BatchUseCase
	ProductRepo repository.ProductRepository
}

// Result resume lo creado (lo existente se omite).
type Result struct {
	Users    int
	Products int
	Batches  int
}

var users = []dto.RegisterRequest{
	{Username: "admin", Password: "secret123", Role: entity.RoleAdmin},
	{Username: "vendedor", Password: "1234", Role: entity.RoleVendedor},
}

// Run es idempotente: usuarios o producto ya existentes no se vuelven a crear.
// El producto demo trae un lote sano y otro que vence mañana para ver el semáforo y el FEFO.
func Run(ctx context.Context, deps Deps, now time.Time, log zerolog.Logger) (Result, error) {
	var res Result
	for _, u := range users {
		_, err := deps.Auth.RegisterUser(ctx, u)
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			log.Debug().Str("username", u.Username).Msg("usuario ya existe")
		case err != nil:
			return res, err
		default:
			res.Users++
			log.Info().Str("username", u.Username).Str("role", u.Role).Msg("usuario creado")
		}
	}

	existing, err := deps.ProductRepo.GetBySKU(ctx, DemoSKU)
	if err != nil {
		return res, err
	}
	if existing != nil {
		return res, nil
	}
	p, err := deps.Products.Create(ctx, dto.CreateProductRequest{
		SKU:   DemoSKU,
		Name:  "Ibuprofeno 600mg (Caja x 10)",
		Price: decimal.NewFromInt(250),
		Cost:  decimal.NewFromInt(150),
	})
	if err != nil {
		return res, err
	}
	res.Products++

	batches := []dto.AddBatchRequest{
		{BatchCode: "L-BUENO-001", Quantity: 100, ExpiryDate: now.AddDate(1, 0, 0).Format(inventory.DateLayout)},
		{BatchCode: "L-URGENTE-99", Quantity: 50, ExpiryDate: now.AddDate(0, 0, 1).Format(inventory.DateLayout)},
	}
	for _, b := range batches {
		if _, err := deps.Batches.AddBatch(ctx, p.ID, b); err != nil {
			return res, err
		}
		res.Batches++
	}
	log.Info().Str("sku", DemoSKU).Int("batches", res.Batches).Msg("producto demo creado")
	return res, nil
}
