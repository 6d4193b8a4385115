package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/store"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/api"
	"github.com/jhoicas/inventario-panel/pkg/config"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// Carga un catálogo de ejemplo a través de la API pública del backend
// configurado (API_BASE_URL). Idempotente: un SKU ya existente se salta.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
	}, log)
	catalog := store.New(client, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := client.CheckHealth(ctx); err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.API.BaseURL).Msg("el backend no responde")
	}
	if err := catalog.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("refrescar catálogo")
	}

	created := 0
	for _, sample := range sampleProducts() {
		p, err := catalog.Create(ctx, sample)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				log.Warn().Str("sku", sample.SKU).Msg("producto ya existe o fue rechazado, se salta")
				continue
			}
			log.Fatal().Err(err).Str("sku", sample.SKU).Msg("crear producto de ejemplo")
		}
		created++

		// Un restock inicial para que el historial y las métricas de
		// actividad reciente tengan datos. Los productos en cero se dejan
		// agotados para que el filtro "out" tenga con qué trabajar.
		if p.Quantity > 0 && p.Quantity <= p.MinStockLevel {
			if _, _, err := catalog.Restock(ctx, p.ID, dto.RestockRequest{
				Quantity: p.MinStockLevel * 2,
				Reason:   "Initial stock load",
			}); err != nil {
				log.Fatal().Err(err).Str("sku", p.SKU).Msg("restock inicial")
			}
		}
	}

	log.Info().Int("created", created).Int("total", catalog.Len()).Msg("catálogo de ejemplo cargado")
}

func sampleProducts() []dto.CreateProductRequest {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []dto.CreateProductRequest{
		{Name: "Wireless Mouse", SKU: "ELEC-001", Category: "Electronics", Description: "2.4 GHz wireless mouse", Price: price("24.99"), Quantity: 45, MinStockLevel: 15},
		{Name: "Mechanical Keyboard", SKU: "ELEC-002", Category: "Electronics", Description: "87-key mechanical keyboard", Price: price("89.90"), Quantity: 12, MinStockLevel: 10},
		{Name: "USB-C Cable 2m", SKU: "ELEC-003", Category: "Electronics", Description: "Braided USB-C to USB-C", Price: price("9.50"), Quantity: 0, MinStockLevel: 25},
		{Name: "Office Chair", SKU: "FURN-001", Category: "Furniture", Description: "Ergonomic mesh chair", Price: price("199.00"), Quantity: 8, MinStockLevel: 5},
		{Name: "Standing Desk", SKU: "FURN-002", Category: "Furniture", Description: "Height adjustable desk", Price: price("449.00"), Quantity: 3, MinStockLevel: 4},
		{Name: "Notebook A5", SKU: "STAT-001", Category: "Stationery", Description: "Dotted, 120 pages", Price: price("4.25"), Quantity: 160, MinStockLevel: 40},
		{Name: "Gel Pen Pack", SKU: "STAT-002", Category: "Stationery", Description: "Pack of 10, black ink", Price: price("6.80"), Quantity: 22, MinStockLevel: 30},
	}
}
