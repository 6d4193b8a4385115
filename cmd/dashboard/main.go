package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventario-panel/internal/application/analytics"
	"github.com/jhoicas/inventario-panel/internal/application/store"
	"github.com/jhoicas/inventario-panel/internal/application/views"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/api"
	"github.com/jhoicas/inventario-panel/pkg/config"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

const (
	lowStockLimit       = 10
	recentActivityLimit = 5
)

// Resumen del inventario en terminal: chequea el backend, refresca el
// catálogo y muestra los contadores, el low-stock y la actividad reciente.
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := client.CheckHealth(ctx); err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.API.BaseURL).Msg("el backend no responde")
	}

	if err := catalog.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("refrescar catálogo")
	}
	history, err := client.ListRestockHistory(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("historial de restock")
	}

	products := catalog.Products()
	snapshot := analytics.NewAggregator().Snapshot(products, history)

	fmt.Printf("Inventario: %d productos, valor total $%s\n",
		snapshot.TotalProducts, snapshot.TotalValue.StringFixed(2))
	fmt.Printf("Low stock: %d (%s%%)  |  Agotados: %d  |  Restocks últimos 30 días: %d\n",
		snapshot.LowStockCount, snapshot.LowStockPercentage.String(),
		snapshot.OutOfStockCount, snapshot.RecentRestocks)

	if low := views.LowStock(products, lowStockLimit); len(low) > 0 {
		fmt.Println("\nProductos en o bajo umbral:")
		for _, p := range low {
			fmt.Printf("  %-12s %-30s %3d/%d\n", p.SKU, p.Name, p.Quantity, p.MinStockLevel)
		}
	}

	if recent := views.RecentActivity(history, recentActivityLimit); len(recent) > 0 {
		fmt.Println("\nActividad reciente:")
		for _, r := range recent {
			fmt.Printf("  %s  %-30s +%d (%d -> %d)  %s\n",
				r.CreatedAt.Format("2006-01-02"), r.ProductName,
				r.QuantityAdded, r.PreviousStock, r.NewStock, r.Reason)
		}
	}

	os.Exit(0)
}
