package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// recentWindow ventana móvil para contar restocks recientes.
const recentWindow = 30 * 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Aggregator calcula un AnalyticsSnapshot desde el catálogo y el historial
// de restock. Recalcula todo en cada llamada: sin mantenimiento incremental.
// Los catálogos son de cientos de productos, no de millones, y el recálculo
// completo evita toda clase de contadores desincronizados.
//
// total_value se acumula en decimal: con catálogos grandes la suma de
// price×quantity en float64 deriva.
type Aggregator struct {
	now func() time.Time
}

// NewAggregator construye el agregador con el reloj del sistema.
func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// NewAggregatorWithClock construye el agregador con un reloj inyectado.
func NewAggregatorWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

// Snapshot contadores derivados del estado dado, evaluados en el instante
// actual del reloj del agregador.
func (a *Aggregator) Snapshot(products []entity.Product, history []entity.RestockEntry) entity.AnalyticsSnapshot {
	snapshot := entity.AnalyticsSnapshot{
		TotalProducts: len(products),
		TotalValue:    decimal.Zero,
	}

	for _, p := range products {
		snapshot.TotalValue = snapshot.TotalValue.Add(p.StockValue())
		if p.IsLowStock() {
			snapshot.LowStockCount++
		}
		if p.Quantity == 0 {
			snapshot.OutOfStockCount++
		}
	}

	if snapshot.TotalProducts > 0 {
		low := decimal.NewFromInt(int64(snapshot.LowStockCount))
		total := decimal.NewFromInt(int64(snapshot.TotalProducts))
		snapshot.LowStockPercentage = low.Mul(hundred).Div(total).Round(2)
	} else {
		snapshot.LowStockPercentage = decimal.Zero
	}

	cutoff := a.now().Add(-recentWindow)
	for _, e := range history {
		if e.CreatedAt.After(cutoff) {
			snapshot.RecentRestocks++
		}
	}
	return snapshot
}
