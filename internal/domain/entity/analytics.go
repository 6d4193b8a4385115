package entity

import "github.com/shopspring/decimal"

// AnalyticsSnapshot contadores derivados del catálogo y del historial de
// restock. Es un valor calculado bajo demanda: el cliente nunca lo persiste
// ni lo mantiene incrementalmente.
type AnalyticsSnapshot struct {
	TotalProducts      int
	TotalValue         decimal.Decimal // Σ price × quantity
	LowStockCount      int             // quantity <= min_stock_level
	OutOfStockCount    int             // quantity == 0
	LowStockPercentage decimal.Decimal // low/total × 100, redondeado a 2 decimales
	RecentRestocks     int             // entradas de restock en los últimos 30 días
}
