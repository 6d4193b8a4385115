package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStockLevel umbral de alerta cuando el producto no define uno
// (o define uno no positivo) al crearse.
const DefaultMinStockLevel = 10

// StockStatus clasificación del stock de un producto. Los tres valores
// particionan cualquier colección: todo producto cae en exactamente uno.
type StockStatus string

const (
	StockIn  StockStatus = "in"  // quantity > min_stock_level
	StockLow StockStatus = "low" // 0 < quantity <= min_stock_level
	StockOut StockStatus = "out" // quantity == 0
)

// Product representa un producto o SKU del inventario tal como lo entrega
// el backend remoto. El id lo asigna el backend; el cliente nunca lo inventa.
// Quantity es el stock on-hand actual y MinStockLevel el umbral de alerta.
type Product struct {
	ID            string
	Name          string
	Description   string
	SKU           string // código único en todo el catálogo
	Category      string // texto libre, opcional
	Price         decimal.Decimal
	Quantity      int
	MinStockLevel int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock está en o por debajo del umbral de alerta.
// Incluye los productos agotados: un producto en cero también requiere atención.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// StockStatus devuelve la partición in/low/out del producto.
func (p Product) StockStatus() StockStatus {
	switch {
	case p.Quantity == 0:
		return StockOut
	case p.Quantity <= p.MinStockLevel:
		return StockLow
	default:
		return StockIn
	}
}

// StockValue valor del inventario on-hand de este producto (price × quantity),
// calculado en decimal para no acumular deriva de punto flotante.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
