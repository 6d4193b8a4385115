package store

import (
	"strings"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// StockFilter criterio de stock de una búsqueda.
type StockFilter string

const (
	StockFilterNone StockFilter = ""    // sin filtro
	StockFilterIn   StockFilter = "in"  // quantity > min_stock_level
	StockFilterLow  StockFilter = "low" // 0 < quantity <= min_stock_level
	StockFilterOut  StockFilter = "out" // quantity == 0
)

// Query parámetros inmutables de una búsqueda. Los criterios presentes se
// componen con AND; el valor cero de Query acepta todo producto.
// El estado de búsqueda de la vista viaja como valor, nunca como campo
// mutable ambiente.
type Query struct {
	Term     string      // substring case-insensitive sobre name, description y sku
	Category string      // igualdad exacta; vacío = sin filtro
	Stock    StockFilter // partición in/low/out; vacío = sin filtro
}

// Matches decide si un producto satisface todos los criterios de la query.
func (q Query) Matches(p entity.Product) bool {
	if q.Term != "" {
		term := strings.ToLower(q.Term)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.SKU), term) {
			return false
		}
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	switch q.Stock {
	case StockFilterNone:
	case StockFilterIn:
		if p.StockStatus() != entity.StockIn {
			return false
		}
	case StockFilterLow:
		if p.StockStatus() != entity.StockLow {
			return false
		}
	case StockFilterOut:
		if p.StockStatus() != entity.StockOut {
			return false
		}
	default:
		return false
	}
	return true
}

// Filter función pura: evalúa la query sobre una colección preservando el
// orden de entrada.
func Filter(products []entity.Product, q Query) []entity.Product {
	matched := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if q.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}
