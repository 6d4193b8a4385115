// Package views proyecciones de solo lectura sobre el catálogo y el
// historial de restock. Todas son funciones puras: sin efectos, sin caché;
// se recalculan en cada ciclo de render del consumidor.
package views

import (
	"sort"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// Categories conjunto de categorías distintas en orden estable de primera
// aparición. Las categorías en blanco se excluyen.
func Categories(products []entity.Product) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

// LowStock primeros limit productos en o bajo su umbral, en orden de
// colección. limit <= 0 devuelve todos los que aplican.
func LowStock(products []entity.Product, limit int) []entity.Product {
	low := make([]entity.Product, 0)
	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		low = append(low, p)
		if limit > 0 && len(low) == limit {
			break
		}
	}
	return low
}

// RecentActivity entradas de restock de más nueva a más vieja, acotadas a
// limit. limit <= 0 devuelve todas. No muta el slice de entrada.
func RecentActivity(history []entity.RestockEntry, limit int) []entity.RestockEntry {
	ordered := append([]entity.RestockEntry(nil), history...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// TopByStock primeros limit productos por quantity descendente, para el
// widget de mayores existencias. No muta el slice de entrada.
func TopByStock(products []entity.Product, limit int) []entity.Product {
	ordered := append([]entity.Product(nil), products...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Quantity > ordered[j].Quantity
	})
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}
