package ports

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// InventoryGateway puerto hacia la API REST de inventario. La implementación
// normaliza las variantes de sobre y de nombres de campo del backend y traduce
// los fallos de transporte a la taxonomía de errores del dominio; hacia arriba
// solo viaja una forma estable.
//
// Toda llamada es un único round trip: nada se muta localmente de forma
// optimista y ninguna operación reintenta por su cuenta.
type InventoryGateway interface {
	// CheckHealth verifica que el backend responde.
	CheckHealth(ctx context.Context) error

	// ListProducts devuelve el catálogo completo en el orden del backend.
	ListProducts(ctx context.Context) ([]entity.Product, error)
	// GetProduct devuelve un producto o NotFoundError.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	// CreateProduct crea y devuelve el producto con id y timestamps asignados.
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error)
	// UpdateProduct aplica un parche parcial y devuelve el producto resultante.
	UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error)
	// DeleteProduct elimina de forma definitiva. Repetir el borrado de un id
	// ya eliminado devuelve NotFoundError.
	DeleteProduct(ctx context.Context, id string) error

	// RestockProduct incrementa el stock y registra la entrada de auditoría.
	// Devuelve el producto post-operación (estado autoritativo) y la entrada.
	RestockProduct(ctx context.Context, id string, in dto.RestockRequest) (*entity.Product, *entity.RestockEntry, error)

	// ListLowStock subset de productos en o bajo su umbral, según el backend.
	ListLowStock(ctx context.Context) ([]entity.Product, error)
	// ListRestockHistory historial de restock; productID vacío = todos.
	ListRestockHistory(ctx context.Context, productID string) ([]entity.RestockEntry, error)
	// GetAnalytics contadores agregados calculados por el backend.
	GetAnalytics(ctx context.Context) (*entity.AnalyticsSnapshot, error)
}
