package dto

import "github.com/shopspring/decimal"

// CreateProductRequest datos para crear un producto. El backend asigna
// id y timestamps; MinStockLevel no positivo se normaliza a 10 antes de enviar.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
}

// UpdateProductRequest parche parcial de un producto. Solo los campos no nil
// se envían al backend. El SKU es inmutable después de crear.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Quantity      *int             `json:"quantity,omitempty"`
	MinStockLevel *int             `json:"min_stock_level,omitempty"`
}

// RestockRequest incremento de stock para un producto.
// Quantity debe ser >= 1; Reason vacío se sustituye por "Manual restock".
type RestockRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
}
