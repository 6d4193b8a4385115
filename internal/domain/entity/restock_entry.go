package entity

import "time"

// DefaultRestockReason motivo aplicado cuando el usuario no indica uno.
const DefaultRestockReason = "Manual restock"

// RestockEntry un evento de incremento de stock sobre un producto.
// Inmutable una vez creado: el historial es append-only y el backend es
// quien lo persiste. ProductName y ProductSKU vienen desnormalizados del
// backend para mostrar el historial sin un segundo fetch.
type RestockEntry struct {
	ID            string
	ProductID     string
	ProductName   string
	ProductSKU    string
	QuantityAdded int // siempre > 0
	PreviousStock int
	NewStock      int // invariante: NewStock == PreviousStock + QuantityAdded
	Reason        string
	CreatedAt     time.Time
}
