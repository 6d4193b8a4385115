package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// Tabla de mapeo entre los dos contratos de campos que sirve el backend.
// Algunos endpoints hablan el contrato canónico y otros el heredado:
//
//	canónico          heredado
//	quantity          stock_level
//	min_stock_level   min_stock_threshold
//	reason            notes
//	created_at        restocked_at
//
// Todo el renombrado vive en este archivo; el resto del sistema solo ve la
// forma canónica. En las peticiones mutadoras se emiten AMBAS familias de
// nombres para que cualquiera de las dos variantes del backend las aplique.

// wireID id que el backend puede entregar como número o como string.
// Internamente siempre se trata como string opaco.
type wireID string

func (w *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*w = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*w = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*w = wireID(n.String())
	return nil
}

// productWire producto tal como llega del backend, tolerando ambos contratos.
type productWire struct {
	ID                wireID      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	SKU               string      `json:"sku"`
	Category          string      `json:"category"`
	Price             json.Number `json:"price"`
	Quantity          *int        `json:"quantity"`
	StockLevel        *int        `json:"stock_level"`
	MinStockLevel     *int        `json:"min_stock_level"`
	MinStockThreshold *int        `json:"min_stock_threshold"`
	CreatedAt         string      `json:"created_at"`
	UpdatedAt         string      `json:"updated_at"`
}

func (w productWire) toEntity() (entity.Product, error) {
	price, err := parseDecimal(w.Price)
	if err != nil {
		return entity.Product{}, fmt.Errorf("producto %s: price inválido: %w", w.ID, err)
	}
	return entity.Product{
		ID:            string(w.ID),
		Name:          w.Name,
		Description:   w.Description,
		SKU:           w.SKU,
		Category:      w.Category,
		Price:         price,
		Quantity:      firstInt(w.Quantity, w.StockLevel),
		MinStockLevel: firstInt(w.MinStockLevel, w.MinStockThreshold),
		CreatedAt:     parseWireTime(w.CreatedAt),
		UpdatedAt:     parseWireTime(w.UpdatedAt),
	}, nil
}

// restockWire entrada de restock del backend, tolerando ambos contratos.
type restockWire struct {
	ID            wireID `json:"id"`
	ProductID     wireID `json:"product_id"`
	ProductName   string `json:"product_name"`
	ProductSKU    string `json:"product_sku"`
	QuantityAdded *int   `json:"quantity_added"`
	Quantity      *int   `json:"quantity"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Reason        string `json:"reason"`
	Notes         string `json:"notes"`
	CreatedAt     string `json:"created_at"`
	RestockedAt   string `json:"restocked_at"`
}

func (w restockWire) toEntity() entity.RestockEntry {
	reason := w.Reason
	if reason == "" {
		reason = w.Notes
	}
	created := w.CreatedAt
	if created == "" {
		created = w.RestockedAt
	}
	return entity.RestockEntry{
		ID:            string(w.ID),
		ProductID:     string(w.ProductID),
		ProductName:   w.ProductName,
		ProductSKU:    w.ProductSKU,
		QuantityAdded: firstInt(w.QuantityAdded, w.Quantity),
		PreviousStock: w.PreviousStock,
		NewStock:      w.NewStock,
		Reason:        reason,
		CreatedAt:     parseWireTime(created),
	}
}

// analyticsWire contadores agregados del backend, tolerando ambos contratos.
type analyticsWire struct {
	TotalProducts      int         `json:"total_products"`
	TotalValue         json.Number `json:"total_value"`
	TotalStockValue    json.Number `json:"total_stock_value"`
	LowStockCount      int         `json:"low_stock_count"`
	OutOfStockCount    int         `json:"out_of_stock_count"`
	LowStockPercentage json.Number `json:"low_stock_percentage"`
	RecentRestocks     *int        `json:"recent_restocks"`
	RecentRestocks30   *int        `json:"recent_restocks_30_days"`
}

func (w analyticsWire) toEntity() (entity.AnalyticsSnapshot, error) {
	raw := w.TotalValue
	if raw == "" {
		raw = w.TotalStockValue
	}
	total, err := parseDecimal(raw)
	if err != nil {
		return entity.AnalyticsSnapshot{}, fmt.Errorf("analytics: total_value inválido: %w", err)
	}
	pct, err := parseDecimal(w.LowStockPercentage)
	if err != nil {
		return entity.AnalyticsSnapshot{}, fmt.Errorf("analytics: low_stock_percentage inválido: %w", err)
	}
	return entity.AnalyticsSnapshot{
		TotalProducts:      w.TotalProducts,
		TotalValue:         total,
		LowStockCount:      w.LowStockCount,
		OutOfStockCount:    w.OutOfStockCount,
		LowStockPercentage: pct,
		RecentRestocks:     firstInt(w.RecentRestocks, w.RecentRestocks30),
	}, nil
}

// ── Payloads de salida ────────────────────────────────────────────────────────

// createPayload serializa una creación emitiendo ambas familias de nombres.
func createPayload(in dto.CreateProductRequest) map[string]any {
	return map[string]any{
		"name":                in.Name,
		"description":         in.Description,
		"sku":                 in.SKU,
		"category":            in.Category,
		"price":               json.Number(in.Price.String()),
		"quantity":            in.Quantity,
		"stock_level":         in.Quantity,
		"min_stock_level":     in.MinStockLevel,
		"min_stock_threshold": in.MinStockLevel,
	}
}

// updatePayload serializa un parche parcial; solo campos presentes,
// cada uno con sus dos nombres cuando aplica.
func updatePayload(in dto.UpdateProductRequest) map[string]any {
	payload := make(map[string]any)
	if in.Name != nil {
		payload["name"] = *in.Name
	}
	if in.Description != nil {
		payload["description"] = *in.Description
	}
	if in.Category != nil {
		payload["category"] = *in.Category
	}
	if in.Price != nil {
		payload["price"] = json.Number(in.Price.String())
	}
	if in.Quantity != nil {
		payload["quantity"] = *in.Quantity
		payload["stock_level"] = *in.Quantity
	}
	if in.MinStockLevel != nil {
		payload["min_stock_level"] = *in.MinStockLevel
		payload["min_stock_threshold"] = *in.MinStockLevel
	}
	return payload
}

// restockPayload serializa un restock; reason también viaja como notes.
func restockPayload(in dto.RestockRequest) map[string]any {
	return map[string]any{
		"quantity": in.Quantity,
		"reason":   in.Reason,
		"notes":    in.Reason,
	}
}

// ── Helpers de parseo ─────────────────────────────────────────────────────────

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func parseDecimal(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}

// wireTimeLayouts formatos de timestamp observados: RFC3339 y el isoformat
// sin zona horaria que emite el backend heredado.
var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// parseWireTime parsea tolerante: un timestamp ilegible se degrada a cero
// en lugar de tumbar la respuesta completa (es dato de presentación).
func parseWireTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
