package mockapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// Handlers del backend de desarrollo. Reproducen fielmente el contrato del
// backend real, incluida su inconsistencia: los endpoints de producto hablan
// el contrato heredado (stock_level / min_stock_threshold), el de low-stock
// habla el canónico (quantity / min_stock_level) y los sobres varían por
// endpoint. Así el adaptador del panel se ejercita contra lo mismo que verá
// en producción.

// productBody cuerpo de creación/edición; acepta ambas familias de nombres,
// con preferencia por la canónica.
type productBody struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	SKU               *string  `json:"sku"`
	Category          *string  `json:"category"`
	Price             *float64 `json:"price"`
	Quantity          *int     `json:"quantity"`
	StockLevel        *int     `json:"stock_level"`
	MinStockLevel     *int     `json:"min_stock_level"`
	MinStockThreshold *int     `json:"min_stock_threshold"`
}

func (b productBody) quantity() *int {
	if b.Quantity != nil {
		return b.Quantity
	}
	return b.StockLevel
}

func (b productBody) minStockLevel() *int {
	if b.MinStockLevel != nil {
		return b.MinStockLevel
	}
	return b.MinStockThreshold
}

// restockBody cuerpo de restock; reason y notes son sinónimos.
type restockBody struct {
	Quantity *int   `json:"quantity"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

func (b restockBody) reason() string {
	if b.Reason != "" {
		return b.Reason
	}
	if b.Notes != "" {
		return b.Notes
	}
	return entity.DefaultRestockReason
}

// legacyProduct serialización heredada de un producto.
func legacyProduct(p entity.Product) fiber.Map {
	return fiber.Map{
		"id":                  p.ID,
		"name":                p.Name,
		"sku":                 p.SKU,
		"description":         p.Description,
		"category":            p.Category,
		"stock_level":         p.Quantity,
		"min_stock_threshold": p.MinStockLevel,
		"price":               p.Price.InexactFloat64(),
		"created_at":          p.CreatedAt.Format(wireTimeLayout),
		"updated_at":          p.UpdatedAt.Format(wireTimeLayout),
		"is_low_stock":        p.IsLowStock(),
	}
}

// canonicalProduct serialización canónica reducida (endpoint de low-stock).
func canonicalProduct(p entity.Product) fiber.Map {
	return fiber.Map{
		"id":              p.ID,
		"name":            p.Name,
		"sku":             p.SKU,
		"category":        p.Category,
		"quantity":        p.Quantity,
		"min_stock_level": p.MinStockLevel,
		"price":           p.Price.InexactFloat64(),
	}
}

func legacyRestock(r entity.RestockEntry) fiber.Map {
	return fiber.Map{
		"id":             r.ID,
		"product_id":     r.ProductID,
		"product_name":   r.ProductName,
		"product_sku":    r.ProductSKU,
		"quantity_added": r.QuantityAdded,
		"previous_stock": r.PreviousStock,
		"new_stock":      r.NewStock,
		"notes":          r.Reason,
		"restocked_at":   r.CreatedAt.Format(wireTimeLayout),
	}
}

const wireTimeLayout = "2006-01-02T15:04:05.999999"

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Resource not found"})
}

// ── Handlers ──────────────────────────────────────────────────────────────────

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "message": "Inventory API is running"})
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	products := s.store.list()
	items := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		items = append(items, legacyProduct(p))
	}
	return c.JSON(fiber.Map{"success": true, "products": items, "total_count": len(items)})
}

func (s *Server) getProduct(c *fiber.Ctx) error {
	p, ok := s.store.get(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	return c.JSON(fiber.Map{"success": true, "product": legacyProduct(p)})
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	var in productBody
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if in.Name == nil || *in.Name == "" || in.SKU == nil || *in.SKU == "" {
		return badRequest(c, "Name and SKU are required")
	}
	if s.store.skuExists(*in.SKU) {
		return badRequest(c, "Product with this SKU already exists")
	}

	p := entity.Product{Name: *in.Name, SKU: *in.SKU}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return badRequest(c, "Price must not be negative")
		}
		p.Price = decimal.NewFromFloat(*in.Price)
	}
	if q := in.quantity(); q != nil {
		if *q < 0 {
			return badRequest(c, "Quantity must not be negative")
		}
		p.Quantity = *q
	}
	if m := in.minStockLevel(); m != nil {
		p.MinStockLevel = *m
	}

	created := s.store.create(p)
	s.log.Info().Str("id", created.ID).Str("sku", created.SKU).Msg("mockapi: producto creado")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created successfully",
		"product": legacyProduct(created),
	})
}

func (s *Server) updateProduct(c *fiber.Ctx) error {
	var in productBody
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if in.Price != nil && *in.Price < 0 {
		return badRequest(c, "Price must not be negative")
	}
	if q := in.quantity(); q != nil && *q < 0 {
		return badRequest(c, "Quantity must not be negative")
	}

	updated, ok := s.store.update(c.Params("id"), func(p *entity.Product) {
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Price != nil {
			p.Price = decimal.NewFromFloat(*in.Price)
		}
		if q := in.quantity(); q != nil {
			p.Quantity = *q
		}
		if m := in.minStockLevel(); m != nil {
			p.MinStockLevel = *m
		}
	})
	if !ok {
		return notFound(c)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"product": legacyProduct(updated),
	})
}

func (s *Server) deleteProduct(c *fiber.Ctx) error {
	if !s.store.remove(c.Params("id")) {
		return notFound(c)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}

func (s *Server) restockProduct(c *fiber.Ctx) error {
	var in restockBody
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if in.Quantity == nil {
		return badRequest(c, "Quantity is required")
	}
	if *in.Quantity <= 0 {
		return badRequest(c, "Quantity must be positive")
	}

	product, entry, ok := s.store.restock(c.Params("id"), *in.Quantity, in.reason())
	if !ok {
		return notFound(c)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Product restocked successfully",
		"product":     legacyProduct(product),
		"restock_log": legacyRestock(entry),
	})
}

func (s *Server) restockHistory(c *fiber.Ctx) error {
	entries := s.store.history(c.Query("product_id"))
	items := make([]fiber.Map, 0, len(entries))
	for _, r := range entries {
		items = append(items, legacyRestock(r))
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"restock_logs": items,
		"pagination": fiber.Map{
			"page": 1, "per_page": len(items), "total": len(items), "pages": 1,
		},
	})
}

func (s *Server) lowStock(c *fiber.Ctx) error {
	products := s.store.lowStock()
	items := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		items = append(items, canonicalProduct(p))
	}
	return c.JSON(fiber.Map{"success": true, "products": items})
}

func (s *Server) analytics(c *fiber.Ctx) error {
	products, restocks := s.store.snapshot()
	snapshot := s.aggregator.Snapshot(products, restocks)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_products":       snapshot.TotalProducts,
			"total_value":          snapshot.TotalValue.InexactFloat64(),
			"low_stock_count":      snapshot.LowStockCount,
			"out_of_stock_count":   snapshot.OutOfStockCount,
			"low_stock_percentage": snapshot.LowStockPercentage.InexactFloat64(),
			"recent_restocks":      snapshot.RecentRestocks,
		},
	})
}
