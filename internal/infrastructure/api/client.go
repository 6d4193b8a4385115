package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa el puerto.
var _ ports.InventoryGateway = (*Client)(nil)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20 // respuestas mayores a 1 MiB se truncan
)

// Config opciones del cliente HTTP hacia el backend de inventario.
type Config struct {
	BaseURL string        // ej. http://localhost:5000
	Timeout time.Duration // 0 = defaultTimeout
}

// Client adaptador hacia la API REST de inventario. Una instancia cubre
// todos los endpoints; cada llamada es un único round trip sin reintentos.
// Normaliza sobres y nombres de campo (ver envelope.go y mapping.go) y
// traduce fallos a la taxonomía del dominio (errors.go).
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el adaptador.
func NewClient(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// do ejecuta una llamada y devuelve el cuerpo crudo de una respuesta 2xx.
// resource nombra la entidad pedida, para errores accionables.
func (c *Client) do(ctx context.Context, method, path, resource string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: serializar request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: crear HTTP request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("llamada al backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, translateTransport(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.RemoteError{Reason: "network error", Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("respuesta no-2xx del backend")
		return nil, translateStatus(resource, resp.StatusCode, raw)
	}
	return raw, nil
}

// CheckHealth sondea el liveness probe del backend.
func (c *Client) CheckHealth(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", "health", nil)
	return err
}

// ListProducts devuelve el catálogo completo en el orden del backend.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/products", "products", nil)
	if err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// GetProduct devuelve un producto por id.
func (c *Client) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "product", nil)
	if err != nil {
		return nil, err
	}
	return decodeProduct(raw)
}

// CreateProduct crea un producto; el backend asigna id y timestamps.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/products", "product", createPayload(in))
	if err != nil {
		return nil, err
	}
	return decodeProduct(raw)
}

// UpdateProduct aplica un parche parcial y devuelve el producto resultante.
func (c *Client) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	raw, err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), "product", updatePayload(in))
	if err != nil {
		return nil, err
	}
	return decodeProduct(raw)
}

// DeleteProduct elimina definitivamente. Un segundo borrado del mismo id
// devuelve NotFoundError: el backend ya no conoce ese recurso.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), "product", nil)
	return err
}

// RestockProduct incrementa stock y registra la entrada de auditoría.
// Rechaza localmente cantidades no positivas: no hay round trip que hacer.
func (c *Client) RestockProduct(ctx context.Context, id string, in dto.RestockRequest) (*entity.Product, *entity.RestockEntry, error) {
	if in.Quantity < 1 {
		return nil, nil, domain.NewValidationError("restock quantity must be positive").
			WithField("quantity", "must be >= 1")
	}
	if in.Reason == "" {
		in.Reason = entity.DefaultRestockReason
	}

	raw, err := c.do(ctx, http.MethodPost, "/api/products/"+url.PathEscape(id)+"/restock", "product", restockPayload(in))
	if err != nil {
		return nil, nil, err
	}

	var envelope struct {
		Product    json.RawMessage `json:"product"`
		RestockLog json.RawMessage `json:"restock_log"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, nil, fmt.Errorf("api: sobre de restock inválido: %w", err)
	}
	productRaw := envelope.Product
	if productRaw == nil {
		productRaw = raw // variante sin sobre: el cuerpo es el producto
	}
	product, err := decodeProduct(productRaw)
	if err != nil {
		return nil, nil, err
	}

	var entry entity.RestockEntry
	if envelope.RestockLog != nil {
		var wire restockWire
		if err := json.Unmarshal(envelope.RestockLog, &wire); err != nil {
			return nil, nil, fmt.Errorf("api: restock_log inválido: %w", err)
		}
		entry = wire.toEntity()
	} else {
		// El backend no devolvió la entrada: reconstruirla desde el producto
		// autoritativo y la cantidad enviada.
		entry = entity.RestockEntry{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductSKU:    product.SKU,
			QuantityAdded: in.Quantity,
			PreviousStock: product.Quantity - in.Quantity,
			NewStock:      product.Quantity,
			Reason:        in.Reason,
			CreatedAt:     product.UpdatedAt,
		}
	}
	return product, &entry, nil
}

// ListLowStock subset en o bajo umbral según el backend.
func (c *Client) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/products/low-stock", "products", nil)
	if err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// ListRestockHistory historial de restock, opcionalmente por producto.
// El filtro se envía como query param y además se aplica localmente:
// la variante heredada del backend lo ignora.
func (c *Client) ListRestockHistory(ctx context.Context, productID string) ([]entity.RestockEntry, error) {
	path := "/api/restocks"
	if productID != "" {
		path += "?product_id=" + url.QueryEscape(productID)
	}
	raw, err := c.do(ctx, http.MethodGet, path, "restocks", nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeList(raw, "restock_logs", "restocks")
	if err != nil {
		return nil, err
	}
	entries := make([]entity.RestockEntry, 0, len(items))
	for _, item := range items {
		var wire restockWire
		if err := json.Unmarshal(item, &wire); err != nil {
			return nil, fmt.Errorf("api: entrada de restock inválida: %w", err)
		}
		entry := wire.toEntity()
		if productID != "" && entry.ProductID != productID {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetAnalytics contadores agregados calculados por el backend.
func (c *Client) GetAnalytics(ctx context.Context) (*entity.AnalyticsSnapshot, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/products/analytics", "analytics", nil)
	if err != nil {
		return nil, err
	}
	entityRaw, err := decodeEntity(raw, "analytics", "data")
	if err != nil {
		return nil, err
	}
	var wire analyticsWire
	if err := json.Unmarshal(entityRaw, &wire); err != nil {
		return nil, fmt.Errorf("api: analytics inválido: %w", err)
	}
	snapshot, err := wire.toEntity()
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ── Decodificación compartida ─────────────────────────────────────────────────

func decodeProducts(raw []byte) ([]entity.Product, error) {
	items, err := decodeList(raw, "products")
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(items))
	for _, item := range items {
		var wire productWire
		if err := json.Unmarshal(item, &wire); err != nil {
			return nil, fmt.Errorf("api: producto inválido: %w", err)
		}
		product, err := wire.toEntity()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func decodeProduct(raw []byte) (*entity.Product, error) {
	entityRaw, err := decodeEntity(raw, "product")
	if err != nil {
		return nil, err
	}
	var wire productWire
	if err := json.Unmarshal(entityRaw, &wire); err != nil {
		return nil, fmt.Errorf("api: producto inválido: %w", err)
	}
	product, err := wire.toEntity()
	if err != nil {
		return nil, err
	}
	return &product, nil
}
