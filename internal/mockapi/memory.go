package mockapi

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// memoryStore estado en memoria del backend de desarrollo. Reproduce la
// semántica del backend real: ids asignados por el servidor, SKU único,
// borrado duro que purga el historial del producto.
type memoryStore struct {
	mu       sync.Mutex
	products []entity.Product
	restocks []entity.RestockEntry
	now      func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{now: time.Now}
}

func (m *memoryStore) list() []entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.Product(nil), m.products...)
}

func (m *memoryStore) get(id string) (entity.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (m *memoryStore) skuExists(sku string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.SKU == sku {
			return true
		}
	}
	return false
}

func (m *memoryStore) create(p entity.Product) entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.MinStockLevel <= 0 {
		p.MinStockLevel = entity.DefaultMinStockLevel
	}
	if p.Price.IsZero() {
		p.Price = decimal.Zero
	}
	m.products = append(m.products, p)
	return p
}

// update aplica fn sobre el producto y sella updated_at. Devuelve false si
// el id no existe.
func (m *memoryStore) update(id string, fn func(*entity.Product)) (entity.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			fn(&m.products[i])
			m.products[i].UpdatedAt = m.now().UTC()
			return m.products[i], true
		}
	}
	return entity.Product{}, false
}

// remove borra el producto y todas sus entradas de restock.
func (m *memoryStore) remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID != id {
			continue
		}
		m.products = append(m.products[:i], m.products[i+1:]...)
		kept := m.restocks[:0]
		for _, r := range m.restocks {
			if r.ProductID != id {
				kept = append(kept, r)
			}
		}
		m.restocks = kept
		return true
	}
	return false
}

// restock incrementa stock y registra la entrada de auditoría de forma
// atómica. Devuelve false si el producto no existe.
func (m *memoryStore) restock(id string, quantity int, reason string) (entity.Product, entity.RestockEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID != id {
			continue
		}
		now := m.now().UTC()
		previous := m.products[i].Quantity
		m.products[i].Quantity = previous + quantity
		m.products[i].UpdatedAt = now
		entry := entity.RestockEntry{
			ID:            uuid.New().String(),
			ProductID:     m.products[i].ID,
			ProductName:   m.products[i].Name,
			ProductSKU:    m.products[i].SKU,
			QuantityAdded: quantity,
			PreviousStock: previous,
			NewStock:      previous + quantity,
			Reason:        reason,
			CreatedAt:     now,
		}
		m.restocks = append(m.restocks, entry)
		return m.products[i], entry, true
	}
	return entity.Product{}, entity.RestockEntry{}, false
}

// history entradas de restock, opcionalmente filtradas por producto,
// de más nueva a más vieja.
func (m *memoryStore) history(productID string) []entity.RestockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]entity.RestockEntry, 0, len(m.restocks))
	for i := len(m.restocks) - 1; i >= 0; i-- {
		r := m.restocks[i]
		if productID != "" && r.ProductID != productID {
			continue
		}
		entries = append(entries, r)
	}
	return entries
}

func (m *memoryStore) lowStock() []entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	low := make([]entity.Product, 0)
	for _, p := range m.products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low
}

func (m *memoryStore) snapshot() ([]entity.Product, []entity.RestockEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.Product(nil), m.products...),
		append([]entity.RestockEntry(nil), m.restocks...)
}
