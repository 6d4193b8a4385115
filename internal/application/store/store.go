package store

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/ports"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// Store colección en memoria del último catálogo traído del backend.
//
// Invariante: la colección nunca diverge de la última respuesta remota
// exitosa salvo por el delta exacto de una mutación local recién confirmada.
// Toda persistencia se delega al gateway; aquí no hay mutación optimista:
// la colección solo cambia después de que el backend confirma.
type Store struct {
	mu       sync.Mutex
	gw       ports.InventoryGateway
	log      *logger.Logger
	products []entity.Product

	// Secuencia de refresh: protege contra respuestas en vuelo obsoletas.
	// Gana la respuesta del refresh iniciado más recientemente; una
	// respuesta con secuencia menor a la aplicada se descarta.
	startedSeq uint64
	appliedSeq uint64
}

// New construye un store vacío sobre el gateway dado.
func New(gw ports.InventoryGateway, log *logger.Logger) *Store {
	return &Store{gw: gw, log: log}
}

// Refresh reemplaza la colección completa con ListProducts. Si la llamada
// falla, la colección previa queda intacta y el error sube sin tocar:
// datos visibles aunque viejos antes que una pantalla vacía por un fallo
// transitorio.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.startedSeq++
	seq := s.startedSeq
	s.mu.Unlock()

	list, err := s.gw.ListProducts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.appliedSeq {
		// Ya se aplicó la respuesta de un refresh más nuevo.
		s.log.Debug().Uint64("seq", seq).Uint64("applied", s.appliedSeq).Msg("refresh obsoleto descartado")
		return nil
	}
	s.appliedSeq = seq
	s.products = list
	s.log.Debug().Int("products", len(list)).Msg("catálogo refrescado")
	return nil
}

// Products copia de la colección completa, en el orden del último refresh.
func (s *Store) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Product(nil), s.products...)
}

// Len cantidad de productos en la colección.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// Search evalúa la query sobre la colección actual sin tocar el backend.
// La query vacía devuelve la colección completa en orden del último refresh.
func (s *Store) Search(q Query) []entity.Product {
	return Filter(s.Products(), q)
}

// Get busca un producto por id en la colección local.
func (s *Store) Get(id string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// Create delega al gateway y, si el backend confirma, agrega el producto
// devuelto al final de la colección.
func (s *Store) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	if in.MinStockLevel <= 0 {
		in.MinStockLevel = entity.DefaultMinStockLevel
	}

	created, err := s.gw.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.products = append(s.products, *created)
	s.mu.Unlock()
	s.log.Info().Str("id", created.ID).Str("sku", created.SKU).Msg("producto creado")
	return created, nil
}

// Update delega al gateway y reemplaza la copia local con el producto que
// el backend devolvió. En fallo la colección no cambia.
func (s *Store) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	updated, err := s.gw.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.replace(*updated)
	s.log.Info().Str("id", updated.ID).Msg("producto actualizado")
	return updated, nil
}

// Delete delega al gateway y quita el producto de la colección local.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.log.Info().Str("id", id).Msg("producto eliminado")
	return nil
}

// Restock aplica un incremento de stock con auditoría. La cantidad debe ser
// >= 1; no se recorta ni se corrige en silencio, se rechaza. El estado
// autoritativo post-operación es el producto que devuelve el backend, que
// sobreescribe la copia local.
func (s *Store) Restock(ctx context.Context, id string, in dto.RestockRequest) (*entity.Product, *entity.RestockEntry, error) {
	if in.Quantity < 1 {
		return nil, nil, domain.NewValidationError("restock quantity must be positive").
			WithField("quantity", "must be >= 1")
	}
	if in.Reason == "" {
		in.Reason = entity.DefaultRestockReason
	}

	product, entry, err := s.gw.RestockProduct(ctx, id, in)
	if err != nil {
		return nil, nil, err
	}

	s.replace(*product)
	s.log.Info().
		Str("id", product.ID).
		Int("added", entry.QuantityAdded).
		Int("new_stock", entry.NewStock).
		Msg("producto reabastecido")
	return product, entry, nil
}

// PreviewRestock calcula el stock resultante de un restock sin ejecutarlo.
// Es solo una vista previa de confirmación: el valor autoritativo es el que
// devuelva el backend al confirmar.
func (s *Store) PreviewRestock(id string, quantity int) (int, error) {
	if quantity < 1 {
		return 0, domain.NewValidationError("restock quantity must be positive").
			WithField("quantity", "must be >= 1")
	}
	p, ok := s.Get(id)
	if !ok {
		return 0, &domain.NotFoundError{Resource: "product", ID: id}
	}
	return p.Quantity + quantity, nil
}

// replace sustituye la copia local del producto; si no existe, lo agrega.
func (s *Store) replace(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.products {
		if existing.ID == p.ID {
			s.products[i] = p
			return
		}
	}
	s.products = append(s.products, p)
}

// validateCreate validación mínima del lado del cliente; el backend valida
// de nuevo y tiene la última palabra.
func validateCreate(in dto.CreateProductRequest) error {
	ve := domain.NewValidationError("invalid product")
	if in.Name == "" {
		ve.WithField("name", "is required")
	}
	if in.SKU == "" {
		ve.WithField("sku", "is required")
	}
	if in.Price.IsNegative() {
		ve.WithField("price", "must be >= 0")
	}
	if in.Quantity < 0 {
		ve.WithField("quantity", "must be >= 0")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}
