package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/store"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Gateway falso: cada método delega en un campo función configurable.
// ──────────────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	checkHealth func(ctx context.Context) error
	list        func(ctx context.Context) ([]entity.Product, error)
	get         func(ctx context.Context, id string) (*entity.Product, error)
	create      func(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error)
	update      func(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error)
	del         func(ctx context.Context, id string) error
	restock     func(ctx context.Context, id string, in dto.RestockRequest) (*entity.Product, *entity.RestockEntry, error)
	lowStock    func(ctx context.Context) ([]entity.Product, error)
	history     func(ctx context.Context, productID string) ([]entity.RestockEntry, error)
	analytics   func(ctx context.Context) (*entity.AnalyticsSnapshot, error)
}

func (f *fakeGateway) CheckHealth(ctx context.Context) error { return f.checkHealth(ctx) }
func (f *fakeGateway) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return f.list(ctx)
}
func (f *fakeGateway) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return f.get(ctx, id)
}
func (f *fakeGateway) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	return f.create(ctx, in)
}
func (f *fakeGateway) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	return f.update(ctx, id, in)
}
func (f *fakeGateway) DeleteProduct(ctx context.Context, id string) error { return f.del(ctx, id) }
func (f *fakeGateway) RestockProduct(ctx context.Context, id string, in dto.RestockRequest) (*entity.Product, *entity.RestockEntry, error) {
	return f.restock(ctx, id, in)
}
func (f *fakeGateway) ListLowStock(ctx context.Context) ([]entity.Product, error) {
	return f.lowStock(ctx)
}
func (f *fakeGateway) ListRestockHistory(ctx context.Context, productID string) ([]entity.RestockEntry, error) {
	return f.history(ctx, productID)
}
func (f *fakeGateway) GetAnalytics(ctx context.Context) (*entity.AnalyticsSnapshot, error) {
	return f.analytics(ctx)
}

func product(id, name, sku string, qty, min int) entity.Product {
	return entity.Product{
		ID: id, Name: name, SKU: sku,
		Price: decimal.RequireFromString("9.99"), Quantity: qty, MinStockLevel: min,
	}
}

func newStore(gw *fakeGateway) *store.Store {
	return store.New(gw, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_ReemplazaColeccionCompleta(t *testing.T) {
	catalog := []entity.Product{product("1", "A", "S-1", 5, 10), product("2", "B", "S-2", 20, 10)}
	gw := &fakeGateway{list: func(ctx context.Context) ([]entity.Product, error) { return catalog, nil }}
	s := newStore(gw)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, catalog, s.Products())
}

// Dos refresh seguidos sin mutaciones intermedias producen la misma colección.
func TestRefresh_Idempotente(t *testing.T) {
	catalog := []entity.Product{product("1", "A", "S-1", 5, 10)}
	gw := &fakeGateway{list: func(ctx context.Context) ([]entity.Product, error) { return catalog, nil }}
	s := newStore(gw)

	require.NoError(t, s.Refresh(context.Background()))
	first := s.Products()
	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, first, s.Products())
}

// Un fallo transitorio nunca vacía una colección ya poblada.
func TestRefresh_FalloConservaColeccionPrevia(t *testing.T) {
	catalog := []entity.Product{product("1", "A", "S-1", 5, 10)}
	failing := false
	gw := &fakeGateway{list: func(ctx context.Context) ([]entity.Product, error) {
		if failing {
			return nil, &domain.RemoteError{Reason: "timeout"}
		}
		return catalog, nil
	}}
	s := newStore(gw)

	require.NoError(t, s.Refresh(context.Background()))
	failing = true
	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote, "el error sube sin traducir")
	assert.Equal(t, catalog, s.Products(), "datos viejos visibles antes que pantalla vacía")
}

// Una respuesta en vuelo de un refresh viejo no debe pisar la de uno más nuevo.
func TestRefresh_RespuestaObsoletaNoPisaLaNueva(t *testing.T) {
	oldCatalog := []entity.Product{product("1", "vieja", "S-1", 1, 10)}
	newCatalog := []entity.Product{product("1", "nueva", "S-1", 2, 10)}

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	gw := &fakeGateway{list: func(ctx context.Context) ([]entity.Product, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-release // la primera respuesta llega al final
			return oldCatalog, nil
		}
		return newCatalog, nil
	}}
	s := newStore(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Refresh(context.Background())) // refresh 1, respuesta tardía
	}()
	<-firstStarted

	require.NoError(t, s.Refresh(context.Background())) // refresh 2, resuelve primero
	close(release)
	wg.Wait()

	assert.Equal(t, newCatalog, s.Products(), "gana el refresh iniciado más recientemente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_QueryVaciaDevuelveTodoEnOrden(t *testing.T) {
	catalog := []entity.Product{
		product("1", "B", "S-1", 5, 10),
		product("2", "A", "S-2", 20, 10),
		product("3", "C", "S-3", 0, 10),
	}
	gw := &fakeGateway{list: func(ctx context.Context) ([]entity.Product, error) { return catalog, nil }}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, catalog, s.Search(store.Query{}), "query vacía = colección completa en orden del refresh")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AgregaElProductoDevueltoPorElBackend(t *testing.T) {
	gw := &fakeGateway{
		list: func(ctx context.Context) ([]entity.Product, error) { return nil, nil },
		create: func(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
			p := product("srv-1", in.Name, in.SKU, in.Quantity, in.MinStockLevel)
			return &p, nil
		},
	}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	created, err := s.Create(context.Background(), dto.CreateProductRequest{
		Name: "Widget", SKU: "W-1", Price: decimal.RequireFromString("9.99"), Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID, "el id lo asigna el backend")
	assert.Equal(t, entity.DefaultMinStockLevel, created.MinStockLevel, "umbral ausente se normaliza a 10")

	got, ok := s.Get("srv-1")
	require.True(t, ok)
	assert.Equal(t, *created, got)
}

func TestCreate_ValidacionLocalNoLlamaAlGateway(t *testing.T) {
	called := false
	gw := &fakeGateway{create: func(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
		called = true
		return nil, nil
	}}
	s := newStore(gw)

	_, err := s.Create(context.Background(), dto.CreateProductRequest{Name: "", SKU: ""})
	require.Error(t, err)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "sku")
	assert.False(t, called)
}

func TestUpdate_ReemplazaLaCopiaLocal(t *testing.T) {
	gw := &fakeGateway{
		list: func(ctx context.Context) ([]entity.Product, error) {
			return []entity.Product{product("1", "A", "S-1", 5, 10)}, nil
		},
		update: func(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
			p := product(id, *in.Name, "S-1", 5, 10)
			return &p, nil
		},
	}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	name := "A renombrada"
	_, err := s.Update(context.Background(), "1", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "A renombrada", got.Name)
	assert.Equal(t, 1, s.Len(), "reemplazo, no duplicado")
}

func TestUpdate_FalloDejaLaColeccionIntacta(t *testing.T) {
	original := product("1", "A", "S-1", 5, 10)
	gw := &fakeGateway{
		list: func(ctx context.Context) ([]entity.Product, error) { return []entity.Product{original}, nil },
		update: func(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
			return nil, &domain.RemoteError{Reason: "server error", Status: 500}
		},
	}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	name := "X"
	_, err := s.Update(context.Background(), "1", dto.UpdateProductRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, []entity.Product{original}, s.Products())
}

func TestDelete_QuitaYSegundoBorradoFalla(t *testing.T) {
	exists := true
	gw := &fakeGateway{
		list: func(ctx context.Context) ([]entity.Product, error) {
			return []entity.Product{product("1", "A", "S-1", 5, 10)}, nil
		},
		del: func(ctx context.Context, id string) error {
			if !exists {
				return &domain.NotFoundError{Resource: "product", ID: id}
			}
			exists = false
			return nil
		},
	}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "1"))
	assert.Equal(t, 0, s.Len())

	err := s.Delete(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de la ficha Widget: low con 5/10; tras restock de 10 queda 15/10
// y pasa de "low" a "in".
func TestRestock_WidgetSaleDeLowStock(t *testing.T) {
	widget := entity.Product{
		ID: "w", Name: "Widget", SKU: "W-1",
		Price: decimal.RequireFromString("9.99"), Quantity: 5, MinStockLevel: 10,
	}
	gw := &fakeGateway{
		list: func(ctx context.Context) ([]entity.Product, error) { return []entity.Product{widget}, nil },
		restock: func(ctx context.Context, id string, in dto.RestockRequest) (*entity.Product, *entity.RestockEntry, error) {
			after := widget
			after.Quantity += in.Quantity
			entry := entity.RestockEntry{
				ProductID: id, QuantityAdded: in.Quantity,
				PreviousStock: widget.Quantity, NewStock: after.Quantity, Reason: in.Reason,
			}
			return &after, &entry, nil
		},
	}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	require.Len(t, s.Search(store.Query{Stock: store.StockFilterLow}), 1)

	oldQty := widget.Quantity
	p, entry, err := s.Restock(context.Background(), "w", dto.RestockRequest{Quantity: 10})
	require.NoError(t, err)

	assert.Equal(t, oldQty+10, p.Quantity)
	assert.Equal(t, oldQty, entry.PreviousStock)
	assert.Equal(t, oldQty+10, entry.NewStock)
	assert.Equal(t, entity.DefaultRestockReason, entry.Reason, "motivo en blanco se defaultea")

	assert.Empty(t, s.Search(store.Query{Stock: store.StockFilterLow}))
	require.Len(t, s.Search(store.Query{Stock: store.StockFilterIn}), 1)
}

func TestRestock_CantidadCeroRechazadaYEstadoIntacto(t *testing.T) {
	called := false
	catalog := []entity.Product{product("1", "A", "S-1", 5, 10)}
	gw := &fakeGateway{
		list: func(ctx context.Context) ([]entity.Product, error) { return catalog, nil },
		restock: func(ctx context.Context, id string, in dto.RestockRequest) (*entity.Product, *entity.RestockEntry, error) {
			called = true
			return nil, nil, nil
		},
	}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	_, _, err := s.Restock(context.Background(), "1", dto.RestockRequest{Quantity: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation, "no se recorta ni corrige: se rechaza")
	assert.False(t, called)
	assert.Equal(t, catalog, s.Products())
}

// La vista previa es advisoria; el valor autoritativo viene del backend.
func TestPreviewRestock(t *testing.T) {
	gw := &fakeGateway{list: func(ctx context.Context) ([]entity.Product, error) {
		return []entity.Product{product("1", "A", "S-1", 5, 10)}, nil
	}}
	s := newStore(gw)
	require.NoError(t, s.Refresh(context.Background()))

	preview, err := s.PreviewRestock("1", 10)
	require.NoError(t, err)
	assert.Equal(t, 15, preview)

	_, err = s.PreviewRestock("1", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.PreviewRestock("nope", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
