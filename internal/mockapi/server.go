// Package mockapi backend de inventario embebido para desarrollo local y
// seeds: implementa en memoria el mismo contrato REST (con las mismas
// inconsistencias de sobre y de nombres de campo) que el backend real,
// de modo que el panel se pueda desarrollar y probar sin infraestructura.
package mockapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-panel/internal/application/analytics"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// Server servidor de desarrollo. No persiste nada: el estado vive y muere
// con el proceso.
type Server struct {
	app        *fiber.App
	store      *memoryStore
	aggregator *analytics.Aggregator
	log        *logger.Logger
}

// New construye el servidor con su estado en memoria vacío.
func New(log *logger.Logger) *Server {
	s := &Server{
		store:      newMemoryStore(),
		aggregator: analytics.NewAggregator(),
		log:        log,
	}

	app := fiber.New(fiber.Config{
		AppName:      "inventario-panel mock API",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	api := app.Group("/api")
	api.Get("/health", s.health)

	products := api.Group("/products")
	products.Get("/", s.listProducts)
	products.Post("/", s.createProduct)
	// Rutas fijas antes que /:id para que fiber no las capture como id.
	products.Get("/low-stock", s.lowStock)
	products.Get("/analytics", s.analytics)
	products.Get("/:id", s.getProduct)
	products.Put("/:id", s.updateProduct)
	products.Delete("/:id", s.deleteProduct)
	products.Post("/:id/restock", s.restockProduct)

	api.Get("/restocks", s.restockHistory)

	s.app = app
	return s
}

// App expone la aplicación fiber (para app.Test en los tests).
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen bloquea sirviendo en addr.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("mock API escuchando")
	return s.app.Listen(addr)
}

// Shutdown apaga el servidor drenando conexiones.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
