package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/inventario-panel/internal/mockapi"
	"github.com/jhoicas/inventario-panel/pkg/config"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// Backend de inventario en memoria para desarrollo local: sirve el mismo
// contrato REST (y las mismas inconsistencias) que el backend real.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando mock API")

	srv := mockapi.New(log)

	go func() {
		if err := srv.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	if err := srv.Shutdown(); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
