package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpiface "github.com/jhoicas/bodega-core/internal/interfaces/http"
	"github.com/jhoicas/bodega-core/pkg/config"
	"github.com/jhoicas/bodega-core/pkg/logger"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("load", false, "Restaurar el snapshot persistido antes de servir")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Arrancar la superficie HTTP del motor",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	wh, store, cleanup, err := buildWarehouse(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if load, _ := cmd.Flags().GetBool("load"); load {
		data, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("cargar snapshot: %w", err)
		}
		if err := wh.Restore(data); err != nil {
			return fmt.Errorf("restaurar estado: %w", err)
		}
	}

	app := httpiface.NewApp(cfg.App.Name, wh, store, log)

	// Apagado ordenado: guardar snapshot antes de salir
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info().Msg("apagando; guardando snapshot")
		if data, err := wh.Snapshot(); err == nil {
			if err := store.Save(ctx, data); err != nil {
				log.Error().Err(err).Msg("guardar snapshot al apagar")
			}
		}
		_ = app.Shutdown()
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		return fmt.Errorf("servidor HTTP: %w", err)
	}
	return nil
}
