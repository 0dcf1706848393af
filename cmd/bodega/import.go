package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bodega-core/pkg/config"
	"github.com/jhoicas/bodega-core/pkg/logger"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Importar un fichero de texto (PARTNER / BATCH_S / BATCH_M) y guardar el snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	wh, store, cleanup, err := buildWarehouse(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := wh.ImportFile(args[0]); err != nil {
		return err
	}
	data, err := wh.Snapshot()
	if err != nil {
		return err
	}
	if err := store.Save(ctx, data); err != nil {
		return err
	}
	log.Info().Str("file", args[0]).Msg("importación completada y snapshot guardado")
	return nil
}
