package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bodega",
	Short: "Motor de inventario y transacciones de bodega",
	Long: `bodega gestiona el catálogo de productos de una bodega, sus lotes de
stock con precio, los socios comerciales y las transacciones entre ellos
(ventas, adquisiciones y desagregaciones), con fabricación recursiva de
productos derivados y notificaciones de precio.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
