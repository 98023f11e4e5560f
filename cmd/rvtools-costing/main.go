package main

import (
	"fmt"
	"os"

	"github.com/diillson/rvtools-costing-go/internal/adapter/driven/config"
	"github.com/diillson/rvtools-costing-go/internal/adapter/driven/export"
	"github.com/diillson/rvtools-costing-go/internal/adapter/driven/inventory"
	"github.com/diillson/rvtools-costing-go/internal/adapter/driving/cli"
	"github.com/diillson/rvtools-costing-go/internal/application/usecase"
	"github.com/diillson/rvtools-costing-go/pkg/console"
	"github.com/diillson/rvtools-costing-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	inventoryRepo := inventory.NewInventoryRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	costingUseCase := usecase.NewCostingUseCase(
		inventoryRepo,
		configRepo,
		exportRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetCostingUseCase(costingUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
