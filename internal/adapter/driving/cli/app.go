package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/diillson/rvtools-costing-go/internal/application/usecase"
	"github.com/diillson/rvtools-costing-go/internal/shared/types"
	"github.com/diillson/rvtools-costing-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd        *cobra.Command
	costingUseCase *usecase.CostingUseCase
	version        string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "rvtools-costing <input>",
		Short:   "Oracle Cloud cost estimates from RVTools inventory exports",
		Long:    "Reads an RVTools export (ZIP archive, directory of CSVs, or a single canonical CSV), merges the per-table data into one record per virtual machine and estimates the monthly Oracle Cloud cost of the powered-on fleet.",
		Version: formattedVersion, // Use a versão formatada
		Args:    cobra.ExactArgs(1),
		RunE:    app.runCommand,
	}

	// Personaliza a template para incluir mais informações de versão
	rootCmd.SetVersionTemplate(`{{printf "RVTools Costing version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file with pricing and unit overrides")
	rootCmd.PersistentFlags().BoolP("all", "a", false, "List VMs that are not powered on alongside the estimate (they are never priced)")
	rootCmd.PersistentFlags().Bool("comprehensive", false, "Keep the comprehensive column set (network adapters, snapshots, tools status)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().String("inventory-csv", "", "Also export the merged inventory as a canonical CSV with this base name")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show data-quality warnings collected during the merge")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(positional []string) (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	all, _ := app.rootCmd.Flags().GetBool("all")
	comprehensive, _ := app.rootCmd.Flags().GetBool("comprehensive")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	inventoryCSV, _ := app.rootCmd.Flags().GetString("inventory-csv")
	verbose, _ := app.rootCmd.Flags().GetBool("verbose")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		// Convert to absolute path
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		InputPath:     positional[0],
		ConfigFile:    configFile,
		All:           all,
		Comprehensive: comprehensive,
		ReportName:    reportName,
		ReportType:    reportType,
		Dir:           dir,
		InventoryCSV:  inventoryCSV,
		Verbose:       verbose,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs(args)
	if err != nil {
		return err
	}

	if cliArgs.Verbose {
		pterm.EnableDebugMessages()
	}

	// Executa o pipeline de custos
	ctx := context.Background()
	return app.costingUseCase.RunCosting(ctx, cliArgs)
}

// SetCostingUseCase sets the costing use case for the CLI app.
func (app *CLIApp) SetCostingUseCase(useCase *usecase.CostingUseCase) {
	app.costingUseCase = useCase
}
