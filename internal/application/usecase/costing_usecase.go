package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
	"github.com/diillson/rvtools-costing-go/internal/domain/merge"
	"github.com/diillson/rvtools-costing-go/internal/domain/pricing"
	"github.com/diillson/rvtools-costing-go/internal/domain/repository"
	"github.com/diillson/rvtools-costing-go/internal/domain/units"
	"github.com/diillson/rvtools-costing-go/internal/shared/types"
)

// CostingUseCase handles the inventory-to-estimate pipeline.
type CostingUseCase struct {
	inventoryRepo repository.InventoryRepository
	configRepo    repository.ConfigRepository
	exportRepo    repository.ExportRepository
	console       types.ConsoleInterface
}

// NewCostingUseCase creates a new costing use case.
func NewCostingUseCase(
	inventoryRepo repository.InventoryRepository,
	configRepo repository.ConfigRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
) *CostingUseCase {
	return &CostingUseCase{
		inventoryRepo: inventoryRepo,
		configRepo:    configRepo,
		exportRepo:    exportRepo,
		console:       console,
	}
}

// ResolveConfig carrega o arquivo de configuração (quando fornecido) e aplica
// os argumentos da CLI por cima: flags explícitas vencem o arquivo.
func (uc *CostingUseCase) ResolveConfig(args *types.CLIArgs) (*types.Config, error) {
	config := &types.Config{}

	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		config = loaded
		uc.console.LogInfo("Loaded configuration from %s", args.ConfigFile)
	}

	config.All = config.All || args.All
	config.Comprehensive = config.Comprehensive || args.Comprehensive
	if args.ReportName != "" {
		config.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		config.ReportType = args.ReportType
	}
	if args.Dir != "" {
		config.Dir = args.Dir
	}

	return config, nil
}

// RunCosting executa o pipeline completo: carrega as tabelas de inventário,
// mescla em registros canônicos, aplica os filtros e calcula a estimativa.
func (uc *CostingUseCase) RunCosting(ctx context.Context, args *types.CLIArgs) error {
	config, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}

	priceTable, err := pricing.DefaultPriceTable().ApplyConfig(config.Pricing)
	if err != nil {
		return fmt.Errorf("invalid pricing configuration: %w", err)
	}

	status := uc.console.Status(fmt.Sprintf("Loading inventory from %s...", args.InputPath))
	tables, err := uc.inventoryRepo.LoadTables(ctx, args.InputPath)
	if err != nil {
		status.Stop()
		return err
	}
	status.Update(fmt.Sprintf("Merging %d inventory tables...", len(tables)))

	normalizer := units.NewNormalizer(config.Units.MiBPerGB, config.Units.MBPerGB)
	merged, err := merge.NewMerger(normalizer).Merge(tables)
	if err != nil {
		status.Stop()
		return err
	}
	status.Stop()

	for _, warning := range merged.Warnings {
		uc.console.LogDebug("%s", warning)
	}
	uc.console.LogInfo("Merged %d tables into %d virtual machines (primary: %s)",
		len(tables), len(merged.Records), merged.Primary)

	set := merge.BuildRecordSet(merged.Records, merge.BuildOptions{
		Comprehensive: config.Comprehensive,
	})
	if len(set.Excluded) > 0 && !config.All {
		uc.console.LogInfo("%d VMs are not powered on and were excluded (use --all to list them)", len(set.Excluded))
	}

	engine := pricing.NewEngine(priceTable)
	rates := engine.Table()
	uc.console.LogDebug("Rate card: OCPU %s/h, memory %s/GB/h, storage %s/GB/month, %d vCPUs per OCPU (minimum %d), %d hours/month",
		rates.OCPUHourlyRate, rates.MemoryHourlyRate, rates.StorageMonthlyRate,
		rates.VCPUsPerOCPU, rates.MinimumOCPU, rates.HoursPerMonth)
	for _, vm := range set.Included {
		if !vm.HasResources() {
			uc.console.LogWarning("VM %s reports no CPU, memory or disk; only the minimum OCPU will be priced", vm.Name)
		}
	}
	report, warnings, err := engine.BuildReport(set)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		uc.console.LogWarning("%s", warning)
	}

	uc.displaySummary(report)
	uc.displayComponentBars(report)
	if config.All && len(report.Excluded) > 0 {
		uc.displayExcluded(report.Excluded)
	}

	if err := uc.exportReports(report, config); err != nil {
		return err
	}

	if args.InventoryCSV != "" {
		csvPath, err := uc.exportRepo.ExportInventoryToCSV(set, args.InventoryCSV, config.Dir)
		if err != nil {
			uc.console.LogError("Failed to export inventory CSV: %s", err)
		} else {
			uc.console.LogSuccess("Successfully exported canonical inventory to CSV: %s", csvPath)
		}
	}

	return nil
}

// displaySummary renderiza a tabela principal de custos, ordenada do maior
// custo mensal para o menor.
func (uc *CostingUseCase) displaySummary(report entity.CostReport) {
	table := uc.console.CreateTable()
	table.AddColumn("VM Name")
	table.AddColumn("OS Type")
	table.AddColumn("vCPUs")
	table.AddColumn("OCPUs")
	table.AddColumn("RAM (GB)")
	table.AddColumn("Disk (GB)")
	table.AddColumn("Monthly Cost")
	table.AddColumn("Annual Cost")

	sorted := make([]entity.VMCostBreakdown, len(report.Breakdowns))
	copy(sorted, report.Breakdowns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MonthlyCost.GreaterThan(sorted[j].MonthlyCost)
	})

	for _, breakdown := range sorted {
		table.AddRow(
			breakdown.VM.Name,
			breakdown.OSType,
			breakdown.VM.VCPUs,
			breakdown.OCPUs,
			fmt.Sprintf("%.1f", breakdown.VM.RAMGB),
			fmt.Sprintf("%.1f", breakdown.VM.DiskGB),
			uc.money(report.CurrencySymbol, breakdown.MonthlyCost),
			uc.money(report.CurrencySymbol, breakdown.AnnualCost),
		)
	}
	table.AddRow(
		"TOTAL", "", "", "", "", "",
		uc.money(report.CurrencySymbol, report.MonthlyTotal),
		uc.money(report.CurrencySymbol, report.AnnualTotal),
	)

	uc.console.Print(table.Render())
	uc.console.LogInfo("Estimated monthly cost: %s | annual: %s | average per VM: %s",
		uc.money(report.CurrencySymbol, report.MonthlyTotal),
		uc.money(report.CurrencySymbol, report.AnnualTotal),
		uc.money(report.CurrencySymbol, report.AveragePerVM))
}

// displayComponentBars mostra a composição do custo por componente de billing.
func (uc *CostingUseCase) displayComponentBars(report entity.CostReport) {
	totals := report.ComponentTotals()
	components := lo.Map(entity.ComponentOrder, func(component entity.CostComponent, _ int) types.ComponentCost {
		cost, _ := totals[component].Float64()
		return types.ComponentCost{Component: string(component), Cost: cost}
	})
	uc.console.DisplayComponentBars(components, report.CurrencySymbol)
}

// displayExcluded lista as VMs fora da estimativa, sem custos calculados.
func (uc *CostingUseCase) displayExcluded(excluded []entity.VMRecord) {
	table := uc.console.CreateTable()
	table.AddColumn("VM Name")
	table.AddColumn("Power State")
	table.AddColumn("vCPUs")
	table.AddColumn("RAM (GB)")
	table.AddColumn("Disk (GB)")

	for _, vm := range excluded {
		table.AddRow(
			vm.Name,
			string(vm.PowerState),
			vm.VCPUs,
			fmt.Sprintf("%.1f", vm.RAMGB),
			fmt.Sprintf("%.1f", vm.DiskGB),
		)
	}

	uc.console.LogInfo("VMs excluded from the estimate (not powered on):")
	uc.console.Print(table.Render())
}

// exportReports grava os relatórios solicitados via --report-name/--report-type.
func (uc *CostingUseCase) exportReports(report entity.CostReport, config *types.Config) error {
	if config.ReportName == "" || len(config.ReportType) == 0 {
		return nil
	}

	progress := uc.console.ProgressWithTotal(len(config.ReportType))
	defer progress.Stop()

	for _, reportType := range config.ReportType {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(report, config.ReportName, config.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(report, config.ReportName, config.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(report, config.ReportName, config.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' (expected csv, json or pdf)", reportType)
		}
		progress.Increment()
	}

	return nil
}

func (uc *CostingUseCase) money(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}
