package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
	"github.com/diillson/rvtools-costing-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Funções de Exportação do Relatório de Custos ---

func (r *ExportRepositoryImpl) ExportToCSV(report entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"VM Name", "VM UUID", "OS Type", "vCPUs", "OCPUs", "RAM (GB)", "Disk (GB)"}
	for _, component := range entity.ComponentOrder {
		headers = append(headers, fmt.Sprintf("%s (%s/month)", component, report.CurrencySymbol))
	}
	headers = append(headers, "Monthly Cost", "Annual Cost")
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, breakdown := range report.Breakdowns {
		record := []string{
			breakdown.VM.Name,
			breakdown.VM.UUID,
			breakdown.OSType,
			strconv.Itoa(breakdown.VM.VCPUs),
			strconv.Itoa(breakdown.OCPUs),
			formatAmount(breakdown.VM.RAMGB),
			formatAmount(breakdown.VM.DiskGB),
		}
		byComponent := componentCosts(breakdown)
		for _, component := range entity.ComponentOrder {
			record = append(record, byComponent[component].StringFixed(2))
		}
		record = append(record,
			breakdown.MonthlyCost.StringFixed(2),
			breakdown.AnnualCost.StringFixed(2),
		)
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	// VMs fora do relatório (desligadas/suspensas) saem sem custos calculados.
	for _, vm := range report.Excluded {
		record := []string{
			vm.Name, vm.UUID, "", strconv.Itoa(vm.VCPUs), "",
			formatAmount(vm.RAMGB), formatAmount(vm.DiskGB),
		}
		for range entity.ComponentOrder {
			record = append(record, "")
		}
		record = append(record, "", "")
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	totals := []string{"TOTAL", "", "", "", "", "", ""}
	componentTotals := report.ComponentTotals()
	for _, component := range entity.ComponentOrder {
		totals = append(totals, componentTotals[component].StringFixed(2))
	}
	totals = append(totals, report.MonthlyTotal.StringFixed(2), report.AnnualTotal.StringFixed(2))
	if err := writer.Write(totals); err != nil {
		return "", fmt.Errorf("error writing CSV totals: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.CostReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Oracle Cloud Cost Estimate"), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Virtual machines priced: %d", len(report.Breakdowns))), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
	pdf.Cell(0, 8, "Cost Summary")
	pdf.Ln(7)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(95, 12, tr(money(report.CurrencySymbol, report.MonthlyTotal)+" / month"), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 12, tr(money(report.CurrencySymbol, report.AnnualTotal)+" / year"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Average per VM: %s / month", money(report.CurrencySymbol, report.AveragePerVM))), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	componentTotals := report.ComponentTotals()
	componentStr := ""
	for _, component := range entity.ComponentOrder {
		componentStr += fmt.Sprintf("%s: %s\n", component, money(report.CurrencySymbol, componentTotals[component]))
	}
	drawSection("Cost By Component", strings.TrimSpace(componentStr))

	vmStr := ""
	for _, breakdown := range report.Breakdowns {
		vmStr += fmt.Sprintf("%s (%d vCPU / %d OCPU, %s GB RAM, %s GB disk): %s\n",
			breakdown.VM.Name, breakdown.VM.VCPUs, breakdown.OCPUs,
			formatAmount(breakdown.VM.RAMGB), formatAmount(breakdown.VM.DiskGB),
			money(report.CurrencySymbol, breakdown.MonthlyCost))
	}
	drawSection("Virtual Machines", strings.TrimSpace(vmStr))

	if len(report.Excluded) > 0 {
		excludedStr := ""
		for _, vm := range report.Excluded {
			excludedStr += fmt.Sprintf("%s (%s)\n", vm.Name, vm.PowerState)
		}
		drawSection("Excluded (not powered on)", strings.TrimSpace(excludedStr))
	}

	// Rodapé
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by RVTools Costing (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Exportação do Inventário Canônico ---

// ExportInventoryToCSV grava o inventário mesclado no formato canônico, que
// pode ser realimentado como entrada do pipeline.
func (r *ExportRepositoryImpl) ExportInventoryToCSV(set entity.VMRecordSet, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating inventory CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"VM Name", "VM UUID", "vCPUs", "Memory GB", "Disk GB",
		"OS according to the configuration file", "Powerstate", "Annotation",
		"Network Count", "Snapshot Count", "Tools Status",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing inventory CSV header: %w", err)
	}

	for _, vm := range set.All() {
		record := []string{
			vm.Name,
			vm.UUID,
			strconv.Itoa(vm.VCPUs),
			formatAmount(vm.RAMGB),
			formatAmount(vm.DiskGB),
			vm.OS,
			string(vm.PowerState),
			cleanRichTags(vm.Annotation),
			strconv.Itoa(vm.NetworkCount),
			strconv.Itoa(vm.SnapshotCount),
			vm.ToolsStatus,
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing inventory CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

func componentCosts(breakdown entity.VMCostBreakdown) map[entity.CostComponent]decimal.Decimal {
	costs := make(map[entity.CostComponent]decimal.Decimal, len(breakdown.LineItems))
	for _, item := range breakdown.LineItems {
		costs[item.Component] = costs[item.Component].Add(item.MonthlyCost)
	}
	return costs
}

func money(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
