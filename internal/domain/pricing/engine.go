package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
	"github.com/diillson/rvtools-costing-go/internal/shared/types"
)

// OSType classifica o sistema operacional para fins de licenciamento.
const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSOther   = "other"
)

var linuxPatterns = []string{"ubuntu", "centos", "oracle linux", "debian", "suse", "red hat", "linux"}

// Warning records a numeric field that had to be coerced before pricing.
type Warning struct {
	VM      string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.VM, w.Message)
}

// Engine computes per-VM cost breakdowns. Pure per-record computation; the
// only cross-VM dependency is the aggregate summation in BuildReport.
type Engine struct {
	table PriceTable
}

// NewEngine cria um engine de precificação sobre o rate card fornecido.
func NewEngine(table PriceTable) *Engine {
	return &Engine{table: table}
}

// Table returns the rate card in use.
func (e *Engine) Table() PriceTable {
	return e.table
}

// DetectOSType classifies an OS description string. Windows detection is a
// case-insensitive substring match against the configured patterns; Linux
// and everything else carry no license cost.
func (e *Engine) DetectOSType(osConfig string) string {
	lower := strings.ToLower(osConfig)
	for _, p := range e.table.WindowsOSPatterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return OSWindows
		}
	}
	for _, p := range linuxPatterns {
		if strings.Contains(lower, p) {
			return OSLinux
		}
	}
	return OSOther
}

// OCPUCount converte vCPUs em OCPUs: ceil(vCPUs / ratio) com piso mínimo.
// vCPUs = 0 ainda resulta no mínimo — compute nunca é precificado a zero.
func (e *Engine) OCPUCount(vcpus int) int {
	if vcpus < 0 {
		vcpus = 0
	}
	ocpu := (vcpus + e.table.VCPUsPerOCPU - 1) / e.table.VCPUsPerOCPU
	if ocpu < e.table.MinimumOCPU {
		ocpu = e.table.MinimumOCPU
	}
	return ocpu
}

// Price computes the five-component breakdown for one VM. Negative numeric
// fields are treated as 0 after a warning; NaN never reaches the totals.
func (e *Engine) Price(vm entity.VMRecord) (entity.VMCostBreakdown, []Warning) {
	var warnings []Warning

	vcpus := vm.VCPUs
	if vcpus < 0 {
		warnings = append(warnings, Warning{VM: vm.Name, Message: fmt.Sprintf("negative vCPU count %d treated as 0", vcpus)})
		vcpus = 0
	}
	ramGB := decimal.NewFromFloat(vm.RAMGB)
	if ramGB.IsNegative() {
		warnings = append(warnings, Warning{VM: vm.Name, Message: fmt.Sprintf("negative RAM %.2f GB treated as 0", vm.RAMGB)})
		ramGB = decimal.Zero
	}
	diskGB := decimal.NewFromFloat(vm.DiskGB)
	if diskGB.IsNegative() {
		warnings = append(warnings, Warning{VM: vm.Name, Message: fmt.Sprintf("negative disk %.2f GB treated as 0", vm.DiskGB)})
		diskGB = decimal.Zero
	}

	osType := e.DetectOSType(vm.OS)
	ocpus := e.OCPUCount(vcpus)
	ocpuQty := decimal.NewFromInt(int64(ocpus))

	ocpuMonthly := e.table.OCPUHourlyRate.Mul(e.table.hours())
	memMonthly := e.table.MemoryHourlyRate.Mul(e.table.hours())
	winMonthly := e.table.WindowsHourlyRate.Mul(e.table.hours())
	vpuQty := diskGB.Mul(decimal.NewFromInt(int64(e.table.VPUsPerGB)))

	licenseQty := decimal.Zero
	licenseRate := winMonthly
	if osType == OSWindows {
		licenseQty = ocpuQty
	}

	items := []entity.CostLineItem{
		{
			Component:   entity.ComponentCompute,
			Description: fmt.Sprintf("OCPU (%d OCPU for %d vCPU)", ocpus, vcpus),
			Quantity:    ocpuQty,
			Unit:        "OCPU",
			UnitRate:    ocpuMonthly,
			MonthlyCost: ocpuQty.Mul(ocpuMonthly),
		},
		{
			Component:   entity.ComponentMemory,
			Description: fmt.Sprintf("Memory (%s GB)", ramGB.StringFixed(1)),
			Quantity:    ramGB,
			Unit:        "GB",
			UnitRate:    memMonthly,
			MonthlyCost: ramGB.Mul(memMonthly),
		},
		{
			Component:   entity.ComponentStorage,
			Description: fmt.Sprintf("Block Volume Storage (%s GB)", diskGB.StringFixed(1)),
			Quantity:    diskGB,
			Unit:        "GB",
			UnitRate:    e.table.StorageMonthlyRate,
			MonthlyCost: diskGB.Mul(e.table.StorageMonthlyRate),
		},
		{
			Component:   entity.ComponentStoragePerformance,
			Description: fmt.Sprintf("Block Volume VPUs (%s VPUs)", vpuQty.StringFixed(1)),
			Quantity:    vpuQty,
			Unit:        "VPU",
			UnitRate:    e.table.VPUMonthlyRate,
			MonthlyCost: vpuQty.Mul(e.table.VPUMonthlyRate),
		},
		{
			Component:   entity.ComponentOSLicense,
			Description: fmt.Sprintf("Windows Server License (%s OCPU)", licenseQty.String()),
			Quantity:    licenseQty,
			Unit:        "OCPU",
			UnitRate:    licenseRate,
			MonthlyCost: licenseQty.Mul(licenseRate),
		},
	}

	monthly := decimal.Zero
	for _, li := range items {
		monthly = monthly.Add(li.MonthlyCost)
	}

	return entity.VMCostBreakdown{
		VM:          vm,
		OSType:      osType,
		OCPUs:       ocpus,
		LineItems:   items,
		MonthlyCost: monthly,
		AnnualCost:  monthly.Mul(decimal.NewFromInt(12)),
	}, warnings
}

// BuildReport prices every included record and aggregates the totals.
// Excluded VMs contribute nothing to the totals; their specifications are
// carried through for the excluded section of the report.
func (e *Engine) BuildReport(set entity.VMRecordSet) (entity.CostReport, []Warning, error) {
	if len(set.Included) == 0 {
		return entity.CostReport{}, nil, types.ErrNoVMRecords
	}

	report := entity.CostReport{
		Excluded:       set.Excluded,
		CurrencySymbol: e.table.CurrencySymbol,
	}

	var warnings []Warning
	for _, vm := range set.Included {
		breakdown, w := e.Price(vm)
		warnings = append(warnings, w...)
		report.Breakdowns = append(report.Breakdowns, breakdown)
		report.MonthlyTotal = report.MonthlyTotal.Add(breakdown.MonthlyCost)
	}

	report.AnnualTotal = report.MonthlyTotal.Mul(decimal.NewFromInt(12))
	report.AveragePerVM = report.MonthlyTotal.Div(decimal.NewFromInt(int64(len(report.Breakdowns))))
	return report, warnings, nil
}
