package entity

import "github.com/shopspring/decimal"

// CostComponent names one line of the per-VM bill of materials.
type CostComponent string

const (
	ComponentCompute            CostComponent = "Compute"
	ComponentMemory             CostComponent = "Memory"
	ComponentStorage            CostComponent = "Storage"
	ComponentStoragePerformance CostComponent = "Storage Performance"
	ComponentOSLicense          CostComponent = "OS License"
)

// ComponentOrder is the fixed presentation order of the billing components.
var ComponentOrder = []CostComponent{
	ComponentCompute,
	ComponentMemory,
	ComponentStorage,
	ComponentStoragePerformance,
	ComponentOSLicense,
}

// CostLineItem is a single priced component of a VM.
type CostLineItem struct {
	Component   CostComponent   `json:"component"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// VMCostBreakdown é o bill of materials completo de uma VM.
type VMCostBreakdown struct {
	VM          VMRecord        `json:"vm"`
	OSType      string          `json:"os_type"`
	OCPUs       int             `json:"ocpus"`
	LineItems   []CostLineItem  `json:"line_items"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
	AnnualCost  decimal.Decimal `json:"annual_cost"`
}

// CostReport is the aggregate output consumed by the reporting collaborators.
type CostReport struct {
	Breakdowns     []VMCostBreakdown `json:"breakdowns"`
	Excluded       []VMRecord        `json:"excluded"`
	MonthlyTotal   decimal.Decimal   `json:"monthly_total"`
	AnnualTotal    decimal.Decimal   `json:"annual_total"`
	AveragePerVM   decimal.Decimal   `json:"average_per_vm"`
	CurrencySymbol string            `json:"currency_symbol"`
}

// ComponentTotals aggregates monthly cost per billing component across all
// included VMs, in the fixed component order.
func (r CostReport) ComponentTotals() map[CostComponent]decimal.Decimal {
	totals := make(map[CostComponent]decimal.Decimal, len(ComponentOrder))
	for _, b := range r.Breakdowns {
		for _, li := range b.LineItems {
			totals[li.Component] = totals[li.Component].Add(li.MonthlyCost)
		}
	}
	return totals
}
