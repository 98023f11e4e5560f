package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
	"github.com/diillson/rvtools-costing-go/internal/shared/types"
)

func TestOCPUCount(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	tests := []struct {
		vcpus int
		want  int
	}{
		{0, 1}, // compute is never priced at zero
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{16, 8},
		{-4, 1},
	}
	for _, tt := range tests {
		if got := e.OCPUCount(tt.vcpus); got != tt.want {
			t.Errorf("OCPUCount(%d) = %d, want %d", tt.vcpus, got, tt.want)
		}
	}
}

func TestDetectOSType(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	tests := []struct {
		os   string
		want string
	}{
		{"Microsoft Windows Server 2022 (64-bit)", OSWindows},
		{"windows 10 pro", OSWindows},
		{"Ubuntu Linux (64-bit)", OSLinux},
		{"Oracle Linux 8 (64-bit)", OSLinux},
		{"Red Hat Enterprise Linux 9", OSLinux},
		{"FreeBSD 13", OSOther},
		{"", OSOther},
	}
	for _, tt := range tests {
		if got := e.DetectOSType(tt.os); got != tt.want {
			t.Errorf("DetectOSType(%q) = %q, want %q", tt.os, got, tt.want)
		}
	}
}

func TestPriceTotalIsSumOfLineItems(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	breakdown, warnings := e.Price(entity.VMRecord{
		Name: "web-01", VCPUs: 4, RAMGB: 16, DiskGB: 200,
		OS: "Ubuntu Linux (64-bit)", PowerState: entity.PoweredOn,
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(breakdown.LineItems) != len(entity.ComponentOrder) {
		t.Fatalf("got %d line items, want %d", len(breakdown.LineItems), len(entity.ComponentOrder))
	}

	sum := decimal.Zero
	for _, item := range breakdown.LineItems {
		sum = sum.Add(item.MonthlyCost)
	}
	if !breakdown.MonthlyCost.Equal(sum) {
		t.Errorf("MonthlyCost %s != sum of line items %s", breakdown.MonthlyCost, sum)
	}
	if !breakdown.AnnualCost.Equal(breakdown.MonthlyCost.Mul(decimal.NewFromInt(12))) {
		t.Errorf("AnnualCost %s is not 12x monthly", breakdown.AnnualCost)
	}
}

func TestPriceWindowsVMWorkedExample(t *testing.T) {
	// 4 vCPU / 16 GB / 200 GB Windows, default rate card, 744 h/month:
	// compute 2*20.7576 + memory 16*1.38384 + storage 200*0.023715
	// + 2000 VPUs * 0.001581 + license 2*63.65664 = 198.87492.
	e := NewEngine(DefaultPriceTable())

	breakdown, _ := e.Price(entity.VMRecord{
		Name: "win-01", VCPUs: 4, RAMGB: 16, DiskGB: 200,
		OS: "Microsoft Windows Server 2022 (64-bit)", PowerState: entity.PoweredOn,
	})

	if breakdown.OSType != OSWindows {
		t.Fatalf("OSType = %q", breakdown.OSType)
	}
	if breakdown.OCPUs != 2 {
		t.Fatalf("OCPUs = %d, want 2", breakdown.OCPUs)
	}

	wantByComponent := map[entity.CostComponent]string{
		entity.ComponentCompute:            "41.5152",
		entity.ComponentMemory:             "22.14144",
		entity.ComponentStorage:            "4.743",
		entity.ComponentStoragePerformance: "3.162",
		entity.ComponentOSLicense:          "127.31328",
	}
	for _, item := range breakdown.LineItems {
		want := decimal.RequireFromString(wantByComponent[item.Component])
		if !item.MonthlyCost.Equal(want) {
			t.Errorf("%s = %s, want %s", item.Component, item.MonthlyCost, want)
		}
	}
	if want := decimal.RequireFromString("198.87492"); !breakdown.MonthlyCost.Equal(want) {
		t.Errorf("MonthlyCost = %s, want %s", breakdown.MonthlyCost, want)
	}
}

func TestPriceNonWindowsHasZeroLicenseQuantity(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	for _, os := range []string{"Ubuntu Linux (64-bit)", "FreeBSD 13", ""} {
		breakdown, _ := e.Price(entity.VMRecord{Name: "x", VCPUs: 2, RAMGB: 4, DiskGB: 50, OS: os})
		var license *entity.CostLineItem
		for i := range breakdown.LineItems {
			if breakdown.LineItems[i].Component == entity.ComponentOSLicense {
				license = &breakdown.LineItems[i]
			}
		}
		if license == nil {
			t.Fatalf("os %q: license line item missing", os)
		}
		if !license.Quantity.IsZero() || !license.MonthlyCost.IsZero() {
			t.Errorf("os %q: license qty %s cost %s, want zero", os, license.Quantity, license.MonthlyCost)
		}
	}
}

func TestPriceNegativeValuesCoerceToZeroWithWarnings(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	breakdown, warnings := e.Price(entity.VMRecord{
		Name: "broken-01", VCPUs: -2, RAMGB: -8, DiskGB: -100, OS: "CentOS 7",
	})
	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
	// vCPUs 0 still prices the minimum OCPU; everything else is zero.
	if breakdown.OCPUs != 1 {
		t.Errorf("OCPUs = %d, want minimum 1", breakdown.OCPUs)
	}
	for _, item := range breakdown.LineItems {
		if item.Component == entity.ComponentCompute {
			continue
		}
		if !item.MonthlyCost.IsZero() {
			t.Errorf("%s = %s, want 0 after coercion", item.Component, item.MonthlyCost)
		}
	}
}

func TestBuildReportAggregates(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	set := entity.VMRecordSet{
		Included: []entity.VMRecord{
			{Name: "a", VCPUs: 2, RAMGB: 4, DiskGB: 50, OS: "CentOS 7", PowerState: entity.PoweredOn},
			{Name: "b", VCPUs: 4, RAMGB: 8, DiskGB: 100, OS: "CentOS 7", PowerState: entity.PoweredOn},
		},
		Excluded: []entity.VMRecord{
			{Name: "c", VCPUs: 8, RAMGB: 64, DiskGB: 500, PowerState: entity.PoweredOff},
		},
	}

	report, warnings, err := e.BuildReport(set)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(report.Breakdowns) != 2 {
		t.Fatalf("breakdowns = %d, want 2 (excluded VMs are never priced)", len(report.Breakdowns))
	}

	sum := decimal.Zero
	for _, b := range report.Breakdowns {
		sum = sum.Add(b.MonthlyCost)
	}
	if !report.MonthlyTotal.Equal(sum) {
		t.Errorf("MonthlyTotal %s != %s", report.MonthlyTotal, sum)
	}
	if !report.AnnualTotal.Equal(sum.Mul(decimal.NewFromInt(12))) {
		t.Errorf("AnnualTotal %s is not 12x monthly", report.AnnualTotal)
	}
	if !report.AveragePerVM.Equal(sum.Div(decimal.NewFromInt(2))) {
		t.Errorf("AveragePerVM = %s", report.AveragePerVM)
	}
	if len(report.Excluded) != 1 || report.Excluded[0].Name != "c" {
		t.Errorf("excluded records not carried through: %+v", report.Excluded)
	}
	if report.CurrencySymbol != "€" {
		t.Errorf("currency symbol = %q", report.CurrencySymbol)
	}
}

func TestBuildReportNoIncludedRecords(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	_, _, err := e.BuildReport(entity.VMRecordSet{
		Excluded: []entity.VMRecord{{Name: "off-01", PowerState: entity.PoweredOff}},
	})
	if !errors.Is(err, types.ErrNoVMRecords) {
		t.Fatalf("err = %v, want ErrNoVMRecords", err)
	}
}

func TestComponentTotalsMatchGrandTotal(t *testing.T) {
	e := NewEngine(DefaultPriceTable())

	report, _, err := e.BuildReport(entity.VMRecordSet{
		Included: []entity.VMRecord{
			{Name: "a", VCPUs: 2, RAMGB: 4, DiskGB: 50, OS: "Windows Server 2019", PowerState: entity.PoweredOn},
			{Name: "b", VCPUs: 6, RAMGB: 32, DiskGB: 250, OS: "SUSE Linux Enterprise 15", PowerState: entity.PoweredOn},
		},
	})
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	totals := report.ComponentTotals()
	sum := decimal.Zero
	for _, component := range entity.ComponentOrder {
		sum = sum.Add(totals[component])
	}
	if !sum.Equal(report.MonthlyTotal) {
		t.Errorf("component totals %s != monthly total %s", sum, report.MonthlyTotal)
	}
}
