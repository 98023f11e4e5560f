package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diillson/rvtools-costing-go/internal/shared/types"
)

func TestApplyConfigOverlaysRates(t *testing.T) {
	table, err := DefaultPriceTable().ApplyConfig(types.PricingConfig{
		OCPUHourlyRate:       "0.05",
		HoursPerMonth:        720,
		VCPUsPerOCPU:         1,
		CurrencySymbol:       "$",
		WindowsOSPatternsCSV: "windows, win32 ,",
	})
	if err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}

	if !table.OCPUHourlyRate.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("OCPUHourlyRate = %s", table.OCPUHourlyRate)
	}
	if table.HoursPerMonth != 720 || table.VCPUsPerOCPU != 1 {
		t.Errorf("constants not overridden: %+v", table)
	}
	if table.CurrencySymbol != "$" {
		t.Errorf("currency = %q", table.CurrencySymbol)
	}
	if len(table.WindowsOSPatterns) != 2 || table.WindowsOSPatterns[1] != "win32" {
		t.Errorf("patterns = %v", table.WindowsOSPatterns)
	}

	// Untouched fields keep their defaults.
	if !table.StorageMonthlyRate.Equal(decimal.RequireFromString("0.023715")) {
		t.Errorf("StorageMonthlyRate changed: %s", table.StorageMonthlyRate)
	}
	if table.MinimumOCPU != 1 || table.VPUsPerGB != 10 {
		t.Errorf("untouched constants changed: %+v", table)
	}
}

func TestApplyConfigRejectsMalformedRates(t *testing.T) {
	_, err := DefaultPriceTable().ApplyConfig(types.PricingConfig{
		MemoryHourlyRate: "two cents",
	})
	if err == nil {
		t.Fatal("expected an error for a malformed rate string")
	}
}

func TestApplyConfigChangesOCPUModel(t *testing.T) {
	table, err := DefaultPriceTable().ApplyConfig(types.PricingConfig{VCPUsPerOCPU: 4, MinimumOCPU: 2})
	if err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	e := NewEngine(table)

	tests := []struct {
		vcpus int
		want  int
	}{
		{0, 2},
		{4, 2},
		{9, 3},
	}
	for _, tt := range tests {
		if got := e.OCPUCount(tt.vcpus); got != tt.want {
			t.Errorf("OCPUCount(%d) = %d, want %d", tt.vcpus, got, tt.want)
		}
	}
}
