// Package pricing maps canonical VM records to a per-component cloud cost
// breakdown using a static, overridable rate card.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diillson/rvtools-costing-go/internal/shared/types"
)

// PriceTable is the rate card: currency per unit per billing period, plus the
// derived constants of the OCPU/VPU model. All rates are monetary decimals.
type PriceTable struct {
	OCPUHourlyRate     decimal.Decimal
	MemoryHourlyRate   decimal.Decimal
	StorageMonthlyRate decimal.Decimal
	VPUMonthlyRate     decimal.Decimal
	WindowsHourlyRate  decimal.Decimal

	HoursPerMonth int
	VCPUsPerOCPU  int
	MinimumOCPU   int
	VPUsPerGB     int

	CurrencySymbol    string
	WindowsOSPatterns []string
}

// DefaultPriceTable retorna o rate card público da Oracle Cloud (EUR),
// 24/7 (744 horas/mês).
func DefaultPriceTable() PriceTable {
	return PriceTable{
		OCPUHourlyRate:     decimal.RequireFromString("0.0279"),
		MemoryHourlyRate:   decimal.RequireFromString("0.00186"),
		StorageMonthlyRate: decimal.RequireFromString("0.023715"),
		VPUMonthlyRate:     decimal.RequireFromString("0.001581"),
		WindowsHourlyRate:  decimal.RequireFromString("0.08556"),
		HoursPerMonth:      744,
		VCPUsPerOCPU:       2,
		MinimumOCPU:        1,
		VPUsPerGB:          10,
		CurrencySymbol:     "€",
		WindowsOSPatterns:  []string{"windows", "microsoft"},
	}
}

// ApplyConfig overlays the file-provided overrides onto the table. Empty or
// zero config values keep the defaults; malformed rate strings are errors.
func (t PriceTable) ApplyConfig(cfg types.PricingConfig) (PriceTable, error) {
	overlay := func(dst *decimal.Decimal, raw, name string) error {
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
		*dst = d
		return nil
	}

	if err := overlay(&t.OCPUHourlyRate, cfg.OCPUHourlyRate, "ocpu_hourly_rate"); err != nil {
		return t, err
	}
	if err := overlay(&t.MemoryHourlyRate, cfg.MemoryHourlyRate, "memory_hourly_rate"); err != nil {
		return t, err
	}
	if err := overlay(&t.StorageMonthlyRate, cfg.StorageMonthlyRate, "storage_monthly_rate"); err != nil {
		return t, err
	}
	if err := overlay(&t.VPUMonthlyRate, cfg.VPUMonthlyRate, "vpu_monthly_rate"); err != nil {
		return t, err
	}
	if err := overlay(&t.WindowsHourlyRate, cfg.WindowsHourlyRate, "windows_hourly_rate"); err != nil {
		return t, err
	}

	if cfg.HoursPerMonth > 0 {
		t.HoursPerMonth = cfg.HoursPerMonth
	}
	if cfg.VCPUsPerOCPU > 0 {
		t.VCPUsPerOCPU = cfg.VCPUsPerOCPU
	}
	if cfg.MinimumOCPU > 0 {
		t.MinimumOCPU = cfg.MinimumOCPU
	}
	if cfg.VPUsPerGB > 0 {
		t.VPUsPerGB = cfg.VPUsPerGB
	}
	if cfg.CurrencySymbol != "" {
		t.CurrencySymbol = cfg.CurrencySymbol
	}
	if cfg.WindowsOSPatternsCSV != "" {
		var patterns []string
		for _, p := range strings.Split(cfg.WindowsOSPatternsCSV, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		if len(patterns) > 0 {
			t.WindowsOSPatterns = patterns
		}
	}

	return t, nil
}

// hours devolve o fator horas/mês como decimal.
func (t PriceTable) hours() decimal.Decimal {
	return decimal.NewFromInt(int64(t.HoursPerMonth))
}
