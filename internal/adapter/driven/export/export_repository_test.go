package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diillson/rvtools-costing-go/internal/adapter/driven/inventory"
	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
	"github.com/diillson/rvtools-costing-go/internal/domain/merge"
	"github.com/diillson/rvtools-costing-go/internal/domain/units"
)

func sampleReport() entity.CostReport {
	monthly := decimal.RequireFromString("42.50")
	return entity.CostReport{
		Breakdowns: []entity.VMCostBreakdown{
			{
				VM:     entity.VMRecord{Name: "web-01", UUID: "abc", VCPUs: 4, RAMGB: 16, DiskGB: 200, PowerState: entity.PoweredOn},
				OSType: "linux",
				OCPUs:  2,
				LineItems: []entity.CostLineItem{
					{Component: entity.ComponentCompute, MonthlyCost: monthly},
				},
				MonthlyCost: monthly,
				AnnualCost:  monthly.Mul(decimal.NewFromInt(12)),
			},
		},
		Excluded: []entity.VMRecord{
			{Name: "db-01", UUID: "def", VCPUs: 8, PowerState: entity.PoweredOff},
		},
		MonthlyTotal:   monthly,
		AnnualTotal:    monthly.Mul(decimal.NewFromInt(12)),
		AveragePerVM:   monthly,
		CurrencySymbol: "€",
	}
}

func TestExportToCSV(t *testing.T) {
	path, err := NewExportRepository().ExportToCSV(sampleReport(), "estimate", t.TempDir())
	if err != nil {
		t.Fatalf("ExportToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	// header + 1 priced VM + 1 excluded VM + totals row
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[1][0] != "web-01" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[2][0] != "db-01" {
		t.Errorf("excluded row = %v", rows[2])
	}
	last := rows[len(rows)-1]
	if last[0] != "TOTAL" || last[len(last)-1] != "510.00" {
		t.Errorf("totals row = %v", last)
	}
}

func TestExportToJSONRoundTrips(t *testing.T) {
	path, err := NewExportRepository().ExportToJSON(sampleReport(), "estimate", t.TempDir())
	if err != nil {
		t.Fatalf("ExportToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var report entity.CostReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(report.Breakdowns) != 1 || report.Breakdowns[0].VM.Name != "web-01" {
		t.Errorf("breakdowns: %+v", report.Breakdowns)
	}
	if !report.MonthlyTotal.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("monthly total: %s", report.MonthlyTotal)
	}
}

func TestExportInventoryToCSV(t *testing.T) {
	set := entity.VMRecordSet{
		Included: []entity.VMRecord{
			{Name: "web-01", UUID: "abc", VCPUs: 4, RAMGB: 16, DiskGB: 175.5, OS: "Ubuntu Linux (64-bit)", PowerState: entity.PoweredOn},
		},
		Excluded: []entity.VMRecord{
			{Name: "db-01", UUID: "def", VCPUs: 8, PowerState: entity.PoweredOff},
		},
	}

	path, err := NewExportRepository().ExportInventoryToCSV(set, "inventory", t.TempDir())
	if err != nil {
		t.Fatalf("ExportInventoryToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}
	if rows[0][0] != "VM Name" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][4] != "175.5" {
		t.Errorf("disk cell = %q", rows[1][4])
	}
	if rows[2][6] != "poweredOff" {
		t.Errorf("power state cell = %q", rows[2][6])
	}
}

func TestInventoryCSVRoundTripsThroughPipeline(t *testing.T) {
	// O CSV canônico deve servir de entrada para uma nova execução e
	// reproduzir os mesmos registros essenciais.
	set := entity.VMRecordSet{
		Included: []entity.VMRecord{
			{
				Name: "web-01", UUID: "4217bdd8-5a3b-8f87-19d5-11ad36c0465f",
				VCPUs: 4, RAMGB: 16, DiskGB: 175.5,
				OS: "Ubuntu Linux (64-bit)", PowerState: entity.PoweredOn,
			},
		},
		Excluded: []entity.VMRecord{
			{
				Name: "db-01", UUID: "42173a1c-9f2e-40d1-bb31-0aa1f35d90cc",
				VCPUs: 8, RAMGB: 32, DiskGB: 500,
				OS: "Oracle Linux 8 (64-bit)", PowerState: entity.PoweredOff,
			},
		},
	}

	path, err := NewExportRepository().ExportInventoryToCSV(set, "inventory", t.TempDir())
	if err != nil {
		t.Fatalf("ExportInventoryToCSV: %v", err)
	}

	tables, err := inventory.NewInventoryRepository().LoadTables(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	res, err := merge.NewMerger(units.NewNormalizer(0, 0)).Merge(tables)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	want := set.All()
	if len(res.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(res.Records), len(want))
	}
	for i, rec := range res.Records {
		w := want[i]
		if rec.Name != w.Name || rec.UUID != w.UUID || rec.VCPUs != w.VCPUs {
			t.Errorf("record %d identity mismatch: got %+v, want %+v", i, rec, w)
		}
		if rec.RAMGB != w.RAMGB || rec.DiskGB != w.DiskGB {
			t.Errorf("record %d sizes changed on re-ingest: got RAM %v disk %v, want RAM %v disk %v",
				i, rec.RAMGB, rec.DiskGB, w.RAMGB, w.DiskGB)
		}
		if rec.OS != w.OS || rec.PowerState != w.PowerState {
			t.Errorf("record %d OS/power mismatch: got %q/%q, want %q/%q",
				i, rec.OS, rec.PowerState, w.OS, w.PowerState)
		}
	}
}

func TestGenerateFilenameCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/reports"

	path, err := generateFilename("estimate", dir, "csv")
	if err != nil {
		t.Fatalf("generateFilename: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("path %q outside requested dir %q", path, dir)
	}
	if !strings.HasSuffix(path, ".csv") || !strings.Contains(path, "estimate_") {
		t.Errorf("unexpected filename %q", path)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestCleanRichTags(t *testing.T) {
	in := "[red]alert[/red] \x1B[31mcolored\x1B[0m plain"
	if got := cleanRichTags(in); got != "alert colored plain" {
		t.Errorf("cleanRichTags = %q", got)
	}
}
