package repository

import (
	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(report entity.CostReport, filename string, outputDir string) (string, error)
	ExportToJSON(report entity.CostReport, filename string, outputDir string) (string, error)
	ExportToPDF(report entity.CostReport, filename string, outputDir string) (string, error)

	// Canonical inventory CSV: the normalized per-VM record set, usable as
	// direct input for a later pricing-only run.
	ExportInventoryToCSV(set entity.VMRecordSet, filename string, outputDir string) (string, error)
}
