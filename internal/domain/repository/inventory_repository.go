package repository

import (
	"context"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
)

// InventoryRepository defines the interface for loading raw inventory tables
// from an RVTools export (ZIP archive, directory of CSVs, or a single
// canonical CSV).
type InventoryRepository interface {
	LoadTables(ctx context.Context, inputPath string) ([]entity.RawTable, error)
}
