package merge

import (
	"github.com/samber/lo"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
)

// BuildOptions controla os filtros aplicados sobre os registros mesclados.
type BuildOptions struct {
	// Comprehensive keeps the optional fields (network count, snapshots,
	// tools status); the essential column set clears them.
	Comprehensive bool
}

// BuildRecordSet applies the power-state and column-set filters. Included
// records keep the original primary-table row order; the excluded sequence
// holds every VM that is not powered on, with full specification, so the
// union of both always covers all UUIDs seen in the primary table.
func BuildRecordSet(records []entity.VMRecord, opts BuildOptions) entity.VMRecordSet {
	included, excluded := lo.FilterReject(records, func(r entity.VMRecord, _ int) bool {
		return r.PowerState.IsPoweredOn()
	})

	if !opts.Comprehensive {
		included = lo.Map(included, func(r entity.VMRecord, _ int) entity.VMRecord {
			return essentialOnly(r)
		})
		excluded = lo.Map(excluded, func(r entity.VMRecord, _ int) entity.VMRecord {
			return essentialOnly(r)
		})
	}

	return entity.VMRecordSet{Included: included, Excluded: excluded}
}

// essentialOnly trims a record down to the essential canonical column set.
func essentialOnly(r entity.VMRecord) entity.VMRecord {
	r.NetworkCount = 0
	r.SnapshotCount = 0
	r.ToolsStatus = ""
	return r
}
