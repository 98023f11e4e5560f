package entity

import "strings"

// PowerState é o estado de energia reportado pelo vCenter.
type PowerState string

const (
	PoweredOn  PowerState = "poweredOn"
	PoweredOff PowerState = "poweredOff"
	Suspended  PowerState = "suspended"
)

// ParsePowerState normaliza a string de powerstate do RVTools.
func ParsePowerState(raw string) PowerState {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "poweredon", "powered on":
		return PoweredOn
	case "poweredoff", "powered off":
		return PoweredOff
	case "suspended":
		return Suspended
	default:
		return PowerState(strings.TrimSpace(raw))
	}
}

// IsPoweredOn reports whether the state counts as running for pricing.
func (p PowerState) IsPoweredOn() bool {
	return p == PoweredOn
}

// VMRecord is the canonical, normalized per-VM record produced by the merge
// stage. One record per distinct VM UUID; disk and network fields are the
// aggregation of all child-table rows for that UUID.
type VMRecord struct {
	Name       string     `json:"name"`
	UUID       string     `json:"uuid"`
	VCPUs      int        `json:"vcpus"`
	RAMGB      float64    `json:"ram_gb"`
	DiskGB     float64    `json:"disk_gb"`
	OS         string     `json:"os"`
	PowerState PowerState `json:"power_state"`
	Annotation string     `json:"annotation,omitempty"`

	// Comprehensive-mode fields.
	NetworkCount  int    `json:"network_count,omitempty"`
	SnapshotCount int    `json:"snapshot_count,omitempty"`
	ToolsStatus   string `json:"tools_status,omitempty"`
}

// HasResources reports whether the VM has anything worth pricing.
func (v VMRecord) HasResources() bool {
	return v.VCPUs > 0 || v.RAMGB > 0 || v.DiskGB > 0
}

// VMRecordSet is the output of the record builder: the included records in
// original primary-table row order plus the records excluded by the
// power-state filter, kept with full specification for reporting.
type VMRecordSet struct {
	Included []VMRecord `json:"included"`
	Excluded []VMRecord `json:"excluded"`
}

// All returns included followed by excluded records.
func (s VMRecordSet) All() []VMRecord {
	out := make([]VMRecord, 0, len(s.Included)+len(s.Excluded))
	out = append(out, s.Included...)
	out = append(out, s.Excluded...)
	return out
}
