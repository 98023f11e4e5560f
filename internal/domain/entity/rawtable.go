package entity

// TableKind identifies which RVTools export sheet a raw table came from.
type TableKind string

const (
	TableVInfo     TableKind = "vInfo"
	TableVCPU      TableKind = "vCPU"
	TableVMemory   TableKind = "vMemory"
	TableVDisk     TableKind = "vDisk"
	TableVNetwork  TableKind = "vNetwork"
	TableVNIC      TableKind = "vNIC"
	TableVSnapshot TableKind = "vSnapshot"
	TableVTools    TableKind = "vTools"
	TableVHost     TableKind = "vHost"
)

// RawRow is one CSV row: raw header -> raw string value.
type RawRow map[string]string

// RawTable is an ordered sequence of rows from one source CSV file.
type RawTable struct {
	Kind    TableKind `json:"kind"`
	Source  string    `json:"source"`
	Headers []string  `json:"headers"`
	Rows    []RawRow  `json:"-"`
}

// IsEmpty reports whether the table has no data rows.
func (t RawTable) IsEmpty() bool {
	return len(t.Rows) == 0
}
