package schema

// Field is a canonical logical VM attribute that heterogeneous source
// headers resolve to.
type Field string

const (
	FieldVMName         Field = "vm_name"
	FieldVMUUID         Field = "vm_uuid"
	FieldVCPUs          Field = "vcpus"
	FieldRAM            Field = "ram"
	FieldDisk           Field = "disk"
	FieldOS             Field = "os"
	FieldPowerState     Field = "power_state"
	FieldAnnotation     Field = "annotation"
	FieldToolsStatus    Field = "tools_status"
	FieldSnapshotName   Field = "snapshot_name"
	FieldNetworkAdapter Field = "network_adapter"
)

// FieldSpec declares how one canonical field is identified in raw headers.
// Alias order matters: earlier aliases win ties during resolution.
type FieldSpec struct {
	Field   Field
	Numeric bool
	Aliases []string
}

// Table kinds resolve against the same alias table; the aliases cover both
// the native RVTools headers and the flattened headers of a canonical
// inventory CSV (e.g. "cpu_vm", "memory_size gb") produced by an earlier run.
var fieldSpecs = []FieldSpec{
	{
		Field: FieldVMUUID,
		Aliases: []string{
			"vm uuid", "smbios uuid", "bios uuid", "uuid",
		},
	},
	{
		Field: FieldVMName,
		Aliases: []string{
			"vm", "vm name", "cpu_vm", "virtual machine", "name",
		},
	},
	{
		Field:   FieldVCPUs,
		Numeric: true,
		Aliases: []string{
			"cpus", "cpu_cpus", "vcpu", "vcpus", "num cpus",
		},
	},
	{
		Field:   FieldRAM,
		Numeric: true,
		Aliases: []string{
			"memory gb", "memory_size gb", "mem_size_gb", "ram gb",
			"size mib", "memory mib", "memory",
		},
	},
	{
		Field:   FieldDisk,
		Numeric: true,
		Aliases: []string{
			"disk gb", "disk_capacity gb", "disk_total_capacity_gb",
			"total disk capacity mib", "capacity mib", "capacity mb",
			"provisioned mib",
		},
	},
	{
		Field: FieldOS,
		Aliases: []string{
			"os according to the configuration file", "cpu_os",
			"os according to the vmware tools", "guest os", "os config", "os",
		},
	},
	{
		Field: FieldPowerState,
		Aliases: []string{
			"powerstate", "power state", "cpu_powerstate",
		},
	},
	{
		Field: FieldAnnotation,
		Aliases: []string{
			"annotation", "cpu_annotation", "notes",
		},
	},
	{
		Field: FieldToolsStatus,
		Aliases: []string{
			"tools", "tools status", "vmware tools",
		},
	},
	{
		Field: FieldSnapshotName,
		Aliases: []string{
			"snapshot name", "snapshot",
		},
	},
	{
		Field: FieldNetworkAdapter,
		Aliases: []string{
			"network adapter", "adapter", "mac address",
		},
	},
}

// FieldSpecs returns the canonical alias table in declaration order.
func FieldSpecs() []FieldSpec {
	return fieldSpecs
}

// EssentialFields is the minimal canonical column set of a VM record.
var EssentialFields = []Field{
	FieldVMName, FieldVCPUs, FieldRAM, FieldDisk, FieldOS, FieldPowerState,
}

// RequiredForPricing are the fields without which no VM can be priced; if any
// of them cannot be sourced from the merged tables the whole run is aborted.
var RequiredForPricing = []Field{
	FieldVMName, FieldVCPUs, FieldRAM, FieldDisk, FieldPowerState,
}
