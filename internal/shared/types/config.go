package types

// Config represents the application configuration that can be loaded from a file.
// Every pricing rate and pipeline constant is overridable; zero values mean
// "keep the default".
type Config struct {
	All           bool     `json:"all" yaml:"all" toml:"all"`
	Comprehensive bool     `json:"comprehensive" yaml:"comprehensive" toml:"comprehensive"`
	ReportName    string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType    []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir           string   `json:"dir" yaml:"dir" toml:"dir"`

	Pricing PricingConfig `json:"pricing" yaml:"pricing" toml:"pricing"`
	Units   UnitsConfig   `json:"units" yaml:"units" toml:"units"`
}

// PricingConfig carries the rate card overrides. Rates are strings so that
// TOML/YAML/JSON values survive without binary float drift; they are parsed
// into decimals by the pricing package.
type PricingConfig struct {
	OCPUHourlyRate       string `json:"ocpu_hourly_rate" yaml:"ocpu_hourly_rate" toml:"ocpu_hourly_rate"`
	MemoryHourlyRate     string `json:"memory_hourly_rate" yaml:"memory_hourly_rate" toml:"memory_hourly_rate"`
	StorageMonthlyRate   string `json:"storage_monthly_rate" yaml:"storage_monthly_rate" toml:"storage_monthly_rate"`
	VPUMonthlyRate       string `json:"vpu_monthly_rate" yaml:"vpu_monthly_rate" toml:"vpu_monthly_rate"`
	WindowsHourlyRate    string `json:"windows_hourly_rate" yaml:"windows_hourly_rate" toml:"windows_hourly_rate"`
	HoursPerMonth        int    `json:"hours_per_month" yaml:"hours_per_month" toml:"hours_per_month"`
	VCPUsPerOCPU         int    `json:"vcpus_per_ocpu" yaml:"vcpus_per_ocpu" toml:"vcpus_per_ocpu"`
	MinimumOCPU          int    `json:"minimum_ocpu" yaml:"minimum_ocpu" toml:"minimum_ocpu"`
	VPUsPerGB            int    `json:"vpus_per_gb" yaml:"vpus_per_gb" toml:"vpus_per_gb"`
	CurrencySymbol       string `json:"currency_symbol" yaml:"currency_symbol" toml:"currency_symbol"`
	WindowsOSPatternsCSV string `json:"windows_os_patterns" yaml:"windows_os_patterns" toml:"windows_os_patterns"`
}

// UnitsConfig makes the two storage-unit divisors explicit and independent.
// RVTools labels memory/disk columns "MiB" (binary) and partition columns
// "MB" (decimal); both end up in GB.
type UnitsConfig struct {
	MiBPerGB float64 `json:"mib_per_gb" yaml:"mib_per_gb" toml:"mib_per_gb"`
	MBPerGB  float64 `json:"mb_per_gb" yaml:"mb_per_gb" toml:"mb_per_gb"`
}
