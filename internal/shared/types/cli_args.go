package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	InputPath     string
	ConfigFile    string
	All           bool
	Comprehensive bool
	ReportName    string
	ReportType    []string
	Dir           string
	InventoryCSV  string
	Verbose       bool
}
