package types

import "errors"

var (
	ErrNoInventoryTables = errors.New("no inventory tables with a VM UUID column found in the input")
	ErrNoVMRecords       = errors.New("no valid VM specifications found after filtering")
)
