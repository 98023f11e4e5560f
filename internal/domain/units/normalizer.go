// Package units converts raw storage/memory magnitudes with mixed
// binary/decimal units into canonical decimal gigabytes.
package units

import (
	"fmt"
	"strings"
)

// Default divisors. RVTools labels memory and disk columns in binary
// mebibytes ("MiB") and partition columns in decimal megabytes ("MB");
// both are kept as separate, overridable constants.
const (
	DefaultMiBPerGB = 1024.0
	DefaultMBPerGB  = 1000.0
)

// Warning records a non-fatal normalization problem; the value it refers to
// passed through unchanged.
type Warning struct {
	Unit   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("unit %q: %s", w.Unit, w.Reason)
}

// Normalizer converts (magnitude, source unit) pairs to GB.
type Normalizer struct {
	mibPerGB float64
	mbPerGB  float64
}

// NewNormalizer builds a normalizer; non-positive divisors fall back to the
// defaults.
func NewNormalizer(mibPerGB, mbPerGB float64) *Normalizer {
	if mibPerGB <= 0 {
		mibPerGB = DefaultMiBPerGB
	}
	if mbPerGB <= 0 {
		mbPerGB = DefaultMBPerGB
	}
	return &Normalizer{mibPerGB: mibPerGB, mbPerGB: mbPerGB}
}

// Normalize converts value in the given source unit to GB. Unknown units pass
// the magnitude through unchanged and return a warning instead of failing the
// record. No intermediate rounding is applied.
func (n *Normalizer) Normalize(value float64, unit string) (float64, *Warning) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "mib":
		return value / n.mibPerGB, nil
	case "mb":
		return value / n.mbPerGB, nil
	case "gb", "":
		return value, nil
	default:
		return value, &Warning{Unit: unit, Reason: "unrecognized storage unit, value passed through"}
	}
}

// FromHeader infers the source unit from a column header: the last token of
// the normalized header names the unit in RVTools exports ("Capacity MiB",
// "memory_size gb"). Headers without a unit token return ""; the caller
// decides the fallback unit.
func FromHeader(header string) string {
	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(header, "_", " ")))
	if len(fields) == 0 {
		return ""
	}
	switch last := fields[len(fields)-1]; last {
	case "mib", "mb", "gb":
		return last
	default:
		return ""
	}
}
