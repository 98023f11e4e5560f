package schema

import (
	"fmt"
	"strings"
)

// ColumnMapping maps canonical fields to the raw header that carries them,
// scoped to one raw table. Each field maps to at most one header.
type ColumnMapping map[Field]string

// ResolutionError reports canonical fields that could not be matched to any
// header, together with the headers that were available, so an operator can
// map the columns manually.
type ResolutionError struct {
	Missing []Field
	Headers []string
}

func (e *ResolutionError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("cannot resolve required columns [%s]; available headers: %s",
		strings.Join(names, ", "), strings.Join(e.Headers, ", "))
}

// normalizeHeader lowercases, trims and collapses runs of whitespace and
// underscores into single spaces, so "VM_Name " and "vm name" compare equal.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == '_' || r == ' ' || r == '\t' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve maps a table's headers onto the canonical field set. Pure function
// of (headers, alias table): exact alias matches win first, then the longest
// alias contained in a header, with ties broken by alias declaration order.
// The second return value lists canonical fields with no match; deciding
// whether a missing field is fatal is the caller's concern.
func Resolve(headers []string) (ColumnMapping, []Field) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	mapping := ColumnMapping{}
	var missing []Field

	for _, spec := range fieldSpecs {
		header, ok := matchField(spec, headers, normalized)
		if !ok {
			missing = append(missing, spec.Field)
			continue
		}
		mapping[spec.Field] = header
	}

	return mapping, missing
}

func matchField(spec FieldSpec, headers, normalized []string) (string, bool) {
	// Exact match first, in alias declaration order.
	for _, alias := range spec.Aliases {
		na := normalizeHeader(alias)
		for i, nh := range normalized {
			if nh == na {
				return headers[i], true
			}
		}
	}

	// Substring match: the longest alias wins, so a short alias like "os"
	// cannot hijack an unrelated long header when a longer alias also fits.
	bestLen := -1
	bestAlias := -1
	bestHeader := -1
	for ai, alias := range spec.Aliases {
		na := normalizeHeader(alias)
		for hi, nh := range normalized {
			if !strings.Contains(nh, na) {
				continue
			}
			if len(na) > bestLen || (len(na) == bestLen && ai < bestAlias) {
				bestLen = len(na)
				bestAlias = ai
				bestHeader = hi
			}
		}
	}
	if bestHeader >= 0 {
		return headers[bestHeader], true
	}
	return "", false
}

// MissingAmong filters wanted down to the fields absent from the mapping.
func (m ColumnMapping) MissingAmong(wanted []Field) []Field {
	var missing []Field
	for _, f := range wanted {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}
