// Package merge joins the per-entity inventory tables on the shared VM UUID
// and folds one-to-many child rows into scalar per-VM fields.
package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
	"github.com/diillson/rvtools-costing-go/internal/domain/schema"
	"github.com/diillson/rvtools-costing-go/internal/domain/units"
	"github.com/diillson/rvtools-costing-go/internal/shared/types"
)

// primaryPreference orders the table kinds that can serve as the VM-identity
// table; the first one present wins.
var primaryPreference = []entity.TableKind{
	entity.TableVInfo, entity.TableVCPU, entity.TableVMemory,
}

// rvtoolsKinds are the native export sheets. RVTools writes their numeric
// columns in MiB even when the header names no unit (vInfo's bare "Memory"),
// so unit-less columns in these tables default to MiB. Canonical CSVs carry
// an explicit "GB" token and are unaffected.
var rvtoolsKinds = map[entity.TableKind]bool{
	entity.TableVInfo:     true,
	entity.TableVCPU:      true,
	entity.TableVMemory:   true,
	entity.TableVDisk:     true,
	entity.TableVNetwork:  true,
	entity.TableVNIC:      true,
	entity.TableVSnapshot: true,
	entity.TableVTools:    true,
	entity.TableVHost:     true,
}

// Warning is a non-fatal data-quality note collected during the merge,
// surfaced only in verbose mode.
type Warning struct {
	Table   entity.TableKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Table, w.Message)
}

// Result é a saída do merge: um VMRecord por UUID distinto, na ordem das
// linhas da tabela primária, mais os avisos acumulados.
type Result struct {
	Records  []entity.VMRecord
	Primary  entity.TableKind
	Warnings []Warning
}

// resolvedTable pairs a raw table with its column mapping.
type resolvedTable struct {
	table   entity.RawTable
	mapping schema.ColumnMapping
}

// Merger builds canonical VM records out of resolved raw tables.
type Merger struct {
	units *units.Normalizer

	// assumedMiB dedupes o aviso de unidade assumida por tabela+coluna.
	assumedMiB map[string]bool
}

// NewMerger cria um Merger com o normalizador de unidades fornecido.
func NewMerger(n *units.Normalizer) *Merger {
	return &Merger{units: n}
}

// Merge resolves each table's columns and folds all rows into one record per
// VM UUID. VMs that never appear in the primary table are dropped. Scalar
// fields from the primary table are last-write-wins per UUID; child tables
// accumulate (disk capacity sums, network adapters count, snapshots count).
func (m *Merger) Merge(tables []entity.RawTable) (*Result, error) {
	res := &Result{}
	m.assumedMiB = map[string]bool{}

	var usable []resolvedTable
	for _, t := range tables {
		if t.IsEmpty() {
			res.warnf(t.Kind, "table %s is empty, skipped", t.Source)
			continue
		}
		mapping, _ := schema.Resolve(t.Headers)
		if _, ok := mapping[schema.FieldVMUUID]; !ok {
			res.warnf(t.Kind, "table %s has no VM UUID column, skipped", t.Source)
			continue
		}
		usable = append(usable, resolvedTable{table: t, mapping: mapping})
	}
	if len(usable) == 0 {
		return nil, types.ErrNoInventoryTables
	}

	var primary *resolvedTable
	for _, pref := range primaryPreference {
		for i := range usable {
			if usable[i].table.Kind == pref {
				primary = &usable[i]
				break
			}
		}
		if primary != nil {
			break
		}
	}
	if primary == nil {
		// Sem tabela de identidade conhecida, a primeira utilizável serve.
		primary = &usable[0]
	}
	res.Primary = primary.table.Kind

	if missing := primary.mapping.MissingAmong(primaryRequired(usable)); len(missing) > 0 {
		return nil, &schema.ResolutionError{Missing: missing, Headers: primary.table.Headers}
	}

	records := map[string]*entity.VMRecord{}
	var order []string

	// Primary pass: create-or-overwrite scalar identity fields per UUID.
	for _, row := range primary.table.Rows {
		id := canonicalUUID(row[primary.mapping[schema.FieldVMUUID]])
		if id == "" {
			continue
		}
		rec, seen := records[id]
		if !seen {
			rec = &entity.VMRecord{UUID: id}
			records[id] = rec
			order = append(order, id)
		} else {
			res.warnf(primary.table.Kind, "duplicate UUID %s in primary table, last row wins", id)
		}
		m.applyPrimaryRow(rec, row, *primary, res)
	}

	// Child passes: commutative accumulation keyed by UUID; rows whose UUID
	// never appeared in the primary table are dropped.
	diskSums := map[string]float64{}
	ramOverride := map[string]float64{}

	for _, r := range usable {
		if r.table.Kind == primary.table.Kind {
			continue
		}
		uuidHeader := r.mapping[schema.FieldVMUUID]
		for _, row := range r.table.Rows {
			id := canonicalUUID(row[uuidHeader])
			rec, ok := records[id]
			if !ok {
				continue
			}
			m.applyChildRow(rec, row, r, diskSums, ramOverride, res)
		}
	}

	for id, sum := range diskSums {
		records[id].DiskGB = sum
	}
	for id, ram := range ramOverride {
		records[id].RAMGB = ram
	}

	res.Records = make([]entity.VMRecord, 0, len(order))
	for _, id := range order {
		res.Records = append(res.Records, *records[id])
	}
	return res, nil
}

func (m *Merger) applyPrimaryRow(rec *entity.VMRecord, row entity.RawRow, primary resolvedTable, res *Result) {
	mapping := primary.mapping
	if h, ok := mapping[schema.FieldVMName]; ok {
		rec.Name = strings.TrimSpace(row[h])
	}
	if h, ok := mapping[schema.FieldVCPUs]; ok {
		rec.VCPUs = int(m.numeric(row[h], h, rec.UUID, res))
	}
	if h, ok := mapping[schema.FieldRAM]; ok {
		rec.RAMGB = m.normalized(row[h], h, rec.UUID, primary.table.Kind, res)
	}
	if h, ok := mapping[schema.FieldDisk]; ok {
		rec.DiskGB = m.normalized(row[h], h, rec.UUID, primary.table.Kind, res)
	}
	if h, ok := mapping[schema.FieldOS]; ok {
		rec.OS = strings.TrimSpace(row[h])
	}
	if h, ok := mapping[schema.FieldPowerState]; ok {
		rec.PowerState = entity.ParsePowerState(row[h])
	}
	if h, ok := mapping[schema.FieldAnnotation]; ok {
		rec.Annotation = strings.TrimSpace(row[h])
	}
}

func (m *Merger) applyChildRow(
	rec *entity.VMRecord,
	row entity.RawRow,
	r resolvedTable,
	diskSums map[string]float64,
	ramOverride map[string]float64,
	res *Result,
) {
	switch r.table.Kind {
	case entity.TableVDisk:
		if h, ok := r.mapping[schema.FieldDisk]; ok {
			diskSums[rec.UUID] += m.normalized(row[h], h, rec.UUID, r.table.Kind, res)
		}
	case entity.TableVMemory:
		if h, ok := r.mapping[schema.FieldRAM]; ok {
			ramOverride[rec.UUID] = m.normalized(row[h], h, rec.UUID, r.table.Kind, res)
		}
	case entity.TableVNetwork, entity.TableVNIC:
		rec.NetworkCount++
	case entity.TableVSnapshot:
		rec.SnapshotCount++
	case entity.TableVTools:
		if h, ok := r.mapping[schema.FieldToolsStatus]; ok && rec.ToolsStatus == "" {
			rec.ToolsStatus = strings.TrimSpace(row[h])
		}
		if rec.OS == "" {
			if h, ok := r.mapping[schema.FieldOS]; ok {
				rec.OS = strings.TrimSpace(row[h])
			}
		}
	default:
		// Tabelas desconhecidas não contribuem com campos canônicos.
	}
}

// numeric parses a raw cell; non-numeric values coerce to 0 with a warning.
func (m *Merger) numeric(raw, header, id string, res *Result) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	// RVTools exported under some locales writes decimal commas.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		res.warnf("", "non-numeric value %q in column %q for VM %s, coerced to 0", raw, header, id)
		return 0
	}
	return v
}

// normalized parses a numeric cell and converts it to GB using the unit
// named in the column header. Unit-less columns inside a native RVTools
// sheet are taken as MiB.
func (m *Merger) normalized(raw, header, id string, kind entity.TableKind, res *Result) float64 {
	v := m.numeric(raw, header, id, res)
	unit := units.FromHeader(header)
	if unit == "" && rvtoolsKinds[kind] {
		unit = "mib"
		key := string(kind) + "\x00" + header
		if !m.assumedMiB[key] {
			m.assumedMiB[key] = true
			res.warnf(kind, "column %q names no unit, values assumed to be MiB", header)
		}
	}
	gb, warn := m.units.Normalize(v, unit)
	if warn != nil {
		res.warnf(kind, "column %q for VM %s: %s", header, id, warn)
	}
	return gb
}

// canonicalUUID lowercases well-formed UUIDs; other identifiers pass through
// trimmed so non-vCenter exports still join.
func canonicalUUID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if id, err := uuid.Parse(s); err == nil {
		return id.String()
	}
	return s
}

func primaryRequired(usable []resolvedTable) []schema.Field {
	required := []schema.Field{schema.FieldVMName, schema.FieldVCPUs, schema.FieldPowerState}

	childHas := func(kind entity.TableKind, f schema.Field) bool {
		for _, r := range usable {
			if r.table.Kind == kind {
				_, ok := r.mapping[f]
				return ok
			}
		}
		return false
	}
	// RAM and disk may be sourced from child tables instead of the primary.
	if !childHas(entity.TableVMemory, schema.FieldRAM) {
		required = append(required, schema.FieldRAM)
	}
	if !childHas(entity.TableVDisk, schema.FieldDisk) {
		required = append(required, schema.FieldDisk)
	}
	return required
}

func (r *Result) warnf(kind entity.TableKind, format string, a ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{Table: kind, Message: fmt.Sprintf(format, a...)})
}
