package inventory

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/diillson/rvtools-costing-go/internal/domain/entity"
	"github.com/diillson/rvtools-costing-go/internal/domain/repository"
)

// InventoryRepositoryImpl implementa o InventoryRepository para exports do
// RVTools: um arquivo ZIP, um diretório de CSVs ou um único CSV canônico.
type InventoryRepositoryImpl struct{}

// NewInventoryRepository cria uma nova implementação do InventoryRepository.
func NewInventoryRepository() repository.InventoryRepository {
	return &InventoryRepositoryImpl{}
}

// kindPatterns mapeia padrões de nome de arquivo do RVTools para o tipo de
// tabela. A ordem importa: padrões mais específicos vêm primeiro.
var kindPatterns = []struct {
	pattern string
	kind    entity.TableKind
}{
	{"tabvinfo", entity.TableVInfo},
	{"tabvcpu", entity.TableVCPU},
	{"tabvmemory", entity.TableVMemory},
	{"tabvdisk", entity.TableVDisk},
	{"tabvnetwork", entity.TableVNetwork},
	{"tabvnic", entity.TableVNIC},
	{"tabvsnapshot", entity.TableVSnapshot},
	{"tabvtools", entity.TableVTools},
	{"tabvhost", entity.TableVHost},
	{"vinfo", entity.TableVInfo},
	{"vcpu", entity.TableVCPU},
	{"vmemory", entity.TableVMemory},
	{"vdisk", entity.TableVDisk},
	{"vnetwork", entity.TableVNetwork},
	{"vnic", entity.TableVNIC},
	{"vsnapshot", entity.TableVSnapshot},
	{"vtools", entity.TableVTools},
}

// LoadTables lê todas as tabelas de inventário do caminho de entrada.
func (r *InventoryRepositoryImpl) LoadTables(ctx context.Context, inputPath string) ([]entity.RawTable, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error accessing input %s: %w", inputPath, err)
	}

	switch {
	case info.IsDir():
		return r.loadDirectory(ctx, inputPath)
	case strings.EqualFold(filepath.Ext(inputPath), ".zip"):
		return r.loadArchive(ctx, inputPath)
	default:
		table, err := r.loadCSVFile(inputPath)
		if err != nil {
			return nil, err
		}
		return []entity.RawTable{table}, nil
	}
}

func (r *InventoryRepositoryImpl) loadDirectory(ctx context.Context, dir string) ([]entity.RawTable, error) {
	var tables []entity.RawTable
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		table, err := r.loadCSVFile(path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
		tables = append(tables, table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *InventoryRepositoryImpl) loadArchive(ctx context.Context, zipPath string) ([]entity.RawTable, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("error opening ZIP archive %s: %w", zipPath, err)
	}
	defer zr.Close()

	var tables []entity.RawTable
	for _, f := range zr.File {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("error opening %s inside archive: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading %s inside archive: %w", f.Name, err)
		}
		table, err := parseCSV(data, filepath.Base(f.Name))
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", f.Name, err)
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (r *InventoryRepositoryImpl) loadCSVFile(path string) (entity.RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("error reading CSV file: %w", err)
	}
	return parseCSV(data, filepath.Base(path))
}

// parseCSV decodifica e tabula um CSV de inventário. O RVTools exporta com
// ponto-e-vírgula em UTF-8 ou Windows-1252; CSVs canônicos usam vírgula.
func parseCSV(data []byte, source string) (entity.RawTable, error) {
	data = decodeToUTF8(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return entity.RawTable{}, fmt.Errorf("malformed CSV %s: %w", source, err)
	}

	table := entity.RawTable{
		Kind:   kindFromFilename(source),
		Source: source,
	}
	if len(rows) == 0 {
		return table, nil
	}

	for _, h := range rows[0] {
		table.Headers = append(table.Headers, strings.TrimSpace(h))
	}
	for _, cells := range rows[1:] {
		row := make(entity.RawRow, len(table.Headers))
		for i, h := range table.Headers {
			if i < len(cells) {
				row[h] = cells[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// decodeToUTF8 remove o BOM e converte Windows-1252 para UTF-8 quando os
// bytes não formam UTF-8 válido.
func decodeToUTF8(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return data
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return data
	}
	return decoded
}

// sniffDelimiter inspects the header line: semicolon-delimited exports beat
// comma-delimited canonical CSVs when both characters appear.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) >= bytes.Count(line, []byte{','}) && bytes.Contains(line, []byte{';'}) {
		return ';'
	}
	return ','
}

func kindFromFilename(name string) entity.TableKind {
	lower := strings.ToLower(name)
	for _, kp := range kindPatterns {
		if strings.Contains(lower, kp.pattern) {
			return kp.kind
		}
	}
	clean := strings.TrimSuffix(lower, ".csv")
	clean = strings.TrimPrefix(clean, "rvtools_")
	return entity.TableKind(clean)
}
