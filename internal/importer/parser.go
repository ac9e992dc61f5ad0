// Package importer reads product spreadsheets exported as CSV and turns
// them into catalog import rows.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	enc "github.com/MrJamesThe3rd/vitrine/internal/encoding"
)

var ErrUnknownLayout = apperr.New(apperr.ErrInvalidInput,
	"cabeçalho não reconhecido: esperado Nome;Preço;Estoque ou Produto;Valor;Quantidade")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse detects the file encoding and header profile, then converts every
// data row. Blank rows are skipped; any malformed row fails the whole file.
func (p *Parser) Parse(r io.Reader) ([]catalog.ImportRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := readRecords(reader)
	if err != nil {
		return nil, apperr.Newf(apperr.ErrInvalidInput, "arquivo CSV inválido: %v", err)
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, ErrUnknownLayout
	}

	return parseRows(profile, cols, records[headerIdx+1:])
}

// record is a CSV row with the file line it started on. The csv reader skips
// empty lines, so slice positions are not line numbers.
type record struct {
	line  int
	cells []string
}

func readRecords(reader *csv.Reader) ([]record, error) {
	var records []record

	for {
		cells, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
}

// colIndex maps lower-cased header names to their column.
type colIndex map[string]int

func detectProfile(records []record) (*Profile, colIndex, int) {
	for idx, rec := range records {
		cols := make(colIndex)

		for i, cell := range rec.cells {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, idx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, records []record) ([]catalog.ImportRow, error) {
	var out []catalog.ImportRow

	for _, rec := range records {
		row, line := rec.cells, rec.line

		if isBlank(row) {
			continue
		}

		name := cellValue(row, cols, p.NameCol)
		if name == "" {
			return nil, apperr.Newf(apperr.ErrInvalidInput, "linha %d: nome é obrigatório", line)
		}

		price, err := parsePrice(cellValue(row, cols, p.PriceCol))
		if err != nil {
			return nil, apperr.Newf(apperr.ErrInvalidInput, "linha %d: preço inválido %q", line, cellValue(row, cols, p.PriceCol))
		}

		stock := 0
		if s := cellValue(row, cols, p.StockCol); s != "" {
			stock, err = strconv.Atoi(s)
			if err != nil {
				return nil, apperr.Newf(apperr.ErrInvalidInput, "linha %d: estoque inválido %q", line, s)
			}
		}

		out = append(out, catalog.ImportRow{
			Line:         line,
			CategoryName: cellValue(row, cols, p.CategoryCol),
			Params: catalog.ProductParams{
				Name:        name,
				Description: cellValue(row, cols, p.DescCol),
				Price:       price,
				Stock:       stock,
			},
		})
	}

	return out, nil
}

// cellValue returns "" when the column is absent from the header or the row.
func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
