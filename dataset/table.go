// Package dataset reads the restaurant CSV and cleans its free-text cells.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Column names the conversion relies on.
const (
	ColName            = "name"
	ColAddress         = "address"
	ColCity            = "city"
	ColCountry         = "country"
	ColPostcode        = "postcode"
	ColState           = "state"
	ColCategories      = "categories"
	ColMenuItem        = "menu item"
	ColItemValue       = "item value"
	ColCurrency        = "currency"
	ColItemDescription = "item description"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{
	ColName, ColAddress, ColCity, ColCountry, ColPostcode, ColState,
	ColCategories, ColMenuItem, ColItemValue, ColCurrency, ColItemDescription,
}

// MissingColumnsError reports a header lacking required columns.
type MissingColumnsError struct {
	Required []string
	Missing  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns %s (required: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Required, ", "))
}

// ValidateColumns checks that header contains every required column.
func ValidateColumns(header []string) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Required: slices.Clone(RequiredColumns), Missing: missing}
	}
	return nil
}

// IsMissingColumns reports whether err is a *MissingColumnsError.
func IsMissingColumns(err error) bool {
	var mc *MissingColumnsError
	return errors.As(err, &mc)
}

// Row is one record keyed by column name. Absent cells read as "".
type Row map[string]string

// Get returns the trimmed value of col.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// Table is a parsed dataset.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns every value of col in row order.
func (t *Table) Column(col string) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Get(col)
	}
	return out
}

// Backslash escapes are rewritten to CSV's doubled quotes before parsing.
var unescape = strings.NewReplacer(`\\`, `\`, `\"`, `""`)

// Read parses CSV from r, validates the header and normalises menu item
// names. Header names are trimmed.
func Read(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	cr := csv.NewReader(strings.NewReader(unescape.Replace(string(raw))))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MissingColumnsError{Required: slices.Clone(RequiredColumns), Missing: slices.Clone(RequiredColumns)}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if err := ValidateColumns(header); err != nil {
		return nil, err
	}

	t := &Table{Columns: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		row[ColMenuItem] = NormalizeMenuItem(row[ColMenuItem])
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadFile reads a dataset from path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}
