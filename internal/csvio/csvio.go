// Package csvio is the CSV parse/serialize collaborator: header-keyed parsing
// on ingest, fixed-shape escaping on export.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adsdash/adsdash/internal/models"
)

// ErrNoHeader means the input had no header row to key records by.
var ErrNoHeader = errors.New("csv: missing header row")

// Parse reads header-keyed records. Every value stays a string; typing happens
// in the pipeline. Ragged records are tolerated (missing cells become empty,
// extras are ignored) and fully empty lines are skipped, but malformed quoting
// is structural and aborts the whole parse — no partial rows are returned.
func Parse(r io.Reader) ([]models.RawRow, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, ErrNoHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("csv header: %w", err)
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []models.RawRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("csv record: %w", err)
		}
		if emptyRecord(rec) {
			continue
		}
		row := make(models.RawRow, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

func emptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var exportHeader = func() []string {
	h := make([]string, len(models.Fields))
	for i, f := range models.Fields {
		h[i] = string(f)
	}
	return h
}()

// Unparse serializes normalized rows in canonical column order with standard
// CSV escaping.
func Unparse(rows []models.NormalizedRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.Date, r.Campaign, r.Adset, r.Ad,
			num(r.Spend), num(r.Impressions), num(r.Clicks), num(r.Conversions), num(r.Revenue),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
