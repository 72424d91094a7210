// Package excelsource materializes snapshots from Excel workbooks.
package excelsource

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"autoviz/domain/table"
	"autoviz/internal/errors"
)

// Source reads one sheet of an Excel workbook into a snapshot. When no
// sheet is named, the first sheet is used.
type Source struct {
	path  string
	sheet string
}

// NewFileSource creates a source for a workbook on disk.
func NewFileSource(path string) *Source {
	return &Source{path: path}
}

// WithSheet selects a specific sheet by name.
func (s *Source) WithSheet(sheet string) *Source {
	s.sheet = sheet
	return s
}

// LoadSnapshot parses the selected sheet into a snapshot.
func (s *Source) LoadSnapshot(ctx context.Context) (*table.Snapshot, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.SourceUnavailable(s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.ParseFailed("sheet "+sheet, err)
	}
	if len(records) == 0 {
		return table.NewSnapshot([]string{}, []table.Row{}), nil
	}

	headers := records[0]
	rows := make([]table.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(table.Row, len(headers))
		for i, header := range headers {
			if i >= len(record) {
				row[header] = nil
				continue
			}
			value := strings.TrimSpace(record[i])
			if value == "" {
				row[header] = nil
				continue
			}
			row[header] = value
		}
		rows = append(rows, row)
	}

	snap := table.NewSnapshot(headers, rows)
	snap.Name = strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	return snap, nil
}
