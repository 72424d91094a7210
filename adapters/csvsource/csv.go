// Package csvsource materializes snapshots from CSV input.
package csvsource

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"autoviz/domain/table"
	"autoviz/internal/errors"
)

// Source reads one CSV file into a snapshot. The first row is treated as
// the header row; cells are kept as trimmed strings (empty cells become
// nil) and typing is left entirely to the classifier.
type Source struct {
	path string
}

// NewFileSource creates a source for a CSV file on disk.
func NewFileSource(path string) *Source {
	return &Source{path: path}
}

// LoadSnapshot parses the file into a snapshot.
func (s *Source) LoadSnapshot(ctx context.Context) (*table.Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.SourceUnavailable(s.path, err)
	}
	defer f.Close()

	snap, err := FromReader(f)
	if err != nil {
		return nil, err
	}
	snap.Name = strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	return snap, nil
}

// FromReader parses CSV data from any reader into a snapshot.
func FromReader(r io.Reader) (*table.Snapshot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseFailed("CSV data", err)
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

	return table.NewSnapshot(headers, rows), nil
}
