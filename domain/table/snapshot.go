package table

import (
	"autoviz/domain/core"
)

// Snapshot is one in-memory materialization of a tabular dataset: an ordered
// column list, the rows, and an optional target column. The analysis pipeline
// treats a snapshot as immutable; a new snapshot means a full re-analysis.
type Snapshot struct {
	ID           core.SnapshotID `json:"id"`
	Name         string          `json:"name,omitempty"`
	Columns      []string        `json:"columns"`
	Rows         []Row           `json:"rows"`
	TargetColumn string          `json:"targetColumn,omitempty"`
}

// NewSnapshot creates a snapshot with a fresh identifier.
func NewSnapshot(columns []string, rows []Row) *Snapshot {
	return &Snapshot{
		ID:      core.SnapshotID(core.NewID()),
		Columns: columns,
		Rows:    rows,
	}
}

// RowCount returns the number of rows.
func (s *Snapshot) RowCount() int {
	return len(s.Rows)
}

// IsEmpty reports whether there is nothing to analyze.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Rows) == 0 || len(s.Columns) == 0
}

// ColumnValues returns the cells of one column in row order, including
// missing cells as nil.
func (s *Snapshot) ColumnValues(col string) []any {
	values := make([]any, len(s.Rows))
	for i, row := range s.Rows {
		if v, ok := row.Value(col); ok {
			values[i] = v
		}
	}
	return values
}
