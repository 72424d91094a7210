package ports

import (
	"context"

	"autoviz/domain/table"
)

// SnapshotSource materializes a tabular snapshot from an external system
// such as a file upload, a spreadsheet, or a database query. Sources own all I/O;
// the analysis pipeline only ever sees the materialized snapshot.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context) (*table.Snapshot, error)
}
