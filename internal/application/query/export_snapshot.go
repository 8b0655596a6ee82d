package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/acadbox/acadbox-engine/internal/application/state"
	"github.com/acadbox/acadbox-engine/internal/domain/snapshot"
	"github.com/acadbox/acadbox-engine/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT SNAPSHOT QUERY
// The whole state as one JSON document, with the compatibility file name
// acadbox_data_<date>.json.
// ══════════════════════════════════════════════════════════════════════════════

// ExportSnapshotQuery contains the export parameters.
type ExportSnapshotQuery struct {
	// Now stamps the document and its file name; zero means the wall clock.
	Now time.Time
}

// ExportDTO is the serialized snapshot plus its suggested file name.
type ExportDTO struct {
	FileName string `json:"fileName"`
	Data     []byte `json:"data"`
}

// ExportSnapshotHandler handles the ExportSnapshotQuery.
type ExportSnapshotHandler struct {
	state *state.AppState
}

// NewExportSnapshotHandler creates a new ExportSnapshotHandler.
func NewExportSnapshotHandler(st *state.AppState) *ExportSnapshotHandler {
	return &ExportSnapshotHandler{state: st}
}

// Handle executes the export.
func (h *ExportSnapshotHandler) Handle(ctx context.Context, q ExportSnapshotQuery) (*ExportDTO, error) {
	now := q.Now
	if now.IsZero() {
		now = timeutil.Now()
	}

	snap := h.state.BuildSnapshot(now)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	return &ExportDTO{
		FileName: snapshot.ExportFileName(now),
		Data:     data,
	}, nil
}
