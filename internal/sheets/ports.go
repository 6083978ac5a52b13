package sheets

import (
	"context"

	"expnote/internal/core"
)

// Ports for outbound adapters.
type (
	// StatementExporter writes a rendered statement somewhere outside the ledger.
	StatementExporter interface {
		// ExportStatement replaces the target with st and returns a reference
		// to the written range.
		ExportStatement(ctx context.Context, st core.Statement) (ref string, err error)
	}
)
