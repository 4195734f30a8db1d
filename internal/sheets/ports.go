// Package sheets defines the export ports the sync worker writes through.
package sheets

import (
	"context"

	"financas/internal/core"
)

// BillExporter appends a bill row to the export target.
type BillExporter interface {
	AppendBill(ctx context.Context, b core.Bill) error
}

// ReceivableExporter appends a receivable row to the export target.
type ReceivableExporter interface {
	AppendReceivable(ctx context.Context, r core.Receivable) error
}
