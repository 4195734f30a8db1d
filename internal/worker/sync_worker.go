// Package worker pushes stored records to the spreadsheet export target,
// driven by AMQP sync messages with a periodic backfill for anything missed.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/sheets"
	"financas/internal/storage"
)

// Exporter is the combined export target the worker writes through.
type Exporter interface {
	sheets.BillExporter
	sheets.ReceivableExporter
}

type SyncWorker struct {
	store     *storage.SQLiteStore
	exporter  Exporter
	batchSize int
}

func NewSyncWorker(store *storage.SQLiteStore, exporter Exporter, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage fetches the record named by the message and exports it.
// A record deleted between publish and consume is skipped, not an error.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	switch msg.Kind {
	case amqp.KindBill:
		bill, err := w.store.GetBill(ctx, msg.ID)
		if errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "Bill no longer exists, skipping sync", "id", msg.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get bill: %w", err)
		}
		if err := w.exporter.AppendBill(ctx, bill); err != nil {
			return fmt.Errorf("export bill: %w", err)
		}
		return w.store.MarkBillSynced(ctx, msg.ID)

	case amqp.KindReceivable:
		rec, err := w.store.GetReceivable(ctx, msg.ID)
		if errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "Receivable no longer exists, skipping sync", "id", msg.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get receivable: %w", err)
		}
		if err := w.exporter.AppendReceivable(ctx, rec); err != nil {
			return fmt.Errorf("export receivable: %w", err)
		}
		return w.store.MarkReceivableSynced(ctx, msg.ID)

	default:
		slog.WarnContext(ctx, "Unknown record kind in sync message", "kind", msg.Kind, "id", msg.ID)
		return nil
	}
}

// Backfill exports any unsynced records, up to the batch size per kind.
// Run at startup and on an interval to catch messages lost while the worker
// was down.
func (w *SyncWorker) Backfill(ctx context.Context) error {
	bills, err := w.store.ListUnsyncedBills(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced bills: %w", err)
	}
	for _, b := range bills {
		if err := w.exporter.AppendBill(ctx, b); err != nil {
			slog.ErrorContext(ctx, "Backfill bill export failed", "id", b.ID, "error", err)
			continue
		}
		if err := w.store.MarkBillSynced(ctx, b.ID); err != nil {
			return err
		}
	}

	recs, err := w.store.ListUnsyncedReceivables(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced receivables: %w", err)
	}
	for _, r := range recs {
		if err := w.exporter.AppendReceivable(ctx, r); err != nil {
			slog.ErrorContext(ctx, "Backfill receivable export failed", "id", r.ID, "error", err)
			continue
		}
		if err := w.store.MarkReceivableSynced(ctx, r.ID); err != nil {
			return err
		}
	}

	if len(bills) > 0 || len(recs) > 0 {
		slog.InfoContext(ctx, "Backfill completed",
			"bills", len(bills),
			"receivables", len(recs))
	}
	return nil
}
