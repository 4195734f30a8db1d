// Package http exposes the record store and the core's derived views as a
// JSON REST API.
package http

import (
	"context"
	"net/http"
	"time"

	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/storage"
)

// BillStore is the store boundary the bill handlers talk to.
type BillStore interface {
	ListBills(ctx context.Context) ([]core.Bill, error)
	GetBill(ctx context.Context, id int64) (core.Bill, error)
	InsertBill(ctx context.Context, b core.Bill) (core.Bill, error)
	UpdateBill(ctx context.Context, id int64, patch storage.BillPatch) (core.Bill, error)
	DeleteBill(ctx context.Context, id int64) error
}

// ReceivableStore is the store boundary the receivable handlers talk to.
type ReceivableStore interface {
	ListReceivables(ctx context.Context) ([]core.Receivable, error)
	GetReceivable(ctx context.Context, id int64) (core.Receivable, error)
	InsertReceivable(ctx context.Context, r core.Receivable) (core.Receivable, error)
	UpdateReceivable(ctx context.Context, id int64, patch storage.ReceivablePatch) (core.Receivable, error)
	DeleteReceivable(ctx context.Context, id int64) error
}

// RecordPublisher announces record changes to the sync worker. May be nil
// when no broker is configured; publishing is best-effort either way.
type RecordPublisher interface {
	PublishRecordSync(ctx context.Context, kind string, id int64) error
}

type Server struct {
	bills       BillStore
	receivables ReceivableStore
	publisher   RecordPublisher
	logger      *applog.Logger
	now         func() time.Time
}

// NewServer wires the API routes and returns a ready-to-run http.Server.
func NewServer(addr string, bills BillStore, receivables ReceivableStore, publisher RecordPublisher, logger *applog.Logger) *http.Server {
	s := &Server{
		bills:       bills,
		receivables: receivables,
		publisher:   publisher,
		logger:      logger.WithComponent("http"),
		now:         time.Now,
	}

	return &http.Server{
		Addr:    addr,
		Handler: applog.RequestLogger(logger)(s.routes()),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /contas", s.handleListBills)
	mux.HandleFunc("POST /contas", s.handleCreateBill)
	mux.HandleFunc("GET /contas/{id}", s.handleGetBill)
	mux.HandleFunc("PUT /contas/{id}", s.handleUpdateBill)
	mux.HandleFunc("DELETE /contas/{id}", s.handleDeleteBill)

	mux.HandleFunc("GET /recebidos", s.handleListReceivables)
	mux.HandleFunc("POST /recebidos", s.handleCreateReceivable)
	mux.HandleFunc("GET /recebidos/{id}", s.handleGetReceivable)
	mux.HandleFunc("PUT /recebidos/{id}", s.handleUpdateReceivable)
	mux.HandleFunc("DELETE /recebidos/{id}", s.handleDeleteReceivable)

	mux.HandleFunc("GET /estatisticas", s.handleBillStats)
	mux.HandleFunc("GET /estatisticas-recebidos", s.handleReceivableStats)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	return mux
}

func (s *Server) today() core.Date {
	return core.Today(s.now())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// publishSync announces a record change. Best-effort: a broker failure is
// logged and the request still succeeds.
func (s *Server) publishSync(ctx context.Context, kind string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecordSync(ctx, kind, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish sync message", "kind", kind, "id", id, "error", err)
	}
}
