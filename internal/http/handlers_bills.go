package http

import (
	"encoding/json"
	"net/http"
	"time"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/storage"
)

type billRequest struct {
	Status         *string      `json:"status"`
	Fornecedor     *string      `json:"fornecedor"`
	Valor          *json.Number `json:"valor"`
	DataVencimento *string      `json:"data_vencimento"`
	Parcelas       *int         `json:"parcelas"`
}

type billResponse struct {
	ID             int64   `json:"id"`
	Status         string  `json:"status"`
	StatusEfetivo  string  `json:"status_efetivo,omitempty"`
	ErroDados      bool    `json:"erro_dados,omitempty"`
	VenceEmBreve   bool    `json:"vence_em_breve"`
	Fornecedor     string  `json:"fornecedor"`
	Valor          float64 `json:"valor"`
	DataVencimento string  `json:"data_vencimento"`
	Parcelas       int     `json:"parcelas"`
	CriadoEm       string  `json:"criado_em,omitempty"`
	AtualizadoEm   string  `json:"atualizado_em,omitempty"`
}

func toBillResponse(b core.Bill, today core.Date) billResponse {
	resp := billResponse{
		ID:           b.ID,
		Status:       string(b.Status),
		VenceEmBreve: b.DueSoon(today),
		Fornecedor:   b.Supplier,
		Valor:        b.Amount.Reais(),
		Parcelas:     b.Installments,
	}
	if !b.DueDate.IsZero() {
		resp.DataVencimento = b.DueDate.String()
	}
	if status, err := b.EffectiveStatus(today); err != nil {
		resp.ErroDados = true
	} else {
		resp.StatusEfetivo = string(status)
	}
	if !b.CreatedAt.IsZero() {
		resp.CriadoEm = b.CreatedAt.Format(time.RFC3339)
	}
	if !b.UpdatedAt.IsZero() {
		resp.AtualizadoEm = b.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.ListBills(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	today := s.today()
	q := r.URL.Query()
	filter := core.BillFilter{
		Status:   core.StatusFilter(q.Get("status")),
		Month:    q.Get("mes"),
		Supplier: q.Get("fornecedor"),
	}
	bills = core.FilterBills(bills, filter, today)
	if q.Get("ordenar") == "prioridade" {
		bills = core.SortBillsByPriority(bills, today)
	}

	out := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b, today))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	b, err := s.bills.GetBill(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillResponse(b, s.today()))
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	b := core.Bill{
		Status:       core.BillPending,
		Amount:       parseMoney(req.Valor),
		DueDate:      parseDateField(req.DataVencimento),
		Installments: 1,
	}
	if req.Status != nil {
		b.Status = core.BillStatus(*req.Status)
	}
	if req.Fornecedor != nil {
		b.Supplier = *req.Fornecedor
	}
	if req.Parcelas != nil {
		b.Installments = *req.Parcelas
	}

	created, err := s.bills.InsertBill(r.Context(), b)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.publishSync(r.Context(), amqp.KindBill, created.ID)
	writeJSON(w, http.StatusCreated, toBillResponse(created, s.today()))
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var req billRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var patch storage.BillPatch
	if req.Status != nil {
		status := core.BillStatus(*req.Status)
		patch.Status = &status
	}
	patch.Supplier = req.Fornecedor
	if req.Valor != nil {
		amount := parseMoney(req.Valor)
		patch.Amount = &amount
	}
	if req.DataVencimento != nil {
		due := parseDateField(req.DataVencimento)
		patch.DueDate = &due
	}
	patch.Installments = req.Parcelas

	updated, err := s.bills.UpdateBill(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.publishSync(r.Context(), amqp.KindBill, updated.ID)
	writeJSON(w, http.StatusOK, toBillResponse(updated, s.today()))
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := s.bills.DeleteBill(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.publishSync(r.Context(), amqp.KindBill, id)
	w.WriteHeader(http.StatusNoContent)
}
