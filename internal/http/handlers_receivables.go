package http

import (
	"encoding/json"
	"net/http"
	"time"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/storage"
)

type receivableRequest struct {
	Status          *string      `json:"status"`
	Descricao       *string      `json:"descricao"`
	Valor           *json.Number `json:"valor"`
	DataRecebimento *string      `json:"data_recebimento"`
	Categoria       *string      `json:"categoria"`
	Fonte           *string      `json:"fonte"`
	Observacoes     *string      `json:"observacoes"`
}

type receivableResponse struct {
	ID              int64   `json:"id"`
	Status          string  `json:"status"`
	StatusEfetivo   string  `json:"status_efetivo,omitempty"`
	ErroDados       bool    `json:"erro_dados,omitempty"`
	Descricao       string  `json:"descricao"`
	Valor           float64 `json:"valor"`
	DataRecebimento string  `json:"data_recebimento"`
	Categoria       string  `json:"categoria"`
	Fonte           string  `json:"fonte"`
	Observacoes     string  `json:"observacoes,omitempty"`
	CriadoEm        string  `json:"criado_em,omitempty"`
	AtualizadoEm    string  `json:"atualizado_em,omitempty"`
}

func toReceivableResponse(rec core.Receivable, today core.Date) receivableResponse {
	resp := receivableResponse{
		ID:          rec.ID,
		Status:      string(rec.Status),
		Descricao:   rec.Description,
		Valor:       rec.Amount.Reais(),
		Categoria:   rec.Category,
		Fonte:       rec.Source,
		Observacoes: rec.Notes,
	}
	if !rec.ReceivedDate.IsZero() {
		resp.DataRecebimento = rec.ReceivedDate.String()
	}
	if status, err := rec.EffectiveStatus(today); err != nil {
		resp.ErroDados = true
	} else {
		resp.StatusEfetivo = string(status)
	}
	if !rec.CreatedAt.IsZero() {
		resp.CriadoEm = rec.CreatedAt.Format(time.RFC3339)
	}
	if !rec.UpdatedAt.IsZero() {
		resp.AtualizadoEm = rec.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) handleListReceivables(w http.ResponseWriter, r *http.Request) {
	recs, err := s.receivables.ListReceivables(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	today := s.today()
	q := r.URL.Query()
	filter := core.ReceivableFilter{
		Status: core.StatusFilter(q.Get("status")),
		Month:  q.Get("mes"),
		Source: q.Get("fonte"),
	}
	recs = core.FilterReceivables(recs, filter, today)
	if q.Get("ordenar") == "prioridade" {
		recs = core.SortReceivablesByPriority(recs, today)
	}

	out := make([]receivableResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toReceivableResponse(rec, today))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetReceivable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	rec, err := s.receivables.GetReceivable(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReceivableResponse(rec, s.today()))
}

func (s *Server) handleCreateReceivable(w http.ResponseWriter, r *http.Request) {
	var req receivableRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	rec := core.Receivable{
		Status:       core.ReceivablePending,
		Amount:       parseMoney(req.Valor),
		ReceivedDate: parseDateField(req.DataRecebimento),
	}
	if req.Status != nil {
		rec.Status = core.ReceivableStatus(*req.Status)
	}
	if req.Descricao != nil {
		rec.Description = *req.Descricao
	}
	if req.Categoria != nil {
		rec.Category = *req.Categoria
	}
	if req.Fonte != nil {
		rec.Source = *req.Fonte
	}
	if req.Observacoes != nil {
		rec.Notes = *req.Observacoes
	}

	created, err := s.receivables.InsertReceivable(r.Context(), rec)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.publishSync(r.Context(), amqp.KindReceivable, created.ID)
	writeJSON(w, http.StatusCreated, toReceivableResponse(created, s.today()))
}

func (s *Server) handleUpdateReceivable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	var req receivableRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	var patch storage.ReceivablePatch
	if req.Status != nil {
		status := core.ReceivableStatus(*req.Status)
		patch.Status = &status
	}
	patch.Description = req.Descricao
	if req.Valor != nil {
		amount := parseMoney(req.Valor)
		patch.Amount = &amount
	}
	if req.DataRecebimento != nil {
		received := parseDateField(req.DataRecebimento)
		patch.ReceivedDate = &received
	}
	patch.Category = req.Categoria
	patch.Source = req.Fonte
	patch.Notes = req.Observacoes

	updated, err := s.receivables.UpdateReceivable(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.publishSync(r.Context(), amqp.KindReceivable, updated.ID)
	writeJSON(w, http.StatusOK, toReceivableResponse(updated, s.today()))
}

func (s *Server) handleDeleteReceivable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return
	}
	if err := s.receivables.DeleteReceivable(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.publishSync(r.Context(), amqp.KindReceivable, id)
	w.WriteHeader(http.StatusNoContent)
}
