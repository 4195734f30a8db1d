package http

import (
	"net/http"

	"financas/internal/core"
	"financas/internal/services"
)

type groupJSON struct {
	Nome  string  `json:"nome"`
	Valor float64 `json:"valor"`
}

func toGroupJSON(groups []core.GroupAmount) []groupJSON {
	out := make([]groupJSON, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupJSON{Nome: g.Name, Valor: g.Amount.Reais()})
	}
	return out
}

type billStatsJSON struct {
	TotalContas     int     `json:"total_contas"`
	ContasPendentes int     `json:"contas_pendentes"`
	ContasPagas     int     `json:"contas_pagas"`
	ContasVencidas  int     `json:"contas_vencidas"`
	ContasInvalidas int     `json:"contas_invalidas"`
	ValorPendente   float64 `json:"valor_pendente"`
	ValorPago       float64 `json:"valor_pago"`
	ValorVencido    float64 `json:"valor_vencido"`
	ValorEmAberto   float64 `json:"valor_em_aberto"`
}

func toBillStatsJSON(st core.BillStats) billStatsJSON {
	return billStatsJSON{
		TotalContas:     st.Total,
		ContasPendentes: st.Pending,
		ContasPagas:     st.Paid,
		ContasVencidas:  st.Overdue,
		ContasInvalidas: st.Invalid,
		ValorPendente:   st.PendingAmount.Reais(),
		ValorPago:       st.PaidAmount.Reais(),
		ValorVencido:    st.OverdueAmount.Reais(),
		ValorEmAberto:   st.Outstanding.Reais(),
	}
}

type receivableStatsJSON struct {
	TotalRecebidos        int     `json:"total_recebidos"`
	RecebidosConfirmados  int     `json:"recebidos_confirmados"`
	RecebidosPendentes    int     `json:"recebidos_pendentes"`
	RecebidosAtrasados    int     `json:"recebidos_atrasados"`
	RecebidosInvalidos    int     `json:"recebidos_invalidos"`
	ValorTotal            float64 `json:"valor_total"`
	ValorRecebido         float64 `json:"valor_recebido"`
	ValorPendente         float64 `json:"valor_pendente"`
	ValorAtrasado         float64 `json:"valor_atrasado"`
}

func toReceivableStatsJSON(st core.ReceivableStats) receivableStatsJSON {
	return receivableStatsJSON{
		TotalRecebidos:       st.Total,
		RecebidosConfirmados: st.Received,
		RecebidosPendentes:   st.Pending,
		RecebidosAtrasados:   st.Late,
		RecebidosInvalidos:   st.Invalid,
		ValorTotal:           st.TotalAmount.Reais(),
		ValorRecebido:        st.ReceivedAmount.Reais(),
		ValorPendente:        st.PendingAmount.Reais(),
		ValorAtrasado:        st.LateAmount.Reais(),
	}
}

func (s *Server) handleBillStats(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.ListBills(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	today := s.today()

	resp := struct {
		billStatsJSON
		PorFornecedor []groupJSON `json:"por_fornecedor"`
		PorMes        []groupJSON `json:"por_mes"`
	}{
		billStatsJSON: toBillStatsJSON(core.ComputeBillStats(bills, today)),
		PorFornecedor: toGroupJSON(core.SumBySupplier(bills)),
		PorMes:        toGroupJSON(core.SumBillsByMonth(bills)),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReceivableStats(w http.ResponseWriter, r *http.Request) {
	recs, err := s.receivables.ListReceivables(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	today := s.today()

	resp := struct {
		receivableStatsJSON
		PorFonte []groupJSON `json:"por_fonte"`
		PorMes   []groupJSON `json:"por_mes"`
	}{
		receivableStatsJSON: toReceivableStatsJSON(core.ComputeReceivableStats(recs, today)),
		PorFonte:            toGroupJSON(core.SumBySource(recs)),
		PorMes:              toGroupJSON(core.SumReceivablesByMonth(recs)),
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDashboard composes both record kinds into a single view. Ad-hoc
// monthly income and expenses may be passed as decimal query parameters
// (receitas_mensais, despesas_mensais) since transactions are not persisted.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.ListBills(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	recs, err := s.receivables.ListReceivables(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	today := s.today()
	txs := adHocTransactions(r, today)
	dash := services.BuildDashboard(bills, recs, txs, today)

	dueSoon := make([]billResponse, 0, len(dash.DueSoon))
	for _, b := range dash.DueSoon {
		dueSoon = append(dueSoon, toBillResponse(b, today))
	}

	resp := struct {
		Contas          billStatsJSON       `json:"contas"`
		Recebidos       receivableStatsJSON `json:"recebidos"`
		ReceitasMensais float64             `json:"receitas_mensais"`
		DespesasMensais float64             `json:"despesas_mensais"`
		Saldo           float64             `json:"saldo"`
		TopFornecedores []groupJSON         `json:"top_fornecedores"`
		TopFontes       []groupJSON         `json:"top_fontes"`
		VencendoEmBreve []billResponse      `json:"vencendo_em_breve"`
	}{
		Contas:          toBillStatsJSON(dash.Bills),
		Recebidos:       toReceivableStatsJSON(dash.Receivables),
		ReceitasMensais: dash.Transactions.MonthlyIncome.Reais(),
		DespesasMensais: dash.Transactions.MonthlyExpenses.Reais(),
		Saldo:           dash.Balance.Reais(),
		TopFornecedores: toGroupJSON(dash.TopSuppliers),
		TopFontes:       toGroupJSON(dash.TopSources),
		VencendoEmBreve: dueSoon,
	}
	writeJSON(w, http.StatusOK, resp)
}

func adHocTransactions(r *http.Request, today core.Date) []core.Transaction {
	var txs []core.Transaction
	if cents, err := core.ParseDecimalToCents(r.URL.Query().Get("receitas_mensais")); err == nil {
		txs = append(txs, core.Transaction{
			Type:   core.TransactionIncome,
			Amount: core.Money{Cents: cents},
			Date:   today,
		})
	}
	if cents, err := core.ParseDecimalToCents(r.URL.Query().Get("despesas_mensais")); err == nil {
		txs = append(txs, core.Transaction{
			Type:   core.TransactionExpense,
			Amount: core.Money{Cents: cents},
			Date:   today,
		})
	}
	return txs
}
