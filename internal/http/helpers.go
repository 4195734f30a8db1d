package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"financas/internal/core"
	"financas/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"erro": msg})
}

// writeStoreError maps the store and validation errors onto the API contract:
// every invariant violation comes back in one 422 response so the client can
// show all of them at once.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string][]string{"erros": verr.Violations})
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Registro não encontrado")
	default:
		writeError(w, http.StatusInternalServerError, "Erro interno")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// parseMoney turns a JSON amount into cents. A missing or unparseable amount
// becomes zero so record validation reports it as a single violation.
func parseMoney(n *json.Number) core.Money {
	if n == nil {
		return core.Money{}
	}
	cents, err := core.ParseDecimalToCents(n.String())
	if err != nil {
		return core.Money{}
	}
	return core.Money{Cents: cents}
}

// parseDateField is the date counterpart of parseMoney: bad input becomes a
// zero date and surfaces as a validation violation.
func parseDateField(s *string) core.Date {
	if s == nil {
		return core.Date{}
	}
	d, err := core.ParseDate(*s)
	if err != nil {
		return core.Date{}
	}
	return d
}
