package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/query"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
	"tontine/pkg/platform/httputil"
)

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := query.TransactionFilter{
		Type:      models.TransactionType(q.Get("type")),
		Status:    models.TransactionStatus(q.Get("status")),
		Timeframe: query.Timeframe(q.Get("timeframe")),
		Search:    q.Get("search"),
	}
	page, pageSize := pageParams(r)
	result, err := h.service.ListTransactions(r.Context(), filter, page, pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReviseTransactionStatus(w http.ResponseWriter, r *http.Request) {
	txID, err := domain.ParseTransactionID(chi.URLParam(r, "transactionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid transaction id"))
		return
	}
	var body struct {
		Status models.TransactionStatus `json:"status"`
		Reason string                   `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	tx, err := h.service.ReviseTransactionStatus(r.Context(), txID, body.Status, body.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) handleGlobalStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.GlobalStats(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleTotalBalance(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalBalance(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int64{"total_balance": total})
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, settings)
}

func (h *Handler) handleReplaceSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	updated, err := h.service.ReplaceSettings(r.Context(), settings)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}
