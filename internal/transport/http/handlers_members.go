package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tontine/internal/platform/middleware"
	"tontine/internal/tontine/models"
	"tontine/internal/tontine/service"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
	"tontine/pkg/platform/httputil"
)

func (h *Handler) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p service.CreateMemberParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	member, err := h.service.CreateMember(ctx, p)
	if err != nil {
		h.logger.WarnContext(ctx, "create member failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, member)
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, members)
}

func (h *Handler) handleMemberTransactions(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}
	entries, err := h.service.MemberTransactions(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, true)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, false)
}

// handleMovement covers deposit and withdrawal, which share their shape. The
// member id in the path wins over any id in the body.
func (h *Handler) handleMovement(w http.ResponseWriter, r *http.Request, deposit bool) {
	ctx := r.Context()

	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}

	var p service.DepositParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	p.MemberID = memberID

	var tx *models.Transaction
	if deposit {
		tx, err = h.service.Deposit(ctx, p)
	} else {
		tx, err = h.service.Withdraw(ctx, service.WithdrawParams{
			MemberID:      memberID,
			Amount:        p.Amount,
			Note:          p.Note,
			PaymentMethod: p.PaymentMethod,
		})
	}
	if err != nil {
		h.logger.WarnContext(ctx, "balance movement rejected",
			"request_id", middleware.GetRequestID(ctx),
			"member_id", memberID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, tx)
}

func (h *Handler) handleSetLoanEligible(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}

	var body struct {
		Eligible bool `json:"eligible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	member, err := h.service.SetLoanEligible(r.Context(), memberID, body.Eligible)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) handleSetAccountStatus(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}

	var body struct {
		Status models.AccountStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	member, err := h.service.SetAccountStatus(r.Context(), memberID, body.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) handleResetCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}

	secret, err := h.service.ResetCredential(ctx, memberID)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential reset failed",
			"request_id", middleware.GetRequestID(ctx),
			"member_id", memberID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	// The plaintext appears in this response and nowhere else.
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"credential": secret})
}
