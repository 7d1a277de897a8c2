package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tontine/internal/platform/middleware"
	"tontine/internal/tontine/models"
	"tontine/internal/tontine/query"
	"tontine/internal/tontine/service"
	"tontine/internal/tontine/workflow"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
	"tontine/pkg/platform/httputil"
)

func (h *Handler) handleSubmitKYC(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}
	var body struct {
		Documents []workflow.DocumentInput `json:"documents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	docs, err := h.service.SubmitKYC(r.Context(), memberID, body.Documents)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, docs)
}

func (h *Handler) handleReviewKYC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}
	var body struct {
		Decision   models.KYCStatus `json:"decision"`
		ReviewerID string           `json:"reviewer_id"`
		Reason     string           `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	member, err := h.service.ReviewKYC(ctx, memberID, body.Decision, body.ReviewerID, body.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "identity review rejected",
			"request_id", middleware.GetRequestID(ctx),
			"member_id", memberID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) handleListKYCDocuments(w http.ResponseWriter, r *http.Request) {
	status := models.DocumentStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.DocumentPending
	}
	docs, err := h.service.ListKYCByStatus(r.Context(), status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler) handleCreatePenalty(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MemberID string `json:"member_id"`
		Amount   int64  `json:"amount"`
		Reason   string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	memberID, err := domain.ParseMemberID(body.MemberID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid member id"))
		return
	}
	penalty, err := h.service.CreatePenalty(r.Context(), memberID, body.Amount, body.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, penalty)
}

func (h *Handler) handleResolvePenalty(w http.ResponseWriter, r *http.Request) {
	penaltyID, err := domain.ParsePenaltyID(chi.URLParam(r, "penaltyID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid penalty id"))
		return
	}
	var body struct {
		ResolvedBy string `json:"resolved_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	penalty, err := h.service.ResolvePenalty(r.Context(), penaltyID, body.ResolvedBy)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, penalty)
}

func (h *Handler) handleListPenalties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := query.PenaltyFilter{
		Status:   models.PenaltyStatus(q.Get("status")),
		MemberID: q.Get("member_id"),
	}
	page, pageSize := pageParams(r)
	result, err := h.service.ListPenalties(r.Context(), filter, page, pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var p service.CreateAgentParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	agent, err := h.service.CreateAgent(r.Context(), p)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, agent)
}

func (h *Handler) handleSetAgentStatus(w http.ResponseWriter, r *http.Request) {
	agentID, err := domain.ParseAgentID(chi.URLParam(r, "agentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid agent id"))
		return
	}
	var body struct {
		Status models.AgentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	agent, err := h.service.SetAgentStatus(r.Context(), agentID, body.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agent)
}

func (h *Handler) handleFileSubmission(w http.ResponseWriter, r *http.Request) {
	agentID, err := domain.ParseAgentID(chi.URLParam(r, "agentID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid agent id"))
		return
	}
	var in workflow.SubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	sub, err := h.service.FileSubmission(r.Context(), agentID, in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	submissionID, err := domain.ParseSubmissionID(chi.URLParam(r, "submissionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid submission id"))
		return
	}
	var body struct {
		Decision models.SubmissionStatus `json:"decision"`
		Reason   string                  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	sub, err := h.service.ReviewSubmission(ctx, submissionID, body.Decision, body.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "submission review rejected",
			"request_id", middleware.GetRequestID(ctx),
			"submission_id", submissionID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := query.SubmissionFilter{
		Status:  models.SubmissionStatus(q.Get("status")),
		Type:    models.SubmissionType(q.Get("type")),
		AgentID: q.Get("agent_id"),
	}
	page, pageSize := pageParams(r)
	result, err := h.service.ListSubmissions(r.Context(), filter, page, pageSize)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
