// Package httptransport is the thin HTTP layer. Handlers decode, delegate to
// the service, and encode; business rules live below this package.
package httptransport

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tontine/internal/platform/middleware"
	"tontine/internal/tontine/query"
	"tontine/internal/tontine/service"
	"tontine/pkg/platform/httputil"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	service *service.Service
	logger  *slog.Logger
}

// NewHandler creates the HTTP handler around the service.
func NewHandler(svc *service.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: svc, logger: logger}
}

// NewRouter wires all endpoints behind the standard middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/members", func(r chi.Router) {
		r.Post("/", h.handleCreateMember)
		r.Get("/", h.handleListMembers)
		r.Route("/{memberID}", func(r chi.Router) {
			r.Get("/transactions", h.handleMemberTransactions)
			r.Post("/deposit", h.handleDeposit)
			r.Post("/withdraw", h.handleWithdraw)
			r.Put("/loan-eligibility", h.handleSetLoanEligible)
			r.Put("/status", h.handleSetAccountStatus)
			r.Post("/credential-reset", h.handleResetCredential)
			r.Post("/kyc", h.handleSubmitKYC)
			r.Post("/kyc/review", h.handleReviewKYC)
		})
	})

	r.Route("/groups", func(r chi.Router) {
		r.Post("/", h.handleCreateGroup)
		r.Get("/", h.handleListGroups)
		r.Route("/{groupID}", func(r chi.Router) {
			r.Put("/", h.handleUpdateGroup)
			r.Delete("/", h.handleDeleteGroup)
			r.Post("/members", h.handleAddGroupMember)
			r.Delete("/members/{memberID}", h.handleRemoveGroupMember)
			r.Post("/messages", h.handlePostMessage)
			r.Get("/messages", h.handleGroupMessages)
		})
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", h.handleListTransactions)
		r.Put("/{transactionID}/status", h.handleReviseTransactionStatus)
	})

	r.Route("/penalties", func(r chi.Router) {
		r.Post("/", h.handleCreatePenalty)
		r.Get("/", h.handleListPenalties)
		r.Post("/{penaltyID}/resolve", h.handleResolvePenalty)
	})

	r.Route("/agents", func(r chi.Router) {
		r.Post("/", h.handleCreateAgent)
		r.Put("/{agentID}/status", h.handleSetAgentStatus)
		r.Post("/{agentID}/submissions", h.handleFileSubmission)
	})

	r.Route("/submissions", func(r chi.Router) {
		r.Get("/", h.handleListSubmissions)
		r.Post("/{submissionID}/review", h.handleReviewSubmission)
	})

	r.Get("/kyc/documents", h.handleListKYCDocuments)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/stats", h.handleGlobalStats)
		r.Get("/total-balance", h.handleTotalBalance)
	})

	r.Get("/settings", h.handleGetSettings)
	r.Put("/settings", h.handleReplaceSettings)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pageParams reads page and page_size from the query string, falling back to
// the first page at the default size.
func pageParams(r *http.Request) (page, pageSize int) {
	page, pageSize = 1, query.DefaultPageSize
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			pageSize = n
		}
	}
	return page, pageSize
}
