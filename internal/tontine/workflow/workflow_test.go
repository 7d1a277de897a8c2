package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tontine/internal/tontine/ledger"
	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
)

type WorkflowSuite struct {
	suite.Suite
	store  *store.Store
	engine *Engine
	ids    *domain.Allocator
	member domain.MemberID
	agent  domain.AgentID
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}

func (s *WorkflowSuite) SetupTest() {
	s.ids = domain.NewAllocator()
	s.store = store.New(models.Settings{Currency: "XOF"})
	clock := func() time.Time {
		return time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	}
	ledgerEngine := ledger.New(s.ids, ledger.WithClock(clock))
	s.engine = New(s.ids, ledgerEngine, WithClock(clock))

	s.member = s.ids.MemberID()
	s.agent = s.ids.AgentID()
	err := s.store.Update(context.Background(), func(st *store.State) error {
		st.Members[s.member] = &models.Member{
			ID:            s.member,
			Name:          "Fatou Ndiaye",
			Phone:         "+221770000001",
			AccountStatus: models.AccountActive,
			KYCStatus:     models.KYCNotSubmitted,
		}
		st.Agents[s.agent] = &models.Agent{
			ID:     s.agent,
			Name:   "Ibrahima Sarr",
			Zone:   "Pikine",
			Status: models.AgentActive,
		}
		return nil
	})
	s.Require().NoError(err)
}

func (s *WorkflowSuite) update(fn func(st *store.State) error) {
	s.Require().NoError(s.store.Update(context.Background(), fn))
}

func (s *WorkflowSuite) TestKYCLifecycle() {
	docs := []DocumentInput{
		{Type: "national_id", StorageRef: "kyc/national-1.jpg"},
		{Type: "proof_of_address", StorageRef: "kyc/address-1.pdf"},
	}

	s.Run("submit moves member to pending and files documents", func() {
		s.update(func(st *store.State) error {
			created, err := s.engine.SubmitKYC(st, s.member, docs)
			s.Require().NoError(err)
			s.Len(created, 2)
			s.Equal(models.KYCPending, st.Members[s.member].KYCStatus)
			for _, doc := range created {
				s.Equal(models.DocumentPending, doc.Status)
			}
			return nil
		})
	})

	s.Run("submit while pending is an invalid transition", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.SubmitKYC(st, s.member, docs)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
			return nil
		})
	})

	s.Run("verification resolves every pending document as one batch", func() {
		s.update(func(st *store.State) error {
			member, err := s.engine.ReviewKYC(st, s.member, models.KYCVerified, "admin1", "")
			s.Require().NoError(err)
			s.Equal(models.KYCVerified, member.KYCStatus)
			for _, doc := range st.DocumentsFor(s.member) {
				s.Equal(models.DocumentApproved, doc.Status)
				s.Equal("admin1", doc.ReviewerID)
				s.NotNil(doc.ReviewedAt)
			}
			return nil
		})
	})

	s.Run("review after verification is an invalid transition", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.ReviewKYC(st, s.member, models.KYCRejected, "admin1", "late")
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
			return nil
		})
	})
}

func (s *WorkflowSuite) TestKYCRejection() {
	s.update(func(st *store.State) error {
		_, err := s.engine.SubmitKYC(st, s.member, []DocumentInput{{Type: "national_id", StorageRef: "kyc/id.jpg"}})
		s.Require().NoError(err)
		return nil
	})

	s.Run("rejection without a reason is a validation error", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.ReviewKYC(st, s.member, models.KYCRejected, "admin1", "")
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
			s.Equal(models.KYCPending, st.Members[s.member].KYCStatus)
			return nil
		})
	})

	s.Run("rejection marks member and documents with the reason", func() {
		s.update(func(st *store.State) error {
			member, err := s.engine.ReviewKYC(st, s.member, models.KYCRejected, "admin1", "photo unreadable")
			s.Require().NoError(err)
			s.Equal(models.KYCRejected, member.KYCStatus)
			for _, doc := range st.DocumentsFor(s.member) {
				s.Equal(models.DocumentRejected, doc.Status)
				s.Equal("photo unreadable", doc.RejectionReason)
			}
			return nil
		})
	})

	s.Run("rejected members may resubmit", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.SubmitKYC(st, s.member, []DocumentInput{{Type: "national_id", StorageRef: "kyc/id-2.jpg"}})
			s.NoError(err)
			s.Equal(models.KYCPending, st.Members[s.member].KYCStatus)
			return nil
		})
	})
}

func (s *WorkflowSuite) TestPenaltyLifecycle() {
	var penaltyID domain.PenaltyID

	s.Run("create requires a positive amount and known member", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.CreatePenalty(st, s.member, 0, "late payment")
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidAmount))

			_, err = s.engine.CreatePenalty(st, s.ids.MemberID(), 5000, "late payment")
			s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

			penalty, err := s.engine.CreatePenalty(st, s.member, 5000, "late payment")
			s.Require().NoError(err)
			s.Equal(models.PenaltyActive, penalty.Status)
			penaltyID = penalty.ID
			return nil
		})
	})

	s.Run("resolution stamps resolver and leaves the balance alone", func() {
		s.update(func(st *store.State) error {
			penalty, err := s.engine.ResolvePenalty(st, penaltyID, "admin1")
			s.Require().NoError(err)
			s.Equal(models.PenaltyResolved, penalty.Status)
			s.Equal("admin1", penalty.ResolvedBy)
			s.NotNil(penalty.ResolvedAt)
			s.Equal(int64(0), st.Members[s.member].Balance)

			// The resolution itself is journalled as a zero-amount entry.
			entries := st.JournalFor(s.member)
			s.Require().Len(entries, 1)
			s.Equal(models.TxStatusChange, entries[0].Type)
			s.Equal(int64(0), entries[0].Amount)
			return nil
		})
	})

	s.Run("second resolution is an invalid transition", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.ResolvePenalty(st, penaltyID, "admin2")
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
			return nil
		})
	})
}

func (s *WorkflowSuite) TestSubmissionFiling() {
	s.Run("collections require an existing member and positive amount", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.FileSubmission(st, s.agent, SubmissionInput{
				Type:   models.SubmissionDailyCollection,
				Amount: 0,
			})
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidAmount))

			_, err = s.engine.FileSubmission(st, s.agent, SubmissionInput{
				MemberID: s.ids.MemberID(),
				Type:     models.SubmissionDailyCollection,
				Amount:   2000,
			})
			s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
			return nil
		})
	})

	s.Run("filing bumps the agent's submission count", func() {
		s.update(func(st *store.State) error {
			sub, err := s.engine.FileSubmission(st, s.agent, SubmissionInput{
				MemberID: s.member,
				Type:     models.SubmissionDailyCollection,
				Amount:   2000,
			})
			s.Require().NoError(err)
			s.Equal(models.SubmissionPending, sub.Status)
			s.Equal(1, st.Agents[s.agent].SubmissionCount)
			return nil
		})
	})

	s.Run("loan requests refuse a negative amount", func() {
		s.update(func(st *store.State) error {
			_, err := s.engine.FileSubmission(st, s.agent, SubmissionInput{
				MemberID: s.member,
				Type:     models.SubmissionLoanRequest,
				Amount:   -1,
			})
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidAmount))

			_, err = s.engine.FileSubmission(st, s.agent, SubmissionInput{
				MemberID: s.member,
				Type:     models.SubmissionLoanRequest,
			})
			s.NoError(err)
			return nil
		})
	})

	s.Run("inactive agents cannot file", func() {
		s.update(func(st *store.State) error {
			st.Agents[s.agent].Status = models.AgentInactive
			_, err := s.engine.FileSubmission(st, s.agent, SubmissionInput{
				MemberID: s.member,
				Type:     models.SubmissionDailyCollection,
				Amount:   2000,
			})
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
			return nil
		})
	})
}

func (s *WorkflowSuite) TestSubmissionReview() {
	s.Run("approving a collection credits the ledger in the same step", func() {
		var subID domain.SubmissionID
		s.update(func(st *store.State) error {
			sub, err := s.engine.FileSubmission(st, s.agent, SubmissionInput{
				MemberID: s.member,
				Type:     models.SubmissionDailyCollection,
				Amount:   15000,
			})
			s.Require().NoError(err)
			subID = sub.ID
			return nil
		})

		s.update(func(st *store.State) error {
			sub, err := s.engine.ReviewSubmission(st, subID, models.SubmissionApproved, "")
			s.Require().NoError(err)
			s.Equal(models.SubmissionApproved, sub.Status)
			s.Equal(int64(15000), st.Members[s.member].Balance)

			entries := st.JournalFor(s.member)
			s.Require().Len(entries, 1)
			s.Equal(models.TxDeposit, entries[0].Type)
			s.Equal(int64(15000), entries[0].Amount)
			s.Equal(models.TxSuccess, entries[0].Status)
			return nil
		})

		s.Run("re-review is an invalid transition", func() {
			s.update(func(st *store.State) error {
				_, err := s.engine.ReviewSubmission(st, subID, models.SubmissionRejected, "changed my mind")
				s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
				return nil
			})
		})
	})

	s.Run("approving a registration creates the member and seeds the balance", func() {
		var subID domain.SubmissionID
		s.update(func(st *store.State) error {
			sub, err := s.engine.FileSubmission(st, s.agent, SubmissionInput{
				ClientName:  "Cheikh Ba",
				ClientPhone: "+221770000042",
				Type:        models.SubmissionNewRegistration,
				Amount:      5000,
			})
			s.Require().NoError(err)
			subID = sub.ID
			return nil
		})

		s.update(func(st *store.State) error {
			sub, err := s.engine.ReviewSubmission(st, subID, models.SubmissionApproved, "")
			s.Require().NoError(err)
			s.Require().NotEmpty(sub.MemberID)

			member := st.Members[sub.MemberID]
			s.Require().NotNil(member)
			s.Equal("Cheikh Ba", member.Name)
			s.Equal(int64(5000), member.Balance)
			s.Len(st.JournalFor(member.ID), 1)
			return nil
		})
	})

	s.Run("rejection leaves the ledger untouched", func() {
		var subID domain.SubmissionID
		s.update(func(st *store.State) error {
			sub, err := s.engine.FileSubmission(st, s.agent, SubmissionInput{
				MemberID: s.member,
				Type:     models.SubmissionLoanRequest,
				Amount:   30000,
			})
			s.Require().NoError(err)
			subID = sub.ID
			return nil
		})

		s.update(func(st *store.State) error {
			before := st.Members[s.member].Balance
			sub, err := s.engine.ReviewSubmission(st, subID, models.SubmissionRejected, "missing guarantor")
			s.Require().NoError(err)
			s.Equal(models.SubmissionRejected, sub.Status)
			s.Contains(sub.Notes, "missing guarantor")
			s.Equal(before, st.Members[s.member].Balance)
			return nil
		})
	})
}
