package workflow

import (
	"fmt"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
	dErrors "tontine/pkg/domain-errors"
)

// DocumentInput describes one identity document being filed.
type DocumentInput struct {
	Type       string `json:"type"`
	StorageRef string `json:"storage_ref"`
}

// SubmitKYC files documents for review. Legal only from not_submitted or
// rejected; a successful submission moves the member to pending and records
// every document as pending.
func (e *Engine) SubmitKYC(st *store.State, memberID domain.MemberID, docs []DocumentInput) ([]*models.KYCDocument, error) {
	member, err := st.Member(memberID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
	}
	if !member.KYCStatus.CanSubmit() {
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			fmt.Sprintf("cannot submit documents while kyc status is %s", member.KYCStatus))
	}
	if len(docs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one document is required")
	}
	for _, doc := range docs {
		if doc.Type == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "document type is required")
		}
	}

	now := e.now()
	created := make([]*models.KYCDocument, 0, len(docs))
	for _, doc := range docs {
		record := &models.KYCDocument{
			ID:           e.ids.DocumentID(),
			MemberID:     memberID,
			DocumentType: doc.Type,
			StorageRef:   doc.StorageRef,
			Status:       models.DocumentPending,
			SubmittedAt:  now,
		}
		st.Documents[record.ID] = record
		created = append(created, record)
	}
	member.KYCStatus = models.KYCPending
	return created, nil
}

// ReviewKYC applies a verification decision. Legal only while pending. A
// rejection requires a non-empty reason. Every pending document owned by the
// member resolves to the same decision in the same step.
func (e *Engine) ReviewKYC(st *store.State, memberID domain.MemberID, decision models.KYCStatus, reviewerID, reason string) (*models.Member, error) {
	member, err := st.Member(memberID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "member not found")
	}
	if decision != models.KYCVerified && decision != models.KYCRejected {
		return nil, dErrors.New(dErrors.CodeValidation, "decision must be verified or rejected")
	}
	if !member.KYCStatus.CanReview() {
		return nil, dErrors.New(dErrors.CodeInvalidTransition,
			fmt.Sprintf("cannot review while kyc status is %s", member.KYCStatus))
	}
	if decision == models.KYCRejected && reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "a rejection reason is required")
	}

	docStatus := models.DocumentApproved
	if decision == models.KYCRejected {
		docStatus = models.DocumentRejected
	}

	now := e.now()
	for _, doc := range st.DocumentsFor(memberID) {
		if doc.Status != models.DocumentPending {
			continue
		}
		doc.Status = docStatus
		reviewedAt := now
		doc.ReviewedAt = &reviewedAt
		doc.ReviewerID = reviewerID
		if decision == models.KYCRejected {
			doc.RejectionReason = reason
		}
	}
	member.KYCStatus = decision
	return member, nil
}
