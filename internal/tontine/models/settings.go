package models

import dErrors "tontine/pkg/domain-errors"

// Settings is the singleton configuration record. Rates are decimal fractions
// (0.02 means 2%). It is replaced wholesale by an admin action, never patched
// field by field.
type Settings struct {
	Currency              string  `json:"currency"`
	WithdrawalFeeRate     float64 `json:"withdrawal_fee_rate"`
	TontineCommissionRate float64 `json:"tontine_commission_rate"`
	LoanInterestRate      float64 `json:"loan_interest_rate"`
	// RequireVerifiedKYC makes loan eligibility conditional on a verified
	// identity.
	RequireVerifiedKYC bool `json:"require_verified_kyc"`
}

// Validate rejects a settings record that cannot be used for aggregate
// computations.
func (s Settings) Validate() error {
	if s.Currency == "" {
		return dErrors.New(dErrors.CodeValidation, "currency is required")
	}
	for _, rate := range []float64{s.WithdrawalFeeRate, s.TontineCommissionRate, s.LoanInterestRate} {
		if rate < 0 || rate > 1 {
			return dErrors.New(dErrors.CodeValidation, "rates must be decimal fractions between 0 and 1")
		}
	}
	return nil
}
