package query

import (
	"math"
	"sort"
	"time"

	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
)

// topMemberCount is how many members the dashboard leaderboard shows.
const topMemberCount = 3

// registrationWindowMonths fixes the width of the registrations time series.
const registrationWindowMonths = 6

// MemberBalance is one leaderboard row.
type MemberBalance struct {
	MemberID domain.MemberID `json:"member_id"`
	Name     string          `json:"name"`
	Balance  int64           `json:"balance"`
}

// MonthBucket counts registrations in one calendar month.
type MonthBucket struct {
	Month string `json:"month"` // "2026-03"
	Count int    `json:"count"`
}

// StatsSnapshot is the aggregate report over all collections, computed under
// one consistent read.
type StatsSnapshot struct {
	MemberCount       int `json:"member_count"`
	GroupCount        int `json:"group_count"`
	LoanEligibleCount int `json:"loan_eligible_count"`
	PendingKYCCount   int `json:"pending_kyc_count"`

	TotalDeposits    int64 `json:"total_deposits"`
	TotalWithdrawals int64 `json:"total_withdrawals"`
	TransactionCount int   `json:"transaction_count"`
	// SuccessRate is successful / total transactions, zero when the journal
	// is empty.
	SuccessRate float64 `json:"success_rate"`

	TopMembers           []MemberBalance `json:"top_members"`
	RegistrationsByMonth []MonthBucket   `json:"registrations_by_month"`

	Currency          string `json:"currency"`
	WithdrawalFees    int64  `json:"withdrawal_fees"`
	TontineCommission int64  `json:"tontine_commission"`
	LoanInterest      int64  `json:"loan_interest"`
	TotalProfit       int64  `json:"total_profit"`
}

// GlobalStats computes the full snapshot. Revenue figures come from the
// settings record's rates, applied as decimal fractions.
func (e *Engine) GlobalStats(st *store.State) StatsSnapshot {
	snap := StatsSnapshot{
		MemberCount: len(st.Members),
		GroupCount:  len(st.Groups),
		Currency:    st.Settings.Currency,
	}

	for _, m := range st.Members {
		if m.LoanEligible {
			snap.LoanEligibleCount++
		}
		if m.KYCStatus == models.KYCPending {
			snap.PendingKYCCount++
		}
	}

	successes := 0
	for _, tx := range st.Journal() {
		snap.TransactionCount++
		if tx.Status != models.TxSuccess {
			continue
		}
		successes++
		switch tx.Type {
		case models.TxDeposit:
			snap.TotalDeposits += tx.Amount
		case models.TxWithdrawal:
			snap.TotalWithdrawals += tx.Amount
		}
	}
	if snap.TransactionCount > 0 {
		snap.SuccessRate = float64(successes) / float64(snap.TransactionCount)
	}

	snap.TopMembers = topMembers(st)
	snap.RegistrationsByMonth = registrationSeries(st, e.now())

	var loanPrincipal int64
	for _, sub := range st.Submissions {
		if sub.Type == models.SubmissionLoanRequest && sub.Status == models.SubmissionApproved {
			loanPrincipal += sub.Amount
		}
	}

	snap.WithdrawalFees = applyRate(snap.TotalWithdrawals, st.Settings.WithdrawalFeeRate)
	snap.TontineCommission = applyRate(snap.TotalDeposits, st.Settings.TontineCommissionRate)
	snap.LoanInterest = applyRate(loanPrincipal, st.Settings.LoanInterestRate)
	snap.TotalProfit = snap.WithdrawalFees + snap.TontineCommission + snap.LoanInterest
	return snap
}

// TotalBalance sums every member's balance.
func (e *Engine) TotalBalance(st *store.State) int64 {
	var total int64
	for _, m := range st.Members {
		total += m.Balance
	}
	return total
}

func applyRate(amount int64, rate float64) int64 {
	return int64(math.Round(float64(amount) * rate))
}

// topMembers ranks by balance; ties go to the earlier join date, then the
// smaller id, so the leaderboard is deterministic.
func topMembers(st *store.State) []MemberBalance {
	members := make([]*models.Member, 0, len(st.Members))
	for _, m := range st.Members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Balance != members[j].Balance {
			return members[i].Balance > members[j].Balance
		}
		if !members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].JoinedAt.Before(members[j].JoinedAt)
		}
		return members[i].ID < members[j].ID
	})

	n := min(topMemberCount, len(members))
	out := make([]MemberBalance, 0, n)
	for _, m := range members[:n] {
		out = append(out, MemberBalance{MemberID: m.ID, Name: m.Name, Balance: m.Balance})
	}
	return out
}

// registrationSeries buckets member join dates into the trailing fixed window
// of calendar months, oldest first. Months with no registrations still appear
// with a zero count.
func registrationSeries(st *store.State, now time.Time) []MonthBucket {
	type monthKey struct {
		year  int
		month time.Month
	}

	buckets := make([]MonthBucket, 0, registrationWindowMonths)
	index := make(map[monthKey]int, registrationWindowMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(registrationWindowMonths - 1), 0)
	for i := 0; i < registrationWindowMonths; i++ {
		month := first.AddDate(0, i, 0)
		index[monthKey{month.Year(), month.Month()}] = i
		buckets = append(buckets, MonthBucket{Month: month.Format("2006-01")})
	}

	for _, m := range st.Members {
		if i, ok := index[monthKey{m.JoinedAt.Year(), m.JoinedAt.Month()}]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}
