package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tontine/internal/tontine/ledger"
	"tontine/internal/tontine/models"
	"tontine/internal/tontine/store"
	"tontine/pkg/domain"
)

func TestGlobalStats_EmptyJournal(t *testing.T) {
	f := newFixture(t)

	err := f.store.View(context.Background(), func(st *store.State) error {
		snap := f.engine.GlobalStats(st)
		assert.Zero(t, snap.SuccessRate, "success rate must be 0, not NaN, with no transactions")
		assert.Equal(t, 1, snap.MemberCount)
		assert.Zero(t, snap.TotalDeposits)
		assert.Zero(t, snap.TotalProfit)
		return nil
	})
	require.NoError(t, err)
}

func TestGlobalStats_VolumesAndRevenue(t *testing.T) {
	f := newFixture(t)
	eng := ledger.New(f.ids, ledger.WithClock(func() time.Time { return testNow }))

	err := f.store.Update(context.Background(), func(st *store.State) error {
		if _, err := eng.Deposit(st, f.member, 100000, "", "cash"); err != nil {
			return err
		}
		if _, err := eng.Withdraw(st, f.member, 40000, "", "cash"); err != nil {
			return err
		}
		// A pending entry counts toward the total but not toward volume.
		if _, err := eng.RecordPending(st, f.member, models.TxDeposit, 9999, "", "cash"); err != nil {
			return err
		}
		// An approved loan request feeds the interest figure.
		subID := f.ids.SubmissionID()
		st.Submissions[subID] = &models.FieldSubmission{
			ID:       subID,
			MemberID: f.member,
			Type:     models.SubmissionLoanRequest,
			Amount:   50000,
			Status:   models.SubmissionApproved,
		}
		return nil
	})
	require.NoError(t, err)

	err = f.store.View(context.Background(), func(st *store.State) error {
		snap := f.engine.GlobalStats(st)

		assert.Equal(t, int64(100000), snap.TotalDeposits)
		assert.Equal(t, int64(40000), snap.TotalWithdrawals)
		assert.Equal(t, 3, snap.TransactionCount)
		assert.InDelta(t, 2.0/3.0, snap.SuccessRate, 1e-9)

		// Rates from the fixture: 2% fee, 5% commission, 10% interest.
		assert.Equal(t, int64(800), snap.WithdrawalFees)
		assert.Equal(t, int64(5000), snap.TontineCommission)
		assert.Equal(t, int64(5000), snap.LoanInterest)
		assert.Equal(t, int64(10800), snap.TotalProfit)
		assert.Equal(t, "XOF", snap.Currency)
		return nil
	})
	require.NoError(t, err)
}

func TestGlobalStats_TopMembersDeterministicTies(t *testing.T) {
	f := newFixture(t)

	var early, late, third, fourth domain.MemberID
	err := f.store.Update(context.Background(), func(st *store.State) error {
		delete(st.Members, f.member)
		add := func(name string, balance int64, joined time.Time) domain.MemberID {
			id := f.ids.MemberID()
			st.Members[id] = &models.Member{ID: id, Name: name, Balance: balance, JoinedAt: joined}
			return id
		}
		late = add("Late Joiner", 5000, testNow)
		early = add("Early Joiner", 5000, testNow.AddDate(0, -2, 0))
		third = add("Third", 1000, testNow)
		fourth = add("Fourth", 500, testNow)
		return nil
	})
	require.NoError(t, err)

	err = f.store.View(context.Background(), func(st *store.State) error {
		snap := f.engine.GlobalStats(st)
		require.Len(t, snap.TopMembers, 3)
		assert.Equal(t, early, snap.TopMembers[0].MemberID, "equal balances rank by earlier join date")
		assert.Equal(t, late, snap.TopMembers[1].MemberID)
		assert.Equal(t, third, snap.TopMembers[2].MemberID)
		_ = fourth
		return nil
	})
	require.NoError(t, err)
}

func TestGlobalStats_RegistrationSeries(t *testing.T) {
	f := newFixture(t)

	err := f.store.Update(context.Background(), func(st *store.State) error {
		add := func(joined time.Time) {
			id := f.ids.MemberID()
			st.Members[id] = &models.Member{ID: id, Name: "m", JoinedAt: joined}
		}
		add(testNow)                    // current month
		add(testNow.AddDate(0, -1, 0))  // previous month
		add(testNow.AddDate(0, -1, 0))  // previous month
		add(testNow.AddDate(0, -12, 0)) // outside the window
		return nil
	})
	require.NoError(t, err)

	err = f.store.View(context.Background(), func(st *store.State) error {
		snap := f.engine.GlobalStats(st)
		require.Len(t, snap.RegistrationsByMonth, 6)

		assert.Equal(t, "2025-10", snap.RegistrationsByMonth[0].Month)
		assert.Equal(t, "2026-03", snap.RegistrationsByMonth[5].Month)
		assert.Equal(t, 1, snap.RegistrationsByMonth[5].Count)
		// two added here plus the fixture member, all one month back
		assert.Equal(t, 3, snap.RegistrationsByMonth[4].Count)

		total := 0
		for _, b := range snap.RegistrationsByMonth {
			total += b.Count
		}
		assert.Equal(t, 4, total)
		return nil
	})
	require.NoError(t, err)
}

func TestTotalBalance(t *testing.T) {
	f := newFixture(t)
	err := f.store.Update(context.Background(), func(st *store.State) error {
		st.Members[f.member].Balance = 1200
		id := f.ids.MemberID()
		st.Members[id] = &models.Member{ID: id, Name: "other", Balance: 800}
		return nil
	})
	require.NoError(t, err)

	err = f.store.View(context.Background(), func(st *store.State) error {
		assert.Equal(t, int64(2000), f.engine.TotalBalance(st))
		return nil
	})
	require.NoError(t, err)
}
