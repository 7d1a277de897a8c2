package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"tontine/internal/tontine/models"
	"tontine/pkg/domain"
	"tontine/pkg/platform/sentinel"
)

func TestState_Lookups(t *testing.T) {
	ids := domain.NewAllocator()
	s := New(models.Settings{Currency: "XOF"})

	memberID := ids.MemberID()
	err := s.Update(context.Background(), func(st *State) error {
		st.Members[memberID] = &models.Member{ID: memberID, Name: "Awa"}
		return nil
	})
	require.NoError(t, err)

	err = s.View(context.Background(), func(st *State) error {
		m, err := st.Member(memberID)
		require.NoError(t, err)
		assert.Equal(t, "Awa", m.Name)

		_, err = st.Member(ids.MemberID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		_, err = st.Transaction(ids.TransactionID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestAppendTransaction_RejectsDuplicateID(t *testing.T) {
	ids := domain.NewAllocator()
	s := New(models.Settings{Currency: "XOF"})

	txID := ids.TransactionID()
	err := s.Update(context.Background(), func(st *State) error {
		tx := &models.Transaction{ID: txID, Type: models.TxDeposit, Status: models.TxSuccess}
		require.NoError(t, st.AppendTransaction(tx))
		assert.ErrorIs(t, st.AppendTransaction(tx), sentinel.ErrConflict)
		assert.Len(t, st.Journal(), 1)
		return nil
	})
	require.NoError(t, err)
}

func TestDocumentsFor_Ordering(t *testing.T) {
	ids := domain.NewAllocator()
	s := New(models.Settings{Currency: "XOF"})
	memberID := ids.MemberID()
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	err := s.Update(context.Background(), func(st *State) error {
		for i := 3; i >= 1; i-- {
			id := ids.DocumentID()
			st.Documents[id] = &models.KYCDocument{
				ID:          id,
				MemberID:    memberID,
				Status:      models.DocumentPending,
				SubmittedAt: base.AddDate(0, 0, i),
			}
		}
		return nil
	})
	require.NoError(t, err)

	err = s.View(context.Background(), func(st *State) error {
		docs := st.DocumentsFor(memberID)
		require.Len(t, docs, 3)
		assert.True(t, docs[0].SubmittedAt.Before(docs[1].SubmittedAt))
		assert.True(t, docs[1].SubmittedAt.Before(docs[2].SubmittedAt))
		return nil
	})
	require.NoError(t, err)
}

// A reader must never observe a balance credited without its journal entry or
// vice versa: both writes happen inside one Update, and View holds the shared
// lock for the whole closure.
func TestView_ConsistentSnapshot(t *testing.T) {
	ids := domain.NewAllocator()
	s := New(models.Settings{Currency: "XOF"})
	memberID := ids.MemberID()

	err := s.Update(context.Background(), func(st *State) error {
		st.Members[memberID] = &models.Member{ID: memberID, Name: "Moussa"}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var g errgroup.Group

	g.Go(func() error {
		for i := 0; i < 500; i++ {
			if err := s.Update(context.Background(), func(st *State) error {
				tx := &models.Transaction{
					ID:       ids.TransactionID(),
					MemberID: memberID,
					Type:     models.TxDeposit,
					Amount:   10,
					Status:   models.TxSuccess,
				}
				if err := st.AppendTransaction(tx); err != nil {
					return err
				}
				st.Members[memberID].Balance += 10
				return nil
			}); err != nil {
				return err
			}
		}
		cancel()
		return nil
	})

	g.Go(func() error {
		for ctx.Err() == nil {
			if err := s.View(context.Background(), func(st *State) error {
				var journalTotal int64
				for _, tx := range st.JournalFor(memberID) {
					journalTotal += tx.Amount
				}
				if got := st.Members[memberID].Balance; got != journalTotal {
					t.Errorf("snapshot torn: balance %d, journal sum %d", got, journalTotal)
				}
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())
}

func TestUpdate_HonorsCancelledContext(t *testing.T) {
	s := New(models.Settings{Currency: "XOF"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Update(ctx, func(st *State) error {
		t.Fatal("closure must not run after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
