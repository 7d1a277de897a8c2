package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	dErrors "tontine/pkg/domain-errors"
)

// Identifier uniqueness is the allocator's one job, so it is exercised under
// real concurrency rather than assumed.
func TestAllocator_UniqueUnderConcurrency(t *testing.T) {
	a := NewAllocator()

	const workers = 8
	const perWorker = 250

	out := make(chan MemberID, workers*perWorker)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for p := 0; p < perWorker; p++ {
				out <- a.MemberID()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(out)

	seen := make(map[MemberID]struct{}, workers*perWorker)
	for id := range out {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestAllocator_KindPrefixes(t *testing.T) {
	a := NewAllocator()

	memberID := a.MemberID()
	txID := a.TransactionID()

	parsedMember, err := ParseMemberID(string(memberID))
	require.NoError(t, err)
	assert.Equal(t, memberID, parsedMember)

	parsedTx, err := ParseTransactionID(string(txID))
	require.NoError(t, err)
	assert.Equal(t, txID, parsedTx)
}

func TestParseID_RejectsForeignKinds(t *testing.T) {
	a := NewAllocator()

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseMemberID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects id of a different kind", func(t *testing.T) {
		_, err := ParseMemberID(string(a.GroupID()))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects arbitrary strings", func(t *testing.T) {
		_, err := ParsePenaltyID("not-an-id")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
