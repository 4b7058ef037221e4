package blockchain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

// fakeClock lets tests drive block timestamps by hand.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func TestChainScenario(t *testing.T) {
	chain := NewChain()

	genesis, err := chain.CreateGenesis()
	require.NoError(t, err)
	require.Equal(t, 1, chain.Len())
	assert.EqualValues(t, 0, genesis.Index)
	assert.True(t, genesis.PrevBlock.IsZero())
	assert.Equal(t, []TransferRecord{{Sender: CoinbaseSender, Receiver: CoinbaseReceiver, Amount: DefaultReward}}, genesis.Transactions)

	block, err := chain.Append([]TransferRecord{{Sender: "Alice", Receiver: "Bob", Amount: 10.5}})
	require.NoError(t, err)
	require.Equal(t, 2, chain.Len())
	assert.EqualValues(t, 1, block.Index)
	assert.True(t, block.PrevBlock.Equal(genesis.Hash))

	_, err = chain.Append([]TransferRecord{{Sender: "Bob", Receiver: "Carol", Amount: -5}})
	require.Error(t, err)
	assert.Equal(t, 2, chain.Len())

	assert.True(t, chain.Validate().Valid)
}

func TestCreateGenesisTwice(t *testing.T) {
	chain := NewChain()
	_, err := chain.CreateGenesis()
	require.NoError(t, err)
	_, err = chain.CreateGenesis()
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, 1, chain.Len())
}

func TestAppendBeforeGenesis(t *testing.T) {
	chain := NewChain()
	_, err := chain.Append([]TransferRecord{{Sender: "Alice", Receiver: "Bob", Amount: 1}})
	require.ErrorIs(t, err, ErrUninitialized)
	assert.Equal(t, 0, chain.Len())
}

func TestAppendAllOrNothing(t *testing.T) {
	chain := NewChain()
	_, err := chain.CreateGenesis()
	require.NoError(t, err)

	bad := TransferRecord{Sender: "Bob", Receiver: "Carol", Amount: -5}
	_, err = chain.Append([]TransferRecord{
		{Sender: "Alice", Receiver: "Bob", Amount: 1},
		bad,
		{Sender: "Carol", Receiver: "Dave", Amount: 2},
	})
	require.Error(t, err)

	var invalid *InvalidTransactionError
	require.True(t, xerrors.As(err, &invalid))
	assert.Equal(t, bad, invalid.Record)
	assert.Equal(t, "negative amount", invalid.Reason)
	assert.Equal(t, 1, chain.Len())
}

func TestRecordValidation(t *testing.T) {
	for _, tc := range []struct {
		record TransferRecord
		reason string
	}{
		{TransferRecord{Receiver: "Bob", Amount: 1}, "missing sender"},
		{TransferRecord{Sender: "Alice", Amount: 1}, "missing receiver"},
		{TransferRecord{Sender: "Alice", Receiver: "Bob", Amount: math.NaN()}, "amount is NaN"},
		{TransferRecord{Sender: "Alice", Receiver: "Bob", Amount: math.Inf(1)}, "amount is infinite"},
		{TransferRecord{Sender: "Alice", Receiver: "Bob", Amount: -0.01}, "negative amount"},
	} {
		err := tc.record.Validate()
		var invalid *InvalidTransactionError
		require.True(t, xerrors.As(err, &invalid), tc.reason)
		assert.Equal(t, tc.reason, invalid.Reason)
	}
	assert.NoError(t, TransferRecord{Sender: "Alice", Receiver: "Bob", Amount: 0}.Validate())
}

func TestAppendClampsBackwardClock(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	chain := NewChainWithClock(clock)
	genesis, err := chain.CreateGenesis()
	require.NoError(t, err)

	clock.now = time.Unix(500, 0)
	block, err := chain.Append([]TransferRecord{{Sender: "Alice", Receiver: "Bob", Amount: 1}})
	require.NoError(t, err)
	assert.Equal(t, genesis.Timestamp, block.Timestamp)
	assert.True(t, chain.Validate().Valid)

	clock.now = time.Unix(2000, 0)
	next, err := chain.Append([]TransferRecord{{Sender: "Bob", Receiver: "Carol", Amount: 1}})
	require.NoError(t, err)
	assert.EqualValues(t, time.Unix(2000, 0).UnixNano(), next.Timestamp)
}

func TestGetByIndex(t *testing.T) {
	chain := newTestChain(t, 2)
	require.Nil(t, chain.GetByIndex(3))

	first := chain.GetByIndex(1)
	second := chain.GetByIndex(1)
	require.NotNil(t, first)
	assert.Equal(t, first, second)

	// Callers must not be able to reach the stored block.
	first.Transactions[0].Amount = 1e9
	assert.True(t, chain.Validate().Valid)
}

func TestGetLatest(t *testing.T) {
	chain := newTestChain(t, 3)

	assert.Empty(t, chain.GetLatest(0))
	assert.Empty(t, chain.GetLatest(-1))

	latest := chain.GetLatest(2)
	require.Len(t, latest, 2)
	assert.EqualValues(t, 2, latest[0].Index)
	assert.EqualValues(t, 3, latest[1].Index)

	all := chain.GetLatest(100)
	require.Len(t, all, 4)
	assert.EqualValues(t, 0, all[0].Index)
}

func TestStats(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	chain := NewChainWithClock(clock)
	_, err := chain.CreateGenesis()
	require.NoError(t, err)
	_, err = chain.Append(records(3))
	require.NoError(t, err)
	last, err := chain.Append(records(2))
	require.NoError(t, err)

	clock.now = clock.now.Add(90 * time.Second)
	stats := chain.Stats()
	assert.EqualValues(t, 3, stats.TotalBlocks)
	assert.EqualValues(t, 6, stats.TotalTransactions)
	assert.EqualValues(t, 2, stats.LastBlockIndex)
	assert.True(t, stats.LastBlockHash.Equal(last.Hash))
	assert.Equal(t, 90*time.Second, stats.Age)
}

func TestStatsEmptyChain(t *testing.T) {
	stats := NewChain().Stats()
	assert.Equal(t, ChainStats{}, stats)
	assert.Equal(t, "", stats.LastBlockHash.String())
}

func TestFromBlocks(t *testing.T) {
	chain := newTestChain(t, 2)
	rebuilt := FromBlocks(chain.Blocks())
	assert.Equal(t, chain.Len(), rebuilt.Len())
	assert.True(t, rebuilt.Validate().Valid)
}

// newTestChain builds a chain with genesis plus n one-record blocks.
func newTestChain(t *testing.T, n int) *Chain {
	t.Helper()
	chain := NewChain()
	_, err := chain.CreateGenesis()
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := chain.Append(records(1))
		require.NoError(t, err)
	}
	return chain
}

func records(n int) []TransferRecord {
	batch := make([]TransferRecord, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, TransferRecord{Sender: "Alice", Receiver: "Bob", Amount: float64(i) + 0.5})
	}
	return batch
}
