package blockchain

import "time"

// BlockView is the read-only serialization of a Block handed to the
// display and export layers. Digests are hex-encoded, the timestamp is
// in Unix seconds.
type BlockView struct {
	Index            uint64           `json:"index"`
	PreviousHash     string           `json:"previous_hash"`
	Timestamp        float64          `json:"timestamp"`
	Transactions     []TransferRecord `json:"transactions"`
	Hash             string           `json:"hash"`
	TransactionCount int              `json:"transaction_count"`
}

// View renders the block for consumption outside the core.
func (b *Block) View() BlockView {
	transactions := make([]TransferRecord, len(b.Transactions))
	copy(transactions, b.Transactions)
	return BlockView{
		Index:            b.Index,
		PreviousHash:     b.PrevBlock.String(),
		Timestamp:        float64(b.Timestamp) / float64(time.Second),
		Transactions:     transactions,
		Hash:             b.Hash.String(),
		TransactionCount: len(b.Transactions),
	}
}

// StatsView mirrors the stats document of the JSON export.
type StatsView struct {
	TotalBlocks       uint64  `json:"total_blocks"`
	TotalTransactions uint64  `json:"total_transactions"`
	LastBlockHash     string  `json:"last_block_hash"`
	LastBlockIndex    uint64  `json:"last_block_index"`
	AgeSeconds        float64 `json:"blockchain_age_seconds"`
}

// View renders the stats for consumption outside the core.
func (s ChainStats) View() StatsView {
	return StatsView{
		TotalBlocks:       s.TotalBlocks,
		TotalTransactions: s.TotalTransactions,
		LastBlockHash:     s.LastBlockHash.String(),
		LastBlockIndex:    s.LastBlockIndex,
		AgeSeconds:        s.Age.Seconds(),
	}
}
