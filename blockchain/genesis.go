package blockchain

// Parties of the coinbase transfer carried by the genesis block.
const (
	CoinbaseSender   = "COINBASE"
	CoinbaseReceiver = "MINER_REWARD"
)

// DefaultReward is the amount of the genesis coinbase transfer.
const DefaultReward = 50.0

func newGenesisBlock(timestamp uint64, reward float64) (*Block, error) {
	block := &Block{
		Index:     0,
		Timestamp: timestamp,
		PrevBlock: ZeroDigest(),
		Transactions: []TransferRecord{{
			Sender:   CoinbaseSender,
			Receiver: CoinbaseReceiver,
			Amount:   reward,
		}},
	}
	hash, err := block.CalculateHash()
	if err != nil {
		return nil, err
	}
	block.Hash = hash
	return block, nil
}
