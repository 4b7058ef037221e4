package blockchain

import (
	"sync"
	"time"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

var (
	// ErrAlreadyInitialized is returned by CreateGenesis when the chain
	// already holds a genesis block.
	ErrAlreadyInitialized = xerrors.New("genesis block already exists")
	// ErrUninitialized is returned by Append before genesis creation.
	ErrUninitialized = xerrors.New("chain has no genesis block")
)

// Chain owns the ordered block sequence. CreateGenesis and Append are
// the only mutators; both take the write lock, so readers always see a
// consistent snapshot. The chain only ever grows.
type Chain struct {
	mutex  sync.RWMutex
	blocks []*Block
	clock  Clock
}

// NewChain returns an empty chain stamping blocks with the system clock.
func NewChain() *Chain {
	return NewChainWithClock(systemClock{})
}

// NewChainWithClock returns an empty chain using the given clock for
// block timestamps.
func NewChainWithClock(clock Clock) *Chain {
	return &Chain{
		blocks: make([]*Block, 0),
		clock:  clock,
	}
}

// FromBlocks rebuilds a chain around an already produced block
// sequence, e.g. one read back from an archive. The sequence is taken
// as-is; run Validate before trusting it.
func FromBlocks(blocks []*Block) *Chain {
	c := NewChain()
	for _, block := range blocks {
		c.blocks = append(c.blocks, block.Copy())
	}
	return c
}

// Len returns the number of blocks in the chain.
func (c *Chain) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.blocks)
}

// CreateGenesis initializes the chain with block 0 carrying the default
// coinbase transfer.
func (c *Chain) CreateGenesis() (*Block, error) {
	return c.CreateGenesisReward(DefaultReward)
}

// CreateGenesisReward initializes the chain with block 0 carrying a
// coinbase transfer of the given amount.
func (c *Chain) CreateGenesisReward(reward float64) (*Block, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.blocks) > 0 {
		return nil, ErrAlreadyInitialized
	}
	block, err := newGenesisBlock(uint64(c.clock.Now().UnixNano()), reward)
	if err != nil {
		return nil, xerrors.Errorf("creating genesis block: %v", err)
	}
	c.blocks = append(c.blocks, block)
	log.Lvlf2("Created genesis block %x", block.Hash)
	return block.Copy(), nil
}

// Append validates the records, links a new block to the current last
// block and stores it. Either every record is accepted and exactly one
// block is appended, or the chain is left untouched.
func (c *Chain) Append(records []TransferRecord) (*Block, error) {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, err
		}
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.blocks) == 0 {
		return nil, ErrUninitialized
	}
	last := c.blocks[len(c.blocks)-1]
	timestamp := uint64(c.clock.Now().UnixNano())
	if timestamp < last.Timestamp {
		// Clock went backward; clamp so timestamps stay non-decreasing.
		timestamp = last.Timestamp
	}
	block := &Block{
		Index:        last.Index + 1,
		Timestamp:    timestamp,
		PrevBlock:    append(BlockID(nil), last.Hash...),
		Transactions: append([]TransferRecord(nil), records...),
	}
	hash, err := block.CalculateHash()
	if err != nil {
		return nil, xerrors.Errorf("hashing block %d: %v", block.Index, err)
	}
	block.Hash = hash
	c.blocks = append(c.blocks, block)
	log.Lvlf3("Appended block %d / %x with %d transactions", block.Index, block.Hash, len(block.Transactions))
	return block.Copy(), nil
}

// GetByIndex returns a copy of the block at the given position, or nil
// when the index is out of range.
func (c *Chain) GetByIndex(index uint64) *Block {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if index >= uint64(len(c.blocks)) {
		return nil
	}
	return c.blocks[index].Copy()
}

// GetLatest returns copies of the last min(n, Len) blocks in chain
// order, oldest first. n <= 0 yields an empty slice.
func (c *Chain) GetLatest(n int) []*Block {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if n <= 0 {
		return nil
	}
	if n > len(c.blocks) {
		n = len(c.blocks)
	}
	blocks := make([]*Block, 0, n)
	for _, block := range c.blocks[len(c.blocks)-n:] {
		blocks = append(blocks, block.Copy())
	}
	return blocks
}

// Blocks returns a copy of the whole chain, oldest first.
func (c *Chain) Blocks() []*Block {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	blocks := make([]*Block, 0, len(c.blocks))
	for _, block := range c.blocks {
		blocks = append(blocks, block.Copy())
	}
	return blocks
}

// ChainStats aggregates chain-wide figures for display and export.
type ChainStats struct {
	TotalBlocks       uint64
	TotalTransactions uint64
	LastBlockHash     BlockID
	LastBlockIndex    uint64
	// Age is the elapsed time since the last block was created.
	Age time.Duration
}

// Stats computes the aggregate figures over a consistent snapshot. An
// empty chain yields the zero value.
func (c *Chain) Stats() ChainStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if len(c.blocks) == 0 {
		return ChainStats{}
	}
	var total uint64
	for _, block := range c.blocks {
		total += uint64(len(block.Transactions))
	}
	last := c.blocks[len(c.blocks)-1]
	return ChainStats{
		TotalBlocks:       uint64(len(c.blocks)),
		TotalTransactions: total,
		LastBlockHash:     append(BlockID(nil), last.Hash...),
		LastBlockIndex:    last.Index,
		Age:               c.clock.Now().Sub(time.Unix(0, int64(last.Timestamp))),
	}
}
