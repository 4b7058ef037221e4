package minichain

/*
The api.go defines the methods that can be called from the outside:
one Explorer owns a chain plus an optional block archive and exposes
the operations the display and export layers consume.

This part runs in the driver process; the core chain itself performs
no file or console I/O.
*/

import (
	bc "minichain/blockchain"
	"minichain/storage"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// Explorer is the read/write surface over a single chain.
type Explorer struct {
	chain *bc.Chain
	db    *storage.BlockDB
}

// NewExplorer wraps a chain. db may be nil when no archive is wanted.
func NewExplorer(chain *bc.Chain, db *storage.BlockDB) *Explorer {
	return &Explorer{
		chain: chain,
		db:    db,
	}
}

// Chain exposes the underlying chain for query operations.
func (e *Explorer) Chain() *bc.Chain {
	return e.chain
}

// CreateGenesis initializes the chain with the given coinbase reward.
func (e *Explorer) CreateGenesis(reward float64) (*bc.Block, error) {
	block, err := e.chain.CreateGenesisReward(reward)
	if err != nil {
		return nil, err
	}
	log.Lvlf1("Genesis block created at index %d", block.Index)
	return block, nil
}

// AddBlock appends a batch of transfer records as one block.
func (e *Explorer) AddBlock(records []bc.TransferRecord) (*bc.Block, error) {
	block, err := e.chain.Append(records)
	if err != nil {
		return nil, err
	}
	log.Lvlf1("Block %d added with %d transactions", block.Index, len(block.Transactions))
	return block, nil
}

// BlockByIndex returns a copy of the block at the given index, or nil.
func (e *Explorer) BlockByIndex(index uint64) *bc.Block {
	return e.chain.GetByIndex(index)
}

// LatestBlocks returns the last n blocks in chain order.
func (e *Explorer) LatestBlocks(n int) []*bc.Block {
	return e.chain.GetLatest(n)
}

// Stats returns the aggregate chain figures.
func (e *Explorer) Stats() bc.ChainStats {
	return e.chain.Stats()
}

// Validate runs the full integrity walk.
func (e *Explorer) Validate() bc.ValidationResult {
	return e.chain.Validate()
}

// SaveJSON exports the chain and its stats to a JSON file.
func (e *Explorer) SaveJSON(path string) error {
	return storage.WriteJSON(path, e.chain)
}

// Archive stores every block of the chain into the block archive.
func (e *Explorer) Archive() error {
	if e.db == nil {
		return xerrors.New("no block archive configured")
	}
	return e.db.ArchiveChain(e.chain)
}
