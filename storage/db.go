package storage

import (
	"encoding/binary"

	bc "minichain/blockchain"

	"go.dedis.ch/onet/v3/log"
	"go.dedis.ch/protobuf"
	bbolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

// BlockDB archives chain blocks in a bolt bucket. Keys are the 8-byte
// big-endian block index, so a cursor scan yields blocks in chain
// order; values are the protobuf encoding of the block.
type BlockDB struct {
	*bbolt.DB
	bucketName []byte
}

// NewBlockDB returns an initialized BlockDB structure, creating the
// bucket when missing.
func NewBlockDB(db *bbolt.DB, bn []byte) (*BlockDB, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bn)
		return err
	})
	if err != nil {
		return nil, xerrors.Errorf("creating bucket: %v", err)
	}
	return &BlockDB{
		DB:         db,
		bucketName: bn,
	}, nil
}

func indexKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}

// storeToTx stores the block into the database.
func (db *BlockDB) storeToTx(tx *bbolt.Tx, block *bc.Block) error {
	log.Lvlf2("Storing block %d / %x", block.Index, block.Hash)
	val, err := protobuf.Encode(block)
	if err != nil {
		return err
	}
	return tx.Bucket(db.bucketName).Put(indexKey(block.Index), val)
}

// getFromTx returns the block stored under the given index.
// nil is returned if the key does not exist.
func (db *BlockDB) getFromTx(tx *bbolt.Tx, index uint64) (*bc.Block, error) {
	val := tx.Bucket(db.bucketName).Get(indexKey(index))
	if val == nil {
		return nil, nil
	}

	// boltdb may reuse val's memory once the transaction ends, so
	// decode from a copy.
	buf := make([]byte, len(val))
	copy(buf, val)
	block := &bc.Block{}
	if err := protobuf.Decode(buf, block); err != nil {
		return nil, err
	}
	return block, nil
}

// StoreBlocks stores the set of blocks in the boltdb.
func (db *BlockDB) StoreBlocks(blocks []*bc.Block) error {
	return db.Update(func(tx *bbolt.Tx) error {
		for _, block := range blocks {
			if err := db.storeToTx(tx, block); err != nil {
				return err
			}
		}
		return nil
	})
}

// ArchiveChain stores every block the chain currently holds.
func (db *BlockDB) ArchiveChain(chain *bc.Chain) error {
	return db.StoreBlocks(chain.Blocks())
}

// GetByIndex returns the archived block at the given index or nil if
// it doesn't exist.
func (db *BlockDB) GetByIndex(index uint64) (*bc.Block, error) {
	var result *bc.Block
	err := db.View(func(tx *bbolt.Tx) error {
		block, err := db.getFromTx(tx, index)
		if err != nil {
			return err
		}
		result = block
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("reading block %d: %v", index, err)
	}
	return result, nil
}

// GetLatest returns the archived block with the highest index, or nil
// on an empty archive.
func (db *BlockDB) GetLatest() (*bc.Block, error) {
	var result *bc.Block
	err := db.View(func(tx *bbolt.Tx) error {
		key, _ := tx.Bucket(db.bucketName).Cursor().Last()
		if key == nil {
			return nil
		}
		block, err := db.getFromTx(tx, binary.BigEndian.Uint64(key))
		if err != nil {
			return err
		}
		result = block
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("reading latest block: %v", err)
	}
	return result, nil
}

// Count returns the number of archived blocks.
func (db *BlockDB) Count() (int, error) {
	var count int
	err := db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(db.bucketName).Stats().KeyN
		return nil
	})
	return count, err
}

// LoadChain reads every archived block in index order and rebuilds a
// chain around them. Callers run Validate on the result before
// trusting it.
func (db *BlockDB) LoadChain() (*bc.Chain, error) {
	var blocks []*bc.Block
	err := db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(db.bucketName).ForEach(func(k []byte, v []byte) error {
			block, err := db.getFromTx(tx, binary.BigEndian.Uint64(k))
			if err != nil {
				return err
			}
			log.Lvlf3("Loading block %d / %x", block.Index, block.Hash)
			blocks = append(blocks, block)
			return nil
		})
	})
	if err != nil {
		return nil, xerrors.Errorf("loading chain: %v", err)
	}
	return bc.FromBlocks(blocks), nil
}
