package blockchain

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Block is one entry of the ledger. Index = 0 -> genesis block.
// All fields are fixed at construction time; the chain hands out
// copies so stored blocks stay immutable.
type Block struct {
	// Index of the block in the chain.
	Index uint64
	// Time the block was created, in Unix nanoseconds.
	Timestamp uint64
	// Hash of the previous block in the chain.
	PrevBlock BlockID
	// Ordered transfer records carried by the block. Order is part of
	// the hash.
	Transactions []TransferRecord
	Hash         BlockID
}

// CalculateHash derives the content digest of the block from all fields
// except Hash itself. Every variable-length field is length-prefixed so
// no two distinct blocks serialize to the same byte sequence.
func (b *Block) CalculateHash() (BlockID, error) {
	var err error
	hash := sha256.New()
	for _, val := range []uint64{b.Index, b.Timestamp} {
		err = binary.Write(hash, binary.LittleEndian, val)
		if err != nil {
			return nil, errors.New("error writing to hash:" + err.Error())
		}
	}
	hash.Write(b.PrevBlock)
	err = binary.Write(hash, binary.LittleEndian, uint32(len(b.Transactions)))
	if err != nil {
		return nil, errors.New("error writing to hash:" + err.Error())
	}
	for _, t := range b.Transactions {
		for _, field := range []string{t.Sender, t.Receiver} {
			err = binary.Write(hash, binary.LittleEndian, uint32(len(field)))
			if err != nil {
				return nil, errors.New("error writing to hash:" + err.Error())
			}
			hash.Write([]byte(field))
		}
		err = binary.Write(hash, binary.LittleEndian, math.Float64bits(t.Amount))
		if err != nil {
			return nil, errors.New("error writing to hash:" + err.Error())
		}
	}
	buf := hash.Sum(nil)
	return buf, nil
}

// Copy makes a deep copy of the Block.
func (b *Block) Copy() *Block {
	if b == nil {
		return nil
	}
	prevBlock := make(BlockID, len(b.PrevBlock))
	copy(prevBlock, b.PrevBlock)
	hash := make(BlockID, len(b.Hash))
	copy(hash, b.Hash)
	transactions := make([]TransferRecord, len(b.Transactions))
	copy(transactions, b.Transactions)
	return &Block{
		Index:        b.Index,
		Timestamp:    b.Timestamp,
		PrevBlock:    prevBlock,
		Transactions: transactions,
		Hash:         hash,
	}
}

func (b *Block) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Block %d", b.Index))
	builder.WriteString(fmt.Sprintf("\n\tTimestamp: %s", time.Unix(0, int64(b.Timestamp)).Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("\n\tPrevBlock: %s", b.PrevBlock))
	builder.WriteString(fmt.Sprintf("\n\tHash: %s", b.Hash))
	builder.WriteString(fmt.Sprintf("\n\tTransactions: %d", len(b.Transactions)))
	for _, t := range b.Transactions {
		builder.WriteString(fmt.Sprintf("\n\t\t%s", t))
	}
	return builder.String()
}
