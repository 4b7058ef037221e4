package blockchain

import (
	"bytes"
	"encoding/hex"
)

// HashSize is the length in bytes of a block digest.
const HashSize = 32

// BlockID represents the sha256 digest of a Block.
type BlockID []byte

var zeroDigest = make(BlockID, HashSize)

// ZeroDigest returns the all-zero digest used as the predecessor
// reference of the genesis block.
func ZeroDigest() BlockID {
	id := make(BlockID, HashSize)
	return id
}

func (id BlockID) Equal(other BlockID) bool {
	return bytes.Equal(id, other)
}

// IsZero reports whether the digest is the genesis predecessor sentinel.
func (id BlockID) IsZero() bool {
	return bytes.Equal(id, zeroDigest)
}

func (id BlockID) String() string {
	return hex.EncodeToString(id)
}
