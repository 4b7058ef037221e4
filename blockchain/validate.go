package blockchain

import "fmt"

// Failure kinds reported by Validate.
const (
	FailureHashMismatch    = "hash mismatch"
	FailureLinkageMismatch = "linkage mismatch"
	FailureIndexGap        = "index gap"
	FailureBadGenesis      = "bad genesis predecessor"
)

// ValidationResult is the outcome of a full integrity walk. A tampered
// chain is reportable data, not an error: the result pinpoints the
// first failing block and which check failed.
type ValidationResult struct {
	Valid  bool
	Index  uint64
	Reason string
}

func (r ValidationResult) String() string {
	if r.Valid {
		return "chain valid"
	}
	return fmt.Sprintf("chain invalid at block %d: %s", r.Index, r.Reason)
}

// Validate walks the chain once and checks, for every block, that the
// stored hash still matches the recomputed one, that the index is
// dense, and that the predecessor reference matches the previous
// block's hash (the zero digest for genesis). The first failure stops
// the walk.
func (c *Chain) Validate() ValidationResult {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	for i, block := range c.blocks {
		if block.Index != uint64(i) {
			return ValidationResult{Index: uint64(i), Reason: FailureIndexGap}
		}
		if i == 0 {
			if !block.PrevBlock.IsZero() {
				return ValidationResult{Index: 0, Reason: FailureBadGenesis}
			}
		} else if !block.PrevBlock.Equal(c.blocks[i-1].Hash) {
			return ValidationResult{Index: uint64(i), Reason: FailureLinkageMismatch}
		}
		hash, err := block.CalculateHash()
		if err != nil || !hash.Equal(block.Hash) {
			return ValidationResult{Index: uint64(i), Reason: FailureHashMismatch}
		}
	}
	return ValidationResult{Valid: true}
}
