package blockchain

import (
	"fmt"
	"math"
)

// TransferRecord is a single sender to receiver value movement recorded
// inside a block. Records are plain values; once placed in a block they
// are never modified.
type TransferRecord struct {
	Sender   string  `json:"sender"`
	Receiver string  `json:"receiver"`
	Amount   float64 `json:"amount"`
}

// InvalidTransactionError reports a transfer record rejected before it
// could reach a block. It carries the offending record for diagnostics.
type InvalidTransactionError struct {
	Record TransferRecord
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction %q -> %q (%v): %s",
		e.Record.Sender, e.Record.Receiver, e.Record.Amount, e.Reason)
}

// Validate checks that the record names both parties and moves a
// non-negative finite amount.
func (t TransferRecord) Validate() error {
	var reason string
	switch {
	case t.Sender == "":
		reason = "missing sender"
	case t.Receiver == "":
		reason = "missing receiver"
	case math.IsNaN(t.Amount):
		reason = "amount is NaN"
	case math.IsInf(t.Amount, 0):
		reason = "amount is infinite"
	case t.Amount < 0:
		reason = "negative amount"
	default:
		return nil
	}
	return &InvalidTransactionError{Record: t, Reason: reason}
}

func (t TransferRecord) String() string {
	return fmt.Sprintf("%s -> %s (%.2f)", t.Sender, t.Receiver, t.Amount)
}
