package main

import (
	"time"

	"github.com/pterm/pterm"

	bc "minichain/blockchain"
)

// renderBlock prints one block as a titled box with its digests and a
// row per transfer record.
func renderBlock(view bc.BlockView) {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTitleTopCenter()
	created := time.Unix(0, int64(view.Timestamp*float64(time.Second)))
	body := pterm.Sprintf("Previous Hash: %s\n", view.PreviousHash)
	body += pterm.Sprintf("Current Hash:  %s\n", view.Hash)
	body += pterm.Sprintf("Timestamp:     %s\n", created.Format("2006-01-02 15:04:05"))
	body += pterm.Sprintf("Transactions:  %d", view.TransactionCount)
	for i, t := range view.Transactions {
		body += pterm.Sprintf("\n  %d. %s -> %s (%.2f)", i+1, t.Sender, t.Receiver, t.Amount)
	}
	pterm.Println(pbox.WithTitle(pterm.LightYellow(pterm.Sprintf("| BLOCK #%d |", view.Index))).Sprint(body))
}

// renderStats prints the aggregate chain figures.
func renderStats(view bc.StatsView) {
	data := pterm.TableData{
		{"Total Blocks", pterm.Sprintf("%d", view.TotalBlocks)},
		{"Total Transactions", pterm.Sprintf("%d", view.TotalTransactions)},
		{"Latest Block Index", pterm.Sprintf("%d", view.LastBlockIndex)},
		{"Last Block Hash", view.LastBlockHash},
		{"Chain Age", (time.Duration(view.AgeSeconds * float64(time.Second))).Round(time.Second).String()},
	}
	pterm.DefaultSection.Println("BLOCKCHAIN STATISTICS")
	if err := pterm.DefaultTable.WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

// renderValidation prints a validation result as success or failure.
func renderValidation(result bc.ValidationResult) {
	if result.Valid {
		pterm.Success.Println(result)
	} else {
		pterm.Error.Println(result)
	}
}
