package storage

import (
	"encoding/json"
	"os"

	bc "minichain/blockchain"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// ChainExport is the JSON document produced by WriteJSON: every block
// in chain order plus the aggregate stats.
type ChainExport struct {
	Blocks []bc.BlockView `json:"blocks"`
	Stats  bc.StatsView   `json:"stats"`
}

// ExportDocument builds the export document from a chain snapshot.
func ExportDocument(chain *bc.Chain) ChainExport {
	blocks := chain.Blocks()
	views := make([]bc.BlockView, 0, len(blocks))
	for _, block := range blocks {
		views = append(views, block.View())
	}
	return ChainExport{
		Blocks: views,
		Stats:  chain.Stats().View(),
	}
}

// WriteJSON writes the chain and its stats as an indented JSON file.
func WriteJSON(path string, chain *bc.Chain) error {
	doc := ExportDocument(chain)
	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return xerrors.Errorf("encoding chain export: %v", err)
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return xerrors.Errorf("writing chain export: %v", err)
	}
	log.Lvlf2("Chain data saved to %s", path)
	return nil
}
