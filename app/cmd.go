package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"go.dedis.ch/onet/v3/log"
	bbolt "go.etcd.io/bbolt"
	"golang.org/x/xerrors"
	"gopkg.in/urfave/cli.v1"

	"minichain"
	bc "minichain/blockchain"
	"minichain/storage"
)

var cmds = cli.Commands{
	{
		Name:    "demo",
		Usage:   "Build a sample chain, display it, validate it and export it.",
		Aliases: []string{"d"},
		Action:  runDemo,
	},
	{
		Name:    "block",
		Usage:   "Show an archived block given by index, or the latest one.",
		Aliases: []string{"b"},
		Action:  showBlock,
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "index",
				Value: -1,
				Usage: "give this block index",
			},
		},
	},
	{
		Name:    "stats",
		Usage:   "Show aggregate figures of the archived chain.",
		Aliases: []string{"s"},
		Action:  showStats,
	},
	{
		Name:    "verify",
		Usage:   "Run the integrity walk over the archived chain.",
		Aliases: []string{"v"},
		Action:  verifyChain,
	},
}

// sampleBatches is the demo transaction data, one batch per block.
var sampleBatches = [][]bc.TransferRecord{
	{
		{Sender: "Alice", Receiver: "Bob", Amount: 10.5},
		{Sender: "Bob", Receiver: "Charlie", Amount: 5.25},
		{Sender: "Charlie", Receiver: "Alice", Amount: 2.75},
	},
	{
		{Sender: "Dave", Receiver: "Eve", Amount: 8.0},
		{Sender: "Eve", Receiver: "Frank", Amount: 15.0},
	},
}

func openArchive(cfg Config) (*storage.BlockDB, error) {
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, xerrors.Errorf("opening archive %s: %v", cfg.DBPath, err)
	}
	blockDB, err := storage.NewBlockDB(db, []byte("blocks"))
	if err != nil {
		db.Close()
		return nil, err
	}
	return blockDB, nil
}

func runDemo(c *cli.Context) error {
	cfg := loadConfig(c)
	db, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	explorer := minichain.NewExplorer(newChain(cfg), db)
	if _, err := explorer.CreateGenesis(cfg.Reward); err != nil {
		return err
	}
	for _, batch := range sampleBatches {
		if _, err := explorer.AddBlock(batch); err != nil {
			return err
		}
	}

	for _, block := range explorer.LatestBlocks(3) {
		renderBlock(block.View())
	}
	renderStats(explorer.Stats().View())
	renderValidation(explorer.Validate())

	if err := explorer.SaveJSON(cfg.ExportPath); err != nil {
		return err
	}
	if err := explorer.Archive(); err != nil {
		return err
	}
	pterm.Info.Printfln("Chain archived to %s, export written to %s", cfg.DBPath, cfg.ExportPath)
	return nil
}

func showBlock(c *cli.Context) error {
	cfg := loadConfig(c)
	db, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var block *bc.Block
	if index := c.Int("index"); index >= 0 {
		block, err = db.GetByIndex(uint64(index))
	} else {
		block, err = db.GetLatest()
	}
	if err != nil {
		return err
	}
	if block == nil {
		return xerrors.New("no block found")
	}
	log.Lvlf2("Found block %d / %x", block.Index, block.Hash)
	renderBlock(block.View())
	return nil
}

func showStats(c *cli.Context) error {
	chain, err := loadArchivedChain(c)
	if err != nil {
		return err
	}
	renderStats(chain.Stats().View())
	return nil
}

func verifyChain(c *cli.Context) error {
	chain, err := loadArchivedChain(c)
	if err != nil {
		return err
	}
	result := chain.Validate()
	renderValidation(result)
	if !result.Valid {
		return fmt.Errorf("%v", result)
	}
	return nil
}

func loadArchivedChain(c *cli.Context) (*bc.Chain, error) {
	cfg := loadConfig(c)
	db, err := openArchive(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.LoadChain()
}
