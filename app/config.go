package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/onet/v3/log"
	"gopkg.in/urfave/cli.v1"

	bc "minichain/blockchain"
)

// Config drives the console explorer.
type Config struct {
	// DBPath is where the bolt block archive lives.
	DBPath string `toml:"db_path"`
	// ExportPath is the target of the JSON chain export.
	ExportPath string `toml:"export_path"`
	// Reward is the amount of the genesis coinbase transfer.
	Reward float64 `toml:"reward"`
	// NTPServers, when set, makes block timestamps come from NTP
	// instead of the local clock.
	NTPServers []string `toml:"ntp_servers"`
}

func defaultConfig() Config {
	return Config{
		DBPath:     "minichain.db",
		ExportPath: "blockchain_export.json",
		Reward:     bc.DefaultReward,
	}
}

// loadConfig reads the TOML file given on the command line, falling
// back to defaults when the file does not exist.
func loadConfig(c *cli.Context) Config {
	cfg := defaultConfig()
	config := c.GlobalString("config")
	if _, err := os.Stat(config); os.IsNotExist(err) {
		log.Lvlf3("No configuration file at %s, using defaults", config)
		return cfg
	}
	if _, err := toml.DecodeFile(config, &cfg); err != nil {
		log.Fatalf("Error while reading configuration file %s: %v", config, err)
	}
	return cfg
}
