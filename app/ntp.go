package main

import (
	"time"

	"github.com/beevik/ntp"
	"go.dedis.ch/onet/v3/log"

	bc "minichain/blockchain"
)

// ntpClock stamps blocks with remote NTP time, falling back to the
// local clock when no server answers.
type ntpClock struct {
	servers []string
}

func (c ntpClock) Now() time.Time {
	for _, server := range c.servers {
		remote, err := ntp.Time(server)
		if err != nil {
			log.Error(err)
			continue
		}
		return remote
	}
	return time.Now()
}

// newChain builds the chain with the clock the configuration asks for.
func newChain(cfg Config) *bc.Chain {
	if len(cfg.NTPServers) > 0 {
		return bc.NewChainWithClock(ntpClock{servers: cfg.NTPServers})
	}
	return bc.NewChain()
}
