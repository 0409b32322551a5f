// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"github.com/prometheus/client_golang/prometheus"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database/memdb"
)

// Factory builds in-memory ledgers from a fixed config
type Factory struct {
	Config Config
}

// New returns a ledger backed by a fresh in-memory database
func (f *Factory) New(logger log.Logger, registerer prometheus.Registerer) (*VM, error) {
	return New(f.Config, memdb.New(), logger, registerer)
}
