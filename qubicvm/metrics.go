// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

type metrics struct {
	txsIssued       prometheus.Counter
	txsConfirmed    prometheus.Counter
	txsFailed       prometheus.Counter
	badgesMinted    prometheus.Counter
	entitiesCreated prometheus.Counter
	blockHeight     prometheus.Gauge
}

func newMetrics(namespace string, registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		txsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_issued",
			Help:      "Number of deployments and calls issued",
		}),
		txsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_confirmed",
			Help:      "Number of transactions that confirmed",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_failed",
			Help:      "Number of transactions that failed",
		}),
		badgesMinted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "badges_minted",
			Help:      "Number of soulbound badges minted",
		}),
		entitiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_created",
			Help:      "Number of entities created by deployment or first lookup",
		}),
		blockHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "block_height",
			Help:      "Current block height",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.txsIssued),
		registerer.Register(m.txsConfirmed),
		registerer.Register(m.txsFailed),
		registerer.Register(m.badgesMinted),
		registerer.Register(m.entitiesCreated),
		registerer.Register(m.blockHeight),
	)
	return m, errs.Err
}
