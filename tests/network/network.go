// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// network implements an interface for setting up a default network for testing purposes.
package network

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"

	"github.com/ava-labs/avalanchego/database/memdb"
	log "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sambitsargam/QubiLearn/library"
	"github.com/sambitsargam/QubiLearn/qubicvm"
	"github.com/sambitsargam/QubiLearn/server"
)

var (
	errNotStarted = errors.New("network not started")

	_ StaticNetwork = (*existingNetwork)(nil)
	_ StaticNetwork = (*localNetwork)(nil)
)

// StaticNetwork supports a basic interface for setting up, interacting with,
// and destructing a network. This interface is intended to be used by tests
// that do not need to change the underlying state of the net
type StaticNetwork interface {
	CreateDefault(context.Context) error
	URIs(context.Context) ([]string, error)
	Teardown(context.Context) error
}

// New returns a network over [uris] when any are set, otherwise a local
// ledger configured with [config]
func New(uris string, config qubicvm.Config, logger log.Logger) StaticNetwork {
	if uris == "" {
		return NewLocalNetwork(config, logger)
	}
	return NewExistingNetwork(strings.Split(uris, ","))
}

// existingNetwork implements the StaticNetwork interface and assumes that the network
// has already been constructed and does not require any startup/teardown.
type existingNetwork struct {
	uris []string
}

func NewExistingNetwork(uris []string) *existingNetwork {
	return &existingNetwork{
		uris: uris,
	}
}

func (e *existingNetwork) CreateDefault(context.Context) error    { return nil }
func (e *existingNetwork) URIs(context.Context) ([]string, error) { return e.uris, nil }
func (e *existingNetwork) Teardown(context.Context) error         { return nil }

// localNetwork serves a fresh in-memory ledger and library from this process
type localNetwork struct {
	config qubicvm.Config
	log    log.Logger

	Registry *prometheus.Registry

	vm     *qubicvm.VM
	store  *library.Store
	server *httptest.Server
}

func NewLocalNetwork(config qubicvm.Config, logger log.Logger) *localNetwork {
	if logger == nil {
		logger = log.New()
		logger.SetHandler(log.DiscardHandler())
	}
	return &localNetwork{
		config:   config,
		log:      logger,
		Registry: prometheus.NewRegistry(),
	}
}

func (n *localNetwork) CreateDefault(context.Context) error {
	vm, err := qubicvm.New(n.config, memdb.New(), n.log, n.Registry)
	if err != nil {
		return err
	}
	store, err := library.NewMemStore()
	if err != nil {
		_ = vm.Shutdown()
		return err
	}
	handler, err := server.NewHandler(vm, store, n.Registry)
	if err != nil {
		_ = vm.Shutdown()
		_ = store.Close()
		return err
	}

	n.vm = vm
	n.store = store
	n.server = httptest.NewServer(handler)
	n.log.Info("Started local network", "uri", n.server.URL)
	return nil
}

func (n *localNetwork) URIs(context.Context) ([]string, error) {
	if n.server == nil {
		return nil, errNotStarted
	}
	return []string{n.server.URL}, nil
}

func (n *localNetwork) Teardown(context.Context) error {
	if n.server == nil {
		return errNotStarted
	}
	n.log.Info("Shutting down network.")
	n.server.Close()
	if err := n.vm.Shutdown(); err != nil {
		return err
	}
	return n.store.Close()
}
