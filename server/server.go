// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package server mounts the ledger, builder and library APIs on one mux.
package server

import (
	"fmt"
	"net/http"
	"path"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sambitsargam/QubiLearn/library"
	"github.com/sambitsargam/QubiLearn/qubicvm"
)

// Paths the services are served on
const (
	QubicEndpoint   = "/ext/qubic"
	BuilderEndpoint = "/ext/builder"
	LibraryEndpoint = "/ext/library"
	MetricsEndpoint = "/metrics"
)

// NewHandler returns a mux serving [vm], the builder, [store] and the
// metrics in [gatherer]. A nil [gatherer] serves no metrics.
func NewHandler(vm *qubicvm.VM, store *library.Store, gatherer prometheus.Gatherer) (http.Handler, error) {
	mux := http.NewServeMux()

	vmHandlers, err := vm.CreateHandlers()
	if err != nil {
		return nil, fmt.Errorf("couldn't create %s handlers: %w", qubicvm.ServiceName, err)
	}
	staticHandlers, err := qubicvm.CreateStaticHandlers()
	if err != nil {
		return nil, fmt.Errorf("couldn't create %s handlers: %w", qubicvm.StaticName, err)
	}
	libraryHandlers, err := library.CreateHandlers(store)
	if err != nil {
		return nil, fmt.Errorf("couldn't create %s handlers: %w", library.ServiceName, err)
	}

	mount(mux, QubicEndpoint, vmHandlers)
	mount(mux, BuilderEndpoint, staticHandlers)
	mount(mux, LibraryEndpoint, libraryHandlers)
	if gatherer != nil {
		mux.Handle(MetricsEndpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return mux, nil
}

func mount(mux *http.ServeMux, base string, handlers map[string]http.Handler) {
	for extension, handler := range handlers {
		mux.Handle(path.Join(base, extension), handler)
	}
}
