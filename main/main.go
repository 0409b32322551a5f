// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	log "github.com/inconshreveable/log15"

	"github.com/sambitsargam/QubiLearn/builder"
	"github.com/sambitsargam/QubiLearn/library"
	"github.com/sambitsargam/QubiLearn/qubicvm"
	"github.com/sambitsargam/QubiLearn/server"
)

func main() {
	config, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}
	// Print version and exit
	if config.Version {
		fmt.Printf("%s@%s\n", qubicvm.Name, qubicvm.Version)
		os.Exit(0)
	}
	if config.OneShot() {
		if err := synthesize(os.Stdout, config); err != nil {
			fmt.Printf("couldn't synthesize: %s\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	logger := log.New()
	logger.SetHandler(log.LvlFilterHandler(config.LogLevel, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		logger.Error("serve returned an error", "error", err)
		os.Exit(1)
	}
}

// synthesize prints the code for the spec file or archetype in [config]
func synthesize(w io.Writer, config Config) error {
	var code string
	if config.SpecFile != "" {
		spec, err := builder.LoadSpec(config.SpecFile)
		if err != nil {
			return err
		}
		code = builder.Synthesize(spec)
	} else {
		code = builder.SynthesizeFromArchetype(config.Archetype, config.Name)
	}
	_, err := io.WriteString(w, code)
	return err
}

// run serves the APIs until [ctx] is done
func run(ctx context.Context, config Config, logger log.Logger) error {
	registry := prometheus.NewRegistry()
	factory := &qubicvm.Factory{Config: config.VM}
	vm, err := factory.New(logger, registry)
	if err != nil {
		return err
	}
	defer func() {
		if err := vm.Shutdown(); err != nil {
			logger.Error("couldn't shut down ledger", "error", err)
		}
	}()

	var store *library.Store
	if config.LibraryDir == "" {
		store, err = library.NewMemStore()
	} else {
		store, err = library.OpenStore(config.LibraryDir)
	}
	if err != nil {
		return err
	}
	defer store.Close()

	handler, err := server.NewHandler(vm, store, registry)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    config.Addr(),
		Handler: handler,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	logger.Info("serving", "addr", srv.Addr, "libraryDir", config.LibraryDir)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
