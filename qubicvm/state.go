// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix = []byte("singleton")
	txStatePrefix        = []byte("tx")
	txIndexPrefix        = []byte("txIndex")
	entityStatePrefix    = []byte("entity")
	badgeStatePrefix     = []byte("badge")

	_ State = &state{}
)

// State is a wrapper around SingletonState, TxState, EntityState and
// BadgeState. State also exposes a few methods needed for managing
// database commits and close.
type State interface {
	SingletonState
	TxState
	EntityState
	BadgeState

	Commit() error
	// Abort drops every write since the last Commit
	Abort() error
	Close() error
}

type state struct {
	SingletonState
	TxState
	EntityState
	BadgeState

	baseDB *versiondb.Database
}

func NewState(db database.Database) (State, error) {
	// create a new baseDB
	baseDB := versiondb.New(db)

	s := &state{
		SingletonState: NewSingletonState(prefixdb.New(singletonStatePrefix, baseDB)),
		EntityState:    NewEntityState(prefixdb.New(entityStatePrefix, baseDB)),
		baseDB:         baseDB,
	}
	return s, s.load()
}

// load builds the indexed sub states, which count what is already stored
func (s *state) load() error {
	txState, err := NewTxState(
		prefixdb.New(txStatePrefix, s.baseDB),
		prefixdb.New(txIndexPrefix, s.baseDB),
	)
	if err != nil {
		return err
	}
	badgeState, err := NewBadgeState(prefixdb.New(badgeStatePrefix, s.baseDB))
	if err != nil {
		return err
	}
	s.TxState = txState
	s.BadgeState = badgeState
	return nil
}

// Commit commits pending operations to baseDB
func (s *state) Commit() error {
	return s.baseDB.Commit()
}

func (s *state) Abort() error {
	s.baseDB.Abort()
	return s.load()
}

// Close closes the underlying base database
func (s *state) Close() error {
	return s.baseDB.Close()
}
