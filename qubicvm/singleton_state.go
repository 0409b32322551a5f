// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"github.com/ava-labs/avalanchego/database"
)

const (
	IsInitializedKey byte = iota
	HeightKey
)

var (
	isInitializedKey                = []byte{IsInitializedKey}
	heightKey                       = []byte{HeightKey}
	_                SingletonState = (*singletonState)(nil)
)

// SingletonState is a thin wrapper around a database to provide,
// serialization, and de-serialization of the initialization status and the
// ledger's block height.
type SingletonState interface {
	IsInitialized() (bool, error)
	SetInitialized() error

	GetHeight() (uint64, error)
	SetHeight(height uint64) error
}

type singletonState struct {
	singletonDB database.Database
}

func NewSingletonState(db database.Database) SingletonState {
	return &singletonState{
		singletonDB: db,
	}
}

func (s *singletonState) IsInitialized() (bool, error) {
	return s.singletonDB.Has(isInitializedKey)
}

func (s *singletonState) SetInitialized() error {
	return s.singletonDB.Put(isInitializedKey, nil)
}

func (s *singletonState) GetHeight() (uint64, error) {
	return database.GetUInt64(s.singletonDB, heightKey)
}

func (s *singletonState) SetHeight(height uint64) error {
	return database.PutUInt64(s.singletonDB, heightKey, height)
}
