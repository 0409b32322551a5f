// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package library persists the contracts a user saved from the builder and
// the badges they were awarded.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/ava-labs/avalanchego/utils/timer/mockable"

	"github.com/sambitsargam/QubiLearn/builder"
	"github.com/sambitsargam/QubiLearn/qubicvm"
)

// Storage namespaces. Each holds one JSON array.
const (
	contractsKey = "qubibuilder_saved_contracts"
	badgesKey    = "qubic_sbts"
)

var (
	errUnknownContract = errors.New("unknown saved contract")
	errEmptyName       = errors.New("contract name is empty")
)

// SavedContract is a builder form snapshot with the code generated from it
type SavedContract struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Spec    builder.ContractSpec `json:"spec"`
	Code    string               `json:"code"`
	SavedAt time.Time            `json:"savedAt"`
}

// Store keeps the saved contracts and badges in a leveldb database
type Store struct {
	clock mockable.Clock

	// lock serializes read-modify-write cycles on the lists
	lock sync.Mutex
	db   *leveldb.DB
}

// OpenStore opens, or creates, the store in the directory [path]
func OpenStore(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		BlockCacheCapacity: 4 * opt.MiB,
		WriteBuffer:        opt.MiB,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't open library at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// NewMemStore returns a store that lives in memory only
func NewMemStore() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveContract appends a new saved contract and returns it
func (s *Store) SaveContract(name string, spec builder.ContractSpec, code string) (SavedContract, error) {
	if name == "" {
		return SavedContract{}, errEmptyName
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	contracts, err := s.contracts()
	if err != nil {
		return SavedContract{}, err
	}
	contract := SavedContract{
		ID:      uuid.NewString(),
		Name:    name,
		Spec:    spec,
		Code:    code,
		SavedAt: s.clock.Time().UTC(),
	}
	contracts = append(contracts, contract)
	return contract, s.put(contractsKey, contracts)
}

// Contracts returns the saved contracts, oldest first
func (s *Store) Contracts() ([]SavedContract, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.contracts()
}

// Contract returns the saved contract [id]
func (s *Store) Contract(id string) (SavedContract, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	contracts, err := s.contracts()
	if err != nil {
		return SavedContract{}, err
	}
	for _, contract := range contracts {
		if contract.ID == id {
			return contract, nil
		}
	}
	return SavedContract{}, fmt.Errorf("%w: %s", errUnknownContract, id)
}

// DeleteContract removes the saved contract [id]
func (s *Store) DeleteContract(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	contracts, err := s.contracts()
	if err != nil {
		return err
	}
	for i, contract := range contracts {
		if contract.ID == id {
			contracts = append(contracts[:i], contracts[i+1:]...)
			return s.put(contractsKey, contracts)
		}
	}
	return fmt.Errorf("%w: %s", errUnknownContract, id)
}

// RecordBadge appends [badge] to the awarded badges
func (s *Store) RecordBadge(badge qubicvm.Badge) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	badges := []qubicvm.Badge{}
	if err := s.get(badgesKey, &badges); err != nil {
		return err
	}
	return s.put(badgesKey, append(badges, badge))
}

// Badges returns the awarded badges in the order they were recorded
func (s *Store) Badges() ([]qubicvm.Badge, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	badges := []qubicvm.Badge{}
	if err := s.get(badgesKey, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) contracts() ([]SavedContract, error) {
	contracts := []SavedContract{}
	if err := s.get(contractsKey, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// get decodes the list under [key]. A missing list leaves [dst] untouched.
func (s *Store) get(key string, dst interface{}) error {
	data, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("couldn't read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("couldn't parse %s: %w", key, err)
	}
	return nil
}

func (s *Store) put(key string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(key), data, &opt.WriteOptions{Sync: true})
}
