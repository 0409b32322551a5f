// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
)

var (
	_ EntityState = &entityState{}
	_ BadgeState  = &badgeState{}
)

// EntityState stores entities by ID.
// Entities carry free-form state maps, so they are stored as JSON; values
// read back have JSON types (numbers become float64).
type EntityState interface {
	GetEntity(id string) (Entity, error)
	PutEntity(entity Entity) error
}

// BadgeState is the append-only list of minted badges
type BadgeState interface {
	// AddBadge appends [badge] and returns its position in the list
	AddBadge(badge Badge) (uint64, error)
	GetBadge(index uint64) (Badge, error)
	Badges() ([]Badge, error)
}

type entityState struct {
	entityDB database.Database
}

func NewEntityState(db database.Database) EntityState {
	return &entityState{entityDB: db}
}

func (s *entityState) GetEntity(id string) (Entity, error) {
	entity := Entity{}
	if err := getJSON(s.entityDB, []byte(id), &entity); err != nil {
		return Entity{}, err
	}
	return entity, nil
}

func (s *entityState) PutEntity(entity Entity) error {
	return putJSON(s.entityDB, []byte(entity.ID), entity)
}

type badgeState struct {
	badgeDB database.Database
	count   uint64
}

func NewBadgeState(db database.Database) (BadgeState, error) {
	count, err := countKeys(db)
	if err != nil {
		return nil, err
	}
	return &badgeState{badgeDB: db, count: count}, nil
}

func (s *badgeState) AddBadge(badge Badge) (uint64, error) {
	index := s.count
	if err := putJSON(s.badgeDB, packIndex(index), badge); err != nil {
		return 0, err
	}
	s.count++
	return index, nil
}

func (s *badgeState) GetBadge(index uint64) (Badge, error) {
	badge := Badge{}
	if err := getJSON(s.badgeDB, packIndex(index), &badge); err != nil {
		return Badge{}, err
	}
	return badge, nil
}

func (s *badgeState) Badges() ([]Badge, error) {
	it := s.badgeDB.NewIterator()
	defer it.Release()

	badges := make([]Badge, 0, s.count)
	for it.Next() {
		badge := Badge{}
		if err := json.Unmarshal(it.Value(), &badge); err != nil {
			return nil, fmt.Errorf("couldn't parse badge: %w", err)
		}
		badges = append(badges, badge)
	}
	return badges, it.Error()
}

func getJSON(db database.KeyValueReader, key []byte, dst interface{}) error {
	bytes, err := db.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, dst)
}

func putJSON(db database.KeyValueWriter, key []byte, src interface{}) error {
	bytes, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return db.Put(key, bytes)
}
