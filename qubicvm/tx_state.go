// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"fmt"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

const (
	txCacheSize = 8192
)

var _ TxState = &txState{}

// TxState stores transactions by ID and remembers the order they were
// issued in.
type TxState interface {
	GetTx(txID ids.ID) (Transaction, error)
	// PutTx inserts or overwrites [tx]
	PutTx(tx Transaction) error
	// IndexTx appends [txID] to the issuance order
	IndexTx(txID ids.ID) error
	// Txs returns every indexed transaction in issuance order
	Txs() ([]Transaction, error)

	ClearCache()
}

type txState struct {
	txCache cache.Cacher
	txDB    database.Database
	indexDB database.Database

	indexed uint64
}

func NewTxState(txDB, indexDB database.Database) (TxState, error) {
	indexed, err := countKeys(indexDB)
	if err != nil {
		return nil, err
	}
	return &txState{
		txCache: &cache.LRU{Size: txCacheSize},
		txDB:    txDB,
		indexDB: indexDB,
		indexed: indexed,
	}, nil
}

func (s *txState) GetTx(txID ids.ID) (Transaction, error) {
	if txIntf, ok := s.txCache.Get(txID); ok {
		return txIntf.(Transaction), nil
	}

	txBytes, err := s.txDB.Get(txID[:])
	if err != nil {
		return Transaction{}, err
	}

	tx, err := parseTx(txBytes)
	if err != nil {
		return Transaction{}, err
	}

	s.txCache.Put(txID, tx)

	return tx, nil
}

func (s *txState) PutTx(tx Transaction) error {
	bytes, err := marshalTx(&tx)
	if err != nil {
		return err
	}

	s.txCache.Put(tx.ID, tx)
	return s.txDB.Put(tx.ID[:], bytes)
}

func (s *txState) IndexTx(txID ids.ID) error {
	if err := s.indexDB.Put(packIndex(s.indexed), txID[:]); err != nil {
		return err
	}
	s.indexed++
	return nil
}

func (s *txState) Txs() ([]Transaction, error) {
	it := s.indexDB.NewIterator()
	defer it.Release()

	txs := make([]Transaction, 0, s.indexed)
	for it.Next() {
		txID, err := ids.ToID(it.Value())
		if err != nil {
			return nil, err
		}
		tx, err := s.GetTx(txID)
		if err != nil {
			return nil, fmt.Errorf("couldn't get indexed tx %s: %w", txID, err)
		}
		txs = append(txs, tx)
	}
	return txs, it.Error()
}

func (s *txState) ClearCache() {
	s.txCache.Flush()
}

func countKeys(db database.Iteratee) (uint64, error) {
	it := db.NewIterator()
	defer it.Release()

	var n uint64
	for it.Next() {
		n++
	}
	return n, it.Error()
}
