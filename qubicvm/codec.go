// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
)

// txCodecVersion prefixes every stored transaction
const txCodecVersion = 0

var (
	errTxWrongVersion = errors.New("wrong transaction codec version")

	txCodec = newTxCodec()
)

func newTxCodec() codec.Manager {
	c := linearcodec.NewDefault()
	manager := codec.NewDefaultManager()
	if err := manager.RegisterCodec(txCodecVersion, c); err != nil {
		panic(err)
	}
	return manager
}

func marshalTx(tx *Transaction) ([]byte, error) {
	return txCodec.Marshal(txCodecVersion, tx)
}

func parseTx(b []byte) (Transaction, error) {
	tx := Transaction{}
	version, err := txCodec.Unmarshal(b, &tx)
	if err != nil {
		return Transaction{}, fmt.Errorf("couldn't parse tx: %w", err)
	}
	if version != txCodecVersion {
		return Transaction{}, fmt.Errorf("%w: %d", errTxWrongVersion, version)
	}
	return tx, nil
}
