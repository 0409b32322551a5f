// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// Domain bytes mixed into generated identifiers
const (
	txIDKind byte = iota + 1
	contractIDKind
	tokenIDKind

	idPreimageLen = 1 + wrappers.LongLen*2
)

// idSequence is shared by every VM in the process so identifiers never
// repeat, even across ledgers.
var idSequence uint64

// newID returns a fresh identifier of the given kind
func newID(kind byte, now time.Time) ids.ID {
	raw := make([]byte, idPreimageLen)
	raw[0] = kind
	binary.BigEndian.PutUint64(raw[1:], atomic.AddUint64(&idSequence, 1))
	binary.BigEndian.PutUint64(raw[1+wrappers.LongLen:], uint64(now.UnixNano()))
	return hashing.ComputeHash256Array(raw)
}

// codeHash identifies deployed contract code
func codeHash(code string) ids.ID {
	return hashing.ComputeHash256Array([]byte(code))
}

func packIndex(i uint64) []byte {
	key := make([]byte, wrappers.LongLen)
	binary.BigEndian.PutUint64(key, i)
	return key
}
