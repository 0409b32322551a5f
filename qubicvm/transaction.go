// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"github.com/ava-labs/avalanchego/ids"
)

// Transaction is the ledger's record of a deployment or function call.
// [BlockHeight] is the height at issuance while pending and the height the
// transaction landed in once terminal.
type Transaction struct {
	ID          ids.ID `serialize:"true" json:"txId"`
	Kind        Kind   `serialize:"true" json:"kind"`
	Status      Status `serialize:"true" json:"status"`
	BlockHeight uint64 `serialize:"true" json:"blockHeight"`
	GasUsed     uint64 `serialize:"true" json:"gasUsed"`
	Message     string `serialize:"true" json:"message"`
	// Function is empty for deployments
	Function string `serialize:"true" json:"function,omitempty"`
	// EntityID is the deployed contract's entity for deployments
	EntityID string `serialize:"true" json:"entityId,omitempty"`
	// IssuedAt is in unix milliseconds
	IssuedAt int64 `serialize:"true" json:"issuedAt"`
}

// Entity is an account or contract record on the simulated ledger
type Entity struct {
	ID           string                 `json:"id"`
	Balance      uint64                 `json:"balance"`
	ContractCode string                 `json:"contractCode,omitempty"`
	State        map[string]interface{} `json:"state"`
}

// Badge is a soulbound achievement token. Once minted it is never
// modified, revoked or transferred.
type Badge struct {
	TokenID   ids.ID                 `json:"tokenId"`
	Recipient string                 `json:"recipient"`
	Metadata  map[string]interface{} `json:"metadata"`
	Status    BadgeStatus            `json:"status"`
}
