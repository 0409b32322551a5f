// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"errors"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

var (
	errEmptyCode      = errors.New("contract code is empty")
	errEmptyFunction  = errors.New("function name is empty")
	errEmptyRecipient = errors.New("badge recipient is empty")
	errEmptyBadgeType = errors.New("badge type is empty")
)

// Service is the API service for the ledger.
// It rejects obviously malformed requests before they reach the VM.
type Service struct{ vm *VM }

// EmptyArgs is the argument of methods that take none
type EmptyArgs struct{}

// DeployContractArgs are the arguments to DeployContract
type DeployContractArgs struct {
	Code            string        `json:"code"`
	ConstructorArgs []interface{} `json:"constructorArgs"`
}

// DeployContract issues a deployment of [args.Code].
// The returned transaction is pending.
func (s *Service) DeployContract(_ *http.Request, args *DeployContractArgs, reply *Transaction) error {
	if args.Code == "" {
		return errEmptyCode
	}
	tx, err := s.vm.DeployContract(args.Code, args.ConstructorArgs)
	if err != nil {
		return err
	}
	*reply = tx
	return nil
}

// SendTransactionArgs are the arguments to SendTransaction
type SendTransactionArgs struct {
	Code     string        `json:"code"`
	Function string        `json:"function"`
	Params   []interface{} `json:"params"`
}

// SendTransaction issues a call of [args.Function].
// The returned transaction is pending.
func (s *Service) SendTransaction(_ *http.Request, args *SendTransactionArgs, reply *Transaction) error {
	switch {
	case args.Code == "":
		return errEmptyCode
	case args.Function == "":
		return errEmptyFunction
	}
	tx, err := s.vm.SendTransaction(args.Code, args.Function, args.Params)
	if err != nil {
		return err
	}
	*reply = tx
	return nil
}

// GetTransactionArgs are the arguments to GetTransaction
type GetTransactionArgs struct {
	TxID ids.ID `json:"txId"`
}

// GetTransaction gets the current record of [args.TxID]
func (s *Service) GetTransaction(_ *http.Request, args *GetTransactionArgs, reply *Transaction) error {
	tx, err := s.vm.GetTransaction(args.TxID)
	if err != nil {
		return err
	}
	*reply = tx
	return nil
}

// TransactionHistoryReply is the reply from GetTransactionHistory
type TransactionHistoryReply struct {
	Transactions []Transaction `json:"transactions"`
}

// GetTransactionHistory returns every transaction in issuance order
func (s *Service) GetTransactionHistory(_ *http.Request, _ *EmptyArgs, reply *TransactionHistoryReply) error {
	txs, err := s.vm.TransactionHistory()
	reply.Transactions = txs
	return err
}

// CurrentBlockReply is the reply from GetCurrentBlock
type CurrentBlockReply struct {
	Height cjson.Uint64 `json:"height"`
}

// GetCurrentBlock returns the ledger's block height
func (s *Service) GetCurrentBlock(_ *http.Request, _ *EmptyArgs, reply *CurrentBlockReply) error {
	reply.Height = cjson.Uint64(s.vm.CurrentBlock())
	return nil
}

// GetEntityArgs are the arguments to GetEntity
type GetEntityArgs struct {
	ID string `json:"id"`
}

// GetEntity returns the entity [args.ID], creating it on first lookup
func (s *Service) GetEntity(_ *http.Request, args *GetEntityArgs, reply *Entity) error {
	entity, err := s.vm.GetEntity(args.ID)
	if err != nil {
		return err
	}
	*reply = entity
	return nil
}

// MintSBTArgs are the arguments to MintSBT
type MintSBTArgs struct {
	Recipient string                 `json:"recipient"`
	BadgeType string                 `json:"badgeType"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// MintSBT mints a soulbound badge
func (s *Service) MintSBT(_ *http.Request, args *MintSBTArgs, reply *Badge) error {
	switch {
	case args.Recipient == "":
		return errEmptyRecipient
	case args.BadgeType == "":
		return errEmptyBadgeType
	}
	badge, err := s.vm.MintSBT(args.Recipient, args.BadgeType, args.Metadata)
	if err != nil {
		return err
	}
	*reply = badge
	return nil
}

// BadgesReply is the reply from GetBadges
type BadgesReply struct {
	Badges []Badge `json:"badges"`
}

// GetBadges returns every minted badge in mint order
func (s *Service) GetBadges(_ *http.Request, _ *EmptyArgs, reply *BadgesReply) error {
	badges, err := s.vm.Badges()
	reply.Badges = badges
	return err
}
