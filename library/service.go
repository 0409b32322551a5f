// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package library

import (
	"net/http"

	"github.com/sambitsargam/QubiLearn/builder"
	"github.com/sambitsargam/QubiLearn/qubicvm"
)

// ServiceName is the service name of the library API
const ServiceName = "library"

// Service is the API service for the saved contracts and badges
type Service struct{ store *Store }

// NewService returns the API service for [store]
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// CreateHandlers returns a map where:
// Keys: The path extension for the library API (empty in this case)
// Values: The handler for the API
func CreateHandlers(store *Store) (map[string]http.Handler, error) {
	handler, err := qubicvm.NewHandler(ServiceName, NewService(store))
	return map[string]http.Handler{
		"": handler,
	}, err
}

// SaveContractArgs are the arguments to SaveContract.
// An empty [Code] is filled in by synthesizing [Spec].
type SaveContractArgs struct {
	Name string               `json:"name"`
	Spec builder.ContractSpec `json:"spec"`
	Code string               `json:"code"`
}

// SaveContract saves a contract
func (s *Service) SaveContract(_ *http.Request, args *SaveContractArgs, reply *SavedContract) error {
	code := args.Code
	if code == "" {
		code = builder.Synthesize(args.Spec)
	}
	contract, err := s.store.SaveContract(args.Name, args.Spec, code)
	if err != nil {
		return err
	}
	*reply = contract
	return nil
}

// ContractsReply is the reply from Contracts
type ContractsReply struct {
	Contracts []SavedContract `json:"contracts"`
}

// Contracts lists the saved contracts
func (s *Service) Contracts(_ *http.Request, _ *qubicvm.EmptyArgs, reply *ContractsReply) error {
	contracts, err := s.store.Contracts()
	reply.Contracts = contracts
	return err
}

// ContractArgs identify a saved contract
type ContractArgs struct {
	ID string `json:"id"`
}

// Contract returns one saved contract
func (s *Service) Contract(_ *http.Request, args *ContractArgs, reply *SavedContract) error {
	contract, err := s.store.Contract(args.ID)
	if err != nil {
		return err
	}
	*reply = contract
	return nil
}

// SuccessReply ...
type SuccessReply struct {
	Success bool `json:"success"`
}

// DeleteContract removes a saved contract
func (s *Service) DeleteContract(_ *http.Request, args *ContractArgs, reply *SuccessReply) error {
	if err := s.store.DeleteContract(args.ID); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// RecordBadgeArgs are the arguments to RecordBadge
type RecordBadgeArgs struct {
	Badge qubicvm.Badge `json:"badge"`
}

// RecordBadge adds a minted badge to the collection
func (s *Service) RecordBadge(_ *http.Request, args *RecordBadgeArgs, reply *SuccessReply) error {
	if err := s.store.RecordBadge(args.Badge); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// Badges lists the recorded badges
func (s *Service) Badges(_ *http.Request, _ *qubicvm.EmptyArgs, reply *qubicvm.BadgesReply) error {
	badges, err := s.store.Badges()
	reply.Badges = badges
	return err
}
