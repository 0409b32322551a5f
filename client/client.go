// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/sambitsargam/QubiLearn/builder"
	"github.com/sambitsargam/QubiLearn/library"
	"github.com/sambitsargam/QubiLearn/qubicvm"
	"github.com/sambitsargam/QubiLearn/server"
)

// Client defines the ledger, builder and library client operations.
type Client interface {
	// DeployContract issues a contract deployment
	DeployContract(ctx context.Context, code string, constructorArgs []interface{}) (qubicvm.Transaction, error)
	// SendTransaction issues a function call
	SendTransaction(ctx context.Context, code string, function string, params []interface{}) (qubicvm.Transaction, error)
	// GetTransaction fetches the current record of a transaction
	GetTransaction(ctx context.Context, txID ids.ID) (qubicvm.Transaction, error)
	TransactionHistory(ctx context.Context) ([]qubicvm.Transaction, error)
	CurrentBlock(ctx context.Context) (uint64, error)
	GetEntity(ctx context.Context, id string) (qubicvm.Entity, error)
	MintSBT(ctx context.Context, recipient string, badgeType string, metadata map[string]interface{}) (qubicvm.Badge, error)
	Badges(ctx context.Context) ([]qubicvm.Badge, error)

	// Synthesize renders a spec through the builder service
	Synthesize(ctx context.Context, spec builder.ContractSpec) (string, error)
	SynthesizeFromArchetype(ctx context.Context, archetype builder.Archetype, name string) (string, error)
	LogicBlocks(ctx context.Context) (*qubicvm.LogicBlocksReply, error)

	// SaveContract stores a contract in the library. An empty code is
	// synthesized from the spec.
	SaveContract(ctx context.Context, name string, spec builder.ContractSpec, code string) (library.SavedContract, error)
	SavedContracts(ctx context.Context) ([]library.SavedContract, error)
	SavedContract(ctx context.Context, id string) (library.SavedContract, error)
	DeleteContract(ctx context.Context, id string) error
	RecordBadge(ctx context.Context, badge qubicvm.Badge) error
	RecordedBadges(ctx context.Context) ([]qubicvm.Badge, error)
}

// New creates a new client object for the node at [uri].
func New(uri string) Client {
	return &client{
		qubic:   rpc.NewEndpointRequester(uri, server.QubicEndpoint, qubicvm.ServiceName),
		builder: rpc.NewEndpointRequester(uri, server.BuilderEndpoint, qubicvm.StaticName),
		library: rpc.NewEndpointRequester(uri, server.LibraryEndpoint, library.ServiceName),
	}
}

type client struct {
	qubic   rpc.EndpointRequester
	builder rpc.EndpointRequester
	library rpc.EndpointRequester
}

func (cli *client) DeployContract(ctx context.Context, code string, constructorArgs []interface{}) (qubicvm.Transaction, error) {
	resp := qubicvm.Transaction{}
	err := cli.qubic.SendRequest(ctx,
		"deployContract",
		&qubicvm.DeployContractArgs{Code: code, ConstructorArgs: constructorArgs},
		&resp,
	)
	return resp, err
}

func (cli *client) SendTransaction(ctx context.Context, code string, function string, params []interface{}) (qubicvm.Transaction, error) {
	resp := qubicvm.Transaction{}
	err := cli.qubic.SendRequest(ctx,
		"sendTransaction",
		&qubicvm.SendTransactionArgs{Code: code, Function: function, Params: params},
		&resp,
	)
	return resp, err
}

func (cli *client) GetTransaction(ctx context.Context, txID ids.ID) (qubicvm.Transaction, error) {
	resp := qubicvm.Transaction{}
	err := cli.qubic.SendRequest(ctx,
		"getTransaction",
		&qubicvm.GetTransactionArgs{TxID: txID},
		&resp,
	)
	return resp, err
}

func (cli *client) TransactionHistory(ctx context.Context) ([]qubicvm.Transaction, error) {
	resp := new(qubicvm.TransactionHistoryReply)
	if err := cli.qubic.SendRequest(ctx, "getTransactionHistory", &qubicvm.EmptyArgs{}, resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (cli *client) CurrentBlock(ctx context.Context) (uint64, error) {
	resp := new(qubicvm.CurrentBlockReply)
	if err := cli.qubic.SendRequest(ctx, "getCurrentBlock", &qubicvm.EmptyArgs{}, resp); err != nil {
		return 0, err
	}
	return uint64(resp.Height), nil
}

func (cli *client) GetEntity(ctx context.Context, id string) (qubicvm.Entity, error) {
	resp := qubicvm.Entity{}
	err := cli.qubic.SendRequest(ctx,
		"getEntity",
		&qubicvm.GetEntityArgs{ID: id},
		&resp,
	)
	return resp, err
}

func (cli *client) MintSBT(ctx context.Context, recipient string, badgeType string, metadata map[string]interface{}) (qubicvm.Badge, error) {
	resp := qubicvm.Badge{}
	err := cli.qubic.SendRequest(ctx,
		"mintSBT",
		&qubicvm.MintSBTArgs{Recipient: recipient, BadgeType: badgeType, Metadata: metadata},
		&resp,
	)
	return resp, err
}

func (cli *client) Badges(ctx context.Context) ([]qubicvm.Badge, error) {
	resp := new(qubicvm.BadgesReply)
	if err := cli.qubic.SendRequest(ctx, "getBadges", &qubicvm.EmptyArgs{}, resp); err != nil {
		return nil, err
	}
	return resp.Badges, nil
}

func (cli *client) Synthesize(ctx context.Context, spec builder.ContractSpec) (string, error) {
	resp := new(qubicvm.SynthesizeReply)
	if err := cli.builder.SendRequest(ctx, "synthesize", &qubicvm.SynthesizeArgs{Spec: spec}, resp); err != nil {
		return "", err
	}
	return resp.Code, nil
}

func (cli *client) SynthesizeFromArchetype(ctx context.Context, archetype builder.Archetype, name string) (string, error) {
	resp := new(qubicvm.SynthesizeReply)
	err := cli.builder.SendRequest(ctx,
		"synthesizeFromArchetype",
		&qubicvm.SynthesizeFromArchetypeArgs{Archetype: archetype, Name: name},
		resp,
	)
	if err != nil {
		return "", err
	}
	return resp.Code, nil
}

func (cli *client) LogicBlocks(ctx context.Context) (*qubicvm.LogicBlocksReply, error) {
	resp := new(qubicvm.LogicBlocksReply)
	if err := cli.builder.SendRequest(ctx, "logicBlocks", &qubicvm.EmptyArgs{}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *client) SaveContract(ctx context.Context, name string, spec builder.ContractSpec, code string) (library.SavedContract, error) {
	resp := library.SavedContract{}
	err := cli.library.SendRequest(ctx,
		"saveContract",
		&library.SaveContractArgs{Name: name, Spec: spec, Code: code},
		&resp,
	)
	return resp, err
}

func (cli *client) SavedContracts(ctx context.Context) ([]library.SavedContract, error) {
	resp := new(library.ContractsReply)
	if err := cli.library.SendRequest(ctx, "contracts", &qubicvm.EmptyArgs{}, resp); err != nil {
		return nil, err
	}
	return resp.Contracts, nil
}

func (cli *client) SavedContract(ctx context.Context, id string) (library.SavedContract, error) {
	resp := library.SavedContract{}
	err := cli.library.SendRequest(ctx, "contract", &library.ContractArgs{ID: id}, &resp)
	return resp, err
}

func (cli *client) DeleteContract(ctx context.Context, id string) error {
	return cli.library.SendRequest(ctx,
		"deleteContract",
		&library.ContractArgs{ID: id},
		new(library.SuccessReply),
	)
}

func (cli *client) RecordBadge(ctx context.Context, badge qubicvm.Badge) error {
	return cli.library.SendRequest(ctx,
		"recordBadge",
		&library.RecordBadgeArgs{Badge: badge},
		new(library.SuccessReply),
	)
}

func (cli *client) RecordedBadges(ctx context.Context) ([]qubicvm.Badge, error) {
	resp := new(qubicvm.BadgesReply)
	if err := cli.library.SendRequest(ctx, "badges", &qubicvm.EmptyArgs{}, resp); err != nil {
		return nil, err
	}
	return resp.Badges, nil
}
