// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambitsargam/QubiLearn/builder"
	"github.com/sambitsargam/QubiLearn/library"
	"github.com/sambitsargam/QubiLearn/qubicvm"
	"github.com/sambitsargam/QubiLearn/server"
)

func newTestServer(t *testing.T, config qubicvm.Config) *httptest.Server {
	vm, err := qubicvm.New(config, memdb.New(), nil, nil)
	require.NoError(t, err)
	store, err := library.NewMemStore()
	require.NoError(t, err)

	handler, err := server.NewHandler(vm, store, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		_ = vm.Shutdown()
		_ = store.Close()
	})
	return srv
}

func newTestClient(t *testing.T, config qubicvm.Config) Client {
	return New(newTestServer(t, config).URL)
}

func fastConfig() qubicvm.Config {
	config := qubicvm.DefaultConfig()
	config.DeployDelay = 10 * time.Millisecond
	config.CallDelay = 10 * time.Millisecond
	config.FailureRate = 0
	return config
}

func TestLedger(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	cli := newTestClient(t, fastConfig())

	height, err := cli.CurrentBlock(ctx)
	require.NoError(err)
	assert.EqualValues(1000, height)

	deployed, err := cli.DeployContract(ctx, "class A {};", []interface{}{"arg"})
	require.NoError(err)
	assert.Equal(qubicvm.Pending, deployed.Status)

	final, err := AwaitTerminal(ctx, cli, deployed.ID, 5*time.Millisecond)
	require.NoError(err)
	assert.Equal(qubicvm.Confirmed, final.Status)

	entity, err := cli.GetEntity(ctx, deployed.EntityID)
	require.NoError(err)
	assert.Equal("class A {};", entity.ContractCode)

	sent, err := cli.SendTransaction(ctx, "class A {};", "transfer", []interface{}{"QUBIC_ADDR_1", 5})
	require.NoError(err)
	final, err = AwaitTerminal(ctx, cli, sent.ID, 5*time.Millisecond)
	require.NoError(err)
	assert.Equal("Transaction confirmed in block 1002", final.Message)

	history, err := cli.TransactionHistory(ctx)
	require.NoError(err)
	require.Len(history, 2)
	assert.Equal(deployed.ID, history[0].ID)
	assert.Equal(sent.ID, history[1].ID)

	badge, err := cli.MintSBT(ctx, "QUBIC_ADDR_1", "First Contract", map[string]interface{}{"level": "gold"})
	require.NoError(err)
	assert.Equal(true, badge.Metadata["soulbound"])
	badges, err := cli.Badges(ctx)
	require.NoError(err)
	assert.Equal([]qubicvm.Badge{badge}, badges)
}

func TestGetUnknownTransaction(t *testing.T) {
	cli := newTestClient(t, fastConfig())
	_, err := cli.GetTransaction(context.Background(), ids.GenerateTestID())
	assert.Error(t, err)
}

func TestAwaitTerminalTimeout(t *testing.T) {
	config := fastConfig()
	config.CallDelay = time.Hour
	cli := newTestClient(t, config)

	tx, err := cli.SendTransaction(context.Background(), "code", "f", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	got, err := AwaitTerminal(ctx, cli, tx.ID, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, qubicvm.Pending, got.Status)
}

func TestBuilderAndLibrary(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	cli := newTestClient(t, fastConfig())

	spec := builder.ContractSpec{
		Name: "Poll",
		Functions: []builder.Function{{
			Name:       "vote",
			Parameters: []builder.Param{{Type: "uint32_t", Name: "proposalId"}},
			Logic:      builder.LogicCastVote,
			Public:     true,
		}},
	}
	code, err := cli.Synthesize(ctx, spec)
	require.NoError(err)
	assert.Equal(builder.Synthesize(spec), code)

	example, err := cli.SynthesizeFromArchetype(ctx, builder.Oracle, "Feed")
	require.NoError(err)
	assert.Equal(builder.SynthesizeFromArchetype(builder.Oracle, "Feed"), example)

	blocks, err := cli.LogicBlocks(ctx)
	require.NoError(err)
	assert.Len(blocks.Blocks, len(builder.Catalogue()))

	saved, err := cli.SaveContract(ctx, "Poll", spec, "")
	require.NoError(err)
	assert.Equal(code, saved.Code)

	contracts, err := cli.SavedContracts(ctx)
	require.NoError(err)
	require.Len(contracts, 1)
	assert.Equal(saved.ID, contracts[0].ID)

	got, err := cli.SavedContract(ctx, saved.ID)
	require.NoError(err)
	assert.Equal("Poll", got.Name)

	require.NoError(cli.DeleteContract(ctx, saved.ID))
	assert.Error(cli.DeleteContract(ctx, saved.ID))

	badge, err := cli.MintSBT(ctx, "QUBIC_ADDR_1", "Voter", nil)
	require.NoError(err)
	require.NoError(cli.RecordBadge(ctx, badge))
	recorded, err := cli.RecordedBadges(ctx)
	require.NoError(err)
	assert.Equal([]qubicvm.Badge{badge}, recorded)
}

// The ledger service answers requests namespaced under its service name
func TestEndpointRequester(t *testing.T) {
	srv := newTestServer(t, fastConfig())

	requester := rpc.NewEndpointRequester(srv.URL, server.QubicEndpoint, qubicvm.ServiceName)
	reply := new(qubicvm.CurrentBlockReply)
	require.NoError(t, requester.SendRequest(context.Background(), "getCurrentBlock", &qubicvm.EmptyArgs{}, reply))
	assert.EqualValues(t, 1000, reply.Height)

	wrong := rpc.NewEndpointRequester(srv.URL, server.QubicEndpoint, qubicvm.StaticName)
	assert.Error(t, wrong.SendRequest(context.Background(), "getCurrentBlock", &qubicvm.EmptyArgs{}, reply))
}
