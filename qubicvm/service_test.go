// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambitsargam/QubiLearn/builder"
)

func TestServiceRejectsMalformed(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t, testConfig())
	service := &Service{vm}

	tx := Transaction{}
	assert.ErrorIs(service.DeployContract(nil, &DeployContractArgs{}, &tx), errEmptyCode)
	assert.ErrorIs(service.SendTransaction(nil, &SendTransactionArgs{Function: "f"}, &tx), errEmptyCode)
	assert.ErrorIs(service.SendTransaction(nil, &SendTransactionArgs{Code: "c"}, &tx), errEmptyFunction)

	badge := Badge{}
	assert.ErrorIs(service.MintSBT(nil, &MintSBTArgs{BadgeType: "b"}, &badge), errEmptyRecipient)
	assert.ErrorIs(service.MintSBT(nil, &MintSBTArgs{Recipient: "r"}, &badge), errEmptyBadgeType)

	txs, err := vm.TransactionHistory()
	require.NoError(t, err)
	assert.Empty(txs)
}

func TestServiceCurrentBlock(t *testing.T) {
	vm := newTestVM(t, testConfig())
	service := &Service{vm}

	reply := CurrentBlockReply{}
	require.NoError(t, service.GetCurrentBlock(nil, &EmptyArgs{}, &reply))
	assert.EqualValues(t, 1000, reply.Height)
}

// call posts a JSON-RPC request to [handler] and decodes the result
func call(t *testing.T, handler http.Handler, method string, args interface{}, reply interface{}) error {
	body, err := json2.EncodeClientRequest(method, args)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return json2.DecodeClientResponse(rec.Body, reply)
}

func TestHandlersRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	config := testConfig()
	config.FailureRate = 0
	vm := newTestVM(t, config)

	handlers, err := vm.CreateHandlers()
	require.NoError(err)
	handler := handlers[""]

	deployed := Transaction{}
	require.NoError(call(t, handler, "qubic.deployContract", &DeployContractArgs{Code: "class A {};"}, &deployed))
	assert.Equal(Pending, deployed.Status)

	got := Transaction{}
	require.NoError(call(t, handler, "qubic.getTransaction", &GetTransactionArgs{TxID: deployed.ID}, &got))
	assert.Equal(deployed.ID, got.ID)

	awaitTerminal(t, vm, deployed.ID)

	entity := Entity{}
	require.NoError(call(t, handler, "qubic.getEntity", &GetEntityArgs{ID: deployed.EntityID}, &entity))
	assert.Equal("class A {};", entity.ContractCode)

	history := TransactionHistoryReply{}
	require.NoError(call(t, handler, "qubic.getTransactionHistory", &EmptyArgs{}, &history))
	require.Len(history.Transactions, 1)
	assert.Equal(Confirmed, history.Transactions[0].Status)

	block := CurrentBlockReply{}
	require.NoError(call(t, handler, "qubic.getCurrentBlock", &EmptyArgs{}, &block))
	assert.EqualValues(1001, block.Height)

	err = call(t, handler, "qubic.sendTransaction", &SendTransactionArgs{Code: "c"}, &got)
	assert.Error(err)
}

func TestStaticHandlers(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	handlers, err := CreateStaticHandlers()
	require.NoError(err)
	handler := handlers[""]

	spec := builder.ContractSpec{
		Name:      "Coin",
		Archetype: builder.Token,
		Functions: []builder.Function{{
			Name:       "transfer",
			Parameters: []builder.Param{{Type: "uint64_t", Name: "to"}, {Type: "uint64_t", Name: "amount"}},
			Logic:      builder.LogicTransfer,
			Public:     true,
		}},
	}
	reply := SynthesizeReply{}
	require.NoError(call(t, handler, "builder.synthesize", &SynthesizeArgs{Spec: spec}, &reply))
	assert.Equal(builder.Synthesize(spec), reply.Code)

	require.NoError(call(t, handler, "builder.synthesizeFromArchetype",
		&SynthesizeFromArchetypeArgs{Archetype: builder.Voting, Name: "Ballot"}, &reply))
	assert.Contains(reply.Code, "class Ballot")

	blocks := LogicBlocksReply{}
	require.NoError(call(t, handler, "builder.logicBlocks", &EmptyArgs{}, &blocks))
	assert.Len(blocks.Blocks, len(builder.Catalogue()))
	assert.Equal(builder.Archetypes(), blocks.Archetypes)
}

func TestTransactionJSON(t *testing.T) {
	tx := Transaction{Kind: Call, Status: Pending, Function: "f"}
	bytes, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(bytes), `"status":"pending"`)
	assert.Contains(t, string(bytes), `"kind":"call"`)
	assert.NotContains(t, string(bytes), "entityId")
}
