// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDelay    = 10 * time.Millisecond
	testDeadline = 5 * time.Second
	testTick     = 5 * time.Millisecond
)

func testConfig() Config {
	config := DefaultConfig()
	config.DeployDelay = testDelay
	config.CallDelay = testDelay
	config.Seed = 1
	return config
}

func newTestVM(t *testing.T, config Config) *VM {
	vm, err := New(config, memdb.New(), nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = vm.Shutdown() })
	return vm
}

// awaitTerminal polls the ledger until [txID] leaves pending
func awaitTerminal(t *testing.T, vm *VM, txID ids.ID) Transaction {
	var tx Transaction
	require.Eventually(t, func() bool {
		got, err := vm.GetTransaction(txID)
		if err != nil {
			return false
		}
		tx = got
		return tx.Status.Terminal()
	}, testDeadline, testTick)
	return tx
}

// Assert that after initialization, the ledger starts at the genesis height
func TestGenesis(t *testing.T) {
	assert := assert.New(t)
	vm := newTestVM(t, testConfig())

	ok, err := vm.state.IsInitialized()
	assert.NoError(err)
	assert.True(ok)
	assert.EqualValues(1000, vm.CurrentBlock())

	txs, err := vm.TransactionHistory()
	assert.NoError(err)
	assert.Empty(txs)

	badges, err := vm.Badges()
	assert.NoError(err)
	assert.Empty(badges)
}

func TestInvalidConfig(t *testing.T) {
	config := testConfig()
	config.FailureRate = 2
	_, err := New(config, memdb.New(), nil, nil)
	assert.ErrorIs(t, err, errFailureRate)
}

func TestDeployContract(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	config := testConfig()
	config.DeployDelay = 50 * time.Millisecond
	vm := newTestVM(t, config)

	code := "class Foo {};"
	tx, err := vm.DeployContract(code, []interface{}{"x", 7})
	require.NoError(err)

	assert.Equal(Pending, tx.Status)
	assert.Equal(Deploy, tx.Kind)
	assert.EqualValues(1000, tx.BlockHeight)
	assert.GreaterOrEqual(tx.GasUsed, uint64(1000))
	assert.Less(tx.GasUsed, uint64(6000))
	assert.True(strings.HasPrefix(tx.Message, "Contract deployment initiated. Contract ID: "))
	assert.NotEmpty(tx.EntityID)

	// The contract entity exists right away
	entity, err := vm.GetEntity(tx.EntityID)
	require.NoError(err)
	assert.Equal(code, entity.ContractCode)
	assert.Equal(true, entity.State["deployed"])
	assert.Equal(codeHash(code).String(), entity.State["codeHash"])

	// Still pending before the delay elapsed
	got, err := vm.GetTransaction(tx.ID)
	require.NoError(err)
	assert.Equal(Pending, got.Status)

	final := awaitTerminal(t, vm, tx.ID)
	assert.Equal(Confirmed, final.Status)
	assert.EqualValues(1001, final.BlockHeight)
	assert.Equal(tx.GasUsed, final.GasUsed)
	assert.Equal("Contract deployed successfully at "+tx.EntityID, final.Message)
	assert.EqualValues(1001, vm.CurrentBlock())

	// History reports the same terminal record
	history, err := vm.TransactionHistory()
	require.NoError(err)
	require.Len(history, 1)
	assert.Equal(tx.ID, history[0].ID)
	assert.Equal(Confirmed, history[0].Status)
	assert.Equal(tx.BlockHeight+1, history[0].BlockHeight)
	assert.Equal(final, history[0])
}

func TestSendTransactionConfirms(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	config := testConfig()
	config.FailureRate = 0
	vm := newTestVM(t, config)

	tx, err := vm.SendTransaction("code", "transfer", []interface{}{"QUBIC_ADDR_1", 100})
	require.NoError(err)
	assert.Equal(Pending, tx.Status)
	assert.Equal(Call, tx.Kind)
	assert.Equal("transfer", tx.Function)
	assert.Equal("Transaction sent to Qubic network. Function: transfer", tx.Message)
	assert.GreaterOrEqual(tx.GasUsed, uint64(100))
	assert.Less(tx.GasUsed, uint64(1100))

	final := awaitTerminal(t, vm, tx.ID)
	assert.Equal(Confirmed, final.Status)
	assert.Equal("Transaction confirmed in block 1001", final.Message)
	assert.EqualValues(1001, final.BlockHeight)
}

func TestSendTransactionFails(t *testing.T) {
	assert := assert.New(t)
	config := testConfig()
	config.FailureRate = 1
	vm := newTestVM(t, config)

	tx, err := vm.SendTransaction("code", "castVote", nil)
	require.NoError(t, err)

	final := awaitTerminal(t, vm, tx.ID)
	assert.Equal(Failed, final.Status)
	assert.Equal("Transaction failed during execution", final.Message)
	// Failures still land in a block
	assert.EqualValues(1001, vm.CurrentBlock())
}

func TestDeployAlwaysConfirms(t *testing.T) {
	config := testConfig()
	config.FailureRate = 1
	vm := newTestVM(t, config)

	tx, err := vm.DeployContract("code", nil)
	require.NoError(t, err)
	assert.Equal(t, Confirmed, awaitTerminal(t, vm, tx.ID).Status)
}

func TestGetUnknownTransaction(t *testing.T) {
	vm := newTestVM(t, testConfig())
	_, err := vm.GetTransaction(ids.GenerateTestID())
	assert.ErrorIs(t, err, errUnknownTx)
}

func TestConcurrentIssuance(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	vm := newTestVM(t, testConfig())

	const n = 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		txs []Transaction
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var (
				tx  Transaction
				err error
			)
			if i%2 == 0 {
				tx, err = vm.DeployContract("code", nil)
			} else {
				tx, err = vm.SendTransaction("code", "f", nil)
			}
			assert.NoError(err)

			mu.Lock()
			txs = append(txs, tx)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	seen := ids.Set{}
	for _, tx := range txs {
		assert.False(seen.Contains(tx.ID), "duplicate txID %s", tx.ID)
		seen.Add(tx.ID)
	}

	// Every terminal transition lands in its own block
	heights := map[uint64]struct{}{}
	for _, tx := range txs {
		final := awaitTerminal(t, vm, tx.ID)
		heights[final.BlockHeight] = struct{}{}
	}
	assert.Len(heights, n)
	assert.EqualValues(1000+n, vm.CurrentBlock())

	history, err := vm.TransactionHistory()
	require.NoError(err)
	assert.Len(history, n)
}

func TestHeightMonotonic(t *testing.T) {
	vm := newTestVM(t, testConfig())

	last := vm.CurrentBlock()
	for i := 0; i < 5; i++ {
		tx, err := vm.SendTransaction("code", "f", nil)
		require.NoError(t, err)
		final := awaitTerminal(t, vm, tx.ID)

		height := vm.CurrentBlock()
		assert.Greater(t, height, last)
		assert.LessOrEqual(t, final.BlockHeight, height)
		last = height
	}
}

func TestHistoryIsSnapshot(t *testing.T) {
	assert := assert.New(t)
	config := testConfig()
	config.CallDelay = time.Hour
	vm := newTestVM(t, config)

	first, err := vm.SendTransaction("code", "a", nil)
	require.NoError(t, err)
	second, err := vm.SendTransaction("code", "b", nil)
	require.NoError(t, err)

	history, err := vm.TransactionHistory()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(first.ID, history[0].ID)
	assert.Equal(second.ID, history[1].ID)

	history[0].Status = Failed
	history[0].Message = "tampered"

	got, err := vm.GetTransaction(first.ID)
	require.NoError(t, err)
	assert.Equal(Pending, got.Status)
	assert.Equal(first.Message, got.Message)
}

func TestShutdownLeavesPending(t *testing.T) {
	require := require.New(t)
	config := testConfig()
	config.CallDelay = 50 * time.Millisecond
	db := memdb.New()
	vm, err := New(config, db, nil, nil)
	require.NoError(err)

	tx, err := vm.SendTransaction("code", "f", nil)
	require.NoError(err)
	require.NoError(vm.Shutdown())

	// The timer fires after shutdown without resolving anything
	time.Sleep(100 * time.Millisecond)

	resumed, err := New(config, db, nil, nil)
	require.NoError(err)
	defer func() { _ = resumed.Shutdown() }()

	got, err := resumed.GetTransaction(tx.ID)
	require.NoError(err)
	assert.Equal(t, Pending, got.Status)
	assert.EqualValues(t, 1000, resumed.CurrentBlock())
}

func TestGetEntity(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	vm := newTestVM(t, testConfig())

	entity, err := vm.GetEntity("QUBIC_ADDR_1")
	require.NoError(err)
	assert.Equal("QUBIC_ADDR_1", entity.ID)
	assert.Less(entity.Balance, uint64(1_000_000))
	assert.Equal(true, entity.State["initialized"])
	assert.Equal("1.0.0", entity.State["version"])

	again, err := vm.GetEntity("QUBIC_ADDR_1")
	require.NoError(err)
	assert.Equal(entity, again)
}

func TestResume(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	db := memdb.New()
	config := testConfig()

	vm, err := New(config, db, nil, nil)
	require.NoError(err)
	tx, err := vm.DeployContract("code", nil)
	require.NoError(err)
	awaitTerminal(t, vm, tx.ID)
	badge, err := vm.MintSBT("QUBIC_ADDR_1", "First Contract", nil)
	require.NoError(err)
	require.NoError(vm.Shutdown())

	config.GenesisHeight = 5
	resumed, err := New(config, db, nil, nil)
	require.NoError(err)
	defer func() { _ = resumed.Shutdown() }()

	assert.EqualValues(1001, resumed.CurrentBlock())
	history, err := resumed.TransactionHistory()
	require.NoError(err)
	require.Len(history, 1)
	assert.Equal(tx.ID, history[0].ID)

	badges, err := resumed.Badges()
	require.NoError(err)
	require.Len(badges, 1)
	assert.Equal(badge.TokenID, badges[0].TokenID)
}
