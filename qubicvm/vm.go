// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
)

const (
	Name    = "qubicvm"
	Version = "v1.0.0"

	// Chain name recorded in badge metadata
	chainName     = "Qubic"
	entityVersion = "1.0.0"
)

var errUnknownTx = errors.New("unknown transaction")

// VM is the simulated Qubic ledger.
// It holds the transaction history, the entity table and a block counter.
// Deployments and calls return immediately with a pending transaction;
// a single resolver goroutine later moves each one to a terminal status
// and advances the block height. Callers poll for the outcome.
type VM struct {
	config  Config
	log     log.Logger
	metrics *metrics
	clock   mockable.Clock

	// lock guards everything below, and serializes issuance against
	// resolution
	lock   sync.Mutex
	state  State
	rng    *rand.Rand
	height uint64

	resolver *resolver
}

// New builds a ledger on top of [db] and starts its resolver.
// A nil [logger] discards logs and a nil [registerer] uses a private registry.
func New(config Config, db database.Database, logger log.Logger, registerer prometheus.Registerer) (*VM, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New()
		logger.SetHandler(log.DiscardHandler())
	}
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}

	m, err := newMetrics(Name, registerer)
	if err != nil {
		return nil, fmt.Errorf("couldn't register metrics: %w", err)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	vm := &VM{
		config:  config,
		log:     logger.New("component", Name),
		metrics: m,
		rng:     rand.New(rand.NewSource(seed)),
	}
	vm.log.Info("Initializing Qubic VM", "Version", Version)

	vm.state, err = NewState(db)
	if err != nil {
		return nil, fmt.Errorf("couldn't load state: %w", err)
	}
	if err := vm.initGenesis(); err != nil {
		return nil, err
	}
	vm.metrics.blockHeight.Set(float64(vm.height))

	vm.resolver = newResolver(config.ResolverQueueSize, vm.resolve)
	vm.resolver.start()
	return vm, nil
}

// initGenesis sets the starting height when [db] is empty, otherwise it
// resumes from the stored height
func (vm *VM) initGenesis() error {
	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}
	if initialized {
		vm.height, err = vm.state.GetHeight()
		return err
	}

	if err := vm.state.SetHeight(vm.config.GenesisHeight); err != nil {
		return fmt.Errorf("error while setting genesis height: %w", err)
	}
	if err := vm.state.SetInitialized(); err != nil {
		return fmt.Errorf("error while setting db to initialized: %w", err)
	}
	if err := vm.state.Commit(); err != nil {
		return fmt.Errorf("error while committing db: %w", err)
	}
	vm.height = vm.config.GenesisHeight
	return nil
}

// DeployContract records [code] as a new contract entity and issues a
// pending deployment. Deployments always confirm after DeployDelay.
func (vm *VM) DeployContract(code string, constructorArgs []interface{}) (Transaction, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if constructorArgs == nil {
		constructorArgs = []interface{}{}
	}
	now := vm.clock.Time()
	contractID := newID(contractIDKind, now)

	entity := Entity{
		ID:           contractID.String(),
		ContractCode: code,
		State: map[string]interface{}{
			"deployed":        true,
			"deployedAt":      now.UnixMilli(),
			"constructorArgs": constructorArgs,
			"codeHash":        codeHash(code).String(),
		},
	}
	tx := Transaction{
		ID:          newID(txIDKind, now),
		Kind:        Deploy,
		Status:      Pending,
		BlockHeight: vm.height,
		GasUsed:     vm.sampleGas(vm.config.MinDeployGas, vm.config.MaxDeployGas),
		Message:     fmt.Sprintf("Contract deployment initiated. Contract ID: %s", contractID),
		EntityID:    entity.ID,
		IssuedAt:    now.UnixMilli(),
	}

	if err := vm.issue(tx, &entity); err != nil {
		return Transaction{}, err
	}
	vm.metrics.entitiesCreated.Inc()
	vm.resolver.schedule(tx.ID, vm.config.DeployDelay)

	vm.log.Debug("contract deployment issued",
		"txID", tx.ID,
		"contractID", contractID,
		"codeSize", len(code),
		"args", len(constructorArgs),
	)
	return tx, nil
}

// SendTransaction issues a pending call of [function] on [code]. After
// CallDelay the call confirms, or fails with probability FailureRate.
func (vm *VM) SendTransaction(code string, function string, params []interface{}) (Transaction, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	now := vm.clock.Time()
	tx := Transaction{
		ID:          newID(txIDKind, now),
		Kind:        Call,
		Status:      Pending,
		BlockHeight: vm.height,
		GasUsed:     vm.sampleGas(vm.config.MinCallGas, vm.config.MaxCallGas),
		Message:     fmt.Sprintf("Transaction sent to Qubic network. Function: %s", function),
		Function:    function,
		IssuedAt:    now.UnixMilli(),
	}

	if err := vm.issue(tx, nil); err != nil {
		return Transaction{}, err
	}
	vm.resolver.schedule(tx.ID, vm.config.CallDelay)

	vm.log.Debug("transaction issued",
		"txID", tx.ID,
		"function", function,
		"params", len(params),
		"gasUsed", tx.GasUsed,
		"height", tx.BlockHeight,
		"codeHash", codeHash(code),
	)
	return tx, nil
}

// issue persists a new pending transaction, and [entity] when set.
// Assumes [vm.lock] is held.
func (vm *VM) issue(tx Transaction, entity *Entity) error {
	if entity != nil {
		if err := vm.state.PutEntity(*entity); err != nil {
			return vm.abort(fmt.Errorf("couldn't put entity: %w", err))
		}
	}
	if err := vm.state.PutTx(tx); err != nil {
		return vm.abort(fmt.Errorf("couldn't put tx: %w", err))
	}
	if err := vm.state.IndexTx(tx.ID); err != nil {
		return vm.abort(fmt.Errorf("couldn't index tx: %w", err))
	}
	if err := vm.state.Commit(); err != nil {
		return vm.abort(fmt.Errorf("couldn't commit tx: %w", err))
	}
	vm.metrics.txsIssued.Inc()
	return nil
}

// resolve moves a pending transaction to its terminal status and advances
// the block height. It only runs on the resolver goroutine.
func (vm *VM) resolve(txID ids.ID) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	tx, err := vm.state.GetTx(txID)
	if err != nil {
		vm.log.Error("couldn't load tx to resolve", "txID", txID, "error", err)
		return
	}
	if tx.Status.Terminal() {
		return
	}

	height := vm.height + 1
	tx.BlockHeight = height
	switch {
	case tx.Kind == Deploy:
		tx.Status = Confirmed
		tx.Message = fmt.Sprintf("Contract deployed successfully at %s", tx.EntityID)
	case vm.rng.Float64() < vm.config.FailureRate:
		tx.Status = Failed
		tx.Message = "Transaction failed during execution"
	default:
		tx.Status = Confirmed
		tx.Message = fmt.Sprintf("Transaction confirmed in block %d", height)
	}

	if err := vm.state.PutTx(tx); err != nil {
		vm.log.Error("couldn't put resolved tx", "txID", txID, "error", vm.abort(err))
		return
	}
	if err := vm.state.SetHeight(height); err != nil {
		vm.log.Error("couldn't advance height", "txID", txID, "error", vm.abort(err))
		return
	}
	if err := vm.state.Commit(); err != nil {
		vm.log.Error("couldn't commit resolution", "txID", txID, "error", vm.abort(err))
		return
	}
	vm.height = height

	vm.metrics.blockHeight.Set(float64(height))
	if tx.Status == Confirmed {
		vm.metrics.txsConfirmed.Inc()
	} else {
		vm.metrics.txsFailed.Inc()
	}
	vm.log.Info("transaction resolved",
		"txID", txID,
		"kind", tx.Kind,
		"status", tx.Status,
		"height", height,
	)
}

// GetTransaction returns the current record of [txID]
func (vm *VM) GetTransaction(txID ids.ID) (Transaction, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	tx, err := vm.state.GetTx(txID)
	if errors.Is(err, database.ErrNotFound) {
		return Transaction{}, fmt.Errorf("%w: %s", errUnknownTx, txID)
	}
	return tx, err
}

// TransactionHistory returns a snapshot of every transaction in issuance
// order
func (vm *VM) TransactionHistory() ([]Transaction, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.state.Txs()
}

// CurrentBlock returns the block height
func (vm *VM) CurrentBlock() uint64 {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.height
}

// GetEntity returns the entity stored under [id]. Any address is a valid
// account: an unseen [id] gets a new entity with a random balance, which
// later lookups return unchanged.
func (vm *VM) GetEntity(id string) (Entity, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	entity, err := vm.state.GetEntity(id)
	if err == nil {
		return entity, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return Entity{}, err
	}

	entity = Entity{
		ID:      id,
		Balance: uint64(vm.rng.Int63n(int64(vm.config.MaxEntityBalance))),
		State: map[string]interface{}{
			"initialized": true,
			"lastUpdated": vm.clock.Time().UnixMilli(),
			"version":     entityVersion,
		},
	}
	if err := vm.state.PutEntity(entity); err != nil {
		return Entity{}, vm.abort(err)
	}
	if err := vm.state.Commit(); err != nil {
		return Entity{}, vm.abort(err)
	}
	vm.metrics.entitiesCreated.Inc()
	vm.log.Debug("entity created", "id", id, "balance", entity.Balance)

	// Read back so the first and later lookups see identical values
	return vm.state.GetEntity(id)
}

// MintSBT mints a soulbound badge to [recipient]. The stored metadata is a
// copy of [metadata] with badgeType, mintedAt, blockchain and soulbound set.
func (vm *VM) MintSBT(recipient string, badgeType string, metadata map[string]interface{}) (Badge, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	now := vm.clock.Time()
	md := make(map[string]interface{}, len(metadata)+4)
	for k, v := range metadata {
		md[k] = v
	}
	md["badgeType"] = badgeType
	md["mintedAt"] = now.UnixMilli()
	md["blockchain"] = chainName
	md["soulbound"] = true

	badge := Badge{
		TokenID:   newID(tokenIDKind, now),
		Recipient: recipient,
		Metadata:  md,
		Status:    Minted,
	}
	index, err := vm.state.AddBadge(badge)
	if err != nil {
		return Badge{}, vm.abort(fmt.Errorf("couldn't add badge: %w", err))
	}
	if err := vm.state.Commit(); err != nil {
		return Badge{}, vm.abort(fmt.Errorf("couldn't commit badge: %w", err))
	}
	vm.metrics.badgesMinted.Inc()
	vm.log.Info("badge minted", "tokenID", badge.TokenID, "recipient", recipient, "badgeType", badgeType)

	return vm.state.GetBadge(index)
}

// Badges returns every minted badge in mint order
func (vm *VM) Badges() ([]Badge, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.state.Badges()
}

// Shutdown stops the resolver and closes the state. Transactions that are
// still pending stay pending.
func (vm *VM) Shutdown() error {
	vm.resolver.stop()

	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.state.Close()
}

// sampleGas draws from [min, max). Assumes [vm.lock] is held.
func (vm *VM) sampleGas(min, max uint64) uint64 {
	return min + uint64(vm.rng.Int63n(int64(max-min)))
}

// abort drops uncommitted writes and returns [err]
func (vm *VM) abort(err error) error {
	if abortErr := vm.state.Abort(); abortErr != nil {
		vm.log.Error("couldn't abort state", "error", abortErr)
	}
	return err
}
