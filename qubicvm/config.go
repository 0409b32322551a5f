// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	defaultGenesisHeight    = 1000
	defaultDeployDelay      = 3 * time.Second
	defaultCallDelay        = 2 * time.Second
	defaultFailureRate      = 0.1
	defaultMinDeployGas     = 1000
	defaultMaxDeployGas     = 6000
	defaultMinCallGas       = 100
	defaultMaxCallGas       = 1100
	defaultMaxEntityBalance = 1_000_000
	defaultResolverQueue    = 1024
)

var (
	errNegativeDelay     = errors.New("confirmation delays must not be negative")
	errFailureRate       = errors.New("failure rate must be within [0, 1]")
	errInvalidGasRange   = errors.New("gas range must satisfy 0 < min < max and max - min <= MaxInt64")
	errMaxEntityBalance  = errors.New("max entity balance must be within [1, MaxInt64]")
	errResolverQueueSize = errors.New("resolver queue size must be positive")
)

// Config tunes the simulated ledger.
// Gas is sampled uniformly from [Min, Max).
type Config struct {
	GenesisHeight uint64 `json:"genesisHeight"`

	// Time between issuance and the terminal transition
	DeployDelay time.Duration `json:"deployDelay"`
	CallDelay   time.Duration `json:"callDelay"`

	// Probability that a function call ends up failed.
	// Deployments always confirm.
	FailureRate float64 `json:"failureRate"`

	MinDeployGas uint64 `json:"minDeployGas"`
	MaxDeployGas uint64 `json:"maxDeployGas"`
	MinCallGas   uint64 `json:"minCallGas"`
	MaxCallGas   uint64 `json:"maxCallGas"`

	// Lazily created accounts get a balance in [0, MaxEntityBalance)
	MaxEntityBalance uint64 `json:"maxEntityBalance"`

	// Seed for gas, balance and outcome sampling. Zero seeds from the clock.
	Seed int64 `json:"seed"`

	ResolverQueueSize int `json:"resolverQueueSize"`
}

// DefaultConfig returns the configuration the ledger ships with
func DefaultConfig() Config {
	return Config{
		GenesisHeight:     defaultGenesisHeight,
		DeployDelay:       defaultDeployDelay,
		CallDelay:         defaultCallDelay,
		FailureRate:       defaultFailureRate,
		MinDeployGas:      defaultMinDeployGas,
		MaxDeployGas:      defaultMaxDeployGas,
		MinCallGas:        defaultMinCallGas,
		MaxCallGas:        defaultMaxCallGas,
		MaxEntityBalance:  defaultMaxEntityBalance,
		ResolverQueueSize: defaultResolverQueue,
	}
}

// Verify returns an error if the config can't drive a ledger
func (c Config) Verify() error {
	switch {
	case c.DeployDelay < 0 || c.CallDelay < 0:
		return errNegativeDelay
	case c.FailureRate < 0 || c.FailureRate > 1:
		return fmt.Errorf("%w: %v", errFailureRate, c.FailureRate)
	case !validGasRange(c.MinDeployGas, c.MaxDeployGas):
		return fmt.Errorf("%w: deploy [%d, %d)", errInvalidGasRange, c.MinDeployGas, c.MaxDeployGas)
	case !validGasRange(c.MinCallGas, c.MaxCallGas):
		return fmt.Errorf("%w: call [%d, %d)", errInvalidGasRange, c.MinCallGas, c.MaxCallGas)
	case c.MaxEntityBalance == 0 || c.MaxEntityBalance > math.MaxInt64:
		return fmt.Errorf("%w: %d", errMaxEntityBalance, c.MaxEntityBalance)
	case c.ResolverQueueSize <= 0:
		return errResolverQueueSize
	default:
		return nil
	}
}

// validGasRange reports whether [min, max) is non-empty and narrow enough to
// sample with Int63n
func validGasRange(min, max uint64) bool {
	return min > 0 && min < max && max-min <= math.MaxInt64
}
