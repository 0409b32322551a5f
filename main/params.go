// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	log "github.com/inconshreveable/log15"

	"github.com/sambitsargam/QubiLearn/builder"
	"github.com/sambitsargam/QubiLearn/qubicvm"
)

const (
	envPrefix = "QUBIVM"

	versionKey       = "version"
	configFileKey    = "config-file"
	httpHostKey      = "http-host"
	httpPortKey      = "http-port"
	logLevelKey      = "log-level"
	deployDelayKey   = "deploy-delay"
	callDelayKey     = "call-delay"
	failureRateKey   = "failure-rate"
	genesisHeightKey = "genesis-height"
	seedKey          = "seed"
	libraryDirKey    = "library-dir"
	specKey          = "spec"
	archetypeKey     = "archetype"
	nameKey          = "name"
)

func buildFlagSet() *flag.FlagSet {
	defaults := qubicvm.DefaultConfig()
	fs := flag.NewFlagSet(qubicvm.Name, flag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints version and quit")
	fs.String(configFileKey, "", "Path to a config file. Flags and environment variables override it")
	fs.String(httpHostKey, "127.0.0.1", "Address of the HTTP server")
	fs.Uint(httpPortKey, 9650, "Port of the HTTP server")
	fs.String(logLevelKey, "info", "Log level: crit, error, warn, info or debug")
	fs.Duration(deployDelayKey, defaults.DeployDelay, "Time until a deployment confirms")
	fs.Duration(callDelayKey, defaults.CallDelay, "Time until a function call confirms or fails")
	fs.Float64(failureRateKey, defaults.FailureRate, "Probability that a function call fails")
	fs.Uint64(genesisHeightKey, defaults.GenesisHeight, "Block height of a fresh ledger")
	fs.Int64(seedKey, 0, "Seed for simulated outcomes. 0 seeds from the clock")
	fs.String(libraryDirKey, "", "Directory of the saved contracts library. Empty keeps it in memory")
	fs.String(specKey, "", "Print the code synthesized from this YAML or JSON spec file and quit")
	fs.String(archetypeKey, "", "Print the example contract for this archetype (Token, Voting, Oracle) and quit")
	fs.String(nameKey, "", "Contract name used with --archetype")

	return fs
}

// getViper returns the viper environment for the binary
func getViper(args []string) (*viper.Viper, error) {
	v := viper.New()

	fs := pflag.NewFlagSet(qubicvm.Name, pflag.ContinueOnError)
	fs.AddGoFlagSet(buildFlagSet())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(configFileKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config file %s: %w", path, err)
		}
	}
	return v, nil
}

// Config is the binary's configuration
type Config struct {
	Version bool

	HTTPHost string
	HTTPPort uint

	LogLevel log.Lvl

	VM qubicvm.Config

	LibraryDir string

	// One-shot synthesis
	SpecFile  string
	Archetype builder.Archetype
	Name      string
}

// OneShot reports whether the binary prints code instead of serving
func (c Config) OneShot() bool {
	return c.SpecFile != "" || c.Archetype != ""
}

func getConfig(v *viper.Viper) (Config, error) {
	logLevel, err := log.LvlFromString(v.GetString(logLevelKey))
	if err != nil {
		return Config{}, err
	}

	vmConfig := qubicvm.DefaultConfig()
	vmConfig.DeployDelay = v.GetDuration(deployDelayKey)
	vmConfig.CallDelay = v.GetDuration(callDelayKey)
	vmConfig.FailureRate = v.GetFloat64(failureRateKey)
	vmConfig.GenesisHeight = v.GetUint64(genesisHeightKey)
	vmConfig.Seed = v.GetInt64(seedKey)
	if err := vmConfig.Verify(); err != nil {
		return Config{}, err
	}

	return Config{
		Version:    v.GetBool(versionKey),
		HTTPHost:   v.GetString(httpHostKey),
		HTTPPort:   v.GetUint(httpPortKey),
		LogLevel:   logLevel,
		VM:         vmConfig,
		LibraryDir: v.GetString(libraryDirKey),
		SpecFile:   v.GetString(specKey),
		Archetype:  builder.Archetype(v.GetString(archetypeKey)),
		Name:       v.GetString(nameKey),
	}, nil
}

// Addr is the address the HTTP server listens on
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// loadConfig parses [args] on top of the environment
func loadConfig(args []string) (Config, error) {
	v, err := getViper(args)
	if err != nil {
		return Config{}, err
	}
	return getConfig(v)
}

const shutdownTimeout = 5 * time.Second
