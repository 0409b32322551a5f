// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"net/http"

	"github.com/gorilla/rpc/v2"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

const (
	// StaticName is the service name of the synthesis API
	StaticName = "builder"
	// ServiceName is the service name of the ledger API
	ServiceName = "qubic"
)

// NewHandler returns a JSON-RPC handler serving [service] under [name]
func NewHandler(name string, service interface{}) (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(service, name)
}

// CreateHandlers returns a map where:
// Keys: The path extension for this VM's API (empty in this case)
// Values: The handler for the API
func (vm *VM) CreateHandlers() (map[string]http.Handler, error) {
	handler, err := NewHandler(ServiceName, &Service{vm})
	return map[string]http.Handler{
		"": handler,
	}, err
}

// CreateStaticHandlers returns a map where:
// Keys: The path extension for the synthesis API
// Values: The handler for that static API
func CreateStaticHandlers() (map[string]http.Handler, error) {
	handler, err := NewHandler(StaticName, CreateStaticService())
	return map[string]http.Handler{
		"": handler,
	}, err
}
