// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseSpec decodes a contract spec from YAML. JSON input is accepted too,
// using the same field names the builder form persists.
func ParseSpec(data []byte) (ContractSpec, error) {
	var spec ContractSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ContractSpec{}, fmt.Errorf("couldn't parse contract spec: %w", err)
	}
	return spec, nil
}

// LoadSpec reads and decodes the spec file at [path]
func LoadSpec(path string) (ContractSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ContractSpec{}, err
	}
	return ParseSpec(data)
}
