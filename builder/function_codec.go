// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	_ json.Marshaler   = Function{}
	_ json.Unmarshaler = (*Function)(nil)
	_ yaml.Marshaler   = Function{}
	_ yaml.Unmarshaler = (*Function)(nil)
)

// functionFields is the wire shape of a Function. Logic stays a plain
// string so labels outside the catalogue survive a round trip.
type functionFields struct {
	Name       string  `json:"name" yaml:"name"`
	Parameters []Param `json:"parameters" yaml:"parameters,omitempty"`
	Logic      string  `json:"logic" yaml:"logic"`
	Public     bool    `json:"isPublic" yaml:"isPublic"`
}

func (fn Function) fields() (functionFields, error) {
	label := fn.label
	if fn.Logic != LogicUnknown {
		text, err := fn.Logic.MarshalText()
		if err != nil {
			return functionFields{}, err
		}
		label = string(text)
	}
	return functionFields{
		Name:       fn.Name,
		Parameters: fn.Parameters,
		Logic:      label,
		Public:     fn.Public,
	}, nil
}

func (fn *Function) setFields(f functionFields) {
	*fn = Function{
		Name:       f.Name,
		Parameters: f.Parameters,
		Logic:      ParseLogicTag(strings.TrimSpace(f.Logic)),
		Public:     f.Public,
	}
	if fn.Logic == LogicUnknown {
		fn.label = f.Logic
	}
}

func (fn Function) MarshalJSON() ([]byte, error) {
	f, err := fn.fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(f)
}

func (fn *Function) UnmarshalJSON(b []byte) error {
	f := functionFields{}
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	fn.setFields(f)
	return nil
}

func (fn Function) MarshalYAML() (interface{}, error) {
	return fn.fields()
}

func (fn *Function) UnmarshalYAML(value *yaml.Node) error {
	f := functionFields{}
	if err := value.Decode(&f); err != nil {
		return err
	}
	fn.setFields(f)
	return nil
}
