// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

// Archetype is one of the fixed contract shapes the builder knows how to
// emit a complete example for.
type Archetype string

const (
	Token  Archetype = "Token"
	Voting Archetype = "Voting"
	Oracle Archetype = "Oracle"
)

// Archetypes lists the supported archetypes in presentation order.
func Archetypes() []Archetype {
	return []Archetype{Token, Voting, Oracle}
}

// Valid reports whether [a] is one of the known archetypes
func (a Archetype) Valid() bool {
	switch a {
	case Token, Voting, Oracle:
		return true
	default:
		return false
	}
}

// Variable is a contract state variable declaration
type Variable struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Param is a function parameter. Parameters are emitted as constant
// references of [Type].
type Param struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Function describes one public entry point of a contract.
// [Logic] selects the body from the logic block catalogue.
// [Public] records the author's intent only; it does not change the
// emitted access section.
type Function struct {
	Name       string   `json:"name" yaml:"name"`
	Parameters []Param  `json:"parameters" yaml:"parameters"`
	Logic      LogicTag `json:"logic" yaml:"logic"`
	Public     bool     `json:"isPublic" yaml:"isPublic"`

	// label is the decoded logic text when it names no catalogue entry.
	// It is written back unchanged.
	label string
}

// LogicLabel returns the logic text as the author wrote it
func (fn Function) LogicLabel() string {
	if fn.Logic == LogicUnknown {
		return fn.label
	}
	return fn.Logic.String()
}

// ContractSpec is the structured, user authored description of a contract.
// The synthesizer only reads it.
type ContractSpec struct {
	Name        string     `json:"contractName" yaml:"contractName"`
	Archetype   Archetype  `json:"contractType" yaml:"contractType"`
	Variables   []Variable `json:"variables" yaml:"variables"`
	Functions   []Function `json:"functions" yaml:"functions"`
	Constructor string     `json:"constructorLogic" yaml:"constructorLogic"`
}
