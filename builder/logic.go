// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"fmt"
	"strings"
)

// LogicTag identifies a pre-written function body in the logic block
// catalogue. Tags travel on the wire as their catalogue label.
type LogicTag uint8

const (
	LogicUnknown LogicTag = iota
	LogicTransfer
	LogicBalanceOf
	LogicMint
	LogicBurn
	LogicCreateProposal
	LogicCastVote
	LogicUpdateOracle
	LogicValidateInputs
	LogicEmitEvent
	// LogicCustom is offered to authors but has no catalogue body.
	LogicCustom
)

var logicLabels = [...]string{
	LogicUnknown:        "",
	LogicTransfer:       "Transfer tokens between accounts",
	LogicBalanceOf:      "Check balance of account",
	LogicMint:           "Mint new tokens",
	LogicBurn:           "Burn existing tokens",
	LogicCreateProposal: "Create new proposal",
	LogicCastVote:       "Cast vote on proposal",
	LogicUpdateOracle:   "Update oracle data",
	LogicValidateInputs: "Validate input parameters",
	LogicEmitEvent:      "Emit event notification",
	LogicCustom:         "Custom logic",
}

// ParseLogicTag maps a catalogue label to its tag. Labels are matched
// exactly; anything else is LogicUnknown.
func ParseLogicTag(label string) LogicTag {
	for tag, l := range logicLabels {
		if l != "" && l == label {
			return LogicTag(tag)
		}
	}
	return LogicUnknown
}

func (t LogicTag) String() string {
	if int(t) < len(logicLabels) {
		return logicLabels[t]
	}
	return fmt.Sprintf("LogicTag(%d)", uint8(t))
}

func (t LogicTag) MarshalText() ([]byte, error) {
	if int(t) >= len(logicLabels) {
		return nil, fmt.Errorf("unknown logic tag %d", uint8(t))
	}
	return []byte(logicLabels[t]), nil
}

func (t *LogicTag) UnmarshalText(text []byte) error {
	*t = ParseLogicTag(strings.TrimSpace(string(text)))
	return nil
}

// ReturnType is the C++ type a generated function returns
type ReturnType string

const (
	ReturnUint64 ReturnType = "uint64_t"
	ReturnUint32 ReturnType = "uint32_t"
	ReturnBool   ReturnType = "bool"
)

// LogicBlock is an immutable catalogue entry
type LogicBlock struct {
	Tag     LogicTag
	Returns ReturnType

	body func(fn Function) string
}

// Body renders the block for [fn]. Lines are indented for a method body.
func (b LogicBlock) Body(fn Function) string {
	return b.body(fn)
}

var catalogue = map[LogicTag]LogicBlock{
	LogicTransfer: {
		Tag:     LogicTransfer,
		Returns: ReturnBool,
		body: fixed(`        PublicKey from = getOrigin();
        if (balances[from] < amount) {
            return false;
        }
        balances[from] -= amount;
        balances[to] += amount;
        return true;`),
	},
	LogicBalanceOf: {
		Tag:     LogicBalanceOf,
		Returns: ReturnUint64,
		body: fixed(`        auto it = balances.find(account);
        return it != balances.end() ? it->second : 0;`),
	},
	LogicMint: {
		Tag:     LogicMint,
		Returns: ReturnBool,
		body: fixed(`        balances[to] += amount;
        totalSupply += amount;
        return true;`),
	},
	LogicBurn: {
		Tag:     LogicBurn,
		Returns: ReturnBool,
		body: fixed(`        PublicKey from = getOrigin();
        if (balances[from] < amount) {
            return false;
        }
        balances[from] -= amount;
        totalSupply -= amount;
        return true;`),
	},
	LogicCreateProposal: {
		Tag:     LogicCreateProposal,
		Returns: ReturnUint32,
		body: fixed(`        Proposal proposal;
        proposal.title = title;
        proposal.description = description;
        proposal.deadline = getCurrentTick() + duration;
        proposal.yesVotes = 0;
        proposal.noVotes = 0;
        proposal.active = true;
        proposal.creator = getOrigin();
        proposals.push_back(proposal);
        return proposals.size() - 1;`),
	},
	LogicCastVote: {
		Tag:     LogicCastVote,
		Returns: ReturnBool,
		body: fixed(`        if (proposalId >= proposals.size()) {
            return false;
        }
        Proposal& proposal = proposals[proposalId];
        PublicKey voter = getOrigin();
        if (!proposal.active || hasVoted[proposalId][voter]) {
            return false;
        }
        hasVoted[proposalId][voter] = true;
        if (support) {
            proposal.yesVotes++;
        } else {
            proposal.noVotes++;
        }
        return true;`),
	},
	LogicUpdateOracle: {
		Tag:     LogicUpdateOracle,
		Returns: ReturnBool,
		body: fixed(`        if (getOrigin() != oracleOperator) {
            return false;
        }
        PriceData data;
        data.price = price;
        data.timestamp = getCurrentTick();
        data.valid = true;
        prices[symbol] = data;
        return true;`),
	},
	LogicValidateInputs: {
		Tag:     LogicValidateInputs,
		Returns: ReturnBool,
		body:    validateInputsBody,
	},
	LogicEmitEvent: {
		Tag:     LogicEmitEvent,
		Returns: ReturnBool,
		body:    emitEventBody,
	},
}

// Catalogue returns the tags that have a catalogue body, in the order
// they are offered to authors.
func Catalogue() []LogicTag {
	return []LogicTag{
		LogicTransfer,
		LogicBalanceOf,
		LogicMint,
		LogicBurn,
		LogicCreateProposal,
		LogicCastVote,
		LogicUpdateOracle,
		LogicValidateInputs,
		LogicEmitEvent,
	}
}

// Lookup returns the catalogue entry for [tag]
func Lookup(tag LogicTag) (LogicBlock, bool) {
	b, ok := catalogue[tag]
	return b, ok
}

// ReturnTypeOf resolves the return type for [fn]. Balance checks return
// uint64_t, proposal creation returns the new proposal index as uint32_t,
// everything else (stubs included) returns bool.
func ReturnTypeOf(fn Function) ReturnType {
	if b, ok := catalogue[fn.Logic]; ok {
		return b.Returns
	}
	return ReturnBool
}

func fixed(body string) func(Function) string {
	return func(Function) string { return body }
}

func validateInputsBody(fn Function) string {
	if len(fn.Parameters) == 0 {
		return "        return true;"
	}
	checks := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		checks[i] = p.Name + " == 0"
	}
	return "        if (" + strings.Join(checks, " || ") + ") {\n" +
		"            return false;\n" +
		"        }\n" +
		"        return true;"
}

func emitEventBody(fn Function) string {
	args := []string{fmt.Sprintf("%q", fn.Name)}
	for _, p := range fn.Parameters {
		args = append(args, p.Name)
	}
	return "        // Emit event (implementation depends on Qubic event system)\n" +
		"        emit(" + strings.Join(args, ", ") + ");\n" +
		"        return true;"
}

// stubBody is emitted for custom and unrecognised tags
func stubBody(fn Function) string {
	return "        // Custom logic implementation\n" +
		"        // TODO: Implement " + fn.Name + " logic\n" +
		"        return true;"
}
