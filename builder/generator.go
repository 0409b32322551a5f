// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package builder

import (
	"strings"
)

const (
	defaultContractName = "MyContract"
	defaultExportPrefix = "CONTRACT"

	preamble = `#include <qpi.h>
#include <map>
#include <vector>
#include <string>

using namespace std;`

	proposalRecord = `struct Proposal {
    string title;
    string description;
    uint64_t deadline;
    uint64_t yesVotes;
    uint64_t noVotes;
    bool active;
    PublicKey creator;
};`

	priceDataRecord = `struct PriceData {
    uint64_t price;
    uint64_t timestamp;
    bool valid;
};`
)

// Synthesize renders [spec] as Qubic C++ source.
// It never fails: functions whose logic tag has no catalogue body get a
// marked stub. The output depends only on [spec].
func Synthesize(spec ContractSpec) string {
	name := spec.Name
	if name == "" {
		name = defaultContractName
	}
	exportPrefix := strings.ToUpper(spec.Name)
	if exportPrefix == "" {
		exportPrefix = defaultExportPrefix
	}

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n")

	if record := archetypeRecord(spec.Archetype); record != "" {
		b.WriteString(record)
		b.WriteString("\n\n")
	}

	b.WriteString("class " + name + " {\n")

	b.WriteString("private:\n")
	for _, v := range spec.Variables {
		b.WriteString("    " + v.Type + " " + v.Name + ";\n")
	}
	b.WriteString("\n")

	b.WriteString("public:\n")
	b.WriteString("    " + name + "() {\n")
	if spec.Constructor != "" {
		b.WriteString("        " + spec.Constructor + "\n")
	}
	b.WriteString("    }\n")

	for _, fn := range spec.Functions {
		b.WriteString("\n")
		writeFunction(&b, fn)
	}

	b.WriteString("};\n\n")
	b.WriteString("// Export the contract for Qubic runtime\n")
	b.WriteString(exportPrefix + "_EXPORT(" + name + ");\n")
	return b.String()
}

// Signature returns the C++ signature emitted for [fn], without the body
func Signature(fn Function) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = "const " + p.Type + "& " + p.Name
	}
	return string(ReturnTypeOf(fn)) + " " + fn.Name + "(" + strings.Join(params, ", ") + ")"
}

func writeFunction(b *strings.Builder, fn Function) {
	body := stubBody(fn)
	if block, ok := Lookup(fn.Logic); ok {
		body = block.Body(fn)
	}

	b.WriteString("    " + Signature(fn) + " {\n")
	b.WriteString(body)
	b.WriteString("\n    }\n")
}

func archetypeRecord(a Archetype) string {
	switch a {
	case Voting:
		return proposalRecord
	case Oracle:
		return priceDataRecord
	default:
		return ""
	}
}
