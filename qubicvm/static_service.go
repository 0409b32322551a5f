// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"net/http"

	"github.com/sambitsargam/QubiLearn/builder"
)

// StaticService is the stateless code synthesis API
type StaticService struct{}

// CreateStaticService ...
func CreateStaticService() *StaticService {
	return &StaticService{}
}

// SynthesizeArgs are arguments for Synthesize
type SynthesizeArgs struct {
	Spec builder.ContractSpec `json:"spec"`
}

// SynthesizeReply is the reply from Synthesize and SynthesizeFromArchetype
type SynthesizeReply struct {
	Code string `json:"code"`
}

// Synthesize renders a contract spec as source code
func (ss *StaticService) Synthesize(_ *http.Request, args *SynthesizeArgs, reply *SynthesizeReply) error {
	reply.Code = builder.Synthesize(args.Spec)
	return nil
}

// SynthesizeFromArchetypeArgs are arguments for SynthesizeFromArchetype
type SynthesizeFromArchetypeArgs struct {
	Archetype builder.Archetype `json:"archetype"`
	Name      string            `json:"name"`
}

// SynthesizeFromArchetype returns the complete example for an archetype
func (ss *StaticService) SynthesizeFromArchetype(_ *http.Request, args *SynthesizeFromArchetypeArgs, reply *SynthesizeReply) error {
	reply.Code = builder.SynthesizeFromArchetype(args.Archetype, args.Name)
	return nil
}

// LogicBlock describes one catalogue entry
type LogicBlock struct {
	Tag     builder.LogicTag   `json:"tag"`
	Returns builder.ReturnType `json:"returns"`
}

// LogicBlocksReply is the reply from LogicBlocks
type LogicBlocksReply struct {
	Blocks     []LogicBlock        `json:"blocks"`
	Archetypes []builder.Archetype `json:"archetypes"`
}

// LogicBlocks lists the logic block catalogue and the archetypes
func (ss *StaticService) LogicBlocks(_ *http.Request, _ *EmptyArgs, reply *LogicBlocksReply) error {
	for _, tag := range builder.Catalogue() {
		block, _ := builder.Lookup(tag)
		reply.Blocks = append(reply.Blocks, LogicBlock{Tag: block.Tag, Returns: block.Returns})
	}
	reply.Archetypes = builder.Archetypes()
	return nil
}
