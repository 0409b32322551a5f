// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qubicvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintSBT(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	vm := newTestVM(t, testConfig())

	metadata := map[string]interface{}{
		"name":        "First Contract",
		"description": "Deployed a contract",
		"soulbound":   false,
	}
	badge, err := vm.MintSBT("QUBIC_ADDR_1", "First Contract", metadata)
	require.NoError(err)

	assert.Equal(Minted, badge.Status)
	assert.Equal("QUBIC_ADDR_1", badge.Recipient)
	assert.Equal("First Contract", badge.Metadata["badgeType"])
	assert.Equal("Qubic", badge.Metadata["blockchain"])
	assert.Equal(true, badge.Metadata["soulbound"])
	assert.Contains(badge.Metadata, "mintedAt")
	assert.Equal("Deployed a contract", badge.Metadata["description"])

	// The caller's map is left alone
	assert.Equal(false, metadata["soulbound"])
	assert.NotContains(metadata, "badgeType")

	badges, err := vm.Badges()
	require.NoError(err)
	require.Len(badges, 1)
	assert.Equal(badge, badges[0])
}

func TestBadgesImmutable(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	vm := newTestVM(t, testConfig())

	first, err := vm.MintSBT("QUBIC_ADDR_1", "Voter", nil)
	require.NoError(err)
	second, err := vm.MintSBT("QUBIC_ADDR_2", "Voter", nil)
	require.NoError(err)
	assert.NotEqual(first.TokenID, second.TokenID)

	badges, err := vm.Badges()
	require.NoError(err)
	require.Len(badges, 2)
	badges[0].Recipient = "QUBIC_ADDR_3"
	badges[0].Metadata["soulbound"] = false

	again, err := vm.Badges()
	require.NoError(err)
	assert.Equal(first, again[0])
	assert.Equal(second, again[1])
	assert.Equal(true, again[0].Metadata["soulbound"])
}
