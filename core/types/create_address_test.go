// Copyright 2025 The Nephila Authors
// This file is part of Nephila.
//
// Nephila is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nephila is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Nephila. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nephilatech/nephila/common"
	"github.com/nephilatech/nephila/crypto"
)

// naiveRLP encodes [address, nonce] without the buffer-writing encoder, as
// an independent cross-check of the fast path.
func naiveRLP(a common.Address, nonce uint64) []byte {
	var nonceEnc []byte
	switch {
	case nonce == 0:
		nonceEnc = []byte{0x80}
	case nonce < 128:
		nonceEnc = []byte{byte(nonce)}
	default:
		var be []byte
		for n := nonce; n > 0; n >>= 8 {
			be = append([]byte{byte(n)}, be...)
		}
		nonceEnc = append([]byte{0x80 + byte(len(be))}, be...)
	}
	payload := append([]byte{0x80 + 20}, a[:]...)
	payload = append(payload, nonceEnc...)
	return append([]byte{0xc0 + byte(len(payload))}, payload...)
}

func TestCreateAddress(t *testing.T) {
	sender := common.HexToAddress("0x970e8128ab834e8eac17ab8e3812f010678cf791")
	for _, nonce := range []uint64{0, 1, 127, 128, 255, 256, 1 << 32} {
		want := common.BytesToAddress(crypto.Keccak256(naiveRLP(sender, nonce))[12:])
		require.Equal(t, want, CreateAddress(sender, nonce), "nonce %d", nonce)
	}
}

func TestCreateAddressDistinct(t *testing.T) {
	sender := common.HexToAddress("0x0000000000000000000000000000000000000001")
	seen := map[common.Address]bool{}
	for nonce := uint64(0); nonce < 300; nonce++ {
		addr := CreateAddress(sender, nonce)
		require.False(t, seen[addr], "collision at nonce %d", nonce)
		seen[addr] = true
	}
}

func TestCreateAddress2(t *testing.T) {
	// Known vector: deployer 0x0, zero salt, init code 0x00.
	deployer := common.Address{}
	var salt [32]byte
	inithash := crypto.Keccak256([]byte{0x00})
	got := CreateAddress2(deployer, salt, inithash)
	require.Equal(t, common.HexToAddress("0x4D1A2e2bB4F88F0250f26Ffff098B0b30B26BF38"), got)
}
