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

package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/nephilatech/nephila/common"
)

func TestSnapshotRevertBalanceAndNonce(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x01")

	s.AddBalance(addr, uint256.NewInt(100))
	s.SetNonce(addr, 5)

	revid := s.Snapshot()
	s.SubBalance(addr, uint256.NewInt(40))
	s.SetNonce(addr, 6)
	require.Equal(t, uint64(60), s.GetBalance(addr).Uint64())

	s.RevertToSnapshot(revid)
	require.Equal(t, uint64(100), s.GetBalance(addr).Uint64())
	require.Equal(t, uint64(5), s.GetNonce(addr))
}

func TestRevertAccountCreation(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x02")

	revid := s.Snapshot()
	s.CreateAccount(addr, true)
	s.SetNonce(addr, 1)
	s.SetCode(addr, []byte{0x00})
	require.True(t, s.Exist(addr))

	s.RevertToSnapshot(revid)
	require.False(t, s.Exist(addr))
	require.Equal(t, uint64(0), s.GetNonce(addr))
	require.Nil(t, s.GetCode(addr))
}

func TestCreateAccountPreservesBalance(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x03")
	s.AddBalance(addr, uint256.NewInt(77))
	s.SetCode(addr, []byte{0x01, 0x02})

	s.CreateAccount(addr, true)
	require.Equal(t, uint64(77), s.GetBalance(addr).Uint64())
	require.Nil(t, s.GetCode(addr))
	require.Equal(t, uint64(0), s.GetNonce(addr))
}

func TestStorageRevert(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x04")
	key := common.BytesToHash([]byte{0x01})

	var v uint256.Int
	s.SetState(addr, key, uint256.NewInt(11))
	revid := s.Snapshot()

	s.SetState(addr, key, uint256.NewInt(22))
	s.GetState(addr, key, &v)
	require.Equal(t, uint64(22), v.Uint64())

	s.SetState(addr, key, uint256.NewInt(0))
	s.GetState(addr, key, &v)
	require.True(t, v.IsZero())

	s.RevertToSnapshot(revid)
	s.GetState(addr, key, &v)
	require.Equal(t, uint64(11), v.Uint64())
}

func TestRevertIsOrdered(t *testing.T) {
	s := New()
	addr := common.HexToAddress("0x05")

	s.AddBalance(addr, uint256.NewInt(10))
	rev1 := s.Snapshot()
	s.AddBalance(addr, uint256.NewInt(10))
	rev2 := s.Snapshot()
	s.AddBalance(addr, uint256.NewInt(10))

	s.RevertToSnapshot(rev2)
	require.Equal(t, uint64(20), s.GetBalance(addr).Uint64())
	s.RevertToSnapshot(rev1)
	require.Equal(t, uint64(10), s.GetBalance(addr).Uint64())
}
