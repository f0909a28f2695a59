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

package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/nephilatech/nephila/common"
	"github.com/nephilatech/nephila/params"
)

// runCode executes code in a fresh frame and returns the outcome.
func runCode(t *testing.T, code []byte, gas uint64) CallOutcome {
	t.Helper()
	s, xvm := newTestEnv(Config{})
	contract := common.HexToAddress("0xc0de")
	s.SetCode(contract, code)
	return xvm.Call(callParams(contract, 0, gas))
}

func TestJumpToValidDest(t *testing.T) {
	// PUSH1 4, JUMP, STOP, JUMPDEST, STOP
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(STOP), byte(JUMPDEST), byte(STOP)}
	out := runCode(t, code, 10_000)
	require.NoError(t, out.Err)

	wantUsed := params.GasFastestStep + params.GasMidStep + params.JumpdestGas
	require.Equal(t, 10_000-wantUsed, out.GasLeft)
}

func TestJumpIntoImmediateIsInvalid(t *testing.T) {
	// Position 4 holds a JUMPDEST byte, but it is the immediate operand of
	// the PUSH1 at position 3.
	code := []byte{byte(PUSH1), 0x04, byte(JUMP), byte(PUSH1), byte(JUMPDEST), byte(STOP)}
	out := runCode(t, code, 10_000)
	require.ErrorIs(t, out.Err, ErrInvalidJump)
	require.Equal(t, uint64(0), out.GasLeft)
}

func TestJumpiNotTaken(t *testing.T) {
	// PUSH1 0 (cond), PUSH1 bogus dest, JUMPI, STOP. A zero condition must
	// not validate the destination.
	code := []byte{byte(PUSH1), 0x00, byte(PUSH1), 0x63, byte(JUMPI), byte(STOP)}
	out := runCode(t, code, 10_000)
	require.NoError(t, out.Err)
}

func TestPushTruncatedAtCodeEnd(t *testing.T) {
	// PUSH32 with only 2 operand bytes left: the operand is right-padded
	// with zeros and the frame falls off the end of the code into STOP.
	code := []byte{byte(PUSH32), 0x01, 0x02}
	out := runCode(t, code, 10_000)
	require.NoError(t, out.Err)
}

func TestInvalidOpcodeConsumesAllGas(t *testing.T) {
	out := runCode(t, []byte{byte(INVALID)}, 10_000)
	require.Error(t, out.Err)
	require.IsType(t, ErrInvalidOpCode{}, out.Err)
	require.Equal(t, uint64(0), out.GasLeft)
}

func TestStackOverflow(t *testing.T) {
	// A loop pushing forever: JUMPDEST, PUSH1 0, PUSH1 0, JUMP.
	code := []byte{byte(JUMPDEST), byte(PUSH1), 0x00, byte(PUSH1), 0x00, byte(JUMP)}
	out := runCode(t, code, 10_000_000)
	require.Error(t, out.Err)
	require.IsType(t, ErrStackOverflow{}, out.Err)
}

func TestAddSubCompute(t *testing.T) {
	s, xvm := newTestEnv(Config{})
	contract := common.HexToAddress("0x0add")
	// (7 + 5) - 2 stored at slot 1: PUSH1 2, PUSH1 5, PUSH1 7, ADD, SUB...
	// SUB computes top - next, so push the subtrahend first.
	code := []byte{
		byte(PUSH1), 0x02, byte(PUSH1), 0x05, byte(PUSH1), 0x07,
		byte(ADD), byte(SUB),
		byte(PUSH1), 0x01, byte(SSTORE),
		byte(STOP),
	}
	s.SetCode(contract, code)
	out := xvm.Call(callParams(contract, 0, 100_000))
	require.NoError(t, out.Err)

	var v uint256.Int
	s.GetState(contract, common.BytesToHash([]byte{0x01}), &v)
	require.Equal(t, uint64(10), v.Uint64())
}

func TestSloadReadsBack(t *testing.T) {
	s, xvm := newTestEnv(Config{})
	contract := common.HexToAddress("0x051d")
	// Store 9 at slot 2, load it and store the copy at slot 3.
	code := []byte{
		byte(PUSH1), 0x09, byte(PUSH1), 0x02, byte(SSTORE),
		byte(PUSH1), 0x02, byte(SLOAD),
		byte(PUSH1), 0x03, byte(SSTORE),
		byte(STOP),
	}
	s.SetCode(contract, code)
	out := xvm.Call(callParams(contract, 0, 100_000))
	require.NoError(t, out.Err)

	var v uint256.Int
	s.GetState(contract, common.BytesToHash([]byte{0x03}), &v)
	require.Equal(t, uint64(9), v.Uint64())
}
