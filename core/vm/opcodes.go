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

import "fmt"

// OpCode is a single byte of the instruction set.
type OpCode byte

// Arithmetic and control operations.
const (
	STOP OpCode = 0x00
	ADD  OpCode = 0x01
	SUB  OpCode = 0x03
)

// Storage and flow operations.
const (
	POP      OpCode = 0x50
	SLOAD    OpCode = 0x54
	SSTORE   OpCode = 0x55
	JUMP     OpCode = 0x56
	JUMPI    OpCode = 0x57
	JUMPDEST OpCode = 0x5b
)

// PUSH1 pushes its 1-byte immediate operand; PUSHn through PUSH32 follow
// contiguously with n-byte immediates.
const (
	PUSH1  OpCode = 0x60
	PUSH32 OpCode = 0x7f
	DUP1   OpCode = 0x80
)

// LOG0 carries a 1-byte length immediate followed by that many payload
// bytes, logged as the event data.
const (
	LOG0 OpCode = 0xa0
)

// Frame operations. CREATE and RETURN carry the same length-prefixed
// immediate encoding as LOG0.
const (
	CREATE       OpCode = 0xf0
	CALL         OpCode = 0xf1
	RETURN       OpCode = 0xf3
	REVERT       OpCode = 0xfd
	INVALID      OpCode = 0xfe
	SELFDESTRUCT OpCode = 0xff
)

var opCodeToString = map[OpCode]string{
	STOP:         "STOP",
	ADD:          "ADD",
	SUB:          "SUB",
	POP:          "POP",
	SLOAD:        "SLOAD",
	SSTORE:       "SSTORE",
	JUMP:         "JUMP",
	JUMPI:        "JUMPI",
	JUMPDEST:     "JUMPDEST",
	DUP1:         "DUP1",
	LOG0:         "LOG0",
	CREATE:       "CREATE",
	CALL:         "CALL",
	RETURN:       "RETURN",
	REVERT:       "REVERT",
	INVALID:      "INVALID",
	SELFDESTRUCT: "SELFDESTRUCT",
}

func init() {
	for i := 0; i < 32; i++ {
		opCodeToString[PUSH1+OpCode(i)] = fmt.Sprintf("PUSH%d", i+1)
	}
}

func (op OpCode) String() string {
	if s, ok := opCodeToString[op]; ok {
		return s
	}
	return fmt.Sprintf("opcode %#x not defined", int(op))
}

// IsPush reports whether the opcode is a PUSHn.
func (op OpCode) IsPush() bool {
	return op >= PUSH1 && op <= PUSH32
}
