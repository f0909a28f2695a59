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
	"github.com/nephilatech/nephila/params"
)

type executionFunc func(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error)

// operation is the execution entry for one opcode. Dynamic gas portions are
// charged inside execute; constantGas is charged by the interpreter loop
// before execute runs.
type operation struct {
	execute     executionFunc
	constantGas uint64
	// numPop tells how many stack items are required
	numPop int
	// maxStack specifies the max length the stack can have for this
	// operation to not overflow the stack
	maxStack int
}

func maxStack(pop, push int) int {
	return int(params.StackLimit) + pop - push
}

// JumpTable contains the instructions allowed during execution.
type JumpTable [256]*operation

var baseInstructionSet JumpTable

func init() {
	baseInstructionSet = newBaseInstructionSet()
}

func newBaseInstructionSet() JumpTable {
	tbl := JumpTable{
		STOP: {
			execute:     opStop,
			constantGas: 0,
			numPop:      0,
			maxStack:    maxStack(0, 0),
		},
		ADD: {
			execute:     opAdd,
			constantGas: params.GasFastestStep,
			numPop:      2,
			maxStack:    maxStack(2, 1),
		},
		SUB: {
			execute:     opSub,
			constantGas: params.GasFastestStep,
			numPop:      2,
			maxStack:    maxStack(2, 1),
		},
		POP: {
			execute:     opPop,
			constantGas: params.GasQuickStep,
			numPop:      1,
			maxStack:    maxStack(1, 0),
		},
		SLOAD: {
			execute:     opSload,
			constantGas: params.SloadGas,
			numPop:      1,
			maxStack:    maxStack(1, 1),
		},
		SSTORE: {
			execute:  opSstore,
			numPop:   2,
			maxStack: maxStack(2, 0),
		},
		JUMP: {
			execute:     opJump,
			constantGas: params.GasMidStep,
			numPop:      1,
			maxStack:    maxStack(1, 0),
		},
		JUMPI: {
			execute:     opJumpi,
			constantGas: params.GasSlowStep,
			numPop:      2,
			maxStack:    maxStack(2, 0),
		},
		JUMPDEST: {
			execute:     opJumpdest,
			constantGas: params.JumpdestGas,
			numPop:      0,
			maxStack:    maxStack(0, 0),
		},
		DUP1: {
			execute:     opDup1,
			constantGas: params.GasFastestStep,
			numPop:      1,
			maxStack:    maxStack(1, 2),
		},
		LOG0: {
			execute:     opLog0,
			constantGas: params.LogGas,
			numPop:      0,
			maxStack:    maxStack(0, 0),
		},
		CREATE: {
			execute:     opCreate,
			constantGas: params.CreateGas,
			numPop:      1,
			maxStack:    maxStack(1, 1),
		},
		CALL: {
			execute:     opCall,
			constantGas: params.CallGas,
			numPop:      3,
			maxStack:    maxStack(3, 1),
		},
		RETURN: {
			execute:     opReturn,
			constantGas: 0,
			numPop:      0,
			maxStack:    maxStack(0, 0),
		},
		REVERT: {
			execute:     opRevert,
			constantGas: 0,
			numPop:      0,
			maxStack:    maxStack(0, 0),
		},
		SELFDESTRUCT: {
			execute:     opSelfdestruct,
			constantGas: params.SelfdestructGas,
			numPop:      1,
			maxStack:    maxStack(1, 0),
		},
	}
	for i := 0; i < 32; i++ {
		tbl[PUSH1+OpCode(i)] = &operation{
			execute:     makePush(uint64(i + 1)),
			constantGas: params.GasFastestStep,
			numPop:      0,
			maxStack:    maxStack(0, 1),
		}
	}
	return tbl
}
