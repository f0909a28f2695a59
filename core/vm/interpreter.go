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
	"github.com/holiman/uint256"

	"github.com/nephilatech/nephila/common"
	"github.com/nephilatech/nephila/core/tracing"
)

// Config are the configuration options for the engine.
type Config struct {
	Tracer *tracing.Hooks
	// JumpDestCache is shared across frames and transactions; when nil a
	// private cache is created per engine instance.
	JumpDestCache *JumpDestCache
	// NoRecursion disables call and create.
	NoRecursion bool
}

// ScopeContext contains the things that are per-call, such as stack and
// contract. It is available to the tracer through the OpContext interface.
type ScopeContext struct {
	Stack    *Stack
	Contract *Contract
}

// Address returns the address where this scope of execution is taking place.
func (ctx *ScopeContext) Address() common.Address {
	return ctx.Contract.Address()
}

// CallValue returns the value supplied with this call.
func (ctx *ScopeContext) CallValue() *uint256.Int {
	return ctx.Contract.CallValue()
}

// CallInput returns the input of the current call.
func (ctx *ScopeContext) CallInput() []byte {
	return ctx.Contract.Input
}

// Interpreter runs the bytecode of one frame.
type Interpreter struct {
	xvm   *ExtVM
	hooks *tracing.Hooks
	table *JumpTable
}

// NewInterpreter returns a new instance of the Interpreter.
func NewInterpreter(xvm *ExtVM, hooks *tracing.Hooks) *Interpreter {
	return &Interpreter{
		xvm:   xvm,
		hooks: hooks,
		table: &baseInstructionSet,
	}
}

// Run loops and evaluates the contract's code with the given input data and
// returns the return byte-slice and an error if one occurred.
//
// It's important to note that any errors returned by the interpreter should
// be considered a revert-and-consume-all-gas operation except for
// ErrExecutionReverted which means revert-and-keep-gas-left.
func (in *Interpreter) Run(contract *Contract, input []byte) (ret []byte, err error) {
	// Don't bother with the execution if there's no code.
	if len(contract.Code) == 0 {
		return nil, nil
	}

	var (
		op    OpCode
		stack = New()
		scope = &ScopeContext{Stack: stack, Contract: contract}
		pc    uint64
	)
	defer ReturnNormalStack(stack)
	contract.Input = input

	for {
		op = contract.GetOp(pc)
		operation := in.table[op]
		if operation == nil {
			return nil, ErrInvalidOpCode{opcode: op}
		}
		// Validate stack
		if sLen := stack.len(); sLen < operation.numPop {
			return nil, ErrStackUnderflow{stackLen: sLen, required: operation.numPop}
		} else if sLen > operation.maxStack {
			return nil, ErrStackOverflow{stackLen: sLen, limit: operation.maxStack}
		}
		if in.hooks != nil && in.hooks.OnOpcode != nil {
			in.hooks.OnOpcode(pc, byte(op), contract.Gas, operation.constantGas, scope, in.xvm.depth)
		}
		if !contract.UseGas(operation.constantGas, in.hooks, tracing.GasChangeCallOpCode) {
			return nil, ErrOutOfGas
		}

		res, opErr := operation.execute(&pc, in, scope)
		if opErr != nil {
			if opErr == errStopToken {
				return res, nil
			}
			return res, opErr
		}
		pc++
	}
}
