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
	"github.com/nephilatech/nephila/core/types"
	"github.com/nephilatech/nephila/params"
)

func opStop(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, errStopToken
}

func opAdd(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	x, y := scope.Stack.pop(), scope.Stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opPop(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.pop()
	return nil, nil
}

func opDup1(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	scope.Stack.dup(1)
	return nil, nil
}

// makePush builds the PUSH operation for a pushSize-byte immediate. The
// immediate is zero-padded on the right when the code ends mid-operand.
func makePush(pushSize uint64) executionFunc {
	return func(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
		var (
			codeLen = uint64(len(scope.Contract.Code))
			start   = *pc + 1
			end     = start + pushSize
		)
		if start > codeLen {
			start = codeLen
		}
		if end > codeLen {
			end = codeLen
		}
		integer := new(uint256.Int)
		scope.Stack.push(integer.SetBytes(
			common.RightPadBytes(scope.Contract.Code[start:end], int(pushSize))))
		*pc += pushSize
		return nil, nil
	}
}

func opSload(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.peek()
	key := common.Hash(loc.Bytes32())
	interpreter.xvm.state.GetState(scope.Contract.Address(), key, loc)
	return nil, nil
}

func opSstore(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	loc := scope.Stack.pop()
	val := scope.Stack.pop()
	key := common.Hash(loc.Bytes32())
	addr := scope.Contract.Address()

	var current uint256.Int
	interpreter.xvm.state.GetState(addr, key, &current)

	var cost uint64
	switch {
	case current.IsZero() && !val.IsZero():
		cost = params.SstoreSetGas
	default:
		cost = params.SstoreResetGas
	}
	if !scope.Contract.UseGas(cost, interpreter.hooks, tracing.GasChangeCallOpCode) {
		return nil, ErrOutOfGas
	}
	if !current.IsZero() && val.IsZero() {
		interpreter.xvm.sub.AddRefund(params.SstoreRefundGas)
	}
	interpreter.xvm.state.SetState(addr, key, &val)
	return nil, nil
}

func opJump(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	pos := scope.Stack.pop()
	if !scope.Contract.validJumpdest(&pos) {
		return nil, ErrInvalidJump
	}
	*pc = pos.Uint64() - 1 // pc will be increased by the interpreter loop
	return nil, nil
}

func opJumpi(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	pos, cond := scope.Stack.pop(), scope.Stack.pop()
	if !cond.IsZero() {
		if !scope.Contract.validJumpdest(&pos) {
			return nil, ErrInvalidJump
		}
		*pc = pos.Uint64() - 1 // pc will be increased by the interpreter loop
	}
	return nil, nil
}

func opJumpdest(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, nil
}

// immediatePayload reads the 1-byte length immediate at pc+1 followed by
// that many payload bytes, and advances pc past both. The payload is
// truncated if the code ends early.
func immediatePayload(pc *uint64, code []byte) []byte {
	codeLen := uint64(len(code))
	if *pc+1 >= codeLen {
		*pc = codeLen - 1
		return nil
	}
	length := uint64(code[*pc+1])
	start := *pc + 2
	end := start + length
	if end > codeLen {
		end = codeLen
	}
	*pc += 1 + length
	return code[start:end]
}

func opLog0(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	data := immediatePayload(pc, scope.Contract.Code)
	if !scope.Contract.UseGas(params.LogDataGas*uint64(len(data)), interpreter.hooks, tracing.GasChangeCallOpCode) {
		return nil, ErrOutOfGas
	}
	interpreter.xvm.sub.AddLog(&types.Log{
		Address: scope.Contract.Address(),
		Data:    common.CopyBytes(data),
	})
	return nil, nil
}

func opReturn(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	data := immediatePayload(pc, scope.Contract.Code)
	return common.CopyBytes(data), errStopToken
}

func opRevert(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	return nil, ErrExecutionReverted
}

func opCall(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	stack := scope.Stack
	var (
		gasReq = stack.pop()
		addr   = stack.pop()
		value  = stack.pop()
	)
	toAddr := common.Address(addr.Bytes20())

	// The requested gas is capped at what the frame still has; the capped
	// amount moves to the child and whatever it leaves comes back.
	gas := scope.Contract.Gas
	if gasReq.CmpUint64(gas) < 0 {
		gas = gasReq.Uint64()
	}
	if !scope.Contract.UseGas(gas, interpreter.hooks, tracing.GasChangeIgnored) {
		return nil, ErrOutOfGas
	}

	out := interpreter.xvm.Call(CallParameters{
		SenderAddress:  scope.Contract.Address(),
		CodeAddress:    toAddr,
		ReceiveAddress: toAddr,
		Value:          &value,
		Gas:            gas,
		Data:           nil,
	})
	scope.Contract.RefundGas(out.GasLeft, interpreter.hooks, tracing.GasChangeCallLeftOverReturned)

	success := new(uint256.Int)
	if out.Err == nil {
		success.SetOne()
	}
	stack.push(success)
	return nil, nil
}

func opCreate(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	initCode := immediatePayload(pc, scope.Contract.Code)
	value := scope.Stack.pop()

	// All remaining gas moves to the init frame.
	gas := scope.Contract.Gas
	if !scope.Contract.UseGas(gas, interpreter.hooks, tracing.GasChangeIgnored) {
		return nil, ErrOutOfGas
	}

	out := interpreter.xvm.Create(&value, gas, common.CopyBytes(initCode))
	scope.Contract.RefundGas(out.GasLeft, interpreter.hooks, tracing.GasChangeCallLeftOverReturned)

	addr := new(uint256.Int)
	if out.Err == nil {
		addr.SetBytes(out.Address.Bytes())
	}
	scope.Stack.push(addr)
	return nil, nil
}

func opSelfdestruct(pc *uint64, interpreter *Interpreter, scope *ScopeContext) ([]byte, error) {
	beneficiaryInt := scope.Stack.pop()
	beneficiary := common.Address(beneficiaryInt.Bytes20())
	addr := scope.Contract.Address()

	balance := *interpreter.xvm.state.GetBalance(addr)
	interpreter.xvm.state.SubBalance(addr, &balance)
	interpreter.xvm.state.AddBalance(beneficiary, &balance)
	interpreter.xvm.sub.MarkDestruct(addr)
	interpreter.xvm.sub.Touch(beneficiary)
	return nil, errStopToken
}
