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
	"github.com/nephilatech/nephila/core/state"
	"github.com/nephilatech/nephila/core/tracing"
	"github.com/nephilatech/nephila/core/vm/evmtypes"
	"github.com/nephilatech/nephila/params"
)

// CallParameters describes one nested message call. The dispatcher treats
// it as read-only; gas comes back through the outcome instead of being
// written into the parameters.
type CallParameters struct {
	SenderAddress common.Address
	// CodeAddress is the account whose code runs; ReceiveAddress is the
	// account whose storage and balance the call acts on. They differ for
	// delegated execution.
	CodeAddress    common.Address
	ReceiveAddress common.Address
	Value          *uint256.Int
	Gas            uint64
	Data           []byte
}

// CallOutcome is the settled result of a nested call. A nil Err means the
// frame completed without reverting; GasLeft is valid either way.
type CallOutcome struct {
	GasLeft uint64
	Err     error
}

// CreateOutcome is the settled result of a nested create. Address is the
// derived account address and is well-defined even on failure.
type CreateOutcome struct {
	Address common.Address
	GasLeft uint64
	Err     error
}

// ExtVM is the call/create dispatcher for one open frame. Code running in
// the frame reaches nested frames exclusively through Call and Create; the
// dispatcher enforces the depth limit, drives the nested frame through the
// stack offload machinery and merges its sub-state on success.
type ExtVM struct {
	state   *state.IntraBlockState
	context evmtypes.BlockContext
	txCtx   evmtypes.TxContext
	config  Config

	// myAddress is the account this frame executes as; nested creates
	// consume its nonce.
	myAddress common.Address
	// depth is the number of frames already open below this one, 0 for the
	// top-level transaction frame.
	depth int
	sub   *SubState
}

// NewExtVM returns the top-level dispatcher for one transaction.
func NewExtVM(blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, ibs *state.IntraBlockState, config Config) *ExtVM {
	if config.JumpDestCache == nil {
		config.JumpDestCache = NewJumpDestCache(JumpDestCacheLimit)
	}
	return &ExtVM{
		state:     ibs,
		context:   blockCtx,
		txCtx:     txCtx,
		config:    config,
		myAddress: txCtx.Origin,
		sub:       NewSubState(),
	}
}

// SubState exposes the effects accumulated by this frame and the nested
// frames that completed under it.
func (xvm *ExtVM) SubState() *SubState {
	return xvm.sub
}

// Call executes the code at CodeAddress in a nested frame one level deeper
// than this one. A reverted nested frame is a returned outcome; a panic
// escaping the nested frame is a host fault and unwinds the dispatcher.
func (xvm *ExtVM) Call(p CallParameters) CallOutcome {
	if xvm.config.Tracer != nil {
		xvm.captureBegin(byte(CALL), p.SenderAddress, p.ReceiveAddress, p.Data, p.Gas, p.Value)
	}
	if xvm.config.NoRecursion && xvm.depth > 0 {
		out := CallOutcome{GasLeft: p.Gas}
		if xvm.config.Tracer != nil {
			xvm.captureEnd(p.Gas, out.GasLeft, out.Err)
		}
		return out
	}
	if xvm.depth >= int(params.CallCreateDepth) {
		out := CallOutcome{GasLeft: p.Gas, Err: ErrDepth}
		if xvm.config.Tracer != nil {
			xvm.captureEnd(p.Gas, out.GasLeft, out.Err)
		}
		return out
	}

	e := NewExecutive(xvm.state, xvm.context, xvm.txCtx, xvm.config, xvm.depth+1)
	if !e.BeginCall(p) {
		execute(xvm.depth, func() {
			e.Run(xvm.config.Tracer)
		})
		if !e.Excepted() {
			e.AccrueSubState(xvm.sub)
		}
	}
	out := CallOutcome{GasLeft: e.Gas(), Err: e.Err()}
	if xvm.config.Tracer != nil {
		xvm.captureEnd(p.Gas, out.GasLeft, out.Err)
	}
	return out
}

// Create deploys new code in a nested frame one level deeper than this
// one. The frame executes code as this dispatcher's account, whose nonce
// is consumed up front: it increments even when creation fails, unless the
// depth gate refused the attempt before anything ran.
func (xvm *ExtVM) Create(endowment *uint256.Int, gas uint64, code []byte) CreateOutcome {
	if xvm.config.Tracer != nil {
		xvm.captureBegin(byte(CREATE), xvm.myAddress, common.Address{}, code, gas, endowment)
	}
	if xvm.config.NoRecursion && xvm.depth > 0 {
		out := CreateOutcome{GasLeft: gas}
		if xvm.config.Tracer != nil {
			xvm.captureEnd(gas, out.GasLeft, out.Err)
		}
		return out
	}
	if xvm.depth >= int(params.CallCreateDepth) {
		out := CreateOutcome{GasLeft: gas, Err: ErrDepth}
		if xvm.config.Tracer != nil {
			xvm.captureEnd(gas, out.GasLeft, out.Err)
		}
		return out
	}
	nonce := xvm.state.GetNonce(xvm.myAddress)
	if nonce+1 < nonce {
		out := CreateOutcome{GasLeft: gas, Err: ErrNonceUintOverflow}
		if xvm.config.Tracer != nil {
			xvm.captureEnd(gas, out.GasLeft, out.Err)
		}
		return out
	}
	xvm.state.SetNonce(xvm.myAddress, nonce+1)

	e := NewExecutive(xvm.state, xvm.context, xvm.txCtx, xvm.config, xvm.depth+1)
	if !e.BeginCreate(xvm.myAddress, endowment, gas, code) {
		execute(xvm.depth, func() {
			e.Run(xvm.config.Tracer)
		})
		if !e.Excepted() {
			e.AccrueSubState(xvm.sub)
		}
	}
	out := CreateOutcome{Address: e.NewAddress(), GasLeft: e.Gas(), Err: e.Err()}
	if xvm.config.Tracer != nil {
		xvm.captureEnd(gas, out.GasLeft, out.Err)
	}
	return out
}

func (xvm *ExtVM) captureBegin(typ byte, from, to common.Address, input []byte, gas uint64, value *uint256.Int) {
	tracer := xvm.config.Tracer
	if tracer.OnEnter != nil {
		tracer.OnEnter(xvm.depth, typ, from, to, input, gas, value)
	}
	if tracer.OnGasChange != nil {
		tracer.OnGasChange(0, gas, tracing.GasChangeCallInitialBalance)
	}
}

func (xvm *ExtVM) captureEnd(startGas, leftOverGas uint64, err error) {
	tracer := xvm.config.Tracer
	if leftOverGas != 0 && tracer.OnGasChange != nil {
		tracer.OnGasChange(leftOverGas, 0, tracing.GasChangeCallLeftOverReturned)
	}
	if tracer.OnExit != nil {
		tracer.OnExit(xvm.depth, startGas-leftOverGas, err, err == ErrExecutionReverted)
	}
}
