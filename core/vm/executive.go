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
	"github.com/nephilatech/nephila/core/types"
	"github.com/nephilatech/nephila/core/vm/evmtypes"
	"github.com/nephilatech/nephila/params"
)

// Executive hosts one call or create frame: it sets the frame up against
// the state, runs the interpreter over it and settles the result. Balance
// and nonce mutations hit the state directly as the frame runs; the
// snapshot taken at setup is what rolls them back on failure. Log, refund
// and destruct effects go to the frame's own sub-state and only reach the
// parent through AccrueSubState.
type Executive struct {
	state   *state.IntraBlockState
	context evmtypes.BlockContext
	txCtx   evmtypes.TxContext
	config  Config
	depth   int

	sub        *SubState
	contract   *Contract
	input      []byte
	isCreate   bool
	newAddress common.Address
	snapshot   int

	gasRemaining uint64
	output       []byte
	err          error
}

// NewExecutive creates a frame host at the given depth.
func NewExecutive(ibs *state.IntraBlockState, blockCtx evmtypes.BlockContext, txCtx evmtypes.TxContext, config Config, depth int) *Executive {
	return &Executive{
		state:   ibs,
		context: blockCtx,
		txCtx:   txCtx,
		config:  config,
		depth:   depth,
		sub:     NewSubState(),
	}
}

// fail settles the frame as failed before it ever ran. gas is what the
// caller gets back, which for precondition failures is the full allotment.
func (e *Executive) fail(err error, gas uint64) bool {
	e.err = err
	e.gasRemaining = gas
	return true
}

// BeginCall sets the frame up for a message call. The returned flag tells
// the caller the frame already concluded (precondition failure, or nothing
// to run) and Run must be skipped.
func (e *Executive) BeginCall(p CallParameters) bool {
	if !e.context.CanTransfer(e.state, p.SenderAddress, p.Value) {
		return e.fail(ErrInsufficientBalance, p.Gas)
	}
	e.snapshot = e.state.Snapshot()

	if !e.state.Exist(p.ReceiveAddress) {
		e.state.CreateAccount(p.ReceiveAddress, false)
	}
	e.context.Transfer(e.state, p.SenderAddress, p.ReceiveAddress, p.Value)
	e.sub.Touch(p.ReceiveAddress)

	code := e.state.GetCode(p.CodeAddress)
	if len(code) == 0 {
		// Plain value transfer, nothing to run.
		e.gasRemaining = p.Gas
		return true
	}

	e.contract = NewContract(p.SenderAddress, p.ReceiveAddress, p.Value, p.Gas, e.config.JumpDestCache)
	e.contract.SetCallCode(e.state.GetCodeHash(p.CodeAddress), code)
	e.input = p.Data
	return false
}

// BeginCreate sets the frame up for contract creation. The sender's nonce
// has already been consumed by the dispatcher; the new address derives from
// the pre-increment value.
func (e *Executive) BeginCreate(sender common.Address, endowment *uint256.Int, gas uint64, code []byte) bool {
	e.isCreate = true
	e.newAddress = types.CreateAddress(sender, e.state.GetNonce(sender)-1)

	if !e.context.CanTransfer(e.state, sender, endowment) {
		return e.fail(ErrInsufficientBalance, gas)
	}
	// Ensure there's no existing contract already at the designated address.
	if e.state.GetNonce(e.newAddress) != 0 || e.state.GetCodeSize(e.newAddress) != 0 {
		return e.fail(ErrContractAddressCollision, 0)
	}
	e.snapshot = e.state.Snapshot()

	e.state.CreateAccount(e.newAddress, true)
	e.state.SetNonce(e.newAddress, 1)
	e.context.Transfer(e.state, sender, e.newAddress, endowment)
	e.sub.Touch(e.newAddress)

	if len(code) == 0 {
		e.gasRemaining = gas
		return true
	}

	e.contract = NewContract(sender, e.newAddress, endowment, gas, e.config.JumpDestCache)
	e.contract.SetCallCode(common.Hash{}, code)
	return false
}

// Run drives the frame to completion. Protocol failures end up in e.err;
// panics pass through untouched for the dispatcher's substrate switcher to
// transport.
func (e *Executive) Run(hooks *tracing.Hooks) {
	frame := &ExtVM{
		state:     e.state,
		context:   e.context,
		txCtx:     e.txCtx,
		config:    e.config,
		myAddress: e.contract.Address(),
		depth:     e.depth,
		sub:       e.sub,
	}
	in := NewInterpreter(frame, hooks)
	ret, err := in.Run(e.contract, e.input)

	if err == nil && e.isCreate {
		ret, err = e.depositCode(ret, hooks)
	}
	if err != nil {
		e.state.RevertToSnapshot(e.snapshot)
		if err != ErrExecutionReverted {
			// Only an explicit revert keeps the remaining gas.
			e.contract.UseGas(e.contract.Gas, hooks, tracing.GasChangeCallFailedExecution)
		}
	}
	e.output = ret
	e.err = err
	e.gasRemaining = e.contract.Gas
}

// depositCode stores the code returned by the init frame, charging the
// per-byte deposit fee.
func (e *Executive) depositCode(ret []byte, hooks *tracing.Hooks) ([]byte, error) {
	if len(ret) > params.MaxCodeSize {
		return ret, ErrMaxCodeSizeExceeded
	}
	createDataGas := uint64(len(ret)) * params.CreateDataGas
	if !e.contract.UseGas(createDataGas, hooks, tracing.GasChangeCallCodeStorage) {
		return ret, ErrCodeStoreOutOfGas
	}
	e.state.SetCode(e.newAddress, ret)
	return ret, nil
}

// Gas returns the gas left over after the frame concluded.
func (e *Executive) Gas() uint64 {
	return e.gasRemaining
}

// NewAddress returns the address derived for a create frame. It is
// well-defined even when creation failed.
func (e *Executive) NewAddress() common.Address {
	return e.newAddress
}

// Excepted reports whether the frame concluded in a failed state.
func (e *Executive) Excepted() bool {
	return e.err != nil
}

// Err returns the failure the frame concluded with, if any.
func (e *Executive) Err() error {
	return e.err
}

// Output returns the data the frame returned.
func (e *Executive) Output() []byte {
	return e.output
}

// AccrueSubState merges this frame's side effects into the parent.
func (e *Executive) AccrueSubState(parent *SubState) {
	parent.Accrue(e.sub)
}
