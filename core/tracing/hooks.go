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

// Package tracing defines the hooks the execution engine fires while running
// code. Hooks observe a single logical trace stream per transaction: frames
// hosted on an offloaded stack report through the same hook set as the frames
// that spawned them.
package tracing

import (
	"github.com/holiman/uint256"

	"github.com/nephilatech/nephila/common"
)

// OpContext provides read access to the execution state of the frame an
// opcode hook fires in.
type OpContext interface {
	Address() common.Address
	CallValue() *uint256.Int
	CallInput() []byte
}

type (
	// EnterHook is invoked when the engine starts a new frame, either the
	// top-level one or a nested call/create. depth is the number of frames
	// already open below this one.
	EnterHook = func(depth int, typ byte, from common.Address, to common.Address, input []byte, gas uint64, value *uint256.Int)

	// ExitHook is invoked when a frame finishes. reverted distinguishes a
	// protocol-level failure from plain completion; err carries the cause.
	ExitHook = func(depth int, gasUsed uint64, err error, reverted bool)

	// OpcodeHook is invoked before each opcode executes.
	OpcodeHook = func(pc uint64, op byte, gas, cost uint64, scope OpContext, depth int)

	// GasChangeHook is invoked when the gas counter of the active frame
	// changes, with the reason for the change.
	GasChangeHook = func(old, new uint64, reason GasChangeReason)
)

// Hooks is the set of callbacks a tracer registers with the engine. Any
// field may be nil.
type Hooks struct {
	OnEnter     EnterHook
	OnExit      ExitHook
	OnOpcode    OpcodeHook
	OnGasChange GasChangeHook
}

// GasChangeReason tags a gas counter mutation so tracers can attribute
// consumption without re-deriving the fee schedule.
type GasChangeReason byte

const (
	GasChangeUnspecified GasChangeReason = iota

	// GasChangeCallInitialBalance is the initial balance for the call which
	// will be equal to the gasLimit of the call.
	GasChangeCallInitialBalance
	// GasChangeCallLeftOverReturned is the amount of gas a nested frame
	// returns to its caller after completing.
	GasChangeCallLeftOverReturned
	// GasChangeCallOpCode is the amount of gas charged for an opcode.
	GasChangeCallOpCode
	// GasChangeCallCodeStorage is the amount of gas charged to deposit the
	// code returned by a create frame.
	GasChangeCallCodeStorage
	// GasChangeCallFailedExecution is the burning of the remaining gas when
	// the execution failed without a revert.
	GasChangeCallFailedExecution

	// GasChangeIgnored marks a gas change that can be safely ignored.
	GasChangeIgnored GasChangeReason = 0xFF
)
