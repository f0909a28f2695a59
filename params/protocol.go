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

// Package params holds the protocol constants every conforming node must
// agree on. Changing any value here is a consensus change.
package params

const (
	// CallCreateDepth is the maximum nesting of call/create frames within
	// one transaction.
	CallCreateDepth uint64 = 1024

	// StackLimit is the maximum size of the operand stack of one frame.
	StackLimit uint64 = 1024

	// MaxCodeSize is the maximum bytecode to permit for a contract.
	MaxCodeSize = 24576

	GasQuickStep   uint64 = 2
	GasFastestStep uint64 = 3
	GasMidStep     uint64 = 8
	GasSlowStep    uint64 = 10

	CallGas          uint64 = 700   // Paid for CALL before the nested frame runs.
	CreateGas        uint64 = 32000 // Paid for CREATE before the init frame runs.
	CreateDataGas    uint64 = 200   // Paid per byte of code deposited by CREATE.
	SloadGas         uint64 = 200
	SstoreSetGas     uint64 = 20000 // Paid when a storage value is set from zero.
	SstoreResetGas   uint64 = 5000  // Paid when a storage value remains non-zero.
	SstoreRefundGas  uint64 = 15000 // Refunded when a storage value is cleared.
	SelfdestructGas  uint64 = 5000
	JumpdestGas      uint64 = 1
	LogGas           uint64 = 375 // Per LOG operation.
	LogDataGas       uint64 = 8   // Per byte in a LOG operation's data.
)
