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

// Package core wires the execution engine to its collaborators.
package core

import (
	"github.com/holiman/uint256"

	"github.com/nephilatech/nephila/common"
	"github.com/nephilatech/nephila/core/state"
	"github.com/nephilatech/nephila/core/vm/evmtypes"
)

// NewBlockContext creates a new context for use in the execution engine.
func NewBlockContext(coinbase common.Address, blockNumber, time, gasLimit uint64, baseFee *uint256.Int) evmtypes.BlockContext {
	return evmtypes.BlockContext{
		CanTransfer: CanTransfer,
		Transfer:    Transfer,
		Coinbase:    coinbase,
		BlockNumber: blockNumber,
		Time:        time,
		GasLimit:    gasLimit,
		BaseFee:     baseFee,
	}
}

// CanTransfer checks whether there are enough funds in the address' account
// to make a transfer. This does not take the necessary gas into account to
// make the transfer valid.
func CanTransfer(db *state.IntraBlockState, addr common.Address, amount *uint256.Int) bool {
	return !db.GetBalance(addr).Lt(amount)
}

// Transfer subtracts amount from sender and adds amount to recipient using
// the given state database.
func Transfer(db *state.IntraBlockState, sender, recipient common.Address, amount *uint256.Int) {
	db.SubBalance(sender, amount)
	db.AddBalance(recipient, amount)
}
