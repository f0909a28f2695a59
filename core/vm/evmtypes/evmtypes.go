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

package evmtypes

import (
	"github.com/holiman/uint256"

	"github.com/nephilatech/nephila/common"
	"github.com/nephilatech/nephila/core/state"
)

// BlockContext provides the engine with information about the enclosing
// block. All fields are set once and treated as read-only during execution.
type BlockContext struct {
	// CanTransfer reports whether the account contains sufficient balance
	// for the transfer.
	CanTransfer CanTransferFunc
	// Transfer moves value from one account to the other.
	Transfer TransferFunc

	Coinbase    common.Address
	BlockNumber uint64
	Time        uint64
	GasLimit    uint64
	BaseFee     *uint256.Int
}

// TxContext provides the engine with information about the transaction
// being executed. Unlike BlockContext it is replaced per transaction.
type TxContext struct {
	TxHash   common.Hash
	Origin   common.Address
	GasPrice *uint256.Int
}

type (
	CanTransferFunc func(*state.IntraBlockState, common.Address, *uint256.Int) bool
	TransferFunc    func(*state.IntraBlockState, common.Address, common.Address, *uint256.Int)
)
