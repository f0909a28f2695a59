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

// Contract represents a contract in the state database. It contains the
// contract code and calling arguments.
type Contract struct {
	// CallerAddress is the result of the caller which initialised this
	// contract.
	CallerAddress common.Address
	self          common.Address

	jumpdests *JumpDestCache
	analysis  bitvec
	analysed  bool

	Code     []byte
	CodeHash common.Hash
	Input    []byte

	Gas   uint64
	value *uint256.Int
}

// NewContract returns a new contract environment for the execution of code.
func NewContract(caller common.Address, addr common.Address, value *uint256.Int, gas uint64, jumpDests *JumpDestCache) *Contract {
	return &Contract{
		CallerAddress: caller,
		self:          addr,
		jumpdests:     jumpDests,
		Gas:           gas,
		value:         value,
	}
}

// SetCallCode sets the code of the contract along with its hash.
func (c *Contract) SetCallCode(hash common.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
}

func (c *Contract) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	// PC cannot go beyond len(code) and certainly can't be bigger than
	// 2^64. Don't bother checking for JUMPDEST in that case.
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	// Only JUMPDESTs allowed for destinations
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	return c.isCode(udest)
}

// isCode returns true if the provided PC location is an actual opcode, as
// opposed to a data segment following an instruction.
func (c *Contract) isCode(udest uint64) bool {
	if c.analysed {
		return c.analysis.codeSegment(udest)
	}
	// If we have a code hash and a cache, check the cache before
	// re-analysing.
	if c.jumpdests != nil && c.CodeHash != (common.Hash{}) {
		if analysis, ok := c.jumpdests.get(c.CodeHash); ok {
			c.analysis = analysis
			c.analysed = true
			return analysis.codeSegment(udest)
		}
		analysis := codeBitmap(c.Code)
		c.jumpdests.add(c.CodeHash, analysis)
		c.analysis = analysis
		c.analysed = true
		return analysis.codeSegment(udest)
	}
	// No code hash (initcode), analysis is kept frame-local.
	c.analysis = codeBitmap(c.Code)
	c.analysed = true
	return c.analysis.codeSegment(udest)
}

// GetOp returns the n'th element in the contract's byte array.
func (c *Contract) GetOp(n uint64) OpCode {
	if n < uint64(len(c.Code)) {
		return OpCode(c.Code[n])
	}
	return STOP
}

// UseGas attempts the use gas and subtracts it and returns true on success.
func (c *Contract) UseGas(gas uint64, hooks *tracing.Hooks, reason tracing.GasChangeReason) bool {
	if c.Gas < gas {
		return false
	}
	if hooks != nil && hooks.OnGasChange != nil && reason != tracing.GasChangeIgnored {
		hooks.OnGasChange(c.Gas, c.Gas-gas, reason)
	}
	c.Gas -= gas
	return true
}

// RefundGas refunds gas to the contract.
func (c *Contract) RefundGas(gas uint64, hooks *tracing.Hooks, reason tracing.GasChangeReason) {
	if gas == 0 {
		return
	}
	if hooks != nil && hooks.OnGasChange != nil && reason != tracing.GasChangeIgnored {
		hooks.OnGasChange(c.Gas, c.Gas+gas, reason)
	}
	c.Gas += gas
}

// Address returns the contract's address.
func (c *Contract) Address() common.Address {
	return c.self
}

// CallValue returns the contract's value (sent to it from its caller).
func (c *Contract) CallValue() *uint256.Int {
	return c.value
}

// CallInput returns the input data this contract was called with.
func (c *Contract) CallInput() []byte {
	return c.Input
}
