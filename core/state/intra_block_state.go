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

// Package state implements the in-memory account store the engine mutates
// while executing a transaction. Mutations are journaled so a caller can
// take a snapshot before a nested frame and revert to it if the frame
// fails.
package state

import (
	"github.com/holiman/uint256"

	"github.com/nephilatech/nephila/common"
	"github.com/nephilatech/nephila/crypto"
)

var emptyCodeHash = crypto.Keccak256Hash(nil)

type stateObject struct {
	balance  uint256.Int
	nonce    uint64
	code     []byte
	codeHash common.Hash
	storage  map[common.Hash]uint256.Int
}

func newStateObject() *stateObject {
	return &stateObject{
		codeHash: emptyCodeHash,
		storage:  make(map[common.Hash]uint256.Int),
	}
}

// IntraBlockState holds the account state visible to one transaction.
// It is not safe for concurrent use.
type IntraBlockState struct {
	accounts map[common.Address]*stateObject
	journal  journal
}

// New creates an empty state.
func New() *IntraBlockState {
	return &IntraBlockState{
		accounts: make(map[common.Address]*stateObject),
	}
}

func (sdb *IntraBlockState) getStateObject(addr common.Address) *stateObject {
	return sdb.accounts[addr]
}

func (sdb *IntraBlockState) getOrNewStateObject(addr common.Address) *stateObject {
	so := sdb.accounts[addr]
	if so == nil {
		so = newStateObject()
		sdb.journal.append(createObjectChange{account: addr, prev: nil})
		sdb.accounts[addr] = so
	}
	return so
}

// Exist reports whether the given account exists in state.
func (sdb *IntraBlockState) Exist(addr common.Address) bool {
	return sdb.getStateObject(addr) != nil
}

// CreateAccount explicitly creates a state object, replacing any code and
// storage an existing account at the address had. The balance carries over
// so funds sent to an address before its creation are not lost.
func (sdb *IntraBlockState) CreateAccount(addr common.Address, contractCreation bool) {
	prev := sdb.getStateObject(addr)
	sdb.journal.append(createObjectChange{account: addr, prev: prev})
	so := newStateObject()
	if prev != nil {
		so.balance = prev.balance
	}
	sdb.accounts[addr] = so
}

// GetBalance retrieves the balance from the given address or 0 if the
// account does not exist. The returned value must not be modified.
func (sdb *IntraBlockState) GetBalance(addr common.Address) *uint256.Int {
	if so := sdb.getStateObject(addr); so != nil {
		return &so.balance
	}
	return new(uint256.Int)
}

// AddBalance adds amount to the account associated with addr.
func (sdb *IntraBlockState) AddBalance(addr common.Address, amount *uint256.Int) {
	so := sdb.getOrNewStateObject(addr)
	sdb.journal.append(balanceChange{account: addr, prev: so.balance})
	so.balance.Add(&so.balance, amount)
}

// SubBalance subtracts amount from the account associated with addr.
func (sdb *IntraBlockState) SubBalance(addr common.Address, amount *uint256.Int) {
	so := sdb.getOrNewStateObject(addr)
	sdb.journal.append(balanceChange{account: addr, prev: so.balance})
	so.balance.Sub(&so.balance, amount)
}

// GetNonce retrieves the nonce from the given address or 0 if the account
// does not exist.
func (sdb *IntraBlockState) GetNonce(addr common.Address) uint64 {
	if so := sdb.getStateObject(addr); so != nil {
		return so.nonce
	}
	return 0
}

// SetNonce sets the nonce of the account associated with addr.
func (sdb *IntraBlockState) SetNonce(addr common.Address, nonce uint64) {
	so := sdb.getOrNewStateObject(addr)
	sdb.journal.append(nonceChange{account: addr, prev: so.nonce})
	so.nonce = nonce
}

// GetCode retrieves the code of the account associated with addr.
func (sdb *IntraBlockState) GetCode(addr common.Address) []byte {
	if so := sdb.getStateObject(addr); so != nil {
		return so.code
	}
	return nil
}

// SetCode stores code under addr and records its hash.
func (sdb *IntraBlockState) SetCode(addr common.Address, code []byte) {
	so := sdb.getOrNewStateObject(addr)
	sdb.journal.append(codeChange{account: addr, prevCode: so.code, prevHash: so.codeHash})
	so.code = code
	so.codeHash = crypto.Keccak256Hash(code)
}

// GetCodeSize retrieves the length of the code of the account associated
// with addr.
func (sdb *IntraBlockState) GetCodeSize(addr common.Address) int {
	if so := sdb.getStateObject(addr); so != nil {
		return len(so.code)
	}
	return 0
}

// GetCodeHash retrieves the code hash of the account associated with addr,
// or the zero hash if the account does not exist.
func (sdb *IntraBlockState) GetCodeHash(addr common.Address) common.Hash {
	if so := sdb.getStateObject(addr); so != nil {
		return so.codeHash
	}
	return common.Hash{}
}

// GetState retrieves the value stored under key in the storage of addr.
func (sdb *IntraBlockState) GetState(addr common.Address, key common.Hash, value *uint256.Int) {
	if so := sdb.getStateObject(addr); so != nil {
		v := so.storage[key]
		value.Set(&v)
		return
	}
	value.Clear()
}

// SetState stores value under key in the storage of addr.
func (sdb *IntraBlockState) SetState(addr common.Address, key common.Hash, value *uint256.Int) {
	so := sdb.getOrNewStateObject(addr)
	sdb.journal.append(storageChange{account: addr, key: key, prev: so.storage[key]})
	if value.IsZero() {
		delete(so.storage, key)
	} else {
		so.storage[key] = *value
	}
}

// Snapshot returns an identifier for the current revision of the state.
func (sdb *IntraBlockState) Snapshot() int {
	return sdb.journal.length()
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (sdb *IntraBlockState) RevertToSnapshot(revid int) {
	sdb.journal.revert(sdb, revid)
}
