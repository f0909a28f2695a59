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

package state

import (
	"github.com/holiman/uint256"

	"github.com/nephilatech/nephila/common"
)

// journalEntry is a modification to the state that can be reverted.
type journalEntry interface {
	revert(*IntraBlockState)
}

// journal records state modifications in application order so a prefix can
// be kept and a suffix undone.
type journal struct {
	entries []journalEntry
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

func (j *journal) length() int {
	return len(j.entries)
}

// revert undoes all entries after the given revision, newest first.
func (j *journal) revert(sdb *IntraBlockState, revid int) {
	for i := len(j.entries) - 1; i >= revid; i-- {
		j.entries[i].revert(sdb)
	}
	j.entries = j.entries[:revid]
}

type createObjectChange struct {
	account common.Address
	prev    *stateObject
}

func (ch createObjectChange) revert(sdb *IntraBlockState) {
	if ch.prev == nil {
		delete(sdb.accounts, ch.account)
	} else {
		sdb.accounts[ch.account] = ch.prev
	}
}

type balanceChange struct {
	account common.Address
	prev    uint256.Int
}

func (ch balanceChange) revert(sdb *IntraBlockState) {
	sdb.accounts[ch.account].balance = ch.prev
}

type nonceChange struct {
	account common.Address
	prev    uint64
}

func (ch nonceChange) revert(sdb *IntraBlockState) {
	sdb.accounts[ch.account].nonce = ch.prev
}

type codeChange struct {
	account  common.Address
	prevCode []byte
	prevHash common.Hash
}

func (ch codeChange) revert(sdb *IntraBlockState) {
	so := sdb.accounts[ch.account]
	so.code = ch.prevCode
	so.codeHash = ch.prevHash
}

type storageChange struct {
	account common.Address
	key     common.Hash
	prev    uint256.Int
}

func (ch storageChange) revert(sdb *IntraBlockState) {
	so := sdb.accounts[ch.account]
	if ch.prev.IsZero() {
		delete(so.storage, ch.key)
	} else {
		so.storage[ch.key] = ch.prev
	}
}
