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

package types

import (
	"github.com/nephilatech/nephila/common"
)

// Log represents a log entry emitted by contract code. Logs accumulate in
// the per-frame sub-state and only become part of the transaction record
// when the frame that emitted them completes without reverting.
type Log struct {
	// Address of the contract that generated the event.
	Address common.Address
	// Topics the event is indexed under.
	Topics []common.Hash
	// Data is the unindexed payload of the event.
	Data []byte
}

// Copy returns a deep copy of the log.
func (l *Log) Copy() *Log {
	topics := make([]common.Hash, len(l.Topics))
	copy(topics, l.Topics)
	return &Log{
		Address: l.Address,
		Topics:  topics,
		Data:    common.CopyBytes(l.Data),
	}
}
