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
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/nephilatech/nephila/common"
	"github.com/nephilatech/nephila/core/types"
)

// SubState accumulates the observable side effects of one execution branch:
// emitted logs, accounts marked for destruction, touched accounts and the
// gas refund counter. A frame's sub-state merges into its parent only when
// the frame completes without reverting; on failure it is dropped whole.
type SubState struct {
	Logs      []*types.Log
	Destructs mapset.Set[common.Address]
	Touched   mapset.Set[common.Address]
	Refund    uint64
}

// NewSubState returns an empty sub-state.
func NewSubState() *SubState {
	return &SubState{
		Destructs: mapset.NewSet[common.Address](),
		Touched:   mapset.NewSet[common.Address](),
	}
}

// AddLog appends a log emitted by the current frame.
func (s *SubState) AddLog(l *types.Log) {
	s.Logs = append(s.Logs, l)
}

// MarkDestruct marks the account for destruction at the end of the
// transaction.
func (s *SubState) MarkDestruct(addr common.Address) {
	s.Destructs.Add(addr)
}

// Touch records that the account took part in value transfer or execution.
func (s *SubState) Touch(addr common.Address) {
	s.Touched.Add(addr)
}

// AddRefund adds gas to the refund counter.
func (s *SubState) AddRefund(gas uint64) {
	s.Refund += gas
}

// Accrue merges a completed child frame's sub-state into s. The child must
// not be used afterwards.
func (s *SubState) Accrue(child *SubState) {
	s.Logs = append(s.Logs, child.Logs...)
	s.Destructs = s.Destructs.Union(child.Destructs)
	s.Touched = s.Touched.Union(child.Touched)
	s.Refund += child.Refund
}
