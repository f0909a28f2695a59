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
	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"

	"github.com/nephilatech/nephila/params"
)

// Recursive frames consume native stack. The cost per frame and the room
// available before any frame opens were measured empirically; once the
// default budget is spent, the remainder of the chain moves to a dedicated
// stack sized for every depth still permitted by the protocol. The offload
// happens at most once per chain.
const (
	singleExecutionStackSize = 16 * datasize.KB
	defaultStackSize         = 8 * datasize.MB
	entryOverhead            = 128 * datasize.KB

	offloadPoint = int((defaultStackSize - entryOverhead) / singleExecutionStackSize)
)

// execute runs fn at the given frame depth, moving to a dedicated stack
// exactly when the depth reaches the offload point. Below and above that
// depth fn runs on whatever stack is already active: the dedicated stack is
// sized to carry the chain all the way to the depth limit.
func execute(depth int, fn func()) {
	if depth == offloadPoint {
		log.Debug("Offloading execution to a dedicated stack", "depth", depth)
		executeOffloaded(fn)
		return
	}
	fn()
}

// executeOffloaded runs fn on a fresh goroutine whose stack is pre-grown to
// hold all remaining permissible frames, and blocks until it finishes. A
// panic raised by fn is captured and re-raised on the calling goroutine
// with its payload intact.
func executeOffloaded(fn func()) {
	reserve := (int(params.CallCreateDepth) - offloadPoint) * int(singleExecutionStackSize)
	var panicked any
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			panicked = recover()
		}()
		growStack(reserve)
		fn()
	}()
	<-done
	if panicked != nil {
		panic(panicked)
	}
}

var stackHold byte

// growStack forces the runtime to grow the goroutine stack to at least n
// bytes up front, so the recursion that follows never pays for incremental
// stack copies.
//
//go:noinline
func growStack(n int) {
	if n <= 0 {
		return
	}
	var pad [4 * 1024]byte
	growStack(n - len(pad))
	stackHold += pad[0]
}
