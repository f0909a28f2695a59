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
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nephilatech/nephila/common"
)

// JumpDestCacheLimit is the default number of analysed code bitmaps kept
// per cache.
const JumpDestCacheLimit = 1024

// bitvec is a bit vector which maps bytes in a program. An unset bit means
// the byte is an opcode, a set bit means it's data (an immediate operand).
type bitvec []byte

func (bits bitvec) set1(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

// codeSegment checks if the position is in a code segment.
func (bits bitvec) codeSegment(pos uint64) bool {
	return ((bits[pos/8] >> (pos % 8)) & 1) == 0
}

// codeBitmap collects data locations in code: the immediates of PUSHn and
// the length byte plus payload of LOG0, CREATE and RETURN.
func codeBitmap(code []byte) bitvec {
	// The bitmap is 4 bytes longer than necessary, in case the code ends
	// with a PUSH32, the algorithm will set bits on the bitvector outside
	// the bounds of the actual code.
	bits := make(bitvec, len(code)/8+1+4)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		pc++
		switch {
		case op.IsPush():
			numbits := uint64(op - PUSH1 + 1)
			for i := uint64(0); i < numbits; i++ {
				bits.set1(pc + i)
			}
			pc += numbits
		case op == LOG0 || op == CREATE || op == RETURN:
			// Length byte plus payload. Payloads run up to 255 bytes, past
			// the bitmap slack, so stay inside the code bounds.
			if pc >= uint64(len(code)) {
				break
			}
			payload := uint64(code[pc])
			bits.set1(pc)
			pc++
			for i := uint64(0); i < payload && pc+i < uint64(len(code)); i++ {
				bits.set1(pc + i)
			}
			pc += payload
		}
	}
	return bits
}

// JumpDestCache caches code analysis across frames keyed by code hash, so
// repeated calls into the same contract skip re-analysis.
type JumpDestCache struct {
	cache *lru.Cache[common.Hash, bitvec]
}

func NewJumpDestCache(limit int) *JumpDestCache {
	c, err := lru.New[common.Hash, bitvec](limit)
	if err != nil {
		panic(err)
	}
	return &JumpDestCache{cache: c}
}

func (c *JumpDestCache) get(hash common.Hash) (bitvec, bool) {
	return c.cache.Get(hash)
}

func (c *JumpDestCache) add(hash common.Hash, b bitvec) {
	c.cache.Add(hash, b)
}
