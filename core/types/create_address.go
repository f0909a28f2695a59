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
	"github.com/nephilatech/nephila/crypto"
	"github.com/nephilatech/nephila/rlp"
)

// CreateAddress derives the address of an account created by `a` at the
// given nonce: keccak256(rlp([a, nonce]))[12:].
func CreateAddress(a common.Address, nonce uint64) common.Address {
	listLen := 21 + rlp.U64Len(nonce)
	data := make([]byte, listLen+1)
	pos := rlp.EncodeListPrefix(listLen, data)
	pos += rlp.EncodeAddress(a[:], data[pos:])
	rlp.EncodeU64(nonce, data[pos:])
	return common.BytesToAddress(crypto.Keccak256(data)[12:])
}

// CreateAddress2 derives the address of an account created by `b` with a
// salted scheme: keccak256(0xff ++ b ++ salt ++ keccak256(init_code))[12:].
func CreateAddress2(b common.Address, salt [32]byte, inithash []byte) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte{0xff}, b.Bytes(), salt[:], inithash)[12:])
}
