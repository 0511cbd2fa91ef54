// Copyright (c) 2021-2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"hash/crc64"
	"strconv"
)

const crc64Polynomial = 0x42F0E1EBA9EA3693

var crc64Table = crc64.MakeTable(crc64Polynomial)

// Hashkey is a stable identifier derived from a string, e.g. a bundle path.
type Hashkey uint64

// NewHashkey calculates a hash from the given id.
func NewHashkey(id string) Hashkey {
	return Hashkey(crc64.Checksum([]byte(id), crc64Table))
}

func (k Hashkey) String() string {
	return strconv.FormatUint(uint64(k), 16)
}
