// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import "sync"

// crcPoly is the reversed IEEE polynomial, as used by ZIP and PNG.
const crcPoly = 0xEDB88320

var (
	crcOnce  sync.Once
	crcTable *[256]uint32
)

func makeCRCTable() *[256]uint32 {
	var t [256]uint32
	for i := range t {
		c := uint32(i)
		for range 8 {
			if c&1 != 0 {
				c = crcPoly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return &t
}

// CRC32 returns the IEEE CRC-32 checksum of b.
func CRC32(b []byte) uint32 {
	crcOnce.Do(func() { crcTable = makeCRCTable() })
	crc := ^uint32(0)
	for _, c := range b {
		crc = crcTable[byte(crc)^c] ^ (crc >> 8)
	}
	return ^crc
}
