// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

// oggCRCTable is a 256-entry lookup table for the CRC-32 variant used by the
// Ogg container: polynomial 0x04C11DB7, MSB-first, no input or output
// reflection, no final XOR, initial register 0. This is the same table
// construction used by pion/webrtc's oggwriter (generateChecksumTable) and
// is independent of (and not to be confused with) the reflected CRC-32 used
// by zlib/IEEE 802.3, which Go's hash/crc32 implements.
var oggCRCTable = buildOggCRCTable()

const oggCRCPolynomial uint32 = 0x04C11DB7

func buildOggCRCTable() [256]uint32 {
	var table [256]uint32
	for i := range table {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = (r << 1) ^ oggCRCPolynomial
			} else {
				r <<= 1
			}
		}
		table[i] = r
	}
	return table
}

// oggCRC32 computes the Ogg-flavored CRC-32 of data, starting from an
// initial register of 0.
func oggCRC32(data []byte) uint32 {
	var reg uint32
	for _, b := range data {
		reg = (reg << 8) ^ oggCRCTable[((reg>>24)&0xFF)^uint32(b)]
	}
	return reg
}
