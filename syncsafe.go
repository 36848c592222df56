// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import "io"

// decodeSyncsafe decodes a 28-bit syncsafe integer (four bytes, 7
// significant bits each, MSB of every byte clear) as used by the ID3v2 tag
// size field (all versions) and ID3v2.4 frame sizes. Grounded on the
// teacher's get7BitChunkedInt (util.go/id3v2.go).
func decodeSyncsafe(b []byte) uint32 {
	var n uint32
	for _, x := range b {
		n = n<<7 | uint32(x)
	}
	return n
}

// encodeSyncsafe is the inverse of decodeSyncsafe, grounded on
// pytag/utils.py's encode_bitwise_int: n must fit in 28 bits.
func encodeSyncsafe(n uint32) [4]byte {
	const mask = 0x7F
	return [4]byte{
		byte((n >> 21) & mask),
		byte((n >> 14) & mask),
		byte((n >> 7) & mask),
		byte(n & mask),
	}
}

func readSyncsafe(r io.Reader, n int) (uint32, error) {
	b, err := readBytes(r, n)
	if err != nil {
		return 0, err
	}
	return decodeSyncsafe(b), nil
}
