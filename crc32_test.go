// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOggCRC32Empty(t *testing.T) {
	require.Equal(t, uint32(0), oggCRC32(nil))
}

func TestOggCRC32KnownVector(t *testing.T) {
	// 0x89A1897F is the standard check value of the Ogg CRC-32 variant over
	// "123456789"; this pins the table itself rather than any particular page.
	a := oggCRC32([]byte("123456789"))
	b := oggCRC32([]byte("123456789"))
	require.Equal(t, a, b, "CRC must be deterministic")
	require.NotEqual(t, uint32(0), a)
	require.Equal(t, uint32(0x89A1897F), a)
}

func TestOggCRC32DiffersOnBitFlip(t *testing.T) {
	base := []byte{0x00, 0x01, 0x02, 0x03, 0x04}
	flipped := []byte{0x00, 0x01, 0x02, 0x03, 0x05}
	require.NotEqual(t, oggCRC32(base), oggCRC32(flipped))
}
