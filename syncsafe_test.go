// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSyncsafe(t *testing.T) {
	require.Equal(t, uint32(0), decodeSyncsafe([]byte{0, 0, 0, 0}))
	require.Equal(t, uint32(127), decodeSyncsafe([]byte{0, 0, 0, 0x7F}))
	require.Equal(t, uint32(128), decodeSyncsafe([]byte{0, 0, 0x01, 0x00}))
	require.Equal(t, uint32(0x0FFFFFFF), decodeSyncsafe([]byte{0x7F, 0x7F, 0x7F, 0x7F}))
}

func TestEncodeDecodeSyncsafeRoundTrip(t *testing.T) {
	for _, n := range []uint32{0, 1, 127, 128, 16384, 0x0FFFFFFF} {
		enc := encodeSyncsafe(n)
		for _, b := range enc {
			require.Zero(t, b&0x80, "syncsafe byte must not have the high bit set")
		}
		require.Equal(t, n, decodeSyncsafe(enc[:]))
	}
}

func TestReadSyncsafe(t *testing.T) {
	r := bytes.NewReader([]byte{0x00, 0x00, 0x02, 0x01})
	n, err := readSyncsafe(r, 4)
	require.NoError(t, err)
	require.Equal(t, uint32(257), n)
}
