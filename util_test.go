// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBit(t *testing.T) {
	for i := uint(0); i < 8; i++ {
		b := byte(1 << i)
		require.True(t, getBit(b, i), "getBit(%v, %v)", b, i)
	}
}

func TestBigEndianUint(t *testing.T) {
	tests := []struct {
		input  []byte
		output uint32
	}{
		{[]byte{}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0xF1, 0xF2}, 0xF1F2},
		{[]byte{0xF1, 0xF2, 0xF3}, 0xF1F2F3},
		{[]byte{0xF1, 0xF2, 0xF3, 0xF4}, 0xF1F2F3F4},
	}

	for ii, tt := range tests {
		got := bigEndianUint(tt.input)
		require.Equal(t, tt.output, got, "case %d", ii)
	}
}

func TestReadBytesShort(t *testing.T) {
	r := bytes.NewReader([]byte{0x01, 0x02})
	_, err := readBytes(r, 4)
	require.Error(t, err)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, KindUnexpectedEOF, fe.Kind)
}
