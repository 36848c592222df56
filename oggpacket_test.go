// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPacketReaderReadAllSinglePage(t *testing.T) {
	page := packOggPage(1, 0, headerTypeBoS, []byte{5, 3}, []byte("helloabc"))
	r := bytes.NewReader(page)
	p, err := OpenOggPage(r)
	require.NoError(t, err)

	pr := NewPacketReader(r, p)
	first, err := pr.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), first)

	second, err := pr.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), second)
}

func TestPacketReaderReadAllSpansPages(t *testing.T) {
	body1 := bytes.Repeat([]byte{0xAB}, 255)
	body2 := []byte("tail")
	page1 := packOggPage(9, 0, headerTypeBoS, []byte{255}, body1)
	page2 := packOggPage(9, 1, headerTypeContinue, []byte{byte(len(body2))}, body2)
	stream := append(append([]byte{}, page1...), page2...)

	r := bytes.NewReader(stream)
	p, err := OpenOggPage(r)
	require.NoError(t, err)

	pr := NewPacketReader(r, p)
	got, err := pr.ReadAll()
	require.NoError(t, err)
	require.Equal(t, append(append([]byte{}, body1...), body2...), got)
}

func TestPacketReaderReadShortPacket(t *testing.T) {
	page := packOggPage(1, 0, headerTypeBoS, []byte{4}, []byte("abcd"))
	r := bytes.NewReader(page)
	p, err := OpenOggPage(r)
	require.NoError(t, err)

	pr := NewPacketReader(r, p)
	got, err := pr.Read(10)
	require.NoError(t, err)
	require.Equal(t, []byte("abcd"), got)
}
