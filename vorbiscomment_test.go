// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildThenParseVorbisComment(t *testing.T) {
	tags := NewTagMap()
	tags.Set("title", "Test Title")
	tags.Set("artist", "Test Artist")

	packet := BuildVorbisComment(tags, vorbisSignature, true)
	require.Equal(t, byte(vorbisFramingBit), packet[len(packet)-1])

	parsed, err := ParseVorbisComment(packet, len(vorbisSignature))
	require.NoError(t, err)

	title, _ := parsed.Get("title")
	require.Equal(t, "Test Title", title)
	artist, _ := parsed.Get("artist")
	require.Equal(t, "Test Artist", artist)
}

func TestBuildVorbisCommentNoFramingBitForOpus(t *testing.T) {
	tags := NewTagMap()
	tags.Set("title", "Opus Track")

	packet := BuildVorbisComment(tags, opusSignature, false)
	require.Equal(t, opusSignature, packet[:len(opusSignature)])

	parsed, err := ParseVorbisComment(packet, len(opusSignature))
	require.NoError(t, err)
	title, _ := parsed.Get("title")
	require.Equal(t, "Opus Track", title)
}

func TestParseVorbisCommentSkipsMalformedEntries(t *testing.T) {
	entries := []string{"title=Good", "no-equals-sign", "\xff\xfe=not utf-8"}

	packet := append([]byte{}, vorbisSignature...)
	packet = binary.LittleEndian.AppendUint32(packet, uint32(len(vendorName)))
	packet = append(packet, vendorName...)
	packet = binary.LittleEndian.AppendUint32(packet, uint32(len(entries)))
	for _, e := range entries {
		packet = binary.LittleEndian.AppendUint32(packet, uint32(len(e)))
		packet = append(packet, e...)
	}
	packet = append(packet, vorbisFramingBit)

	parsed, err := ParseVorbisComment(packet, len(vorbisSignature))
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Len())
	title, _ := parsed.Get("title")
	require.Equal(t, "Good", title)
}
