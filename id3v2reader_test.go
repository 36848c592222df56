// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildID3v2TagV34 assembles a minimal ID3v2.3 or ID3v2.4 tag (major must be
// 3 or 4) with one UTF-8 text frame per entry in frames, in map iteration
// order (deterministic enough for these single- and dual-frame tests).
func buildID3v2TagV34(major byte, frames map[string]string) []byte {
	var body []byte
	for id, text := range frames {
		frameBody := append([]byte{0x03}, []byte(text)...)
		header := make([]byte, 10)
		copy(header, id)
		if major == 4 {
			sz := encodeSyncsafe(uint32(len(frameBody)))
			copy(header[4:8], sz[:])
		} else {
			binary.BigEndian.PutUint32(header[4:8], uint32(len(frameBody)))
		}
		body = append(body, header...)
		body = append(body, frameBody...)
	}

	tagHeader := make([]byte, 10)
	copy(tagHeader, "ID3")
	tagHeader[3] = major
	sz := encodeSyncsafe(uint32(len(body)))
	copy(tagHeader[6:10], sz[:])
	return append(tagHeader, body...)
}

func TestReadID3v2TagsV3(t *testing.T) {
	data := buildID3v2TagV34(3, map[string]string{
		"TIT2": "Test Title",
		"TPE1": "Test Artist",
		"TCON": "(17)",
	})
	m, err := ReadID3v2Tags(bytes.NewReader(data))
	require.NoError(t, err)

	title, _ := m.Get("title")
	require.Equal(t, "Test Title", title)
	artist, _ := m.Get("artist")
	require.Equal(t, "Test Artist", artist)
	genre, _ := m.Get("genre")
	require.Equal(t, "Rock", genre)
}

func TestReadID3v2TagsV3MultiCodeGenre(t *testing.T) {
	data := buildID3v2TagV34(3, map[string]string{
		"TCON": "(17)(93)",
	})
	m, err := ReadID3v2Tags(bytes.NewReader(data))
	require.NoError(t, err)

	genre, _ := m.Get("genre")
	require.Equal(t, []string{"Rock", "Psychedelic Rock"}, genre)
}

func TestReadID3v2TagsV4GenreNotExpanded(t *testing.T) {
	data := buildID3v2TagV34(4, map[string]string{
		"TCON": "(17)",
	})
	m, err := ReadID3v2Tags(bytes.NewReader(data))
	require.NoError(t, err)

	genre, _ := m.Get("genre")
	require.Equal(t, "(17)", genre)
}

func TestReadID3v2TagsV4TrackPair(t *testing.T) {
	data := buildID3v2TagV34(4, map[string]string{
		"TRCK": "3/12",
		"TPOS": "1",
	})
	m, err := ReadID3v2Tags(bytes.NewReader(data))
	require.NoError(t, err)

	n, _ := m.Get("tracknumber")
	require.Equal(t, 3, n)
	total, _ := m.Get("tracktotal")
	require.Equal(t, 12, total)
	disc, _ := m.Get("discnumber")
	require.Equal(t, 1, disc)
	_, ok := m.Get("disctotal")
	require.False(t, ok)
}

func TestReadID3v2TagsUnsupportedVersion(t *testing.T) {
	data := buildID3v2TagV34(4, map[string]string{"TIT2": "x"})
	data[3] = 5 // major version 5 is unsupported
	_, err := ReadID3v2Tags(bytes.NewReader(data))
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, KindUnsupportedVersion, fe.Kind)
}

func TestReadID3v2TagsV2ThreeCharIDs(t *testing.T) {
	frameBody := append([]byte{0x00}, []byte("Test Title")...)
	frameHeader := make([]byte, 6)
	copy(frameHeader, "TT2")
	frameHeader[3] = 0
	frameHeader[4] = 0
	frameHeader[5] = byte(len(frameBody))

	tagHeader := make([]byte, 10)
	copy(tagHeader, "ID3")
	tagHeader[3] = 2
	sz := encodeSyncsafe(uint32(len(frameHeader) + len(frameBody)))
	copy(tagHeader[6:10], sz[:])

	data := append(tagHeader, frameHeader...)
	data = append(data, frameBody...)

	m, err := ReadID3v2Tags(bytes.NewReader(data))
	require.NoError(t, err)
	title, _ := m.Get("title")
	require.Equal(t, "Test Title", title)
}

func TestUnsynchroniserStripsPaddingByte(t *testing.T) {
	r := bytes.NewReader([]byte{0xFF, 0x00, 0x01, 0x02})
	ur := &unsynchroniser{Reader: r}
	got := make([]byte, 3)
	n, err := ur.Read(got)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0xFF, 0x01, 0x02}, got)
}
