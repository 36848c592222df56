// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"io"
	"strings"
)

const id3v1Size = 128

// ReadID3v1Tags reads the trailing 128-byte ID3v1 block from r, if present,
// and returns a canonical TagMap containing only the non-empty fields.
// Returns (nil, nil) if no "TAG" block is found at the end of the stream.
//
// The teacher's own id3v1.go was not available to ground this on (only its
// test file survived); rebuilt from pytag/formats.py's
// Mp3Reader._read_id3v1_tags / _remove_padding.
func ReadID3v1Tags(r io.ReadSeeker) (*TagMap, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, wrapErr(KindIO, "seeking to end", err)
	}
	if size < id3v1Size {
		return nil, nil
	}
	if _, err := r.Seek(-id3v1Size, io.SeekEnd); err != nil {
		return nil, wrapErr(KindIO, "seeking to id3v1 block", err)
	}

	block, err := readBytes(r, id3v1Size)
	if err != nil {
		return nil, err
	}
	if string(block[:3]) != "TAG" {
		return nil, nil
	}

	m := NewCanonicalTagMap()

	title := id3v1Field(block[3:33])
	if title != "" {
		m.Set("title", title)
	}
	artist := id3v1Field(block[33:63])
	if artist != "" {
		m.Set("artist", artist)
	}
	album := id3v1Field(block[63:93])
	if album != "" {
		m.Set("album", album)
	}
	year := id3v1Field(block[93:97])
	if year != "" {
		m.Set("date", year)
	}

	// ID3v1.1: a zero byte at comment[28] followed by a non-zero track
	// number byte at comment[29] means this is a track number, not part of
	// the comment text.
	comment := block[97:127]
	track := int(comment[29])
	if comment[28] == 0 && track != 0 {
		c := id3v1Field(comment[:28])
		if c != "" {
			m.Set("comment", c)
		}
		m.Set("tracknumber", track)
	} else {
		c := id3v1Field(comment)
		if c != "" {
			m.Set("comment", c)
		}
	}

	if name, ok := genreByCode(int(block[127])); ok {
		m.Set("genre", name)
	}

	return m, nil
}

// id3v1Field trims trailing NUL padding and surrounding whitespace from a
// fixed-width ID3v1 text field (pytag's _remove_padding).
func id3v1Field(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
