// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"io"
	"strconv"
	"strings"
)

// id3v2Header is the fixed 10-byte ID3v2 tag header. Size is the
// syncsafe-decoded frame-data size, not counting the header itself.
type id3v2Header struct {
	Version           byte // 2, 3 or 4
	Unsynchronisation bool
	Size              int
}

func readID3v2Header(r io.Reader) (*id3v2Header, error) {
	b, err := readBytes(r, 10)
	if err != nil {
		return nil, err
	}
	if string(b[0:3]) != "ID3" {
		return nil, newErr(KindMalformedStream, "missing ID3 identifier")
	}

	major := b[3]
	if major != 2 && major != 3 && major != 4 {
		return nil, newErr(KindUnsupportedVersion, "unsupported ID3v2 major version "+strconv.Itoa(int(major)))
	}

	return &id3v2Header{
		Version:           major,
		Unsynchronisation: getBit(b[5], 7),
		Size:              int(decodeSyncsafe(b[6:10])),
	}, nil
}

// readFrameHeader reads one frame header, whose layout depends on the tag's
// major version.
func readFrameHeader(r io.Reader, version byte) (name string, size, headerSize int, err error) {
	switch version {
	case 2:
		nb, e := readBytes(r, 3)
		if e != nil {
			return "", 0, 0, e
		}
		sb, e := readBytes(r, 3)
		if e != nil {
			return "", 0, 0, e
		}
		return string(nb), int(bigEndianUint(sb)), 6, nil

	case 3:
		nb, e := readBytes(r, 4)
		if e != nil {
			return "", 0, 0, e
		}
		sb, e := readBytes(r, 4)
		if e != nil {
			return "", 0, 0, e
		}
		if _, e := readBytes(r, 2); e != nil { // frame flags, not interpreted
			return "", 0, 0, e
		}
		return string(nb), int(bigEndianUint(sb)), 10, nil

	default: // 4
		nb, e := readBytes(r, 4)
		if e != nil {
			return "", 0, 0, e
		}
		size, e := readSyncsafe(r, 4)
		if e != nil {
			return "", 0, 0, e
		}
		if _, e := readBytes(r, 2); e != nil {
			return "", 0, 0, e
		}
		return string(nb), int(size), 10, nil
	}
}

// id3v2FrameFields maps each supported version's frame IDs to the canonical
// field they populate. Only the frame IDs listed here are mapped;
// everything else is skipped on read.
var id3v2FrameFields = map[byte]map[string]string{
	2: {
		"TT2": "title", "TP1": "artist", "TAL": "album", "TP2": "albumartist",
		"TYE": "date", "TRK": "tracknumber", "TPA": "discnumber", "TCO": "genre",
		"COM": "comment", "TCM": "composer", "TP3": "performer", "ULT": "lyrics",
		"TCR": "copyright", "TEN": "encodedby", "TPB": "organization",
		"TT3": "description", "WAR": "website", "TRC": "isrc",
	},
	3: {
		"TIT2": "title", "TPE1": "artist", "TALB": "album", "TPE2": "albumartist",
		"TYER": "date", "TRCK": "tracknumber", "TPOS": "discnumber", "TCON": "genre",
		"COMM": "comment", "TCOM": "composer", "TPE3": "performer", "USLT": "lyrics",
		"TCOP": "copyright", "TENC": "encodedby", "TPUB": "organization",
		"TIT3": "description", "WOAR": "website", "TSRC": "isrc",
	},
	4: {
		"TIT2": "title", "TPE1": "artist", "TALB": "album", "TPE2": "albumartist",
		"TDRC": "date", "TRCK": "tracknumber", "TPOS": "discnumber", "TCON": "genre",
		"COMM": "comment", "TCOM": "composer", "TPE3": "performer", "USLT": "lyrics",
		"TCOP": "copyright", "TENC": "encodedby", "TPUB": "organization",
		"TIT3": "description", "WOAR": "website", "TSRC": "isrc",
	},
}

// unsynchroniser strips the 0x00 byte ID3v2 inserts after every 0xFF byte
// when the tag's unsynchronisation flag is set, so a decoder never mistakes
// tag data for an MPEG frame sync.
type unsynchroniser struct {
	io.Reader
	ff bool
}

func (u *unsynchroniser) Read(p []byte) (int, error) {
	b := make([]byte, 1)
	i := 0
	for i < len(p) {
		n, err := u.Reader.Read(b)
		if err != nil || n == 0 {
			return i, err
		}
		if u.ff && b[0] == 0x00 {
			u.ff = false
			continue
		}
		p[i] = b[0]
		i++
		u.ff = b[0] == 0xFF
	}
	return i, nil
}

// ReadID3v2Tags parses an ID3v2.{2,3,4} tag at the current start of r into a
// canonical TagMap. Unrecognized and non-text frames (e.g. attached
// pictures) are skipped; this package carries no picture-tag support.
func ReadID3v2Tags(r io.ReadSeeker) (*TagMap, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, wrapErr(KindIO, "seeking to start", err)
	}

	h, err := readID3v2Header(r)
	if err != nil {
		return nil, err
	}

	var src io.Reader = r
	if h.Unsynchronisation {
		src = &unsynchroniser{Reader: r}
	}

	fields := id3v2FrameFields[h.Version]
	m := NewCanonicalTagMap()

	offset := 0
	for offset < h.Size {
		name, size, headerSize, err := readFrameHeader(src, h.Version)
		if err != nil {
			return nil, err
		}
		offset += headerSize

		if size == 0 || strings.TrimSpace(name) == "" {
			// Padding: the remainder of the tag is zero bytes.
			break
		}

		body, err := readBytes(src, size)
		if err != nil {
			return nil, err
		}
		offset += size

		field, ok := fields[name]
		if !ok {
			continue
		}
		if err := applyID3v2Frame(m, field, body, h.Version); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// applyID3v2Frame decodes a text frame's body (encoding byte + encoded
// bytes) and stores it under field, special-casing genre expansion and the
// "n/total" convention used by TRCK/TPOS. version is the tag's major
// version: in v2.4, TCON is left as opaque text even if it starts with "(",
// since v2.4 dropped the parenthesized-code convention.
func applyID3v2Frame(m *TagMap, field string, body []byte, version byte) error {
	if len(body) == 0 {
		return nil
	}
	text, err := decodeText(body[0], body[1:])
	if err != nil {
		return wrapErr(KindMalformedStream, "decoding frame text", err)
	}
	text = strings.Trim(text, "\x00")
	if text == "" {
		return nil
	}

	switch field {
	case "genre":
		if version == 4 {
			m.Set("genre", text)
		} else {
			m.Set("genre", decodeID3v2Genre(text))
		}
	case "tracknumber":
		setNumberPair(m, "tracknumber", "tracktotal", text)
	case "discnumber":
		setNumberPair(m, "discnumber", "disctotal", text)
	default:
		m.Set(field, text)
	}
	return nil
}

// setNumberPair splits a "n" or "n/total" frame value (TRCK, TPOS) into its
// two canonical integer fields.
func setNumberPair(m *TagMap, numberField, totalField, text string) {
	parts := strings.SplitN(text, "/", 2)
	if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
		m.Set(numberField, n)
	} else {
		m.Set(numberField, strings.TrimSpace(parts[0]))
	}
	if len(parts) == 2 {
		if t, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			m.Set(totalField, t)
		}
	}
}
