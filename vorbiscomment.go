// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// vendorName is the fixed vendor string this package writes into every
// Vorbis Comment packet it builds. Grounded on
// pytag/codecs.py's VorbisComment.vendor_name (VENDOR_NAME constant).
const vendorName = "oggid3"

var (
	vorbisSignature = []byte{0x03, 'v', 'o', 'r', 'b', 'i', 's'}
	opusSignature   = []byte("OpusTags")
)

const vorbisFramingBit = 0x01

// ParseVorbisComment decodes a Vorbis Comment packet payload. signatureLen
// is 7 for Vorbis ("\x03vorbis"), 8 for Opus ("OpusTags"); the signature
// bytes themselves are skipped, not validated, a tolerant skip-and-go.
func ParseVorbisComment(packet []byte, signatureLen int) (*TagMap, error) {
	r := bytes.NewReader(packet)
	if _, err := readBytes(r, signatureLen); err != nil {
		return nil, err
	}

	vendorLen, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}
	if _, err := readBytes(r, int(vendorLen)); err != nil {
		return nil, err
	}

	count, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}

	m := NewTagMap()
	for i := uint32(0); i < count; i++ {
		length, err := readUint32LE(r)
		if err != nil {
			return nil, err
		}
		b, err := readBytes(r, int(length))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			continue
		}
		kv := strings.SplitN(string(b), "=", 2)
		if len(kv) != 2 {
			continue
		}
		m.Set(kv[0], kv[1])
	}
	return m, nil
}

// BuildVorbisComment serializes tags into a Vorbis Comment packet payload.
// signature selects the codec framing (Vorbis comment-header signature or
// Opus's "OpusTags"); framingBit controls whether the trailing 0x01 byte is
// appended (present for Vorbis, absent for Opus).
//
// Grounded on pytag/codecs.py's VorbisComment.generate_comments: fixed
// vendor string, per-entry u32 length-prefixed "k=v" UTF-8 bytes, keys
// lower-cased on write (TagMap.Keys already normalizes this).
func BuildVorbisComment(tags *TagMap, signature []byte, framingBit bool) []byte {
	keys := tags.Keys()

	buf := make([]byte, 0, 64)
	buf = append(buf, signature...)

	var tmp4 [4]byte
	binary.LittleEndian.PutUint32(tmp4[:], uint32(len(vendorName)))
	buf = append(buf, tmp4[:]...)
	buf = append(buf, vendorName...)

	binary.LittleEndian.PutUint32(tmp4[:], uint32(len(keys)))
	buf = append(buf, tmp4[:]...)

	for _, k := range keys {
		v, _ := tags.Get(k)
		entry := k + "=" + stringifyTagValue(v)
		binary.LittleEndian.PutUint32(tmp4[:], uint32(len(entry)))
		buf = append(buf, tmp4[:]...)
		buf = append(buf, entry...)
	}

	if framingBit {
		buf = append(buf, vorbisFramingBit)
	}
	return buf
}
