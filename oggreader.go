// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"bytes"
	"io"
)

var opusIDSignature = []byte("OpusHead")

// ReadOggTags reads the comment packet of an Ogg/Vorbis or Ogg/Opus
// logical bitstream. The identification packet (always alone on page 0)
// is inspected to tell the two codecs apart, since their Vorbis Comment
// framing differs only in the comment-packet signature and the presence
// of a trailing framing bit.
func ReadOggTags(r io.ReadSeeker) (*TagMap, error) {
	page, err := OpenOggPage(r)
	if err != nil {
		return nil, err
	}

	pr := NewPacketReader(r, page)

	idPacket, err := pr.ReadAll()
	if err != nil {
		return nil, err
	}

	var signatureLen int
	switch {
	case len(idPacket) >= 7 && idPacket[0] == 0x01 && bytes.Equal(idPacket[1:7], []byte("vorbis")):
		signatureLen = len(vorbisSignature)
	case len(idPacket) >= 8 && bytes.Equal(idPacket[:8], opusIDSignature):
		signatureLen = len(opusSignature)
	default:
		return nil, newErr(KindMalformedStream, "unrecognized ogg identification packet")
	}

	commentPacket, err := pr.ReadAll()
	if err != nil {
		return nil, err
	}
	return ParseVorbisComment(commentPacket, signatureLen)
}
