// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"encoding/binary"
	"unicode/utf16"
)

// decodeText decodes an ID3v2 text frame's value according to its encoding
// byte: 0 ISO-8859-1, 1 UTF-16 with a byte-order mark, 2 UTF-16BE, 3 UTF-8.
func decodeText(enc byte, b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	switch enc {
	case 0:
		return decodeISO8859(b), nil
	case 1:
		if len(b) < 2 {
			return "", nil
		}
		return decodeUTF16WithBOM(b)
	case 2:
		if len(b) < 2 {
			return "", nil
		}
		return decodeUTF16(b, binary.BigEndian), nil
	case 3:
		return string(b), nil
	default:
		return "", newErr(KindMalformedStream, "invalid text encoding byte")
	}
}

func decodeISO8859(b []byte) string {
	r := make([]rune, len(b))
	for i, x := range b {
		r[i] = rune(x)
	}
	return string(r)
}

func decodeUTF16WithBOM(b []byte) (string, error) {
	var bo binary.ByteOrder
	switch {
	case b[0] == 0xFE && b[1] == 0xFF:
		bo = binary.BigEndian
	case b[0] == 0xFF && b[1] == 0xFE:
		bo = binary.LittleEndian
	default:
		return "", newErr(KindMalformedStream, "invalid UTF-16 byte order marker")
	}
	return decodeUTF16(b[2:], bo), nil
}

func decodeUTF16(b []byte, bo binary.ByteOrder) string {
	s := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		s = append(s, bo.Uint16(b[i:i+2]))
	}
	return string(utf16.Decode(s))
}
