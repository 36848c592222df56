// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"io"
	"os"
	"path/filepath"
)

// id3v2FieldFrames maps each canonical field this package writes to the
// ID3v2.4 frame ID that carries it.
var id3v2FieldFrames = map[string]string{
	"title": "TIT2", "artist": "TPE1", "album": "TALB", "albumartist": "TPE2",
	"date": "TDRC", "genre": "TCON", "comment": "COMM", "composer": "TCOM",
	"performer": "TPE3", "lyrics": "USLT", "copyright": "TCOP",
	"encodedby": "TENC", "organization": "TPUB", "description": "TIT3",
	"website": "WOAR", "isrc": "TSRC",
}

// WriteID3v2Tags rewrites the file at path with a single ID3v2.4 tag built
// from tags, discarding any existing ID3v2 header and the trailing 128-byte
// ID3v1 block if present, and writes via a sibling temp file plus atomic
// rename.
//
// Grounded on pytag/formats.py's Mp3._write_id3v2_tags (always writes v2.4,
// one frame per present canonical field) combined with the frame-header
// layout of id3v2reader.go.
func WriteID3v2Tags(path string, tags *TagMap) (err error) {
	src, err := os.Open(path)
	if err != nil {
		return wrapErr(KindIO, "opening source", err)
	}
	defer src.Close()

	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return wrapErr(KindIO, "seeking to end", err)
	}

	start := int64(0)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return wrapErr(KindIO, "seeking to start", err)
	}
	if h, err := readID3v2Header(src); err == nil {
		start = 10 + int64(h.Size)
	}

	end := size
	if size-start >= id3v1Size {
		if _, err := src.Seek(-id3v1Size, io.SeekEnd); err != nil {
			return wrapErr(KindIO, "seeking to possible id3v1 block", err)
		}
		tail, err := readBytes(src, 3)
		if err != nil {
			return err
		}
		if string(tail) == "TAG" {
			end = size - id3v1Size
		}
	}

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return wrapErr(KindIO, "seeking past existing tag", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".oggid3-*.tmp")
	if err != nil {
		return wrapErr(KindIO, "creating temp file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(buildID3v2Tag(tags)); err != nil {
		return wrapErr(KindIO, "writing new tag", err)
	}
	if _, err = io.CopyN(tmp, src, end-start); err != nil {
		return wrapErr(KindIO, "copying audio payload", err)
	}

	if err = tmp.Close(); err != nil {
		return wrapErr(KindIO, "closing temp file", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return wrapErr(KindIO, "renaming temp file into place", err)
	}
	return nil
}

// buildID3v2Tag serializes tags as a complete ID3v2.4 tag: header plus one
// UTF-8 text frame per present canonical field. Frame order follows Go map
// iteration and is not fixed, except that TRCK and TPOS come last. If tags
// carries no frame-bearing fields, it returns no bytes at all rather than
// an empty (size-0) tag block.
func buildID3v2Tag(tags *TagMap) []byte {
	var frames []byte
	for field, frameID := range id3v2FieldFrames {
		if field == "tracknumber" || field == "discnumber" {
			continue // handled below, paired with their *total field
		}
		v, ok := tags.Get(field)
		if !ok {
			continue
		}
		text := stringifyTagValue(v)
		if text == "" {
			continue
		}
		frames = append(frames, buildTextFrame(frameID, text)...)
	}

	if text, ok := numberPairText(tags, "tracknumber", "tracktotal"); ok {
		frames = append(frames, buildTextFrame("TRCK", text)...)
	}
	if text, ok := numberPairText(tags, "discnumber", "disctotal"); ok {
		frames = append(frames, buildTextFrame("TPOS", text)...)
	}

	if len(frames) == 0 {
		return nil
	}

	header := make([]byte, 10)
	copy(header, "ID3")
	header[3] = 4 // major version
	header[4] = 0 // revision
	header[5] = 0 // flags
	sz := encodeSyncsafe(uint32(len(frames)))
	copy(header[6:10], sz[:])

	return append(header, frames...)
}

// numberPairText renders a TRCK/TPOS-style "n" or "n/total" frame value
// from the canonical numberField/totalField pair.
func numberPairText(tags *TagMap, numberField, totalField string) (string, bool) {
	v, ok := tags.Get(numberField)
	if !ok {
		return "", false
	}
	text := stringifyTagValue(v)
	if text == "" {
		return "", false
	}
	if t, ok := tags.Get(totalField); ok {
		if ts := stringifyTagValue(t); ts != "" {
			return text + "/" + ts, true
		}
	}
	return text, true
}

func buildTextFrame(frameID, text string) []byte {
	body := make([]byte, 0, len(text)+1)
	body = append(body, 0x03) // UTF-8
	body = append(body, text...)

	header := make([]byte, 10)
	copy(header, frameID)
	sz := encodeSyncsafe(uint32(len(body)))
	copy(header[4:8], sz[:])
	// header[8:10] frame flags left zero

	return append(header, body...)
}
