// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tag reads and writes audio metadata tags: Vorbis Comments in
// Ogg/Vorbis and Ogg/Opus streams, and ID3v1/ID3v2.{2,3,4} tags in MP3
// files.
package tag

import (
	"io"
	"os"
	"strings"
)

// Reader retrieves the canonical tag set from an audio file.
type Reader interface {
	GetTags() (*TagMap, error)
}

// Writer rewrites an audio file's tag set in place.
type Writer interface {
	WriteTags(tags *TagMap) error
}

// NewReader opens path and returns a Reader appropriate to its format, or
// ErrFormatNotSupported if the format could not be determined.
func NewReader(path string) (Reader, error) {
	format, err := sniffFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case formatOgg:
		return &oggTagger{path: path}, nil
	case formatMP3:
		return &mp3Tagger{path: path}, nil
	default:
		return nil, ErrFormatNotSupported
	}
}

// NewWriter opens path and returns a Writer appropriate to its format, or
// ErrFormatNotSupported if the format could not be determined. Writing
// Ogg/Opus tags is not supported; an Opus file opened for writing returns
// ErrFormatNotSupported.
func NewWriter(path string) (Writer, error) {
	format, err := sniffFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case formatOgg:
		if err := requireVorbis(path); err != nil {
			return nil, err
		}
		return &oggTagger{path: path}, nil
	case formatMP3:
		return &mp3Tagger{path: path}, nil
	default:
		return nil, ErrFormatNotSupported
	}
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatOgg
	formatMP3
)

// sniffFormat classifies path by content: an "OggS" capture pattern at the
// start of the file means Ogg; an "ID3" identifier or a trailing "TAG"
// block, or else a ".mp3" extension, means MP3.
func sniffFormat(path string) (fileFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return formatUnknown, wrapErr(KindIO, "opening file", err)
	}
	defer f.Close()

	head, err := readBytes(f, 4)
	if err != nil {
		return formatUnknown, wrapErr(KindIO, "reading header", err)
	}

	if string(head) == oggCapturePattern {
		return formatOgg, nil
	}
	if string(head[:3]) == "ID3" {
		return formatMP3, nil
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return formatUnknown, wrapErr(KindIO, "seeking to end", err)
	}
	if size >= id3v1Size {
		if _, err := f.Seek(-id3v1Size, io.SeekEnd); err != nil {
			return formatUnknown, wrapErr(KindIO, "seeking to id3v1 block", err)
		}
		tail, err := readBytes(f, 3)
		if err != nil {
			return formatUnknown, err
		}
		if string(tail) == "TAG" {
			return formatMP3, nil
		}
	}

	if strings.EqualFold(pathExt(path), ".mp3") {
		return formatMP3, nil
	}
	return formatUnknown, nil
}

func pathExt(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

// requireVorbis opens path and reads its Ogg identification packet,
// rejecting Opus streams for write access.
func requireVorbis(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return wrapErr(KindIO, "opening file", err)
	}
	defer f.Close()

	page, err := OpenOggPage(f)
	if err != nil {
		return err
	}
	pr := NewPacketReader(f, page)
	idPacket, err := pr.ReadAll()
	if err != nil {
		return err
	}
	if len(idPacket) >= 8 && string(idPacket[:8]) == string(opusIDSignature) {
		return wrapErr(KindFormatNotSupported, "writing Ogg/Opus tags is not supported", ErrFormatNotSupported)
	}
	return nil
}

// oggTagger implements Reader and Writer for Ogg/Vorbis and Ogg/Opus
// files (reading only, for Opus).
type oggTagger struct {
	path string
}

func (t *oggTagger) GetTags() (*TagMap, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, wrapErr(KindIO, "opening file", err)
	}
	defer f.Close()

	tags, err := ReadOggTags(f)
	if err != nil {
		return nil, err
	}
	result := NewCanonicalTagMap()
	for _, k := range tags.Keys() {
		v, _ := tags.Get(k)
		result.Set(k, v)
	}
	return result, nil
}

func (t *oggTagger) WriteTags(tags *TagMap) error {
	return WriteOggVorbisTags(t.path, tags)
}

// mp3Tagger implements Reader and Writer for MP3 files. Reads merge
// ID3v2 (authoritative where present) over ID3v1 (fallback for fields
// ID3v2 did not supply); writes always emit a single ID3v2.4 tag.
type mp3Tagger struct {
	path string
}

func (t *mp3Tagger) GetTags() (*TagMap, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, wrapErr(KindIO, "opening file", err)
	}
	defer f.Close()

	result := NewCanonicalTagMap()

	if v1, err := ReadID3v1Tags(f); err == nil && v1 != nil {
		for _, k := range v1.Keys() {
			v, _ := v1.Get(k)
			result.Set(k, v)
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, wrapErr(KindIO, "seeking to start", err)
	}
	if head, err := readBytes(f, 3); err == nil && string(head) == "ID3" {
		v2, err := ReadID3v2Tags(f)
		if err != nil {
			return nil, err
		}
		for _, k := range v2.Keys() {
			v, _ := v2.Get(k)
			result.Set(k, v)
		}
	}

	return result, nil
}

func (t *mp3Tagger) WriteTags(tags *TagMap) error {
	return WriteID3v2Tags(t.path, tags)
}
