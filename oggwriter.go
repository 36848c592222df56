// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
)

// vorbisSetupPacketCount is the number of packets that follow the comment
// packet on (or immediately after) its page, for a Vorbis logical
// bitstream: exactly one, the setup header. Opus comment headers carry no
// such third packet, which is why this writer rejects Opus streams via
// requireVorbis before ever reaching here.
const vorbisSetupPacketCount = 1

// WriteOggVorbisTags rewrites the comment packet of the Ogg/Vorbis file at
// path using tags, writing the result to a sibling temp file and then
// atomically renaming it over path.
//
// Grounded directly on pytag/containers.py's Ogg.write_tags/_to_page/
// _write_page; the page-builder accumulate-then-patch-CRC idiom is cross
// checked against pion/webrtc's oggwriter.go page assembly.
func WriteOggVorbisTags(path string, tags *TagMap) (err error) {
	src, err := os.Open(path)
	if err != nil {
		return wrapErr(KindIO, "opening source", err)
	}
	defer src.Close()

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

	if err = rewriteOggVorbis(src, tmp, tags); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return wrapErr(KindIO, "closing temp file", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return wrapErr(KindIO, "renaming temp file into place", err)
	}
	return nil
}

func rewriteOggVorbis(src io.ReadSeeker, dst io.Writer, tags *TagMap) error {
	page, err := OpenOggPage(src)
	if err != nil {
		return err
	}
	serial := page.Serial

	idPageBytes, err := page.Dump(false)
	if err != nil {
		return err
	}
	if _, err := dst.Write(idPageBytes); err != nil {
		return wrapErr(KindIO, "writing id header page", err)
	}

	if err := page.Advance(); err != nil {
		return err
	}

	pr := NewPacketReader(src, page)

	// Discard the existing comment packet.
	if _, err := pr.ReadAll(); err != nil {
		return err
	}

	builder := newOggPageBuilder(serial)

	newComment := BuildVorbisComment(tags, vorbisSignature, true)
	if err := builder.emitPacket(dst, newComment, false); err != nil {
		return err
	}

	for i := 0; i < vorbisSetupPacketCount; i++ {
		setup, err := pr.ReadAll()
		if err != nil {
			return err
		}
		if err := builder.emitPacket(dst, setup, true); err != nil {
			return err
		}
	}

	delta := int64(builder.outputPageNumber) - int64(page.Number)

	if delta == 0 {
		if _, err := io.Copy(dst, src); err != nil {
			return wrapErr(KindIO, "copying remainder of stream", err)
		}
		return nil
	}

	for !page.IsLast() {
		if err := page.Advance(); err != nil {
			return err
		}
		page.Number = uint32(int64(page.Number) + delta)
		b, err := page.Dump(true)
		if err != nil {
			return err
		}
		if _, err := dst.Write(b); err != nil {
			return wrapErr(KindIO, "writing renumbered page", err)
		}
	}
	return nil
}

// oggPageBuilder accumulates packets into fresh output pages, splitting on
// the 255-lacing-value rule and patching each page's CRC once its segment
// table and body are finalized.
type oggPageBuilder struct {
	serial           uint32
	outputPageNumber uint32
	open             bool
	continuation     bool
	segTable         []byte
	body             []byte
}

func newOggPageBuilder(serial uint32) *oggPageBuilder {
	return &oggPageBuilder{serial: serial}
}

func (b *oggPageBuilder) startPage() {
	b.open = true
	b.segTable = b.segTable[:0]
	b.body = b.body[:0]
}

// emitPacket appends packet to the builder's output, flushing pages when a
// segment table fills to 255 entries, and finally flushing if
// forcePageEnd is set (used after the setup-header packet to guarantee the
// audio payload starts on a fresh page).
func (b *oggPageBuilder) emitPacket(w io.Writer, packet []byte, forcePageEnd bool) error {
	for len(packet) > 0 {
		if !b.open {
			b.startPage()
		}
		n := len(packet)
		if n > 255 {
			n = 255
		}
		b.segTable = append(b.segTable, byte(n))
		b.body = append(b.body, packet[:n]...)
		packet = packet[n:]

		if len(b.segTable) == 255 {
			if err := b.flush(w); err != nil {
				return err
			}
			b.continuation = true
		}
	}

	if forcePageEnd && b.open {
		return b.flush(w)
	}
	return nil
}

func (b *oggPageBuilder) flush(w io.Writer) error {
	headerType := byte(0)
	if b.continuation {
		headerType = headerTypeContinue
	}
	b.continuation = false
	b.outputPageNumber++

	buf := make([]byte, 0, oggPageHeaderSize+len(b.segTable)+len(b.body))
	buf = append(buf, oggCapturePattern...)
	buf = append(buf, 0, headerType)
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0) // granule position: headers carry no timestamp

	var tmp4 [4]byte
	binary.LittleEndian.PutUint32(tmp4[:], b.serial)
	buf = append(buf, tmp4[:]...)
	binary.LittleEndian.PutUint32(tmp4[:], b.outputPageNumber)
	buf = append(buf, tmp4[:]...)

	crcOffset := len(buf)
	buf = append(buf, 0, 0, 0, 0) // CRC placeholder

	buf = append(buf, byte(len(b.segTable)))
	buf = append(buf, b.segTable...)
	buf = append(buf, b.body...)

	sum := oggCRC32(buf)
	binary.LittleEndian.PutUint32(buf[crcOffset:crcOffset+4], sum)

	if _, err := w.Write(buf); err != nil {
		return wrapErr(KindIO, "writing page", err)
	}
	b.open = false
	return nil
}
