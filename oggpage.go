// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"encoding/binary"
	"io"
)

const (
	oggPageHeaderSize  = 27 // fixed header, not counting the segment table
	oggCapturePattern  = "OggS"
	headerTypeContinue = 0x1
	headerTypeBoS      = 0x2
	headerTypeEoS      = 0x4
)

// OggPage represents one parsed Ogg page. It is request-scoped: it reads
// lazily from the underlying io.ReadSeeker and does not outlive a single
// read-or-write operation.
//
// Grounded on pytag/containers.py's OggPage class, translated from Python's
// re-__init__-on-next-page idiom into explicit Open/Advance methods.
type OggPage struct {
	r io.ReadSeeker

	Version         byte
	HeaderType      byte
	GranulePosition uint64
	Serial          uint32
	Number          uint32
	CRC             uint32
	SegmentTable    []byte

	// segIndex is the cursor into SegmentTable: how many segments (and
	// their bytes) have already been consumed from the body.
	segIndex int
}

// OpenOggPage reads one page header + segment table from r at its current
// position. The page body is not read eagerly; use GetPacketInfo or Dump.
func OpenOggPage(r io.ReadSeeker) (*OggPage, error) {
	p := &OggPage{r: r}
	if err := p.readHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *OggPage) readHeader() error {
	magic, err := readString(p.r, 4)
	if err != nil {
		return err
	}
	if magic != oggCapturePattern {
		return newErr(KindMalformedPage, "bad capture pattern "+magic)
	}

	b, err := readBytes(p.r, 1)
	if err != nil {
		return err
	}
	p.Version = b[0]
	if p.Version != 0 {
		return newErr(KindMalformedPage, "unsupported stream structure version")
	}

	b, err = readBytes(p.r, 1)
	if err != nil {
		return err
	}
	p.HeaderType = b[0]

	gb, err := readBytes(p.r, 8)
	if err != nil {
		return err
	}
	p.GranulePosition = binary.LittleEndian.Uint64(gb)

	serial, err := readBytes(p.r, 4)
	if err != nil {
		return err
	}
	p.Serial = binary.LittleEndian.Uint32(serial)

	number, err := readBytes(p.r, 4)
	if err != nil {
		return err
	}
	p.Number = binary.LittleEndian.Uint32(number)

	crc, err := readBytes(p.r, 4)
	if err != nil {
		return err
	}
	p.CRC = binary.LittleEndian.Uint32(crc)

	nsb, err := readBytes(p.r, 1)
	if err != nil {
		return err
	}
	nSegments := int(nsb[0])

	table, err := readBytes(p.r, nSegments)
	if err != nil {
		return err
	}
	p.SegmentTable = table
	p.segIndex = 0
	return nil
}

// IsLast reports whether this page is the last in its logical bitstream
// (header-type bit 2, EoS).
func (p *OggPage) IsLast() bool {
	return p.HeaderType&headerTypeEoS != 0
}

// IsContinuation reports whether this page continues a packet from the
// previous page (header-type bit 0).
func (p *OggPage) IsContinuation() bool {
	return p.HeaderType&headerTypeContinue != 0
}

// bodySize returns the number of body bytes this page carries, i.e. the
// sum of its segment table.
func (p *OggPage) bodySize() int {
	total := 0
	for _, s := range p.SegmentTable {
		total += int(s)
	}
	return total
}

// unreadBodySize returns the number of body bytes not yet consumed via
// GetPacketInfo.
func (p *OggPage) unreadBodySize() int {
	total := 0
	for _, s := range p.SegmentTable[p.segIndex:] {
		total += int(s)
	}
	return total
}

// Advance skips any unread body bytes in the current page and opens the
// next page on the same stream.
func (p *OggPage) Advance() error {
	if n := p.unreadBodySize(); n > 0 {
		if _, err := p.r.Seek(int64(n), io.SeekCurrent); err != nil {
			return wrapErr(KindIO, "seeking past page body", err)
		}
	}
	return p.readHeader()
}

// PacketInfo describes the size of the next packet (or partial packet)
// available in the current page, and whether it terminates within this
// page. Mirrors pytag/containers.py's PacketInfo namedtuple.
type PacketInfo struct {
	Size     int
	Complete bool
}

// GetPacketInfo returns the size of the next packet run in the current
// page, advancing to the next page first if the current one has no more
// unread segments. A packet boundary is any lacing value <255; the packet
// continues past this page iff every remaining lacing value read is 255.
func (p *OggPage) GetPacketInfo() (PacketInfo, error) {
	if p.segIndex == len(p.SegmentTable) {
		if err := p.Advance(); err != nil {
			return PacketInfo{}, err
		}
	}

	total := 0
	for p.segIndex < len(p.SegmentTable) {
		size := int(p.SegmentTable[p.segIndex])
		p.segIndex++
		total += size
		if size != 255 {
			return PacketInfo{Size: total, Complete: true}, nil
		}
	}
	return PacketInfo{Size: total, Complete: false}, nil
}

// readBody reads and returns the full, unread body of the page (the bytes
// covered by SegmentTable[segIndex:]), advancing segIndex to the end. Used
// when mirror-copying unmodified pages in the rewriter.
func (p *OggPage) readBody() ([]byte, error) {
	n := p.unreadBodySize()
	b, err := readBytes(p.r, n)
	if err != nil {
		return nil, err
	}
	p.segIndex = len(p.SegmentTable)
	return b, nil
}

// Dump serializes the page's header, segment table, and remaining body as
// bytes. If withCRCRecompute is true, the CRC field is zeroed, the
// Ogg-flavored CRC-32 of the full page is computed, and written back at
// header offset 22.
func (p *OggPage) Dump(withCRCRecompute bool) ([]byte, error) {
	body, err := p.readBody()
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, oggPageHeaderSize+len(p.SegmentTable)+len(body))
	buf = append(buf, oggCapturePattern...)
	buf = append(buf, p.Version, p.HeaderType)

	var tmp8 [8]byte
	binary.LittleEndian.PutUint64(tmp8[:], p.GranulePosition)
	buf = append(buf, tmp8[:]...)

	var tmp4 [4]byte
	binary.LittleEndian.PutUint32(tmp4[:], p.Serial)
	buf = append(buf, tmp4[:]...)
	binary.LittleEndian.PutUint32(tmp4[:], p.Number)
	buf = append(buf, tmp4[:]...)

	crc := p.CRC
	if withCRCRecompute {
		crc = 0
	}
	binary.LittleEndian.PutUint32(tmp4[:], crc)
	crcOffset := len(buf)
	buf = append(buf, tmp4[:]...)

	buf = append(buf, byte(len(p.SegmentTable)))
	buf = append(buf, p.SegmentTable...)
	buf = append(buf, body...)

	if withCRCRecompute {
		sum := oggCRC32(buf)
		binary.LittleEndian.PutUint32(buf[crcOffset:crcOffset+4], sum)
		p.CRC = sum
	}

	return buf, nil
}
