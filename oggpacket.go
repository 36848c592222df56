// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import "io"

// packetReaderState makes explicit the state pytag/containers.py's
// PacketReader tracked with a "position == 0 means start a new packet"
// integer sentinel.
type packetReaderState int

const (
	atPacketStart packetReaderState = iota
	inPacket
)

// PacketReader reassembles logical Ogg packets that may be split across
// page boundaries via the lacing-value segment table.
type PacketReader struct {
	r     io.ReadSeeker
	page  *OggPage
	state packetReaderState

	remaining int  // bytes left to read in the current packet run before a refresh
	terminal  bool // whether the current run ends the packet
}

// NewPacketReader returns a PacketReader that pulls packet-info from page
// and reads packet bytes from r. r must be positioned at the start of
// page's unread body.
func NewPacketReader(r io.ReadSeeker, page *OggPage) *PacketReader {
	return &PacketReader{r: r, page: page, state: atPacketStart}
}

func (pr *PacketReader) refresh() error {
	info, err := pr.page.GetPacketInfo()
	if err != nil {
		return err
	}
	pr.remaining = info.Size
	pr.terminal = info.Complete
	pr.state = inPacket
	return nil
}

// ReadAll reads the current packet to completion and returns its bytes.
// Calling ReadAll again starts the next packet.
func (pr *PacketReader) ReadAll() ([]byte, error) {
	if pr.state == atPacketStart {
		if err := pr.refresh(); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, pr.remaining)
	b, err := readBytes(pr.r, pr.remaining)
	if err != nil {
		return nil, err
	}
	out = append(out, b...)

	for !pr.terminal {
		if err := pr.refresh(); err != nil {
			return nil, err
		}
		b, err := readBytes(pr.r, pr.remaining)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	pr.state = atPacketStart
	return out, nil
}

// Read reads up to n bytes from the current packet, refreshing across
// segment/page boundaries as needed. It returns fewer than n bytes only if
// the packet itself is shorter than n and terminates.
func (pr *PacketReader) Read(n int) ([]byte, error) {
	if pr.state == atPacketStart {
		if err := pr.refresh(); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, n)
	for n != 0 {
		chunk := n
		if chunk > pr.remaining {
			chunk = pr.remaining
		}
		n -= chunk
		pr.remaining -= chunk
		b, err := readBytes(pr.r, chunk)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)

		if n != 0 {
			if pr.terminal {
				// Packet ended before n bytes were available: stop short,
				// mirroring the source's tolerant read(n) semantics.
				pr.state = atPacketStart
				return out, nil
			}
			if err := pr.refresh(); err != nil {
				return nil, err
			}
		}
	}

	if pr.remaining == 0 && pr.terminal {
		pr.state = atPacketStart
	}
	return out, nil
}
