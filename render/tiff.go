package render

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TIFF tags read while scanning a RAW container.
const (
	tagCompression      = 0x0103
	tagStripOffsets     = 0x0111
	tagOrientation      = 0x0112
	tagStripByteCounts  = 0x0117
	tagSubIFDs          = 0x014a
	tagJPEGOffset       = 0x0201
	tagJPEGLength       = 0x0202
	compressionOldJPEG  = 6
	compressionJPEG     = 7
	maxIFDs             = 32
	maxEntriesPerIFD    = 4096
	ifdEntrySize        = 12
	typeShort           = 3
	typeLong            = 4
	typeIFD             = 13
	minEmbeddedJPEGSize = 64
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	raw   [4]byte
}

// segment is a byte range in the container holding a JPEG stream.
type segment struct {
	offset int64
	length int64
}

// container is the subset of a TIFF structure needed to find embedded
// previews. NEF, DNG and most other RAW formats are TIFF based.
type container struct {
	r     io.ReaderAt
	size  int64
	order binary.ByteOrder
	first uint32
}

func openContainer(r io.ReaderAt, size int64) (*container, error) {
	var hdr [8]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTIFF, err)
	}

	c := &container{r: r, size: size}
	switch string(hdr[:2]) {
	case "II":
		c.order = binary.LittleEndian
	case "MM":
		c.order = binary.BigEndian
	default:
		return nil, ErrNotTIFF
	}

	if c.order.Uint16(hdr[2:4]) != 42 {
		return nil, ErrNotTIFF
	}
	c.first = c.order.Uint32(hdr[4:8])

	return c, nil
}

func (c *container) readIFD(off uint32) ([]ifdEntry, uint32, error) {
	var buf [2]byte
	if _, err := c.r.ReadAt(buf[:], int64(off)); err != nil {
		return nil, 0, err
	}

	n := int(c.order.Uint16(buf[:]))
	if n == 0 || n > maxEntriesPerIFD {
		return nil, 0, fmt.Errorf("IFD at %d has %d entries", off, n)
	}

	data := make([]byte, n*ifdEntrySize+4)
	if _, err := c.r.ReadAt(data, int64(off)+2); err != nil {
		return nil, 0, err
	}

	entries := make([]ifdEntry, n)
	for i := range entries {
		b := data[i*ifdEntrySize:]
		entries[i].tag = c.order.Uint16(b[0:2])
		entries[i].typ = c.order.Uint16(b[2:4])
		entries[i].count = c.order.Uint32(b[4:8])
		copy(entries[i].raw[:], b[8:12])
	}

	next := c.order.Uint32(data[n*ifdEntrySize:])
	return entries, next, nil
}

// values returns the integer values of a SHORT, LONG or IFD entry.
func (c *container) values(e ifdEntry) []uint32 {
	width := 0
	switch e.typ {
	case typeShort:
		width = 2
	case typeLong, typeIFD:
		width = 4
	default:
		return nil
	}

	if e.count == 0 || int64(e.count)*int64(width) > c.size {
		return nil
	}

	data := e.raw[:]
	if int(e.count)*width > len(e.raw) {
		data = make([]byte, int(e.count)*width)
		if _, err := c.r.ReadAt(data, int64(c.order.Uint32(e.raw[:]))); err != nil {
			return nil
		}
	}

	out := make([]uint32, e.count)
	for i := range out {
		if width == 2 {
			out[i] = uint32(c.order.Uint16(data[i*2:]))
		} else {
			out[i] = c.order.Uint32(data[i*4:])
		}
	}
	return out
}

func (c *container) value(e ifdEntry) uint32 {
	if v := c.values(e); len(v) > 0 {
		return v[0]
	}
	return 0
}

// scan walks IFD0, its next-IFD chain and any SubIFDs, returning the JPEG
// streams found and the orientation recorded in IFD0 (0 when absent).
func (c *container) scan() ([]segment, int, error) {
	var (
		segments    []segment
		orientation int
	)

	visited := make(map[uint32]bool)
	queue := []uint32{c.first}

	for len(queue) > 0 && len(visited) < maxIFDs {
		off := queue[0]
		queue = queue[1:]
		if off == 0 || visited[off] || int64(off) >= c.size {
			continue
		}
		isFirst := len(visited) == 0
		visited[off] = true

		entries, next, err := c.readIFD(off)
		if err != nil {
			if isFirst {
				return nil, 0, fmt.Errorf("%w: %v", ErrNotTIFF, err)
			}
			continue
		}

		var (
			jpegOff, jpegLen, compression uint32
			stripOffs, stripCounts        []uint32
		)
		for _, e := range entries {
			switch e.tag {
			case tagOrientation:
				if isFirst {
					orientation = int(c.value(e))
				}
			case tagJPEGOffset:
				jpegOff = c.value(e)
			case tagJPEGLength:
				jpegLen = c.value(e)
			case tagCompression:
				compression = c.value(e)
			case tagStripOffsets:
				stripOffs = c.values(e)
			case tagStripByteCounts:
				stripCounts = c.values(e)
			case tagSubIFDs:
				queue = append(queue, c.values(e)...)
			}
		}

		if s, ok := c.segment(jpegOff, jpegLen); ok {
			segments = append(segments, s)
		}
		isJPEG := compression == compressionOldJPEG || compression == compressionJPEG
		if isJPEG && len(stripOffs) == 1 && len(stripCounts) == 1 {
			if s, ok := c.segment(stripOffs[0], stripCounts[0]); ok {
				segments = append(segments, s)
			}
		}

		if next != 0 {
			queue = append(queue, next)
		}
	}

	return segments, orientation, nil
}

func (c *container) segment(off, length uint32) (segment, bool) {
	if off == 0 || length < minEmbeddedJPEGSize {
		return segment{}, false
	}
	if int64(off)+int64(length) > c.size {
		return segment{}, false
	}
	return segment{offset: int64(off), length: int64(length)}, true
}
