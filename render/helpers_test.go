package render

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding jpeg: %v", err)
	}
	return buf.Bytes()
}

type testEntry struct {
	tag, typ uint16
	count    uint32
	value    uint32
}

// buildRAW assembles a minimal TIFF container. previews[0] is referenced from
// IFD0, every further preview from its own SubIFD.
func buildRAW(order binary.ByteOrder, orientation int, previews ...[]byte) []byte {
	ifdSize := func(n int) uint32 { return uint32(2 + n*ifdEntrySize + 4) }

	n0 := 2
	if orientation > 0 {
		n0++
	}
	subCount := len(previews) - 1
	if subCount > 0 {
		n0++
	}

	off := uint32(8)
	ifd0 := off
	off += ifdSize(n0)

	subArray := uint32(0)
	if subCount > 1 {
		subArray = off
		off += uint32(4 * subCount)
	}

	subIFDs := make([]uint32, subCount)
	for i := range subIFDs {
		subIFDs[i] = off
		off += ifdSize(2)
	}

	jpegOffs := make([]uint32, len(previews))
	for i, p := range previews {
		jpegOffs[i] = off
		off += uint32(len(p))
	}

	buf := make([]byte, off)
	if order == binary.LittleEndian {
		copy(buf, "II")
	} else {
		copy(buf, "MM")
	}
	order.PutUint16(buf[2:], 42)
	order.PutUint32(buf[4:], ifd0)

	writeIFD := func(at uint32, entries []testEntry) {
		order.PutUint16(buf[at:], uint16(len(entries)))
		p := at + 2
		for _, e := range entries {
			order.PutUint16(buf[p:], e.tag)
			order.PutUint16(buf[p+2:], e.typ)
			order.PutUint32(buf[p+4:], e.count)
			if e.typ == typeShort && e.count == 1 {
				order.PutUint16(buf[p+8:], uint16(e.value))
			} else {
				order.PutUint32(buf[p+8:], e.value)
			}
			p += ifdEntrySize
		}
		order.PutUint32(buf[p:], 0)
	}

	entries := []testEntry{}
	if orientation > 0 {
		entries = append(entries, testEntry{tagOrientation, typeShort, 1, uint32(orientation)})
	}
	switch {
	case subCount == 1:
		entries = append(entries, testEntry{tagSubIFDs, typeLong, 1, subIFDs[0]})
	case subCount > 1:
		entries = append(entries, testEntry{tagSubIFDs, typeLong, uint32(subCount), subArray})
		for i, s := range subIFDs {
			order.PutUint32(buf[subArray+uint32(4*i):], s)
		}
	}
	entries = append(entries,
		testEntry{tagJPEGOffset, typeLong, 1, jpegOffs[0]},
		testEntry{tagJPEGLength, typeLong, 1, uint32(len(previews[0]))},
	)
	writeIFD(ifd0, entries)

	for i, s := range subIFDs {
		writeIFD(s, []testEntry{
			{tagJPEGOffset, typeLong, 1, jpegOffs[i+1]},
			{tagJPEGLength, typeLong, 1, uint32(len(previews[i+1]))},
		})
	}

	for i, p := range previews {
		copy(buf[jpegOffs[i]:], p)
	}

	return buf
}
