package psdwriter

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// writer accumulates the big-endian byte stream for a single save, tracking
// the first I/O error encountered so callers can check it once at the end
// rather than after every write.
type writer struct {
	w   io.Writer
	err error
}

func (wr *writer) write(p []byte) {
	if wr.err != nil || len(p) == 0 {
		return
	}
	if _, err := wr.w.Write(p); err != nil {
		wr.err = errors.Wrap(err, "psdwriter: write failed")
	}
}

func appendU8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

func appendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendI16(buf []byte, v int16) []byte {
	return appendU16(buf, uint16(v))
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendI32(buf []byte, v int32) []byte {
	return appendU32(buf, uint32(v))
}

func appendF64(buf []byte, v float64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v))
	return append(buf, tmp[:]...)
}

func (wr *writer) writeU16(v uint16)    { wr.write(appendU16(nil, v)) }
func (wr *writer) writeU32(v uint32)    { wr.write(appendU32(nil, v)) }
func (wr *writer) writeRowCounts(v []uint16) {
	buf := make([]byte, 0, len(v)*2)
	for _, c := range v {
		buf = appendU16(buf, c)
	}
	wr.write(buf)
}

func (wr *writer) writeAdditionalInfo(a additionalInfo) {
	buf := make([]byte, 0, 12+len(a.payload))
	buf = append(buf, blockSignature8BIM...)
	buf = append(buf, a.key...)
	if !a.omitLength {
		buf = appendU32(buf, uint32(len(a.payload)))
	}
	buf = append(buf, a.payload...)
	wr.write(buf)
}

func (wr *writer) writeResourceBlock(b resourceBlock) {
	buf := make([]byte, 0, resourceBlockOverhead+len(b.body)+1)
	buf = append(buf, blockSignature8BIM...)
	buf = appendU16(buf, b.uid)
	buf = appendU16(buf, 0) // null name
	buf = appendU32(buf, uint32(len(b.body)))
	buf = append(buf, b.body...)
	if len(b.body)%2 != 0 {
		buf = append(buf, 0)
	}
	wr.write(buf)
}

func (wr *writer) writeLayerRect(r layerRect) {
	buf := make([]byte, 0, 16)
	buf = appendU32(buf, r.top)
	buf = appendU32(buf, r.left)
	buf = appendU32(buf, r.bottom)
	buf = appendU32(buf, r.right)
	wr.write(buf)
}

func (wr *writer) writeChannelInfo(c channelInfo) {
	buf := make([]byte, 0, channelInfoSize)
	buf = appendI16(buf, c.id)
	buf = appendU32(buf, c.length)
	wr.write(buf)
}

func (wr *writer) writeBlendingRanges(b blendingRanges) {
	wr.write([]byte{
		b.srcBlackLower, b.srcBlackUpper, b.srcWhiteLower, b.srcWhiteUpper,
		b.dstBlackLower, b.dstBlackUpper, b.dstWhiteLower, b.dstWhiteUpper,
	})
}

func (wr *writer) writePascalString(name string) {
	total := pascalStringLength(name)
	buf := make([]byte, 1+len(name), total)
	buf[0] = byte(len(name))
	copy(buf[1:], name)
	for uint32(len(buf)) < total {
		buf = append(buf, 0)
	}
	wr.write(buf)
}

func (wr *writer) writeLayerRecord(lr layerRecord) {
	wr.writeLayerRect(lr.rect)

	channelCount := uint16(3)
	if lr.hasAlpha {
		channelCount = 4
	}
	wr.writeU16(channelCount)

	if lr.hasAlpha {
		wr.writeChannelInfo(lr.alpha)
	}
	wr.writeChannelInfo(lr.red)
	wr.writeChannelInfo(lr.green)
	wr.writeChannelInfo(lr.blue)

	wr.write([]byte(blockSignature8BIM))
	wr.write([]byte("norm"))
	wr.write([]byte{255, 0, lr.flags, 0}) // opacity, clipping, flags, filler
	wr.writeU32(lr.extraDataLength())

	wr.writeU32(0) // layer mask data length: always inactive
	wr.writeU32(40)
	grey := defaultBlendingRanges()
	for i := 0; i < 5; i++ {
		wr.writeBlendingRanges(grey)
	}

	wr.writePascalString(lr.name)
	for _, a := range lr.additional {
		wr.writeAdditionalInfo(a)
	}
}

// serialize walks the document model in the fixed order Photoshop expects
// (spec.md §6.2) and writes the resulting byte stream to dst, returning the
// byte count written and the first error encountered, if any.
func (d *Document) serialize(dst io.Writer) (int64, error) {
	cw := &countingWriter{w: dst}
	wr := &writer{w: cw}

	wr.write([]byte(fileSignature))
	wr.writeU16(fileVersion)
	wr.write(make([]byte, 6)) // reserved
	wr.writeU16(headerChannelCount)
	wr.writeU32(uint32(d.height))
	wr.writeU32(uint32(d.width))
	wr.writeU16(headerDepth)
	wr.writeU16(headerColourMode)

	wr.writeU32(0) // colour mode data length

	wr.writeU32(d.resources.length())
	wr.writeResourceBlock(d.resources.resolution.block())
	if len(d.resources.profile.data) > 0 {
		wr.writeResourceBlock(d.resources.profile.block())
	}
	wr.writeResourceBlock(d.resources.grid.block())

	wr.writeU32(d.layers.length())
	wr.writeU32(d.layers.layerInfoLength())
	wr.writeU16(d.layers.layerCount())
	for _, lr := range d.layers.records {
		wr.writeLayerRecord(lr)
	}
	for _, img := range d.layers.images {
		for _, ch := range img.channels {
			wr.writeU16(ch.compression)
			if ch.compression == compressionRLE {
				wr.writeRowCounts(ch.rowCounts)
			}
			wr.write(ch.data)
		}
	}
	wr.writeU16(0) // mystery null

	wr.write(make([]byte, 4)) // global layer mask info: always inactive

	wr.writeAdditionalInfo(d.layers.patterns)
	wr.writeAdditionalInfo(d.layers.filterMask)
	wr.writeAdditionalInfo(d.layers.compositor)

	merged := compressPlanarForced(d.merged)
	wr.writeU16(compressionRLE)
	for _, ch := range merged.channels {
		wr.writeRowCounts(ch.rowCounts)
	}
	for _, ch := range merged.channels {
		wr.write(ch.data)
	}

	return cw.n, wr.err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
