package psdwriter

import "math"

// channel is one planar (band-sequential) stream of a layer's or the merged
// preview's pixel data, exactly as it is written to the image-data or
// layer-channel-data sections of the file.
type channel struct {
	compression uint16
	data        []byte
	rowCounts   []uint16 // only populated when compression == compressionRLE
}

// length returns the on-disk footprint of this channel: its 2-byte
// compression code, its row bytecount table (RLE only), and its payload.
func (c channel) length() uint32 {
	return uint32(2) + uint32(len(c.rowCounts))*2 + uint32(len(c.data))
}

// planarImage holds one raster's channels in the order they will be
// written to disk: A,R,G,B for layers with transparency, R,G,B for the
// background layer and the merged preview.
type planarImage struct {
	width, height int
	channels      []channel
}

// sourceOffsets maps the four disk-order channels (A,R,G,B) to their byte
// offset within one band-interleaved-by-pixel source pixel, for the given
// input layout. The reference implementation's RGBA case discarded this
// mapping (see DESIGN.md); both cases are derived directly from spec.md
// §4.1's "planar channel order written to disk is A, R, G, B".
func sourceOffsets(order ChannelOrder) [4]int {
	if order == ChannelOrderBGRA {
		return [4]int{3, 2, 1, 0} // pixel = B,G,R,A
	}
	return [4]int{3, 0, 1, 2} // pixel = R,G,B,A
}

// planarizeRGBA converts a band-interleaved-by-pixel RGBA/BGRA buffer into
// four planar byte slices ordered A,R,G,B.
func planarizeRGBA(pixels []byte, order ChannelOrder, width, height int) [4][]byte {
	offsets := sourceOffsets(order)
	n := width * height
	var planes [4][]byte
	for outC := 0; outC < 4; outC++ {
		plane := make([]byte, n)
		src := offsets[outC]
		for i := 0; i < n; i++ {
			plane[i] = pixels[i*4+src]
		}
		planes[outC] = plane
	}
	return planes
}

// loadRaw converts a band-interleaved RGBA/BGRA buffer into an uncompressed
// planar image (A,R,G,B channel order).
func loadRaw(pixels []byte, order ChannelOrder, width, height int) planarImage {
	planes := planarizeRGBA(pixels, order, width, height)
	img := planarImage{width: width, height: height}
	for _, p := range planes {
		img.channels = append(img.channels, channel{compression: compressionRaw, data: p})
	}
	return img
}

// loadCompressed is identical to loadRaw except every row of every channel
// is PackBits-compressed independently (see packbits.go).
func loadCompressed(pixels []byte, order ChannelOrder, width, height int) planarImage {
	planes := planarizeRGBA(pixels, order, width, height)
	img := planarImage{width: width, height: height}
	for _, p := range planes {
		encoded, rowCounts := packBitsEncodePlane(p, width, height)
		img.channels = append(img.channels, channel{
			compression: compressionRLE,
			data:        encoded,
			rowCounts:   rowCounts,
		})
	}
	return img
}

// loadLayerImage dispatches to loadRaw or loadCompressed, honouring the
// small-image PackBits fallback in spec.md §4.2.
func loadLayerImage(pixels []byte, order ChannelOrder, width, height int, compression Compression) planarImage {
	if shouldCompress(compression, width, height) {
		return loadCompressed(pixels, order, width, height)
	}
	return loadRaw(pixels, order, width, height)
}

// generateBackground produces a solid R,G,B planar image of the given size,
// stored uncompressed; it is re-compressed (along with every other visible
// layer) into the merged preview at save time regardless.
func generateBackground(width, height int, colour Colour) planarImage {
	n := width * height
	img := planarImage{width: width, height: height}
	for _, c := range [3]uint8{colour.R, colour.G, colour.B} {
		data := make([]byte, n)
		for i := range data {
			data[i] = c
		}
		img.channels = append(img.channels, channel{compression: compressionRaw, data: data})
	}
	return img
}

// foregroundComponents returns, for the given input layout, the byte offset
// within one source pixel of the red, green, blue and alpha components.
func foregroundComponents(order ChannelOrder) (r, g, b, a int) {
	if order == ChannelOrderBGRA {
		return 2, 1, 0, 3
	}
	return 0, 1, 2, 3
}

// compositeOnto alpha-blends an RGBA/BGRA foreground layer onto a merged
// R,G,B background at the given offset. The rect is trusted to lie within
// the background's bounds (see spec.md §7); the caller clips.
//
// The original C++ compositor blended green and blue against the
// foreground's red component instead of their own (src/psdimage.cpp,
// PSDRawImage::composite); this is the corrected, per-channel formula.
func compositeOnto(bg *planarImage, fg []byte, rect Rect, order ChannelOrder) {
	rIdx, gIdx, bIdx, aIdx := foregroundComponents(order)

	for j := 0; j < rect.H; j++ {
		for i := 0; i < rect.W; i++ {
			srcOff := (j*rect.W + i) * 4
			fgR := float64(fg[srcOff+rIdx])
			fgG := float64(fg[srcOff+gIdx])
			fgB := float64(fg[srcOff+bIdx])
			alpha := float64(fg[srcOff+aIdx]) / 255.0

			dstIdx := (rect.Y+j)*bg.width + (rect.X + i)
			bg.channels[0].data[dstIdx] = blend(fgR, alpha, bg.channels[0].data[dstIdx])
			bg.channels[1].data[dstIdx] = blend(fgG, alpha, bg.channels[1].data[dstIdx])
			bg.channels[2].data[dstIdx] = blend(fgB, alpha, bg.channels[2].data[dstIdx])
		}
	}
}

func blend(fg, alpha float64, bg byte) byte {
	return byte(math.Round(fg*alpha + float64(bg)*(1-alpha)))
}

// compressExistingPlanes re-packs an already-planar image's channels,
// honouring the small-image PackBits fallback.
func compressExistingPlanes(img planarImage, compression Compression) planarImage {
	out := planarImage{width: img.width, height: img.height}
	for _, ch := range img.channels {
		if shouldCompress(compression, img.width, img.height) {
			encoded, rowCounts := packBitsEncodePlane(ch.data, img.width, img.height)
			out.channels = append(out.channels, channel{compression: compressionRLE, data: encoded, rowCounts: rowCounts})
		} else {
			out.channels = append(out.channels, channel{compression: compressionRaw, data: append([]byte(nil), ch.data...)})
		}
	}
	return out
}

// compressPlanarForced unconditionally RLE-compresses every channel,
// regardless of dimensions: the image-data section's compression code is
// shared across all channels, so the merged preview is always recompressed
// at save time (spec.md §4.1), overriding the small-image fallback that
// applies only to per-layer channel storage.
func compressPlanarForced(img planarImage) planarImage {
	out := planarImage{width: img.width, height: img.height}
	for _, ch := range img.channels {
		encoded, rowCounts := packBitsEncodePlane(ch.data, img.width, img.height)
		out.channels = append(out.channels, channel{compression: compressionRLE, data: encoded, rowCounts: rowCounts})
	}
	return out
}
