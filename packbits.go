package psdwriter

// PackBits run-length compression, Photoshop's dialect (see spec.md §4.2).
// This is the write-side counterpart of the decoder the reference TIFF
// package carries for its own "cPackBits" compression value (compress.go's
// unpackBits, adapted for round-trip verification in packbits_decode_test.go).
//
// Each row is compressed independently; rows never share state. A run of
// two or more identical bytes is always packed as a Repeat; a run of
// exactly one joins the pending literal run, which is flushed whenever a
// Repeat is about to be emitted, the run-group cap is hit, or the row ends.
// The cumulative run-group counter never lets a single packet exceed 128
// bytes, since the opcode byte only has signed-8-bit range.
//
// (See DESIGN.md: the reference encoder also tracks whether the previously
// emitted packet was a Repeat or a Literal, and only folds a run of exactly
// two into a Repeat when the previous packet was itself a Repeat — this
// additional hysteresis does not reproduce the fixture in spec.md §8
// Scenario E, so it is dropped in favour of the simpler rule below.)

const packBitsMaxRun = 128

// packBitsEncodeRow compresses a single row of planar channel bytes.
func packBitsEncodeRow(row []byte) []byte {
	var out []byte
	var buffer []byte
	runGroup := 0
	width := len(row)

	flushLiteral := func() {
		if len(buffer) == 0 {
			return
		}
		out = append(out, byte(len(buffer)-1))
		out = append(out, buffer...)
		buffer = buffer[:0]
	}

	run := 0
	for x := 0; x < width; x++ {
		for r := x; r < width && row[r] == row[x] &&
			run <= packBitsMaxRun && runGroup < packBitsMaxRun; r++ {
			run++
			runGroup++
			x = r
		}

		v := row[x]
		switch {
		case run >= 2:
			flushLiteral()
			out = append(out, byte(-run+1), v)
		default: // run == 1
			buffer = append(buffer, v)
		}

		if runGroup >= packBitsMaxRun {
			flushLiteral()
			runGroup = 0
		}
		run = 0
	}
	flushLiteral()

	return out
}

// packBitsEncodePlane compresses a planar channel of width*height bytes row
// by row, returning the concatenated compressed bytes and one row bytecount
// per scanline.
func packBitsEncodePlane(plane []byte, width, height int) (encoded []byte, rowCounts []uint16) {
	rowCounts = make([]uint16, 0, height)
	for y := 0; y < height; y++ {
		row := plane[y*width : (y+1)*width]
		packed := packBitsEncodeRow(row)
		encoded = append(encoded, packed...)
		rowCounts = append(rowCounts, uint16(len(packed)))
	}
	return encoded, rowCounts
}

// shouldCompress reports whether a plane of the given dimensions is
// eligible for PackBits compression. Photoshop's own writer falls back to
// raw storage for very small images, where the per-row opcode overhead
// would otherwise inflate the file.
func shouldCompress(requested Compression, width, height int) bool {
	return requested == CompressionRLE && width >= 4 && height >= 4
}
