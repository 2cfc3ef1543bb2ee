package psdwriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackBitsFixture(t *testing.T) {
	row := []byte{0xAA, 0xAA, 0xAA, 0x01, 0x02, 0x03, 0xBB, 0xBB}
	got := packBitsEncodeRow(row)
	want := []byte{0xFE, 0xAA, 0x02, 0x01, 0x02, 0x03, 0xFF, 0xBB}
	assert.Equal(t, want, got)
}

func TestPackBitsReversibility(t *testing.T) {
	planes := [][]byte{
		{0xAA, 0xAA, 0xAA, 0x01, 0x02, 0x03, 0xBB, 0xBB},
		{1, 2, 3, 4, 5, 6, 7, 8},
		{9, 9, 9, 9, 9, 9, 9, 9},
		{1, 1, 2, 2, 3, 3, 3, 3},
	}

	for _, plane := range planes {
		encoded, rowCounts := packBitsEncodePlane(plane, len(plane), 1)
		decoded, err := packBitsDecode(encoded)
		require.NoError(t, err)
		assert.Equal(t, plane, decoded)

		var sum int
		for _, c := range rowCounts {
			sum += int(c)
		}
		assert.Equal(t, len(encoded), sum)
	}
}

func TestPackBitsRowIndependence(t *testing.T) {
	width, height := 8, 3
	plane := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			plane[y*width+x] = byte(y) // one uniform value per row
		}
	}

	encoded, rowCounts := packBitsEncodePlane(plane, width, height)
	require.Len(t, rowCounts, height)

	var offset int
	for y := 0; y < height; y++ {
		row := encoded[offset : offset+int(rowCounts[y])]
		decoded, err := packBitsDecode(row)
		require.NoError(t, err)
		assert.Equal(t, plane[y*width:(y+1)*width], decoded)
		offset += int(rowCounts[y])
	}
}

func TestShouldCompressSmallImageFallback(t *testing.T) {
	assert.False(t, shouldCompress(CompressionRLE, 3, 10))
	assert.False(t, shouldCompress(CompressionRLE, 10, 3))
	assert.False(t, shouldCompress(CompressionNone, 100, 100))
	assert.True(t, shouldCompress(CompressionRLE, 4, 4))
}
