package psdwriter

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDimensionRoundtrip is spec.md §8 property 1: the bytes at offset
// 14..22 decode big-endian to exactly (h, w) for any valid size.
func TestDimensionRoundtrip(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {37, 91}, {800, 600}} {
		w, h := dims[0], dims[1]
		doc := New(w, h, Colour{})
		path := filepath.Join(t.TempDir(), "dims.psd")
		require.NoError(t, doc.Save(path, true))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, uint32(h), binary.BigEndian.Uint32(data[14:18]))
		assert.Equal(t, uint32(w), binary.BigEndian.Uint32(data[18:22]))
	}
}

// TestSectionLengthFidelity is property 3: the image-resources length, the
// layer-and-mask length, and every layer's extra_data_length each equal the
// number of bytes actually occupied by the section or field they describe.
func TestSectionLengthFidelity(t *testing.T) {
	doc := New(6, 6, Colour{R: 10, G: 20, B: 30})
	require.NoError(t, doc.SetResolution(150))
	pixels := make([]byte, 6*6*4)
	for i := range pixels {
		pixels[i] = byte(i % 251)
	}
	require.NoError(t, doc.AddLayer(pixels, Rect{X: 0, Y: 0, W: 6, H: 6}, "Overlay", true,
		ChannelOrderRGBA, CompressionRLE))

	path := filepath.Join(t.TempDir(), "lengths.psd")
	require.NoError(t, doc.Save(path, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	offset := uint32(26)
	colorModeLen := binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4 + colorModeLen

	resourcesLenField := binary.BigEndian.Uint32(data[offset : offset+4])
	resourcesStart := offset + 4
	offset = resourcesStart + resourcesLenField

	layersLenField := binary.BigEndian.Uint32(data[offset : offset+4])
	layersStart := offset + 4

	assert.Equal(t, doc.resources.length(), resourcesLenField)
	assert.Equal(t, doc.layers.length(), layersLenField)

	// Each record's declared extra_data_length must match the actual
	// footprint of its mask block, blending ranges, Pascal name and
	// additional-info list.
	for _, lr := range doc.layers.records {
		want := uint32(4) + 40 + 4 + pascalStringLength(lr.name)
		for _, a := range lr.additional {
			want += a.totalLength()
		}
		assert.Equal(t, want, lr.extraDataLength())
	}

	// The layer-and-mask section must end exactly layersLenField bytes
	// after its own length field, i.e. at the start of the merged image
	// data (whose compression code is always RLE == 1).
	mergedStart := layersStart + layersLenField
	assert.Equal(t, uint16(compressionRLE), binary.BigEndian.Uint16(data[mergedStart:mergedStart+2]))
}

// TestResourceBlockPaddingFidelity exercises the odd-length image-resource
// body case (an odd-sized ICC profile blob and an odd number of guides),
// verifying imageResources.length() still matches the padded bytes written.
func TestResourceBlockPaddingFidelity(t *testing.T) {
	doc := New(8, 8, Colour{})
	require.NoError(t, doc.AddGuide(10, OrientationVertical))
	require.NoError(t, doc.AddGuide(20, OrientationHorizontal))
	require.NoError(t, doc.AddGuide(30, OrientationVertical))

	profilePath := filepath.Join(t.TempDir(), "profile.icc")
	require.NoError(t, os.WriteFile(profilePath, []byte{1, 2, 3}, 0o644)) // odd length
	require.NoError(t, doc.SetProfile(profilePath))

	path := filepath.Join(t.TempDir(), "padding.psd")
	require.NoError(t, doc.Save(path, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	offset := uint32(26)
	colorModeLen := binary.BigEndian.Uint32(data[offset : offset+4])
	offset += 4 + colorModeLen

	resourcesLenField := binary.BigEndian.Uint32(data[offset : offset+4])
	assert.Equal(t, doc.resources.length(), resourcesLenField)

	resourcesStart := offset + 4
	layersLenOffset := resourcesStart + resourcesLenField
	layersLenField := binary.BigEndian.Uint32(data[layersLenOffset : layersLenOffset+4])
	assert.Equal(t, doc.layers.length(), layersLenField)
}

// TestPascalStringPadding is property 4.
func TestPascalStringPadding(t *testing.T) {
	for _, name := range []string{"", "a", "ab", "abc", "Background", "a very long layer name indeed"} {
		total := pascalStringLength(name)
		padding := total - 1 - uint32(len(name))
		assert.Equal(t, uint32(0), total%4)
		assert.Less(t, padding, uint32(4))
	}
}

// TestFixedPointResolution is property 7.
func TestFixedPointResolution(t *testing.T) {
	for _, ppi := range []float64{1, 72, 72.5, 300, 29999.99} {
		doc := New(1, 1, Colour{})
		require.NoError(t, doc.SetResolution(ppi))

		got := float64(doc.resources.resolution.hResInt) + float64(doc.resources.resolution.hResFrac)/65536
		want := math.Round(ppi*65536) / 65536
		assert.InDelta(t, want, got, 1.0/65536)
	}
}

// TestIdempotentSave is property 8: two saves of the same document are
// byte-identical except for the cust block's embedded timestamp, which is
// captured once at layer-construction time (so a single Document's two
// saves are actually fully identical).
func TestIdempotentSave(t *testing.T) {
	doc := New(5, 5, Colour{R: 1, G: 2, B: 3})

	pathA := filepath.Join(t.TempDir(), "a.psd")
	pathB := filepath.Join(t.TempDir(), "b.psd")
	require.NoError(t, doc.Save(pathA, true))
	require.NoError(t, doc.Save(pathB, true))

	dataA, err := os.ReadFile(pathA)
	require.NoError(t, err)
	dataB, err := os.ReadFile(pathB)
	require.NoError(t, err)
	assert.Equal(t, dataA, dataB)
}

// TestLayerOrdering is property 9.
func TestLayerOrdering(t *testing.T) {
	doc := New(4, 4, Colour{})
	pixels := make([]byte, 4*4*4)

	require.NoError(t, doc.AddLayer(pixels, Rect{X: 0, Y: 0, W: 4, H: 4}, "First", true, ChannelOrderRGBA, CompressionNone))
	require.NoError(t, doc.AddLayer(pixels, Rect{X: 0, Y: 0, W: 4, H: 4}, "Second", true, ChannelOrderRGBA, CompressionNone))
	require.NoError(t, doc.AddLayer(pixels, Rect{X: 0, Y: 0, W: 4, H: 4}, "Third", true, ChannelOrderRGBA, CompressionNone))

	require.Len(t, doc.layers.records, 4) // background + 3
	assert.Equal(t, "Background", doc.layers.records[0].name)
	assert.Equal(t, "First", doc.layers.records[1].name)
	assert.Equal(t, "Second", doc.layers.records[2].name)
	assert.Equal(t, "Third", doc.layers.records[3].name)
	assert.Equal(t, uint32(1), doc.layers.records[0].layerID)
	assert.Equal(t, uint32(2), doc.layers.records[1].layerID)
	assert.Equal(t, uint32(3), doc.layers.records[2].layerID)
	assert.Equal(t, uint32(4), doc.layers.records[3].layerID)
}
