package psdwriter_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	psdwriter "github.com/photoshopdan/psd-writer"
)

func TestMinimumDocument(t *testing.T) {
	doc := psdwriter.New(1, 1, psdwriter.Colour{R: 0, G: 0, B: 0})

	path := filepath.Join(t.TempDir(), "a.psd")
	err := doc.Save(path, true)
	require.NoError(t, err)
	assert.Equal(t, psdwriter.StatusSuccess, doc.Status())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x38, 0x42, 0x50, 0x53, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, data[:12])
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(data[14:18])) // height
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(data[18:22])) // width
}

func TestResolutionValidation(t *testing.T) {
	doc := psdwriter.New(10, 10, psdwriter.Colour{})

	err := doc.SetResolution(0.0)
	assert.Error(t, err)
	assert.Equal(t, psdwriter.StatusInvalidArgument, doc.Status())

	err = doc.SetResolution(72.0)
	assert.NoError(t, err)
	assert.Equal(t, psdwriter.StatusSuccess, doc.Status())
}

func TestMissingProfile(t *testing.T) {
	doc := psdwriter.New(4, 4, psdwriter.Colour{})

	err := doc.SetProfile("/does/not/exist")
	assert.Error(t, err)
	assert.Equal(t, psdwriter.StatusNoProfile, doc.Status())

	path := filepath.Join(t.TempDir(), "b.psd")
	assert.NoError(t, doc.Save(path, true))
	assert.Equal(t, psdwriter.StatusSuccess, doc.Status())
}

func TestExistingFileNoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.psd")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	doc := psdwriter.New(4, 4, psdwriter.Colour{})
	err := doc.Save(path, false)
	assert.ErrorIs(t, err, psdwriter.ErrFileExists)
	assert.Equal(t, psdwriter.StatusFileExists, doc.Status())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))
}

func TestTwoLayerComposite(t *testing.T) {
	doc := psdwriter.New(2, 2, psdwriter.Colour{R: 255, G: 255, B: 255})

	pixels := []byte{
		0, 0, 255, 128, 0, 0, 255, 128,
		0, 0, 255, 128, 0, 0, 255, 128,
	}
	err := doc.AddLayer(pixels, psdwriter.Rect{X: 0, Y: 0, W: 2, H: 2}, "Sticker", true,
		psdwriter.ChannelOrderBGRA, psdwriter.CompressionNone)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "d.psd")
	require.NoError(t, doc.Save(path, true))
	assert.Equal(t, psdwriter.StatusSuccess, doc.Status())
}

func TestLayerNameTooLong(t *testing.T) {
	doc := psdwriter.New(4, 4, psdwriter.Colour{})

	long := make([]byte, 252)
	for i := range long {
		long[i] = 'a'
	}
	err := doc.AddLayer(make([]byte, 4*4*4), psdwriter.Rect{X: 0, Y: 0, W: 4, H: 4}, string(long),
		true, psdwriter.ChannelOrderRGBA, psdwriter.CompressionNone)
	assert.Error(t, err)
	assert.Equal(t, psdwriter.StatusInvalidArgument, doc.Status())
}
