package psdwriter

import (
	"math"
	"os"
	"time"
)

// Document is an in-memory PSD composition: a background layer plus zero
// or more added layers, serialised to disk by Save. A Document is owned by
// a single goroutine; concurrent mutation is not safe.
type Document struct {
	width, height int
	resources     imageResources
	layers        layerAndMaskInfo
	merged        planarImage
	status        Status
}

// New creates a document of the given size seeded with one opaque
// "Background" layer. width and height are clamped to [1, 30000].
func New(width, height int, background Colour) *Document {
	width = clampInt(width, 1, maxDimension)
	height = clampInt(height, 1, maxDimension)

	doc := &Document{
		width:     width,
		height:    height,
		resources: imageResources{resolution: newResolutionInfo()},
		layers:    newLayerAndMaskInfo(),
		merged:    generateBackground(width, height, background),
	}

	bgChannels := compressExistingPlanes(doc.merged, CompressionRLE)
	rect := Rect{X: 0, Y: 0, W: width, H: height}
	record := newLayerRecord(1, "Background", rect, true, true, bgChannels, epochSeconds())

	doc.layers.records = append(doc.layers.records, record)
	doc.layers.images = append(doc.layers.images, bgChannels)
	doc.status = StatusSuccess

	return doc
}

func epochSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// SetResolution sets the document's pixel density in pixels per inch.
// ppi must lie in [1, 30000); violations leave the document unchanged.
func (d *Document) SetResolution(ppi float64) error {
	if ppi < minPPI || ppi >= maxPPI {
		d.status = StatusInvalidArgument
		return argumentError("resolution must be in [1, 30000) ppi")
	}

	intPart := uint16(ppi)
	frac := uint16(math.Round((ppi - math.Trunc(ppi)) * 65536))
	d.resources.resolution.hResInt = intPart
	d.resources.resolution.vResInt = intPart
	d.resources.resolution.hResFrac = frac
	d.resources.resolution.vResFrac = frac

	d.status = StatusSuccess
	return nil
}

// SetProfile embeds the ICC profile at path as a raw byte blob. Failure to
// read the file leaves any previously set profile untouched.
func (d *Document) SetProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		d.status = StatusNoProfile
		return wrapSentinel(ErrNoProfile, err)
	}

	d.resources.profile.data = data
	d.status = StatusSuccess
	return nil
}

// AddGuide appends a ruler guide at position (document units, stored
// scaled ×32) with the given orientation.
func (d *Document) AddGuide(position int, orientation Orientation) error {
	d.resources.grid.guides = append(d.resources.grid.guides, guide{
		position:    int32(position) * 32,
		orientation: uint8(orientation),
	})
	d.status = StatusSuccess
	return nil
}

// AddLayer appends a new layer built from a band-interleaved RGBA/BGRA
// pixel buffer at rect. Layers are numbered in call order, after the
// background. Only layers added with visible=true are composited into the
// merged preview; all layers are still written to the file.
func (d *Document) AddLayer(pixels []byte, rect Rect, name string, visible bool, order ChannelOrder, compression Compression) error {
	if rect.W <= 0 || rect.H <= 0 || len(name) > maxLayerNameBytes {
		d.status = StatusInvalidArgument
		return argumentError("layer rect must be positive and name must be at most 251 bytes")
	}

	img := loadLayerImage(pixels, order, rect.W, rect.H, compression)
	id := uint32(len(d.layers.records) + 1)
	record := newLayerRecord(id, name, rect, false, visible, img, epochSeconds())

	d.layers.records = append(d.layers.records, record)
	d.layers.images = append(d.layers.images, img)

	if visible {
		compositeOnto(&d.merged, pixels, rect, order)
	}

	d.status = StatusSuccess
	return nil
}

// Save serialises the document to path. If overwrite is false and path
// already exists, no file is written and ErrFileExists is returned. On any
// write failure or if the resulting file would be at or above 2 GiB, the
// partial file is removed and ErrFileWrite is returned.
func (d *Document) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			d.status = StatusFileExists
			return ErrFileExists
		}
	}

	f, err := os.Create(path)
	if err != nil {
		d.status = StatusFileWrite
		return wrapSentinel(ErrFileWrite, err)
	}

	size, writeErr := d.serialize(f)
	closeErr := f.Close()

	if writeErr != nil || closeErr != nil || size >= maxFileSize {
		os.Remove(path)
		d.status = StatusFileWrite
		if writeErr != nil {
			return wrapSentinel(ErrFileWrite, writeErr)
		}
		if closeErr != nil {
			return wrapSentinel(ErrFileWrite, closeErr)
		}
		return ErrFileWrite
	}

	d.status = StatusSuccess
	return nil
}

// Status reports the result of the most recent public operation.
func (d *Document) Status() Status {
	return d.status
}
