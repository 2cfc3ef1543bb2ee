package psdwriter

// layerRect places a layer's content within the canvas as
// (top, left, bottom, right), per spec.md §3: rect = (y, x, y+h, x+w).
type layerRect struct {
	top, left, bottom, right uint32
}

// channelInfo is one entry in a layer's channel table: a signed channel id
// (-1 = alpha, 0 = red, 1 = green, 2 = blue) and the on-disk byte length of
// that channel's compression-code + bytecounts + pixel data.
type channelInfo struct {
	id     int16
	length uint32
}

// blendingRanges is one of the five fixed grey/R/G/B/alpha blending-range
// tuples every layer carries, left at Photoshop's full-range defaults.
type blendingRanges struct {
	srcBlackLower, srcBlackUpper, srcWhiteLower, srcWhiteUpper uint8
	dstBlackLower, dstBlackUpper, dstWhiteLower, dstWhiteUpper uint8
}

func defaultBlendingRanges() blendingRanges {
	return blendingRanges{
		srcBlackLower: 0, srcBlackUpper: 0, srcWhiteLower: 255, srcWhiteUpper: 255,
		dstBlackLower: 0, dstBlackUpper: 0, dstWhiteLower: 255, dstWhiteUpper: 255,
	}
}

// layerRecord is one entry in the layer list: its placement, channel
// table, blend settings, name and additional-info blocks. Layer masks are
// never active in this package (spec.md §7 supplement — there is no public
// API to set one), so the layer-mask data length is always 0 and no mask
// body is ever written.
type layerRecord struct {
	rect         layerRect
	hasAlpha     bool
	alpha        channelInfo
	red          channelInfo
	green        channelInfo
	blue         channelInfo
	flags        uint8
	name         string
	background   bool
	layerID      uint32
	saveTime     float64
	additional   []additionalInfo
}

const (
	layerRecordFixedOverhead = 34 // rect(16) + channelCount(2) + blend sig/key(8) + opacity/clipping/flags/filler(4) + extraDataLength(4)
	channelInfoSize          = 6  // id (i16) + length (u32)
)

func newLayerRecord(id uint32, name string, rect Rect, background bool, visible bool, img planarImage, saveTime float64) layerRecord {
	lr := layerRecord{
		rect: layerRect{
			top:    uint32(rect.Y),
			left:   uint32(rect.X),
			bottom: uint32(rect.Y + rect.H),
			right:  uint32(rect.X + rect.W),
		},
		hasAlpha:   len(img.channels) == 4,
		background: background,
		name:       name,
		layerID:    id,
		saveTime:   saveTime,
	}

	channels := img.channels
	if lr.hasAlpha {
		lr.alpha = channelInfo{id: channelIDAlpha, length: channels[0].length()}
		lr.red = channelInfo{id: channelIDRed, length: channels[1].length()}
		lr.green = channelInfo{id: channelIDGreen, length: channels[2].length()}
		lr.blue = channelInfo{id: channelIDBlue, length: channels[3].length()}
	} else {
		lr.red = channelInfo{id: channelIDRed, length: channels[0].length()}
		lr.green = channelInfo{id: channelIDGreen, length: channels[1].length()}
		lr.blue = channelInfo{id: channelIDBlue, length: channels[2].length()}
	}

	lr.flags = layerFlagBase
	if visible {
		lr.flags |= layerFlagVisible
	}

	lr.additional = []additionalInfo{
		newUnicodeNameInfo(name),
		newNameSourceInfo(background),
		newLayerIDInfo(id),
		newClippingElementsInfo(),
		newInteriorElementsInfo(),
		newKnockoutInfo(),
		newProtectedSettingInfo(background),
		newSheetColorInfo(),
		newMetadataSettingInfo(),
		newCustomInfo(saveTime),
		newReferencePointInfo(float64(rect.X), float64(rect.Y)),
	}

	return lr
}

func pascalStringLength(name string) uint32 {
	total := 1 + uint32(len(name))
	if rem := total % 4; rem != 0 {
		total += 4 - rem
	}
	return total
}

// extraDataLength is the portion of a layer record following its fixed
// 34-byte prefix: the (inactive) mask block, blending ranges, Pascal name
// and every additional-info block, per spec.md §4.4.
func (lr layerRecord) extraDataLength() uint32 {
	var length uint32
	length += 0 + 4 // layer-mask data length: always 0, plus its own u32 field
	length += 40 + 4 // blending-ranges data, plus its own u32 length field
	length += pascalStringLength(lr.name)
	for _, a := range lr.additional {
		length += a.totalLength()
	}
	return length
}

// length is this record's footprint from its content rect through the end
// of its additional-info blocks, excluding the channel image data itself.
func (lr layerRecord) length() uint32 {
	length := uint32(layerRecordFixedOverhead)
	if lr.hasAlpha {
		length += channelInfoSize
	}
	length += channelInfoSize * 3
	length += lr.extraDataLength()
	return length
}

// globalLayerMaskInfo is always inactive: this package exposes no API to
// create a layer mask, so the block collapses to its 4-byte filler.
type globalLayerMaskInfo struct{}

func (globalLayerMaskInfo) length() uint32 { return 4 }

// layerAndMaskInfo is the layer list plus the trailing document-level
// additional-info blocks (Patt/FMsk/cinf) and the inactive global mask.
type layerAndMaskInfo struct {
	records    []layerRecord
	images     []planarImage
	globalMask globalLayerMaskInfo
	patterns   additionalInfo
	filterMask additionalInfo
	compositor additionalInfo
}

func newLayerAndMaskInfo() layerAndMaskInfo {
	return layerAndMaskInfo{
		patterns:   newPatternsInfo(),
		filterMask: newFilterMaskInfo(),
		compositor: newCompositorInfo(),
	}
}

func (l layerAndMaskInfo) layerCount() uint16 {
	return uint16(len(l.records))
}

// layerInfoLength is the 2-byte layer count, every layer record (channel
// table + extra data), every channel's compressed data, and the trailing
// 2-byte mystery-null field.
func (l layerAndMaskInfo) layerInfoLength() uint32 {
	length := uint32(2)
	for i, lr := range l.records {
		length += lr.length()
		for _, ch := range l.images[i].channels {
			length += ch.length()
		}
	}
	length += 2
	return length
}

func (l layerAndMaskInfo) length() uint32 {
	length := l.layerInfoLength() + 4 // its own u32 field
	length += l.globalMask.length()
	length += l.patterns.totalLength()
	length += l.filterMask.totalLength()
	length += l.compositor.totalLength()
	return length
}
