package psdwriter

// A PSD file opens with a fixed 26-byte header followed by a strictly
// ordered sequence of length-prefixed sections, described on pages 9-16 of
// Adobe's "Photoshop File Formats" specification. Unlike TIFF, PSD has no
// byte-order marker: every multi-byte scalar is always big-endian.

const (
	fileSignature = "8BPS" // Header signature, written once.
	fileVersion   = 1      // Only version 1 (non-PSB) is supported.

	headerChannelCount = 3 // RGB; per-layer alpha channels are separate.
	headerDepth        = 8 // 8 bits per channel only.
	headerColourMode   = 3 // RGB.

	maxDimension = 30000 // Width/height clamp, inclusive.
	minPPI       = 1
	maxPPI       = 30000 // Exclusive upper bound, per spec.

	maxLayerNameBytes = 251

	maxFileSize = 2 * 1024 * 1024 * 1024 // 2 GiB.
)

// Compression codes shared by the channel-info prefix and the merged image
// data section.
const (
	compressionRaw = 0
	compressionRLE = 1
)

// Channel identifiers as stored in a layer's per-channel ChannelInfo.
const (
	channelIDAlpha int16 = -1
	channelIDRed   int16 = 0
	channelIDGreen int16 = 1
	channelIDBlue  int16 = 2
)

// Additional-layer-info and image-resource block signature.
const blockSignature8BIM = "8BIM"

// Image resource unique IDs (Adobe resource ID registry).
const (
	resourceIDResolutionInfo = 1005
	resourceIDICCProfile     = 1039
	resourceIDGridAndGuides  = 1032
)

const gridCycleDefault = 576

// Layer record flags. The reference source is inconsistent about which
// bit carries visibility; this package follows spec.md's resolution:
// bit 3 is always set, bit 0 is set whenever the layer is visible (the
// background layer is always visible), giving 9 for a visible layer and
// 8 for a hidden one.
const (
	layerFlagBase    uint8 = 1 << 3
	layerFlagVisible uint8 = 1 << 0
)

// lspf ("protect transparency + composite + position") value applied to the
// background layer only.
const lspfBackground uint32 = 0x0000000D
