package psdwriter

// additionalInfo is a single "additional layer info" (or document-level
// equivalent) block: a 4-byte "8BIM" signature, a 4-byte key, an optional
// length-prefix, and a payload. Modelling every block as one closed shape
// rather than a polymorphic hierarchy avoids a per-variant vtable in the
// serialiser (see spec.md §9): the handful of keys that fold extra framing
// into their body (luni's unicode length, cust's timestamp, shmd's fixed
// header) just precompute that framing into payload at construction time.
type additionalInfo struct {
	key        string
	payload    []byte
	omitLength bool // shmd and cust are written without their own length field
}

// totalLength is this block's footprint within a LayerRecord's
// extra-data length or a document-level additional-info sum.
func (a additionalInfo) totalLength() uint32 {
	total := uint32(8 + len(a.payload)) // signature + key
	if !a.omitLength {
		total += 4
	}
	return total
}

// custPreamble is the fixed, undocumented prefix of the "cust" block; its
// internal structure is an opaque Adobe descriptor (spec.md §9 Open
// Questions), carried verbatim.
var custPreamble = []byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x34, 0x00, 0x00, 0x00, 0x10,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08, 0x6D, 0x65,
	0x74, 0x61, 0x64, 0x61, 0x74, 0x61, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00,
	0x00, 0x09, 0x6C, 0x61, 0x79, 0x65, 0x72, 0x54, 0x69, 0x6D, 0x65, 0x64,
	0x6F, 0x75, 0x62,
}

// compositorInfoPayload is the "cinf" document-level descriptor blob: an
// opaque Adobe compositor-capabilities descriptor (spec.md §9 Open
// Questions), carried verbatim.
var compositorInfoPayload = []byte{
	0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x6E, 0x75, 0x6C, 0x6C, 0x00, 0x00, 0x00, 0x09,
	0x00, 0x00, 0x00, 0x00, 0x56, 0x72, 0x73, 0x6E, 0x4F, 0x62, 0x6A,
	0x63, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x6E, 0x75, 0x6C, 0x6C, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00,
	0x05, 0x6D, 0x61, 0x6A, 0x6F, 0x72, 0x6C, 0x6F, 0x6E, 0x67, 0x00,
	0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x05, 0x6D, 0x69, 0x6E, 0x6F,
	0x72, 0x6C, 0x6F, 0x6E, 0x67, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00,
	0x00, 0x03, 0x66, 0x69, 0x78, 0x6C, 0x6F, 0x6E, 0x67, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x09, 0x70, 0x73, 0x56, 0x65, 0x72,
	0x73, 0x69, 0x6F, 0x6E, 0x4F, 0x62, 0x6A, 0x63, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x6E, 0x75, 0x6C, 0x6C,
	0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x05, 0x6D, 0x61, 0x6A,
	0x6F, 0x72, 0x6C, 0x6F, 0x6E, 0x67, 0x00, 0x00, 0x00, 0x15, 0x00,
	0x00, 0x00, 0x05, 0x6D, 0x69, 0x6E, 0x6F, 0x72, 0x6C, 0x6F, 0x6E,
	0x67, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x03, 0x66, 0x69,
	0x78, 0x6C, 0x6F, 0x6E, 0x67, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00,
	0x00, 0x0B, 0x64, 0x65, 0x73, 0x63, 0x72, 0x69, 0x70, 0x74, 0x69,
	0x6F, 0x6E, 0x54, 0x45, 0x58, 0x54, 0x00, 0x00, 0x00, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x06, 0x72, 0x65, 0x61, 0x73, 0x6F, 0x6E,
	0x54, 0x45, 0x58, 0x54, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x45, 0x6E, 0x67, 0x6E, 0x65, 0x6E, 0x75, 0x6D,
	0x00, 0x00, 0x00, 0x00, 0x45, 0x6E, 0x67, 0x6E, 0x00, 0x00, 0x00,
	0x08, 0x63, 0x6F, 0x6D, 0x70, 0x43, 0x6F, 0x72, 0x65, 0x00, 0x00,
	0x00, 0x0E, 0x65, 0x6E, 0x61, 0x62, 0x6C, 0x65, 0x43, 0x6F, 0x6D,
	0x70, 0x43, 0x6F, 0x72, 0x65, 0x65, 0x6E, 0x75, 0x6D, 0x00, 0x00,
	0x00, 0x06, 0x65, 0x6E, 0x61, 0x62, 0x6C, 0x65, 0x00, 0x00, 0x00,
	0x07, 0x66, 0x65, 0x61, 0x74, 0x75, 0x72, 0x65, 0x00, 0x00, 0x00,
	0x11, 0x65, 0x6E, 0x61, 0x62, 0x6C, 0x65, 0x43, 0x6F, 0x6D, 0x70,
	0x43, 0x6F, 0x72, 0x65, 0x47, 0x50, 0x55, 0x65, 0x6E, 0x75, 0x6D,
	0x00, 0x00, 0x00, 0x06, 0x65, 0x6E, 0x61, 0x62, 0x6C, 0x65, 0x00,
	0x00, 0x00, 0x07, 0x66, 0x65, 0x61, 0x74, 0x75, 0x72, 0x65, 0x00,
	0x00, 0x00, 0x0F, 0x63, 0x6F, 0x6D, 0x70, 0x43, 0x6F, 0x72, 0x65,
	0x53, 0x75, 0x70, 0x70, 0x6F, 0x72, 0x74, 0x65, 0x6E, 0x75, 0x6D,
	0x00, 0x00, 0x00, 0x06, 0x72, 0x65, 0x61, 0x73, 0x6F, 0x6E, 0x00,
	0x00, 0x00, 0x09, 0x73, 0x75, 0x70, 0x70, 0x6F, 0x72, 0x74, 0x65,
	0x64, 0x00, 0x00, 0x00, 0x12, 0x63, 0x6F, 0x6D, 0x70, 0x43, 0x6F,
	0x72, 0x65, 0x47, 0x50, 0x55, 0x53, 0x75, 0x70, 0x70, 0x6F, 0x72,
	0x74, 0x65, 0x6E, 0x75, 0x6D, 0x00, 0x00, 0x00, 0x06, 0x72, 0x65,
	0x61, 0x73, 0x6F, 0x6E, 0x00, 0x00, 0x00, 0x0F, 0x66, 0x65, 0x61,
	0x74, 0x75, 0x72, 0x65, 0x44, 0x69, 0x73, 0x61, 0x62, 0x6C, 0x65,
	0x64,
}

// filterMaskPayload is the fixed "FMsk" document-level block body.
var filterMaskPayload = []byte{0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x32}

func newUnicodeNameInfo(name string) additionalInfo {
	units := encodeUTF16BE(name)
	payload := make([]byte, 0, 4+len(units)+2)
	payload = appendU32(payload, uint32(len(units)/2))
	payload = append(payload, units...)
	if (len(units)/2)%2 == 1 {
		payload = append(payload, 0, 0)
	}
	return additionalInfo{key: "luni", payload: payload}
}

func newNameSourceInfo(background bool) additionalInfo {
	kw := "layr"
	if background {
		kw = "bgnd"
	}
	return additionalInfo{key: "lnsr", payload: []byte(kw)}
}

func newLayerIDInfo(id uint32) additionalInfo {
	payload := appendU32(nil, id)
	return additionalInfo{key: "lyid", payload: payload}
}

func newClippingElementsInfo() additionalInfo {
	return additionalInfo{key: "clbl", payload: []byte{1, 0, 0, 0}}
}

func newInteriorElementsInfo() additionalInfo {
	return additionalInfo{key: "infx", payload: []byte{0, 0, 0, 0}}
}

func newKnockoutInfo() additionalInfo {
	return additionalInfo{key: "knko", payload: []byte{0, 0, 0, 0}}
}

func newProtectedSettingInfo(background bool) additionalInfo {
	var flags uint32
	if background {
		flags = lspfBackground
	}
	return additionalInfo{key: "lspf", payload: appendU32(nil, flags)}
}

func newSheetColorInfo() additionalInfo {
	return additionalInfo{key: "lclr", payload: make([]byte, 8)}
}

func newMetadataSettingInfo() additionalInfo {
	return additionalInfo{key: "shmd", payload: []byte{0, 0, 0, 72, 0, 0, 0, 1}, omitLength: true}
}

// newCustomInfo builds the mandatory "cust" block: the opaque preamble,
// a big-endian Unix-epoch-seconds timestamp, and a trailing null byte.
func newCustomInfo(timestamp float64) additionalInfo {
	payload := make([]byte, 0, len(custPreamble)+9)
	payload = append(payload, custPreamble...)
	payload = appendF64(payload, timestamp)
	payload = append(payload, 0)
	return additionalInfo{key: "cust", payload: payload, omitLength: true}
}

func newReferencePointInfo(x, y float64) additionalInfo {
	payload := make([]byte, 0, 16)
	payload = appendF64(payload, x)
	payload = appendF64(payload, y)
	return additionalInfo{key: "fxrp", payload: payload}
}

func newPatternsInfo() additionalInfo {
	return additionalInfo{key: "Patt"}
}

func newFilterMaskInfo() additionalInfo {
	return additionalInfo{key: "FMsk", payload: filterMaskPayload}
}

func newCompositorInfo() additionalInfo {
	return additionalInfo{key: "cinf", payload: compositorInfoPayload}
}
