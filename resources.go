package psdwriter

// resourceBlock is the common 8BIM/uid/null-name/length envelope shared by
// every entry in the image-resources section.
type resourceBlock struct {
	uid  uint16
	body []byte
}

func (b resourceBlock) length() uint32 {
	return uint32(len(b.body))
}

// resolutionInfo is the fixed-point h/v pixels-per-inch resource (id 1005).
// frac = round((ppi - floor(ppi)) * 65536); width/height display units are
// fixed at "cm" (2), matching the reference writer's defaults.
type resolutionInfo struct {
	hResInt, hResFrac uint16
	vResInt, vResFrac uint16
}

func newResolutionInfo() resolutionInfo {
	return resolutionInfo{hResInt: 72, vResInt: 72}
}

func (r resolutionInfo) block() resourceBlock {
	body := make([]byte, 0, 16)
	body = appendU16(body, r.hResInt)
	body = appendU16(body, r.hResFrac)
	body = appendU16(body, 1) // h_res_unit = PPI
	body = appendU16(body, 2) // width_unit = cm
	body = appendU16(body, r.vResInt)
	body = appendU16(body, r.vResFrac)
	body = appendU16(body, 1) // v_res_unit = PPI
	body = appendU16(body, 2) // height_unit = cm
	return resourceBlock{uid: resourceIDResolutionInfo, body: body}
}

// iccProfile is the embedded colour-profile blob (id 1039); omitted from
// the file entirely when empty.
type iccProfile struct {
	data []byte
}

func (p iccProfile) block() resourceBlock {
	return resourceBlock{uid: resourceIDICCProfile, body: p.data}
}

// guide is one ruler guide: a position scaled by 32 (per spec.md §6.1) and
// an orientation byte.
type guide struct {
	position    int32
	orientation uint8
}

// gridAndGuides is the grid-cycle and ruler-guide resource (id 1032).
type gridAndGuides struct {
	guides []guide
}

func (g gridAndGuides) block() resourceBlock {
	body := make([]byte, 0, 16+5*len(g.guides))
	body = appendU32(body, 1) // version
	body = appendU32(body, gridCycleDefault)
	body = appendU32(body, gridCycleDefault)
	body = appendU32(body, uint32(len(g.guides)))
	for _, gd := range g.guides {
		body = appendI32(body, gd.position)
		body = append(body, gd.orientation)
	}
	return resourceBlock{uid: resourceIDGridAndGuides, body: body}
}

// imageResources is the document's resolution/profile/guide block set.
// length() follows spec.md §4.4, which folds in the grid-and-guides
// contribution the reference writer's ImageResources::length omits (see
// DESIGN.md).
type imageResources struct {
	resolution resolutionInfo
	profile    iccProfile
	grid       gridAndGuides
}

const resourceBlockOverhead = 12 // signature(4) + uid(2) + null-name(2) + length(4)

// paddedBlockLength is the on-disk footprint of a resource block's body:
// the body itself, plus one zero byte if that body is odd-length (spec.md
// §4.4 — every image-resource block, not just grid-and-guides, is padded
// to an even length).
func paddedBlockLength(bodyLen uint32) uint32 {
	if bodyLen%2 != 0 {
		return bodyLen + 1
	}
	return bodyLen
}

func (r imageResources) length() uint32 {
	total := paddedBlockLength(r.resolution.block().length()) + resourceBlockOverhead
	if len(r.profile.data) > 0 {
		total += paddedBlockLength(r.profile.block().length()) + resourceBlockOverhead
	}
	total += paddedBlockLength(r.grid.block().length()) + resourceBlockOverhead
	return total
}
