package imx678

import "sensorcode-go/types"

// regVal is one register address/value pair of a write list.
type regVal struct {
	addr uint16
	val  uint8
}

// Mode is one resolution catalog entry. Width/height are fixed; MinHMAX and
// DefaultHMAX are recomputed from the link configuration at Configure time,
// which is why every Device owns its own copy of the catalog (see
// cloneModes) instead of sharing package state.
type Mode struct {
	Width  uint32
	Height uint32

	// HMAX scaling divisor applied to the link-frequency baseline.
	HMaxDiv uint8

	MinHMAX     uint16
	DefaultHMAX uint16
	MinVMAX     uint32
	DefaultVMAX uint32

	// Analog crop rectangle.
	Crop types.Rect

	// Mode-specific register patch list applied over the common baseline.
	regs []regVal
}

var pixelArrayCrop = types.Rect{
	Left:   pixelArrayLeft,
	Top:    pixelArrayTop,
	Width:  pixelArrayWidth,
	Height: pixelArrayHeight,
}

// modeTemplates is the immutable catalog. The HMAX fields hold the 891MHz
// 4-lane values as placeholders; they are overwritten per device as soon as
// the link configuration is known.
var modeTemplates = []Mode{
	{
		// 1080p 2x2 binning
		Width:       1928,
		Height:      1090,
		HMaxDiv:     1,
		MinHMAX:     366,
		DefaultHMAX: 366,
		MinVMAX:     vmaxDefault,
		DefaultVMAX: vmaxDefault,
		Crop:        pixelArrayCrop,
		regs:        modeBinnedRegs,
	},
	{
		// 4K all pixel
		Width:       3856,
		Height:      2180,
		HMaxDiv:     1,
		MinHMAX:     550,
		DefaultHMAX: 550,
		MinVMAX:     vmaxDefault,
		DefaultVMAX: vmaxDefault,
		Crop:        pixelArrayCrop,
		regs:        mode4KRegs,
	},
}

// cloneModes returns a device-owned copy of the catalog so link-dependent
// HMAX rewrites never alias across instances.
func cloneModes() []Mode {
	m := make([]Mode, len(modeTemplates))
	copy(m, modeTemplates)
	return m
}

// The supported image-pad formats. The table keeps four entries per family
// covering the flip combinations in the order no flip, h flip, v flip,
// h&v flip.
var codesNormal = []types.MbusCode{
	types.FmtSRGGB12,
	types.FmtSGRBG12,
	types.FmtSGBRG12,
	types.FmtSBGGR12,
}

// formatCode resolves a requested image-pad code to the one the sensor
// produces. The sensor reorders its filter readout under flips itself, so
// the normal-order code is returned as-is for any member of the family and
// unknown codes fall back to the family default.
func formatCode(code types.MbusCode) types.MbusCode {
	for _, c := range codesNormal {
		if c == code {
			return code
		}
	}
	return codesNormal[0]
}

func supportedImageCode(code types.MbusCode) bool {
	for _, c := range codesNormal {
		if c == code {
			return true
		}
	}
	return false
}

// nearestMode picks the catalog entry whose pixel count is closest to the
// requested size. Dimensions are fixed per mode, so this is a closest-area
// match over the two entries.
func nearestMode(modes []Mode, width, height uint32) *Mode {
	want := uint64(width) * uint64(height)
	best := &modes[0]
	bestDiff := areaDiff(best, want)
	for i := 1; i < len(modes); i++ {
		if d := areaDiff(&modes[i], want); d < bestDiff {
			best = &modes[i]
			bestDiff = d
		}
	}
	return best
}

func areaDiff(m *Mode, want uint64) uint64 {
	area := uint64(m.Width) * uint64(m.Height)
	if area > want {
		return area - want
	}
	return want - area
}
