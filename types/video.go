// types/video.go
package types

// MbusCode identifies a media-bus pixel format produced on a sensor pad.
// Values follow the Linux media-bus numbering so downstream receivers can
// match them without translation.
type MbusCode uint32

const (
	// 12-bit Bayer family, normal orientation first, then the three
	// flip-rotated orders of the same family.
	FmtSRGGB12 MbusCode = 0x3012
	FmtSGRBG12 MbusCode = 0x3011
	FmtSGBRG12 MbusCode = 0x3010
	FmtSBGGR12 MbusCode = 0x3008

	// Opaque per-frame embedded metadata.
	FmtSensorData MbusCode = 0x7002
)

// Rect is a pixel-array rectangle (analog crop, native size, bounds).
type Rect struct {
	Left   int32
	Top    int32
	Width  uint32
	Height uint32
}

// Pad indices on the sensor entity.
type Pad int

const (
	PadImage Pad = iota
	PadMetadata
	NumPads
)

// PadFormat is a (proposed or active) format on one pad.
type PadFormat struct {
	Width  uint32
	Height uint32
	Code   MbusCode
}

// Whence selects between proposing a format and committing it.
type Whence uint8

const (
	WhenceTry Whence = iota
	WhenceActive
)

// SelTarget names a selection rectangle query.
type SelTarget uint8

const (
	SelCrop SelTarget = iota
	SelNative
	SelCropDefault
	SelCropBounds
)
