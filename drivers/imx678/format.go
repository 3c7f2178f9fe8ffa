package imx678

import (
	"errors"

	"sensorcode-go/types"
)

var (
	ErrEnumIndex         = errors.New("imx678: enumeration index out of range")
	ErrUnsupportedFormat = errors.New("imx678: unsupported format code")
	ErrInvalidSelection  = errors.New("imx678: unsupported selection target")
)

// EnumMbusCode returns the index'th format code a pad can carry. The image
// pad exposes one code per Bayer family (the flip variants of a family are
// not enumerated separately); the metadata pad exposes its single
// pseudo-format.
func (d *Device) EnumMbusCode(pad types.Pad, index int) (types.MbusCode, error) {
	if pad >= types.NumPads {
		return 0, ErrInvalidPad
	}
	if pad == types.PadImage {
		if index < 0 || index >= len(codesNormal)/4 {
			return 0, ErrEnumIndex
		}
		return formatCode(codesNormal[index*4]), nil
	}
	if index != 0 {
		return 0, ErrEnumIndex
	}
	return types.FmtSensorData, nil
}

// EnumFrameSize returns the index'th frame size available for a code on a
// pad. Modes have fixed dimensions, so minimum and maximum collapse to one
// size per entry.
func (d *Device) EnumFrameSize(pad types.Pad, code types.MbusCode, index int) (width, height uint32, err error) {
	if pad >= types.NumPads {
		return 0, 0, ErrInvalidPad
	}
	if pad == types.PadImage {
		d.mu.Lock()
		defer d.mu.Unlock()
		if index < 0 || index >= len(d.modes) {
			return 0, 0, ErrEnumIndex
		}
		if formatCode(code) != code {
			return 0, 0, ErrUnsupportedFormat
		}
		m := &d.modes[index]
		return m.Width, m.Height, nil
	}
	if code != types.FmtSensorData || index != 0 {
		return 0, 0, ErrUnsupportedFormat
	}
	return embeddedLineWidth, numEmbeddedLines, nil
}

// GetFormat reports a pad's proposed (try) or committed (active) format.
func (d *Device) GetFormat(pad types.Pad, which types.Whence) (types.PadFormat, error) {
	if pad >= types.NumPads {
		return types.PadFormat{}, ErrInvalidPad
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if which == types.WhenceTry {
		f := d.tryFmt[pad]
		// The code may change under flips; renormalize on every read.
		if pad == types.PadImage {
			f.Code = formatCode(f.Code)
		} else {
			f.Code = types.FmtSensorData
		}
		return f, nil
	}

	if pad == types.PadImage {
		return types.PadFormat{
			Width:  d.mode.Width,
			Height: d.mode.Height,
			Code:   formatCode(d.fmtCode),
		}, nil
	}
	return metadataFormat(), nil
}

// SetFormat negotiates a pad format. A try call records the proposal
// without side effects; an active call on the image pad commits the
// nearest mode and rederives every timing-dependent control range. The
// metadata pad is fixed and active requests simply snap to it.
func (d *Device) SetFormat(pad types.Pad, which types.Whence, req types.PadFormat) (types.PadFormat, error) {
	if pad >= types.NumPads {
		return types.PadFormat{}, ErrInvalidPad
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if pad == types.PadImage {
		code := formatCode(req.Code)
		mode := nearestMode(d.modes, req.Width, req.Height)
		got := types.PadFormat{Width: mode.Width, Height: mode.Height, Code: code}

		if which == types.WhenceTry {
			d.tryFmt[pad] = got
			return got, nil
		}
		if d.mode != mode || d.fmtCode != code {
			d.mode = mode
			d.fmtCode = code
			d.setFramingLimits()
		}
		return got, nil
	}

	if which == types.WhenceTry {
		d.tryFmt[pad] = req
		return req, nil
	}
	return metadataFormat(), nil
}

// Selection answers crop queries: the active mode's analog crop, the full
// native geometry, or the recommended/bounding pixel-array rectangle.
func (d *Device) Selection(target types.SelTarget) (types.Rect, error) {
	switch target {
	case types.SelCrop:
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.mode.Crop, nil
	case types.SelNative:
		return types.Rect{Width: nativeWidth, Height: nativeHeight}, nil
	case types.SelCropDefault, types.SelCropBounds:
		return pixelArrayCrop, nil
	}
	return types.Rect{}, ErrInvalidSelection
}

func metadataFormat() types.PadFormat {
	return types.PadFormat{
		Width:  embeddedLineWidth,
		Height: numEmbeddedLines,
		Code:   types.FmtSensorData,
	}
}
