package imx678

import "sensorcode-go/x/mathx"

// ControlID names an adjustable parameter.
type ControlID uint8

const (
	CtrlPixelRate ControlID = iota
	CtrlLinkFreq
	CtrlVBlank
	CtrlHBlank
	CtrlExposure
	CtrlAnalogGain
	CtrlHFlip
	CtrlVFlip
	CtrlBlackLevel
	CtrlHGC
	numControls
)

var controlNames = [numControls]string{
	CtrlPixelRate:  "pixel_rate",
	CtrlLinkFreq:   "link_freq",
	CtrlVBlank:     "vblank",
	CtrlHBlank:     "hblank",
	CtrlExposure:   "exposure",
	CtrlAnalogGain: "analog_gain",
	CtrlHFlip:      "hflip",
	CtrlVFlip:      "vflip",
	CtrlBlackLevel: "black_level",
	CtrlHGC:        "hgc",
}

func (id ControlID) String() string {
	if id < numControls {
		return controlNames[id]
	}
	return "unknown"
}

// ControlByName resolves a control name to its ID.
func ControlByName(name string) (ControlID, bool) {
	for id, n := range controlNames {
		if n == name {
			return ControlID(id), true
		}
	}
	return 0, false
}

// ControlIDs lists every control in stable order.
func ControlIDs() []ControlID {
	ids := make([]ControlID, numControls)
	for i := range ids {
		ids[i] = ControlID(i)
	}
	return ids
}

// Control is one adjustable parameter: current value plus the legal range
// it is clamped into. Ranges of the timing-coupled controls are derived
// state and move whenever the mode, link config or VMAX changes.
type Control struct {
	Min      int64
	Max      int64
	Step     int64
	Def      int64
	Val      int64
	ReadOnly bool
	Grabbed  bool
}

// initControls creates the control set with placeholder ranges; the real
// mode-specific limits are derived in setFramingLimits.
func (d *Device) initControls() {
	d.ctrl[CtrlPixelRate] = Control{Min: 0xFFFF, Max: 0xFFFF, Step: 1, Def: 0xFFFF, Val: 0xFFFF, ReadOnly: true}
	lf := int64(linkFreqHz[d.linkIdx])
	d.ctrl[CtrlLinkFreq] = Control{Min: lf, Max: lf, Step: 1, Def: lf, Val: lf, ReadOnly: true}
	d.ctrl[CtrlVBlank] = Control{Min: 0, Max: vmaxMax, Step: 1}
	d.ctrl[CtrlHBlank] = Control{Min: 0, Max: hmaxMax, Step: 1}
	d.ctrl[CtrlExposure] = Control{
		Min: exposureMin, Max: vmaxDefault - shrMinHDRReserve,
		Step: exposureStep, Def: exposureDefault, Val: exposureDefault,
	}
	d.ctrl[CtrlAnalogGain] = Control{
		Min: gainMinNormal, Max: gainMaxNormal,
		Step: gainStep, Def: gainDefault, Val: gainDefault,
	}
	d.ctrl[CtrlHFlip] = Control{Min: 0, Max: 1, Step: 1}
	d.ctrl[CtrlVFlip] = Control{Min: 0, Max: 1, Step: 1}
	d.ctrl[CtrlBlackLevel] = Control{
		Min: 0, Max: 0xFFFF, Step: 1,
		Def: blkLevelDefault, Val: blkLevelDefault,
	}
	d.ctrl[CtrlHGC] = Control{Min: 0, Max: 1, Step: 1}
}

// modifyRange is a single logical operation: move the range, then clamp
// the current value back inside it. A control's value is never left
// outside its own range.
func (c *Control) modifyRange(min, max, def int64) {
	c.Min, c.Max, c.Def = min, max, def
	c.Val = mathx.Clamp(c.Val, min, max)
}

// GetControl returns a snapshot of one control.
func (d *Device) GetControl(id ControlID) (Control, error) {
	if id >= numControls {
		return Control{}, ErrUnknownControl
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ctrl[id], nil
}

// SetControl validates and stores a control value, and pushes it to
// hardware when the sensor is powered. When unpowered the value is
// buffered and replayed in full at the next streaming start.
func (d *Device) SetControl(id ControlID, val int64) error {
	if id >= numControls {
		return ErrUnknownControl
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	c := &d.ctrl[id]
	if c.ReadOnly {
		return ErrControlReadOnly
	}
	if c.Grabbed {
		return ErrControlGrabbed
	}
	c.Val = mathx.Clamp(val, c.Min, c.Max)

	if !d.powered {
		return nil
	}
	d.applyControl(id)
	return nil
}

// applyControl issues the register writes for a control's current value
// and runs its dependent range recomputations. Bus errors here are
// swallowed (the in-memory value stands) but flag the device degraded;
// there is no read-back verification or retry.
func (d *Device) applyControl(id ControlID) {
	c := &d.ctrl[id]
	var err error

	switch id {
	case CtrlExposure:
		// No direct exposure register: larger exposure means smaller
		// shutter value, always even.
		shr := (d.vmax - uint32(c.Val)) &^ 1
		err = d.writeReg3(regSHR, shr)

	case CtrlVBlank:
		// VMAX moves with vertical blanking, which moves the legal
		// exposure ceiling; re-clamp exposure before touching hardware
		// so the two registers change together under hold.
		d.vmax = (d.mode.Height + uint32(c.Val)) &^ 1 & vmaxMax
		exp := &d.ctrl[CtrlExposure]
		oldExp := exp.Val
		exp.modifyRange(exposureMin, int64(d.vmax)-shrMinHDRReserve, exp.Val)
		d.holdRegs(true)
		err = d.writeReg3(regVMAX, d.vmax)
		if exp.Val != oldExp {
			shr := (d.vmax - uint32(exp.Val)) &^ 1
			if werr := d.writeReg3(regSHR, shr); err == nil {
				err = werr
			}
		}
		d.holdRegs(false)

	case CtrlHBlank:
		// Fixed for the mode, so HMAX is well-defined regardless of
		// write order.
		pr := d.pixelRate()
		hmax := (uint64(d.mode.Width) + uint64(c.Val)) * pixelRateConst / pr
		d.hmax = uint16(hmax) &^ 1
		err = d.writeReg2(regHMAX, d.hmax)

	case CtrlAnalogGain:
		err = d.writeReg2(regAnalogGain, uint16(c.Val))

	case CtrlHGC:
		d.hgc = c.Val != 0
		gainBefore := d.ctrl[CtrlAnalogGain].Val
		d.updateGainLimits()
		err = d.writeReg1(regFDGSel0, uint8(c.Val))
		if g := d.ctrl[CtrlAnalogGain].Val; g != gainBefore {
			if werr := d.writeReg2(regAnalogGain, uint16(g)); err == nil {
				err = werr
			}
		}

	case CtrlHFlip:
		err = d.writeReg1(regFlipWinmodeH, uint8(c.Val))

	case CtrlVFlip:
		err = d.writeReg1(regFlipWinmodeV, uint8(c.Val))

	case CtrlBlackLevel:
		lvl := c.Val
		if lvl > blkLevelMax {
			lvl = blkLevelMax
		}
		err = d.writeReg2(regBlkLevel, uint16(lvl))

	case CtrlPixelRate, CtrlLinkFreq:
		// Derived, no register behind them.
	}

	if err != nil {
		d.degraded = true
	}
}

// applyControlOrder replays buffered values at stream start. VBlank runs
// first so VMAX and the exposure ceiling are settled before SHR, and HGC
// before gain so the gain floor is final.
var applyControlOrder = []ControlID{
	CtrlVBlank,
	CtrlHBlank,
	CtrlHGC,
	CtrlAnalogGain,
	CtrlExposure,
	CtrlHFlip,
	CtrlVFlip,
	CtrlBlackLevel,
}

// applyAll pushes every control's current value to hardware, stopping at
// the first bus failure.
func (d *Device) applyAll() error {
	for _, id := range applyControlOrder {
		wasDegraded := d.degraded
		d.applyControl(id)
		if d.degraded && !wasDegraded {
			return ErrDegraded
		}
	}
	return nil
}

// grabFlips locks the flip controls for the duration of a stream: a flip
// changes the Bayer order a downstream consumer has already negotiated.
func (d *Device) grabFlips(grab bool) {
	d.ctrl[CtrlHFlip].Grabbed = grab
	d.ctrl[CtrlVFlip].Grabbed = grab
}
