package imx678

// pixelRate is the effective pixel clock of the active mode: the mode's
// width spread over its minimum line time, scaled by the fixed rate
// constant.
func (d *Device) pixelRate() uint64 {
	return uint64(d.mode.Width) * pixelRateConst / uint64(d.mode.MinHMAX)
}

// updateHMAXBaselines rewrites the per-mode HMAX floors from the link
// configuration. The catalog tables carry the 4-lane baseline; two lanes
// halve the throughput so the line time doubles.
func (d *Device) updateHMAXBaselines() {
	factor := uint32(hmaxBase4Lane[d.linkIdx])
	if d.laneCount == 2 {
		factor *= 2
	}
	for i := range d.modes {
		h := uint16(factor / uint32(d.modes[i].HMaxDiv))
		d.modes[i].MinHMAX = h
		d.modes[i].DefaultHMAX = h
	}
}

// setFramingLimits resets the timing state to the active mode's defaults
// and rederives every control range that depends on them. Runs after Init
// and after every active-pad format commit.
func (d *Device) setFramingLimits() {
	m := d.mode
	d.vmax = m.DefaultVMAX & vmaxMax
	d.hmax = m.DefaultHMAX & hmaxMax

	pr := d.pixelRate()
	c := &d.ctrl[CtrlPixelRate]
	c.Min, c.Max, c.Step, c.Def, c.Val = int64(pr), int64(pr), 1, int64(pr), int64(pr)

	maxHblank := int64(uint64(hmaxMax)*pr/pixelRateConst) - int64(m.Width)
	defHblank := int64(uint64(m.DefaultHMAX)*pr/pixelRateConst) - int64(m.Width)
	hb := &d.ctrl[CtrlHBlank]
	hb.modifyRange(0, maxHblank, defHblank)
	hb.Val = defHblank

	vb := &d.ctrl[CtrlVBlank]
	vb.modifyRange(
		int64(m.MinVMAX)-int64(m.Height),
		vmaxMax-int64(m.Height),
		int64(m.DefaultVMAX)-int64(m.Height),
	)
	vb.Val = vb.Def

	// Exposure keeps its value (clamped); only the ceiling moves.
	exp := &d.ctrl[CtrlExposure]
	exp.modifyRange(exposureMin, int64(d.vmax)-shrMinHDRReserve, exposureDefault)

	d.updateGainLimits()
}

// updateGainLimits moves the gain floor with the gain channel: the high
// conversion gain path only supports the upper part of the range.
func (d *Device) updateGainLimits() {
	min := int64(gainMinNormal)
	if d.hgc {
		min = gainMinHGC
	}
	d.ctrl[CtrlAnalogGain].modifyRange(min, gainMaxNormal, gainDefault)
}
