package imx678

import "time"

// SetStream enables or disables streaming. Enabling powers the sensor if
// needed, runs the full register bring-up and locks the flip controls;
// disabling drops to standby but leaves power applied so the register
// state survives for a fast restart. Calls matching the current state are
// no-ops and touch no registers.
func (d *Device) SetStream(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.streaming == on {
		return nil
	}

	if on {
		if err := d.powerOn(); err != nil {
			return err
		}
		if err := d.startStreaming(); err != nil {
			d.stopStreaming()
			return err
		}
		d.streaming = true
		d.grabFlips(true)
		return nil
	}

	d.stopStreaming()
	d.streaming = false
	d.grabFlips(false)
	return nil
}

// startStreaming runs the standby-to-streaming bring-up. The common
// baseline and link configuration are written once per power cycle; the
// mode patch, clamp disable and buffered control values are replayed on
// every start. Failures before the once-block completes leave
// commonWritten false so the whole block is retried; failures after it
// leave partial mode state and flag the device degraded.
func (d *Device) startStreaming() error {
	if !d.commonWritten {
		if err := d.writeRegList(commonRegs); err != nil {
			return err
		}
		if err := d.writeReg1(regInckSel, d.inckSel); err != nil {
			return err
		}
		if err := d.writeReg2(regBlkLevel, blkLevelDefault); err != nil {
			return err
		}
		if err := d.writeReg1(regDatarateSel, linkFreqRegValue[d.linkIdx]); err != nil {
			return err
		}
		lm := uint8(laneMode4)
		if d.laneCount == 2 {
			lm = laneMode2
		}
		if err := d.writeReg1(regLanemode, lm); err != nil {
			return err
		}
		sr := syncModeRegs[d.syncMode]
		if sr.writeExtmode {
			if err := d.writeReg1(regExtmode, sr.extmode); err != nil {
				return err
			}
		}
		if err := d.writeReg1(regXXSDrv, sr.xxsDrv); err != nil {
			return err
		}
		if err := d.writeReg1(regXXSOutsel, sr.xxsOutsel); err != nil {
			return err
		}
		d.commonWritten = true
	}

	if err := d.writeRegList(d.mode.regs); err != nil {
		d.degraded = true
		return err
	}

	if err := d.writeReg1(regDigitalClamp, 0); err != nil {
		d.degraded = true
		return err
	}

	if err := d.applyAll(); err != nil {
		return err
	}

	// Both leader modes strobe the master-start register; a follower waits
	// for external sync instead.
	if d.syncMode != SyncFollower {
		if err := d.writeReg1(regXMSTA, 0x00); err != nil {
			d.degraded = true
			return err
		}
	}

	if err := d.writeReg1(regModeSelect, modeStreaming); err != nil {
		d.degraded = true
		return err
	}

	time.Sleep(streamSettle + streamSettleJitter)
	return nil
}

// stopStreaming drops the sensor to standby. Best effort: a lost standby
// write cannot be retried usefully, so it only flags degraded.
func (d *Device) stopStreaming() {
	if err := d.writeReg1(regModeSelect, modeStandby); err != nil {
		d.degraded = true
	}
}
