// Package imx678 drives the control plane of the Sony IMX678 CMOS image
// sensor over its two-wire register bus. It owns the mode/timing/exposure
// register-state machine: the catalog of resolution modes, the derived
// legal ranges for exposure, gain and blanking, and the write ordering
// across standby/streaming transitions. Pixel data never passes through
// this package; a separate capture pipeline consumes the stream the sensor
// emits once streaming is enabled here.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
package imx678

import (
	"errors"
	"sync"
	"time"

	"tinygo.org/x/drivers"

	"sensorcode-go/types"
)

// Errors returned by the driver.
var (
	ErrUnsupportedXclk     = errors.New("imx678: unsupported input clock rate")
	ErrUnsupportedLanes    = errors.New("imx678: only 2 or 4 data lanes are supported")
	ErrUnsupportedLinkFreq = errors.New("imx678: unsupported link frequency")
	ErrDeviceNotFound      = errors.New("imx678: presence probe read failed")
	ErrControlGrabbed      = errors.New("imx678: control locked while streaming")
	ErrControlReadOnly     = errors.New("imx678: control is read-only")
	ErrUnknownControl      = errors.New("imx678: unknown control")
	ErrInvalidPad          = errors.New("imx678: invalid pad")
	ErrDegraded            = errors.New("imx678: partial register state, full reinit required")
)

// Power abstracts the platform power-sequencing primitives (regulators,
// clock enable, reset line). Implementations must be idempotent.
type Power interface {
	PowerOn() error
	PowerOff() error
}

// Config is the startup hardware description. All fields are required
// except Address and SyncMode.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address uint16
	// XclkHz must match one of the eight supported input clock rates.
	XclkHz uint32
	// LaneCount is 2 or 4.
	LaneCount int
	// LinkFreqHz must match one of the eight supported link frequencies.
	LinkFreqHz uint64
	// SyncMode 0..2; out-of-range values clamp to internal leader.
	SyncMode int
}

// Device is one sensor instance. All exported methods serialize on a
// single mutex; none may be called from the methods of another.
type Device struct {
	bus  drivers.I2C
	pwr  Power
	addr uint16

	mu sync.Mutex

	// Link configuration, fixed after New.
	inckSel     uint8
	laneCount   int
	linkIdx     LinkFreq
	syncMode    SyncMode
	syncClamped bool

	// Instance-owned mode catalog and active selection.
	modes   []Mode
	mode    *Mode
	fmtCode types.MbusCode

	// Proposed (uncommitted) per-pad formats.
	tryFmt [types.NumPads]types.PadFormat

	// Timing values tracking what has been (or will be) written. Always
	// even.
	hmax uint16
	vmax uint32

	hgc           bool
	powered       bool
	streaming     bool
	commonWritten bool
	degraded      bool

	ctrl [numControls]Control

	// Fixed buffers to avoid per-transaction heap allocations.
	w [5]byte
	r [4]byte
}

// New validates the hardware description and builds a Device without
// touching the bus. Init must run before the device is used.
func New(bus drivers.I2C, pwr Power, cfg Config) (*Device, error) {
	d := &Device{
		bus:  bus,
		pwr:  pwr,
		addr: cfg.Address,
	}
	if d.addr == 0 {
		d.addr = AddressDefault
	}

	found := false
	for _, e := range inckTable {
		if e.xclkHz == cfg.XclkHz {
			d.inckSel = e.inckSel
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnsupportedXclk
	}

	if cfg.LaneCount != 2 && cfg.LaneCount != 4 {
		return nil, ErrUnsupportedLanes
	}
	d.laneCount = cfg.LaneCount

	found = false
	for i := LinkFreq(0); i < numLinkFreqs; i++ {
		if linkFreqHz[i] == cfg.LinkFreqHz {
			d.linkIdx = i
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnsupportedLinkFreq
	}

	if cfg.SyncMode < 0 || cfg.SyncMode > int(SyncFollower) {
		d.syncMode = SyncInternalLeader
		d.syncClamped = true
	} else {
		d.syncMode = SyncMode(cfg.SyncMode)
	}

	d.modes = cloneModes()
	d.initControls()
	d.setDefaultFormat()

	return d, nil
}

// setDefaultFormat selects the binned mode with the normal Bayer code and
// seeds the proposed pad formats, mirroring what a fresh pipeline open
// negotiates.
func (d *Device) setDefaultFormat() {
	d.mode = &d.modes[0]
	d.fmtCode = codesNormal[0]
	d.tryFmt[types.PadImage] = types.PadFormat{
		Width:  d.mode.Width,
		Height: d.mode.Height,
		Code:   d.fmtCode,
	}
	d.tryFmt[types.PadMetadata] = types.PadFormat{
		Width:  embeddedLineWidth,
		Height: numEmbeddedLines,
		Code:   types.FmtSensorData,
	}
}

// Init powers the sensor up, verifies it responds, derives the
// link-dependent timing baselines and control ranges, and powers back
// down. The device stays in standby until SetStream.
func (d *Device) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.powerOn(); err != nil {
		return err
	}

	// No chip-ID register exists; reading black level doubles as the
	// presence probe.
	if _, err := d.readReg(regBlkLevel, 1); err != nil {
		_ = d.powerOff()
		return ErrDeviceNotFound
	}

	d.updateHMAXBaselines()
	d.setFramingLimits()

	return d.powerOff()
}

func (d *Device) powerOn() error {
	if d.powered {
		return nil
	}
	if d.pwr != nil {
		if err := d.pwr.PowerOn(); err != nil {
			return err
		}
	}
	time.Sleep(xclrSettle + xclrSettleJitter)
	d.powered = true
	return nil
}

// powerOff forces full reinitialization on the next streaming start:
// register contents do not survive a power cycle.
func (d *Device) powerOff() error {
	d.powered = false
	d.commonWritten = false
	d.degraded = false
	if d.pwr != nil {
		return d.pwr.PowerOff()
	}
	return nil
}

// PowerOff is the external power-down event (idle policy, system
// suspend). Streaming intent is preserved so Resume can restore it.
func (d *Device) PowerOff() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.powerOff()
}

// PowerOn re-applies power without touching registers; the next streaming
// start performs the full initialization sequence.
func (d *Device) PowerOn() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.powerOn()
}

// Suspend stops the stream best-effort but keeps the streaming intent so
// Resume restarts it.
func (d *Device) Suspend() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.streaming && d.powered {
		d.stopStreaming()
	}
}

// Resume restarts a stream that was active before Suspend/PowerOff.
func (d *Device) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.streaming {
		return nil
	}
	if err := d.powerOn(); err != nil {
		return err
	}
	if err := d.startStreaming(); err != nil {
		d.stopStreaming()
		d.streaming = false
		d.grabFlips(false)
		return err
	}
	return nil
}

// Introspection.

func (d *Device) LaneCount() int     { return d.laneCount }
func (d *Device) LinkFreq() LinkFreq { return d.linkIdx }
func (d *Device) LinkFreqHz() uint64 { return linkFreqHz[d.linkIdx] }
func (d *Device) Sync() SyncMode     { return d.syncMode }

// SyncClamped reports whether the configured sync mode was out of range
// and fell back to internal leader.
func (d *Device) SyncClamped() bool { return d.syncClamped }

func (d *Device) Streaming() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.streaming
}

func (d *Device) Powered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.powered
}

// Degraded reports that a register write was lost after the point of no
// return; hardware state may not match driver state until the next
// power-cycle reinit.
func (d *Device) Degraded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.degraded
}

// Mode returns a copy of the active catalog entry.
func (d *Device) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.mode
}
