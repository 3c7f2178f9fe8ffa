package imx678

import (
	"errors"

	"sensorcode-go/x/conv"
)

// ErrReadLength is returned for reads outside the 1..4 byte window.
var ErrReadLength = errors.New("imx678: register read length must be 1..4")

// RegError reports the register address of a failed bus transaction.
// A batch write surfaces the first failing entry and stops; earlier writes
// stay applied (registers are cheap to rewrite, rollback is not attempted).
type RegError struct {
	Addr uint16
	Err  error
}

func (e *RegError) Error() string {
	return "imx678: register " + conv.Hex16(e.Addr) + ": " + e.Err.Error()
}

func (e *RegError) Unwrap() error { return e.Err }

func regErr(addr uint16, err error) error {
	if err == nil {
		return nil
	}
	return &RegError{Addr: addr, Err: err}
}

// Register transactions: 2-byte big-endian address, then value bytes in
// little-endian order matching the register's internal layout. Reads
// assemble big-endian into the low bytes of the result.

func (d *Device) readReg(reg uint16, n int) (uint32, error) {
	if n < 1 || n > 4 {
		return 0, ErrReadLength
	}
	d.w[0] = byte(reg >> 8)
	d.w[1] = byte(reg)
	for i := range d.r {
		d.r[i] = 0
	}
	if err := d.bus.Tx(d.addr, d.w[:2], d.r[4-n:]); err != nil {
		return 0, regErr(reg, err)
	}
	return uint32(d.r[0])<<24 | uint32(d.r[1])<<16 | uint32(d.r[2])<<8 | uint32(d.r[3]), nil
}

func (d *Device) writeReg1(reg uint16, val uint8) error {
	d.w[0] = byte(reg >> 8)
	d.w[1] = byte(reg)
	d.w[2] = val
	return regErr(reg, d.bus.Tx(d.addr, d.w[:3], nil))
}

func (d *Device) writeReg2(reg uint16, val uint16) error {
	d.w[0] = byte(reg >> 8)
	d.w[1] = byte(reg)
	d.w[2] = byte(val)
	d.w[3] = byte(val >> 8)
	return regErr(reg, d.bus.Tx(d.addr, d.w[:4], nil))
}

func (d *Device) writeReg3(reg uint16, val uint32) error {
	d.w[0] = byte(reg >> 8)
	d.w[1] = byte(reg)
	d.w[2] = byte(val)
	d.w[3] = byte(val >> 8)
	d.w[4] = byte(val >> 16)
	return regErr(reg, d.bus.Tx(d.addr, d.w[:5], nil))
}

// writeRegList writes entries in order and aborts on the first failure.
func (d *Device) writeRegList(regs []regVal) error {
	for _, r := range regs {
		if err := d.writeReg1(r.addr, r.val); err != nil {
			return err
		}
	}
	return nil
}

// holdRegs latches register updates until released, so multi-register
// timing changes (VMAX plus SHR) land on the same frame boundary.
func (d *Device) holdRegs(hold bool) {
	v := uint8(0)
	if hold {
		v = 1
	}
	_ = d.writeReg1(regHold, v)
}
