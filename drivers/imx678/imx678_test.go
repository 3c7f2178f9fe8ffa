package imx678

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeSensor)(nil)

// txRecord is one value write captured by the fake, in issue order.
type txRecord struct {
	reg  uint16
	data []byte
}

// Scripted register-map fake. Writes are logged in order; reads return the
// last written bytes (zero if never written). failAt injects a bus error
// on a specific register write.
type fakeSensor struct {
	regs     map[uint16][]byte
	writes   []txRecord
	failAt   map[uint16]error
	failRead bool
}

var errTx = errors.New("tx failed")

func newFakeSensor() *fakeSensor {
	return &fakeSensor{
		regs:   make(map[uint16][]byte),
		failAt: make(map[uint16]error),
	}
}

func (f *fakeSensor) Tx(addr uint16, w, r []byte) error {
	if len(w) < 2 {
		return errTx
	}
	reg := uint16(w[0])<<8 | uint16(w[1])

	if len(r) > 0 {
		if f.failRead {
			return errTx
		}
		stored := f.regs[reg]
		for i := range r {
			if i < len(stored) {
				r[len(r)-1-i] = stored[i]
			} else {
				r[len(r)-1-i] = 0
			}
		}
		return nil
	}

	if err := f.failAt[reg]; err != nil {
		return err
	}
	val := append([]byte(nil), w[2:]...)
	f.regs[reg] = val
	f.writes = append(f.writes, txRecord{reg: reg, data: val})
	return nil
}

// value assembles the last written bytes of a register little-endian.
func (f *fakeSensor) value(reg uint16) uint32 {
	var v uint32
	for i, b := range f.regs[reg] {
		v |= uint32(b) << (8 * i)
	}
	return v
}

func (f *fakeSensor) countWrites(reg uint16) int {
	n := 0
	for _, w := range f.writes {
		if w.reg == reg {
			n++
		}
	}
	return n
}

// firstIndex returns the position of the first write to reg, or -1.
func (f *fakeSensor) firstIndex(reg uint16) int {
	for i, w := range f.writes {
		if w.reg == reg {
			return i
		}
	}
	return -1
}

// lastIndex returns the position of the last write to reg, or -1.
func (f *fakeSensor) lastIndex(reg uint16) int {
	for i := len(f.writes) - 1; i >= 0; i-- {
		if f.writes[i].reg == reg {
			return i
		}
	}
	return -1
}

type fakePower struct {
	onCalls  int
	offCalls int
	onErr    error
}

func (p *fakePower) PowerOn() error {
	p.onCalls++
	return p.onErr
}

func (p *fakePower) PowerOff() error {
	p.offCalls++
	return nil
}

func testConfig() Config {
	return Config{
		XclkHz:     24000000,
		LaneCount:  4,
		LinkFreqHz: 891000000,
		SyncMode:   0,
	}
}

// newTestDevice builds and Inits a device against a fresh fake.
func newTestDevice(t *testing.T) (*Device, *fakeSensor, *fakePower) {
	t.Helper()
	bus := newFakeSensor()
	pwr := &fakePower{}
	d, err := New(bus, pwr, testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return d, bus, pwr
}

func TestNewRejectsBadConfig(t *testing.T) {
	bus := newFakeSensor()

	cfg := testConfig()
	cfg.XclkHz = 25000000
	if _, err := New(bus, nil, cfg); !errors.Is(err, ErrUnsupportedXclk) {
		t.Fatalf("bad xclk: got %v, want ErrUnsupportedXclk", err)
	}

	cfg = testConfig()
	cfg.LaneCount = 3
	if _, err := New(bus, nil, cfg); !errors.Is(err, ErrUnsupportedLanes) {
		t.Fatalf("bad lanes: got %v, want ErrUnsupportedLanes", err)
	}

	cfg = testConfig()
	cfg.LinkFreqHz = 123456789
	if _, err := New(bus, nil, cfg); !errors.Is(err, ErrUnsupportedLinkFreq) {
		t.Fatalf("bad link freq: got %v, want ErrUnsupportedLinkFreq", err)
	}
}

func TestNewClampsSyncMode(t *testing.T) {
	cfg := testConfig()
	cfg.SyncMode = 7
	d, err := New(newFakeSensor(), nil, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Sync() != SyncInternalLeader {
		t.Fatalf("sync mode = %v, want internal-leader", d.Sync())
	}
	if !d.SyncClamped() {
		t.Fatal("expected SyncClamped for out-of-range sync mode")
	}
}

func TestInitPresenceProbeFailure(t *testing.T) {
	bus := newFakeSensor()
	bus.failRead = true
	pwr := &fakePower{}
	d, err := New(bus, pwr, testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Init(); !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("Init: got %v, want ErrDeviceNotFound", err)
	}
	if d.Powered() {
		t.Fatal("device left powered after failed probe")
	}
	if pwr.offCalls != 1 {
		t.Fatalf("power off calls = %d, want 1", pwr.offCalls)
	}
}

func TestInitLeavesStandbyUnpowered(t *testing.T) {
	d, bus, pwr := newTestDevice(t)
	if d.Powered() || d.Streaming() {
		t.Fatal("expected standby and unpowered after Init")
	}
	if pwr.onCalls != 1 || pwr.offCalls != 1 {
		t.Fatalf("power calls = %d on / %d off, want 1/1", pwr.onCalls, pwr.offCalls)
	}
	if len(bus.writes) != 0 {
		t.Fatalf("Init wrote %d registers, want none", len(bus.writes))
	}
}

func TestHMAXBaselines(t *testing.T) {
	expect := map[uint64]uint16{
		297000000:  1584,
		360000000:  1320,
		445500000:  1100,
		594000000:  792,
		720000000:  660,
		891000000:  550,
		1039500000: 440,
		1188000000: 396,
	}
	for freq, base := range expect {
		for _, lanes := range []int{2, 4} {
			cfg := testConfig()
			cfg.LinkFreqHz = freq
			cfg.LaneCount = lanes
			d, err := New(newFakeSensor(), &fakePower{}, cfg)
			if err != nil {
				t.Fatalf("New(%d Hz, %d lanes): %v", freq, lanes, err)
			}
			if err := d.Init(); err != nil {
				t.Fatalf("Init(%d Hz, %d lanes): %v", freq, lanes, err)
			}
			want := base
			if lanes == 2 {
				want *= 2
			}
			m := d.Mode()
			if m.MinHMAX != want || m.DefaultHMAX != want {
				t.Fatalf("%d Hz %d lanes: HMAX baseline = %d/%d, want %d",
					freq, lanes, m.MinHMAX, m.DefaultHMAX, want)
			}
		}
	}
}

func TestPixelRateFixedAndExact(t *testing.T) {
	d, _, _ := newTestDevice(t)

	// 891MHz, 4 lanes, binned mode: 1928 * 74250000 / 550.
	const want = 260280000
	c, err := d.GetControl(CtrlPixelRate)
	if err != nil {
		t.Fatalf("GetControl: %v", err)
	}
	if c.Val != want || c.Min != want || c.Max != want {
		t.Fatalf("pixel rate = %d [%d..%d], want fixed %d", c.Val, c.Min, c.Max, want)
	}
	if !c.ReadOnly {
		t.Fatal("pixel rate must be read-only")
	}
	if err := d.SetControl(CtrlPixelRate, 1); !errors.Is(err, ErrControlReadOnly) {
		t.Fatalf("set pixel rate: got %v, want ErrControlReadOnly", err)
	}
}
