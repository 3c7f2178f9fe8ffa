package imx678

import (
	"errors"
	"testing"

	"sensorcode-go/types"
)

func TestSetFormatTryDoesNotCommit(t *testing.T) {
	d, _, _ := newTestDevice(t)

	req := types.PadFormat{Width: 3856, Height: 2180, Code: types.FmtSRGGB12}
	got, err := d.SetFormat(types.PadImage, types.WhenceTry, req)
	if err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if got.Width != 3856 || got.Height != 2180 {
		t.Fatalf("try format = %dx%d, want 3856x2180", got.Width, got.Height)
	}
	if m := d.Mode(); m.Width != 1928 {
		t.Fatalf("active mode changed by a try negotiation (width %d)", m.Width)
	}

	back, err := d.GetFormat(types.PadImage, types.WhenceTry)
	if err != nil {
		t.Fatalf("GetFormat: %v", err)
	}
	if back != got {
		t.Fatalf("try readback = %+v, want %+v", back, got)
	}
}

func TestSetFormatActiveCommitsAndRederives(t *testing.T) {
	d, _, _ := newTestDevice(t)

	req := types.PadFormat{Width: 3856, Height: 2180, Code: types.FmtSRGGB12}
	if _, err := d.SetFormat(types.PadImage, types.WhenceActive, req); err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if m := d.Mode(); m.Width != 3856 || m.Height != 2180 {
		t.Fatalf("active mode = %dx%d, want 3856x2180", m.Width, m.Height)
	}

	// 3856 * 74250000 / 550.
	const wantRate = 520560000
	c, _ := d.GetControl(CtrlPixelRate)
	if c.Val != wantRate {
		t.Fatalf("pixel rate = %d, want %d", c.Val, wantRate)
	}

	vb, _ := d.GetControl(CtrlVBlank)
	if vb.Val != 2250-2180 || vb.Def != 2250-2180 {
		t.Fatalf("vblank = %d (def %d), want %d", vb.Val, vb.Def, 2250-2180)
	}
	exp, _ := d.GetControl(CtrlExposure)
	if exp.Max != 2250-shrMinHDRReserve {
		t.Fatalf("exposure ceiling = %d, want %d", exp.Max, 2250-shrMinHDRReserve)
	}
}

func TestNearestModeSelection(t *testing.T) {
	d, _, _ := newTestDevice(t)

	got, err := d.SetFormat(types.PadImage, types.WhenceTry,
		types.PadFormat{Width: 3000, Height: 2000, Code: types.FmtSRGGB12})
	if err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if got.Width != 3856 {
		t.Fatalf("3000x2000 resolved to width %d, want 3856", got.Width)
	}

	got, err = d.SetFormat(types.PadImage, types.WhenceTry,
		types.PadFormat{Width: 100, Height: 100, Code: types.FmtSRGGB12})
	if err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if got.Width != 1928 {
		t.Fatalf("100x100 resolved to width %d, want 1928", got.Width)
	}
}

func TestUnknownCodeFallsBackToFamilyDefault(t *testing.T) {
	d, _, _ := newTestDevice(t)

	got, err := d.SetFormat(types.PadImage, types.WhenceActive,
		types.PadFormat{Width: 1928, Height: 1090, Code: 0x9999})
	if err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if got.Code != types.FmtSRGGB12 {
		t.Fatalf("code = 0x%04X, want SRGGB12", got.Code)
	}
}

func TestMetadataPadFixed(t *testing.T) {
	d, _, _ := newTestDevice(t)

	want := types.PadFormat{Width: 16384, Height: 1, Code: types.FmtSensorData}
	got, err := d.GetFormat(types.PadMetadata, types.WhenceActive)
	if err != nil {
		t.Fatalf("GetFormat: %v", err)
	}
	if got != want {
		t.Fatalf("metadata format = %+v, want %+v", got, want)
	}

	// Active set requests snap to the fixed format.
	got, err = d.SetFormat(types.PadMetadata, types.WhenceActive,
		types.PadFormat{Width: 640, Height: 480, Code: types.FmtSRGGB12})
	if err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if got != want {
		t.Fatalf("metadata set = %+v, want %+v", got, want)
	}
}

func TestEnumMbusCode(t *testing.T) {
	d, _, _ := newTestDevice(t)

	code, err := d.EnumMbusCode(types.PadImage, 0)
	if err != nil {
		t.Fatalf("EnumMbusCode: %v", err)
	}
	if code != types.FmtSRGGB12 {
		t.Fatalf("image code = 0x%04X, want SRGGB12", code)
	}
	if _, err := d.EnumMbusCode(types.PadImage, 1); !errors.Is(err, ErrEnumIndex) {
		t.Fatalf("index 1: got %v, want ErrEnumIndex", err)
	}

	code, err = d.EnumMbusCode(types.PadMetadata, 0)
	if err != nil {
		t.Fatalf("EnumMbusCode metadata: %v", err)
	}
	if code != types.FmtSensorData {
		t.Fatalf("metadata code = 0x%04X, want sensor data", code)
	}
	if _, err := d.EnumMbusCode(types.NumPads, 0); !errors.Is(err, ErrInvalidPad) {
		t.Fatalf("bad pad: got %v, want ErrInvalidPad", err)
	}
}

func TestEnumFrameSize(t *testing.T) {
	d, _, _ := newTestDevice(t)

	w, h, err := d.EnumFrameSize(types.PadImage, types.FmtSRGGB12, 0)
	if err != nil {
		t.Fatalf("EnumFrameSize: %v", err)
	}
	if w != 1928 || h != 1090 {
		t.Fatalf("index 0 = %dx%d, want 1928x1090", w, h)
	}
	w, h, err = d.EnumFrameSize(types.PadImage, types.FmtSRGGB12, 1)
	if err != nil {
		t.Fatalf("EnumFrameSize: %v", err)
	}
	if w != 3856 || h != 2180 {
		t.Fatalf("index 1 = %dx%d, want 3856x2180", w, h)
	}
	if _, _, err := d.EnumFrameSize(types.PadImage, types.FmtSRGGB12, 2); !errors.Is(err, ErrEnumIndex) {
		t.Fatalf("index 2: got %v, want ErrEnumIndex", err)
	}
	if _, _, err := d.EnumFrameSize(types.PadImage, types.FmtSensorData, 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("metadata code on image pad: got %v, want ErrUnsupportedFormat", err)
	}

	w, h, err = d.EnumFrameSize(types.PadMetadata, types.FmtSensorData, 0)
	if err != nil {
		t.Fatalf("EnumFrameSize metadata: %v", err)
	}
	if w != 16384 || h != 1 {
		t.Fatalf("metadata = %dx%d, want 16384x1", w, h)
	}
}

func TestSelection(t *testing.T) {
	d, _, _ := newTestDevice(t)

	crop, err := d.Selection(types.SelCrop)
	if err != nil {
		t.Fatalf("Selection(crop): %v", err)
	}
	want := types.Rect{Left: 8, Top: 8, Width: 3840, Height: 2160}
	if crop != want {
		t.Fatalf("crop = %+v, want %+v", crop, want)
	}

	native, err := d.Selection(types.SelNative)
	if err != nil {
		t.Fatalf("Selection(native): %v", err)
	}
	if native.Width != 3856 || native.Height != 2180 || native.Left != 0 || native.Top != 0 {
		t.Fatalf("native = %+v", native)
	}

	for _, target := range []types.SelTarget{types.SelCropDefault, types.SelCropBounds} {
		r, err := d.Selection(target)
		if err != nil {
			t.Fatalf("Selection(%v): %v", target, err)
		}
		if r != want {
			t.Fatalf("selection %v = %+v, want %+v", target, r, want)
		}
	}

	if _, err := d.Selection(types.SelTarget(99)); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("bad target: got %v, want ErrInvalidSelection", err)
	}
}
