// services/camera/adaptor_imx678.go
package camera

import (
	"errors"

	"sensorcode-go/drivers/imx678"
	"sensorcode-go/errcode"
	"sensorcode-go/types"
)

func init() { RegisterBuilder("imx678", imx678Builder{}) }

type imx678Params struct {
	Addr       int    `json:"addr,omitempty"`
	XclkHz     uint32 `json:"xclk_hz"`
	Lanes      int    `json:"lanes"`
	LinkFreqHz uint64 `json:"link_freq_hz"`
	SyncMode   int    `json:"sync_mode,omitempty"`
}

type imx678Builder struct{}

func (imx678Builder) Build(in BuildInput) (Adaptor, error) {
	i2c, ok := in.Buses.ByID(in.BusID)
	if !ok {
		return nil, &errcode.E{C: errcode.ConfigError, Op: "build", Msg: "unknown i2c bus " + in.BusID}
	}

	var pwr imx678.Power
	if in.PowerID != "" {
		p, ok := in.Power.ByID(in.PowerID)
		if !ok {
			return nil, &errcode.E{C: errcode.ConfigError, Op: "build", Msg: "unknown power rail " + in.PowerID}
		}
		pwr = p
	}

	var p imx678Params
	if err := decodeJSON(in.ParamsJSON, &p); err != nil {
		return nil, &errcode.E{C: errcode.ConfigError, Op: "build", Msg: err.Error(), Err: err}
	}

	dev, err := imx678.New(i2c, pwr, imx678.Config{
		Address:    uint16(p.Addr),
		XclkHz:     p.XclkHz,
		LaneCount:  p.Lanes,
		LinkFreqHz: p.LinkFreqHz,
		SyncMode:   p.SyncMode,
	})
	if err != nil {
		return nil, &errcode.E{C: errcode.ConfigError, Op: "build", Msg: err.Error(), Err: err}
	}
	if err := dev.Init(); err != nil {
		if errors.Is(err, imx678.ErrDeviceNotFound) {
			return nil, &errcode.E{C: errcode.DeviceNotFound, Op: "init", Msg: err.Error(), Err: err}
		}
		return nil, &errcode.E{C: errcode.BusError, Op: "init", Msg: err.Error(), Err: err}
	}

	return &imx678Adaptor{id: in.CamID, dev: dev}, nil
}

type imx678Adaptor struct {
	id  string
	dev *imx678.Device
}

func (a *imx678Adaptor) ID() string { return a.id }

func (a *imx678Adaptor) Info() map[string]any {
	ctrls := map[string]any{}
	for _, id := range imx678.ControlIDs() {
		c, err := a.dev.GetControl(id)
		if err != nil {
			continue
		}
		ctrls[id.String()] = controlDoc(c)
	}
	modes, _ := a.EnumFormats("image")
	return map[string]any{
		"type":         "imx678",
		"lanes":        a.dev.LaneCount(),
		"link_freq_hz": a.dev.LinkFreqHz(),
		"sync_mode":    a.dev.Sync().String(),
		"sync_clamped": a.dev.SyncClamped(),
		"formats":      modes,
		"controls":     ctrls,
	}
}

func (a *imx678Adaptor) State() map[string]any {
	m := a.dev.Mode()
	return map[string]any{
		"powered":   a.dev.Powered(),
		"streaming": a.dev.Streaming(),
		"degraded":  a.dev.Degraded(),
		"mode":      map[string]any{"width": m.Width, "height": m.Height},
	}
}

func (a *imx678Adaptor) SetControl(name string, value int64) error {
	id, ok := imx678.ControlByName(name)
	if !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "control", Msg: "unknown control " + name}
	}
	return mapErr(a.dev.SetControl(id, value))
}

func (a *imx678Adaptor) GetControl(name string) (map[string]any, error) {
	id, ok := imx678.ControlByName(name)
	if !ok {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "control", Msg: "unknown control " + name}
	}
	c, err := a.dev.GetControl(id)
	if err != nil {
		return nil, mapErr(err)
	}
	return controlDoc(c), nil
}

func (a *imx678Adaptor) SetStream(on bool) error {
	return mapErr(a.dev.SetStream(on))
}

func (a *imx678Adaptor) GetFormat(pad, which string) (map[string]any, error) {
	p, err := parsePad(pad)
	if err != nil {
		return nil, err
	}
	w, err := parseWhich(which)
	if err != nil {
		return nil, err
	}
	f, err := a.dev.GetFormat(p, w)
	if err != nil {
		return nil, mapErr(err)
	}
	return formatDoc(pad, which, f), nil
}

func (a *imx678Adaptor) SetFormat(req FormatReq) (map[string]any, error) {
	p, err := parsePad(req.Pad)
	if err != nil {
		return nil, err
	}
	w, err := parseWhich(req.Which)
	if err != nil {
		return nil, err
	}
	f, err := a.dev.SetFormat(p, w, types.PadFormat{
		Width:  req.Width,
		Height: req.Height,
		Code:   types.MbusCode(req.Code),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return formatDoc(req.Pad, req.Which, f), nil
}

func (a *imx678Adaptor) EnumFormats(pad string) ([]map[string]any, error) {
	p, err := parsePad(pad)
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for ci := 0; ; ci++ {
		code, err := a.dev.EnumMbusCode(p, ci)
		if errors.Is(err, imx678.ErrEnumIndex) {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		var sizes []map[string]any
		for si := 0; ; si++ {
			w, h, err := a.dev.EnumFrameSize(p, code, si)
			if errors.Is(err, imx678.ErrEnumIndex) {
				break
			}
			if err != nil {
				return nil, mapErr(err)
			}
			sizes = append(sizes, map[string]any{"width": w, "height": h})
		}
		out = append(out, map[string]any{"code": uint32(code), "sizes": sizes})
	}
	return out, nil
}

func (a *imx678Adaptor) Selection(target string) (map[string]any, error) {
	var t types.SelTarget
	switch target {
	case "crop":
		t = types.SelCrop
	case "native":
		t = types.SelNative
	case "crop_default":
		t = types.SelCropDefault
	case "crop_bounds":
		t = types.SelCropBounds
	default:
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "selection", Msg: "unknown target " + target}
	}
	r, err := a.dev.Selection(t)
	if err != nil {
		return nil, mapErr(err)
	}
	return map[string]any{
		"left":   r.Left,
		"top":    r.Top,
		"width":  r.Width,
		"height": r.Height,
	}, nil
}

func (a *imx678Adaptor) Power(action string) error {
	switch action {
	case "on":
		return mapErr(a.dev.PowerOn())
	case "off":
		return mapErr(a.dev.PowerOff())
	case "suspend":
		a.dev.Suspend()
		return nil
	case "resume":
		return mapErr(a.dev.Resume())
	}
	return &errcode.E{C: errcode.InvalidParams, Op: "power", Msg: "unknown action " + action}
}

func controlDoc(c imx678.Control) map[string]any {
	return map[string]any{
		"value":     c.Val,
		"min":       c.Min,
		"max":       c.Max,
		"step":      c.Step,
		"default":   c.Def,
		"read_only": c.ReadOnly,
		"grabbed":   c.Grabbed,
	}
}

func formatDoc(pad, which string, f types.PadFormat) map[string]any {
	return map[string]any{
		"pad":    pad,
		"which":  which,
		"width":  f.Width,
		"height": f.Height,
		"code":   uint32(f.Code),
	}
}

func parsePad(pad string) (types.Pad, error) {
	switch pad {
	case "image":
		return types.PadImage, nil
	case "metadata":
		return types.PadMetadata, nil
	}
	return 0, &errcode.E{C: errcode.InvalidParams, Op: "format", Msg: "unknown pad " + pad}
}

func parseWhich(which string) (types.Whence, error) {
	switch which {
	case "try":
		return types.WhenceTry, nil
	case "", "active":
		return types.WhenceActive, nil
	}
	return 0, &errcode.E{C: errcode.InvalidParams, Op: "format", Msg: "unknown which " + which}
}

// mapErr turns driver sentinels into coded errors for bus replies.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var re *imx678.RegError
	switch {
	case errors.Is(err, imx678.ErrControlGrabbed):
		return &errcode.E{C: errcode.Grabbed, Msg: err.Error(), Err: err}
	case errors.Is(err, imx678.ErrControlReadOnly),
		errors.Is(err, imx678.ErrUnknownControl),
		errors.Is(err, imx678.ErrInvalidPad),
		errors.Is(err, imx678.ErrUnsupportedFormat),
		errors.Is(err, imx678.ErrInvalidSelection):
		return &errcode.E{C: errcode.InvalidParams, Msg: err.Error(), Err: err}
	case errors.Is(err, imx678.ErrDeviceNotFound):
		return &errcode.E{C: errcode.DeviceNotFound, Msg: err.Error(), Err: err}
	case errors.Is(err, imx678.ErrDegraded):
		return &errcode.E{C: errcode.Degraded, Msg: err.Error(), Err: err}
	case errors.As(err, &re):
		return &errcode.E{C: errcode.BusError, Msg: err.Error(), Err: err}
	}
	return &errcode.E{C: errcode.Error, Msg: err.Error(), Err: err}
}
