// services/camera/types.go
package camera

import (
	"tinygo.org/x/drivers"
)

// Adaptor owns a concrete sensor driver and exposes generic camera hooks.
// Adaptors must NOT touch the bus or spawn goroutines; the service loop
// calls them synchronously.
type Adaptor interface {
	ID() string
	// Static description published as retained info (link config, modes,
	// control ranges).
	Info() map[string]any
	// Volatile state snapshot (powered, streaming, degraded, active mode).
	State() map[string]any

	SetControl(name string, value int64) error
	GetControl(name string) (map[string]any, error)

	SetStream(on bool) error

	GetFormat(pad, which string) (map[string]any, error)
	SetFormat(req FormatReq) (map[string]any, error)
	EnumFormats(pad string) ([]map[string]any, error)
	Selection(target string) (map[string]any, error)

	// Power accepts "on", "off", "suspend", "resume".
	Power(action string) error
}

// FormatReq is the wire shape of a format get/set request.
type FormatReq struct {
	Pad    string `json:"pad"`   // "image" | "metadata"
	Which  string `json:"which"` // "try" | "active"
	Width  uint32 `json:"width,omitempty"`
	Height uint32 `json:"height,omitempty"`
	Code   uint32 `json:"code,omitempty"`
}

// I2CBusFactory injects configured I²C instances by id.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// Power abstracts one sensor's supply rail / clock / reset sequencing.
type Power interface {
	PowerOn() error
	PowerOff() error
}

// PowerFactory supplies power sequencers by the configured rail id.
type PowerFactory interface {
	ByID(id string) (Power, bool)
}
