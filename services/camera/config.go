package camera

// Minimal JSON config structures.

type Config struct {
	Version int      `json:"version"`
	Cameras []CamCfg `json:"cameras"`
}

type CamCfg struct {
	ID       string    `json:"id"`   // "cam0"
	Type     string    `json:"type"` // "imx678"
	BusRef   CamBusRef `json:"bus_ref"`
	PowerRef string    `json:"power_ref,omitempty"` // rail id, optional
	Params   any       `json:"params,omitempty"`    // sensor-specific shape
}

type CamBusRef struct{ ID, Type string }
