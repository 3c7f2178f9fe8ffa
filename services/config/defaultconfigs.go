package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgSimCam = `{
  "camera": {
    "version": 1,
    "cameras": [
      {
        "id": "cam0",
        "type": "imx678",
        "bus_ref": {"ID": "i2c0", "Type": "i2c"},
        "power_ref": "rail0",
        "params": {
          "xclk_hz": 24000000,
          "lanes": 4,
          "link_freq_hz": 891000000,
          "sync_mode": 0
        }
      }
    ]
  },
  "bridge": {
    "transport": {
      "type": "uart",
      "uart": {"baud": 921600, "rx_pin": 1, "tx_pin": 0}
    },
    "export": ["camera/state", "camera/+/state", "camera/+/info", "heartbeat/state"]
  },
  "heartbeat": {
    "interval": 2
  }
}`

var embeddedConfigs = map[string][]byte{
	"simcam": []byte(cfgSimCam),
}
