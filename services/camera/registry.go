// services/camera/registry.go
package camera

import (
	"fmt"
	"sync"
)

// BuildInput is provided to a sensor builder to construct an Adaptor.
type BuildInput struct {
	Buses      I2CBusFactory
	Power      PowerFactory
	CamID      string
	Type       string
	BusID      string
	PowerID    string
	ParamsJSON any
}

// Builder constructs an Adaptor from config and platform factories. Build
// performs the full presence probe, so a returned Adaptor is a live device.
type Builder interface {
	Build(in BuildInput) (Adaptor, error)
}

var (
	muBuilders sync.RWMutex
	builders   = map[string]Builder{}
)

// RegisterBuilder installs a builder for a given sensor type string.
// It panics on duplicate registration to catch mistakes at start-up.
func RegisterBuilder(sensorType string, b Builder) {
	muBuilders.Lock()
	defer muBuilders.Unlock()
	if sensorType == "" {
		panic("camera: empty sensor type for builder")
	}
	if _, exists := builders[sensorType]; exists {
		panic(fmt.Sprintf("camera: builder already registered for type %q", sensorType))
	}
	builders[sensorType] = b
}

// findBuilder looks up a registered builder by type.
func findBuilder(sensorType string) (Builder, bool) {
	muBuilders.RLock()
	defer muBuilders.RUnlock()
	b, ok := builders[sensorType]
	return b, ok
}
