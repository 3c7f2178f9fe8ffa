// Command camsim: host-side bring-up of the camera service against a
// simulated sensor register map. Useful for exercising the full
// config → probe → negotiate → stream flow without hardware.
//
//	go run ./cmd/camsim
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tinygo.org/x/drivers"

	"sensorcode-go/bus"
	"sensorcode-go/services/camera"
	"sensorcode-go/services/config"
	"sensorcode-go/services/heartbeat"
)

// simSensor is a register-map double: writes stick, reads return the last
// written bytes. The probe read succeeds, so the service sees a live
// device.
type simSensor struct {
	regs map[uint16][]byte
}

var _ drivers.I2C = (*simSensor)(nil)

func (s *simSensor) Tx(addr uint16, w, r []byte) error {
	if len(w) < 2 {
		return nil
	}
	reg := uint16(w[0])<<8 | uint16(w[1])
	if len(r) > 0 {
		stored := s.regs[reg]
		for i := range r {
			if i < len(stored) {
				r[len(r)-1-i] = stored[i]
			} else {
				r[len(r)-1-i] = 0
			}
		}
		return nil
	}
	s.regs[reg] = append([]byte(nil), w[2:]...)
	return nil
}

type simBuses struct {
	i2c drivers.I2C
}

func (f simBuses) ByID(id string) (drivers.I2C, bool) {
	if id == "i2c0" {
		return f.i2c, true
	}
	return nil, false
}

// simRail logs power transitions; a real platform would toggle regulators
// and the XCLR line here.
type simRail struct{ name string }

func (r *simRail) PowerOn() error {
	fmt.Printf("[%s] power on\n", r.name)
	return nil
}

func (r *simRail) PowerOff() error {
	fmt.Printf("[%s] power off\n", r.name)
	return nil
}

type simRails struct{}

func (simRails) ByID(id string) (camera.Power, bool) {
	if id == "rail0" {
		return &simRail{name: id}, true
	}
	return nil, false
}

func main() {
	fmt.Println("== camsim: camera service against a simulated IMX678 ==")

	b := bus.NewBus(64)
	svcConn := b.NewConnection("camera-svc")
	cli := b.NewConnection("main")

	stateSub := cli.Subscribe(bus.Topic{"camera", "state"})
	camSub := cli.Subscribe(bus.Topic{"camera", "cam0", "state"})
	defer cli.Unsubscribe(stateSub)
	defer cli.Unsubscribe(camSub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go camera.Run(ctx, svcConn, simBuses{i2c: &simSensor{regs: map[uint16][]byte{}}}, simRails{})

	waitFor(stateSub, "service state")

	// The embedded platform config carries the cam0 definition; publishing it
	// retained means services pick up their slice whenever they start.
	hbSub := cli.Subscribe(bus.Topic{"heartbeat", "state"})
	defer cli.Unsubscribe(hbSub)
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))
	config.NewConfigService().Start(
		context.WithValue(ctx, config.CtxDeviceKey, "simcam"),
		b.NewConnection("config"))

	fmt.Println("-- camera state:", pretty(waitFor(camSub, "cam0 state")))
	fmt.Println("-- heartbeat:", pretty(waitFor(hbSub, "heartbeat")))

	// Negotiate full resolution, then stream for a moment.
	fmt.Println("-- format/set:", pretty(request(cli, bus.Topic{"camera", "cam0", "format", "set"},
		map[string]any{"pad": "image", "which": "active", "width": 3856, "height": 2180, "code": 0x3012})))

	fmt.Println("-- exposure/set:", pretty(request(cli, bus.Topic{"camera", "cam0", "control", "exposure", "set"},
		map[string]any{"value": 1200})))

	fmt.Println("-- stream on:", pretty(request(cli, bus.Topic{"camera", "cam0", "stream", "set"},
		map[string]any{"on": true})))
	fmt.Println("-- camera state:", pretty(waitFor(camSub, "streaming state")))

	time.Sleep(250 * time.Millisecond)

	fmt.Println("-- stream off:", pretty(request(cli, bus.Topic{"camera", "cam0", "stream", "set"},
		map[string]any{"on": false})))
	fmt.Println("-- power off:", pretty(request(cli, bus.Topic{"camera", "cam0", "power", "set"},
		map[string]any{"action": "off"})))
	fmt.Println("done")
}

func waitFor(sub *bus.Subscription, what string) any {
	select {
	case m := <-sub.Channel():
		return m.Payload
	case <-time.After(10 * time.Second):
		fmt.Println("timeout waiting for", what)
		return nil
	}
}

func request(cli *bus.Connection, topic bus.Topic, payload any) any {
	reply := bus.Topic{"reply", time.Now().UnixNano()}
	sub := cli.Subscribe(reply)
	defer cli.Unsubscribe(sub)
	cli.Publish(&bus.Message{Topic: topic, Payload: payload, ReplyTo: reply})
	return waitFor(sub, "reply")
}

func pretty(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(out)
}
