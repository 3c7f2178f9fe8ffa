// services/camera/camera_test.go
package camera

import (
	"context"
	"testing"
	"time"

	"tinygo.org/x/drivers"

	"sensorcode-go/bus"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

// fakeI2C is a register-map sensor double: writes are stored, reads return
// the stored bytes. Good enough for the presence probe and the streaming
// bring-up sequence.
type fakeI2C struct {
	regs map[uint16][]byte
}

func newFakeI2C() *fakeI2C {
	return &fakeI2C{regs: map[uint16][]byte{}}
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if len(w) < 2 {
		return nil
	}
	reg := uint16(w[0])<<8 | uint16(w[1])
	if len(r) > 0 {
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
	f.regs[reg] = append([]byte(nil), w[2:]...)
	return nil
}

// fakeFactories satisfies both I2CBusFactory and PowerFactory.
type fakeFactories struct {
	i2c drivers.I2C
}

func (f fakeFactories) ByID(id string) (drivers.I2C, bool) {
	if id == "i2c0" {
		return f.i2c, true
	}
	return nil, false
}

type nullPowerFactory struct{}

func (nullPowerFactory) ByID(id string) (Power, bool) { return nil, false }

func recvMsg(t *testing.T, ch <-chan *bus.Message, what string) *bus.Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for %s", what)
		return nil
	}
}

func camConfig() map[string]any {
	return map[string]any{
		"version": 1,
		"cameras": []map[string]any{{
			"id":      "cam0",
			"type":    "imx678",
			"bus_ref": map[string]any{"ID": "i2c0", "Type": "i2c"},
			"params": map[string]any{
				"xclk_hz":      24000000,
				"lanes":        4,
				"link_freq_hz": 891000000,
			},
		}},
	}
}

// request publishes a message with a reply topic and waits for the answer.
func request(t *testing.T, cli *bus.Connection, topic bus.Topic, payload any) map[string]any {
	t.Helper()
	reply := bus.Topic{"reply", "t", time.Now().UnixNano()}
	sub := cli.Subscribe(reply)
	defer cli.Unsubscribe(sub)

	cli.Publish(&bus.Message{Topic: topic, Payload: payload, ReplyTo: reply})

	m := recvMsg(t, sub.Channel(), "reply")
	res, ok := m.Payload.(map[string]any)
	if !ok {
		t.Fatalf("reply payload type %T", m.Payload)
	}
	return res
}

func TestCameraService_EndToEnd(t *testing.T) {
	b := bus.NewBus(128)
	svcConn := b.NewConnection("camera-svc")
	cli := b.NewConnection("cli")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, svcConn, fakeFactories{i2c: newFakeI2C()}, nullPowerFactory{})

	svcState := cli.Subscribe(bus.Topic{"camera", "state"})
	defer cli.Unsubscribe(svcState)
	m := recvMsg(t, svcState.Channel(), "service state")
	if st := m.Payload.(map[string]any)["level"]; st != "idle" {
		t.Fatalf("initial level = %v, want idle", st)
	}

	camState := cli.Subscribe(bus.Topic{"camera", "cam0", "state"})
	defer cli.Unsubscribe(camState)

	cli.Publish(cli.NewMessage(bus.Topic{"config", "camera"}, camConfig(), false))

	m = recvMsg(t, camState.Channel(), "cam0 state")
	st := m.Payload.(map[string]any)
	if st["link"] != "up" {
		t.Fatalf("cam0 link = %v (%v), want up", st["link"], st["error"])
	}
	if st["streaming"] != false {
		t.Fatal("cam0 streaming before any request")
	}

	// Control set replies with the post-clamp value.
	res := request(t, cli, bus.Topic{"camera", "cam0", "control", "exposure", "set"},
		map[string]any{"value": 800})
	if res["ok"] != true {
		t.Fatalf("exposure set failed: %v", res)
	}
	ctrl := res["control"].(map[string]any)
	if v, _ := ctrl["value"].(int64); v != 800 {
		t.Fatalf("exposure value = %v, want 800", ctrl["value"])
	}

	// Out-of-range set clamps rather than failing.
	res = request(t, cli, bus.Topic{"camera", "cam0", "control", "exposure", "set"},
		map[string]any{"value": 1000000})
	ctrl = res["control"].(map[string]any)
	if v, _ := ctrl["value"].(int64); v != 2240 {
		t.Fatalf("clamped exposure = %v, want 2240", ctrl["value"])
	}

	// Stream on, then flips must be rejected as grabbed.
	res = request(t, cli, bus.Topic{"camera", "cam0", "stream", "set"},
		map[string]any{"on": true})
	if res["ok"] != true {
		t.Fatalf("stream set failed: %v", res)
	}
	m = recvMsg(t, camState.Channel(), "streaming state")
	if m.Payload.(map[string]any)["streaming"] != true {
		t.Fatal("retained state not streaming after stream/set")
	}

	res = request(t, cli, bus.Topic{"camera", "cam0", "control", "hflip", "set"},
		map[string]any{"value": 1})
	if res["ok"] != false || res["code"] != "grabbed" {
		t.Fatalf("hflip while streaming: %v", res)
	}

	res = request(t, cli, bus.Topic{"camera", "cam0", "stream", "set"},
		map[string]any{"on": false})
	if res["ok"] != true {
		t.Fatalf("stream stop failed: %v", res)
	}
	recvMsg(t, camState.Channel(), "stopped state")

	// Active format commit switches modes.
	res = request(t, cli, bus.Topic{"camera", "cam0", "format", "set"},
		map[string]any{"pad": "image", "which": "active", "width": 3856, "height": 2180, "code": 0x3012})
	if res["ok"] != true {
		t.Fatalf("format set failed: %v", res)
	}
	f := res["format"].(map[string]any)
	if w, _ := f["width"].(uint32); w != 3856 {
		t.Fatalf("committed width = %v, want 3856", f["width"])
	}

	// Selection query.
	res = request(t, cli, bus.Topic{"camera", "cam0", "selection", "get"},
		map[string]any{"target": "native"})
	if res["ok"] != true {
		t.Fatalf("selection failed: %v", res)
	}
	rect := res["rect"].(map[string]any)
	if w, _ := rect["width"].(uint32); w != 3856 {
		t.Fatalf("native width = %v, want 3856", rect["width"])
	}

	// Unknown camera.
	res = request(t, cli, bus.Topic{"camera", "nope", "stream", "set"},
		map[string]any{"on": true})
	if res["code"] != "device_not_found" {
		t.Fatalf("unknown camera code = %v", res["code"])
	}
}

func TestCameraService_BadConfigReportsDown(t *testing.T) {
	b := bus.NewBus(64)
	svcConn := b.NewConnection("camera-svc")
	cli := b.NewConnection("cli")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, svcConn, fakeFactories{i2c: newFakeI2C()}, nullPowerFactory{})

	camState := cli.Subscribe(bus.Topic{"camera", "cam1", "state"})
	defer cli.Unsubscribe(camState)

	cfg := map[string]any{
		"version": 1,
		"cameras": []map[string]any{{
			"id":      "cam1",
			"type":    "imx678",
			"bus_ref": map[string]any{"ID": "i2c0", "Type": "i2c"},
			"params": map[string]any{
				"xclk_hz":      25000000, // unsupported
				"lanes":        4,
				"link_freq_hz": 891000000,
			},
		}},
	}
	cli.Publish(cli.NewMessage(bus.Topic{"config", "camera"}, cfg, false))

	m := recvMsg(t, camState.Channel(), "cam1 state")
	st := m.Payload.(map[string]any)
	if st["link"] != "down" || st["code"] != "config_error" {
		t.Fatalf("cam1 state = %v, want down/config_error", st)
	}
}
