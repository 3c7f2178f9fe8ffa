package heartbeat

import (
	"context"
	"testing"
	"time"

	"sensorcode-go/bus"
)

func TestHeartbeat_PublishesRetainedState(t *testing.T) {
	b := bus.NewBus(16)
	svcConn := b.NewConnection("heartbeat-svc")
	cli := b.NewConnection("test")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &Service{}
	if err := svc.Start(ctx, svcConn); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Speed the beat up so the test does not idle for a second.
	cli.Publish(cli.NewMessage(bus.Topic{"config", "heartbeat"},
		map[string]any{"interval": 0.05}, false))

	sub := cli.Subscribe(bus.Topic{"heartbeat", "state"})
	defer cli.Unsubscribe(sub)

	select {
	case m := <-sub.Channel():
		st, ok := m.Payload.(map[string]any)
		if !ok {
			t.Fatalf("state payload type %T", m.Payload)
		}
		if st["alive"] != true {
			t.Fatalf("alive = %v, want true", st["alive"])
		}
		if _, ok := st["ts_ms"].(int64); !ok {
			t.Fatalf("ts_ms type %T", st["ts_ms"])
		}
		if !m.Retained {
			t.Fatal("heartbeat state not retained")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no heartbeat within deadline")
	}
}

func TestHeartbeat_StopsOnCancel(t *testing.T) {
	b := bus.NewBus(16)
	svcConn := b.NewConnection("heartbeat-svc")
	cli := b.NewConnection("test")

	ctx, cancel := context.WithCancel(context.Background())

	svc := &Service{}
	if err := svc.Start(ctx, svcConn); err != nil {
		t.Fatalf("start: %v", err)
	}

	sub := cli.Subscribe(bus.Topic{"heartbeat", "state"})
	defer cli.Unsubscribe(sub)

	cancel()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case m := <-sub.Channel():
			st := m.Payload.(map[string]any)
			if st["alive"] == false {
				return
			}
		case <-deadline:
			t.Fatal("no final not-alive state after cancel")
		}
	}
}
