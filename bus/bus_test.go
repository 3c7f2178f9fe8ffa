// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func recv(t *testing.T, sub *Subscription) *Message {
	t.Helper()
	select {
	case m := <-sub.Channel():
		return m
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(Topic{"config", "camera"})

	conn.Publish(conn.NewMessage(Topic{"config", "camera"}, "hello", false))

	got := recv(t, sub)
	if got.Payload.(string) != "hello" {
		t.Errorf("expected payload 'hello', got %v", got.Payload)
	}
}

func TestNoDeliveryOnDifferentTopic(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(Topic{"camera", "state"})
	conn.Publish(conn.NewMessage(Topic{"camera", "info"}, 1, false))

	select {
	case m := <-sub.Channel():
		t.Fatalf("unexpected message: %v", m.Payload)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRetainedDeliveredOnSubscribe(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(Topic{"camera", "state"}, "ready", true))

	sub := conn.Subscribe(Topic{"camera", "state"})
	got := recv(t, sub)
	if got.Payload.(string) != "ready" {
		t.Errorf("expected retained 'ready', got %v", got.Payload)
	}

	// nil payload clears the retained slot
	conn.Publish(conn.NewMessage(Topic{"camera", "state"}, nil, true))
	sub2 := conn.Subscribe(Topic{"camera", "state"})
	select {
	case m := <-sub2.Channel():
		if m.Payload != nil {
			t.Fatalf("expected no retained message, got %v", m.Payload)
		}
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWildcardMatchesOneLevel(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(Topic{"camera", "control", Wildcard, "set"})

	conn.Publish(conn.NewMessage(Topic{"camera", "control", "exposure", "set"}, 1000, false))
	got := recv(t, sub)
	if got.Topic[2].(string) != "exposure" {
		t.Errorf("expected control token 'exposure', got %v", got.Topic[2])
	}

	// Wrong depth must not match.
	conn.Publish(conn.NewMessage(Topic{"camera", "control", "set"}, 2, false))
	select {
	case m := <-sub.Channel():
		t.Fatalf("unexpected wildcard match: %v", m.Topic)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestReply(t *testing.T) {
	b := NewBus(4)
	server := b.NewConnection("server")
	client := b.NewConnection("client")

	reqSub := server.Subscribe(Topic{"camera", "stream", "start"})
	repSub := client.Subscribe(Topic{"reply", "client", 1})

	req := client.NewMessage(Topic{"camera", "stream", "start"}, nil, false)
	req.ReplyTo = Topic{"reply", "client", 1}
	client.Publish(req)

	got := recv(t, reqSub)
	server.Reply(got, map[string]any{"ok": true}, false)

	rep := recv(t, repSub)
	m := rep.Payload.(map[string]any)
	if m["ok"] != true {
		t.Errorf("expected ok reply, got %v", rep.Payload)
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(Topic{"t"})

	for i := 0; i < 5; i++ {
		conn.Publish(conn.NewMessage(Topic{"t"}, i, false))
	}

	first := recv(t, sub)
	if first.Payload.(int) != 3 {
		t.Errorf("expected oldest surviving payload 3, got %v", first.Payload)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(Topic{"t"})
	sub.Unsubscribe()

	// Publishing after unsubscribe must not panic or deliver.
	conn.Publish(conn.NewMessage(Topic{"t"}, 1, false))

	if _, ok := <-sub.Channel(); ok {
		t.Fatal("expected closed channel after unsubscribe")
	}
}
