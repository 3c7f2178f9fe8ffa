package heartbeat

import (
	"context"
	"time"

	"sensorcode-go/bus"
	"sensorcode-go/x/timex"
)

var (
	topicConfigHeartbeat = bus.Topic{"config", "heartbeat"}
	topicState           = bus.Topic{"heartbeat", "state"}
)

type Service struct{}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	interval := 1 * time.Second
	tick := time.NewTicker(interval)
	defer tick.Stop()

	var beats int64

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			conn.Publish(conn.NewMessage(topicState, map[string]any{
				"alive": false, "ts_ms": timex.NowMs(),
			}, true))
			return
		case <-tick.C:
			beats++
			conn.Publish(conn.NewMessage(topicState, map[string]any{
				"alive":      true,
				"beats":      beats,
				"interval_s": interval.Seconds(),
				"ts_ms":      timex.NowMs(),
			}, true))
		case msg := <-cfgSub.Channel():
			// Change tick interval if needed
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["interval"]; ok {
					if secs, ok := iv.(float64); ok && secs > 0 {
						interval = time.Duration(secs * float64(time.Second))
						tick.Reset(interval)
					}
				}
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
