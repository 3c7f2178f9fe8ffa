// services/camera/camera.go
package camera

import (
	"context"
	"encoding/json"

	"sensorcode-go/bus"
	"sensorcode-go/errcode"
	"sensorcode-go/x/timex"
)

// -----------------------------------------------------------------------------
// Entry point
// -----------------------------------------------------------------------------

func Run(ctx context.Context, conn *bus.Connection, buses I2CBusFactory, power PowerFactory) {
	s := &service{
		conn:  conn,
		buses: buses,
		power: power,
		cams:  map[string]Adaptor{},
	}
	s.loop(ctx)
}

type service struct {
	conn  *bus.Connection
	buses I2CBusFactory
	power PowerFactory
	cams  map[string]Adaptor
}

// -----------------------------------------------------------------------------
// Main loop
// -----------------------------------------------------------------------------

func (s *service) loop(ctx context.Context) {
	cfgSub := s.conn.Subscribe(bus.Topic{"config", "camera"})
	opSub := s.conn.Subscribe(bus.Topic{"camera", "+", "+", "+"})
	ctrlSub := s.conn.Subscribe(bus.Topic{"camera", "+", "control", "+", "+"})
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(opSub)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState("idle", "awaiting_config", nil)

	for {
		select {
		case <-ctx.Done():
			s.publishState("stopped", "context_cancelled", nil)
			return

		case msg := <-cfgSub.Channel():
			var cfg Config
			if err := decodeJSON(msg.Payload, &cfg); err != nil {
				s.publishState("error", "config_decode_failed", err)
				continue
			}
			s.applyConfig(cfg)
			s.publishState("ready", "configured", nil)

		case msg := <-opSub.Channel():
			s.handleOp(msg)

		case msg := <-ctrlSub.Channel():
			s.handleControl(msg)
		}
	}
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

func (s *service) applyConfig(cfg Config) {
	seen := map[string]struct{}{}

	for i := range cfg.Cameras {
		c := &cfg.Cameras[i]
		seen[c.ID] = struct{}{}

		// Simple idempotence: an already-built camera keeps running.
		if _, exists := s.cams[c.ID]; exists {
			continue
		}

		b, ok := findBuilder(c.Type)
		if !ok {
			s.pubRet(bus.Topic{"camera", c.ID, "state"}, map[string]any{
				"link": "down", "error": "unknown sensor type " + c.Type,
				"ts_ms": timex.NowMs(),
			})
			continue
		}
		ad, err := b.Build(BuildInput{
			Buses:      s.buses,
			Power:      s.power,
			CamID:      c.ID,
			Type:       c.Type,
			BusID:      c.BusRef.ID,
			PowerID:    c.PowerRef,
			ParamsJSON: c.Params,
		})
		if err != nil {
			s.pubRet(bus.Topic{"camera", c.ID, "state"}, map[string]any{
				"link": "down", "code": string(errcode.Of(err)),
				"error": err.Error(), "ts_ms": timex.NowMs(),
			})
			continue
		}

		s.cams[c.ID] = ad
		s.pubRet(bus.Topic{"camera", c.ID, "info"}, ad.Info())
		s.publishCamState(ad)
	}

	// Tidy-up: drop cameras removed from config.
	for id, ad := range s.cams {
		if _, ok := seen[id]; ok {
			continue
		}
		_ = ad.Power("off")
		s.pubRet(bus.Topic{"camera", id, "info"}, nil)
		s.pubRet(bus.Topic{"camera", id, "state"}, map[string]any{
			"link": "down", "ts_ms": timex.NowMs(),
		})
		delete(s.cams, id)
	}
}

// -----------------------------------------------------------------------------
// Request handling
// -----------------------------------------------------------------------------

// handleOp serves camera/<id>/<group>/<verb>.
func (s *service) handleOp(msg *bus.Message) {
	if len(msg.Topic) < 4 {
		return
	}
	id, _ := msg.Topic[1].(string)
	group, _ := msg.Topic[2].(string)
	verb, _ := msg.Topic[3].(string)

	ad, ok := s.cams[id]
	if !ok {
		s.replyErr(msg, errcode.DeviceNotFound)
		return
	}

	switch group + "/" + verb {
	case "stream/set":
		var p struct {
			On bool `json:"on"`
		}
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		if err := ad.SetStream(p.On); err != nil {
			s.replyErr(msg, err)
		} else {
			s.replyOK(msg, nil)
		}
		s.publishCamState(ad)

	case "power/set":
		var p struct {
			Action string `json:"action"`
		}
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		if err := ad.Power(p.Action); err != nil {
			s.replyErr(msg, err)
		} else {
			s.replyOK(msg, nil)
		}
		s.publishCamState(ad)

	case "format/get":
		var p FormatReq
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		if f, err := ad.GetFormat(p.Pad, p.Which); err != nil {
			s.replyErr(msg, err)
		} else {
			s.replyOK(msg, map[string]any{"format": f})
		}

	case "format/set":
		var p FormatReq
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		f, err := ad.SetFormat(p)
		if err != nil {
			s.replyErr(msg, err)
			return
		}
		s.replyOK(msg, map[string]any{"format": f})
		// An active commit changes derived control ranges.
		if p.Which != "try" {
			s.pubRet(bus.Topic{"camera", id, "info"}, ad.Info())
			s.publishCamState(ad)
		}

	case "format/enum":
		var p FormatReq
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		if list, err := ad.EnumFormats(p.Pad); err != nil {
			s.replyErr(msg, err)
		} else {
			s.replyOK(msg, map[string]any{"formats": list})
		}

	case "selection/get":
		var p struct {
			Target string `json:"target"`
		}
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		if r, err := ad.Selection(p.Target); err != nil {
			s.replyErr(msg, err)
		} else {
			s.replyOK(msg, map[string]any{"rect": r})
		}

	case "state/get":
		s.replyOK(msg, map[string]any{"state": ad.State()})

	default:
		s.replyErr(msg, errcode.InvalidTopic)
	}
}

// handleControl serves camera/<id>/control/<name>/<set|get>.
func (s *service) handleControl(msg *bus.Message) {
	if len(msg.Topic) < 5 {
		return
	}
	id, _ := msg.Topic[1].(string)
	name, _ := msg.Topic[3].(string)
	verb, _ := msg.Topic[4].(string)

	ad, ok := s.cams[id]
	if !ok {
		s.replyErr(msg, errcode.DeviceNotFound)
		return
	}

	switch verb {
	case "set":
		var p struct {
			Value *int64 `json:"value"`
		}
		if err := decodeJSON(msg.Payload, &p); err != nil || p.Value == nil {
			s.replyErr(msg, errcode.InvalidParams)
			return
		}
		if err := ad.SetControl(name, *p.Value); err != nil {
			s.replyErr(msg, err)
			return
		}
		// Reply with the post-clamp value.
		c, err := ad.GetControl(name)
		if err != nil {
			s.replyErr(msg, err)
			return
		}
		s.replyOK(msg, map[string]any{"control": c})

	case "get":
		if c, err := ad.GetControl(name); err != nil {
			s.replyErr(msg, err)
		} else {
			s.replyOK(msg, map[string]any{"control": c})
		}

	default:
		s.replyErr(msg, errcode.InvalidTopic)
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (s *service) publishState(level, status string, err error) {
	payload := map[string]any{"level": level, "status": status, "ts_ms": timex.NowMs()}
	if err != nil {
		payload["error"] = err.Error()
	}
	s.conn.Publish(s.conn.NewMessage(bus.Topic{"camera", "state"}, payload, true))
}

func (s *service) publishCamState(ad Adaptor) {
	st := ad.State()
	st["link"] = "up"
	st["ts_ms"] = timex.NowMs()
	s.pubRet(bus.Topic{"camera", ad.ID(), "state"}, st)
}

func (s *service) pubRet(t bus.Topic, p any) {
	s.conn.Publish(s.conn.NewMessage(t, p, true))
}

func (s *service) replyOK(req *bus.Message, extra map[string]any) {
	if len(req.ReplyTo) == 0 {
		return
	}
	m := map[string]any{"ok": true, "code": string(errcode.OK)}
	for k, v := range extra {
		m[k] = v
	}
	s.conn.Reply(req, m, false)
}

func (s *service) replyErr(req *bus.Message, err error) {
	if len(req.ReplyTo) == 0 {
		return
	}
	s.conn.Reply(req, map[string]any{
		"ok":    false,
		"code":  string(errcode.Of(err)),
		"error": err.Error(),
	}, false)
}

func decodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		// Accept maps, structs, numbers… by marshaling then decoding to T.
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}
