package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/typereg/internal/core/event"
	coresys "github.com/l1jgo/typereg/internal/core/system"
)

// EventDispatchSystem delivers the previous tick's events. Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// SubscribeLogging logs component lifecycle events at debug level and main
// camera changes at info level.
func SubscribeLogging(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.ComponentAttached) {
		log.Debug("component attached",
			zap.String("entity", ev.Name),
			zap.String("kind", string(ev.Kind)),
			zap.Int("index", ev.Index))
	})
	event.Subscribe(bus, func(ev event.ComponentDetached) {
		log.Debug("component detached",
			zap.String("entity", ev.Name),
			zap.String("kind", string(ev.Kind)))
	})
	event.Subscribe(bus, func(ev event.MainCameraChanged) {
		log.Info("main camera changed",
			zap.Uint64("from", uint64(ev.From)),
			zap.Uint64("to", uint64(ev.To)))
	})
}
