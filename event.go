package geovu

import "fmt"

// event.go implements the Event/Lifecycle Mixin, component A. Features,
// Layer, Engine and the root material manager embed a Lifecycle to get
// on/off/fire/destroy/enable/disable/toggle plus the guarded
// beginAdd/beginRemove steps behind their addTo/remove for free;
// individual material.Property values do not embed one. This is the same way the teacher engine gives every
// component-managed entity the same Dispose/Exists contract (ent.go)
// instead of an inheritance chain (§9 design notes).
//
// Go has no comparable function values, so On returns a Subscription
// token instead of requiring the caller's original function reference
// back on Off — an idiomatic substitution for the literal
// on(type, listener, ctx) / off(type, listener, ctx) pairing in spec §4.A.

// EventType names one of the standard lifecycle or domain events a
// Lifecycle can fire.
type EventType string

// Standard event vocabulary (spec §4.A).
const (
	EventAdd     EventType = "add"
	EventRemove  EventType = "remove"
	EventDestroy EventType = "destroy"
	EventEnable  EventType = "enable"
	EventDisable EventType = "disable"
	EventChange  EventType = "change"
	EventShow    EventType = "show"
	EventHide    EventType = "hide"

	EventClick      EventType = "click"
	EventMouseOver  EventType = "mouseOver"
	EventMouseOut   EventType = "mouseOut"
	EventLoadError  EventType = "loadError"

	// Effect / material-property lifecycle events.
	EventStart    EventType = "start"
	EventStop     EventType = "stop"
	EventPause    EventType = "pause"
	EventResume   EventType = "resume"
	EventLoop     EventType = "loop"
	EventComplete EventType = "complete"

	// Editable-feature drawing events.
	EventDrawStart     EventType = "drawStart"
	EventDrawAddPoint  EventType = "drawAddPoint"
	EventEditMovePoint EventType = "editMovePoint"

	// Engine/Layer specific events (spec §4.I, §4.J).
	EventDataChanged        EventType = "dataChanged"
	EventVisibilityChanged  EventType = "visibilityChanged"
	EventDestroyed          EventType = "destroyed"
	EventCurrentTimeChanged EventType = "currentTimeChanged"
	EventInitialized        EventType = "initialized"
	EventError              EventType = "error"
	EventLayerInteraction   EventType = "layerInteraction"
	EventDefinitionChanged  EventType = "definitionChanged"
)

// Listener receives event data fired by a Lifecycle. Panics raised inside
// a Listener are recovered and logged; they never abort dispatch to the
// remaining listeners (spec §4.A).
type Listener func(data any)

// Subscription identifies a registered Listener so it can later be
// removed with Off.
type Subscription handle

type listenerEntry struct {
	sub Subscription
	fn  Listener
}

// Lifecycle is embedded by every managed geovu type to provide the
// uniform on/off/fire/addTo/remove/destroy/enable/disable/toggle
// contract described in spec §4.A.
type Lifecycle struct {
	component string // used only in diagnostic log lines, e.g. "layer".
	log       *Logger

	listeners map[EventType][]listenerEntry
	handles   handlePool

	added     bool
	destroyed bool
	enabled   bool
}

// NewLifecycle initializes a Lifecycle for a managed object identified by
// component (used in diagnostics) using logger for warnings. A nil logger
// falls back to DefaultLogger.
func NewLifecycle(component string, logger *Logger) Lifecycle {
	if logger == nil {
		logger = DefaultLogger()
	}
	return Lifecycle{
		component: component,
		log:       logger,
		listeners: map[EventType][]listenerEntry{},
		enabled:   true,
	}
}

// On registers fn to be called whenever t is fired. Returns a token usable
// with Off. Dispatch order matches registration order (spec §5).
func (lc *Lifecycle) On(t EventType, fn Listener) Subscription {
	if fn == nil {
		return 0
	}
	sub := Subscription(lc.handles.acquire())
	lc.listeners[t] = append(lc.listeners[t], listenerEntry{sub: sub, fn: fn})
	return sub
}

// Off removes a single listener previously returned by On.
func (lc *Lifecycle) Off(t EventType, sub Subscription) {
	entries := lc.listeners[t]
	for i, e := range entries {
		if e.sub == sub {
			lc.listeners[t] = append(entries[:i], entries[i+1:]...)
			lc.handles.release(handle(sub))
			return
		}
	}
}

// OffAll removes every listener registered for t.
func (lc *Lifecycle) OffAll(t EventType) {
	delete(lc.listeners, t)
}

// Fire dispatches data to every listener registered for t, synchronously,
// in registration order. A listener that panics is recovered and logged;
// later listeners still run (spec §4.A, §7 "runtime failure in a listener").
func (lc *Lifecycle) Fire(t EventType, data any) {
	// Snapshot so a listener that calls On/Off during dispatch cannot
	// corrupt the slice being ranged over.
	entries := append([]listenerEntry(nil), lc.listeners[t]...)
	for _, e := range entries {
		lc.dispatchOne(t, e, data)
	}
}

func (lc *Lifecycle) dispatchOne(t EventType, e listenerEntry, data any) {
	defer func() {
		if r := recover(); r != nil {
			lc.log.errorf(lc.component, string(t), map[string]any{"panic": fmt.Sprint(r)},
				"listener panicked, dispatch continues")
		}
	}()
	e.fn(data)
}

// beginAdd is called by concrete AddTo implementations before attaching
// to a host. Returns false (and warns) if the object is destroyed or
// already added, matching the guard semantics in spec §4.A.
func (lc *Lifecycle) beginAdd() bool {
	if lc.destroyed {
		lc.log.warn(lc.component, "addTo", nil, "addTo called on a destroyed object")
		return false
	}
	if lc.added {
		return true // idempotent: already attached.
	}
	lc.added = true
	lc.Fire(EventAdd, nil)
	return true
}

// beginRemove is called by concrete Remove implementations. A remove on
// an object that was never added is a no-op warning, not an error.
func (lc *Lifecycle) beginRemove() bool {
	if !lc.added {
		lc.log.warn(lc.component, "remove", nil, "remove called on an object that was not added")
		return false
	}
	lc.added = false
	lc.Fire(EventRemove, nil)
	return true
}

// Destroy empties the listener tables and marks the object unusable.
// Idempotent: a second call is a no-op (spec §4.A).
func (lc *Lifecycle) Destroy() {
	if lc.destroyed {
		return
	}
	lc.destroyed = true
	lc.Fire(EventDestroy, nil)
	lc.listeners = map[EventType][]listenerEntry{}
}

// Destroyed reports whether Destroy has already run.
func (lc *Lifecycle) Destroyed() bool { return lc.destroyed }

// Added reports whether the object is currently attached to a host.
func (lc *Lifecycle) Added() bool { return lc.added }

// Enabled reports the current enable/disable state.
func (lc *Lifecycle) Enabled() bool { return lc.enabled }

// Enable marks the object active and fires "enable" if the state changed.
func (lc *Lifecycle) Enable() {
	if lc.enabled {
		return
	}
	lc.enabled = true
	lc.Fire(EventEnable, nil)
}

// Disable marks the object inactive and fires "disable" if the state changed.
func (lc *Lifecycle) Disable() {
	if !lc.enabled {
		return
	}
	lc.enabled = false
	lc.Fire(EventDisable, nil)
}

// Toggle flips the enable/disable state.
func (lc *Lifecycle) Toggle() {
	if lc.enabled {
		lc.Disable()
	} else {
		lc.Enable()
	}
}
