package environment

// EventID identifies a global era. EventNone means no era is active.
type EventID int8

const (
	EventNone EventID = iota - 1
	SolarMax
	IceAge
	ToxicBloom
	VoidStorm
)

// NumEvents is the number of cyclic eras.
const NumEvents = 4

var eventNames = [NumEvents]string{"Solar Max", "Ice Age", "Toxic Era", "Void Storm"}

// StableEra is the display name used while no event is active.
const StableEra = "Stable Era"

// Valid reports whether e is one of the four eras.
func (e EventID) Valid() bool {
	return e >= 0 && e < NumEvents
}

// String returns the era name, or StableEra for EventNone.
func (e EventID) String() string {
	if !e.Valid() {
		return StableEra
	}
	return eventNames[e]
}

// EventCycle is the global era state machine. It rotates through the four
// eras when auto-cycling, blending from the current era into the next one.
// The blend progress is observable but carries no gameplay effect.
type EventCycle struct {
	current    EventID
	next       EventID
	progress   float64
	phaseTimer int
	autoCycle  bool

	eraDuration int
	blendStep   float64
}

// NewEventCycle creates an idle cycle with no active era.
func NewEventCycle(eraDuration int, blendStep float64, autoCycle bool) *EventCycle {
	return &EventCycle{
		current:     EventNone,
		next:        EventNone,
		autoCycle:   autoCycle,
		eraDuration: eraDuration,
		blendStep:   blendStep,
	}
}

// Trigger starts blending into evt.
func (c *EventCycle) Trigger(evt EventID) {
	c.next = evt
	c.progress = 0
}

// SetAutoCycle enables or disables automatic era rotation.
func (c *EventCycle) SetAutoCycle(enabled bool) {
	c.autoCycle = enabled
}

// AutoCycle reports whether automatic rotation is enabled.
func (c *EventCycle) AutoCycle() bool { return c.autoCycle }

// Current returns the era blended in last.
func (c *EventCycle) Current() EventID { return c.current }

// Next returns the era being blended in.
func (c *EventCycle) Next() EventID { return c.next }

// Progress returns the blend progress in [0,1].
func (c *EventCycle) Progress() float64 { return c.progress }

// Era returns the most recently announced era: the pending one if any,
// otherwise the current one.
func (c *EventCycle) Era() EventID {
	if c.next != EventNone {
		return c.next
	}
	return c.current
}

// Advance runs one tick of the cycle. It does nothing unless auto-cycling.
// Returns true when a new era was triggered this tick.
func (c *EventCycle) Advance() bool {
	if !c.autoCycle {
		return false
	}

	triggered := false
	c.phaseTimer++
	if c.phaseTimer > c.eraDuration {
		c.phaseTimer = 0
		c.Trigger(EventID((int(c.current) + 1) % NumEvents))
		triggered = true
	}

	if c.progress < 1.0 {
		c.progress += c.blendStep
		if c.progress >= 1.0 {
			c.progress = 1.0
			c.current = c.next
		}
	}

	return triggered
}
