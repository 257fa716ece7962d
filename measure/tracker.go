package measure

import (
	"time"

	"github.com/sarchlab/perftrack/idgen"
)

// A Sink receives the serialized payload of one measurement tree. Collect is
// invoked exactly once per root measurement, with payload being a bracketed
// array of flat JSON objects.
type Sink interface {
	Collect(label string, payload string) error
}

// A Clock tells the current time. The default clock reads time.Now, whose
// monotonic reading makes elapsed times immune to wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// A Tracker creates measurements routed to one sink under one routing label.
// Whether a measurement records anything is decided by the enablement
// predicate, evaluated once per Track call. A disabled Track returns an inert
// measurement whose children are inert as well, so instrumentation can stay
// in hot paths unconditionally.
//
// The tracker itself holds no measurement state and is safe for concurrent
// Track calls once configured.
type Tracker struct {
	typeName string
	sink     Sink
	enabled  func() bool
	idGen    idgen.Generator
	clock    Clock
}

// NewTracker creates a Tracker. typeName is the routing label passed to the
// sink with every payload. enabled is consulted once per Track call; it is
// never re-evaluated for children of an existing measurement.
func NewTracker(typeName string, sink Sink, enabled func() bool) *Tracker {
	if sink == nil {
		panic("sink must not be nil")
	}

	if enabled == nil {
		panic("enablement predicate must not be nil")
	}

	return &Tracker{
		typeName: typeName,
		sink:     sink,
		enabled:  enabled,
		idGen:    idgen.New(),
		clock:    realClock{},
	}
}

// WithIDGenerator replaces the operation-ID generator. Mainly for tests that
// need deterministic IDs.
func (t *Tracker) WithIDGenerator(g idgen.Generator) *Tracker {
	t.idGen = g
	return t
}

// WithClock replaces the clock. Mainly for tests that need deterministic
// elapsed times.
func (t *Tracker) WithClock(c Clock) *Tracker {
	t.clock = c
	return t
}

// Track opens a root measurement named operationName. When the enablement
// predicate reports false, the returned measurement is a no-op whose entire
// subtree is no-op and which never touches the sink.
func (t *Tracker) Track(operationName string) Measurement {
	operationNameMustNotBeEmpty(operationName)

	if !t.enabled() {
		return noopMeasurement{}
	}

	return newMeasurement(operationName, nil, t)
}
