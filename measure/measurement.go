package measure

import (
	"strings"
	"time"
)

// A Measurement is one timed unit of work. Measurements are created by a
// Tracker (roots) or by TrackChild (children) and must be closed exactly once.
// Close is idempotent; all other operations panic after the measurement is
// closed.
//
// A Measurement is not safe for concurrent mutation. Confine it to the
// goroutine that created it, or synchronize externally. Children closing
// concurrently into one shared parent also require external synchronization.
type Measurement interface {
	// TrackChild creates a new measurement nested under this one. The child
	// starts its own clock immediately and does not affect this measurement
	// until it closes.
	TrackChild(operationName string) Measurement

	// AddValue appends a numeric fact. Repeated names are all retained and
	// all rendered, producing repeated keys in the output.
	AddValue(name string, unit string, value int64)

	// AddFact records a string fact. A later write to the same key replaces
	// the earlier one.
	AddFact(key string, value string)

	// AddBoolFact records a boolean fact. Same overwrite semantics as
	// AddFact, in a separate namespace.
	AddBoolFact(key string, value bool)

	// Close stops the clock, records the Elapsed fact, and serializes the
	// measurement. A root delivers the payload of its whole subtree to the
	// sink; a child rolls its payload up into its parent. Closing an
	// already-closed measurement is a no-op.
	Close() error
}

type numericFact struct {
	name  string
	unit  string
	value int64
}

type measurement struct {
	operationName string
	operationID   string
	parent        *measurement
	tracker       *Tracker

	startTime time.Time

	numericFacts []numericFact
	stringFacts  map[string]string
	stringKeys   []string
	boolFacts    map[string]bool
	boolKeys     []string

	// Serialized payloads of already-closed descendants, in close order. The
	// measurement's own record is appended last, during Close.
	childPayloads []string

	closed bool
}

func newMeasurement(
	operationName string,
	parent *measurement,
	tracker *Tracker,
) *measurement {
	operationNameMustNotBeEmpty(operationName)

	return &measurement{
		operationName: operationName,
		operationID:   tracker.idGen.Generate(),
		parent:        parent,
		tracker:       tracker,
		startTime:     tracker.clock.Now(),
		stringFacts:   make(map[string]string),
		boolFacts:     make(map[string]bool),
	}
}

func operationNameMustNotBeEmpty(name string) {
	if name == "" {
		panic("operation name must not be empty")
	}
}

func (m *measurement) mustBeOpen() {
	if m.closed {
		panic("measurement " + m.operationName + " is already closed")
	}
}

func (m *measurement) TrackChild(operationName string) Measurement {
	m.mustBeOpen()

	return newMeasurement(operationName, m, m.tracker)
}

func (m *measurement) AddValue(name string, unit string, value int64) {
	m.mustBeOpen()

	m.numericFacts = append(m.numericFacts, numericFact{
		name:  name,
		unit:  unit,
		value: value,
	})
}

func (m *measurement) AddFact(key string, value string) {
	m.mustBeOpen()

	if _, seen := m.stringFacts[key]; !seen {
		m.stringKeys = append(m.stringKeys, key)
	}
	m.stringFacts[key] = value
}

func (m *measurement) AddBoolFact(key string, value bool) {
	m.mustBeOpen()

	if _, seen := m.boolFacts[key]; !seen {
		m.boolKeys = append(m.boolKeys, key)
	}
	m.boolFacts[key] = value
}

func (m *measurement) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	elapsed := m.tracker.clock.Now().Sub(m.startTime)
	m.numericFacts = append(m.numericFacts, numericFact{
		name:  "Elapsed",
		unit:  "ms",
		value: elapsed.Milliseconds(),
	})

	m.childPayloads = append(m.childPayloads, m.serialize())
	joined := strings.Join(m.childPayloads, ",")
	m.childPayloads = nil

	if m.parent != nil {
		m.parent.appendChildPayload(joined)
		return nil
	}

	return m.tracker.sink.Collect(m.tracker.typeName, "["+joined+"]")
}

func (m *measurement) appendChildPayload(payload string) {
	m.childPayloads = append(m.childPayloads, payload)
}
