package sink

import (
	"sync"
	"time"

	"github.com/sarchlab/perftrack/recording"
)

// payloadTableName is the table RecorderSink writes into.
const payloadTableName = "performance_payloads"

// PayloadRow is one collected payload as stored by RecorderSink.
type PayloadRow struct {
	Label       string
	Payload     string
	CollectedAt int64
}

// RecorderSink stores each collected payload as one row in a
// recording.Recorder. Safe for concurrent Collect calls.
type RecorderSink struct {
	lock     sync.Mutex
	recorder recording.Recorder
	now      func() time.Time
}

// NewRecorderSink creates a RecorderSink. The payload table is created
// immediately.
func NewRecorderSink(recorder recording.Recorder) *RecorderSink {
	recorder.CreateTable(payloadTableName, PayloadRow{})

	return &RecorderSink{
		recorder: recorder,
		now:      time.Now,
	}
}

// Collect stores one payload row stamped with the collection time in Unix
// milliseconds. Rows are buffered by the recorder; call Flush on the recorder
// (or let atexit do it) to persist them.
func (s *RecorderSink) Collect(label, payload string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.recorder.InsertData(payloadTableName, PayloadRow{
		Label:       label,
		Payload:     payload,
		CollectedAt: s.now().UnixMilli(),
	})

	return nil
}

// MapPayloadTable prepares a reader for querying rows written by a
// RecorderSink.
func MapPayloadTable(reader recording.Reader) {
	reader.MapTable(payloadTableName, PayloadRow{})
}

// PayloadTableName returns the table RecorderSink writes into.
func PayloadTableName() string {
	return payloadTableName
}
