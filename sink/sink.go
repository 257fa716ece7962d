// Package sink provides destinations for collected performance payloads.
// Every sink implements the measure.Sink contract: Collect is called at most
// once per root measurement with a bracketed array of flat JSON objects.
package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// WriterSink streams each collected payload to an io.Writer as one line of
// the form `{"type":<label>,"records":<payload>}`. Safe for concurrent
// Collect calls.
type WriterSink struct {
	lock sync.Mutex
	w    io.Writer
}

// NewWriterSink creates a WriterSink on the given writer.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// NewFileSink creates a WriterSink on a uniquely-named .perf.json file in the
// working directory. The file is closed when the process exits.
func NewFileSink() *WriterSink {
	filename := xid.New().String() + ".perf.json"

	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Performance payloads collected in %s\n", filename)

	atexit.Register(func() { f.Close() })

	return NewWriterSink(f)
}

// Collect writes one payload line.
func (s *WriterSink) Collect(label, payload string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, err := fmt.Fprintf(s.w, "{%q:%q,%q:%s}\n",
		"type", label, "records", payload)

	return err
}

// An Emission is one payload delivered to a Collector.
type Emission struct {
	Label   string
	Payload string
}

// Collector retains every collected payload in memory. Useful in tests and
// for host applications that forward payloads in their own way. Safe for
// concurrent use.
type Collector struct {
	lock      sync.Mutex
	emissions []Emission
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Collect retains one payload.
func (c *Collector) Collect(label, payload string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.emissions = append(c.emissions, Emission{Label: label, Payload: payload})

	return nil
}

// Emissions returns a copy of everything collected so far.
func (c *Collector) Emissions() []Emission {
	c.lock.Lock()
	defer c.lock.Unlock()

	emissions := make([]Emission, len(c.emissions))
	copy(emissions, c.emissions)

	return emissions
}

// Reset discards everything collected so far.
func (c *Collector) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.emissions = nil
}
