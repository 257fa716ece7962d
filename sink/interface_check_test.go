package sink_test

import (
	"github.com/sarchlab/perftrack/measure"
	"github.com/sarchlab/perftrack/sink"
)

// This file verifies that every sink implements the measure.Sink interface.
// If this compiles, the contracts are correctly implemented.

var _ measure.Sink = (*sink.WriterSink)(nil)
var _ measure.Sink = (*sink.Collector)(nil)
var _ measure.Sink = (*sink.RecorderSink)(nil)
