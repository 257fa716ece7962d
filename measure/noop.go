package measure

// noopMeasurement implements the full Measurement capability set without
// recording anything. It allocates no ID, starts no clock, and never touches
// the sink. Its children are no-ops as well. Every operation is safe to call
// in any order, any number of times, including after Close.
type noopMeasurement struct{}

func (noopMeasurement) TrackChild(string) Measurement {
	return noopMeasurement{}
}

func (noopMeasurement) AddValue(string, string, int64) {}

func (noopMeasurement) AddFact(string, string) {}

func (noopMeasurement) AddBoolFact(string, bool) {}

func (noopMeasurement) Close() error {
	return nil
}
