package measure

import (
	"encoding/json"
	"time"

	. "github.com/onsi/gomega"
)

// collectingSink retains every emission for inspection.
type collectingSink struct {
	emissions []emission
}

type emission struct {
	label   string
	payload string
}

func (s *collectingSink) Collect(label, payload string) error {
	s.emissions = append(s.emissions, emission{label: label, payload: payload})
	return nil
}

// testClock is a manually-advanced clock.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1000, 0)}
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// parsePayload decodes a bracketed payload into its flattened objects.
// Repeated keys within one object collapse to the last value, which is
// acceptable for the structural assertions here.
func parsePayload(payload string) []map[string]any {
	var objects []map[string]any

	err := json.Unmarshal([]byte(payload), &objects)
	Expect(err).ToNot(HaveOccurred())

	return objects
}

func alwaysEnabled() bool {
	return true
}

func neverEnabled() bool {
	return false
}
