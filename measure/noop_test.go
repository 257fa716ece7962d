package measure

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Noop Measurement", func() {
	var (
		sink    *collectingSink
		tracker *Tracker
	)

	BeforeEach(func() {
		sink = &collectingSink{}
		tracker = NewTracker("perf", sink, neverEnabled)
	})

	It("should never emit, regardless of the operation sequence", func() {
		m := tracker.Track("main")
		m.AddValue("Custom", "ms", 1000)
		m.AddFact("Key", "value")
		m.AddBoolFact("Flag", true)

		child := m.TrackChild("child")
		grandchild := child.TrackChild("grandchild")
		grandchild.AddValue("Depth", "levels", 2)

		Expect(grandchild.Close()).To(Succeed())
		Expect(child.Close()).To(Succeed())
		Expect(m.Close()).To(Succeed())

		Expect(sink.emissions).To(BeEmpty())
	})

	It("should tolerate operations after Close", func() {
		m := tracker.Track("main")
		Expect(m.Close()).To(Succeed())

		Expect(func() {
			m.AddValue("Late", "ms", 1)
			m.AddFact("Late", "x")
			m.AddBoolFact("Late", true)
			m.TrackChild("late_child")
		}).ToNot(Panic())

		Expect(m.Close()).To(Succeed())
		Expect(sink.emissions).To(BeEmpty())
	})

	It("should propagate no-op-ness through TrackChild", func() {
		m := tracker.Track("main")

		child := m.TrackChild("child")
		Expect(child).To(BeAssignableToTypeOf(noopMeasurement{}))

		grandchild := child.TrackChild("grandchild")
		Expect(grandchild).To(BeAssignableToTypeOf(noopMeasurement{}))
	})
})
