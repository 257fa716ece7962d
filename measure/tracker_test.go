package measure

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Tracker", func() {
	var (
		ctrl *gomock.Controller
		sink *MockSink
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		sink = NewMockSink(ctrl)
	})

	It("should emit once with the tracker's routing label", func() {
		tracker := NewTracker("web_requests", sink, alwaysEnabled)

		sink.EXPECT().
			Collect("web_requests", gomock.Any()).
			Return(nil)

		m := tracker.Track("handle_request")
		Expect(m.Close()).To(Succeed())
	})

	It("should evaluate the enablement predicate once per Track call", func() {
		evaluations := 0
		tracker := NewTracker("perf", sink, func() bool {
			evaluations++
			return false
		})

		tracker.Track("first")
		tracker.Track("second")

		Expect(evaluations).To(Equal(2))
	})

	It("should not re-evaluate enablement for children", func() {
		evaluations := 0
		tracker := NewTracker("perf", sink, func() bool {
			evaluations++
			return true
		})

		sink.EXPECT().Collect("perf", gomock.Any()).Return(nil)

		m := tracker.Track("parent")
		child := m.TrackChild("child")
		grandchild := child.TrackChild("grandchild")

		Expect(grandchild.Close()).To(Succeed())
		Expect(child.Close()).To(Succeed())
		Expect(m.Close()).To(Succeed())

		Expect(evaluations).To(Equal(1))
	})

	It("should return a no-op measurement when disabled", func() {
		tracker := NewTracker("perf", sink, neverEnabled)

		m := tracker.Track("ignored")
		m.AddValue("Custom", "ms", 1000)
		m.AddFact("Key", "value")
		m.AddBoolFact("Flag", true)

		child := m.TrackChild("also_ignored")
		Expect(child.Close()).To(Succeed())
		Expect(m.Close()).To(Succeed())
		// The mock has no expectations, so any Collect call fails the test.
	})

	It("should propagate a sink failure to the caller of Close", func() {
		tracker := NewTracker("perf", sink, alwaysEnabled)

		sinkErr := errors.New("backend unavailable")
		sink.EXPECT().
			Collect("perf", gomock.Any()).
			Return(sinkErr)

		m := tracker.Track("doomed")
		Expect(m.Close()).To(MatchError(sinkErr))
	})

	It("should panic when tracking with an empty operation name", func() {
		tracker := NewTracker("perf", sink, alwaysEnabled)

		Expect(func() {
			tracker.Track("")
		}).To(Panic())
	})

	It("should panic when constructed without a sink", func() {
		Expect(func() {
			NewTracker("perf", nil, alwaysEnabled)
		}).To(Panic())
	})

	It("should panic when constructed without a predicate", func() {
		Expect(func() {
			NewTracker("perf", sink, nil)
		}).To(Panic())
	})
})
