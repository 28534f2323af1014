package anim_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/trace"
)

func intp(v int) *int { return &v }

var _ = Describe("Controller", func() {
	var (
		reg  *catalog.Registry
		rec  *trace.Recorder
		ctrl *anim.Controller
		ctx  context.Context
	)

	instant := func(opts ...anim.Option) *anim.Controller {
		base := []anim.Option{anim.WithClock(anim.InstantClock{}), anim.WithPacing(anim.Pacing{})}
		return anim.NewController(reg, rec, append(base, opts...)...)
	}

	// startAsync runs Start on its own goroutine and reports its result.
	startAsync := func(c *anim.Controller, ctx context.Context) <-chan error {
		done := make(chan error, 1)
		go func() { done <- c.Start(ctx) }()
		return done
	}

	BeforeEach(func() {
		reg = catalog.NewRegistry()
		rec = trace.NewRecorder()
		ctx = context.Background()
	})

	Describe("a fresh controller", func() {
		BeforeEach(func() {
			ctrl = instant()
		})

		It("starts idle on the first sorting algorithm", func() {
			s := ctrl.Session()
			Expect(s.State).To(Equal(anim.Idle))
			Expect(s.Category).To(Equal(anim.Sorting))
			Expect(s.Algorithm).To(Equal(anim.BubbleSort))
			Expect(s.Speed).To(Equal(anim.DefaultSpeed))
			Expect(s.ID).NotTo(BeEmpty())
		})

		It("rejects unknown algorithms", func() {
			err := ctrl.SelectAlgorithm("bogo_sort")
			Expect(err).To(MatchError(anim.ErrUnsupported))
			Expect(ctrl.Session().Algorithm).To(Equal(anim.BubbleSort))
		})

		It("switches category to its first algorithm and keeps the array", func() {
			Expect(ctrl.LoadArray([]int{4, 2})).To(Succeed())
			Expect(ctrl.SelectCategory(anim.Searching)).To(Succeed())
			s := ctrl.Session()
			Expect(s.Algorithm).To(Equal(anim.LinearSearch))
			Expect(s.Snapshot).To(Equal([]int{4, 2}))
		})

		It("validates speed levels", func() {
			Expect(ctrl.SetSpeed(0)).To(MatchError(anim.ErrValidation))
			Expect(ctrl.SetSpeed(11)).To(MatchError(anim.ErrValidation))
			Expect(ctrl.SetSpeed(anim.MaxSpeed)).To(Succeed())
			Expect(ctrl.Session().Speed).To(Equal(anim.MaxSpeed))
		})

		It("rejects values beyond the value bound and keeps the array", func() {
			Expect(ctrl.LoadArray([]int{4, 2})).To(Succeed())
			err := ctrl.LoadArray([]int{1, anim.MaxValue + 1})
			Expect(err).To(MatchError(anim.ErrValidation))
			var ve *anim.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Field).To(Equal("values"))
			Expect(ctrl.Session().Snapshot).To(Equal([]int{4, 2}))
			Expect(ctrl.LoadArray([]int{-anim.MaxValue, anim.MaxValue})).To(Succeed())
		})

		It("cannot generate without a generator", func() {
			Expect(ctrl.GenerateArray(10)).To(MatchError(anim.ErrNoGenerator))
		})

		It("treats step forward as unsupported", func() {
			Expect(ctrl.StepForward()).To(MatchError(anim.ErrStepUnsupported))
			Expect(ctrl.State()).To(Equal(anim.Idle))
		})

		It("refuses to pause when nothing runs", func() {
			Expect(ctrl.Pause()).To(MatchError(anim.ErrInvalidTransition))
		})

		It("remembers the code sample language", func() {
			ctrl.SetLanguage("python")
			Expect(ctrl.Language()).To(Equal("python"))
		})
	})

	Describe("a complete run", func() {
		BeforeEach(func() {
			ctrl = instant()
			Expect(ctrl.LoadArray([]int{5, 3, 8, 1})).To(Succeed())
		})

		It("sorts and counts", func() {
			Expect(ctrl.Start(ctx)).To(Succeed())

			s := ctrl.Session()
			Expect(s.State).To(Equal(anim.Completed))
			Expect(s.Snapshot).To(Equal([]int{1, 3, 5, 8}))
			Expect(s.Comparisons).To(Equal(6))
			Expect(s.Swaps).To(Equal(4))
			Expect(s.CurrentStep).To(Equal(len(rec.Entries())))
			Expect(rec.States()).To(Equal([]anim.State{anim.Idle, anim.Running, anim.Completed}))
		})

		It("plays the same run through Play", func() {
			Expect(ctrl.Play(ctx)).To(Succeed())
			Expect(ctrl.Session().Snapshot).To(Equal([]int{1, 3, 5, 8}))
		})

		It("must be reset before starting again", func() {
			Expect(ctrl.Start(ctx)).To(Succeed())
			Expect(ctrl.Start(ctx)).To(MatchError(anim.ErrInvalidTransition))

			Expect(ctrl.Reset()).To(Succeed())
			s := ctrl.Session()
			Expect(s.State).To(Equal(anim.Idle))
			Expect(s.Counters).To(Equal(anim.Counters{}))
			Expect(s.Snapshot).To(Equal([]int{5, 3, 8, 1}))

			Expect(ctrl.Start(ctx)).To(Succeed())
			Expect(ctrl.Session().Comparisons).To(Equal(6))
		})

		It("falls back when the registry lacks a sequence", func() {
			reg = catalog.NewRegistry(catalog.Baseline())
			ctrl = instant()
			Expect(ctrl.LoadArray([]int{9, 4, 7})).To(Succeed())
			Expect(ctrl.SelectAlgorithm(anim.HeapSort)).To(Succeed())

			res, err := ctrl.Capability()
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Fallback).To(BeTrue())
			Expect(res.Runs).To(Equal(anim.BubbleSort))

			Expect(ctrl.Start(ctx)).To(Succeed())
			Expect(ctrl.Session().Snapshot).To(Equal([]int{4, 7, 9}))
			Expect(ctrl.Session().Algorithm).To(Equal(anim.HeapSort))
		})
	})

	Describe("searching", func() {
		BeforeEach(func() {
			ctrl = instant()
			Expect(ctrl.SelectCategory(anim.Searching)).To(Succeed())
			Expect(ctrl.SelectAlgorithm(anim.BinarySearch)).To(Succeed())
			Expect(ctrl.LoadArray([]int{1, 3, 5, 8})).To(Succeed())
		})

		It("requires a target and runs nothing without one", func() {
			rec.Reset()
			err := ctrl.Start(ctx)
			var ve *anim.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Field).To(Equal("search target"))
			Expect(rec.Entries()).To(BeEmpty())
			Expect(ctrl.State()).To(Equal(anim.Idle))
		})

		It("finds a present key", func() {
			ctrl.SetSearchTarget(intp(5))
			Expect(ctrl.Start(ctx)).To(Succeed())
			idx, found, decided := rec.Outcome()
			Expect(decided).To(BeTrue())
			Expect(found).To(BeTrue())
			Expect(idx).To(Equal(2))
		})

		It("accepts zero as a target", func() {
			ctrl.SetSearchTarget(intp(0))
			Expect(ctrl.Start(ctx)).To(Succeed())
			_, found, decided := rec.Outcome()
			Expect(decided).To(BeTrue())
			Expect(found).To(BeFalse())
		})
	})

	Describe("a failing sequence", func() {
		It("reports a RunError and returns to idle", func() {
			ctrl = instant()
			Expect(ctrl.SelectAlgorithm(anim.RadixSort)).To(Succeed())
			Expect(ctrl.LoadArray([]int{3, -2, 1})).To(Succeed())

			err := ctrl.Start(ctx)
			var re *anim.RunError
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.Algorithm).To(Equal(anim.RadixSort))
			Expect(re.SessionID).To(Equal(ctrl.Session().ID))
			Expect(ctrl.State()).To(Equal(anim.Idle))
			Expect(rec.Errors()).To(HaveLen(1))
		})
	})

	Describe("interruption", func() {
		var (
			clock *gateClock
			stop  chan struct{}
		)

		gated := func(opts ...anim.Option) *anim.Controller {
			base := []anim.Option{anim.WithClock(clock)}
			c := anim.NewController(reg, rec, append(base, opts...)...)
			Expect(c.LoadArray([]int{5, 3, 8, 1})).To(Succeed())
			rec.Reset()
			return c
		}

		// waitFirstStep blocks until the loop has forwarded one event and is
		// suspended on the clock.
		waitFirstStep := func() {
			Eventually(func() int { return len(rec.Entries()) }).Should(Equal(1))
			Consistently(func() int { return len(rec.Entries()) }, 20*time.Millisecond).Should(Equal(1))
		}

		BeforeEach(func() {
			clock = newGateClock()
			stop = make(chan struct{})
		})

		AfterEach(func() {
			close(stop)
		})

		It("pauses on request and rejects a second start while running", func() {
			ctrl = gated()
			done := startAsync(ctrl, ctx)
			waitFirstStep()

			Expect(ctrl.Start(ctx)).To(MatchError(anim.ErrAlreadyRunning))
			Expect(ctrl.Pause()).To(Succeed())
			Eventually(done).Should(Receive(BeNil()))

			s := ctrl.Session()
			Expect(s.State).To(Equal(anim.Paused))
			Expect(s.Comparisons).To(Equal(1))
			Expect(ctrl.Pause()).To(MatchError(anim.ErrInvalidTransition))
		})

		It("restarts the sequence on resume and counts the replay", func() {
			ctrl = gated()
			done := startAsync(ctrl, ctx)
			waitFirstStep()
			Expect(ctrl.Pause()).To(Succeed())
			Eventually(done).Should(Receive(BeNil()))

			clock.open(stop)
			Expect(ctrl.Start(ctx)).To(Succeed())

			s := ctrl.Session()
			Expect(s.State).To(Equal(anim.Completed))
			Expect(s.Snapshot).To(Equal([]int{1, 3, 5, 8}))
			Expect(s.Comparisons).To(Equal(7))
			Expect(s.Swaps).To(Equal(4))
		})

		It("continues the suspended sequence when configured to", func() {
			ctrl = gated(anim.WithResumeMode(anim.ResumeContinue))
			done := startAsync(ctrl, ctx)
			waitFirstStep()
			Expect(ctrl.Pause()).To(Succeed())
			Eventually(done).Should(Receive(BeNil()))

			clock.open(stop)
			Expect(ctrl.Toggle(ctx)).To(Succeed())

			s := ctrl.Session()
			Expect(s.State).To(Equal(anim.Completed))
			Expect(s.Comparisons).To(Equal(6))
			Expect(s.Swaps).To(Equal(4))
			Expect(s.CurrentStep).To(Equal(len(rec.Entries())))
		})

		It("reset mid-run restores the original array", func() {
			ctrl = gated()
			done := startAsync(ctrl, ctx)
			waitFirstStep()

			Expect(ctrl.Reset()).To(Succeed())
			Eventually(done).Should(Receive(BeNil()))

			s := ctrl.Session()
			Expect(s.State).To(Equal(anim.Idle))
			Expect(s.Counters).To(Equal(anim.Counters{}))
			Expect(s.Snapshot).To(Equal([]int{5, 3, 8, 1}))
		})

		It("treats a cancelled context as a pause", func() {
			ctrl = gated()
			cctx, cancel := context.WithCancel(ctx)
			done := startAsync(ctrl, cctx)
			waitFirstStep()

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
			Expect(ctrl.State()).To(Equal(anim.Paused))
		})

		It("applies a new speed while running", func() {
			ctrl = gated()
			done := startAsync(ctrl, ctx)
			waitFirstStep()

			Expect(ctrl.SetSpeed(2)).To(Succeed())
			Expect(ctrl.Session().Speed).To(Equal(2))
			Expect(ctrl.Pause()).To(Succeed())
			Eventually(done).Should(Receive(BeNil()))
		})
	})
})

var _ = Describe("Pacing", func() {
	DescribeTable("Delay",
		func(level int, pace anim.Pace, want time.Duration) {
			Expect(anim.DefaultPacing().Delay(level, pace)).To(Equal(want))
		},
		Entry("default speed", 6, anim.PaceFull, 300*time.Millisecond),
		Entry("half paced", 6, anim.PaceHalf, 150*time.Millisecond),
		Entry("slowest", 1, anim.PaceFull, 550*time.Millisecond),
		Entry("fastest", 10, anim.PaceFull, 100*time.Millisecond),
		Entry("unpaced", 6, anim.PaceNone, time.Duration(0)),
	)

	It("floors at zero", func() {
		p := anim.Pacing{Base: 100 * time.Millisecond, Step: 50 * time.Millisecond}
		Expect(p.Delay(5, anim.PaceFull)).To(BeZero())
	})
})
