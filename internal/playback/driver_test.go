package playback_test

import (
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ringsim/internal/notation"
	"github.com/san-kum/ringsim/internal/playback"
	"github.com/san-kum/ringsim/internal/ringing"
)

const delay = 200 * time.Millisecond

var _ = Describe("Driver", func() {
	var (
		clock   *manualClock
		sounder *recordingSounder
		steps   *stepLog
		driver  *playback.Driver
		log     *slog.Logger
	)

	newDriver := func(m *notation.Method) *playback.Driver {
		return playback.New(ringing.NewSequencer(m), sounder, delay,
			playback.WithClock(clock),
			playback.WithLogger(log),
			playback.WithObserver(steps),
		)
	}

	BeforeEach(func() {
		clock = &manualClock{}
		sounder = &recordingSounder{}
		steps = &stepLog{}
		log = slog.New(slog.NewTextHandler(GinkgoWriter, &slog.HandlerOptions{Level: slog.LevelDebug}))
		driver = newDriver(notation.ParseWith(log, "", false))
	})

	AfterEach(func() {
		driver.Stop()
	})

	Describe("Start", func() {
		It("delivers the first step immediately and arms one tick", func() {
			driver.Start()

			Expect(steps.Count()).To(Equal(1))
			Expect(steps.Steps()[0].IsPause()).To(BeTrue())
			Expect(sounder.Count()).To(BeZero())
			Expect(clock.Pending()).To(Equal(1))
			Expect(driver.Running()).To(BeTrue())
		})

		It("ticks once per delay", func() {
			driver.Start()

			clock.Advance(delay - time.Millisecond)
			Expect(steps.Count()).To(Equal(1))

			clock.Advance(time.Millisecond)
			Expect(steps.Count()).To(Equal(2))
			Expect(sounder.Bells()).To(Equal([]int{1}))
			Expect(clock.Pending()).To(Equal(1))
		})

		It("rings rounds on twelve with a gap before each handstroke", func() {
			driver.Start()
			clock.Advance(delay * 13)

			Expect(steps.Count()).To(Equal(14))
			Expect(sounder.Bells()).To(Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 1}))
			Expect(driver.Ticks()).To(BeEquivalentTo(14))
		})

		It("never passes a pause to the sounder", func() {
			driver = newDriver(notation.ParseWith(log, "X14X16X16-12", false))
			driver.Start()
			clock.Advance(delay * 500)

			pauses := 0
			for _, s := range steps.Steps() {
				if s.IsPause() {
					pauses++
				}
			}
			Expect(pauses).To(BeNumerically(">", 0))
			Expect(sounder.Count()).To(Equal(steps.Count() - pauses))
			for _, b := range sounder.Bells() {
				Expect(b).To(BeNumerically(">=", 1))
				Expect(b).To(BeNumerically("<=", 6))
			}
		})

		It("keeps a single pending tick when started twice", func() {
			driver.Start()
			clock.Advance(delay * 3)
			driver.Start()

			Expect(clock.Pending()).To(Equal(1))
			Expect(driver.Ticks()).To(BeEquivalentTo(1))

			clock.Advance(delay)
			Expect(driver.Ticks()).To(BeEquivalentTo(2))
		})
	})

	Describe("Stop", func() {
		It("cancels the pending tick", func() {
			driver.Start()
			clock.Advance(delay)
			driver.Stop()

			Expect(clock.Pending()).To(BeZero())
			Expect(driver.Running()).To(BeFalse())

			clock.Advance(delay * 10)
			Expect(steps.Count()).To(Equal(2))
			Expect(sounder.Count()).To(Equal(1))
		})

		It("is a no-op when never started", func() {
			Expect(driver.Stop).NotTo(Panic())
			Expect(driver.Running()).To(BeFalse())
		})

		It("is idempotent", func() {
			driver.Start()
			driver.Stop()
			driver.Stop()

			Expect(clock.Pending()).To(BeZero())
		})

		It("lets a later Start ring again from rounds", func() {
			driver.Start()
			clock.Advance(delay * 5)
			driver.Stop()

			sounder = &recordingSounder{}
			steps = &stepLog{}
			driver = newDriver(notation.ParseWith(log, "", false))
			driver.Start()
			clock.Advance(delay * 3)

			Expect(steps.Steps()[0].IsPause()).To(BeTrue())
			Expect(sounder.Bells()).To(Equal([]int{1, 2, 3}))
		})

		It("restarts the same driver from rounds", func() {
			driver.Start()
			clock.Advance(delay * 5)
			driver.Stop()
			before := sounder.Count()

			driver.Start()
			clock.Advance(delay * 2)

			Expect(sounder.Bells()[before:]).To(Equal([]int{1, 2}))
		})
	})

	Describe("on the wall clock", func() {
		It("delivers nothing after a stop between the second and third tick", func() {
			sounder = &recordingSounder{}
			steps = &stepLog{}
			driver = playback.New(ringing.NewSequencer(notation.ParseWith(log, "", false)), sounder, delay,
				playback.WithLogger(log),
				playback.WithObserver(steps),
			)

			driver.Start()
			Eventually(steps.Count).WithTimeout(time.Second).WithPolling(5 * time.Millisecond).Should(Equal(2))
			time.Sleep(delay / 2)
			driver.Stop()

			Expect(steps.Count()).To(Equal(2))
			Consistently(steps.Count).WithTimeout(3 * delay).Should(Equal(2))
			Expect(sounder.Bells()).To(Equal([]int{1}))
		})
	})
})
