// Command cooprun is a small demonstration driver for coopsched: it admits
// a handful of cooperative tasks — a round-robin printer group, a
// timed-idle group, and a wait/notify pair — and runs them to completion
// under one scheduler.
package main

import (
	"fmt"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/joeycumines/go-coopsched"
)

func main() {
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithTimeField(``)),
	)

	sched := coopsched.New(
		coopsched.WithMaxThreads(8),
		coopsched.WithLogger(logger),
	)

	runPrinters(sched)
	runIdlers(sched, logger)
	runWaitNotify(sched, logger)

	sched.Service()
}

func runPrinters(sched *coopsched.Scheduler) {
	for i, name := range []string{`t1`, `t2`, `t3`} {
		n := i + 1
		_ = sched.Admit(func(tc *coopsched.TaskContext) {
			for c := 1; c <= n; c++ {
				fmt.Printf("%s:%d\n", tc.Name(), c)
				tc.Yield()
			}
		}, name, 0, nil)
	}
}

func runIdlers(sched *coopsched.Scheduler, logger *logiface.Logger[*stumpy.Event]) {
	for _, period := range []coopsched.Tick{100, 200, 300} {
		period := period
		_ = sched.Admit(func(tc *coopsched.TaskContext) {
			for i := 0; i < 3; i++ {
				tc.Idle(period)
				logger.Info().
					Str(`task`, tc.Name()).
					Int(`iteration`, i).
					Log(`idle period elapsed`)
			}
		}, fmt.Sprintf(`idler-%d`, period), 0, nil)
	}
}

func runWaitNotify(sched *coopsched.Scheduler, logger *logiface.Logger[*stumpy.Event]) {
	const sem = 1

	_ = sched.Admit(func(tc *coopsched.TaskContext) {
		if err := tc.Wait(sem, 500); err != nil {
			logger.Err().Err(err).Log(`waiter gave up`)
			return
		}
		logger.Info().Log(`waiter woke on notify`)
	}, `waiter`, 0, nil)

	_ = sched.Admit(func(tc *coopsched.TaskContext) {
		tc.Idle(50)
		sched.Notify(sem)
	}, `notifier`, 0, nil)
}
