package coopsched

import (
	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// instrumentation bundles a scheduler's logger with the rate limiter that
// gates trace emission from ISR-reachable paths (Notify, NotifyAll). Every
// method is nil-receiver safe: a Scheduler built without WithLogger carries
// a zero-value instrumentation, and every method becomes a no-op.
type instrumentation struct {
	log    *logiface.Logger[*stumpy.Event]
	notify *catrate.Limiter
}

func newInstrumentation(c *config) instrumentation {
	var lim *catrate.Limiter
	if len(c.traceRates) != 0 {
		lim = catrate.NewLimiter(c.traceRates)
	}
	return instrumentation{log: c.logger, notify: lim}
}

// debugf-equivalent: direct structured debug log, for paths that run on the
// dispatcher's own goroutine (never from Notify/NotifyAll).
func (x instrumentation) stateChange(slot int, name string, from, to ThreadState) {
	x.log.Debug().
		Int(`slot`, slot).
		Str(`thread`, name).
		Str(`from`, from.String()).
		Str(`to`, to.String()).
		Log(`thread state change`)
}

func (x instrumentation) dispatch(slot int, name string) {
	x.log.Trace().
		Int(`slot`, slot).
		Str(`thread`, name).
		Log(`dispatching thread`)
}

func (x instrumentation) idleEnter(period Tick) {
	x.log.Debug().
		Int64(`period_ms`, int64(period)).
		Log(`scheduler idle`)
}

// notifyEvent logs a Notify/NotifyAll call. This path may be reached from a
// goroutine standing in for an interrupt handler, so emission is gated by
// the rate limiter configured via WithNotifyTraceRates: with no limiter
// configured, nothing is ever logged from here, matching the C library's
// rule that debug logging is unsafe unless rerouted away from such
// contexts.
func (x instrumentation) notifyEvent(semID int, all bool, woken int) {
	if x.notify == nil {
		return
	}
	if _, ok := x.notify.Allow(semID); !ok {
		return
	}
	x.log.Trace().
		Int(`sem_id`, semID).
		Bool(`all`, all).
		Int(`woken`, woken).
		Log(`notify`)
}
