// Package clock provides the monitor's single source of wall-clock time
// (C1). Before an external sync event it still advances, from the Unix
// epoch, so callers that only need ordering (the ring store, the decision
// engine) never fail; only the calendar meaning of what's returned is
// unreliable until Synchronised() is true.
package clock

import (
	"sync"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/errcode"
	"github.com/rx178nwj/SoilMonitorRev2/types"
	"github.com/rx178nwj/SoilMonitorRev2/x/timex"
)

// Clock is an owned value, constructed once at start-up and shared by
// reference with the sampling, analysis, and link-host tasks. There is no
// package-level singleton.
type Clock struct {
	mu     sync.RWMutex
	loc    *time.Location
	synced bool
}

// New builds a Clock in UTC, unsynchronised.
func New() *Clock {
	return &Clock{loc: time.UTC}
}

// Now returns the current wall-clock timestamp with a monotonic ordering
// hint. The hint is backed by x/timex's millisecond clock rather than a
// call counter, so it stays meaningful (and comparable across Clock
// instances) even under a wall-clock jump. It never fails.
func (c *Clock) Now() types.Timestamp {
	c.mu.RLock()
	loc := c.loc
	c.mu.RUnlock()

	mono := timex.NowMs()
	t := time.Now().In(loc)
	return types.Timestamp{
		Year:   int16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
		Mono:   mono,
		Unix:   t.Unix(),
	}
}

// Synchronised reports whether an external time-sync event has occurred.
func (c *Clock) Synchronised() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.synced
}

// MarkSynchronised records that an external sync event has occurred. The
// link-host task calls this after a successful SyncTime side effect.
func (c *Clock) MarkSynchronised() {
	c.mu.Lock()
	c.synced = true
	c.mu.Unlock()
}

// SetTimezone applies a POSIX/IANA-style timezone string. DST transitions
// are honoured automatically because time.LoadLocation loads full tzdata,
// not just a fixed offset.
func (c *Clock) SetTimezone(tz string) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return errcode.Wrap(errcode.InvalidArgument, "clock.SetTimezone", err)
	}
	c.mu.Lock()
	c.loc = loc
	c.mu.Unlock()
	return nil
}

// Timezone returns the currently applied timezone name.
func (c *Clock) Timezone() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loc.String()
}
