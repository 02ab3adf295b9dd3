// This file is part of ZXCore.
//
// ZXCore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ZXCore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ZXCore.  If not, see <https://www.gnu.org/licenses/>.

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate. It is used to pace the emulation to the real frame rate of the
// machine.
//
//	lim := limiter.NewLimiter(20 * time.Millisecond)
//	for {
//		lim.Wait()
//		emulateFrame()
//	}
package limiter

import "time"

// Limiter paces events to a fixed period.
type Limiter struct {
	period time.Duration
	next   time.Time
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(period time.Duration) *Limiter {
	return &Limiter{
		period: period,
		next:   time.Now().Add(period),
	}
}

// NewFrameLimiter creates a Limiter for a machine that runs frames of
// frameLength cycles at clockRate cycles per second.
func NewFrameLimiter(clockRate int, frameLength int) *Limiter {
	return NewLimiter(time.Duration(frameLength) * time.Second / time.Duration(clockRate))
}

// Period returns the period of the Limiter.
func (lim *Limiter) Period() time.Duration {
	return lim.period
}

// Wait will block until the end of the current period. If the caller has
// fallen more than a period behind then the schedule is restarted rather
// than letting the caller run quickly to catch up.
func (lim *Limiter) Wait() {
	now := time.Now()
	if now.Sub(lim.next) > lim.period {
		lim.next = now
	}
	time.Sleep(time.Until(lim.next))
	lim.next = lim.next.Add(lim.period)
}

// HasWaited returns true if the current period has already elapsed.
func (lim *Limiter) HasWaited() bool {
	return !time.Now().Before(lim.next)
}
