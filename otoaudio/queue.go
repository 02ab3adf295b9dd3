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

package otoaudio

import (
	"encoding/binary"
	"sync"
)

// Queue is a bounded FIFO of samples. It implements io.Reader, producing
// little-endian signed 16bit samples, so that it can be used as the source
// for an oto player.
//
// The Queue is safe for concurrent use. When the queue is empty the reader
// is given silence rather than blocking.
type Queue struct {
	crit    sync.Mutex
	samples []int16
	head    int
	count   int

	// the number of samples dropped because the queue was full and the
	// number of silent samples produced because the queue was empty
	overrun  int
	underrun int
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue(size int) *Queue {
	return &Queue{
		samples: make([]int16, max(size, 1)),
	}
}

// Push adds samples to the end of the queue. If the queue is full the oldest
// samples are discarded.
func (q *Queue) Push(samples []int16) {
	q.crit.Lock()
	defer q.crit.Unlock()

	for _, s := range samples {
		if q.count == len(q.samples) {
			q.head = (q.head + 1) % len(q.samples)
			q.count--
			q.overrun++
		}
		q.samples[(q.head+q.count)%len(q.samples)] = s
		q.count++
	}
}

// Len returns the number of samples in the queue.
func (q *Queue) Len() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.count
}

// Stats returns the number of overrun and underrun samples since the queue
// was created.
func (q *Queue) Stats() (overrun int, underrun int) {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.overrun, q.underrun
}

// Read implements the io.Reader interface.
func (q *Queue) Read(p []byte) (int, error) {
	q.crit.Lock()
	defer q.crit.Unlock()

	n := len(p) / 2
	for i := 0; i < n; i++ {
		var s int16
		if q.count > 0 {
			s = q.samples[q.head]
			q.head = (q.head + 1) % len(q.samples)
			q.count--
		} else {
			q.underrun++
		}
		binary.LittleEndian.PutUint16(p[i*2:], uint16(s))
	}

	return n * 2, nil
}
