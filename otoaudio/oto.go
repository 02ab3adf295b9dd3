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

//go:build !headless

package otoaudio

import (
	"github.com/ebitengine/oto/v3"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/audio"
	"github.com/zxcore/zxcore/logger"
)

// the number of samples in the queue. a little over a tenth of a second at
// the usual sample rates
const queueSize = 8192

// Player implements the audio.Output interface.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	queue  *Queue
	clock  int
	rate   int
}

// New is the preferred method of initialisation for the Player type. The
// clock argument is the rate at which the machine produces frames and the
// rate argument is the sample rate requested from the sound device.
func New(clock int, rate int) (*Player, error) {
	if clock <= 0 || rate <= 0 {
		return nil, curated.Errorf("otoaudio: %v", "bad parameters for audio device")
	}

	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf("otoaudio: %v", err)
	}
	<-ready

	p := &Player{
		ctx:   ctx,
		queue: NewQueue(queueSize),
		clock: clock,
		rate:  rate,
	}
	p.player = ctx.NewPlayer(p.queue)
	p.player.Play()

	logger.Logf(logger.Allow, "otoaudio", "playing at %dHz", rate)

	return p, nil
}

// SetAudio implements the audio.Output interface.
func (p *Player) SetAudio(frame []int16) error {
	p.queue.Push(audio.Resample(frame, p.clock, p.rate))
	return nil
}

// EndMixing implements the audio.Output interface.
func (p *Player) EndMixing() error {
	overrun, underrun := p.queue.Stats()
	logger.Logf(logger.Allow, "otoaudio", "overrun %d samples, underrun %d samples", overrun, underrun)

	p.player.Pause()
	if err := p.player.Err(); err != nil {
		return curated.Errorf("otoaudio: %v", err)
	}
	return nil
}
