// Package audio sonifies playback: each committed operation triggers a tone
// whose pitch tracks the value being touched.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/sortviz/internal/trace"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	minFreq = 120.0
	maxFreq = 1100.0
)

// Sonifier is a player observer that renders operations as short plucked
// tones through PortAudio. Output-only stream; duplex often fails on Linux
// when input and output devices differ.
type Sonifier struct {
	Stream *portaudio.Stream

	// Synthesis state, touched only by the audio callback.
	time        float64
	phase       float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	// Shared with OnOperation.
	mu         sync.Mutex
	targetFreq float64
	envelope   float64
	maxValue   float64

	Active bool
}

func NewSonifier(maxValue int) *Sonifier {
	if maxValue < 1 {
		maxValue = 1
	}
	// 0.3 second delay tail
	delayLen := int(float64(SampleRate) * 0.3)
	return &Sonifier{
		targetFreq: minFreq,
		maxValue:   float64(maxValue),
		delayLine:  [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (s *Sonifier) Start() error {
	portaudio.Initialize()

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("audio: start stream: %w", err)
	}

	s.Stream = stream
	s.Active = true
	return nil
}

func (s *Sonifier) Stop() {
	if s.Stream != nil {
		s.Stream.Stop()
		s.Stream.Close()
	}
	portaudio.Terminate()
	s.Active = false
}

// OnOperation retriggers the tone. Pitch follows the touched value; swaps
// hit harder than compares.
func (s *Sonifier) OnOperation(op trace.Op, values []int) {
	var level, value float64
	switch op.Kind {
	case trace.Compare:
		level, value = 0.5, float64(values[op.I])
	case trace.Swap:
		level, value = 1.0, float64(values[op.I])
	case trace.Write:
		level, value = 0.9, float64(op.Value)
	case trace.Settle:
		level, value = 0.7, float64(values[op.Hi])
	default:
		return
	}

	s.mu.Lock()
	s.targetFreq = minFreq + (maxFreq-minFreq)*math.Min(value/s.maxValue, 1)
	s.envelope = level
	s.mu.Unlock()
}

// Triangle wave: smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass filter
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (s *Sonifier) process(out [][]float32) {
	s.mu.Lock()
	freq := s.targetFreq
	env := s.envelope
	s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		// Slight detune between channels widens the image.
		oscL := triangle(s.phase * 0.999)
		oscR := triangle(s.phase * 1.001)
		s.phase += freq * dt

		// Envelope decays fast enough that back-to-back compares stay
		// distinct at 1x speed.
		env *= 1.0 - 8.0*dt

		sampleL := oscL * env
		sampleR := oscR * env

		cutoff := 300.0 + freq
		var outL, outR float64
		outL, s.filterState[0] = lpf(sampleL, cutoff, dt, s.filterState[0])
		outR, s.filterState[1] = lpf(sampleR, cutoff, dt, s.filterState[1])

		// Ping-pong delay, short tail
		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]
		mixL := outL + delayL*0.25 + delayR*0.1
		mixR := outR + delayR*0.25 + delayL*0.1
		s.delayLine[0][s.delayHead] = mixL * 0.5
		s.delayLine[1][s.delayHead] = mixR * 0.5
		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		s.time += dt
	}

	s.mu.Lock()
	s.envelope = env
	s.mu.Unlock()
}
