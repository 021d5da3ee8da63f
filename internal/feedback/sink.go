package feedback

import (
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Sink receives cues. Play must not block.
type Sink interface {
	Play(Cue)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Cue)

// Play calls f(c).
func (f SinkFunc) Play(c Cue) { f(c) }

// Discard drops every cue.
var Discard Sink = SinkFunc(func(Cue) {})

// LogSink writes each cue as a debug line.
type LogSink struct {
	Logger *log.Logger
}

// Play logs the cue.
func (s LogSink) Play(c Cue) {
	if s.Logger == nil {
		return
	}
	s.Logger.Debug("feedback", "cue", c.String())
}

// BellSink rings the terminal bell on merges and game over.
type BellSink struct {
	W io.Writer
}

// Play writes a BEL byte for cues worth an audible signal.
func (s BellSink) Play(c Cue) {
	if s.W == nil {
		return
	}
	switch c {
	case Merge, GameOver, Target:
		_, _ = s.W.Write([]byte{'\a'})
	}
}

// Multi fans a cue out to several sinks.
type Multi []Sink

// Play forwards c to every non-nil sink.
func (m Multi) Play(c Cue) {
	for _, s := range m {
		if s != nil {
			s.Play(c)
		}
	}
}

// Toggle gates a sink behind an enable switch. The zero value is disabled.
type Toggle struct {
	sink    Sink
	enabled atomic.Bool
}

// NewToggle wraps sink, initially enabled.
func NewToggle(sink Sink) *Toggle {
	t := &Toggle{sink: sink}
	t.enabled.Store(true)
	return t
}

// SetEnabled turns forwarding on or off.
func (t *Toggle) SetEnabled(on bool) { t.enabled.Store(on) }

// Enabled reports whether cues are forwarded.
func (t *Toggle) Enabled() bool { return t.enabled.Load() }

// Play forwards c when enabled.
func (t *Toggle) Play(c Cue) {
	if t.sink == nil || !t.enabled.Load() {
		return
	}
	t.sink.Play(c)
}

// PlayAll plays every cue on sink in order.
func PlayAll(sink Sink, cues []Cue) {
	if sink == nil {
		return
	}
	for _, c := range cues {
		sink.Play(c)
	}
}
