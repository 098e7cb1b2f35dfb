// Package pipeline drives frames from a subscription into a
// negotiated capture device: rate check, repack, write.
package pipeline

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/prothen/ros2webrtc/pkg/config"
	"github.com/prothen/ros2webrtc/pkg/logger"
	"github.com/prothen/ros2webrtc/pkg/source"
	"github.com/prothen/ros2webrtc/pkg/yuyv"
)

type State uint8

const (
	Uninitialized State = iota
	AwaitingFirstFrame
	Streaming
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case AwaitingFirstFrame:
		return "awaiting-first-frame"
	case Streaming:
		return "streaming"
	}
	return "unknown"
}

// Sink accepts packed frames; implemented by *v4l2.Device.
type Sink interface {
	Write([]byte) error
}

// Pipeline converts delivered frames and writes them to the sink.
// Frames must be delivered serially; the pipeline keeps one
// conversion plan and one output buffer for its whole lifetime.
type Pipeline struct {
	state   State
	limiter *Limiter
	plan    *yuyv.Plan
	conv    *yuyv.Converter
	sink    Sink
	log     *logger.Logger
	m       metrics
	stamp   time.Time
	now     func() time.Time
}

func New(sink Sink, conf config.Stream, log *logger.Logger) *Pipeline {
	session := uuid.Must(uuid.NewV4()).String()[:8]
	l := log.Extend(log.With().Str("stream", conf.Name).Str("session", session))
	return &Pipeline{
		limiter: NewLimiter(conf.Frequency),
		sink:    sink,
		log:     l,
		m:       newMetrics(conf.Name),
		now:     time.Now,
	}
}

// Start arms the pipeline once device negotiation and the frame
// subscription are in place.
func (p *Pipeline) Start() {
	p.state = AwaitingFirstFrame
	p.log.Info().Msg("waiting for the first frame")
}

func (p *Pipeline) State() State { return p.state }

// Plan exposes the conversion plan built from the first frame,
// nil before that.
func (p *Pipeline) Plan() *yuyv.Plan { return p.plan }

// OnFrame is the single entry point for delivered frames and
// dispatches on the pipeline state.
func (p *Pipeline) OnFrame(f source.Frame) error {
	switch p.state {
	case AwaitingFirstFrame:
		return p.initialize(f)
	case Streaming:
		return p.stream(f)
	}
	return fmt.Errorf("pipeline is %v, frame rejected", p.state)
}

// initialize fixes the stream geometry from the first delivered
// frame and builds the conversion plan and buffer. The first frame
// itself is not written.
func (p *Pipeline) initialize(f source.Frame) error {
	if f.Width < 2 || f.Width%2 != 0 || f.Height < 1 {
		return fmt.Errorf("unusable first frame geometry %dx%d", f.Width, f.Height)
	}
	p.plan = yuyv.NewPlan(f.Width, f.Height)
	p.conv = yuyv.NewConverter(p.plan)
	p.state = Streaming
	p.stamp = p.now()
	p.log.Info().
		Int("width", f.Width).
		Int("height", f.Height).
		Int("buffer", p.plan.BufferSize()).
		Msg("conversion plan built from first frame")
	return nil
}

func (p *Pipeline) stream(f source.Frame) error {
	p.m.received.Inc()
	if p.limiter.ShouldDrop() {
		p.m.dropped.Inc()
		return nil
	}
	buf, err := p.conv.Convert(f)
	if err != nil {
		return err
	}
	if err := p.sink.Write(buf); err != nil {
		return err
	}
	p.m.written.Inc()
	p.m.bytes.Add(float64(len(buf)))

	now := p.now()
	if d := now.Sub(p.stamp); d > 0 {
		fps := float64(time.Second) / float64(d)
		p.m.fps.Set(fps)
		p.log.Debug().Float64("fps", fps).Msg("frame written")
	}
	p.stamp = now
	return nil
}
