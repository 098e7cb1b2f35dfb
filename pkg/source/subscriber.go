package source

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/prothen/ros2webrtc/pkg/config"
	"github.com/prothen/ros2webrtc/pkg/logger"
)

const maxMessageSize = 64 * 1024 * 1024

// Handler consumes one decoded frame. Handlers are invoked serially,
// at most one frame is in flight at a time. A returned error stops
// the subscription.
type Handler func(Frame) error

// Subscriber is a push-style frame subscription over a websocket.
// Between the read pump and the handler sits a depth-1 mailbox: when
// the handler cannot keep up, the subscriber itself drops the stale
// frame and keeps only the latest one.
type Subscriber struct {
	conf    config.Source
	onFrame Handler
	log     *logger.Logger

	conn    *websocket.Conn
	mailbox chan Frame
	done    chan struct{}
	once    sync.Once
}

func NewSubscriber(conf config.Source, onFrame Handler, log *logger.Logger) *Subscriber {
	l := log.Extend(log.With().Str("source", conf.Address).Str("topic", conf.Topic))
	return &Subscriber{
		conf:    conf,
		onFrame: onFrame,
		log:     l,
		mailbox: make(chan Frame, 1),
		done:    make(chan struct{}),
	}
}

// Connect dials the publisher and registers the topic subscription.
func (s *Subscriber) Connect(ctx context.Context) error {
	u, err := url.Parse(s.conf.Address)
	if err != nil {
		return fmt.Errorf("source address %q: %w", s.conf.Address, err)
	}
	q := u.Query()
	q.Set("topic", s.conf.Topic)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("subscribe to %v: %w", u, err)
	}
	conn.SetReadLimit(maxMessageSize)
	s.conn = conn
	s.log.Info().Msg("subscribed to frame publisher")
	return nil
}

// Run starts the read and dispatch pumps. Connect must have
// succeeded before.
func (s *Subscriber) Run() {
	go s.reader()
	go s.dispatcher()
}

// Done closes when the subscription ended for any reason.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

func (s *Subscriber) Shutdown(context.Context) error {
	s.stop()
	return nil
}

func (s *Subscriber) String() string {
	return fmt.Sprintf("source::%s%s", s.conf.Address, s.conf.Topic)
}

func (s *Subscriber) stop() {
	s.once.Do(func() {
		close(s.done)
		if s.conn != nil {
			_ = s.conn.Close()
		}
	})
}

// reader pumps messages from the websocket into the mailbox,
// overwriting an unconsumed frame with the newer one.
func (s *Subscriber) reader() {
	defer s.stop()
	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.log.Error().Err(err).Msg("publisher connection lost")
				} else {
					s.log.Info().Msg("publisher closed the subscription")
				}
			}
			return
		}
		frame, err := DecodeFrame(msg)
		if err != nil {
			s.log.Warn().Err(err).Msg("dropping undecodable frame message")
			continue
		}
		select {
		case s.mailbox <- frame:
		default:
			select {
			case <-s.mailbox:
			default:
			}
			select {
			case s.mailbox <- frame:
			default:
			}
		}
	}
}

// dispatcher invokes the handler serially with the latest frame.
func (s *Subscriber) dispatcher() {
	for {
		select {
		case <-s.done:
			return
		case frame := <-s.mailbox:
			if err := s.onFrame(frame); err != nil {
				s.log.Error().Err(err).Msg("frame handler failed, stopping stream")
				s.stop()
				return
			}
		}
	}
}
