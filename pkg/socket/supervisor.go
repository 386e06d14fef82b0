package socket

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jpillora/backoff"
	"go.uber.org/zap"

	"github.com/chatkc/gokc/pkg/protocol"
	"github.com/chatkc/gokc/pkg/util"
)

const (
	// DefaultPort is the fixed server port for secure websocket upgrades.
	DefaultPort = 2002

	// DefaultQueueCapacity bounds the outbound frame buffer.
	DefaultQueueCapacity = 100

	// DefaultRetryInterval is the wait between failed handshake attempts.
	DefaultRetryInterval = time.Second

	defaultHandshakeTimeout = 10 * time.Second
	eventBufferLength       = 16
)

// netConn is the thin slice of a websocket connection the supervisor drives.
// Tests substitute scripted fakes for it.
type netConn interface {
	ReadMessage() (messageType int, payload []byte, err error)
	WriteMessage(messageType int, payload []byte) error
	Close() error
}

type dialFunc func(ctx context.Context, url string) (netConn, error)

// Options tune the supervisor. The retry wait and queue capacity mirror the
// server's expectations by default; both are knobs, not baked-in literals.
// RetryMin == RetryMax yields a fixed retry interval. Setting RetryMax above
// RetryMin with a Factor > 1 opts in to exponential backoff.
type Options struct {
	Port             int
	QueueCapacity    int
	RetryMin         time.Duration
	RetryMax         time.Duration
	RetryFactor      float64
	HandshakeTimeout time.Duration

	Logger *zap.Logger
}

// Supervisor owns the websocket lifecycle: dialing, the post-connect hello,
// multiplexing inbound frames against the outbound queue, and reconnecting on
// any failure. It is the only component that ever touches the raw socket.
type Supervisor struct {
	auth   protocol.Auth
	server string
	opts   Options

	dial   dialFunc
	events chan Event
	log    *zap.Logger
	ids    *util.ShortIDGenerator
}

func NewSupervisor(auth protocol.Auth, server string, opts Options) *Supervisor {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = DefaultQueueCapacity
	}
	if opts.RetryMin <= 0 {
		opts.RetryMin = DefaultRetryInterval
	}
	if opts.RetryMax < opts.RetryMin {
		opts.RetryMax = opts.RetryMin
	}
	if opts.RetryFactor <= 0 {
		opts.RetryFactor = 1
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = defaultHandshakeTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.Must(zap.NewDevelopment())
	}

	return &Supervisor{
		auth:   auth,
		server: server,
		opts:   opts,
		dial:   gorillaDialer(opts.HandshakeTimeout),
		events: make(chan Event, eventBufferLength),
		log:    logger.With(zap.String("component", "socket"), zap.String("server", server)),
		ids:    util.NewShortIDGenerator(time.Now().UnixMicro()),
	}
}

// Events returns the infinite event sequence. The supervisor's run loop is
// the producer; the sequence spans reconnects transparently.
func (s *Supervisor) Events() <-chan Event {
	return s.events
}

func (s *Supervisor) url() string {
	return fmt.Sprintf("wss://%s:%d/", s.server, s.opts.Port)
}

// Run drives the connection state machine until ctx is canceled. Retries
// continue indefinitely; every failure surfaces as a single Disconnected
// event before the next attempt.
func (s *Supervisor) Run(ctx context.Context) {
	retry := &backoff.Backoff{
		Min:    s.opts.RetryMin,
		Max:    s.opts.RetryMax,
		Factor: s.opts.RetryFactor,
	}

	for {
		if ctx.Err() != nil {
			return
		}

		wire, err := s.dial(ctx, s.url())
		if err != nil {
			s.log.Warn("Handshake failed", zap.Error(err))
			if !s.emit(ctx, Disconnected{}) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(retry.Duration()):
			}
			continue
		}

		retry.Reset()
		s.runConnection(ctx, wire)
	}
}

// runConnection services one live socket. Exactly one Disconnected event is
// emitted per connection, and the handle is closed before it so a stale Send
// can never race a not-yet-dead connection.
func (s *Supervisor) runConnection(ctx context.Context, wire netConn) {
	log := s.log.With(zap.String("connId", s.ids.Next(6)))
	defer wire.Close()

	handle := newConn(s.opts.QueueCapacity)
	defer handle.close()

	// The hello frame must hit the wire before any application traffic, so it
	// is written directly rather than routed through the queue.
	hello, err := protocol.Encode(protocol.NewHello(), s.auth)
	if err != nil {
		log.Error("Failed to encode hello frame", zap.Error(err))
		s.emit(ctx, Disconnected{})
		return
	}
	if err := wire.WriteMessage(websocket.TextMessage, hello); err != nil {
		log.Warn("Failed to write hello frame", zap.Error(err))
		s.emit(ctx, Disconnected{})
		return
	}

	// Gorilla reads block, so a pump goroutine turns them into channel sends
	// the select below can race fairly against the outbound queue. One frame
	// is serviced per iteration; bursts are handled by re-entering the loop.
	inbound := make(chan readResult)
	done := make(chan struct{})
	defer close(done)
	go readPump(wire, inbound, done)

	log.Info("Connected")
	if !s.emit(ctx, Connected{Conn: handle}) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case rr := <-inbound:
			if rr.err != nil {
				log.Info("Socket read failed", zap.Error(rr.err))
				handle.close()
				s.emit(ctx, Disconnected{})
				return
			}
			if rr.messageType != websocket.TextMessage {
				continue
			}
			frame, err := protocol.Decode(rr.payload)
			if err != nil {
				// A hostile or buggy server must not take the client down;
				// the frame is dropped and the connection stays up.
				log.Warn("Dropping undecodable frame", zap.Error(err))
				continue
			}
			if !s.emit(ctx, Received{Frame: frame}) {
				return
			}

		case out := <-handle.outbound:
			payload, err := protocol.Encode(out, s.auth)
			if err != nil {
				log.Error("Failed to encode outbound frame", zap.Error(err))
				continue
			}
			if err := wire.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Info("Socket write failed", zap.Error(err))
				handle.close()
				s.emit(ctx, Disconnected{})
				return
			}
		}
	}
}

// emit delivers an event, reporting false when ctx ends first.
func (s *Supervisor) emit(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

type readResult struct {
	messageType int
	payload     []byte
	err         error
}

func readPump(wire netConn, out chan<- readResult, done <-chan struct{}) {
	for {
		messageType, payload, err := wire.ReadMessage()
		select {
		case out <- readResult{messageType: messageType, payload: payload, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func gorillaDialer(handshakeTimeout time.Duration) dialFunc {
	return func(ctx context.Context, url string) (netConn, error) {
		dialer := websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		}
		conn, _, err := dialer.DialContext(ctx, url, nil)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}
