package bitmax

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"bitmax/internal/auth"
	"bitmax/internal/telemetry"
	"bitmax/internal/ws"
	"bitmax/pkg/core"
)

// StreamPath is the websocket path under the API prefix. It is also the
// path signed by authenticated handshakes.
const StreamPath = "/stream"

// Receiver is the inbound half of a session.
type Receiver interface {
	// Receive returns the next item in arrival order. Decode and
	// unexpected-frame errors are items; the stream goes on after them.
	// Once the stream has ended it returns core.ErrStreamClosed.
	Receive(ctx context.Context) (Message, error)
}

// Sender is the outbound half of a session. Sends are serialized in call order.
type Sender interface {
	Send(ctx context.Context, msg Outbound) error
	Subscribe(ctx context.Context, topic Topic, id string) error
	Unsubscribe(ctx context.Context, topic Topic, id string) error
	Request(ctx context.Context, action Action, id string, account *core.AccountType, args any) error
	Pong(ctx context.Context) error
}

var (
	_ Receiver = (*Session)(nil)
	_ Sender   = (*Session)(nil)
)

// Session is one streaming connection. It never reconnects and never
// replays subscriptions; callers build that on top of the returned errors.
type Session struct {
	conn     *ws.Conn
	logger   zerolog.Logger
	metrics  *telemetry.Metrics
	autoPong bool
}

// SessionOption configures a session.
type SessionOption func(*Session)

// WithAutoPong makes the session answer every ping itself. The ping is still
// returned by Receive.
func WithAutoPong() SessionOption {
	return func(s *Session) {
		s.autoPong = true
	}
}

// Connect opens a streaming session. An authenticated session needs a
// credential with a known account group.
func (c *Client) Connect(ctx context.Context, authenticated bool, opts ...SessionOption) (*Session, error) {
	header := http.Header{}
	header.Set("User-Agent", c.config.UserAgent)

	path := APIPrefix + StreamPath
	if authenticated {
		if c.keys == nil {
			return nil, core.NewAuthError(core.ErrNoCredentials)
		}
		key := c.keys.Current()
		group, ok := key.AccountGroup()
		if !ok {
			return nil, core.NewAuthError(core.ErrNoAccountGroup)
		}
		path = "/" + strconv.FormatUint(uint64(group), 10) + path
		for k, v := range auth.Headers(key.PublicKey, key.Secret(), StreamPath, c.now().UnixMilli()) {
			header.Set(k, v)
		}
	}

	endpoint, err := url.JoinPath(c.config.StreamURL(), path)
	if err != nil {
		return nil, core.NewConnectError(c.config.StreamURL(), err)
	}

	logger := c.logger.With().Str("component", "stream").Logger()
	conn, err := ws.Dial(ctx, ws.Config{
		URL:              endpoint,
		Header:           header,
		HandshakeTimeout: c.config.Stream.HandshakeTimeout,
		BufferSize:       c.config.Stream.BufferSize,
	}, logger)
	if err != nil {
		return nil, core.NewConnectError(endpoint, err)
	}

	s := &Session{
		conn:     conn,
		logger:   logger,
		metrics:  c.metrics,
		autoPong: c.config.Stream.AutoPong,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Receive implements Receiver.
func (s *Session) Receive(ctx context.Context) (Message, error) {
	var frame ws.Frame
	var ok bool
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case frame, ok = <-s.conn.Frames():
	}
	if !ok {
		return nil, core.ErrStreamClosed
	}

	msg, err := s.handle(ctx, frame)
	if err != nil {
		kind, _ := core.KindOf(err)
		s.metrics.RecordFrame(ctx, "", kind.String())
		return nil, err
	}
	s.metrics.RecordFrame(ctx, msg.MessageType(), "")
	return msg, nil
}

func (s *Session) handle(ctx context.Context, frame ws.Frame) (Message, error) {
	switch frame.Kind {
	case ws.FrameText:
		msg, err := DecodeMessage(frame.Data)
		if err != nil {
			s.logger.Debug().Err(err).Msg("undecodable stream message")
			return nil, err
		}
		if _, isPing := msg.(Ping); isPing && s.autoPong {
			if err := s.Pong(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("auto pong failed")
			}
		}
		return msg, nil
	case ws.FrameClose:
		return Closed{Code: frame.CloseCode, Reason: frame.CloseReason}, nil
	case ws.FrameError:
		return nil, core.NewTransportError(0, "", frame.Err)
	default:
		return nil, core.NewUnexpectedFrameError(frame.Kind.String())
	}
}

// All yields items until the stream ends. Errors that do not end the stream
// are yielded alongside a nil message; iteration stops after a transport
// error, a Closed item, or ctx being done.
func (s *Session) All(ctx context.Context) iter.Seq2[Message, error] {
	return func(yield func(Message, error) bool) {
		for {
			msg, err := s.Receive(ctx)
			if errors.Is(err, core.ErrStreamClosed) {
				return
			}
			if !yield(msg, err) {
				return
			}
			if ctx.Err() != nil || core.IsTransportError(err) {
				return
			}
			if _, closed := msg.(Closed); closed {
				return
			}
		}
	}
}

// Send implements Sender.
func (s *Session) Send(ctx context.Context, msg Outbound) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return core.NewEncodeError(msg.Op(), err)
	}
	if err := s.conn.WriteText(ctx, data); err != nil {
		if errors.Is(err, ws.ErrNotOpen) {
			err = core.ErrNotConnected
		}
		return core.NewTransportError(0, "", err)
	}
	s.logger.Debug().Str("op", msg.Op()).Msg("stream message sent")
	return nil
}

// Subscribe sends a sub for topic. id may be empty.
func (s *Session) Subscribe(ctx context.Context, topic Topic, id string) error {
	return s.Send(ctx, Subscribe{ID: id, Channel: topic})
}

// Unsubscribe sends an unsub for topic. id may be empty.
func (s *Session) Unsubscribe(ctx context.Context, topic Topic, id string) error {
	return s.Send(ctx, Unsubscribe{ID: id, Channel: topic})
}

// Request sends a req with the given action. account and args may be nil.
func (s *Session) Request(ctx context.Context, action Action, id string, account *core.AccountType, args any) error {
	if strings.TrimSpace(id) == "" {
		id = NewRequestID()
	}
	return s.Send(ctx, RequestCommand{Action: action, ID: id, Account: account, Args: args})
}

// Pong answers a ping.
func (s *Session) Pong(ctx context.Context) error {
	return s.Send(ctx, Pong{})
}

// SessionState is the lifecycle stage of a session's connection.
type SessionState int

const (
	SessionConnecting SessionState = iota
	SessionOpen
	// SessionClosing means Close was called and queued items are draining.
	SessionClosing
	// SessionClosed is final; a session is never reopened.
	SessionClosed
)

// String returns the state name in lower case.
func (s SessionState) String() string {
	switch s {
	case SessionConnecting:
		return "connecting"
	case SessionOpen:
		return "open"
	case SessionClosing:
		return "closing"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// State reports the connection state.
func (s *Session) State() SessionState {
	switch s.conn.State() {
	case ws.StateConnecting:
		return SessionConnecting
	case ws.StateOpen:
		return SessionOpen
	case ws.StateClosing:
		return SessionClosing
	default:
		return SessionClosed
	}
}

// Close sends a normal close frame and releases the connection. Receive
// drains what was already queued, then returns core.ErrStreamClosed.
func (s *Session) Close() error {
	return s.conn.Close()
}
