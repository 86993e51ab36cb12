// Package ws wraps a gws client connection as an ordered stream of frames.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lxzan/gws"
	"github.com/rs/zerolog"
)

// FrameKind identifies what arrived on the socket.
type FrameKind int

const (
	FrameText FrameKind = iota
	FrameBinary
	FramePing
	FramePong
	// FrameClose is the peer's close frame. It is always the last frame.
	FrameClose
	// FrameError is a transport failure. It is always the last frame.
	FrameError
)

// String returns the frame kind name, such as "binary".
func (k FrameKind) String() string {
	return [...]string{"text", "binary", "ping", "pong", "close", "error"}[k]
}

// Frame is one item read from the socket.
type Frame struct {
	Kind        FrameKind
	Data        []byte
	CloseCode   uint16
	CloseReason string
	Err         error
}

// Config holds configuration options for a websocket connection.
type Config struct {
	// URL is the websocket server endpoint to connect to.
	URL string
	// Header is sent with the upgrade request.
	Header http.Header
	// HandshakeTimeout bounds the upgrade; zero uses the gws default.
	HandshakeTimeout time.Duration
	// BufferSize is the number of frames queued ahead of the reader.
	BufferSize int
}

// Conn is a single websocket connection. It never reconnects.
type Conn struct {
	config  Config
	state   *State
	socket  *gws.Conn
	handler *eventHandler
	logger  zerolog.Logger

	writeMu       sync.Mutex
	frames        chan Frame
	connectedChan chan struct{}
	stopChan      chan struct{}
	stopOnce      sync.Once
	closeMu       sync.Mutex
	closeErr      error
	wg            sync.WaitGroup
}

type eventHandler struct {
	conn *Conn
}

// Dial performs the handshake and starts reading. Frames are delivered in
// arrival order on Frames until a close or error frame, after which the
// channel is closed.
func Dial(ctx context.Context, config Config, logger zerolog.Logger) (*Conn, error) {
	if config.BufferSize <= 0 {
		config.BufferSize = 256
	}

	c := &Conn{
		config:        config,
		state:         &State{},
		logger:        logger,
		frames:        make(chan Frame, config.BufferSize),
		connectedChan: make(chan struct{}),
		stopChan:      make(chan struct{}),
	}
	c.state.Store(StateConnecting)
	c.handler = &eventHandler{conn: c}

	timeout := config.HandshakeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout == 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		c.state.Store(StateClosed)
		return nil, err
	}

	socket, _, err := gws.NewClient(c.handler, &gws.ClientOption{
		Addr:             config.URL,
		RequestHeader:    config.Header,
		HandshakeTimeout: timeout,
	})
	if err != nil {
		c.state.Store(StateClosed)
		return nil, fmt.Errorf("connect websocket: %w", err)
	}
	c.socket = socket

	c.wg.Go(func() {
		socket.ReadLoop()
		c.finish()
	})

	select {
	case <-c.connectedChan:
		return c, nil
	case <-ctx.Done():
		_ = c.Close()
		return nil, ctx.Err()
	}
}

func (h *eventHandler) OnOpen(socket *gws.Conn) {
	h.conn.state.Store(StateOpen)
	close(h.conn.connectedChan)

	h.conn.logger.Info().
		Str("url", h.conn.config.URL).
		Msg("websocket connected")
}

func (h *eventHandler) OnClose(socket *gws.Conn, err error) {
	c := h.conn
	c.state.Store(StateClosed)

	c.closeMu.Lock()
	if c.closeErr == nil {
		c.closeErr = err
	}
	c.closeMu.Unlock()
}

// finish runs on the reader goroutine once the read loop has returned, so
// the terminal frame is always last and no frame races the channel close.
func (c *Conn) finish() {
	defer close(c.frames)

	c.closeMu.Lock()
	err := c.closeErr
	c.closeMu.Unlock()

	var closeErr *gws.CloseError
	switch {
	case c.stopping():
		c.logger.Info().Str("url", c.config.URL).Msg("websocket closed")
	case errors.As(err, &closeErr):
		c.logger.Info().
			Uint16("code", closeErr.Code).
			Str("url", c.config.URL).
			Msg("websocket closed by peer")
		c.deliver(Frame{Kind: FrameClose, CloseCode: closeErr.Code, CloseReason: string(closeErr.Reason)})
	default:
		c.logger.Warn().
			Err(err).
			Str("url", c.config.URL).
			Msg("websocket disconnected")
		c.deliver(Frame{Kind: FrameError, Err: err})
	}
}

func (h *eventHandler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
	h.conn.deliver(Frame{Kind: FramePing, Data: append([]byte(nil), payload...)})
}

func (h *eventHandler) OnPong(socket *gws.Conn, payload []byte) {
	h.conn.deliver(Frame{Kind: FramePong, Data: append([]byte(nil), payload...)})
}

func (h *eventHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	frame := Frame{Kind: FrameText, Data: append([]byte(nil), message.Bytes()...)}
	if message.Opcode == gws.OpcodeBinary {
		frame.Kind = FrameBinary
	}
	h.conn.deliver(frame)
}

// deliver blocks until the frame is queued, which holds the read loop and
// pushes back on the peer. It gives up only when the connection is stopping.
func (c *Conn) deliver(frame Frame) {
	select {
	case c.frames <- frame:
	case <-c.stopChan:
	}
}

func (c *Conn) stopping() bool {
	select {
	case <-c.stopChan:
		return true
	default:
		return false
	}
}

// Frames returns the inbound frame channel.
func (c *Conn) Frames() <-chan Frame {
	return c.frames
}

// WriteText sends one text frame. Writes are serialized in call order.
// A context deadline bounds the write.
func (c *Conn) WriteText(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.state.Load() != StateOpen {
		return ErrNotOpen
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		c.socket.SetWriteDeadline(deadline)
		defer c.socket.SetWriteDeadline(time.Time{})
	}
	return c.socket.WriteMessage(gws.OpcodeText, data)
}

// ErrNotOpen is returned when writing to a connection that is not open.
var ErrNotOpen = errors.New("websocket not open")

// State returns the current connection state of the websocket.
func (c *Conn) State() ConnState {
	return c.state.Load()
}

// Close sends a normal close frame, tears down the socket and waits for the
// reader to finish. It is safe to call more than once.
func (c *Conn) Close() error {
	c.stopOnce.Do(func() {
		c.state.CompareAndSwap(StateOpen, StateClosing)
		close(c.stopChan)
		if c.socket != nil {
			c.writeMu.Lock()
			c.socket.WriteClose(1000, nil)
			c.writeMu.Unlock()
			_ = c.socket.NetConn().Close()
		}
	})
	c.wg.Wait()
	return nil
}
