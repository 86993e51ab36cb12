package bitmax

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmax/internal/auth"
	"bitmax/pkg/core"
)

var upgrader = websocket.Upgrader{}

type handshake struct {
	path   string
	header http.Header
}

// newStreamServer runs script against every accepted connection.
func newStreamServer(t *testing.T, script func(conn *websocket.Conn)) (*httptest.Server, <-chan handshake) {
	t.Helper()
	seen := make(chan handshake, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- handshake{path: r.URL.Path, header: r.Header.Clone()}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		script(conn)
	}))
	t.Cleanup(server.Close)
	return server, seen
}

func newStreamClient(t *testing.T, server *httptest.Server, creds *core.Credentials) *Client {
	t.Helper()
	config := core.DefaultConfig().WithBaseURL(server.URL).WithCredentials(creds)
	config.Stream.HandshakeTimeout = 2 * time.Second
	client, err := New(config, WithClock(fixedClock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func receive(t *testing.T, s *Session) (Message, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.Receive(ctx)
}

func readJSON(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return ""
	}
	return string(data)
}

func TestConnect_PublicStream(t *testing.T) {
	sent := make(chan string, 4)
	server, seen := newStreamServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"connected","type":"unauth"}`))
		sent <- readJSON(t, conn)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"sub","id":"abc","ch":"depth:BTC/USDT","code":0}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"depth","symbol":"BTC/USDT","data":{"ts":1,"seqnum":2,"asks":[["9101","0.5"]],"bids":[]}}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"mystery"}`))
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3})
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"bbo","symbol":"BTC/USDT","data":{"ts":77,"bid":["9100","1"],"ask":["9101","2"]}}`))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		time.Sleep(200 * time.Millisecond)
	})
	client := newStreamClient(t, server, nil)

	session, err := client.Connect(context.Background(), false)
	require.NoError(t, err)
	defer session.Close()

	hs := <-seen
	assert.Equal(t, "/api/pro/v1/stream", hs.path)
	assert.Equal(t, "bitmax-go", hs.header.Get("User-Agent"))
	assert.Empty(t, hs.header.Get(auth.HeaderKey))

	msg, err := receive(t, session)
	require.NoError(t, err)
	assert.Equal(t, Connected{Type: ConnectionUnauth}, msg)

	require.NoError(t, session.Subscribe(context.Background(), DepthTopic("BTC/USDT"), "abc"))
	assert.JSONEq(t, `{"op":"sub","id":"abc","ch":"depth:BTC/USDT"}`, <-sent)

	msg, err = receive(t, session)
	require.NoError(t, err)
	ack, ok := msg.(Subscribed)
	require.True(t, ok)
	topic, err := ParseTopic(ack.Channel)
	require.NoError(t, err)
	assert.Equal(t, DepthTopic("BTC/USDT"), topic)

	msg, err = receive(t, session)
	require.NoError(t, err)
	depth, ok := msg.(DepthUpdate)
	require.True(t, ok)
	assert.Equal(t, uint64(2), depth.Data.Seqnum)
	require.Len(t, depth.Data.Asks, 1)

	_, err = receive(t, session)
	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, core.KindDecode, e.Kind)
	assert.Equal(t, `{"m":"mystery"}`, e.Raw)

	_, err = receive(t, session)
	assert.True(t, core.IsUnexpectedFrameError(err))

	msg, err = receive(t, session)
	require.NoError(t, err)
	bbo, ok := msg.(BboUpdate)
	require.True(t, ok)
	assert.Equal(t, int64(77), bbo.Ts)

	msg, err = receive(t, session)
	require.NoError(t, err)
	assert.Equal(t, Closed{Code: 1000, Reason: "bye"}, msg)

	_, err = receive(t, session)
	assert.ErrorIs(t, err, core.ErrStreamClosed)
}

func TestConnect_AuthenticatedHandshake(t *testing.T) {
	server, seen := newStreamServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"connected","type":"auth"}`))
		readJSON(t, conn)
	})
	client := newStreamClient(t, server, &core.Credentials{
		PublicKey:    testPublicKey,
		PrivateKey:   testPrivateKey,
		AccountGroup: group(5),
	})

	session, err := client.Connect(context.Background(), true)
	require.NoError(t, err)
	defer session.Close()

	hs := <-seen
	assert.Equal(t, "/5/api/pro/v1/stream", hs.path)
	assert.Equal(t, testPublicKey, hs.header.Get(auth.HeaderKey))
	assert.Equal(t, "1575348073000", hs.header.Get(auth.HeaderTimestamp))
	assert.Equal(t, auth.Sign([]byte("secret"), "/stream", testNow), hs.header.Get(auth.HeaderSignature))

	msg, err := receive(t, session)
	require.NoError(t, err)
	assert.Equal(t, Connected{Type: ConnectionAuth}, msg)
}

func TestConnect_AuthErrors(t *testing.T) {
	server, _ := newStreamServer(t, func(conn *websocket.Conn) {})

	client := newStreamClient(t, server, nil)
	_, err := client.Connect(context.Background(), true)
	assert.ErrorIs(t, err, core.ErrNoCredentials)
	assert.True(t, core.IsAuthError(err))

	client = newStreamClient(t, server, &core.Credentials{PublicKey: testPublicKey, PrivateKey: testPrivateKey})
	_, err = client.Connect(context.Background(), true)
	assert.ErrorIs(t, err, core.ErrNoAccountGroup)
}

func TestConnect_HandshakeRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	client := newStreamClient(t, server, nil)

	_, err := client.Connect(context.Background(), false)
	require.Error(t, err)
	assert.True(t, core.IsConnectError(err))
}

func TestSession_AutoPong(t *testing.T) {
	sent := make(chan string, 1)
	server, _ := newStreamServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"ping","hp":3}`))
		sent <- readJSON(t, conn)
	})
	client := newStreamClient(t, server, nil)

	session, err := client.Connect(context.Background(), false, WithAutoPong())
	require.NoError(t, err)
	defer session.Close()

	msg, err := receive(t, session)
	require.NoError(t, err)
	assert.Equal(t, Ping{Hp: 3}, msg)
	assert.JSONEq(t, `{"op":"pong"}`, <-sent)
}

func TestSession_RequestAndUnsubscribe(t *testing.T) {
	sent := make(chan string, 2)
	server, _ := newStreamServer(t, func(conn *websocket.Conn) {
		sent <- readJSON(t, conn)
		sent <- readJSON(t, conn)
	})
	client := newStreamClient(t, server, nil)

	session, err := client.Connect(context.Background(), false)
	require.NoError(t, err)
	defer session.Close()

	ctx := context.Background()
	require.NoError(t, session.Request(ctx, ActionDepthSnapshot, "r1", nil, map[string]string{"symbol": "BTC/USDT"}))
	require.NoError(t, session.Unsubscribe(ctx, BarTopic(core.Interval5m, "BTC/USDT"), ""))

	assert.JSONEq(t, `{"op":"req","action":"depth-snapshot","id":"r1","args":{"symbol":"BTC/USDT"}}`, <-sent)
	assert.JSONEq(t, `{"op":"unsub","ch":"bar:5:BTC/USDT"}`, <-sent)
}

func TestSession_TransportErrorEndsStream(t *testing.T) {
	server, _ := newStreamServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"m":"ping","hp":3}`))
		_ = conn.NetConn().Close()
	})
	client := newStreamClient(t, server, nil)

	session, err := client.Connect(context.Background(), false)
	require.NoError(t, err)
	defer session.Close()

	var items []error
	for msg, err := range session.All(context.Background()) {
		if err == nil {
			assert.Equal(t, Ping{Hp: 3}, msg)
		}
		items = append(items, err)
	}
	require.Len(t, items, 2)
	assert.NoError(t, items[0])
	assert.True(t, core.IsTransportError(items[1]))
}

func TestSession_SendAfterClose(t *testing.T) {
	server, _ := newStreamServer(t, func(conn *websocket.Conn) {
		readJSON(t, conn)
	})
	client := newStreamClient(t, server, nil)

	session, err := client.Connect(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, SessionOpen, session.State())
	require.NoError(t, session.Close())
	assert.Equal(t, SessionClosed, session.State())
	assert.Equal(t, "closed", session.State().String())

	err = session.Pong(context.Background())
	assert.True(t, core.IsTransportError(err))
	assert.ErrorIs(t, err, core.ErrNotConnected)

	_, err = receive(t, session)
	assert.ErrorIs(t, err, core.ErrStreamClosed)
}

func TestSession_SendEncodeError(t *testing.T) {
	sent := make(chan string, 1)
	server, _ := newStreamServer(t, func(conn *websocket.Conn) {
		sent <- readJSON(t, conn)
	})
	client := newStreamClient(t, server, nil)

	session, err := client.Connect(context.Background(), false)
	require.NoError(t, err)
	defer session.Close()

	err = session.Request(context.Background(), ActionBalance, "r1", nil, make(chan int))
	require.Error(t, err)
	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, core.KindParse, e.Kind)
	assert.Contains(t, e.Message, "req")

	require.NoError(t, session.Pong(context.Background()))
	assert.JSONEq(t, `{"op":"pong"}`, <-sent)
}
