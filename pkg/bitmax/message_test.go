package bitmax

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmax/pkg/core"
)

func TestTopic_String(t *testing.T) {
	tests := []struct {
		topic Topic
		want  string
	}{
		{DepthTopic("BTC/USDT"), "depth:BTC/USDT"},
		{BboTopic("BTC/USDT"), "bbo:BTC/USDT"},
		{TradesTopic("ETH/BTC"), "trades:ETH/BTC"},
		{BarTopic(core.Interval1d, "BTC/USDT"), "bar:1d:BTC/USDT"},
		{RefPxTopic("BTC"), "ref-px:BTC"},
		{OrderTopic(core.AccountCash), "order:cash"},
		{OrderTopic(core.AccountMargin), "order:margin"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.topic.String())

			parsed, err := ParseTopic(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.topic, parsed)
		})
	}
}

func TestParseTopic_Invalid(t *testing.T) {
	for _, s := range []string{"", "depth", "depth:", "bar:7:BTC/USDT", "bar:1", "order:futures", "candles:BTC/USDT"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseTopic(s)
			require.Error(t, err)
			assert.True(t, core.IsParseError(err))
		})
	}
}

func TestOutbound_Encoding(t *testing.T) {
	account := core.AccountCash
	tests := []struct {
		name string
		msg  Outbound
		want string
	}{
		{"sub without id", Subscribe{Channel: TradesTopic("BTC/USDT")}, `{"op":"sub","ch":"trades:BTC/USDT"}`},
		{"sub with id", Subscribe{ID: "1", Channel: OrderTopic(core.AccountCash)}, `{"op":"sub","id":"1","ch":"order:cash"}`},
		{"unsub", Unsubscribe{ID: "2", Channel: BboTopic("X")}, `{"op":"unsub","id":"2","ch":"bbo:X"}`},
		{"pong", Pong{}, `{"op":"pong"}`},
		{"req without account", RequestCommand{Action: ActionMarketTrades, ID: "3"}, `{"op":"req","action":"market-trades","id":"3"}`},
		{
			"req with account",
			RequestCommand{Action: ActionBalance, ID: "4", Account: &account, Args: map[string]any{"asset": "BTC"}},
			`{"op":"req","action":"balance","id":"4","account":"cash","args":{"asset":"BTC"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := sonic.Marshal(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestActions(t *testing.T) {
	assert.Equal(t, "place-Order", string(ActionPlaceOrder))
	assert.Equal(t, "cancel-Order", string(ActionCancelOrder))
	assert.Equal(t, "cancel-All", string(ActionCancelAll))
	assert.Equal(t, "depth-snapshot-top100", string(ActionDepthSnapshotTop100))
	assert.Equal(t, "open-order", string(ActionOpenOrder))
	assert.Equal(t, "margin-risk", string(ActionMarginRisk))
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Message
	}{
		{"ping", `{"m":"ping","hp":3}`, Ping{Hp: 3}},
		{"disconnected", `{"m":"disconnected","code":100005,"reason":"WEBSOCKET_CONNECTION_LIMIT","info":"too many"}`,
			Disconnected{Code: 100005, Reason: "WEBSOCKET_CONNECTION_LIMIT", Info: "too many"}},
		{"error", `{"m":"error","id":"ab","code":100005,"reason":"INVALID_WS_REQUEST_DATA","info":"bad"}`,
			ErrorMessage{ID: "ab", Code: 100005, Reason: "INVALID_WS_REQUEST_DATA", Info: "bad"}},
		{"unsub", `{"m":"unsub","ch":"bbo:X","code":0}`, Unsubscribed{Channel: "bbo:X"}},
		{"bbo ts at top level", `{"m":"bbo","ts":5,"symbol":"X","data":{"bid":["1","2"],"ask":["3","4"]}}`,
			BboUpdate{Symbol: "X", Ts: 5, Data: BboData{
				Bid: core.PriceQty{Price: core.FromInt(1), Qty: core.FromInt(2)},
				Ask: core.PriceQty{Price: core.FromInt(3), Qty: core.FromInt(4)},
			}}},
		{"ref-px", `{"m":"ref-px","symbol":"BTC","ts":9,"p":"9000.5"}`,
			RefPxUpdate{Symbol: "BTC", Ts: 9, Price: core.MustParseFixed9("9000.5")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeMessage([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, msg)
			assert.Equal(t, tt.want.MessageType(), msg.MessageType())
		})
	}
}

func TestDecodeMessage_Bar(t *testing.T) {
	for _, raw := range []string{
		`{"m":"bar","s":"BTC/USDT","data":{"i":"1","ts":1,"o":"1","c":"2","h":"3","l":"0.5","v":"12.5"}}`,
		`{"m":"bar","symbol":"BTC/USDT","data":{"i":"1","ts":1,"o":"1","c":"2","h":"3","l":"0.5","v":"12.5"}}`,
	} {
		msg, err := DecodeMessage([]byte(raw))
		require.NoError(t, err)
		bar, ok := msg.(BarUpdate)
		require.True(t, ok)
		assert.Equal(t, "BTC/USDT", bar.Symbol)
		assert.InDelta(t, 12.5, bar.Data.Volume, 1e-9)
	}
}

func TestDecodeMessage_Trades(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"m":"trades","symbol":"BTC/USDT","data":[{"p":"9000","q":"0.1","ts":1,"bm":true,"seqnum":7}]}`))
	require.NoError(t, err)
	trades, ok := msg.(TradesUpdate)
	require.True(t, ok)
	require.Len(t, trades.Data, 1)
	assert.True(t, trades.Data[0].IsBuyerMaker)
	assert.Equal(t, uint64(7), trades.Data[0].Seqnum)
}

func TestDecodeMessage_Order(t *testing.T) {
	raw := `{"m":"order","accountId":"cshQtyfq8XLAA9kcf19h8bXHbAwwoqDo","ac":"CASH","data":{
		"s":"BTC/USDT","sn":8159711,"sd":"Buy","ap":"0","bab":"2006.5974027","btb":"2006.5974027",
		"cf":"0","cfq":"0","err":"","fa":"USDT","orderId":"s16ef210b1a50866954292","ot":"Limit",
		"p":"7967.62","q":"0.0083","qab":"793.23","qtb":"860.23","sp":"","st":"New","t":1576019215402,"ei":"NULL_VAL"}}`

	msg, err := DecodeMessage([]byte(raw))
	require.NoError(t, err)
	update, ok := msg.(OrderUpdate)
	require.True(t, ok)

	assert.Equal(t, "CASH", update.AccountCategory)
	assert.Equal(t, core.SideBuy, update.Data.Side)
	assert.Equal(t, core.TypeLimit, update.Data.OrderType)
	assert.Equal(t, core.StatusNew, update.Data.Status)
	assert.False(t, update.Data.StopPrice.Valid)
	assert.Equal(t, core.SomeFixed9(core.MustParseFixed9("7967.62")), update.Data.Price)
}

func TestDecodeMessage_DepthSnapshot(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"m":"depth-snapshot","symbol":"BTC/USDT","data":{"ts":1,"seqnum":3,"asks":[],"bids":[["1","2"]]}}`))
	require.NoError(t, err)
	snap, ok := msg.(DepthSnapshot)
	require.True(t, ok)
	assert.Len(t, snap.Data.Bids, 1)
}

func TestDecodeMessage_Errors(t *testing.T) {
	for _, raw := range []string{
		`{"hp":3}`,
		`{"m":"unknown-tag"}`,
		`{"m":"connected","type":"sideways"}`,
		`{"m":"depth","symbol":"X","data":{"asks":[["1"]]}}`,
		`not json`,
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := DecodeMessage([]byte(raw))
			var e *core.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, core.KindDecode, e.Kind)
			assert.Equal(t, raw, e.Raw)
		})
	}
}
