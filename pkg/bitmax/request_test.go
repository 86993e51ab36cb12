package bitmax

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmax/internal/keyring"
	"bitmax/pkg/core"
)

type described interface {
	Descriptor() Descriptor
}

func TestDescriptors(t *testing.T) {
	get, post, del := http.MethodGet, http.MethodPost, http.MethodDelete
	tests := []struct {
		req      described
		method   string
		path     string
		auth     bool
		group    bool
		rendered string
	}{
		{Assets{}, get, "/assets", false, false, "/api/pro/v1/assets"},
		{Products{}, get, "/products", false, false, "/api/pro/v1/products"},
		{Ticker{Symbol: "X"}, get, "/ticker", false, false, "/api/pro/v1/ticker"},
		{Tickers{Symbols: []string{"X"}}, get, "/ticker", false, false, "/api/pro/v1/ticker"},
		{AllTickers{}, get, "/ticker", false, false, "/api/pro/v1/ticker"},
		{BarhistInfo{}, get, "/barhist/info", false, false, "/api/pro/v1/barhist/info"},
		{Barhist{Symbol: "X", Interval: core.Interval1m}, get, "/barhist", false, false, "/api/pro/v1/barhist"},
		{Depth{Symbol: "X"}, get, "/depth", false, false, "/api/pro/v1/depth"},
		{Trades{Symbol: "X"}, get, "/trades", false, false, "/api/pro/v1/trades"},
		{AccountInfo{}, get, "/info", true, false, "/api/pro/v1/info"},
		{Balance{AccountType: core.AccountCash}, get, "/balance", true, true, "/8/api/pro/v1/cash/balance"},
		{MarginRisk{}, get, "/margin/risk", true, true, "/8/api/pro/v1/margin/risk"},
		{SelfTransfer{Asset: "BTC"}, post, "/transfer", true, true, "/8/api/pro/v1/transfer"},
		{DepositAddress{Asset: "BTC"}, get, "/wallet/deposit/address", true, false, "/api/pro/v1/wallet/deposit/address"},
		{TransactionHistory{}, get, "/wallet/transactions", true, false, "/api/pro/v1/wallet/transactions"},
		{PlaceOrder{AccountType: core.AccountMargin}, post, "/order", true, true, "/8/api/pro/v1/margin/order"},
		{CancelOrder{AccountType: core.AccountCash}, del, "/order", true, true, "/8/api/pro/v1/cash/order"},
		{CancelAllOrders{AccountType: core.AccountCash}, del, "/order/all", true, true, "/8/api/pro/v1/cash/order/all"},
		{OrderStatus{AccountType: core.AccountCash}, get, "/order/status", true, true, "/8/api/pro/v1/cash/order/status"},
		{OrdersStatus{AccountType: core.AccountCash}, get, "/order/status", true, true, "/8/api/pro/v1/cash/order/status"},
		{OpenOrders{AccountType: core.AccountMargin}, get, "/order/open", true, true, "/8/api/pro/v1/margin/order/open"},
		{OrderHistoryCurrent{AccountType: core.AccountCash}, get, "/order/hist/current", true, true, "/8/api/pro/v1/cash/order/hist/current"},
		{OrderHistory{Category: core.AccountMargin}, get, "/order/hist", true, true, "/8/api/pro/v1/order/hist"},
	}

	ring, err := keyring.New(&core.Credentials{PublicKey: "k", PrivateKey: testPrivateKey, AccountGroup: group(8)})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.rendered, func(t *testing.T) {
			d := tt.req.Descriptor()
			assert.Equal(t, tt.method, d.Method)
			assert.Equal(t, tt.path, d.Path)
			assert.Equal(t, tt.auth, d.NeedsAuth)
			assert.Equal(t, tt.group, d.NeedsAccountGroup)

			path, err := Endpoint(d, tt.req, ring.Current())
			require.NoError(t, err)
			assert.Equal(t, tt.rendered, path)

			_, hasQuery := tt.req.(Querier)
			_, hasBody := tt.req.(bodyEncoder)
			assert.False(t, hasQuery && hasBody)
			if d.Method != http.MethodGet {
				assert.True(t, hasBody)
			}
		})
	}
}

func TestParams(t *testing.T) {
	p := Params{}.
		Set("symbol", "BTC/USDT").
		SetBool("showAll", true).
		SetList("orderId", nil)
	setOpt(p, "n", Ptr(uint32(5)), formatUint)
	setOpt[int64](p, "from", nil, formatInt)
	optionalEnum(p, "side", Ptr(core.SideSell))

	values := p.Values()
	assert.Equal(t, "BTC/USDT", values.Get("symbol"))
	assert.Equal(t, "true", values.Get("showAll"))
	assert.Equal(t, "5", values.Get("n"))
	assert.Equal(t, "sell", values.Get("side"))
	assert.False(t, values.Has("orderId"))
	assert.False(t, values.Has("from"))
}

func TestTransactionHistoryParams(t *testing.T) {
	p := TransactionHistory{
		Asset:    Ptr("BTC"),
		TxType:   Ptr(core.TxWithdrawal),
		PageSize: Ptr(uint32(10)),
	}.Params()

	assert.Equal(t, Params{"asset": "BTC", "txType": "withdrawal", "pageSize": "10"}, p)
}
