package bitmax

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmax/pkg/core"
)

func TestOrderBuilder_Build(t *testing.T) {
	tests := []struct {
		name       string
		build      func() (PlaceOrder, error)
		wantErr    bool
		errContain string
	}{
		{
			name: "valid limit buy order",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountCash, "BTC/USDT").
					Buy().
					Limit().
					Price("7000.00").
					Quantity("0.1").
					GTC().
					Build()
			},
		},
		{
			name: "valid market sell order",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountMargin, "ETH/USDT").
					Sell().
					Market().
					Quantity("1.5").
					Build()
			},
		},
		{
			name: "valid order with decimal price",
			build: func() (PlaceOrder, error) {
				var price apd.Decimal
				_, _, _ = price.SetString("7000.5")
				return NewOrderBuilder(core.AccountCash, "BTC/USDT").
					Buy().
					Limit().
					PriceDecimal(&price).
					Quantity("0.1").
					Build()
			},
		},
		{
			name: "valid stop limit order",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountCash, "BTC/USDT").
					Sell().
					StopLimit().
					StopPrice("6500").
					Price("6400").
					Quantity("0.1").
					IOC().
					Build()
			},
		},
		{
			name: "missing quantity",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountCash, "BTC/USDT").Buy().Market().Build()
			},
			wantErr:    true,
			errContain: "quantity must be positive",
		},
		{
			name: "limit without price",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountCash, "BTC/USDT").Buy().Limit().Quantity("1").Build()
			},
			wantErr:    true,
			errContain: "price must be positive",
		},
		{
			name: "stop market without stop price",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountCash, "BTC/USDT").Sell().StopMarket().Quantity("1").Build()
			},
			wantErr:    true,
			errContain: "stop price",
		},
		{
			name: "bad price text sticks",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountCash, "BTC/USDT").
					Buy().
					Limit().
					Price("7,000").
					Price("7000").
					Quantity("1").
					Build()
			},
			wantErr:    true,
			errContain: "parse price",
		},
		{
			name: "empty symbol",
			build: func() (PlaceOrder, error) {
				return NewOrderBuilder(core.AccountCash, "").Buy().Market().Quantity("1").Build()
			},
			wantErr:    true,
			errContain: "symbol is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := tt.build()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			assert.Len(t, order.ID, 32)
			assert.NotNil(t, order.TimeInForce)
		})
	}
}

func TestOrderBuilder_Fields(t *testing.T) {
	order, err := NewOrderBuilder(core.AccountMargin, "BTC/USDT").
		Buy().
		Limit().
		Price("7000.123456789999").
		Quantity("0.25").
		PostOnly().
		RespInst(core.RespAccept).
		ClientOrderID("myorder1").
		Build()
	require.NoError(t, err)

	assert.Equal(t, core.AccountMargin, order.Account())
	assert.Equal(t, "myorder1", order.ID)
	assert.Equal(t, core.MustParseFixed9("7000.123456789"), *order.OrderPrice)
	assert.Equal(t, core.MustParseFixed9("0.25"), order.OrderQty)
	assert.True(t, *order.PostOnly)
	assert.Equal(t, core.RespAccept, *order.RespInst)
	assert.Equal(t, core.GoodTillCanceled, *order.TimeInForce)
	assert.Zero(t, order.Time)
}
