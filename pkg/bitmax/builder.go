package bitmax

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"bitmax/pkg/core"
)

// OrderBuilder provides a fluent interface for constructing a PlaceOrder.
// The first error sticks and is reported by Build.
//
// Example:
//
//	order, err := bitmax.NewOrderBuilder(core.AccountCash, "BTC/USDT").
//	    Buy().
//	    Limit().
//	    Price("7000").
//	    Quantity("0.1").
//	    Build()
type OrderBuilder struct {
	order PlaceOrder
	err   error
}

// NewOrderBuilder starts a good-till-canceled order on account for symbol.
func NewOrderBuilder(account core.AccountType, symbol string) *OrderBuilder {
	return &OrderBuilder{
		order: PlaceOrder{
			AccountType: account,
			Symbol:      symbol,
			TimeInForce: Ptr(core.GoodTillCanceled),
		},
	}
}

// Side sets the order side.
func (b *OrderBuilder) Side(side core.OrderSide) *OrderBuilder {
	if b.err == nil {
		b.order.Side = side
	}
	return b
}

// Buy and Sell are shorthands for Side.
func (b *OrderBuilder) Buy() *OrderBuilder  { return b.Side(core.SideBuy) }
func (b *OrderBuilder) Sell() *OrderBuilder { return b.Side(core.SideSell) }

// Type sets the order type.
func (b *OrderBuilder) Type(orderType core.OrderType) *OrderBuilder {
	if b.err == nil {
		b.order.OrderType = orderType
	}
	return b
}

// Market, Limit, StopMarket and StopLimit are shorthands for Type.
func (b *OrderBuilder) Market() *OrderBuilder     { return b.Type(core.TypeMarket) }
func (b *OrderBuilder) Limit() *OrderBuilder      { return b.Type(core.TypeLimit) }
func (b *OrderBuilder) StopMarket() *OrderBuilder { return b.Type(core.TypeStopMarket) }
func (b *OrderBuilder) StopLimit() *OrderBuilder  { return b.Type(core.TypeStopLimit) }

// Price sets the limit price from its decimal text.
func (b *OrderBuilder) Price(price string) *OrderBuilder {
	return b.parse("price", price, func(v core.Fixed9) { b.order.OrderPrice = &v })
}

// PriceDecimal sets the limit price, truncated to nine fractional digits.
func (b *OrderBuilder) PriceDecimal(price *apd.Decimal) *OrderBuilder {
	return b.convert("price", price, func(v core.Fixed9) { b.order.OrderPrice = &v })
}

// StopPrice sets the trigger price of a stop order.
func (b *OrderBuilder) StopPrice(price string) *OrderBuilder {
	return b.parse("stop price", price, func(v core.Fixed9) { b.order.StopPrice = &v })
}

// Quantity sets the order quantity from its decimal text.
func (b *OrderBuilder) Quantity(qty string) *OrderBuilder {
	return b.parse("quantity", qty, func(v core.Fixed9) { b.order.OrderQty = v })
}

// QuantityDecimal sets the order quantity, truncated to nine fractional digits.
func (b *OrderBuilder) QuantityDecimal(qty *apd.Decimal) *OrderBuilder {
	return b.convert("quantity", qty, func(v core.Fixed9) { b.order.OrderQty = v })
}

func (b *OrderBuilder) parse(field, text string, set func(core.Fixed9)) *OrderBuilder {
	if b.err != nil {
		return b
	}
	v, err := core.ParseFixed9(text)
	if err != nil {
		b.err = fmt.Errorf("parse %s: %w", field, err)
		return b
	}
	set(v)
	return b
}

func (b *OrderBuilder) convert(field string, d *apd.Decimal, set func(core.Fixed9)) *OrderBuilder {
	if b.err != nil {
		return b
	}
	v, err := core.FromDecimal(d)
	if err != nil {
		b.err = fmt.Errorf("convert %s: %w", field, err)
		return b
	}
	set(v)
	return b
}

// TimeInForce sets the time-in-force policy.
func (b *OrderBuilder) TimeInForce(tif core.TimeInForce) *OrderBuilder {
	if b.err == nil {
		b.order.TimeInForce = &tif
	}
	return b
}

// GTC, IOC and FOK are shorthands for TimeInForce.
func (b *OrderBuilder) GTC() *OrderBuilder { return b.TimeInForce(core.GoodTillCanceled) }
func (b *OrderBuilder) IOC() *OrderBuilder { return b.TimeInForce(core.ImmediateOrCancel) }
func (b *OrderBuilder) FOK() *OrderBuilder { return b.TimeInForce(core.FillOrKill) }

// PostOnly marks the order maker-only.
func (b *OrderBuilder) PostOnly() *OrderBuilder {
	if b.err == nil {
		b.order.PostOnly = Ptr(true)
	}
	return b
}

// RespInst sets when the exchange answers.
func (b *OrderBuilder) RespInst(inst core.RespInst) *OrderBuilder {
	if b.err == nil {
		b.order.RespInst = &inst
	}
	return b
}

// ClientOrderID sets the client id. Build assigns a random one when unset.
func (b *OrderBuilder) ClientOrderID(id string) *OrderBuilder {
	if b.err == nil {
		b.order.ID = id
	}
	return b
}

// Build validates and returns the order.
func (b *OrderBuilder) Build() (PlaceOrder, error) {
	if b.err != nil {
		return PlaceOrder{}, b.err
	}
	if b.order.ID == "" {
		b.order.ID = NewRequestID()
	}
	if err := validateOrder(b.order); err != nil {
		return PlaceOrder{}, core.NewValidationError(err)
	}
	return b.order, nil
}

func validateOrder(order PlaceOrder) error {
	if order.Symbol == "" {
		return errors.New("symbol is required")
	}
	if order.OrderQty.Sign() <= 0 {
		return errors.New("quantity must be positive")
	}

	needsPrice := order.OrderType == core.TypeLimit || order.OrderType == core.TypeStopLimit
	if needsPrice && (order.OrderPrice == nil || order.OrderPrice.Sign() <= 0) {
		return errors.New("price must be positive for limit orders")
	}

	isStop := order.OrderType == core.TypeStopMarket || order.OrderType == core.TypeStopLimit
	if isStop && (order.StopPrice == nil || order.StopPrice.Sign() <= 0) {
		return errors.New("stop price must be positive for stop orders")
	}
	return nil
}
