package bitmax

import (
	"fmt"

	"github.com/bytedance/sonic"

	"bitmax/pkg/core"
)

// Message is one decoded stream item. The set is closed; switch on the
// concrete type.
type Message interface {
	// MessageType is the "m" tag the message arrived with, or "closed".
	MessageType() string
	inbound()
}

// Ping is the exchange heartbeat. It expects a Pong.
type Ping struct {
	// Hp is the number of pings left before the exchange disconnects.
	Hp int `json:"hp"`
}

// Disconnected announces that the exchange is about to drop the session.
type Disconnected struct {
	Code   uint32 `json:"code"`
	Reason string `json:"reason"`
	Info   string `json:"info"`
}

// ErrorMessage reports a rejected stream command.
type ErrorMessage struct {
	ID     string `json:"id,omitempty"`
	Code   uint32 `json:"code"`
	Reason string `json:"reason"`
	Info   string `json:"info"`
}

// ConnectionType tells whether a session is authenticated.
type ConnectionType string

const (
	ConnectionAuth   ConnectionType = "auth"
	ConnectionUnauth ConnectionType = "unauth"
)

// UnmarshalJSON accepts only "auth" and "unauth".
func (c *ConnectionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return err
	}
	switch ConnectionType(s) {
	case ConnectionAuth, ConnectionUnauth:
		*c = ConnectionType(s)
		return nil
	}
	return fmt.Errorf("unknown connection type %q", s)
}

// Connected is the first message of every session.
type Connected struct {
	Type ConnectionType `json:"type"`
}

// Subscribed acknowledges a Subscribe. Channel is the raw channel string;
// ParseTopic turns it back into a Topic.
type Subscribed struct {
	ID      string `json:"id,omitempty"`
	Code    uint32 `json:"code"`
	Channel string `json:"ch"`
}

// Unsubscribed acknowledges an Unsubscribe.
type Unsubscribed struct {
	ID      string `json:"id,omitempty"`
	Code    uint32 `json:"code"`
	Channel string `json:"ch"`
}

// DepthUpdate is an incremental order book update.
type DepthUpdate struct {
	Symbol string         `json:"symbol"`
	Data   core.DepthData `json:"data"`
}

// DepthSnapshot answers a depth-snapshot request.
type DepthSnapshot struct {
	Symbol string         `json:"symbol"`
	Data   core.DepthData `json:"data"`
}

// BboData is the best bid and offer.
type BboData struct {
	Ts  int64         `json:"ts"`
	Bid core.PriceQty `json:"bid"`
	Ask core.PriceQty `json:"ask"`
}

// BboUpdate is a best bid and offer update. Ts is taken from the top level, or
// from data when the top level has none.
type BboUpdate struct {
	Symbol string  `json:"symbol"`
	Ts     int64   `json:"ts"`
	Data   BboData `json:"data"`
}

// UnmarshalJSON fills a missing top level ts from data.
func (b *BboUpdate) UnmarshalJSON(data []byte) error {
	type plain BboUpdate
	var p plain
	if err := sonic.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Ts == 0 {
		p.Ts = p.Data.Ts
	}
	*b = BboUpdate(p)
	return nil
}

// TradesUpdate is a batch of public trades.
type TradesUpdate struct {
	Symbol string       `json:"symbol"`
	Data   []core.Trade `json:"data"`
}

// BarUpdate is a candle update. The symbol arrives as "symbol" or "s".
type BarUpdate struct {
	Symbol string   `json:"symbol"`
	Data   core.Bar `json:"data"`
}

// UnmarshalJSON reads the symbol from either key.
func (b *BarUpdate) UnmarshalJSON(data []byte) error {
	var aux struct {
		Symbol string   `json:"symbol"`
		S      string   `json:"s"`
		Data   core.Bar `json:"data"`
	}
	if err := sonic.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.Symbol = aux.Symbol
	if b.Symbol == "" {
		b.Symbol = aux.S
	}
	b.Data = aux.Data
	return nil
}

// RefPxUpdate is a reference price update.
type RefPxUpdate struct {
	Symbol string      `json:"symbol"`
	Ts     int64       `json:"ts"`
	Price  core.Fixed9 `json:"p"`
}

// OrderEvent is the payload of an order channel update.
type OrderEvent struct {
	Symbol                string           `json:"s"`
	SeqNum                uint64           `json:"sn"`
	Side                  core.OrderSide   `json:"sd"`
	AvgPrice              core.NullFixed9  `json:"ap"`
	BaseAvailableBalance  core.NullFixed9  `json:"bab"`
	BaseTotalBalance      core.NullFixed9  `json:"btb"`
	CumFee                core.NullFixed9  `json:"cf"`
	CumFilledQty          core.NullFixed9  `json:"cfq"`
	ErrorCode             string           `json:"err"`
	FeeAsset              string           `json:"fa"`
	OrderID               string           `json:"orderId"`
	OrderType             core.OrderType   `json:"ot"`
	Price                 core.NullFixed9  `json:"p"`
	Qty                   core.NullFixed9  `json:"q"`
	QuoteAvailableBalance core.NullFixed9  `json:"qab"`
	QuoteTotalBalance     core.NullFixed9  `json:"qtb"`
	StopPrice             core.NullFixed9  `json:"sp"`
	Status                core.OrderStatus `json:"st"`
	Time                  int64            `json:"t"`
	ExecInst              string           `json:"ei"`
}

// OrderUpdate is a private order channel update.
type OrderUpdate struct {
	AccountID string `json:"accountId"`
	// AccountCategory is "CASH" or "MARGIN".
	AccountCategory string     `json:"ac"`
	Data            OrderEvent `json:"data"`
}

// Closed is synthesized from the peer's close frame. It is the last item.
type Closed struct {
	Code   uint16
	Reason string
}

// MessageType returns the "m" tag the message is decoded from.
func (Ping) MessageType() string          { return "ping" }
func (Disconnected) MessageType() string  { return "disconnected" }
func (ErrorMessage) MessageType() string  { return "error" }
func (Connected) MessageType() string     { return "connected" }
func (Subscribed) MessageType() string    { return "sub" }
func (Unsubscribed) MessageType() string  { return "unsub" }
func (DepthUpdate) MessageType() string   { return "depth" }
func (DepthSnapshot) MessageType() string { return "depth-snapshot" }
func (BboUpdate) MessageType() string     { return "bbo" }
func (TradesUpdate) MessageType() string  { return "trades" }
func (BarUpdate) MessageType() string     { return "bar" }
func (RefPxUpdate) MessageType() string   { return "ref-px" }
func (OrderUpdate) MessageType() string   { return "order" }
func (Closed) MessageType() string        { return "closed" }

func (Ping) inbound()          {}
func (Disconnected) inbound()  {}
func (ErrorMessage) inbound()  {}
func (Connected) inbound()     {}
func (Subscribed) inbound()    {}
func (Unsubscribed) inbound()  {}
func (DepthUpdate) inbound()   {}
func (DepthSnapshot) inbound() {}
func (BboUpdate) inbound()     {}
func (TradesUpdate) inbound()  {}
func (BarUpdate) inbound()     {}
func (RefPxUpdate) inbound()   {}
func (OrderUpdate) inbound()   {}
func (Closed) inbound()        {}

// DecodeMessage decodes one text frame by its "m" tag. An unknown or
// missing tag, or a body that does not fit the tagged shape, is a decode
// error carrying the raw text.
func DecodeMessage(data []byte) (Message, error) {
	node, err := sonic.Get(data, "m")
	if err != nil {
		return nil, core.NewDecodeError(string(data), fmt.Errorf("missing message tag: %w", err))
	}
	tag, err := node.String()
	if err != nil {
		return nil, core.NewDecodeError(string(data), fmt.Errorf("message tag: %w", err))
	}

	switch tag {
	case "ping":
		return decodeAs[Ping](data)
	case "disconnected":
		return decodeAs[Disconnected](data)
	case "error":
		return decodeAs[ErrorMessage](data)
	case "connected":
		return decodeAs[Connected](data)
	case "sub":
		return decodeAs[Subscribed](data)
	case "unsub":
		return decodeAs[Unsubscribed](data)
	case "depth":
		return decodeAs[DepthUpdate](data)
	case "depth-snapshot":
		return decodeAs[DepthSnapshot](data)
	case "bbo":
		return decodeAs[BboUpdate](data)
	case "trades":
		return decodeAs[TradesUpdate](data)
	case "bar":
		return decodeAs[BarUpdate](data)
	case "ref-px":
		return decodeAs[RefPxUpdate](data)
	case "order":
		return decodeAs[OrderUpdate](data)
	default:
		return nil, core.NewDecodeError(string(data), fmt.Errorf("unknown message tag %q", tag))
	}
}

func decodeAs[T Message](data []byte) (Message, error) {
	var msg T
	if err := sonic.Unmarshal(data, &msg); err != nil {
		return nil, core.NewDecodeError(string(data), err)
	}
	return msg, nil
}
