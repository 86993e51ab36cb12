package bitmax

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"bitmax/pkg/core"
)

// TopicKind names a stream channel.
type TopicKind int

const (
	TopicDepth TopicKind = iota
	TopicBbo
	TopicTrades
	TopicBar
	TopicRefPx
	// TopicOrder is the private order and balance channel of one account.
	TopicOrder
)

var topicKindNames = [...]string{"depth", "bbo", "trades", "bar", "ref-px", "order"}

// String returns the channel prefix, such as "ref-px".
func (k TopicKind) String() string {
	if k < 0 || int(k) >= len(topicKindNames) {
		return "unknown"
	}
	return topicKindNames[k]
}

// Topic is a subscribable channel. Symbol is used by market topics,
// Interval by bar topics and Account by the order topic.
type Topic struct {
	Kind     TopicKind
	Symbol   string
	Interval core.Interval
	Account  core.AccountType
}

// DepthTopic is the incremental order book channel of symbol.
func DepthTopic(symbol string) Topic { return Topic{Kind: TopicDepth, Symbol: symbol} }

// BboTopic is the best bid and offer channel of symbol.
func BboTopic(symbol string) Topic { return Topic{Kind: TopicBbo, Symbol: symbol} }

// TradesTopic is the public trades channel of symbol.
func TradesTopic(symbol string) Topic { return Topic{Kind: TopicTrades, Symbol: symbol} }

// RefPxTopic is the reference price channel of an asset.
func RefPxTopic(symbol string) Topic { return Topic{Kind: TopicRefPx, Symbol: symbol} }

// BarTopic is the candle channel of symbol at the given interval.
func BarTopic(interval core.Interval, symbol string) Topic {
	return Topic{Kind: TopicBar, Symbol: symbol, Interval: interval}
}

// OrderTopic is the private order and balance channel of account. It needs
// an authenticated session.
func OrderTopic(account core.AccountType) Topic {
	return Topic{Kind: TopicOrder, Account: account}
}

// String renders the channel name, e.g. "depth:BTC/USDT" or "bar:1:BTC/USDT".
func (t Topic) String() string {
	switch t.Kind {
	case TopicBar:
		return "bar:" + string(t.Interval) + ":" + t.Symbol
	case TopicOrder:
		return "order:" + t.Account.String()
	default:
		return t.Kind.String() + ":" + t.Symbol
	}
}

// MarshalJSON encodes the topic as its channel string.
func (t Topic) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(t.String())
}

// UnmarshalJSON decodes a channel string with ParseTopic.
func (t *Topic) UnmarshalJSON(data []byte) error {
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTopic(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTopic reverses Topic.String, so sub and unsub acks can be matched to
// the topic that was requested.
func ParseTopic(s string) (Topic, error) {
	name, rest, ok := strings.Cut(s, ":")
	if !ok || rest == "" {
		return Topic{}, core.NewParseError(s, "topic has no argument")
	}

	switch name {
	case "depth":
		return DepthTopic(rest), nil
	case "bbo":
		return BboTopic(rest), nil
	case "trades":
		return TradesTopic(rest), nil
	case "ref-px":
		return RefPxTopic(rest), nil
	case "bar":
		interval, symbol, ok := strings.Cut(rest, ":")
		if !ok || symbol == "" || !core.Interval(interval).IsValid() {
			return Topic{}, core.NewParseError(s, "bar topic needs a valid interval and symbol")
		}
		return BarTopic(core.Interval(interval), symbol), nil
	case "order":
		var account core.AccountType
		if err := account.UnmarshalJSON([]byte(`"` + rest + `"`)); err != nil {
			return Topic{}, core.NewParseError(s, fmt.Sprintf("unknown account %q", rest))
		}
		return OrderTopic(account), nil
	default:
		return Topic{}, core.NewParseError(s, fmt.Sprintf("unknown channel %q", name))
	}
}
