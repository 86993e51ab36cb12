package core

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

func encodeEnum(name string) ([]byte, error) {
	return []byte(`"` + name + `"`), nil
}

// decodeEnum matches a JSON string against names case-insensitively and returns its index.
func decodeEnum(kind string, data []byte, names []string) (int, error) {
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return 0, fmt.Errorf("%s: expected string, got %s", kind, string(data))
	}
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown value %q", kind, s)
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// AccountType selects the cash or margin account and the matching URL segment.
type AccountType int

const (
	// AccountCash is the spot trading account.
	AccountCash AccountType = iota
	// AccountMargin is the margin trading account.
	AccountMargin
)

var accountTypeNames = []string{"cash", "margin"}

// String returns "cash" or "margin".
func (a AccountType) String() string { return enumName(accountTypeNames, int(a)) }

// MarshalJSON implements json.Marshaler for AccountType.
func (a AccountType) MarshalJSON() ([]byte, error) { return encodeEnum(a.String()) }

// UnmarshalJSON implements json.Unmarshaler for AccountType.
// Stream events send upper case ("CASH"), which is accepted.
func (a *AccountType) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("account type", data, accountTypeNames)
	if err != nil {
		return err
	}
	*a = AccountType(i)
	return nil
}

// AssetStatus reports which wallet operations an asset allows.
type AssetStatus int

const (
	AssetNormal AssetStatus = iota
	AssetNoDeposit
	AssetNoWithdraw
	AssetNoTransaction
)

var assetStatusNames = []string{"Normal", "NoDeposit", "NoWithdraw", "NoTransaction"}

// String returns the wire name, such as "Normal" or "NoDeposit".
func (s AssetStatus) String() string { return enumName(assetStatusNames, int(s)) }

// MarshalJSON implements json.Marshaler for AssetStatus.
func (s AssetStatus) MarshalJSON() ([]byte, error) { return encodeEnum(s.String()) }

// UnmarshalJSON implements json.Unmarshaler for AssetStatus.
func (s *AssetStatus) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("asset status", data, assetStatusNames)
	if err != nil {
		return err
	}
	*s = AssetStatus(i)
	return nil
}

// CommissionType says which side of a trade commission is charged in.
type CommissionType int

const (
	CommissionBase CommissionType = iota
	CommissionQuote
	CommissionReceived
)

var commissionTypeNames = []string{"Base", "Quote", "Received"}

// String returns "Base", "Quote" or "Received".
func (c CommissionType) String() string { return enumName(commissionTypeNames, int(c)) }

// MarshalJSON implements json.Marshaler for CommissionType.
func (c CommissionType) MarshalJSON() ([]byte, error) { return encodeEnum(c.String()) }

// UnmarshalJSON implements json.Unmarshaler for CommissionType.
func (c *CommissionType) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("commission type", data, commissionTypeNames)
	if err != nil {
		return err
	}
	*c = CommissionType(i)
	return nil
}

// TickerType distinguishes spot and derivatives tickers.
type TickerType int

const (
	TickerSpot TickerType = iota
	TickerDerivatives
)

var tickerTypeNames = []string{"spot", "derivatives"}

// String returns "spot" or "derivatives".
func (t TickerType) String() string { return enumName(tickerTypeNames, int(t)) }

// MarshalJSON implements json.Marshaler for TickerType.
func (t TickerType) MarshalJSON() ([]byte, error) { return encodeEnum(t.String()) }

// UnmarshalJSON implements json.Unmarshaler for TickerType.
func (t *TickerType) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("ticker type", data, tickerTypeNames)
	if err != nil {
		return err
	}
	*t = TickerType(i)
	return nil
}

// Interval is a bar width. The wire value is used as is.
type Interval string

// Supported bar intervals.
const (
	Interval1m  Interval = "1"
	Interval5m  Interval = "5"
	Interval15m Interval = "15"
	Interval30m Interval = "30"
	Interval1h  Interval = "60"
	Interval2h  Interval = "120"
	Interval4h  Interval = "240"
	Interval6h  Interval = "360"
	Interval12h Interval = "720"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
	Interval1M  Interval = "1m"
)

// Intervals lists every supported interval from shortest to longest.
var Intervals = []Interval{
	Interval1m, Interval5m, Interval15m, Interval30m, Interval1h, Interval2h,
	Interval4h, Interval6h, Interval12h, Interval1d, Interval1w, Interval1M,
}

// IsValid reports whether i is one of the supported intervals.
func (i Interval) IsValid() bool {
	for _, v := range Intervals {
		if v == i {
			return true
		}
	}
	return false
}

// String returns the wire value, such as "60" or "1d".
func (i Interval) String() string { return string(i) }

// UnmarshalJSON implements json.Unmarshaler for Interval.
func (i *Interval) UnmarshalJSON(data []byte) error {
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("interval: expected string, got %s", string(data))
	}
	if !Interval(s).IsValid() {
		return fmt.Errorf("interval: unknown value %q", s)
	}
	*i = Interval(s)
	return nil
}

// OrderSide represents the direction of an order.
type OrderSide int

const (
	SideBuy OrderSide = iota
	SideSell
)

var orderSideNames = []string{"buy", "sell"}

// String returns "buy" or "sell".
func (s OrderSide) String() string { return enumName(orderSideNames, int(s)) }

// MarshalJSON implements json.Marshaler for OrderSide.
func (s OrderSide) MarshalJSON() ([]byte, error) { return encodeEnum(s.String()) }

// UnmarshalJSON implements json.Unmarshaler for OrderSide.
// Responses use "Buy"/"Sell", which is accepted.
func (s *OrderSide) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("order side", data, orderSideNames)
	if err != nil {
		return err
	}
	*s = OrderSide(i)
	return nil
}

// OrderType represents how an order is executed.
type OrderType int

const (
	TypeMarket OrderType = iota
	TypeLimit
	TypeStopMarket
	TypeStopLimit
)

var orderTypeNames = []string{"market", "limit", "stop_market", "stop_limit"}

// String returns the request form, such as "stop_limit".
func (t OrderType) String() string { return enumName(orderTypeNames, int(t)) }

// MarshalJSON implements json.Marshaler for OrderType.
func (t OrderType) MarshalJSON() ([]byte, error) { return encodeEnum(t.String()) }

// UnmarshalJSON accepts both the request form ("stop_limit") and the
// response form ("StopLimit").
func (t *OrderType) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("order type", bytesWithoutUnderscore(data), []string{"market", "limit", "stopmarket", "stoplimit"})
	if err != nil {
		return err
	}
	*t = OrderType(i)
	return nil
}

func bytesWithoutUnderscore(data []byte) []byte {
	return []byte(strings.ReplaceAll(string(data), "_", ""))
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus int

const (
	StatusPendingNew OrderStatus = iota
	StatusNew
	StatusPartiallyFilled
	StatusFilled
	StatusCanceled
	StatusRejected
)

var orderStatusNames = []string{"PendingNew", "New", "PartiallyFilled", "Filled", "Canceled", "Rejected"}

// String returns the wire name, such as "PartiallyFilled".
func (s OrderStatus) String() string { return enumName(orderStatusNames, int(s)) }

// IsTerminal returns true if the order can no longer change.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFilled || s == StatusCanceled || s == StatusRejected
}

// MarshalJSON implements json.Marshaler for OrderStatus.
func (s OrderStatus) MarshalJSON() ([]byte, error) { return encodeEnum(s.String()) }

// UnmarshalJSON implements json.Unmarshaler for OrderStatus.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("order status", data, orderStatusNames)
	if err != nil {
		return err
	}
	*s = OrderStatus(i)
	return nil
}

// TimeInForce controls how long an order stays on the book.
type TimeInForce int

const (
	GoodTillCanceled TimeInForce = iota
	ImmediateOrCancel
	FillOrKill
)

var timeInForceNames = []string{"GTC", "IOC", "FOK"}

// String returns "GTC", "IOC" or "FOK".
func (t TimeInForce) String() string { return enumName(timeInForceNames, int(t)) }

// MarshalJSON implements json.Marshaler for TimeInForce.
func (t TimeInForce) MarshalJSON() ([]byte, error) { return encodeEnum(t.String()) }

// UnmarshalJSON implements json.Unmarshaler for TimeInForce.
func (t *TimeInForce) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("time in force", data, timeInForceNames)
	if err != nil {
		return err
	}
	*t = TimeInForce(i)
	return nil
}

// RespInst selects when the exchange answers a place-order request.
type RespInst int

const (
	// RespAck answers once the order is received.
	RespAck RespInst = iota
	// RespAccept answers once the order is accepted by the matching engine.
	RespAccept
	// RespDone answers once the order is filled or canceled.
	RespDone
)

var respInstNames = []string{"ACK", "ACCEPT", "DONE"}

// String returns "ACK", "ACCEPT" or "DONE".
func (r RespInst) String() string { return enumName(respInstNames, int(r)) }

// MarshalJSON implements json.Marshaler for RespInst.
func (r RespInst) MarshalJSON() ([]byte, error) { return encodeEnum(r.String()) }

// UnmarshalJSON implements json.Unmarshaler for RespInst.
func (r *RespInst) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("resp inst", data, respInstNames)
	if err != nil {
		return err
	}
	*r = RespInst(i)
	return nil
}

// TransactionType filters wallet history.
type TransactionType int

const (
	TxDeposit TransactionType = iota
	TxWithdrawal
)

var transactionTypeNames = []string{"deposit", "withdrawal"}

// String returns "deposit" or "withdrawal".
func (t TransactionType) String() string { return enumName(transactionTypeNames, int(t)) }

// MarshalJSON implements json.Marshaler for TransactionType.
func (t TransactionType) MarshalJSON() ([]byte, error) { return encodeEnum(t.String()) }

// UnmarshalJSON implements json.Unmarshaler for TransactionType.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum("transaction type", data, transactionTypeNames)
	if err != nil {
		return err
	}
	*t = TransactionType(i)
	return nil
}
