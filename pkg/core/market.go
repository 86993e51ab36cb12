package core

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// PriceQty is one price level: a price and the quantity resting at it.
// On the wire it is a two element array of decimal strings.
type PriceQty struct {
	Price Fixed9
	Qty   Fixed9
}

// MarshalJSON encodes the level as ["price","qty"].
func (p PriceQty) MarshalJSON() ([]byte, error) {
	return sonic.Marshal([2]Fixed9{p.Price, p.Qty})
}

// UnmarshalJSON rejects arrays that are not exactly two decimals long.
func (p *PriceQty) UnmarshalJSON(data []byte) error {
	var pair []Fixed9
	if err := sonic.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("price level: expected 2 elements, got %d", len(pair))
	}
	p.Price, p.Qty = pair[0], pair[1]
	return nil
}

// Asset describes a tradable or depositable asset.
type Asset struct {
	AssetCode        string      `json:"assetCode"`
	AssetName        string      `json:"assetName"`
	MinWithdrawalAmt float64     `json:"minWithdrawalAmt,string"`
	WithdrawalFee    float64     `json:"withdrawalFee,string"`
	PrecisionScale   uint32      `json:"precisionScale"`
	NativeScale      uint32      `json:"nativeScale"`
	Status           AssetStatus `json:"status"`
}

// Product describes a trading pair and its limits.
type Product struct {
	Symbol                string         `json:"symbol"`
	BaseAsset             string         `json:"baseAsset"`
	QuoteAsset            string         `json:"quoteAsset"`
	MinNotional           Fixed9         `json:"minNotional"`
	MaxNotional           Fixed9         `json:"maxNotional"`
	TickSize              Fixed9         `json:"tickSize"`
	LotSize               Fixed9         `json:"lotSize"`
	MarginTradable        bool           `json:"marginTradable"`
	CommissionType        CommissionType `json:"commissionType"`
	CommissionReserveRate Fixed9         `json:"commissionReserveRate"`
}

// Ticker is a 24h summary with the current best bid and ask.
type Ticker struct {
	Symbol string     `json:"symbol"`
	Open   Fixed9     `json:"open"`
	Close  Fixed9     `json:"close"`
	High   Fixed9     `json:"high"`
	Low    Fixed9     `json:"low"`
	Volume float64    `json:"volume,string"`
	Ask    PriceQty   `json:"ask"`
	Bid    PriceQty   `json:"bid"`
	Type   TickerType `json:"type"`
}

// BarhistInfo lists a supported bar interval. The one-month interval resets
// at the start of each month, so its IntervalInMillis is indicative only.
type BarhistInfo struct {
	Name             Interval `json:"name"`
	IntervalInMillis uint64   `json:"intervalInMillis"`
}

// Bar is one OHLCV candle.
type Bar struct {
	Interval  Interval `json:"i"`
	Timestamp int64    `json:"ts"`
	Open      Fixed9   `json:"o"`
	Close     Fixed9   `json:"c"`
	High      Fixed9   `json:"h"`
	Low       Fixed9   `json:"l"`
	Volume    float64  `json:"v,string"`
}

// Barhist is one historical bar as returned by the bar history endpoint.
type Barhist struct {
	Symbol      string `json:"s"`
	MessageType string `json:"m"`
	Data        Bar    `json:"data"`
}

// DepthData holds both sides of the book at a sequence number.
type DepthData struct {
	Seqnum uint64     `json:"seqnum"`
	Ts     int64      `json:"ts"`
	Asks   []PriceQty `json:"asks"`
	Bids   []PriceQty `json:"bids"`
}

// OrderDepth is a full order book snapshot.
type OrderDepth struct {
	Symbol      string    `json:"symbol"`
	MessageType string    `json:"m"`
	Data        DepthData `json:"data"`
}

// Trade is one public market trade.
type Trade struct {
	Seqnum       uint64 `json:"seqnum"`
	Price        Fixed9 `json:"p"`
	Qty          Fixed9 `json:"q"`
	Ts           int64  `json:"ts"`
	IsBuyerMaker bool   `json:"bm"`
}

// MarketTrades is a batch of recent public trades for one symbol.
type MarketTrades struct {
	Symbol      string  `json:"symbol"`
	MessageType string  `json:"m"`
	Data        []Trade `json:"data"`
}
