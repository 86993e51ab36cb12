package bitmax

import (
	"net/http"

	"bitmax/pkg/core"
)

// Assets lists every asset on the exchange.
type Assets struct{}

func (Assets) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/assets"}
}

func (Assets) decodes(*[]core.Asset) {}

// Products lists every tradable product.
type Products struct{}

func (Products) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/products"}
}

func (Products) decodes(*[]core.Product) {}

// Ticker fetches the ticker of one symbol.
type Ticker struct {
	Symbol string `validate:"required"`
}

func (Ticker) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/ticker"}
}

func (Ticker) decodes(*core.Ticker) {}

func (r Ticker) Params() Params {
	return Params{}.Set("symbol", r.Symbol)
}

// Tickers fetches the tickers of several symbols.
type Tickers struct {
	Symbols []string `validate:"required,min=1,dive,required"`
}

func (Tickers) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/ticker"}
}

func (Tickers) decodes(*[]core.Ticker) {}

func (r Tickers) Params() Params {
	return Params{}.SetList("symbol", r.Symbols)
}

// AllTickers fetches the tickers of every symbol.
type AllTickers struct{}

func (AllTickers) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/ticker"}
}

func (AllTickers) decodes(*[]core.Ticker) {}

// BarhistInfo lists the supported bar intervals.
type BarhistInfo struct{}

func (BarhistInfo) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/barhist/info"}
}

func (BarhistInfo) decodes(*[]core.BarhistInfo) {}

// Barhist fetches bars for one symbol. From and To are unix milliseconds.
type Barhist struct {
	Symbol   string        `validate:"required"`
	Interval core.Interval `validate:"required"`
	From     *int64
	To       *int64
	// N caps the number of bars returned.
	N *uint32
}

func (Barhist) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/barhist"}
}

func (Barhist) decodes(*[]core.Barhist) {}

func (r Barhist) Params() Params {
	p := Params{}.
		Set("symbol", r.Symbol).
		Set("interval", r.Interval.String())
	setOpt(p, "from", r.From, formatInt)
	setOpt(p, "to", r.To, formatInt)
	setOpt(p, "n", r.N, formatUint)
	return p
}

// Depth fetches the order book of one symbol.
type Depth struct {
	Symbol string `validate:"required"`
}

func (Depth) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/depth"}
}

func (Depth) decodes(*core.OrderDepth) {}

func (r Depth) Params() Params {
	return Params{}.Set("symbol", r.Symbol)
}

// Trades fetches recent public trades of one symbol.
type Trades struct {
	Symbol string `validate:"required"`
	// N caps the number of trades; the exchange allows at most 100.
	N *uint32 `validate:"omitempty,max=100"`
}

func (Trades) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/trades"}
}

func (Trades) decodes(*core.MarketTrades) {}

func (r Trades) Params() Params {
	p := Params{}.Set("symbol", r.Symbol)
	setOpt(p, "n", r.N, formatUint)
	return p
}
