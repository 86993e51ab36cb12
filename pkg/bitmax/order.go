package bitmax

import (
	"net/http"

	"bitmax/pkg/core"
)

// PlaceOrder submits a new order. A zero Time is filled with the signing
// timestamp. ID is an optional client order id of at most 32 characters.
type PlaceOrder struct {
	AccountType core.AccountType  `json:"-"`
	Symbol      string            `json:"symbol" validate:"required"`
	Time        int64             `json:"time"`
	OrderQty    core.Fixed9       `json:"orderQty"`
	OrderType   core.OrderType    `json:"orderType"`
	Side        core.OrderSide    `json:"side"`
	ID          string            `json:"id,omitempty" validate:"omitempty,max=32,alphanum"`
	OrderPrice  *core.Fixed9      `json:"orderPrice,omitempty"`
	StopPrice   *core.Fixed9      `json:"stopPrice,omitempty"`
	PostOnly    *bool             `json:"postOnly,omitempty"`
	TimeInForce *core.TimeInForce `json:"timeInForce,omitempty"`
	RespInst    *core.RespInst    `json:"respInst,omitempty"`
}

func (PlaceOrder) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodPost, Path: "/order", NeedsAuth: true, NeedsAccountGroup: true}
}

func (PlaceOrder) decodes(*core.PlaceOrderResult) {}

func (r PlaceOrder) Account() core.AccountType { return r.AccountType }

func (r PlaceOrder) body(now int64) any {
	if r.Time == 0 {
		r.Time = now
	}
	return r
}

// CancelOrder cancels one open order by its exchange order id.
type CancelOrder struct {
	AccountType core.AccountType `json:"-"`
	ID          string           `json:"id,omitempty" validate:"omitempty,max=32,alphanum"`
	OrderID     string           `json:"orderId" validate:"required"`
	Symbol      string           `json:"symbol" validate:"required"`
	Time        int64            `json:"time"`
}

func (CancelOrder) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodDelete, Path: "/order", NeedsAuth: true, NeedsAccountGroup: true}
}

func (CancelOrder) decodes(*core.CancelOrderResult) {}

func (r CancelOrder) Account() core.AccountType { return r.AccountType }

func (r CancelOrder) body(now int64) any {
	if r.Time == 0 {
		r.Time = now
	}
	return r
}

// CancelAllOrders cancels every open order of an account, optionally for one symbol.
type CancelAllOrders struct {
	AccountType core.AccountType `json:"-"`
	Symbol      *string          `json:"symbol,omitempty"`
}

func (CancelAllOrders) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodDelete, Path: "/order/all", NeedsAuth: true, NeedsAccountGroup: true}
}

func (CancelAllOrders) decodes(*core.CancelAllResult) {}

func (r CancelAllOrders) Account() core.AccountType { return r.AccountType }

func (r CancelAllOrders) body(int64) any { return r }

// OrderStatus fetches one order.
type OrderStatus struct {
	AccountType core.AccountType
	OrderID     string `validate:"required"`
}

func (OrderStatus) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/order/status", NeedsAuth: true, NeedsAccountGroup: true}
}

func (OrderStatus) decodes(*core.Order) {}

func (r OrderStatus) Account() core.AccountType { return r.AccountType }

func (r OrderStatus) Params() Params {
	return Params{}.Set("orderId", r.OrderID)
}

// OrdersStatus fetches several orders at once.
type OrdersStatus struct {
	AccountType core.AccountType
	OrderIDs    []string `validate:"required,min=1,dive,required"`
}

func (OrdersStatus) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/order/status", NeedsAuth: true, NeedsAccountGroup: true}
}

func (OrdersStatus) decodes(*[]core.Order) {}

func (r OrdersStatus) Account() core.AccountType { return r.AccountType }

func (r OrdersStatus) Params() Params {
	return Params{}.SetList("orderId", r.OrderIDs)
}

// OpenOrders lists the open orders of an account.
type OpenOrders struct {
	AccountType core.AccountType
	Symbol      *string
}

func (OpenOrders) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/order/open", NeedsAuth: true, NeedsAccountGroup: true}
}

func (OpenOrders) decodes(*[]core.Order) {}

func (r OpenOrders) Account() core.AccountType { return r.AccountType }

func (r OpenOrders) Params() Params {
	return setOpt(Params{}, "symbol", r.Symbol, formatString)
}

// OrderHistoryCurrent lists recent orders kept in the exchange's hot store.
type OrderHistoryCurrent struct {
	AccountType  core.AccountType
	N            *uint32
	Symbol       *string
	ExecutedOnly bool
}

func (OrderHistoryCurrent) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/order/hist/current", NeedsAuth: true, NeedsAccountGroup: true}
}

func (OrderHistoryCurrent) decodes(*[]core.Order) {}

func (r OrderHistoryCurrent) Account() core.AccountType { return r.AccountType }

func (r OrderHistoryCurrent) Params() Params {
	p := Params{}.SetBool("executedOnly", r.ExecutedOnly)
	setOpt(p, "n", r.N, formatUint)
	setOpt(p, "symbol", r.Symbol, formatString)
	return p
}

// OrderHistory pages through historical orders. The account is sent as the
// category parameter rather than as a path segment. Times are unix milliseconds.
type OrderHistory struct {
	Category  core.AccountType
	Symbol    *string
	OrderType *core.OrderType
	Side      *core.OrderSide
	Status    *core.OrderStatus
	StartTime *int64
	EndTime   *int64
	Page      *uint32 `validate:"omitempty,min=1"`
	PageSize  *uint32
}

func (OrderHistory) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/order/hist", NeedsAuth: true, NeedsAccountGroup: true}
}

func (OrderHistory) decodes(*core.OrderHistoryPage) {}

func (r OrderHistory) Params() Params {
	p := Params{}.Set("category", r.Category.String())
	setOpt(p, "symbol", r.Symbol, formatString)
	optionalEnum(p, "orderType", r.OrderType)
	optionalEnum(p, "side", r.Side)
	optionalEnum(p, "status", r.Status)
	setOpt(p, "startTime", r.StartTime, formatInt)
	setOpt(p, "endTime", r.EndTime, formatInt)
	setOpt(p, "page", r.Page, formatUint)
	setOpt(p, "pageSize", r.PageSize, formatUint)
	return p
}
