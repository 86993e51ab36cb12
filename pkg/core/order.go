package core

// Order is the exchange view of one order.
type Order struct {
	OrderID      string      `json:"orderId"`
	Symbol       string      `json:"symbol"`
	Side         OrderSide   `json:"side"`
	OrderType    OrderType   `json:"orderType"`
	Status       OrderStatus `json:"status"`
	OrderQty     Fixed9      `json:"orderQty"`
	Price        NullFixed9  `json:"price"`
	StopPrice    NullFixed9  `json:"stopPrice"`
	AvgPx        NullFixed9  `json:"avgPx"`
	CumFilledQty Fixed9      `json:"cumFilledQty"`
	CumFee       Fixed9      `json:"cumFee"`
	FeeAsset     string      `json:"feeAsset"`
	ErrorCode    string      `json:"errorCode"`
	ExecInst     string      `json:"execInst"`
	SeqNum       uint64      `json:"seqNum"`
	LastExecTime int64       `json:"lastExecTime"`
}

// OrderAck identifies the order a place or cancel request acted on.
// OrderType is kept raw since cancel-all answers "NULL_VAL".
type OrderAck struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	OrderType string `json:"orderType"`
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp"`
}

// OrderActionResult is the shared shape of order action responses.
type OrderActionResult struct {
	// AccountCategory is "CASH" or "MARGIN".
	AccountCategory string   `json:"ac"`
	AccountID       string   `json:"accountId"`
	Action          string   `json:"action"`
	Status          string   `json:"status"`
	Info            OrderAck `json:"info"`
}

// PlaceOrderResult answers a place-order request.
type PlaceOrderResult = OrderActionResult

// CancelOrderResult answers a cancel-order request.
type CancelOrderResult = OrderActionResult

// CancelAllResult answers a cancel-all request.
type CancelAllResult = OrderActionResult

// OrderHistoryPage is one page of historical orders.
type OrderHistoryPage struct {
	Page     uint32  `json:"page"`
	PageSize uint32  `json:"pageSize"`
	Limit    uint32  `json:"limit"`
	HasNext  bool    `json:"hasNext"`
	Data     []Order `json:"data"`
}
