package core

// AccountInfo is the authenticated user's profile. AccountGroup selects the
// URL prefix for every group-scoped request.
type AccountInfo struct {
	AccountGroup       uint32   `json:"accountGroup"`
	Email              string   `json:"email"`
	CashAccount        []string `json:"cashAccount"`
	MarginAccount      []string `json:"marginAccount"`
	FuturesAccount     []string `json:"futuresAccount"`
	TradePermission    bool     `json:"tradePermission"`
	TransferPermission bool     `json:"transferPermission"`
	ViewPermission     bool     `json:"viewPermission"`
	UserUID            string   `json:"userUID"`
}

// Balance is the holding of one asset in one account.
// Borrowed and Interest are only sent for margin accounts.
type Balance struct {
	Asset            string     `json:"asset"`
	TotalBalance     Fixed9     `json:"totalBalance"`
	AvailableBalance Fixed9     `json:"availableBalance"`
	Borrowed         NullFixed9 `json:"borrowed"`
	Interest         NullFixed9 `json:"interest"`
}

// MarginRisk summarizes the margin account. Balances are in USDT.
type MarginRisk struct {
	MaxLeverage      float64 `json:"accountMaxLeverage,string"`
	AvailableBalance Fixed9  `json:"availableBalanceInUSDT"`
	TotalBalance     Fixed9  `json:"totalBalanceInUSDT"`
	TotalBorrowed    Fixed9  `json:"totalBorrowedInUSDT"`
	TotalInterest    Fixed9  `json:"totalInterestInUSDT"`
	NetBalance       Fixed9  `json:"netBalanceInUSDT"`
	PointsBalance    float64 `json:"pointsBalance,string"`
	CurrentLeverage  float64 `json:"currentLeverage,string"`
	Cushion          float64 `json:"cushion,string"`
}

// AddressInfo is one deposit address on one chain.
type AddressInfo struct {
	Address    string `json:"address"`
	Blockchain string `json:"blockchain"`
	DestTag    string `json:"destTag"`
}

// DepositAddress lists the deposit addresses of an asset.
type DepositAddress struct {
	Asset     string        `json:"asset"`
	AssetName string        `json:"assetName"`
	Address   []AddressInfo `json:"address"`
}

// Transaction is one wallet deposit or withdrawal.
type Transaction struct {
	RequestID            string          `json:"requestId"`
	Time                 int64           `json:"time"`
	Asset                string          `json:"asset"`
	TransactionType      TransactionType `json:"transactionType"`
	Amount               Fixed9          `json:"amount"`
	Commission           Fixed9          `json:"commission"`
	NetworkTransactionID string          `json:"networkTransactionId"`
	Status               string          `json:"status"`
	NumConfirmations     int             `json:"numConfirmations"`
	NumConfirmed         int             `json:"numConfirmed"`
	DestAddress          AddressInfo     `json:"destAddress"`
}

// TransactionHistory is one page of wallet transactions.
type TransactionHistory struct {
	Data     []Transaction `json:"data"`
	HasNext  bool          `json:"hasNext"`
	Page     uint32        `json:"page"`
	PageSize uint32        `json:"pageSize"`
}

// Empty is the response of requests whose data carries nothing of interest.
type Empty struct{}
