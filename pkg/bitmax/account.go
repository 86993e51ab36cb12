package bitmax

import (
	"net/http"

	"bitmax/pkg/core"
)

// AccountInfo fetches the account id and group of the credential.
type AccountInfo struct{}

func (AccountInfo) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/info", NeedsAuth: true}
}

func (AccountInfo) decodes(*core.AccountInfo) {}

// Balance lists balances of one account.
type Balance struct {
	AccountType core.AccountType
	Asset       *string
	// ShowAll includes assets with a zero balance.
	ShowAll bool
}

func (Balance) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/balance", NeedsAuth: true, NeedsAccountGroup: true}
}

func (Balance) decodes(*[]core.Balance) {}

func (r Balance) Account() core.AccountType { return r.AccountType }

func (r Balance) Params() Params {
	p := Params{}.SetBool("showAll", r.ShowAll)
	setOpt(p, "asset", r.Asset, formatString)
	return p
}

// MarginRisk fetches the margin account risk profile.
type MarginRisk struct{}

func (MarginRisk) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/margin/risk", NeedsAuth: true, NeedsAccountGroup: true}
}

func (MarginRisk) decodes(*core.MarginRisk) {}

// SelfTransfer moves an asset between the cash and margin accounts.
type SelfTransfer struct {
	Amount      core.Fixed9      `json:"amount"`
	Asset       string           `json:"asset" validate:"required"`
	FromAccount core.AccountType `json:"fromAccount"`
	ToAccount   core.AccountType `json:"toAccount"`
}

func (SelfTransfer) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodPost, Path: "/transfer", NeedsAuth: true, NeedsAccountGroup: true}
}

func (SelfTransfer) decodes(*core.Empty) {}

func (r SelfTransfer) body(int64) any { return r }

// DepositAddress fetches the deposit addresses of one asset.
type DepositAddress struct {
	Asset      string `validate:"required"`
	Blockchain *string
}

func (DepositAddress) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/wallet/deposit/address", NeedsAuth: true}
}

func (DepositAddress) decodes(*core.DepositAddress) {}

func (r DepositAddress) Params() Params {
	p := Params{}.Set("asset", r.Asset)
	setOpt(p, "blockchain", r.Blockchain, formatString)
	return p
}

// TransactionHistory pages through deposits and withdrawals.
type TransactionHistory struct {
	Asset  *string
	TxType *core.TransactionType
	// Page starts at 1.
	Page     *uint32 `validate:"omitempty,min=1"`
	PageSize *uint32
}

func (TransactionHistory) Descriptor() Descriptor {
	return Descriptor{Method: http.MethodGet, Path: "/wallet/transactions", NeedsAuth: true}
}

func (TransactionHistory) decodes(*core.TransactionHistory) {}

func (r TransactionHistory) Params() Params {
	p := Params{}
	setOpt(p, "asset", r.Asset, formatString)
	optionalEnum(p, "txType", r.TxType)
	setOpt(p, "page", r.Page, formatUint)
	setOpt(p, "pageSize", r.PageSize, formatUint)
	return p
}
