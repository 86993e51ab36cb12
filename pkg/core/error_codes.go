package core

import "errors"

// RemoteCode is a BitMax envelope error code.
type RemoteCode uint32

// Known remote codes. The exchange may send codes not listed here.
const (
	CodeInvalidHTTPInput      RemoteCode = 100001
	CodeDataNotAvailable      RemoteCode = 100002
	CodeKeyConflict           RemoteCode = 100003
	CodeInvalidRequestData    RemoteCode = 100004
	CodeInvalidWSRequestData  RemoteCode = 100005
	CodeInvalidArgument       RemoteCode = 100006
	CodeEncryptionError       RemoteCode = 100007
	CodeSymbolError           RemoteCode = 100008
	CodeAuthorizationNeeded   RemoteCode = 100009
	CodeInvalidOperation      RemoteCode = 100010
	CodeInvalidTimestamp      RemoteCode = 100011
	CodeInvalidStrFormat      RemoteCode = 100012
	CodeInvalidNumFormat      RemoteCode = 100013
	CodeUnknownError          RemoteCode = 100101
	CodeInvalidJSONFormat     RemoteCode = 150001
	CodeAuthenticationFailed  RemoteCode = 200001
	CodeTooManyAttempts       RemoteCode = 200002
	CodeAccountNotFound       RemoteCode = 200003
	CodeAccountNotSetup       RemoteCode = 200004
	CodePermissionDenied      RemoteCode = 200015
	CodeInvalidPrice          RemoteCode = 300001
	CodeInvalidQty            RemoteCode = 300002
	CodeInvalidSide           RemoteCode = 300003
	CodeInvalidNotional       RemoteCode = 300004
	CodeInvalidType           RemoteCode = 300005
	CodeInvalidOrderID        RemoteCode = 300006
	CodeInvalidTimeInForce    RemoteCode = 300007
	CodeInvalidOrderParameter RemoteCode = 300008
	CodeTradingViolation      RemoteCode = 300009
	CodeInvalidBalance        RemoteCode = 300011
	CodeInvalidProduct        RemoteCode = 300012
	CodeTradingRestricted     RemoteCode = 300020
	CodeTradingDisabled       RemoteCode = 300021
	CodeNoMarketPrice         RemoteCode = 300031
	CodeInvalidMarginBalance  RemoteCode = 310001
	CodeInvalidMarginAccount  RemoteCode = 310002
	CodeMarginTooRisky        RemoteCode = 310003
	CodeServerError           RemoteCode = 510001
)

var remoteCodeNames = map[RemoteCode]string{
	CodeInvalidHTTPInput:      "INVALID_HTTP_INPUT",
	CodeDataNotAvailable:      "DATA_NOT_AVAILABLE",
	CodeKeyConflict:           "KEY_CONFLICT",
	CodeInvalidRequestData:    "INVALID_REQUEST_DATA",
	CodeInvalidWSRequestData:  "INVALID_WS_REQUEST_DATA",
	CodeInvalidArgument:       "INVALID_ARGUMENT",
	CodeEncryptionError:       "ENCRYPTION_ERROR",
	CodeSymbolError:           "SYMBOL_ERROR",
	CodeAuthorizationNeeded:   "AUTHORIZATION_NEEDED",
	CodeInvalidOperation:      "INVALID_OPERATION",
	CodeInvalidTimestamp:      "INVALID_TIMESTAMP",
	CodeInvalidStrFormat:      "INVALID_STR_FORMAT",
	CodeInvalidNumFormat:      "INVALID_NUM_FORMAT",
	CodeUnknownError:          "UNKNOWN_ERROR",
	CodeInvalidJSONFormat:     "INVALID_JSON_FORMAT",
	CodeAuthenticationFailed:  "AUTHENTICATION_FAILED",
	CodeTooManyAttempts:       "TOO_MANY_ATTEMPTS",
	CodeAccountNotFound:       "ACCOUNT_NOT_FOUND",
	CodeAccountNotSetup:       "ACCOUNT_NOT_SETUP",
	CodePermissionDenied:      "PERMISSION_DENIED",
	CodeInvalidPrice:          "INVALID_PRICE",
	CodeInvalidQty:            "INVALID_QTY",
	CodeInvalidSide:           "INVALID_SIDE",
	CodeInvalidNotional:       "INVALID_NOTIONAL",
	CodeInvalidType:           "INVALID_TYPE",
	CodeInvalidOrderID:        "INVALID_ORDER_ID",
	CodeInvalidTimeInForce:    "INVALID_TIME_IN_FORCE",
	CodeInvalidOrderParameter: "INVALID_ORDER_PARAMETER",
	CodeTradingViolation:      "TRADING_VIOLATION",
	CodeInvalidBalance:        "INVALID_BALANCE",
	CodeInvalidProduct:        "INVALID_PRODUCT",
	CodeTradingRestricted:     "TRADING_RESTRICTED",
	CodeTradingDisabled:       "TRADING_DISABLED",
	CodeNoMarketPrice:         "NO_MARKET_PRICE",
	CodeInvalidMarginBalance:  "INVALID_MARGIN_BALANCE",
	CodeInvalidMarginAccount:  "INVALID_MARGIN_ACCOUNT",
	CodeMarginTooRisky:        "MARGIN_TOO_RISKY",
	CodeServerError:           "SERVER_ERROR",
}

// String returns the exchange name of the code, or "UNRECOGNIZED".
func (c RemoteCode) String() string {
	if name, ok := remoteCodeNames[c]; ok {
		return name
	}
	return "UNRECOGNIZED"
}

// IsRemoteCode checks whether err is a remote error carrying the given code.
func IsRemoteCode(err error, code RemoteCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindRemote && RemoteCode(e.Code) == code
	}
	return false
}
