package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the client can report.
type ErrorKind int

// Error kinds map one-to-one onto the stage where a call failed.
const (
	// KindParse indicates malformed caller input such as a decimal or a key.
	KindParse ErrorKind = iota
	// KindAuth indicates missing or unusable credentials, or an unknown account group.
	KindAuth
	// KindTransport indicates a network failure or a non-2xx HTTP status.
	KindTransport
	// KindRemote indicates the exchange answered with a non-zero envelope code.
	KindRemote
	// KindDecode indicates a payload that does not match the expected shape.
	KindDecode
	// KindConnect indicates a failed streaming handshake.
	KindConnect
	// KindUnexpectedFrame indicates a binary or control frame on the stream.
	KindUnexpectedFrame
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "PARSE"
	case KindAuth:
		return "AUTH"
	case KindTransport:
		return "TRANSPORT"
	case KindRemote:
		return "REMOTE"
	case KindDecode:
		return "DECODE"
	case KindConnect:
		return "CONNECT"
	case KindUnexpectedFrame:
		return "UNEXPECTED_FRAME"
	default:
		return "UNKNOWN"
	}
}

// Sentinel errors for common error conditions.
var (
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrStreamClosed is returned by Receive once the stream has ended.
	ErrStreamClosed = errors.New("stream is closed")
	// ErrNotConnected is returned when sending on a socket that is gone.
	ErrNotConnected = errors.New("websocket not connected")
	// ErrNoCredentials is returned when an authenticated call has no credential.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrNoAccountGroup is returned when a group-scoped call runs before the group is known.
	ErrNoAccountGroup = errors.New("account group unknown")
)

// Error is the single error type returned by the client.
// Which fields are set depends on Kind.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind `json:"kind"`
	// Status is the HTTP status for transport failures.
	Status int `json:"status,omitempty"`
	// Code is the exchange envelope code for remote failures.
	Code uint32 `json:"code,omitempty"`
	// Message is a short human-readable description.
	Message string `json:"message"`
	// Raw holds the offending text: the response body, frame or input.
	Raw string `json:"raw,omitempty"`
	// Err is the underlying cause, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindRemote:
		return fmt.Sprintf("%s (%d/%s): %s", e.Kind, e.Code, RemoteCode(e.Code), e.Message)
	case KindTransport:
		if e.Status != 0 {
			return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, so errors.Is reaches the sentinels.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewParseError reports malformed input text.
func NewParseError(input, message string) *Error {
	return &Error{Kind: KindParse, Message: message, Raw: input}
}

// NewValidationError reports a request value that fails field validation.
func NewValidationError(err error) *Error {
	return &Error{Kind: KindParse, Message: "invalid request", Err: err}
}

// NewEncodeError reports an outbound value that could not be serialized.
func NewEncodeError(what string, err error) *Error {
	return &Error{Kind: KindParse, Message: "encode " + what, Err: err}
}

// NewAuthError reports a credential problem.
func NewAuthError(err error) *Error {
	return &Error{Kind: KindAuth, Message: "authentication unavailable", Err: err}
}

// NewTransportError reports a network failure (status 0) or a non-2xx response.
func NewTransportError(status int, body string, err error) *Error {
	msg := "request failed"
	if status != 0 {
		msg = fmt.Sprintf("unexpected http status %d", status)
	}
	return &Error{Kind: KindTransport, Status: status, Message: msg, Raw: body, Err: err}
}

// NewRemoteError reports a non-zero envelope code with the full response text.
func NewRemoteError(code uint32, message, raw string) *Error {
	if message == "" {
		message = "exchange rejected request"
	}
	return &Error{Kind: KindRemote, Code: code, Message: message, Raw: raw}
}

// NewDecodeError reports a payload that failed to decode.
func NewDecodeError(raw string, err error) *Error {
	return &Error{Kind: KindDecode, Message: "decode payload", Raw: raw, Err: err}
}

// NewConnectError reports a failed streaming handshake.
func NewConnectError(url string, err error) *Error {
	return &Error{Kind: KindConnect, Message: "connect " + url, Err: err}
}

// NewUnexpectedFrameError reports a frame type the stream does not accept.
func NewUnexpectedFrameError(frame string) *Error {
	return &Error{Kind: KindUnexpectedFrame, Message: "unexpected " + frame + " frame"}
}

// KindOf returns the kind of err and whether err is a client error at all.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func isKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsParseError returns true if the error came from malformed input.
func IsParseError(err error) bool { return isKind(err, KindParse) }

// IsAuthError returns true if the error is a credential or account-group problem.
// Auth errors are not retryable without caller action.
func IsAuthError(err error) bool { return isKind(err, KindAuth) }

// IsTransportError returns true for network failures and non-2xx responses.
// Transport errors are typically retryable.
func IsTransportError(err error) bool { return isKind(err, KindTransport) }

// IsRemoteError returns true if the exchange rejected the request.
func IsRemoteError(err error) bool { return isKind(err, KindRemote) }

// IsDecodeError returns true if a payload did not match its expected shape.
func IsDecodeError(err error) bool { return isKind(err, KindDecode) }

// IsConnectError returns true if a streaming handshake failed.
func IsConnectError(err error) bool { return isKind(err, KindConnect) }

// IsUnexpectedFrameError returns true for binary or control frames on the stream.
func IsUnexpectedFrameError(err error) bool { return isKind(err, KindUnexpectedFrame) }
