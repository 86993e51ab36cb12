package bitmax

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"bitmax/internal/auth"
	httpClient "bitmax/internal/http"
	"bitmax/internal/keyring"
	"bitmax/internal/ratelimit"
	"bitmax/pkg/core"
)

// APIPrefix sits between the host, or account group, and every API path.
const APIPrefix = "/api/pro/v1"

// Descriptor is the static shape of a request type.
type Descriptor struct {
	Method string
	// Path is the bare API path such as "/order". It is also the signed path.
	Path              string
	NeedsAuth         bool
	NeedsAccountGroup bool
}

// Request binds a request value to the one response type R it decodes into.
// The set is closed: only request types in this package implement it.
type Request[R any] interface {
	Descriptor() Descriptor
	decodes(*R)
}

// Querier is implemented by GET requests that carry query parameters.
type Querier interface {
	Params() Params
}

// AccountScoped is implemented by requests that address one account, which
// adds a "/cash" or "/margin" segment before the API path.
type AccountScoped interface {
	Account() core.AccountType
}

// bodyEncoder is implemented by POST and DELETE requests. now fills a zero
// client timestamp.
type bodyEncoder interface {
	body(nowMillis int64) any
}

var validate = validator.New()

// Do sends req and decodes the response envelope into R.
//
// Errors are always *core.Error: auth problems before anything is sent,
// transport failures and non-2xx statuses, remote rejections carrying the
// envelope code, and decode failures carrying the raw body.
func Do[R any](ctx context.Context, c *Client, req Request[R]) (R, error) {
	var zero R
	desc := req.Descriptor()

	if err := validate.Struct(req); err != nil {
		return zero, core.NewValidationError(err)
	}

	var key *keyring.APIKey
	if desc.NeedsAuth || desc.NeedsAccountGroup {
		if c.keys == nil {
			return zero, core.NewAuthError(core.ErrNoCredentials)
		}
		key = c.keys.Current()
	}

	path, err := Endpoint(desc, req, key)
	if err != nil {
		return zero, err
	}

	now := c.now().UnixMilli()
	var opts []httpClient.RequestOption
	if desc.NeedsAuth {
		opts = append(opts, httpClient.WithHeaders(auth.Headers(key.PublicKey, key.Secret(), desc.Path, now)))
	}
	if q, ok := any(req).(Querier); ok {
		opts = append(opts, httpClient.WithQuery(q.Params().Values()))
	}
	if b, ok := any(req).(bodyEncoder); ok {
		opts = append(opts, httpClient.WithJSONBody(b.body(now)))
	}

	if err := c.limiter.Wait(ctx, rateClass(desc)); err != nil {
		return zero, core.NewTransportError(0, "", err)
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, desc.Method, path, opts...)
	if err != nil {
		if errors.Is(err, core.ErrClientClosed) {
			return zero, core.NewTransportError(0, "", err)
		}
		c.record(ctx, desc, start, core.NewTransportError(0, "", err))
		return zero, core.NewTransportError(0, "", err)
	}

	result, err := decodeResponse[R](resp.StatusCode(), resp.Bytes())
	c.record(ctx, desc, start, err)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", desc.Method).
			Str("path", desc.Path).
			Msg("request failed")
		return zero, err
	}
	return result, nil
}

// Endpoint renders the URL path for req, given the credential snapshot that
// will sign it. key may be nil for public requests.
func Endpoint(desc Descriptor, req any, key *keyring.APIKey) (string, error) {
	path := APIPrefix
	if desc.NeedsAccountGroup {
		if key == nil {
			return "", core.NewAuthError(core.ErrNoCredentials)
		}
		group, ok := key.AccountGroup()
		if !ok {
			return "", core.NewAuthError(core.ErrNoAccountGroup)
		}
		path = "/" + strconv.FormatUint(uint64(group), 10) + path
	}
	if scoped, ok := req.(AccountScoped); ok {
		path += "/" + scoped.Account().String()
	}
	return path + desc.Path, nil
}

func rateClass(desc Descriptor) ratelimit.Class {
	if desc.Method != http.MethodGet && (desc.Path == "/order" || desc.Path == "/order/all") {
		return ratelimit.ClassOrder
	}
	return ratelimit.ClassGeneral
}

func (c *Client) record(ctx context.Context, desc Descriptor, start time.Time, err error) {
	kind := ""
	if k, ok := core.KindOf(err); ok {
		kind = k.String()
	}
	c.metrics.RecordRequest(ctx, desc.Method, desc.Path, time.Since(start), kind)
}

var errMissingData = errors.New("envelope has no data")

// envelope is the wrapper around every REST response.
type envelope struct {
	Code    *uint32         `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Reason  string          `json:"reason"`
}

func decodeResponse[R any](status int, body []byte) (R, error) {
	var result R
	if status < 200 || status > 299 {
		return result, core.NewTransportError(status, string(body), nil)
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return result, core.NewDecodeError(string(body), err)
	}
	if env.Code == nil {
		return result, core.NewDecodeError(string(body), errors.New("envelope has no code"))
	}
	if *env.Code != 0 {
		msg := env.Message
		if msg == "" {
			msg = env.Reason
		}
		return result, core.NewRemoteError(*env.Code, msg, string(body))
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		// only requests answering core.Empty may leave data out
		if _, ok := any(&result).(*core.Empty); ok {
			return result, nil
		}
		return result, core.NewDecodeError(string(body), errMissingData)
	}
	if err := sonic.Unmarshal(data, &result); err != nil {
		return result, core.NewDecodeError(string(body), err)
	}
	return result, nil
}
