package bitmax

import (
	"net/url"
	"strconv"
	"strings"
)

// Params collects query parameters for a GET request.
// Absent optional fields are simply never added.
type Params map[string]string

// Set adds a required string parameter.
func (p Params) Set(key, value string) Params {
	p[key] = value
	return p
}

// SetBool adds a boolean as "true" or "false".
func (p Params) SetBool(key string, value bool) Params {
	p[key] = strconv.FormatBool(value)
	return p
}

// SetList adds values joined by commas. An empty list adds nothing.
func (p Params) SetList(key string, values []string) Params {
	if len(values) > 0 {
		p[key] = strings.Join(values, ",")
	}
	return p
}

// Values converts the parameters for the transport.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values
}

// setOpt adds key when v is present.
func setOpt[T any](p Params, key string, v *T, format func(T) string) Params {
	if v != nil {
		p[key] = format(*v)
	}
	return p
}

func formatString(s string) string { return s }

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }

func formatUint(n uint32) string { return strconv.FormatUint(uint64(n), 10) }

func formatStringer[T interface{ String() string }](v T) string { return v.String() }

// optionalEnum adds an enum field by its wire name when present.
func optionalEnum[T interface{ String() string }](p Params, key string, v *T) Params {
	return setOpt(p, key, v, formatStringer[T])
}

// Ptr returns a pointer to v, for filling optional request fields.
func Ptr[T any](v T) *T {
	return &v
}
