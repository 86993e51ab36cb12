// Package auth signs BitMax requests.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
)

// Header names carried by every authenticated request and stream handshake.
const (
	HeaderKey       = "x-auth-key"
	HeaderTimestamp = "x-auth-timestamp"
	HeaderSignature = "x-auth-signature"
)

// Prehash returns the signed text: "<tsMillis>+<path without leading slash>".
func Prehash(path string, tsMillis int64) string {
	return strconv.FormatInt(tsMillis, 10) + "+" + strings.TrimPrefix(path, "/")
}

// Sign returns the base64 encoded HMAC-SHA256 of the prehash keyed by secret.
// path is the bare API path such as "/order", never the prefixed URL path.
func Sign(secret []byte, path string, tsMillis int64) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(Prehash(path, tsMillis)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Headers returns the three auth headers for a request to path at tsMillis.
func Headers(publicKey string, secret []byte, path string, tsMillis int64) map[string]string {
	return map[string]string{
		HeaderKey:       publicKey,
		HeaderTimestamp: strconv.FormatInt(tsMillis, 10),
		HeaderSignature: Sign(secret, path, tsMillis),
	}
}
