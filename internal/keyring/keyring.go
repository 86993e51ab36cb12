// Package keyring holds the API credential used to sign requests.
//
// The credential is immutable once published. Updating the account group
// publishes a copy, so a request that took a snapshot keeps a consistent view.
package keyring

import (
	"encoding/base64"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"bitmax/pkg/core"
)

// APIKey is one decoded credential snapshot.
type APIKey struct {
	PublicKey string
	secret    []byte
	group     uint32
	hasGroup  bool
}

// Secret returns the decoded private key bytes.
func (k *APIKey) Secret() []byte {
	return k.secret
}

// AccountGroup returns the account group and whether it is known.
func (k *APIKey) AccountGroup() (uint32, bool) {
	return k.group, k.hasGroup
}

// String masks the key so credentials never reach logs.
func (k *APIKey) String() string {
	return fmt.Sprintf("APIKey{%s}", mask(k.PublicKey))
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// KeyRing publishes the current credential snapshot.
type KeyRing struct {
	current atomic.Pointer[APIKey]
	logger  zerolog.Logger
}

// New decodes creds and returns a ring holding them.
// A private key that is not valid base64 is a parse error.
func New(creds *core.Credentials) (*KeyRing, error) {
	if creds == nil {
		return nil, core.NewAuthError(core.ErrNoCredentials)
	}
	secret, err := base64.StdEncoding.DecodeString(creds.PrivateKey)
	if err != nil {
		return nil, core.NewParseError("<redacted>", "private key is not valid base64")
	}

	key := &APIKey{PublicKey: creds.PublicKey, secret: secret}
	if creds.AccountGroup != nil {
		key.group = *creds.AccountGroup
		key.hasGroup = true
	}

	k := &KeyRing{logger: zerolog.Nop()}
	k.current.Store(key)
	return k, nil
}

// SetLogger configures the logger for the key ring.
func (k *KeyRing) SetLogger(logger zerolog.Logger) {
	k.logger = logger
}

// Current returns the snapshot in effect right now.
func (k *KeyRing) Current() *APIKey {
	return k.current.Load()
}

// SetAccountGroup publishes a copy of the credential carrying group.
func (k *KeyRing) SetAccountGroup(group uint32) {
	for {
		old := k.current.Load()
		next := *old
		next.group = group
		next.hasGroup = true
		if k.current.CompareAndSwap(old, &next) {
			k.logger.Info().
				Str("key", mask(old.PublicKey)).
				Uint32("account_group", group).
				Msg("account group updated")
			return
		}
	}
}
