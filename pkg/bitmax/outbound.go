package bitmax

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"bitmax/pkg/core"
)

// Action names a request made over the stream.
type Action string

const (
	ActionPlaceOrder          Action = "place-Order"
	ActionCancelOrder         Action = "cancel-Order"
	ActionCancelAll           Action = "cancel-All"
	ActionDepthSnapshot       Action = "depth-snapshot"
	ActionDepthSnapshotTop100 Action = "depth-snapshot-top100"
	ActionMarketTrades        Action = "market-trades"
	ActionBalance             Action = "balance"
	ActionOpenOrder           Action = "open-order"
	ActionMarginRisk          Action = "margin-risk"
)

// Outbound is a message the session can send. The set is closed.
type Outbound interface {
	Op() string
	outbound()
}

// Subscribe starts delivery of a channel.
type Subscribe struct {
	ID      string
	Channel Topic
}

// Unsubscribe stops delivery of a channel.
type Unsubscribe struct {
	ID      string
	Channel Topic
}

// RequestCommand asks the exchange for a one-off answer or action.
// Args is encoded as given; order actions take the same fields as the
// REST bodies. Account is omitted when nil.
type RequestCommand struct {
	Action  Action
	ID      string
	Account *core.AccountType
	Args    any
}

// Pong answers an exchange ping.
type Pong struct{}

// Op returns the "op" tag of the encoded command.
func (Subscribe) Op() string      { return "sub" }
func (Unsubscribe) Op() string    { return "unsub" }
func (RequestCommand) Op() string { return "req" }
func (Pong) Op() string           { return "pong" }

func (Subscribe) outbound()      {}
func (Unsubscribe) outbound()    {}
func (RequestCommand) outbound() {}
func (Pong) outbound()           {}

type channelCommand struct {
	Op      string `json:"op"`
	ID      string `json:"id,omitempty"`
	Channel Topic  `json:"ch"`
}

// MarshalJSON encodes {"op":"sub","id":...,"ch":...}, omitting an empty id.
func (s Subscribe) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(channelCommand{Op: s.Op(), ID: s.ID, Channel: s.Channel})
}

// MarshalJSON encodes {"op":"unsub","id":...,"ch":...}, omitting an empty id.
func (u Unsubscribe) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(channelCommand{Op: u.Op(), ID: u.ID, Channel: u.Channel})
}

// MarshalJSON encodes the req command. A nil account or nil args is left out.
func (r RequestCommand) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		Op      string            `json:"op"`
		Action  Action            `json:"action"`
		ID      string            `json:"id"`
		Account *core.AccountType `json:"account,omitempty"`
		Args    any               `json:"args,omitempty"`
	}{r.Op(), r.Action, r.ID, r.Account, r.Args})
}

// MarshalJSON encodes {"op":"pong"}.
func (p Pong) MarshalJSON() ([]byte, error) {
	return []byte(`{"op":"pong"}`), nil
}

// NewRequestID returns a random 32 character hex id, usable both as a
// stream request id and as a client order id.
func NewRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
