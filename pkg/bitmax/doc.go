// Package bitmax is a typed client for the BitMax REST and streaming APIs.
//
// REST calls are request values sent with Do. Each request type decodes into
// exactly one response type, so the compiler checks the pairing:
//
//	client, err := bitmax.New(core.DefaultConfig())
//	ticker, err := bitmax.Do(ctx, client, bitmax.Ticker{Symbol: "BTC/USDT"})
//
// Account requests need credentials in the config and, for most of them, the
// account group. DiscoverAccountGroup fetches and stores it.
//
// Streaming sessions are opened with Connect. A Session is both a Receiver
// and a Sender; callers answer pings with Pong unless WithAutoPong is set:
//
//	session, err := client.Connect(ctx, false)
//	err = session.Subscribe(ctx, bitmax.DepthTopic("BTC/USDT"), "")
//	for msg, err := range session.All(ctx) {
//		...
//	}
//
// Failures are *core.Error values, apart from context errors and the
// core.Err sentinels; use the core.IsXxxError helpers to branch.
package bitmax
