// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import "context"

// Commands understood by Dispatch.
const (
	CommandContextSearch = "contextSearch"
	CommandInsertWrapper = "insertWrapper"
)

// Message is a command sent by the background process. Selection carries
// the page text selected when a contextSearch was triggered.
type Message struct {
	Message   string `json:"message"`
	Selection string `json:"selection,omitempty"`
}

// Ack is the reply sent for every message, whatever the outcome.
type Ack struct {
	Ack bool `json:"ack"`
}

// Dispatch routes msg to the injector or the search client. Unknown
// commands are ignored and touch neither the document nor the storage.
// The returned error reports what went wrong for logging; the background
// process is always acknowledged.
func (t *Tab) Dispatch(ctx context.Context, msg Message) error {
	switch msg.Message {
	case CommandContextSearch:
		return t.Search(ctx, msg.Selection)
	case CommandInsertWrapper:
		_, err := t.Inject()
		return err
	default:
		return nil
	}
}
