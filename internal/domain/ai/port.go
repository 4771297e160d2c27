package ai

import "context"

// Client is the chat-completion capability: given a prompt pair it returns
// raw text that should contain JSON.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
