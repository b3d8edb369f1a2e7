// Package llm selects and holds the language-model backend. The model is an
// opaque external collaborator: ordered chat turns in, freeform text out.
package llm

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/openwallet/openwallet-cli/internal/config"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// Options tune a single generation call.
type Options struct {
	MaxTokens   int
	Temperature *float64
	TopP        *float64
}

// Client generates text from an ordered sequence of chat turns.
type Client interface {
	Generate(ctx context.Context, messages []Message, opts Options) (string, error)
	Model() string
}

// New creates a Client based on config.
func New(cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "local", "":
		return newLocalClient(cfg), nil
	case "anthropic":
		if cfg.Key == "" {
			return nil, eris.New("llm: anthropic provider requires key")
		}
		return newAnthropicClient(cfg), nil
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

var (
	sharedOnce sync.Once
	shared     Client
	sharedErr  error
)

// Shared returns the process-wide model client, initializing it on the first
// call. Concurrent first callers are serialized by sync.Once so the backend
// is never double-loaded. The handle is retained for the remainder of the
// process lifetime; there is no teardown path.
func Shared(cfg config.LLMConfig) (Client, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = New(cfg)
	})
	return shared, sharedErr
}
