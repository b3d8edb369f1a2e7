package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/openwallet/openwallet-cli/internal/config"
	"github.com/openwallet/openwallet-cli/pkg/anthropic"
)

const defaultAnthropicMaxTokens = 1024

// anthropicClient runs generations against the hosted Anthropic API.
type anthropicClient struct {
	client anthropic.Client
	model  string
}

func newAnthropicClient(cfg config.LLMConfig) *anthropicClient {
	return &anthropicClient{
		client: anthropic.NewClient(cfg.Key),
		model:  cfg.Model,
	}
}

// newAnthropicClientWith wires an explicit anthropic.Client; used by tests.
func newAnthropicClientWith(client anthropic.Client, model string) *anthropicClient {
	return &anthropicClient{client: client, model: model}
}

func (c *anthropicClient) Model() string { return c.model }

func (c *anthropicClient) Generate(ctx context.Context, messages []Message, opts Options) (string, error) {
	req := anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   int64(opts.MaxTokens),
		Temperature: opts.Temperature,
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = defaultAnthropicMaxTokens
	}

	// Anthropic takes the system turn as a separate field.
	for _, m := range messages {
		if m.Role == "system" {
			req.System = m.Content
			continue
		}
		req.Messages = append(req.Messages, anthropic.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateMessage(ctx, req)
	if err != nil {
		return "", eris.Wrap(err, "llm: anthropic completion")
	}

	return resp.Text(), nil
}
