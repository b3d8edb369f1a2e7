package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/openwallet/openwallet-cli/internal/config"
	"github.com/openwallet/openwallet-cli/pkg/openai"
)

// localClient talks to an OpenAI-compatible inference server hosting the
// local causal model.
type localClient struct {
	client openai.Client
	model  string
}

func newLocalClient(cfg config.LLMConfig) *localClient {
	opts := []openai.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	return &localClient{
		client: openai.NewClient(cfg.Key, opts...),
		model:  cfg.Model,
	}
}

// newLocalClientWith wires an explicit openai.Client; used by tests.
func newLocalClientWith(client openai.Client, model string) *localClient {
	return &localClient{client: client, model: model}
}

func (c *localClient) Model() string { return c.model }

func (c *localClient) Generate(ctx context.Context, messages []Message, opts Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = &opts.MaxTokens
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", eris.Wrap(err, "llm: local completion")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("llm: local completion returned no choices")
	}

	// The server returns only newly generated tokens; the prompt is never
	// echoed back in the message content.
	return resp.Choices[0].Message.Content, nil
}
