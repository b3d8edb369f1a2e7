package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/openwallet/openwallet-cli/internal/llm"
	"github.com/openwallet/openwallet-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store)
}

func initLLM() (llm.Client, error) {
	return llm.Shared(cfg.LLM)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
