package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dwikikusuma/shop-assist/internal/assistant/llm"
	"github.com/dwikikusuma/shop-assist/internal/assistant/ops"
	cartapp "github.com/dwikikusuma/shop-assist/internal/cart/app"
	"github.com/dwikikusuma/shop-assist/internal/cart/infra/adapter"
	cartmemory "github.com/dwikikusuma/shop-assist/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/shop-assist/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/shop-assist/internal/catalog/infra/httpapi"
	"github.com/dwikikusuma/shop-assist/pkg/config"
	"github.com/dwikikusuma/shop-assist/pkg/logger"
	"github.com/dwikikusuma/shop-assist/pkg/shutdown"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		fmt.Fprintln(os.Stderr, "config error: OPENAI_API_KEY is required")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "assistant",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Writer:  os.Stderr, // keep stdout clean for the conversation
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	fetcher := cataloghttp.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	catalogSvc := catalogapp.NewService(fetcher, cfg.CatalogCacheTTL)

	// The chat binary is one conversation in one process, so the in-memory
	// store is enough here; the HTTP server handles multi-session setups.
	cartSvc := cartapp.NewService(
		cartmemory.NewStore(),
		adapter.NewCatalogServiceReader(catalogSvc),
		cfg.RequirePositiveQty,
	)

	registry := ops.NewRegistry(log)
	ops.RegisterCommerce(registry, catalogSvc, cartSvc)

	client := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, log)
	interp := llm.NewInterpreter(client, registry, log)

	sessionID := uuid.NewString()
	log.Info("session started",
		slog.String("session_id", sessionID),
		slog.String("model", cfg.OpenAIModel),
	)

	runLoop(ctx, interp, sessionID)
	fmt.Println("Goodbye!")
}

func runLoop(ctx context.Context, interp *llm.Interpreter, sessionID string) {
	scanner := bufio.NewScanner(os.Stdin)
	var history []llm.Message

	for {
		fmt.Print("\nAsk your shopping assistant something (or type 'exit'): ")

		if ctx.Err() != nil || !scanner.Scan() {
			return
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		switch strings.ToLower(query) {
		case "exit", "quit":
			return
		}

		reply, updated, err := interp.Respond(ctx, sessionID, query, history)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		history = updated

		fmt.Printf("\n%s\n", reply)
	}
}
