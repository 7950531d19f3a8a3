package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/shop-assist/internal/assistant/ops"
)

const systemPrompt = `You are a smart shopping assistant. You can:
- show available products
- search for products
- add items to cart
- perform checkout with total price and payment method
- submit refund requests
Use the provided tools to answer; never invent products or prices.`

// maxToolRounds bounds the execute-and-feed-back loop so a confused model
// cannot spin forever.
const maxToolRounds = 8

// ChatModel is what the interpreter needs from the model client.
type ChatModel interface {
	Chat(ctx context.Context, messages []Message, tools []Tool) (Message, error)
}

// Interpreter runs the tool-call loop: it hands the registry's schemas to
// the model, executes whatever operations the model picks, feeds the
// structured results back, and returns the model's final text.
type Interpreter struct {
	model    ChatModel
	registry *ops.Registry
	log      *slog.Logger
	tools    []Tool
}

func NewInterpreter(model ChatModel, registry *ops.Registry, log *slog.Logger) *Interpreter {
	tools := make([]Tool, 0)
	for _, op := range registry.List() {
		tools = append(tools, Tool{
			Type: "function",
			Function: FunctionDef{
				Name:        op.Name,
				Description: op.Description,
				Parameters:  op.Schema(),
			},
		})
	}

	return &Interpreter{
		model:    model,
		registry: registry,
		log:      log,
		tools:    tools,
	}
}

// Respond processes one user utterance to completion and returns the
// assistant's reply plus the updated history (for the next turn).
func (i *Interpreter) Respond(ctx context.Context, sessionID, userText string, history []Message) (string, []Message, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userText})

	for round := 0; round < maxToolRounds; round++ {
		reply, err := i.model.Chat(ctx, messages, i.tools)
		if err != nil {
			return "", history, err
		}
		messages = append(messages, reply)

		if len(reply.ToolCalls) == 0 {
			// Done: hand back everything after the system prompt.
			return reply.Content, messages[1:], nil
		}

		for _, tc := range reply.ToolCalls {
			result := i.registry.Call(ctx, sessionID, tc.Function.Name, json.RawMessage(tc.Function.Arguments))

			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(`{"status":"error","message":"failed to encode result"}`)
			}

			i.log.Info("tool call executed",
				slog.String("session_id", sessionID),
				slog.String("operation", tc.Function.Name),
				slog.Any("status", result["status"]),
			)

			messages = append(messages, Message{
				Role:       "tool",
				ToolCallID: tc.ID,
				Name:       tc.Function.Name,
				Content:    string(payload),
			})
		}
	}

	return "", history, fmt.Errorf("tool-call loop exceeded %d rounds", maxToolRounds)
}
