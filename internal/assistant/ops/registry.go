package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Result is the structured envelope every operation returns. It always
// carries a "status" of "success" or "error"; errors add a "message".
type Result map[string]any

func success(fields map[string]any) Result {
	res := Result{"status": "success"}
	for k, v := range fields {
		res[k] = v
	}
	return res
}

func errResult(msg string) Result {
	return Result{"status": "error", "message": msg}
}

// Field describes one input parameter of an operation, compact enough to be
// rendered into a JSON Schema for function-calling front-ends.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Handler executes an operation for one session. Arguments arrive as the raw
// JSON object the front-end produced.
type Handler func(ctx context.Context, sessionID string, args json.RawMessage) Result

type Operation struct {
	Name        string
	Description string
	Params      []Field
	Handler     Handler
}

// Schema renders the operation's parameters as a JSON Schema object, the
// shape both the chat-completions tools API and the HTTP listing expect.
func (o Operation) Schema() map[string]any {
	properties := make(map[string]any, len(o.Params))
	required := []string{}
	for _, f := range o.Params {
		prop := map[string]any{"type": f.Type}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		properties[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Registry maps operation names to handlers. Registration order is kept so
// listings are stable.
type Registry struct {
	log    *slog.Logger
	order  []string
	byName map[string]Operation
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:    log,
		byName: make(map[string]Operation),
	}
}

func (r *Registry) Register(op Operation) {
	if _, exists := r.byName[op.Name]; !exists {
		r.order = append(r.order, op.Name)
	}
	r.byName[op.Name] = op
}

func (r *Registry) Get(name string) (Operation, bool) {
	op, ok := r.byName[name]
	return op, ok
}

// List returns operations in registration order.
func (r *Registry) List() []Operation {
	out := make([]Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Call dispatches one invocation. Whatever goes wrong inside a handler comes
// back as an error envelope; nothing escapes to the front-end.
func (r *Registry) Call(ctx context.Context, sessionID, name string, args json.RawMessage) (res Result) {
	op, ok := r.byName[name]
	if !ok {
		return errResult(fmt.Sprintf("unknown operation %q", name))
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("operation panicked",
				slog.String("operation", name),
				slog.Any("panic", rec),
			)
			res = errResult(fmt.Sprintf("operation %s failed", name))
		}
	}()

	r.log.Debug("operation call",
		slog.String("operation", name),
		slog.String("session_id", sessionID),
	)

	return op.Handler(ctx, sessionID, args)
}
