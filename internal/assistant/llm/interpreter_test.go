package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/dwikikusuma/shop-assist/internal/assistant/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedModel struct {
	replies  []Message
	requests [][]Message
}

func (m *scriptedModel) Chat(ctx context.Context, messages []Message, tools []Tool) (Message, error) {
	m.requests = append(m.requests, messages)
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(t *testing.T, called *[]string) *ops.Registry {
	t.Helper()

	r := ops.NewRegistry(testLogger())
	r.Register(ops.Operation{
		Name: "search_products",
		Handler: func(ctx context.Context, sessionID string, args json.RawMessage) ops.Result {
			*called = append(*called, "search_products:"+sessionID+":"+string(args))
			return ops.Result{"status": "success", "results": []string{"Oak Sofa"}}
		},
	})
	return r
}

func TestRespondPlainText(t *testing.T) {
	var called []string
	model := &scriptedModel{replies: []Message{
		{Role: "assistant", Content: "Hello! What are you shopping for?"},
	}}

	interp := NewInterpreter(model, testRegistry(t, &called), testLogger())
	text, history, err := interp.Respond(context.Background(), "s1", "hi", nil)
	require.NoError(t, err)

	assert.Equal(t, "Hello! What are you shopping for?", text)
	assert.Empty(t, called)

	// History keeps the user turn and the reply, not the system prompt.
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
}

func TestRespondExecutesToolCalls(t *testing.T) {
	var called []string
	model := &scriptedModel{replies: []Message{
		{
			Role: "assistant",
			ToolCalls: []ToolCall{{
				ID:       "call-1",
				Type:     "function",
				Function: FunctionCall{Name: "search_products", Arguments: `{"query":"sofa"}`},
			}},
		},
		{Role: "assistant", Content: "I found an Oak Sofa."},
	}}

	interp := NewInterpreter(model, testRegistry(t, &called), testLogger())
	text, _, err := interp.Respond(context.Background(), "s1", "find me a sofa", nil)
	require.NoError(t, err)

	assert.Equal(t, "I found an Oak Sofa.", text)
	require.Len(t, called, 1)
	assert.Equal(t, `search_products:s1:{"query":"sofa"}`, called[0])

	// Second model request must include the tool result message.
	require.Len(t, model.requests, 2)
	second := model.requests[1]
	last := second[len(second)-1]
	assert.Equal(t, "tool", last.Role)
	assert.Equal(t, "call-1", last.ToolCallID)
	assert.Contains(t, last.Content, `"status":"success"`)
}

func TestRespondUnknownToolFedBackAsError(t *testing.T) {
	var called []string
	model := &scriptedModel{replies: []Message{
		{
			Role: "assistant",
			ToolCalls: []ToolCall{{
				ID:       "call-1",
				Type:     "function",
				Function: FunctionCall{Name: "fly_to_moon", Arguments: `{}`},
			}},
		},
		{Role: "assistant", Content: "Sorry, I cannot do that."},
	}}

	interp := NewInterpreter(model, testRegistry(t, &called), testLogger())
	text, _, err := interp.Respond(context.Background(), "s1", "take me to the moon", nil)
	require.NoError(t, err)

	assert.Equal(t, "Sorry, I cannot do that.", text)
	second := model.requests[1]
	last := second[len(second)-1]
	assert.Contains(t, last.Content, `"status":"error"`)
}

func TestRespondBoundsToolRounds(t *testing.T) {
	var called []string

	// A model that answers every request with another tool call.
	replies := make([]Message, maxToolRounds)
	for i := range replies {
		replies[i] = Message{
			Role: "assistant",
			ToolCalls: []ToolCall{{
				ID:       "loop",
				Type:     "function",
				Function: FunctionCall{Name: "search_products", Arguments: `{}`},
			}},
		}
	}
	model := &scriptedModel{replies: replies}

	interp := NewInterpreter(model, testRegistry(t, &called), testLogger())
	_, _, err := interp.Respond(context.Background(), "s1", "loop forever", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool-call loop")
}

func TestInterpreterBuildsToolsFromRegistry(t *testing.T) {
	var called []string
	r := testRegistry(t, &called)
	interp := NewInterpreter(&scriptedModel{}, r, testLogger())

	require.Len(t, interp.tools, 1)
	assert.Equal(t, "function", interp.tools[0].Type)
	assert.Equal(t, "search_products", interp.tools[0].Function.Name)
	assert.Equal(t, "object", interp.tools[0].Function.Parameters["type"])
}
