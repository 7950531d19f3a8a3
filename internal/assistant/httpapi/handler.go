package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/shop-assist/internal/assistant/ops"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionHeader carries the caller's session identity. Carts are keyed by
// it; a request without one gets a fresh session id echoed back.
const SessionHeader = "X-Session-ID"

type Handler struct {
	registry *ops.Registry
	log      *slog.Logger
}

func NewHandler(registry *ops.Registry, log *slog.Logger) *Handler {
	return &Handler{registry: registry, log: log}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type operationInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

func (h *Handler) ListOperations(w http.ResponseWriter, r *http.Request) {
	infos := make([]operationInfo, 0)
	for _, op := range h.registry.List() {
		infos = append(infos, operationInfo{
			Name:        op.Name,
			Description: op.Description,
			InputSchema: op.Schema(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"operations": infos})
}

// Invoke runs one operation. Operation-level failures still answer 200 with
// the error envelope; only an unknown name or unreadable body is an HTTP
// error.
func (h *Handler) Invoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := h.registry.Get(name); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"status":  "error",
			"message": "unknown operation " + name,
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "unreadable request body",
		})
		return
	}

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set(SessionHeader, sessionID)

	var args json.RawMessage
	if len(body) > 0 {
		args = json.RawMessage(body)
	}

	result := h.registry.Call(r.Context(), sessionID, name, args)

	h.log.Info("operation invoked",
		slog.String("operation", name),
		slog.String("session_id", sessionID),
		slog.Any("status", result["status"]),
	)

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
