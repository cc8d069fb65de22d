// Package trace defines the context-window trace model.
//
// A ContextTrace is a snapshot of an LLM context window: the ordered
// components that were assembled into the prompt, their token counts, the
// window limit, and optionally the model call that consumed the window.
// Traces are the input to the layout engines in pkg/layout and travel as
// JSON files between tools (see io.go for the interchange format).
//
// Token counts are provided by whatever produced the trace; this package
// does not count tokens.
package trace

import (
	"time"

	"github.com/tokenlens/tokenlens/pkg/errors"
)

// SchemaVersion is the version of the trace interchange format.
const SchemaVersion = "1.0.0"

// UnusedID is the component ID reserved for the synthetic unused-capacity
// block appended by the layout engines.
const UnusedID = "_unused"

// ComponentType classifies a context component.
type ComponentType string

// Component types.
const (
	ComponentSystemPrompt ComponentType = "system_prompt"
	ComponentUserMessage  ComponentType = "user_message"
	ComponentChatHistory  ComponentType = "chat_history"
	ComponentRAG          ComponentType = "rag"
	ComponentTool         ComponentType = "tool"
	ComponentExample      ComponentType = "example"
	ComponentScratchpad   ComponentType = "scratchpad"
)

// ComponentTypes lists all known component types in display order.
var ComponentTypes = []ComponentType{
	ComponentSystemPrompt,
	ComponentUserMessage,
	ComponentChatHistory,
	ComponentRAG,
	ComponentTool,
	ComponentExample,
	ComponentScratchpad,
}

// componentLabels maps component types to short display labels.
var componentLabels = map[ComponentType]string{
	ComponentSystemPrompt: "System",
	ComponentUserMessage:  "User",
	ComponentChatHistory:  "History",
	ComponentRAG:          "RAG",
	ComponentTool:         "Tool",
	ComponentExample:      "Example",
	ComponentScratchpad:   "Scratchpad",
}

// Label returns a short human-readable label for the type.
// Unknown types are returned as-is.
func (ct ComponentType) Label() string {
	if l, ok := componentLabels[ct]; ok {
		return l
	}
	return string(ct)
}

// Valid reports whether the type is one of the known component types.
func (ct ComponentType) Valid() bool {
	_, ok := componentLabels[ct]
	return ok
}

// Component is a single component in the context window.
type Component struct {
	ID         string         `json:"id"`
	Type       ComponentType  `json:"type"`
	Content    string         `json:"content,omitempty"`
	TokenCount int            `json:"token_count"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Message is a single chat message sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolCall is a tool invocation by the model.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Result    string         `json:"result,omitempty"`
}

// Usage captures token accounting reported by the provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Call is the trace of the language model call that consumed the window.
type Call struct {
	Provider  string     `json:"provider,omitempty"`
	Model     string     `json:"model,omitempty"`
	Messages  []Message  `json:"messages,omitempty"`
	Response  string     `json:"response,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Usage     Usage      `json:"usage"`
	LatencyMS float64    `json:"latency_ms,omitempty"`
}

// ContextTrace is a complete snapshot of a context window.
type ContextTrace struct {
	SchemaVersion string `json:"schema_version,omitempty"`

	ContextLimit int         `json:"context_limit"`
	TotalTokens  int         `json:"total_tokens"`
	Components   []Component `json:"components"`

	Call *Call `json:"call,omitempty"`

	Timestamp string   `json:"timestamp,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// New creates an empty trace for the given context limit with the current
// timestamp.
func New(contextLimit int) *ContextTrace {
	return &ContextTrace{
		SchemaVersion: SchemaVersion,
		ContextLimit:  contextLimit,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
}

// UnusedTokens returns the unused context window space.
// The result is negative when the window is over budget.
func (t *ContextTrace) UnusedTokens() int {
	return t.ContextLimit - t.TotalTokens
}

// Utilization returns context window utilization as a percentage (0-100).
func (t *ContextTrace) Utilization() float64 {
	if t.ContextLimit == 0 {
		return 0
	}
	return float64(t.TotalTokens) / float64(t.ContextLimit) * 100
}

// ComponentsByType returns the components matching the given type, in order.
func (t *ContextTrace) ComponentsByType(ct ComponentType) []Component {
	var out []Component
	for _, c := range t.Components {
		if c.Type == ct {
			out = append(out, c)
		}
	}
	return out
}

// Recount recomputes TotalTokens from the component token counts.
// Useful after components are added, removed, or edited.
func (t *ContextTrace) Recount() {
	total := 0
	for _, c := range t.Components {
		total += c.TokenCount
	}
	t.TotalTokens = total
}

// Validate checks the trace for structural problems: negative counts,
// duplicate or empty component IDs, and a reserved unused ID.
func (t *ContextTrace) Validate() error {
	if t.ContextLimit < 0 {
		return errors.New(errors.ErrCodeInvalidTrace, "context_limit cannot be negative")
	}

	seen := make(map[string]struct{}, len(t.Components))
	for _, c := range t.Components {
		if err := errors.ValidateComponentID(c.ID); err != nil {
			return err
		}
		if c.ID == UnusedID {
			return errors.New(errors.ErrCodeInvalidTrace, "component id %q is reserved", UnusedID)
		}
		if _, dup := seen[c.ID]; dup {
			return errors.New(errors.ErrCodeInvalidTrace, "duplicate component id %q", c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.TokenCount < 0 {
			return errors.New(errors.ErrCodeInvalidTrace, "component %q has negative token count", c.ID)
		}
	}

	return nil
}
