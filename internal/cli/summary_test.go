package cli

import (
	"testing"

	"github.com/tokenlens/tokenlens/pkg/trace"
)

func TestSummarizeByType(t *testing.T) {
	tr := &trace.ContextTrace{
		ContextLimit: 128000,
		TotalTokens:  14350,
		Components: []trace.Component{
			{ID: "sys", Type: trace.ComponentSystemPrompt, TokenCount: 2000},
			{ID: "rag_1", Type: trace.ComponentRAG, TokenCount: 8000},
			{ID: "rag_2", Type: trace.ComponentRAG, TokenCount: 3000},
			{ID: "hist", Type: trace.ComponentChatHistory, TokenCount: 1000},
			{ID: "user", Type: trace.ComponentUserMessage, TokenCount: 350},
		},
	}

	got := summarizeByType(tr)

	if len(got) != 4 {
		t.Fatalf("summarizeByType() returned %d entries, want 4", len(got))
	}

	// Descending by total tokens, RAG components merged
	if got[0].Type != trace.ComponentRAG || got[0].Tokens != 11000 || got[0].Count != 2 {
		t.Errorf("got[0] = %+v, want RAG with 11000 tokens across 2 components", got[0])
	}
	if got[1].Type != trace.ComponentSystemPrompt || got[1].Tokens != 2000 {
		t.Errorf("got[1] = %+v, want system_prompt with 2000 tokens", got[1])
	}
	if got[2].Type != trace.ComponentChatHistory || got[2].Tokens != 1000 {
		t.Errorf("got[2] = %+v, want chat_history with 1000 tokens", got[2])
	}
	if got[3].Type != trace.ComponentUserMessage || got[3].Tokens != 350 {
		t.Errorf("got[3] = %+v, want user_message with 350 tokens", got[3])
	}
}

func TestSummarizeByTypeEmpty(t *testing.T) {
	tr := &trace.ContextTrace{ContextLimit: 1000}
	if got := summarizeByType(tr); len(got) != 0 {
		t.Errorf("summarizeByType() = %v, want empty", got)
	}
}

func TestSummarizeByTypeTieBreak(t *testing.T) {
	tr := &trace.ContextTrace{
		ContextLimit: 1000,
		TotalTokens:  200,
		Components: []trace.Component{
			{ID: "a", Type: trace.ComponentTool, TokenCount: 100},
			{ID: "b", Type: trace.ComponentExample, TokenCount: 100},
		},
	}

	got := summarizeByType(tr)
	if len(got) != 2 {
		t.Fatalf("summarizeByType() returned %d entries, want 2", len(got))
	}
	// Equal totals sort by type name
	if got[0].Type > got[1].Type {
		t.Errorf("tie not broken by type name: %v before %v", got[0].Type, got[1].Type)
	}
}
